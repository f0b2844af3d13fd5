// Command spade is the Spade language toolchain's command-line front end.
package main

import (
	"os"

	"github.com/spade-lang/spade/cmd/spade/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
