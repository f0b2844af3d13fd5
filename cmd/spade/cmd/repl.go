package cmd

import (
	"fmt"
	"os"

	"github.com/spade-lang/spade/internal/repl"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Spade session",
	Long: `Start a read-eval-print loop: each completed statement is compiled
and run against a fresh virtual machine, and its resulting variables are
printed. Lines ending in a backslash continue onto the next line. Type
"exit" to quit.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	fmt.Println("Spade interactive mode. Type \"exit\" to quit.")
	return repl.Run(os.Stdin, os.Stdout, execREPLSource)
}

// execREPLSource compiles and runs one completed buffer through the same
// path as a file (sharing --trace/--dump-ast/--dump-ir), always printing
// the resulting variables since that is the point of an interactive
// session. Errors are already printed by runPipeline, so they are
// swallowed here rather than reported a second time by repl.Run.
func execREPLSource(source string) error {
	p, err := runPipeline("<repl>", source)
	if err != nil {
		return nil
	}
	for _, entry := range p.VM.Variables() {
		fmt.Printf("%s = %d\n", entry.Name, entry.Value)
	}
	return nil
}
