package cmd

import (
	"fmt"

	"github.com/spade-lang/spade/internal/ir"
	"github.com/spade-lang/spade/pkg/spade"
	"github.com/spf13/cobra"
)

var irEvalExpr string

var irCmd = &cobra.Command{
	Use:   "ir [file]",
	Short: "Compile a Spade file and print its generated IR",
	Long: `Run a Spade program through semantic analysis and IR generation and
print the resulting instruction stream, without executing it.

Examples:
  spade ir program.sp
  spade ir -e "int y = 2 ** 3 ** 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: irScript,
}

func init() {
	rootCmd.AddCommand(irCmd)
	irCmd.Flags().StringVarP(&irEvalExpr, "eval", "e", "", "compile inline code instead of reading from file")
}

func irScript(_ *cobra.Command, args []string) error {
	source, name, err := readSource(irEvalExpr, args)
	if err != nil {
		return err
	}

	p, err := spade.Generated(name, source)
	if err != nil {
		fmt.Println(err)
		return err
	}
	fmt.Print(ir.Print(p.IR))
	return nil
}
