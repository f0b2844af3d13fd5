package cmd

import (
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and run a Spade program",
	Long: `Compile a Spade file (or inline expression) through every stage and
execute the resulting program on the stack virtual machine.

Examples:
  spade run program.sp
  spade run -e "int x = 2 + 3 * 4;"
  spade run --dump-ast --dump-ir program.sp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, name, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}
	return compileAndRun(name, source)
}
