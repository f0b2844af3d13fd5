package cmd

import (
	"fmt"

	"github.com/spade-lang/spade/pkg/spade"
	"github.com/spf13/cobra"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Spade file and print its AST",
	Long: `Parse a Spade program and print the resulting AST, without running
semantic analysis or code generation.

Examples:
  spade parse program.sp
  spade parse -e "int x = 2 + 3 * 4;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, name, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	p := spade.Parsed(name, source)
	if p.Parse.HasErrors() {
		fmt.Println(p.Parse.Error())
		return p.Parse
	}
	fmt.Println(p.Program.String())
	return nil
}
