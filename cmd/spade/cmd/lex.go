package cmd

import (
	"fmt"

	"github.com/spade-lang/spade/internal/token"
	"github.com/spade-lang/spade/pkg/spade"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr string
	showPos     bool
	showType    bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Spade file or expression",
	Long: `Tokenize a Spade program and print the resulting tokens, without
parsing or running it. Useful for inspecting how source text is scanned.

Examples:
  spade lex program.sp
  spade lex -e "int x = 1;" --show-type --show-pos`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, name, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}

	p := spade.Lexed(name, source)
	for _, tok := range p.Tokens {
		printToken(tok)
		if tok.Type == token.EOF {
			break
		}
	}

	if p.Lex.HasErrors() {
		fmt.Println(p.Lex.Error())
		return p.Lex
	}
	return nil
}

func printToken(tok token.Token) {
	var out string
	if showType {
		out = fmt.Sprintf("[%-12s]", tok.Type)
	}
	if tok.Literal == "" {
		out += fmt.Sprintf(" %s", tok.Type)
	} else {
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if showPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(out)
}
