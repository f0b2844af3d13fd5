package cmd

import (
	"fmt"
	"os"

	"github.com/spade-lang/spade/internal/ir"
	"github.com/spade-lang/spade/internal/vm"
	"github.com/spade-lang/spade/pkg/spade"
	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var (
	verbose bool
	traceVM bool
	dumpAST bool
	dumpIR  bool
)

var rootCmd = &cobra.Command{
	Use:   "spade [file...]",
	Short: "Spade language toolchain",
	Long: `spade compiles and runs Spade, a small typed expression language:

  int x = 2 + 3 * 4;
  bool b = 1 < 2 && 3 == 3;
  string s = "hi" + " world";

The toolchain stages a file through a lexer, a recursive-descent parser,
a nested-scope semantic analyzer, a stack-IR generator, and a stack
virtual machine. Each stage is also reachable on its own via the lex,
parse, and ir subcommands.

Bare invocation tokenizes, parses, analyzes, generates IR for, and
executes each given file in order. With no file arguments it starts an
interactive session, equivalent to the repl subcommand.`,
	Version: Version,
	Args:    cobra.ArbitraryArgs,
	RunE:    runRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&traceVM, "trace", false, "print each VM instruction as it executes")
	rootCmd.PersistentFlags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST before executing")
	rootCmd.PersistentFlags().BoolVar(&dumpIR, "dump-ir", false, "print the generated IR before executing")
}

// runRoot implements spec's driver contract: one-or-more files run in
// order, or an interactive session when no file is given.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runRepl(cmd, args)
	}
	var failed bool
	for _, file := range args {
		if err := runFile(file); err != nil {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("one or more files failed")
	}
	return nil
}

// runFile reads, compiles, and executes a single file, honoring the shared
// --trace/--dump-ast/--dump-ir/--verbose flags. Errors are printed (with
// color when attached to a terminal) and also returned so callers can track
// overall exit status.
func runFile(filename string) error {
	source, name, err := readSource("", []string{filename})
	if err != nil {
		exitWithError("%s", err)
		return err
	}
	return compileAndRun(name, source)
}

// runPipeline compiles and executes source through every stage, honoring
// the shared --trace/--dump-ast/--dump-ir flags. Compile and runtime
// errors are printed (with color when attached to a terminal) before being
// returned.
func runPipeline(name, source string) (*spade.Pipeline, error) {
	p, err := spade.Generated(name, source)
	if err != nil {
		printError(err)
		return p, err
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(p.Program.String())
		fmt.Println()
	}
	if dumpIR {
		fmt.Println("IR:")
		fmt.Print(ir.Print(p.IR))
		fmt.Println()
	}

	var vmOpts []vm.Option
	if traceVM {
		vmOpts = append(vmOpts, vm.WithTracer(os.Stderr))
	}
	p.VM = vm.New(vmOpts...)
	p.VM.Run(p.IR)

	if p.VM.State() == vm.Error {
		printError(p.VM.Err())
		return p, p.VM.Err()
	}
	return p, nil
}

// compileAndRun runs source as a file would: on success, variables print
// only under --verbose.
func compileAndRun(name, source string) error {
	p, err := runPipeline(name, source)
	if err != nil {
		return err
	}
	if verbose {
		for _, entry := range p.VM.Variables() {
			fmt.Fprintf(os.Stdout, "%s = %d\n", entry.Name, entry.Value)
		}
	}
	return nil
}

// isTerminal reports whether f is attached to an interactive terminal, to
// decide whether diagnostics print with ANSI color.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// printError prints a compile-time error (errors.List or a plain error)
// with color when stderr is a terminal.
func printError(err error) {
	if formatter, ok := err.(interface{ Format(bool) string }); ok {
		fmt.Fprintln(os.Stderr, formatter.Format(isTerminal(os.Stderr)))
		return
	}
	exitWithError("%s", err)
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
}

// readSource returns the program source from either the -e/--eval flag or
// the first positional file argument, along with a name to use in
// diagnostics.
func readSource(evalExpr string, args []string) (source, name string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}
