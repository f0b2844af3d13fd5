// Package spade is the public library surface of the Spade toolchain: a
// thin wrapper that runs the internal lexer/parser/semantic/ir/vm stages
// in sequence over one compilation, with no process-wide state.
package spade

import (
	"fmt"
	"io"

	"github.com/spade-lang/spade/internal/ast"
	"github.com/spade-lang/spade/internal/errors"
	"github.com/spade-lang/spade/internal/ir"
	"github.com/spade-lang/spade/internal/lexer"
	"github.com/spade-lang/spade/internal/parser"
	"github.com/spade-lang/spade/internal/semantic"
	"github.com/spade-lang/spade/internal/symbol"
	"github.com/spade-lang/spade/internal/token"
	"github.com/spade-lang/spade/internal/vm"
)

// Pipeline owns every structure produced by compiling and running one
// Spade source file: tokens, AST, symbol table, IR stream, and VM. Nothing
// here is shared across compilations.
type Pipeline struct {
	File   string
	Source string

	Tokens []token.Token
	Lex    errors.List

	Program *ast.Program
	Parse   errors.List

	Symbols  *symbol.Table
	Semantic errors.List

	IR ir.Stream

	VM *vm.VM
}

// Lexed runs the lexer stage only (used by the `spade lex` pretty-printer).
func Lexed(file, source string) *Pipeline {
	toks, lexErrs := lexer.All(source)
	p := &Pipeline{File: file, Source: source, Tokens: toks}
	for _, e := range lexErrs {
		p.Lex = append(p.Lex, errors.New(errors.Lexical, e.Pos, e.Message, source, file))
	}
	return p
}

// Parsed runs lexing and parsing (used by `spade parse`).
func Parsed(file, source string) *Pipeline {
	p := &Pipeline{File: file, Source: source}
	parse := parser.New(source, file)
	p.Program = parse.ParseProgram()
	p.Parse = parse.Errors()
	return p
}

// Analyzed runs lexing, parsing, and semantic analysis.
func Analyzed(file, source string) *Pipeline {
	p := Parsed(file, source)
	if p.Parse.HasErrors() {
		return p
	}
	global, semErrs := semantic.New(source, file).Analyze(p.Program)
	p.Symbols = global
	p.Semantic = semErrs
	return p
}

// Generated runs every stage through IR generation (used by `spade ir`).
func Generated(file, source string) (*Pipeline, error) {
	p := Analyzed(file, source)
	if p.Parse.HasErrors() {
		return p, p.Parse
	}
	if p.Semantic.HasErrors() {
		return p, p.Semantic
	}
	stream, err := ir.New(p.Symbols).Generate(p.Program)
	if err != nil {
		return p, err
	}
	p.IR = stream
	return p, nil
}

// Run compiles source completely and executes it, returning the finished
// Pipeline (with its VM in its terminal state) or the first compile-time
// error encountered. A VM runtime failure is not a Go error: inspect
// p.VM.State() and p.VM.Err() instead: compile errors abort the pipeline,
// while runtime errors transition the VM to Error and are reported through
// its own state.
func Run(file string, src io.Reader) (*Pipeline, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("spade: reading %s: %w", file, err)
	}

	p, err := Generated(file, string(data))
	if err != nil {
		return p, err
	}

	p.VM = vm.New()
	p.VM.Run(p.IR)
	return p, nil
}
