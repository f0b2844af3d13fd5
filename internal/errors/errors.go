// Package errors provides diagnostic formatting for the Spade toolchain:
// lexical, syntactic, semantic, and runtime failures all render through the
// same source-line-plus-caret shape.
package errors

import (
	"fmt"
	"strings"

	"github.com/spade-lang/spade/internal/token"
)

// Kind classifies which phase raised an error, following the usual
// taxonomy (Lexical, Syntactic, Semantic, Runtime).
type Kind int

const (
	Lexical Kind = iota
	Syntactic
	Semantic
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical error"
	case Syntactic:
		return "syntax error"
	case Semantic:
		return "semantic error"
	case Runtime:
		return "runtime error"
	default:
		return "error"
	}
}

// CompilerError is a single diagnostic with enough context to render a
// source-line-plus-caret message.
type CompilerError struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New creates a CompilerError. Source may be empty if no source context is
// available (e.g. synthesized errors in tests).
func New(kind Kind, pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Kind: kind, Message: message, Source: source, File: file, Pos: pos}
}

// Error implements the error interface with an uncolored rendering.
func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the diagnostic with an optional ANSI-colored caret.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d: %s\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column, e.Message)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d: %s\n", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
	}

	line := e.sourceLine(e.Pos.Line)
	if line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+max0(e.Pos.Column-1)))
		if color {
			sb.WriteString("\033[1;31m^\033[0m")
		} else {
			sb.WriteString("^")
		}
	}

	return sb.String()
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (e *CompilerError) sourceLine(line int) string {
	if e.Source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// List is an ordered collection of diagnostics from a single phase. Phases
// accumulate errors rather than stopping at the first one (diagnostics only
// mandates fail-stop *between* phases, not within lexing/parsing).
type List []*CompilerError

func (l List) Error() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

// HasErrors reports whether l contains at least one diagnostic.
func (l List) HasErrors() bool { return len(l) > 0 }

// Format renders every diagnostic in l with Format(color), one per line.
func (l List) Format(color bool) string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Format(color)
	}
	return strings.Join(parts, "\n")
}
