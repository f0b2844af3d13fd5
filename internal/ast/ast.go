// Package ast defines the Abstract Syntax Tree node types for Spade.
package ast

import (
	"bytes"
	"strings"

	"github.com/spade-lang/spade/internal/token"
)

// Node is the base interface for every AST node.
type Node interface {
	TokenLiteral() string
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without itself being a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: an ordered, dynamically-growing sequence of
// statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

// VariableDeclaration: `type name (= initializer)? ;`
type VariableDeclaration struct {
	Token       token.Token // the type keyword token
	Type        token.Type
	Name        *Identifier
	Initializer Expression // nil if absent
}

func (d *VariableDeclaration) statementNode()       {}
func (d *VariableDeclaration) TokenLiteral() string { return d.Token.Literal }
func (d *VariableDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString(d.Type.String())
	out.WriteString(" ")
	out.WriteString(d.Name.String())
	if d.Initializer != nil {
		out.WriteString(" = ")
		out.WriteString(d.Initializer.String())
	}
	out.WriteString(";")
	return out.String()
}

// Assignment: `name = value ;`
type Assignment struct {
	Token token.Token // the identifier token
	Name  *Identifier
	Value Expression
}

func (a *Assignment) statementNode()       {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) String() string {
	return a.Name.String() + " = " + a.Value.String() + ";"
}

// Parameter: `type name`
type Parameter struct {
	Token token.Token
	Type  token.Type
	Name  *Identifier
}

func (p *Parameter) TokenLiteral() string { return p.Token.Literal }
func (p *Parameter) String() string       { return p.Type.String() + " " + p.Name.String() }

// ParameterList is an ordered sequence of Parameters.
type ParameterList struct {
	Params []*Parameter
}

func (pl *ParameterList) TokenLiteral() string {
	if len(pl.Params) > 0 {
		return pl.Params[0].TokenLiteral()
	}
	return ""
}

func (pl *ParameterList) String() string {
	parts := make([]string, len(pl.Params))
	for i, p := range pl.Params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// FunctionDeclaration: `type task name ( params? ) { } ;`
//
// Body is reserved for future work: the
// grammar requires an empty body today, and the parser always sets Body to
// an empty Program. It is kept
// as a typed field rather than omitted so a later revision that accepts
// statements inside the braces doesn't need a shape change here.
type FunctionDeclaration struct {
	Token      token.Token // the return-type token
	ReturnType token.Type
	Name       *Identifier
	Params     *ParameterList
	Body       *Program
}

func (f *FunctionDeclaration) statementNode()       {}
func (f *FunctionDeclaration) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString(f.ReturnType.String())
	out.WriteString(" task ")
	out.WriteString(f.Name.String())
	out.WriteString("(")
	out.WriteString(f.Params.String())
	out.WriteString(") {};")
	return out.String()
}

// Argument wraps a single call-site expression.
type Argument struct {
	Value Expression
}

func (a *Argument) TokenLiteral() string { return a.Value.TokenLiteral() }
func (a *Argument) String() string       { return a.Value.String() }

// ArgumentList is an ordered sequence of Arguments.
type ArgumentList struct {
	Args []*Argument
}

func (al *ArgumentList) TokenLiteral() string {
	if len(al.Args) > 0 {
		return al.Args[0].TokenLiteral()
	}
	return ""
}

func (al *ArgumentList) String() string {
	parts := make([]string, len(al.Args))
	for i, a := range al.Args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// FunctionCall: `name ( args? )`, valid only when an identifier is
// immediately followed by '('.
type FunctionCall struct {
	Token    token.Token // the identifier token
	Callee   string
	Args     *ArgumentList
}

func (c *FunctionCall) expressionNode()      {}
func (c *FunctionCall) TokenLiteral() string { return c.Token.Literal }
func (c *FunctionCall) String() string {
	return c.Callee + "(" + c.Args.String() + ")"
}

// BinaryOperation: `left op right`.
type BinaryOperation struct {
	Token    token.Token // the operator token
	Operator token.Type
	Left     Expression
	Right    Expression
}

func (b *BinaryOperation) expressionNode()      {}
func (b *BinaryOperation) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryOperation) String() string {
	return "(" + b.Left.String() + " " + b.Operator.String() + " " + b.Right.String() + ")"
}

// UnaryOperation: `- operand` or `! operand`.
type UnaryOperation struct {
	Token    token.Token
	Operator token.Type
	Operand  Expression
}

func (u *UnaryOperation) expressionNode()      {}
func (u *UnaryOperation) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryOperation) String() string {
	return "(" + u.Operator.String() + u.Operand.String() + ")"
}

// Number is a 32-bit signed integer literal; there are no floats.
type Number struct {
	Token token.Token
	Value int32
}

func (n *Number) expressionNode()      {}
func (n *Number) TokenLiteral() string { return n.Token.Literal }
func (n *Number) String() string       { return n.Token.Literal }

// Boolean is a 0/1-valued literal.
type Boolean struct {
	Token token.Token
	Value bool
}

func (b *Boolean) expressionNode()      {}
func (b *Boolean) TokenLiteral() string { return b.Token.Literal }
func (b *Boolean) String() string       { return b.Token.Literal }

// Identifier is a name reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// StringLiteral is an owning string value.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) String() string       { return `"` + s.Value + `"` }

// Null is the no-payload null literal.
type Null struct {
	Token token.Token
}

func (n *Null) expressionNode()      {}
func (n *Null) TokenLiteral() string { return n.Token.Literal }
func (n *Null) String() string       { return "null" }
