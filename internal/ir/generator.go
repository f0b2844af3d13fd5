package ir

import (
	"fmt"

	"github.com/spade-lang/spade/internal/ast"
	"github.com/spade-lang/spade/internal/semantic"
	"github.com/spade-lang/spade/internal/symbol"
	"github.com/spade-lang/spade/internal/token"
)

// Generator walks a type-checked AST and emits a Stream of instructions
// over a type-checked AST. It assumes prog has already passed semantic analysis
// against scope — an ill-typed program produces undefined IR.
type Generator struct {
	scope  *symbol.Table
	stream Stream
}

// New creates a Generator that will consult scope (the symbol table
// produced by semantic analysis) to disambiguate '+' and resolve
// identifiers.
func New(scope *symbol.Table) *Generator {
	return &Generator{scope: scope}
}

// Generate emits IR for every statement of prog in order, followed by a
// final HALT, and returns the resulting Stream.
func (g *Generator) Generate(prog *ast.Program) (Stream, error) {
	for _, stmt := range prog.Statements {
		if err := g.genStatement(stmt); err != nil {
			return nil, err
		}
	}
	g.stream.Emit(Halt)
	return g.stream, nil
}

func (g *Generator) genStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		if s.Initializer == nil {
			return nil
		}
		if err := g.genExpr(s.Initializer); err != nil {
			return err
		}
		g.stream.EmitVar(StoreVar, s.Name.Value)
		return nil
	case *ast.Assignment:
		if _, ok := g.scope.Lookup(s.Name.Value); !ok {
			return fmt.Errorf("ir: assignment to undeclared identifier %q", s.Name.Value)
		}
		if err := g.genExpr(s.Value); err != nil {
			return err
		}
		g.stream.EmitVar(StoreVar, s.Name.Value)
		return nil
	case *ast.FunctionDeclaration:
		// Function declarations carry no runtime body today (function execution is
		// Non-goals); nothing to emit.
		return nil
	default:
		return fmt.Errorf("ir: unsupported statement %T", stmt)
	}
}

// genExpr emits post-order IR for expr.
func (g *Generator) genExpr(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.Number:
		g.stream.EmitConst(e.Value)
		return nil
	case *ast.Boolean:
		v := int32(0)
		if e.Value {
			v = 1
		}
		g.stream.EmitConst(v)
		return nil
	case *ast.StringLiteral:
		g.stream.EmitString(e.Value)
		return nil
	case *ast.Identifier:
		g.stream.EmitVar(PushVar, e.Value)
		return nil
	case *ast.UnaryOperation:
		return g.genUnary(e)
	case *ast.BinaryOperation:
		return g.genBinary(e)
	case *ast.FunctionCall:
		return fmt.Errorf("ir: function calls have no runtime body: %q", e.Callee)
	case *ast.Null:
		return fmt.Errorf("ir: 'null' has no runtime IR form")
	default:
		return fmt.Errorf("ir: unsupported expression %T", expr)
	}
}

func (g *Generator) genUnary(e *ast.UnaryOperation) error {
	if err := g.genExpr(e.Operand); err != nil {
		return err
	}
	switch e.Operator {
	case token.MINUS:
		g.stream.Emit(Neg)
	case token.BANG:
		g.stream.Emit(Not)
	default:
		return fmt.Errorf("ir: unknown unary operator %s", e.Operator)
	}
	return nil
}

func (g *Generator) genBinary(e *ast.BinaryOperation) error {
	if err := g.genExpr(e.Left); err != nil {
		return err
	}
	if err := g.genExpr(e.Right); err != nil {
		return err
	}

	switch e.Operator {
	case token.PLUS:
		if semantic.IsStringExpr(g.scope, e) {
			g.stream.Emit(Concat)
		} else {
			g.stream.Emit(Add)
		}
	case token.MINUS:
		g.stream.Emit(Sub)
	case token.STAR:
		g.stream.Emit(Mul)
	case token.SLASH:
		g.stream.Emit(Div)
	case token.PERCENT:
		g.stream.Emit(Mod)
	case token.STAR_STAR:
		g.stream.Emit(Pow)
	case token.EQ:
		g.stream.Emit(Eq)
	case token.NOT_EQ:
		g.stream.Emit(Ne)
	case token.LT:
		g.stream.Emit(Lt)
	case token.GT:
		g.stream.Emit(Gt)
	case token.LE:
		g.stream.Emit(Le)
	case token.GE:
		g.stream.Emit(Ge)
	case token.AND_AND:
		g.stream.Emit(And)
	case token.OR_OR:
		g.stream.Emit(Or)
	default:
		return fmt.Errorf("ir: unknown binary operator %s", e.Operator)
	}
	return nil
}
