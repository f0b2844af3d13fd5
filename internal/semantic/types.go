package semantic

import (
	"fmt"

	"github.com/spade-lang/spade/internal/ast"
	"github.com/spade-lang/spade/internal/symbol"
	"github.com/spade-lang/spade/internal/token"
)

// ExprType computes the static type of expr against scope, per the rules of
// the full operand-type table. It is shared by the analyzer (to reject ill-typed programs)
// and the IR generator (to disambiguate '+' between ADD and CONCAT), so
// both stages agree on what an expression's type is.
func ExprType(scope *symbol.Table, expr ast.Expression) (token.Type, error) {
	switch e := expr.(type) {
	case *ast.Number:
		return token.INT, nil
	case *ast.Boolean:
		return token.BOOL, nil
	case *ast.StringLiteral:
		return token.STRING_TYPE, nil
	case *ast.Null:
		return token.NULL, nil
	case *ast.Identifier:
		sym, ok := scope.Lookup(e.Value)
		if !ok {
			return 0, fmt.Errorf("undeclared identifier %q", e.Value)
		}
		if sym.IsFunction() {
			return 0, fmt.Errorf("%q is a function, not a value", e.Value)
		}
		return sym.Type, nil
	case *ast.UnaryOperation:
		return unaryType(scope, e)
	case *ast.BinaryOperation:
		return binaryType(scope, e)
	case *ast.FunctionCall:
		return callType(scope, e)
	default:
		return 0, fmt.Errorf("unsupported expression %T", expr)
	}
}

func unaryType(scope *symbol.Table, e *ast.UnaryOperation) (token.Type, error) {
	operandType, err := ExprType(scope, e.Operand)
	if err != nil {
		return 0, err
	}
	switch e.Operator {
	case token.MINUS:
		if operandType != token.INT {
			return 0, fmt.Errorf("unary '-' requires int operand, got %s", operandType)
		}
		return token.INT, nil
	case token.BANG:
		if operandType != token.BOOL {
			return 0, fmt.Errorf("unary '!' requires bool operand, got %s", operandType)
		}
		return token.BOOL, nil
	default:
		return 0, fmt.Errorf("unknown unary operator %s", e.Operator)
	}
}

func binaryType(scope *symbol.Table, e *ast.BinaryOperation) (token.Type, error) {
	leftType, err := ExprType(scope, e.Left)
	if err != nil {
		return 0, err
	}
	rightType, err := ExprType(scope, e.Right)
	if err != nil {
		return 0, err
	}

	switch e.Operator {
	case token.PLUS:
		if leftType == token.STRING_TYPE || rightType == token.STRING_TYPE {
			return token.STRING_TYPE, nil
		}
		if leftType == token.INT && rightType == token.INT {
			return token.INT, nil
		}
		return 0, typeMismatch(e.Operator, leftType, rightType)
	case token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.STAR_STAR:
		if leftType == token.INT && rightType == token.INT {
			return token.INT, nil
		}
		return 0, typeMismatch(e.Operator, leftType, rightType)
	case token.LT, token.GT, token.LE, token.GE, token.EQ, token.NOT_EQ:
		if leftType != rightType {
			return 0, typeMismatch(e.Operator, leftType, rightType)
		}
		return token.BOOL, nil
	case token.AND_AND, token.OR_OR:
		if leftType == token.BOOL && rightType == token.BOOL {
			return token.BOOL, nil
		}
		return 0, typeMismatch(e.Operator, leftType, rightType)
	default:
		return 0, fmt.Errorf("unknown binary operator %s", e.Operator)
	}
}

func typeMismatch(op token.Type, left, right token.Type) error {
	return fmt.Errorf("operand type mismatch for '%s': %s and %s", op, left, right)
}

func callType(scope *symbol.Table, e *ast.FunctionCall) (token.Type, error) {
	argTypes := make([]token.Type, len(e.Args.Args))
	for i, arg := range e.Args.Args {
		t, err := ExprType(scope, arg.Value)
		if err != nil {
			return 0, err
		}
		argTypes[i] = t
	}
	sym, ok := scope.LookupFunction(e.Callee, argTypes)
	if !ok {
		return 0, fmt.Errorf("no overload of %q matches the given argument types", e.Callee)
	}
	return sym.Type, nil
}

// IsStringExpr classifies expr as string-producing: a
// string literal, an identifier bound to a string symbol, a '+' whose
// left or right operand itself classifies as string, or a call whose
// resolved overload returns string. It never errors —
// analysis has already rejected ill-typed programs by the time the IR
// generator runs — and defaults to false on anything it can't classify.
func IsStringExpr(scope *symbol.Table, expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return true
	case *ast.Identifier:
		sym, ok := scope.Lookup(e.Value)
		return ok && sym.Type == token.STRING_TYPE
	case *ast.BinaryOperation:
		if e.Operator == token.PLUS {
			return IsStringExpr(scope, e.Left) || IsStringExpr(scope, e.Right)
		}
		return false
	case *ast.FunctionCall:
		t, err := callType(scope, e)
		return err == nil && t == token.STRING_TYPE
	default:
		return false
	}
}
