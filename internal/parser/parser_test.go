package parser

import (
	"testing"

	"github.com/spade-lang/spade/internal/ast"
	"github.com/spade-lang/spade/internal/token"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(src, "test.sp")
	prog := p.ParseProgram()
	if p.Errors().HasErrors() {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return prog
}

func TestVariableDeclarationWithInitializer(t *testing.T) {
	prog := parseOK(t, `int x = 2 + 3 * 4;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VariableDeclaration, got %T", prog.Statements[0])
	}
	if decl.Type != token.INT || decl.Name.Value != "x" {
		t.Fatalf("unexpected decl: %+v", decl)
	}
}

// Precedence: `+` binds looser than `*`.
func TestPrecedenceMulBindsTighterThanAdd(t *testing.T) {
	prog := parseOK(t, `int x = 2 + 3 * 4;`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	bin, ok := decl.Initializer.(*ast.BinaryOperation)
	if !ok || bin.Operator != token.PLUS {
		t.Fatalf("expected top-level '+', got %#v", decl.Initializer)
	}
	rhs, ok := bin.Right.(*ast.BinaryOperation)
	if !ok || rhs.Operator != token.STAR {
		t.Fatalf("expected right operand to be '*', got %#v", bin.Right)
	}
}

// Exponent is right-associative: 2 ** 3 ** 2 == 2 ** (3 ** 2).
func TestExponentRightAssociative(t *testing.T) {
	prog := parseOK(t, `int y = 2 ** 3 ** 2;`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	top, ok := decl.Initializer.(*ast.BinaryOperation)
	if !ok || top.Operator != token.STAR_STAR {
		t.Fatalf("expected top-level '**', got %#v", decl.Initializer)
	}
	left, ok := top.Left.(*ast.Number)
	if !ok || left.Value != 2 {
		t.Fatalf("expected left operand 2, got %#v", top.Left)
	}
	right, ok := top.Right.(*ast.BinaryOperation)
	if !ok || right.Operator != token.STAR_STAR {
		t.Fatalf("expected right subtree to itself be '**', got %#v", top.Right)
	}
}

// `+ - * / %` are left-associative.
func TestAdditiveLeftAssociative(t *testing.T) {
	prog := parseOK(t, `int x = 10 - 3 - 2;`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	top := decl.Initializer.(*ast.BinaryOperation)
	if top.Operator != token.MINUS {
		t.Fatalf("expected top-level '-', got %s", top.Operator)
	}
	leftSub, ok := top.Left.(*ast.BinaryOperation)
	if !ok || leftSub.Operator != token.MINUS {
		t.Fatalf("expected left subtree '10 - 3', got %#v", top.Left)
	}
	if n, ok := top.Right.(*ast.Number); !ok || n.Value != 2 {
		t.Fatalf("expected right leaf 2, got %#v", top.Right)
	}
}

func TestAssignment(t *testing.T) {
	prog := parseOK(t, `a = a + 1;`)
	assign, ok := prog.Statements[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", prog.Statements[0])
	}
	if assign.Name.Value != "a" {
		t.Fatalf("unexpected target: %s", assign.Name.Value)
	}
}

func TestFunctionDeclarationEmptyBody(t *testing.T) {
	prog := parseOK(t, `int task add(int a, int b) {};`)
	decl, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *ast.FunctionDeclaration, got %T", prog.Statements[0])
	}
	if decl.Name.Value != "add" || len(decl.Params.Params) != 2 {
		t.Fatalf("unexpected decl: %+v", decl)
	}
}

func TestFunctionDeclarationRejectsNonEmptyBody(t *testing.T) {
	p := New(`int task f() { int x = 1; };`, "test.sp")
	p.ParseProgram()
	if !p.Errors().HasErrors() {
		t.Fatal("expected an error for a non-empty function body")
	}
}

func TestFunctionCallEmptyArgs(t *testing.T) {
	prog := parseOK(t, `int x = f();`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	call, ok := decl.Initializer.(*ast.FunctionCall)
	if !ok || call.Callee != "f" || len(call.Args.Args) != 0 {
		t.Fatalf("unexpected call: %#v", decl.Initializer)
	}
}

func TestFunctionCallWithArgs(t *testing.T) {
	prog := parseOK(t, `int x = f(1, 2 + 3);`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	call := decl.Initializer.(*ast.FunctionCall)
	if len(call.Args.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args.Args))
	}
}

func TestParenthesizedExpression(t *testing.T) {
	prog := parseOK(t, `int x = (2 + 3) * 4;`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	top := decl.Initializer.(*ast.BinaryOperation)
	if top.Operator != token.STAR {
		t.Fatalf("expected top-level '*', got %s", top.Operator)
	}
	if _, ok := top.Left.(*ast.BinaryOperation); !ok {
		t.Fatalf("expected parenthesized '+' on the left, got %#v", top.Left)
	}
}

// `5(3)` is implicit multiplication: a non-identifier primary directly
// followed by '(' parses as STAR, not a call (calls only follow IDENT).
func TestImplicitMultiplicationAfterNonIdentPrimary(t *testing.T) {
	prog := parseOK(t, `int x = 5(3);`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	bin, ok := decl.Initializer.(*ast.BinaryOperation)
	if !ok || bin.Operator != token.STAR {
		t.Fatalf("expected implicit '*', got %#v", decl.Initializer)
	}
	left, ok := bin.Left.(*ast.Number)
	if !ok || left.Value != 5 {
		t.Fatalf("expected left operand 5, got %#v", bin.Left)
	}
	right, ok := bin.Right.(*ast.Number)
	if !ok || right.Value != 3 {
		t.Fatalf("expected right operand 3, got %#v", bin.Right)
	}
}

// The kink also fires after a parenthesized expression: `(2 + 3)(4)`.
func TestImplicitMultiplicationAfterParenExpr(t *testing.T) {
	prog := parseOK(t, `int x = (2 + 3)(4);`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	bin, ok := decl.Initializer.(*ast.BinaryOperation)
	if !ok || bin.Operator != token.STAR {
		t.Fatalf("expected implicit '*', got %#v", decl.Initializer)
	}
	if _, ok := bin.Left.(*ast.BinaryOperation); !ok {
		t.Fatalf("expected parenthesized '+' on the left, got %#v", bin.Left)
	}
	right, ok := bin.Right.(*ast.Number)
	if !ok || right.Value != 4 {
		t.Fatalf("expected right operand 4, got %#v", bin.Right)
	}
}

func TestSyntaxErrorRecoversToNextStatement(t *testing.T) {
	p := New(`int x = ; int y = 5;`, "test.sp")
	prog := p.ParseProgram()
	if !p.Errors().HasErrors() {
		t.Fatal("expected a syntax error on the first statement")
	}
	found := false
	for _, stmt := range prog.Statements {
		if decl, ok := stmt.(*ast.VariableDeclaration); ok && decl.Name.Value == "y" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected parser to recover and still parse the second statement")
	}
}

func TestMissingSemicolonIsReported(t *testing.T) {
	p := New(`int x = 1`, "test.sp")
	p.ParseProgram()
	if !p.Errors().HasErrors() {
		t.Fatal("expected a missing-';' error")
	}
}
