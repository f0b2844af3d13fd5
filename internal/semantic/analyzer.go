// Package semantic implements Spade's semantic analysis pass: it populates
// the symbol table and rejects ill-typed programs.
package semantic

import (
	"fmt"

	"github.com/spade-lang/spade/internal/ast"
	"github.com/spade-lang/spade/internal/errors"
	"github.com/spade-lang/spade/internal/symbol"
	"github.com/spade-lang/spade/internal/token"
)

// Analyzer walks a Program, building a fresh symbol table per compilation
// (no process-wide global table) and computing expression
// types bottom-up.
type Analyzer struct {
	source string
	file   string
	errs   errors.List
}

// New creates an Analyzer. source/file are used only for diagnostics.
func New(source, file string) *Analyzer {
	return &Analyzer{source: source, file: file}
}

func (a *Analyzer) errorf(pos token.Position, format string, args ...any) {
	a.errs = append(a.errs, errors.New(errors.Semantic, pos, fmt.Sprintf(format, args...), a.source, a.file))
}

// Analyze type-checks prog and returns the populated global symbol table
// plus any semantic diagnostics.
func (a *Analyzer) Analyze(prog *ast.Program) (*symbol.Table, errors.List) {
	global := symbol.New()
	for _, stmt := range prog.Statements {
		a.analyzeStatement(global, stmt)
	}
	return global, a.errs
}

func (a *Analyzer) analyzeStatement(scope *symbol.Table, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		a.analyzeVariableDeclaration(scope, s)
	case *ast.Assignment:
		a.analyzeAssignment(scope, s)
	case *ast.FunctionDeclaration:
		a.analyzeFunctionDeclaration(scope, s)
	default:
		a.errorf(token.Position{}, "unsupported statement %T", stmt)
	}
}

func (a *Analyzer) analyzeVariableDeclaration(scope *symbol.Table, decl *ast.VariableDeclaration) {
	if decl.Initializer != nil {
		initType, err := ExprType(scope, decl.Initializer)
		if err != nil {
			a.errorf(decl.Token.Pos, "%s", err)
		} else if initType != decl.Type {
			a.errorf(decl.Token.Pos, "cannot initialize %s %q with %s value", decl.Type, decl.Name.Value, initType)
		}
	}

	if err := scope.AddVariable(decl.Name.Value, decl.Type); err != nil {
		a.errorf(decl.Name.Token.Pos, "%s", err)
	}
}

func (a *Analyzer) analyzeAssignment(scope *symbol.Table, assign *ast.Assignment) {
	target, ok := scope.Lookup(assign.Name.Value)
	if !ok {
		a.errorf(assign.Name.Token.Pos, "undeclared identifier %q", assign.Name.Value)
		return
	}
	if target.IsFunction() {
		a.errorf(assign.Name.Token.Pos, "%q is a function, not assignable", assign.Name.Value)
		return
	}

	valueType, err := ExprType(scope, assign.Value)
	if err != nil {
		a.errorf(assign.Token.Pos, "%s", err)
		return
	}
	if valueType != target.Type {
		a.errorf(assign.Token.Pos, "cannot assign %s value to %s variable %q", valueType, target.Type, assign.Name.Value)
	}
}

func (a *Analyzer) analyzeFunctionDeclaration(scope *symbol.Table, decl *ast.FunctionDeclaration) {
	params := make([]symbol.Param, len(decl.Params.Params))
	for i, p := range decl.Params.Params {
		params[i] = symbol.Param{Name: p.Name.Value, Type: p.Type}
	}

	if _, err := scope.AddFunction(decl.Name.Value, decl.ReturnType, params); err != nil {
		a.errorf(decl.Name.Token.Pos, "%s", err)
	}
}
