// Package parser implements Spade's recursive-descent parser.
package parser

import (
	"fmt"

	"github.com/spade-lang/spade/internal/ast"
	"github.com/spade-lang/spade/internal/errors"
	"github.com/spade-lang/spade/internal/lexer"
	"github.com/spade-lang/spade/internal/token"
)

// Parser turns a token stream into an *ast.Program, accumulating syntax
// errors with source-line diagnostics instead of panicking.
type Parser struct {
	l      *lexer.Lexer
	source string
	file   string

	cur  token.Token
	peek token.Token

	// prevConsumedToken is the last token consumed by parsePrimary, used
	// only to reproduce the implicit-multiplication kink in parseFactor.
	prevConsumedToken token.Token

	errs errors.List
}

// New creates a Parser over source. file is used only for diagnostics.
func New(source, file string) *Parser {
	p := &Parser{l: lexer.New(source), source: source, file: file}
	p.advance()
	p.advance()
	return p
}

// Errors returns every syntax diagnostic accumulated while parsing.
func (p *Parser) Errors() errors.List { return p.errs }

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errs = append(p.errs, errors.New(errors.Syntactic, pos, fmt.Sprintf(format, args...), p.source, p.file))
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

// expect advances past cur if it has type t, else records an error and
// leaves the cursor unmoved.
func (p *Parser) expect(t token.Type) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.errorf(p.cur.Pos, "expected %s, found %q", t, p.cur.Literal)
	return false
}

// recover skips tokens until the statement boundary ';'/'}' (consuming it)
// or EOF, so a single syntax error doesn't abort the whole file.
func (p *Parser) recover() {
	for !p.curIs(token.EOF) {
		if p.curIs(token.SEMICOLON) {
			p.advance()
			return
		}
		if p.curIs(token.RBRACE) {
			p.advance()
			return
		}
		p.advance()
	}
}

// ParseProgram parses the whole token stream: program := statement* EOF.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		before := len(p.errs)
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if len(p.errs) > before {
			p.recover()
		}
	}
	return prog
}

// parseStatement dispatches on the leading keyword of a statement: a
// leading type token peeks one ahead to decide variable-decl vs.
// function-decl; a leading identifier must be an assignment.
func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curIs(token.IDENT) && p.peekIs(token.ASSIGN):
		return p.parseAssignment()
	case p.cur.Type.IsTypeKeyword():
		if p.peekIs(token.TASK) {
			return p.parseFunctionDeclaration()
		}
		if p.peekIs(token.IDENT) {
			return p.parseVariableDeclaration()
		}
		p.errorf(p.peek.Pos, "expected identifier or 'task' after type, found %q", p.peek.Literal)
		return nil
	default:
		p.errorf(p.cur.Pos, "unexpected token %q at start of statement", p.cur.Literal)
		return nil
	}
}

// variable_decl := type IDENT ('=' expression)? ';'
func (p *Parser) parseVariableDeclaration() ast.Statement {
	decl := &ast.VariableDeclaration{Token: p.cur, Type: p.cur.Type}
	p.advance() // consume type

	decl.Name = &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	if !p.expect(token.IDENT) {
		return nil
	}

	if p.curIs(token.ASSIGN) {
		p.advance()
		decl.Initializer = p.parseExpression()
		if decl.Initializer == nil {
			return nil
		}
	}

	if !p.expect(token.SEMICOLON) {
		return nil
	}
	return decl
}

// assignment := IDENT '=' expression ';'
func (p *Parser) parseAssignment() ast.Statement {
	assign := &ast.Assignment{Token: p.cur, Name: &ast.Identifier{Token: p.cur, Value: p.cur.Literal}}
	p.advance() // consume IDENT
	if !p.expect(token.ASSIGN) {
		return nil
	}
	assign.Value = p.parseExpression()
	if assign.Value == nil {
		return nil
	}
	if !p.expect(token.SEMICOLON) {
		return nil
	}
	return assign
}

// function_decl := type 'task' IDENT '(' parameter_list? ')' '{' '}' ';'
//
// Function bodies are required empty (function execution is out of scope; a
// Question (ii)); this is a grammar-level restriction, not a semantic one.
func (p *Parser) parseFunctionDeclaration() ast.Statement {
	decl := &ast.FunctionDeclaration{Token: p.cur, ReturnType: p.cur.Type}
	p.advance() // consume return type
	if !p.expect(token.TASK) {
		return nil
	}

	decl.Name = &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	if !p.expect(token.IDENT) {
		return nil
	}

	if !p.expect(token.LPAREN) {
		return nil
	}
	decl.Params = p.parseParameterList()
	if !p.expect(token.RPAREN) {
		return nil
	}

	if !p.expect(token.LBRACE) {
		return nil
	}
	if !p.curIs(token.RBRACE) {
		p.errorf(p.cur.Pos, "function bodies must be empty, found %q", p.cur.Literal)
		return nil
	}
	p.advance() // consume '}'
	decl.Body = &ast.Program{}

	if !p.expect(token.SEMICOLON) {
		return nil
	}
	return decl
}

// parameter_list := type IDENT (',' type IDENT)*
func (p *Parser) parseParameterList() *ast.ParameterList {
	list := &ast.ParameterList{}
	if !p.cur.Type.IsTypeKeyword() {
		return list // empty parameter list
	}
	for {
		param := &ast.Parameter{Token: p.cur, Type: p.cur.Type}
		p.advance()
		param.Name = &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
		if !p.expect(token.IDENT) {
			return list
		}
		list.Params = append(list.Params, param)

		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return list
}

// expression := logical_or
func (p *Parser) parseExpression() ast.Expression {
	return p.parseLogicalOr()
}

// logical_or := logical_and ('||' logical_and)*
func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for left != nil && p.curIs(token.OR_OR) {
		opTok := p.cur
		p.advance()
		right := p.parseLogicalAnd()
		if right == nil {
			return nil
		}
		left = &ast.BinaryOperation{Token: opTok, Operator: token.OR_OR, Left: left, Right: right}
	}
	return left
}

// logical_and := equality ('&&' equality)*
func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseEquality()
	for left != nil && p.curIs(token.AND_AND) {
		opTok := p.cur
		p.advance()
		right := p.parseEquality()
		if right == nil {
			return nil
		}
		left = &ast.BinaryOperation{Token: opTok, Operator: token.AND_AND, Left: left, Right: right}
	}
	return left
}

// equality := comparison (('==' | '!=') comparison)*
func (p *Parser) parseEquality() ast.Expression {
	left := p.parseComparison()
	for left != nil && (p.curIs(token.EQ) || p.curIs(token.NOT_EQ)) {
		opTok := p.cur
		op := p.cur.Type
		p.advance()
		right := p.parseComparison()
		if right == nil {
			return nil
		}
		left = &ast.BinaryOperation{Token: opTok, Operator: op, Left: left, Right: right}
	}
	return left
}

// comparison := term (('<' | '>' | '<=' | '>=') term)*
func (p *Parser) parseComparison() ast.Expression {
	left := p.parseTerm()
	for left != nil && isComparisonOp(p.cur.Type) {
		opTok := p.cur
		op := p.cur.Type
		p.advance()
		right := p.parseTerm()
		if right == nil {
			return nil
		}
		left = &ast.BinaryOperation{Token: opTok, Operator: op, Left: left, Right: right}
	}
	return left
}

func isComparisonOp(t token.Type) bool {
	switch t {
	case token.LT, token.GT, token.LE, token.GE:
		return true
	default:
		return false
	}
}

// term := factor (('+' | '-') factor)*  (left-associative)
func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()
	for left != nil && (p.curIs(token.PLUS) || p.curIs(token.MINUS)) {
		opTok := p.cur
		op := p.cur.Type
		p.advance()
		right := p.parseFactor()
		if right == nil {
			return nil
		}
		left = &ast.BinaryOperation{Token: opTok, Operator: op, Left: left, Right: right}
	}
	return left
}

// factor := exponent (('*' | '/' | '%') exponent)*  (left-associative)
//
// Edge case: if, after parsing the left operand, the current token is '(',
// an implicit-multiplication primary is parsed: `5(3)` means `5 * (3)`. The
// reference implementation mislabels this node's operator with whatever
// token preceded the '(' rather than an explicit '*'; that mislabeling is a
// known upstream bug and is deliberately not reproduced here — this branch
// always tags the node as STAR so semantic analysis and codegen treat it as
// ordinary multiplication.
func (p *Parser) parseFactor() ast.Expression {
	left := p.parseExponent()
	for left != nil {
		switch {
		case p.curIs(token.STAR) || p.curIs(token.SLASH) || p.curIs(token.PERCENT):
			opTok := p.cur
			op := p.cur.Type
			p.advance()
			right := p.parseExponent()
			if right == nil {
				return nil
			}
			left = &ast.BinaryOperation{Token: opTok, Operator: op, Left: left, Right: right}
		case p.curIs(token.LPAREN):
			prevTok := p.prevConsumedToken
			right := p.parsePrimary()
			if right == nil {
				return nil
			}
			left = &ast.BinaryOperation{Token: prevTok, Operator: token.STAR, Left: left, Right: right}
		default:
			return left
		}
	}
	return left
}

// exponent := unary ('**' exponent)?  (right-associative)
func (p *Parser) parseExponent() ast.Expression {
	left := p.parseUnary()
	if left != nil && p.curIs(token.STAR_STAR) {
		opTok := p.cur
		p.advance()
		right := p.parseExponent()
		if right == nil {
			return nil
		}
		return &ast.BinaryOperation{Token: opTok, Operator: token.STAR_STAR, Left: left, Right: right}
	}
	return left
}

// unary := ('-' | '!') primary | primary
func (p *Parser) parseUnary() ast.Expression {
	if p.curIs(token.MINUS) || p.curIs(token.BANG) {
		opTok := p.cur
		op := p.cur.Type
		p.advance()
		operand := p.parsePrimary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryOperation{Token: opTok, Operator: op, Operand: operand}
	}
	return p.parsePrimary()
}

// primary := NUMBER | BOOL | STRING_LIT | IDENT call_args?
//
//	| '(' expression ')'
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		p.setPrevConsumed(tok)
		var v int32
		fmt.Sscanf(tok.Literal, "%d", &v)
		return &ast.Number{Token: tok, Value: v}
	case token.TRUE, token.FALSE:
		p.advance()
		p.setPrevConsumed(tok)
		return &ast.Boolean{Token: tok, Value: tok.Type == token.TRUE}
	case token.NULL:
		p.advance()
		p.setPrevConsumed(tok)
		return &ast.Null{Token: tok}
	case token.STRING:
		p.advance()
		p.setPrevConsumed(tok)
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.IDENT:
		p.advance()
		p.setPrevConsumed(tok)
		if p.curIs(token.LPAREN) {
			return p.parseCallArgs(tok)
		}
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		closeTok := p.cur
		if !p.expect(token.RPAREN) {
			return nil
		}
		p.setPrevConsumed(closeTok)
		return expr
	default:
		p.errorf(tok.Pos, "unexpected token %q in expression", tok.Literal)
		return nil
	}
}

// call_args := '(' (expression (',' expression)*)? ')'
//
// An identifier is a call iff immediately followed by '('; an empty
// argument list is legal.
func (p *Parser) parseCallArgs(callee token.Token) ast.Expression {
	call := &ast.FunctionCall{Token: callee, Callee: callee.Literal, Args: &ast.ArgumentList{}}
	if !p.expect(token.LPAREN) {
		return nil
	}
	if p.curIs(token.RPAREN) {
		p.advance()
		return call
	}
	for {
		arg := p.parseExpression()
		if arg == nil {
			return nil
		}
		call.Args.Args = append(call.Args.Args, &ast.Argument{Value: arg})
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return call
}

// prevConsumedToken tracks the last token consumed, used only for the
// implicit-multiplication kink in parseFactor.
func (p *Parser) setPrevConsumed(tok token.Token) { p.prevConsumedToken = tok }
