// Package parser implements the recursive-descent, precedence-climbing
// parser that turns a token stream into the AST defined in lang/ast.
//
// Grammar (lowest to highest expression precedence, all left-associative):
//
//	program    = stmt* ;
//	stmt       = while | if | print | assignStmt ;
//	while      = "while" "(" expr ")" "{" stmt* "}" ;
//	if         = "if" "(" expr ")" "{" stmt* "}" [ "else" "{" stmt* "}" ] ;
//	print      = "print" expr ";" ;
//	assignStmt = ID "=" expr ";"
//	           | ID compoundOp expr ";" ;
//	expr       = logic ;
//	logic      = comparison ( ("&&" | "||") comparison )* ;
//	comparison = sum ( ("==" | "!=" | "<" | "<=" | ">" | ">=") sum )* ;
//	sum        = term ( ("+" | "-") term )* ;
//	term       = factor ( ("*" | "/") factor )* ;
//	factor     = "!" factor | NUMBER | ID | "(" expr ")" ;
package parser

import (
	"fmt"
	"strings"

	"github.com/oillang/oil/lang/ast"
	"github.com/oillang/oil/lang/token"
)

// SyntaxError reports an unexpected token or malformed statement. It carries
// the same line/source-line context as lexer.SyntaxError so both render
// identically to a caller.
type SyntaxError struct {
	Line       int
	SourceLine string
	Msg        string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("SyntaxError at line %d:\n  %s\n  %s", e.Line, e.SourceLine, e.Msg)
}

// Parse parses a complete token stream (as produced by lang/lexer.Lex) into
// an ordered sequence of top-level statements. source is the original
// source text, used only to render the offending line in diagnostics.
func Parse(toks []token.Token, source string) (_ []ast.Stmt, err error) {
	p := &parser{
		toks:  toks,
		lines: strings.Split(source, "\n"),
	}
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	return p.program(), nil
}

type parser struct {
	toks  []token.Token
	pos   int
	lines []string
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos < len(p.toks) {
		return p.toks[p.pos], true
	}
	return token.Token{}, false
}

func (p *parser) peekAt(offset int) (token.Token, bool) {
	i := p.pos + offset
	if i < len(p.toks) {
		return p.toks[i], true
	}
	return token.Token{}, false
}

func (p *parser) lastLine() int {
	if p.pos > 0 {
		return p.toks[p.pos-1].Line
	}
	if len(p.toks) > 0 {
		return p.toks[0].Line
	}
	return 1
}

func (p *parser) sourceLine(line int) string {
	if line-1 >= 0 && line-1 < len(p.lines) {
		return p.lines[line-1]
	}
	return ""
}

// fail raises a SyntaxError anchored at line (or the last consumed token's
// line if line is 0), unwound via panic/recover in Parse so that deeply
// nested recursive-descent calls don't need to thread errors back up by
// hand.
func (p *parser) fail(line int, format string, args ...any) {
	if line == 0 {
		line = p.lastLine()
	}
	panic(&SyntaxError{
		Line:       line,
		SourceLine: p.sourceLine(line),
		Msg:        fmt.Sprintf(format, args...),
	})
}

// consume requires the current token to have the given kind (and, if
// wantLexeme is non-empty, the given lexeme), advances past it, and returns
// it. It fails with a descriptive SyntaxError otherwise.
func (p *parser) consume(kind token.Kind, wantLexeme string) token.Token {
	tok, ok := p.peek()
	if !ok {
		p.fail(0, "Unexpected end of input, expected %s", kind)
	}
	if tok.Kind != kind {
		p.fail(tok.Line, "Expected %s, got %s", kind, tok.Kind)
	}
	if wantLexeme != "" && tok.Lexeme != wantLexeme {
		p.fail(tok.Line, "Expected %s, got %s", wantLexeme, tok.Lexeme)
	}
	p.pos++
	return tok
}

func (p *parser) program() []ast.Stmt {
	var stmts []ast.Stmt
	for {
		if _, ok := p.peek(); !ok {
			break
		}
		stmts = append(stmts, p.stmt())
	}
	return stmts
}

// block parses `{` stmt* `}`, used by while/if/else bodies.
func (p *parser) block() ast.Block {
	p.consume(token.LBRACE, "")
	var stmts ast.Block
	for {
		tok, ok := p.peek()
		if !ok {
			p.fail(0, "Unexpected end of input, expected }")
		}
		if tok.Kind == token.RBRACE {
			break
		}
		stmts = append(stmts, p.stmt())
	}
	p.consume(token.RBRACE, "")
	return stmts
}

func (p *parser) stmt() ast.Stmt {
	tok, ok := p.peek()
	if !ok {
		p.fail(0, "Unexpected end of input")
	}

	switch tok.Kind {
	case token.WHILE:
		return p.whileStmt()
	case token.PRINT:
		p.consume(token.PRINT, "")
		e := p.expr()
		p.consume(token.SEMI, "")
		return &ast.Print{Expr: e}
	case token.IF:
		return p.ifStmt()
	case token.ID:
		return p.assignStmt(tok)
	default:
		p.fail(tok.Line, "Unexpected token %s", tok)
		panic("unreachable")
	}
}

func (p *parser) assignStmt(nameTok token.Token) ast.Stmt {
	next, ok := p.peekAt(1)
	switch {
	case ok && next.Kind == token.OP && next.Lexeme == "=":
		p.consume(token.ID, "")
		p.consume(token.OP, "=")
		e := p.expr()
		p.consume(token.SEMI, "")
		return &ast.Assign{Name: nameTok.Lexeme, Expr: e}
	case ok && next.Kind == token.COMPOUND_OP:
		p.consume(token.ID, "")
		opTok := p.consume(token.COMPOUND_OP, "")
		e := p.expr()
		p.consume(token.SEMI, "")
		return &ast.CompoundAssign{Name: nameTok.Lexeme, Op: opTok.Lexeme, Expr: e}
	default:
		p.fail(nameTok.Line, "Unexpected identifier %s, expected assignment", nameTok.Lexeme)
		panic("unreachable")
	}
}

func (p *parser) whileStmt() ast.Stmt {
	p.consume(token.WHILE, "")
	p.consume(token.LPAREN, "")
	cond := p.expr()
	p.consume(token.RPAREN, "")
	body := p.block()
	return &ast.While{Cond: cond, Body: body}
}

func (p *parser) ifStmt() ast.Stmt {
	p.consume(token.IF, "")
	p.consume(token.LPAREN, "")
	cond := p.expr()
	p.consume(token.RPAREN, "")
	then := p.block()

	var els ast.Block
	if tok, ok := p.peek(); ok && tok.Kind == token.ELSE {
		p.consume(token.ELSE, "")
		els = p.block()
	}
	return &ast.If{Cond: cond, Then: then, Else: els}
}

// ---- expressions, precedence-climbing low to high ----

func (p *parser) expr() ast.Expr { return p.logic() }

func (p *parser) logic() ast.Expr {
	n := p.comparison()
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != token.LOGICAL_OP {
			return n
		}
		p.pos++
		right := p.comparison()
		n = &ast.BinOp{Op: tok.Lexeme, Left: n, Right: right}
	}
}

var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}

func (p *parser) comparison() ast.Expr {
	n := p.sum()
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != token.OP || !comparisonOps[tok.Lexeme] {
			return n
		}
		p.pos++
		right := p.sum()
		n = &ast.BinOp{Op: tok.Lexeme, Left: n, Right: right}
	}
}

func (p *parser) sum() ast.Expr {
	n := p.term()
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != token.OP || (tok.Lexeme != "+" && tok.Lexeme != "-") {
			return n
		}
		p.pos++
		right := p.term()
		n = &ast.BinOp{Op: tok.Lexeme, Left: n, Right: right}
	}
}

func (p *parser) term() ast.Expr {
	n := p.factor()
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != token.OP || (tok.Lexeme != "*" && tok.Lexeme != "/") {
			return n
		}
		p.pos++
		right := p.factor()
		n = &ast.BinOp{Op: tok.Lexeme, Left: n, Right: right}
	}
}

func (p *parser) factor() ast.Expr {
	tok, ok := p.peek()
	if !ok {
		p.fail(0, "Unexpected end of input in factor")
	}

	switch tok.Kind {
	case token.NOT:
		p.pos++
		return &ast.UnOp{Op: "!", Expr: p.factor()}
	case token.NUMBER:
		p.pos++
		return &ast.Number{Value: tok.IntValue}
	case token.ID:
		p.pos++
		return &ast.Var{Name: tok.Lexeme}
	case token.LPAREN:
		p.pos++
		e := p.expr()
		p.consume(token.RPAREN, "")
		return e
	default:
		p.fail(tok.Line, "Unexpected token in factor: %s", tok)
		panic("unreachable")
	}
}
