// Package lexer maps OilLang source text to an ordered sequence of tokens.
// It is a single-pass scanner with at most two characters of lookahead: every token
// kind is tried in a fixed priority order so that keywords win over plain
// identifiers and multi-character operators win over their single-character
// prefixes.
package lexer

import (
	"fmt"
	"strings"

	"github.com/oillang/oil/lang/token"
)

// SyntaxError reports an unrecognized character. It carries enough context
// to render the "SyntaxError at line N" shape required of every diagnostic
// in this pipeline (see parser.SyntaxError for the parser's equivalent).
type SyntaxError struct {
	Line       int
	SourceLine string
	Msg        string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("SyntaxError at line %d:\n  %s\n  %s", e.Line, e.SourceLine, e.Msg)
}

// Lex tokenizes src and returns the ordered token sequence, or a
// *SyntaxError for the first unrecognized character encountered. src is
// expected to already have had `//` line comments stripped (that
// preprocessing step lives outside the core, see internal/preprocess).
func Lex(src string) ([]token.Token, error) {
	l := &lexer{
		src:   src,
		lines: strings.Split(src, "\n"),
		line:  1,
	}
	return l.run()
}

type lexer struct {
	src  string
	pos  int
	line int

	lines []string

	toks []token.Token
}

func (l *lexer) run() ([]token.Token, error) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
			continue
		case c == '\n':
			l.pos++
			l.line++
			continue
		case isLetter(c):
			l.lexIdent()
			continue
		case isDigit(c):
			l.lexNumber()
			continue
		}

		if l.lexOperatorOrPunct() {
			continue
		}

		return nil, l.errorf("Unexpected character: %q", string(c))
	}
	return l.toks, nil
}

func (l *lexer) sourceLine() string {
	if l.line-1 < len(l.lines) {
		return l.lines[l.line-1]
	}
	return ""
}

func (l *lexer) errorf(format string, args ...any) error {
	return &SyntaxError{
		Line:       l.line,
		SourceLine: l.sourceLine(),
		Msg:        fmt.Sprintf(format, args...),
	}
}

func (l *lexer) emit(kind token.Kind, lexeme string) {
	l.toks = append(l.toks, token.Token{Kind: kind, Lexeme: lexeme, Line: l.line})
}

func (l *lexer) lexIdent() {
	start := l.pos
	for l.pos < len(l.src) && isAlnum(l.src[l.pos]) {
		l.pos++
	}
	lexeme := l.src[start:l.pos]
	l.emit(token.Lookup(lexeme), lexeme)
}

func (l *lexer) lexNumber() {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	lexeme := l.src[start:l.pos]
	var v int64
	for i := 0; i < len(lexeme); i++ {
		v = v*10 + int64(lexeme[i]-'0')
	}
	l.toks = append(l.toks, token.Token{Kind: token.NUMBER, IntValue: v, Lexeme: lexeme, Line: l.line})
}

// compoundOps and multiCharOps are checked, in this order, ahead of
// singleCharOps, so a compound operator wins over a plain one, and a
// multi-character operator wins over its single-character prefix.
var compoundOps = []string{"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^="}
var multiCharOps = []string{"==", "!=", "<=", ">=", "=<"}
var singleCharOps = "+-*/<>="
var logicalOps = []string{"&&", "||"}

func (l *lexer) lexOperatorOrPunct() bool {
	rest := l.src[l.pos:]

	for _, op := range compoundOps {
		if strings.HasPrefix(rest, op) {
			l.emit(token.COMPOUND_OP, op)
			l.pos += len(op)
			return true
		}
	}
	for _, op := range multiCharOps {
		if strings.HasPrefix(rest, op) {
			l.emit(token.OP, op)
			l.pos += len(op)
			return true
		}
	}
	for _, op := range logicalOps {
		if strings.HasPrefix(rest, op) {
			l.emit(token.LOGICAL_OP, op)
			l.pos += len(op)
			return true
		}
	}

	c := rest[0]
	if strings.IndexByte(singleCharOps, c) >= 0 {
		l.emit(token.OP, string(c))
		l.pos++
		return true
	}
	switch c {
	case '!':
		l.emit(token.NOT, "!")
	case '(':
		l.emit(token.LPAREN, "(")
	case ')':
		l.emit(token.RPAREN, ")")
	case '{':
		l.emit(token.LBRACE, "{")
	case '}':
		l.emit(token.RBRACE, "}")
	case ';':
		l.emit(token.SEMI, ";")
	default:
		return false
	}
	l.pos++
	return true
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isAlnum(c byte) bool  { return isLetter(c) || isDigit(c) }
