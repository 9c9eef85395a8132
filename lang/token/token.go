// Package token defines the lexical vocabulary shared by the lexer and the
// parser: the closed set of token kinds and the Token type itself.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind uint8

const (
	ILLEGAL Kind = iota

	WHILE
	IF
	ELSE
	PRINT

	NUMBER
	ID

	COMPOUND_OP //nolint:revive
	OP
	LOGICAL_OP //nolint:revive
	NOT

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	SEMI

	EOF
)

var kindNames = [...]string{
	ILLEGAL:     "illegal",
	WHILE:       "while",
	IF:          "if",
	ELSE:        "else",
	PRINT:       "print",
	NUMBER:      "number",
	ID:          "identifier",
	COMPOUND_OP: "compound operator",
	OP:          "operator",
	LOGICAL_OP:  "logical operator",
	NOT:         "!",
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACE:      "{",
	RBRACE:      "}",
	SEMI:        ";",
	EOF:         "end of input",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// keywords maps a lexeme to its keyword Kind, used by the lexer to make
// keywords win over plain identifiers.
var keywords = map[string]Kind{
	"while": WHILE,
	"if":    IF,
	"else":  ELSE,
	"print": PRINT,
}

// Lookup returns the keyword Kind for name, or ID if name is not a keyword.
func Lookup(name string) Kind {
	if k, ok := keywords[name]; ok {
		return k
	}
	return ID
}

// Token is a single lexical unit: a Kind plus its value. Lexeme holds the
// raw matched text for every kind; a NUMBER additionally carries its
// decoded value in IntValue.
type Token struct {
	Kind     Kind
	Lexeme   string
	IntValue int64 // valid only when Kind == NUMBER

	// Line is the 1-based source line the token started on, carried so the
	// parser can report diagnostics without threading a separate position
	// type through every AST node (the AST itself stays location-free).
	Line int
}

func (t Token) String() string {
	if t.Kind == NUMBER {
		return fmt.Sprintf("%d", t.IntValue)
	}
	return t.Lexeme
}
