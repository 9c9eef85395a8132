package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	for k := ILLEGAL; k <= EOF; k++ {
		require.NotEmpty(t, k.String())
	}
}

func TestLookup(t *testing.T) {
	cases := map[string]Kind{
		"while": WHILE,
		"if":    IF,
		"else":  ELSE,
		"print": PRINT,
		"x":     ID,
		"Print": ID,
		"while2": ID,
	}
	for lexeme, want := range cases {
		require.Equal(t, want, Lookup(lexeme), lexeme)
	}
}

func TestTokenString(t *testing.T) {
	require.Equal(t, "42", Token{Kind: NUMBER, IntValue: 42}.String())
	require.Equal(t, "+", Token{Kind: OP, Lexeme: "+"}.String())
}
