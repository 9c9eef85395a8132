package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oillang/oil/lang/token"
)

func TestLexKeywordsBeatIdent(t *testing.T) {
	toks, err := Lex("while x whiley")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.WHILE, token.ID, token.ID}, kinds(toks))
}

func TestLexCompoundBeatsOp(t *testing.T) {
	toks, err := Lex("x += 1")
	require.NoError(t, err)
	require.Equal(t, token.COMPOUND_OP, toks[1].Kind)
	require.Equal(t, "+=", toks[1].Lexeme)
}

func TestLexMultiCharOpBeatsSingle(t *testing.T) {
	toks, err := Lex("a <= b < c")
	require.NoError(t, err)
	require.Equal(t, "<=", toks[1].Lexeme)
	require.Equal(t, "<", toks[3].Lexeme)
}

func TestLexNumber(t *testing.T) {
	toks, err := Lex("42")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.Equal(t, token.NUMBER, toks[0].Kind)
	require.Equal(t, int64(42), toks[0].IntValue)
}

func TestLexLogicalAndNot(t *testing.T) {
	toks, err := Lex("a && b || !c")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.ID, token.LOGICAL_OP, token.ID, token.LOGICAL_OP, token.NOT, token.ID}, kinds(toks))
}

func TestLexWhitespaceSkippedTracksLines(t *testing.T) {
	toks, err := Lex("x\ny\n  z")
	require.NoError(t, err)
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[1].Line)
	require.Equal(t, 3, toks[2].Line)
}

func TestLexUnexpectedCharacter(t *testing.T) {
	_, err := Lex("x = 1 @ 2;")
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	require.Equal(t, 1, synErr.Line)
	require.Contains(t, synErr.Msg, "@")
}

func TestLexIdempotent(t *testing.T) {
	src := "x = 5; while (x < 3) { x += 1; }"
	a, err := Lex(src)
	require.NoError(t, err)
	b, err := Lex(src)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestLexEqLessTokenizesAsSingleOp(t *testing.T) {
	toks, err := Lex("a =< b")
	require.NoError(t, err)
	require.Equal(t, token.OP, toks[1].Kind)
	require.Equal(t, "=<", toks[1].Lexeme)
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}
