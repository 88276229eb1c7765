package lexer_test

import (
	"testing"

	require "github.com/alecthomas/assert/v2"

	"github.com/sppf/dendroid/lexer"
)

func TestTextScanner(t *testing.T) {
	def := lexer.TextScanner("if", "+")
	tokens, err := lexer.ConsumeAll(def.LexString("", `if x + 12 "s" 1.5 'c' -`))
	require.NoError(t, err)
	terminals := []string{}
	for _, token := range tokens {
		terminals = append(terminals, token.Terminal)
	}
	require.Equal(t, []string{"if", lexer.Ident, "+", lexer.Int, lexer.String, lexer.Float, lexer.Char, "-", lexer.EOF}, terminals)
	require.Equal(t, lexer.Position{Offset: 3, Line: 1, Column: 4}, tokens[1].Pos)
	require.Equal(t, int64(12), tokens[3].Literal.(int64))
	require.Equal(t, "s", tokens[4].Literal.(string))
	require.Equal(t, `"s"`, tokens[4].Value)
	require.Equal(t, 1.5, tokens[5].Literal.(float64))
	require.Equal(t, 'c', tokens[6].Literal.(rune))
	require.True(t, tokens[0].Literal == nil)
	require.True(t, tokens[1].Literal == nil)
	require.True(t, tokens[2].Literal == nil)
}

func TestTextScannerTerminals(t *testing.T) {
	require.Equal(t,
		[]string{lexer.Ident, lexer.Int, lexer.Float, lexer.String, lexer.Char, "+", "if"},
		lexer.TextScanner("if", "+").Terminals())
}

func TestTextScannerError(t *testing.T) {
	_, err := lexer.ConsumeAll(lexer.TextScanner().LexString("in.txt", "\"unterminated"))
	require.Error(t, err)
	_, ok := err.(*lexer.Error)
	require.True(t, ok)
}
