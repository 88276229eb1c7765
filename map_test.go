package dendroid_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sppf/dendroid"
	"github.com/sppf/dendroid/grammar"
	"github.com/sppf/dendroid/lexer"
)

func TestUpper(t *testing.T) {
	g := grammar.NewBuilder().
		DeclareTerminals("Ident").
		Rule("S", "Ident Ident").
		MustGrammar()
	parser := dendroid.MustBuild(g, dendroid.Upper(lexer.Ident))
	actual, err := parser.Lex("", strings.NewReader("hello world"))
	require.NoError(t, err)
	require.Len(t, actual, 3)
	require.Equal(t, lexer.Token{
		Terminal: lexer.Ident, Value: "WORLD",
		Pos: lexer.Position{Offset: 6, Line: 1, Column: 7},
	}, actual[1])
	require.Equal(t, "HELLO", actual[0].Value)
	require.True(t, actual[2].EOF())
}

func TestMapKeywords(t *testing.T) {
	g := grammar.NewBuilder().
		DeclareTerminals("Ident", "LET", "=", "Int").
		Rule("S", "LET Ident = Int").
		MustGrammar()
	keyword := func(token lexer.Token) (lexer.Token, error) {
		if strings.EqualFold(token.Value, "let") {
			token.Terminal = "LET"
		}
		return token, nil
	}
	parser := dendroid.MustBuild(g, dendroid.Map(keyword, lexer.Ident))
	root, err := parser.ParseString("", "let x = 1")
	require.NoError(t, err)
	require.Equal(t, "S => LET Ident = Int [0..4]", root.String())

	parser = dendroid.MustBuild(g)
	_, err = parser.ParseString("", "let x = 1")
	require.EqualError(t, err, `1:1: unexpected token "let" (expected LET)`)
}

func TestMapError(t *testing.T) {
	g := grammar.NewBuilder().
		DeclareTerminals("Int").
		Rule("S", "Int").
		MustGrammar()
	reject := func(token lexer.Token) (lexer.Token, error) {
		return token, lexer.Errorf(token.Pos, "rejected %s", token.Value)
	}
	parser := dendroid.MustBuild(g, dendroid.Map(reject))
	_, err := parser.ParseString("", "42")
	require.EqualError(t, err, "1:1: rejected 42")
}

func TestMapToKeywordsWithRulesLexer(t *testing.T) {
	g := grammar.NewBuilder().
		DeclareTerminals("LET", "IDENT", "EQ", "INT").
		Rule("S", "LET IDENT EQ INT").
		MustGrammar()
	def := lexer.MustNew(
		lexer.Verbatim(map[string]string{"=": "EQ"}),
		lexer.Value(`[a-z]+`, "IDENT", nil),
		lexer.Value(`\d+`, "INT", lexer.Atoi),
	)
	keyword := func(token lexer.Token) (lexer.Token, error) {
		if token.Value == "let" {
			token.Terminal = "LET"
		}
		return token, nil
	}

	_, err := dendroid.Build(g, dendroid.Lexer(def), dendroid.Map(keyword, "IDENT"))
	require.EqualError(t, err, "the lexer never produces the terminals LET")

	parser, err := dendroid.Build(g, dendroid.Lexer(def), dendroid.MapTo(keyword, []string{"LET"}, "IDENT"))
	require.NoError(t, err)
	require.Equal(t, []string{"EQ", "IDENT", "INT", "LET"}, sortedTerminals(parser.Lexer()))
	root, err := parser.ParseString("", "let x = 1")
	require.NoError(t, err)
	require.Equal(t, "S => LET IDENT EQ INT [0..4]", root.String())

	_, err = parser.ParseString("", "x x = 1")
	require.EqualError(t, err, `1:1: unexpected token "x" (expected LET)`)
}

func sortedTerminals(def lexer.Definition) []string {
	terminals := append([]string{}, def.Terminals()...)
	sort.Strings(terminals)
	return terminals
}
