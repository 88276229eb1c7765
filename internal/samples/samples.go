// Package samples provides the grammars and tokenizers shared by the test suites.
package samples

import (
	"github.com/sppf/dendroid/grammar"
	"github.com/sppf/dendroid/lexer"
)

// L1 is a small arithmetic grammar with left recursive sums and products.
func L1() *grammar.Grammar {
	return grammar.NewBuilder().
		DeclareTerminals("PLUS", "STAR", "INTEGER").
		Rule("p", "s").
		Rule("s", "s PLUS m", "m").
		Rule("m", "m STAR t", "t").
		Rule("t", "INTEGER").
		MustGrammar()
}

// L1Lexer tokenizes the input of L1.
func L1Lexer() *lexer.Rules {
	return lexer.MustNew(
		lexer.Verbatim(map[string]string{"+": "PLUS", "*": "STAR"}),
		lexer.Value(`\d+`, "INTEGER", lexer.Atoi),
	)
}

// L2 is the classical arithmetic expression grammar with parentheses.
func L2() *grammar.Grammar {
	return grammar.NewBuilder().
		DeclareTerminals("PLUS", "MINUS", "STAR", "SLASH").
		DeclareTerminals("LPAREN", "RPAREN", "NUMBER").
		Rule("p", "sum").
		Rule("sum", "sum PLUS product", "sum MINUS product", "product").
		Rule("product", "product STAR factor", "product SLASH factor", "factor").
		Rule("factor", "LPAREN sum RPAREN", "NUMBER").
		MustGrammar()
}

// L2Lexer tokenizes the input of L2.
func L2Lexer() *lexer.Rules {
	return lexer.MustNew(
		lexer.Verbatim(map[string]string{
			"+": "PLUS", "-": "MINUS", "*": "STAR", "/": "SLASH", "(": "LPAREN", ")": "RPAREN",
		}),
		lexer.Value(`\d+`, "NUMBER", lexer.Atoi),
	)
}

// L3 has nullable symbols and a cycle: Z => X Y Z => Z.
func L3() *grammar.Grammar {
	return grammar.NewBuilder().
		DeclareTerminals("a", "c", "d").
		Rule("Z", "d", "X Y Z").
		Rule("Y", "", "c").
		Rule("X", "Y", "a").
		MustGrammar()
}

// L5 is S => A; A => a A c | b.
func L5() *grammar.Grammar {
	return grammar.NewBuilder().
		DeclareTerminals("a", "b", "c").
		Rule("S", "A").
		Rule("A", "a A c", "b").
		MustGrammar()
}

// L8 is the highly ambiguous S => S S | x.
func L8() *grammar.Grammar {
	return grammar.NewBuilder().
		DeclareTerminals("x").
		Rule("S", "S S", "x").
		MustGrammar()
}

// L10 is immediately left recursive: A => A a | ε.
func L10() *grammar.Grammar {
	return grammar.NewBuilder().
		DeclareTerminals("a").
		Rule("A", "A a", "").
		MustGrammar()
}

// L11 is immediately right recursive: A => a A | ε.
func L11() *grammar.Grammar {
	return grammar.NewBuilder().
		DeclareTerminals("a").
		Rule("A", "a A", "").
		MustGrammar()
}

// L18 is hidden left recursive: S => X S a | a; X => ε.
func L18() *grammar.Grammar {
	return grammar.NewBuilder().
		DeclareTerminals("a").
		Rule("S", "X S a", "a").
		Rule("X", "").
		MustGrammar()
}

// L19 is hidden right recursive: S => a S X | a; X => ε.
func L19() *grammar.Grammar {
	return grammar.NewBuilder().
		DeclareTerminals("a").
		Rule("S", "a S X", "a").
		Rule("X", "").
		MustGrammar()
}

// Letters tokenizes space separated single letter terminals, eg. "x x x". Each letter
// is a token of the terminal of the same name.
func Letters() *lexer.Rules {
	verbatim := map[string]string{}
	for _, letter := range "abcdx" {
		verbatim[string(letter)] = string(letter)
	}
	return lexer.MustNew(lexer.Verbatim(verbatim))
}
