// Package dendroid parses token streams with arbitrary context-free grammars into shared
// packed parse forests.
//
// A Parser combines a grammar with a lexer definition. Parsing first recognizes the input
// with the Earley algorithm, then walks the resulting chart backward to build a forest
// holding every derivation of the input:
//
//	g := grammar.NewBuilder().
//		DeclareTerminals("x").
//		Rule("S", "S S", "x").
//		MustGrammar()
//	parser := dendroid.MustBuild(g)
//	root, err := parser.ParseString("", "x x x")
//
// Grammars can also be written in EBNF, see the ebnf package.
//
// Each non-terminal matched over a range of the input is a single node of the forest, no
// matter how many parents refer to it. A non-terminal with more than one derivation over
// a range is an OrNode whose children are the derivations.
package dendroid
