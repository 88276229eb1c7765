package dendroid

import (
	"github.com/sppf/dendroid/lexer"
)

// An Option to modify the behaviour of the Parser.
type Option func(p *Parser) error

// Lexer is an Option that sets the lexer to use with the given grammar.
//
// The default is a lexer.TextScanner with the terminals of the grammar as literals.
func Lexer(def lexer.Definition) Option {
	return func(p *Parser) error {
		p.lex = def
		return nil
	}
}

// MaxThreads limits the number of walk threads used to build a forest.
//
// Highly ambiguous inputs need many threads; parsing them fails once the limit is reached.
func MaxThreads(n int) Option {
	return func(p *Parser) error {
		p.maxThreads = n
		return nil
	}
}
