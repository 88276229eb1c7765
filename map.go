package dendroid

import (
	"io"
	"strings"

	"github.com/sppf/dendroid/lexer"
)

type mapperByTerminal struct {
	terminals map[string]bool
	produces  []string
	mapper    Mapper
}

// Mapper function for mutating tokens before they are recognized.
type Mapper func(token lexer.Token) (lexer.Token, error)

// Map is an Option that configures the Parser to apply a mapping function to each Token from the lexer.
//
// This can be useful to eg. upper-case all tokens of a certain terminal, or to turn some
// identifiers into keywords by changing their terminal.
//
// "terminals" specifies the terminals of the tokens that the Mapper will be applied to. If empty, all
// tokens will be mapped. The EOF token is never mapped.
func Map(mapper Mapper, terminals ...string) Option {
	return MapTo(mapper, nil, terminals...)
}

// MapTo is like Map for a Mapper that may rewrite the terminal of a token into one of "produces".
//
// The produced terminals count as terminals of the lexer, so that a grammar may use terminals
// only the Mapper emits, such as keywords carved out of identifiers.
func MapTo(mapper Mapper, produces []string, terminals ...string) Option {
	return func(p *Parser) error {
		m := mapperByTerminal{mapper: mapper, produces: produces}
		if len(terminals) > 0 {
			m.terminals = map[string]bool{}
			for _, terminal := range terminals {
				m.terminals[terminal] = true
			}
		}
		p.mappers = append(p.mappers, m)
		return nil
	}
}

// Upper is an Option that upper-cases the value of all tokens of the given terminals. Useful for
// case normalisation.
func Upper(terminals ...string) Option {
	return Map(func(token lexer.Token) (lexer.Token, error) {
		token.Value = strings.ToUpper(token.Value)
		return token, nil
	}, terminals...)
}

// Apply the mappers to all tokens coming out of a Lexer.
type mappingLexerDef struct {
	lexer.Definition
	mappers []mapperByTerminal
}

// Terminals of the underlying lexer followed by those only the mappers produce.
func (m *mappingLexerDef) Terminals() []string {
	terminals := append([]string{}, m.Definition.Terminals()...)
	seen := map[string]bool{}
	for _, terminal := range terminals {
		seen[terminal] = true
	}
	for _, mapper := range m.mappers {
		for _, terminal := range mapper.produces {
			if !seen[terminal] {
				seen[terminal] = true
				terminals = append(terminals, terminal)
			}
		}
	}
	return terminals
}

func (m *mappingLexerDef) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	lex, err := m.Definition.Lex(filename, r)
	if err != nil {
		return nil, err
	}
	return &mappingLexer{lex, m.mappers}, nil
}

type mappingLexer struct {
	lexer.Lexer
	mappers []mapperByTerminal
}

func (m *mappingLexer) Next() (lexer.Token, error) {
	t, err := m.Lexer.Next()
	if err != nil || t.EOF() {
		return t, err
	}
	for _, mapper := range m.mappers {
		if mapper.terminals != nil && !mapper.terminals[t.Terminal] {
			continue
		}
		if t, err = mapper.mapper(t); err != nil {
			return t, err
		}
	}
	return t, nil
}
