package grammar

import "strings"

type builderState int

const (
	declaring builderState = iota
	building
	completed
)

// A Builder assembles a Grammar from symbol names.
//
// eg.
//
//	g, err := grammar.NewBuilder().
//		DeclareTerminals("a", "b").
//		Rule("S", "A").
//		Rule("A", "a A", "b", "").
//		Grammar()
//
// Terminals must be declared before the first rule. Any other name used in a rule is a
// non-terminal. The empty string denotes the empty alternative. The first error stops
// the construction and is reported by Grammar.
type Builder struct {
	state   builderState
	grammar *Grammar
	symbols map[string]*Symbol
	err     error
}

// NewBuilder creates a grammar Builder.
func NewBuilder() *Builder {
	return &Builder{grammar: New(), symbols: map[string]*Symbol{}}
}

// DeclareTerminals adds terminal symbols.
func (b *Builder) DeclareTerminals(names ...string) *Builder {
	if b.err != nil {
		return b
	}
	if b.state != declaring {
		b.err = errorf(ErrLateDeclaration, names,
			"terminal symbols may only be declared before the first rule")
		return b
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			b.err = errorf(ErrEmptyName, nil, "a symbol name cannot be empty")
			return b
		}
		if _, ok := b.symbols[name]; ok {
			continue
		}
		terminal := NewTerminal(name)
		b.symbols[name] = terminal
		b.grammar.register(terminal)
	}
	return b
}

// Rule adds a rule. Each alternative is a whitespace separated list of symbol names.
func (b *Builder) Rule(head string, alternatives ...string) *Builder {
	if b.err != nil {
		return b
	}
	if b.state == completed {
		b.err = errorf(ErrFrozen, []string{head}, "cannot add a production rule to a complete grammar")
		return b
	}
	b.state = building
	head = strings.TrimSpace(head)
	if head == "" {
		b.err = errorf(ErrEmptyName, nil, "a symbol name cannot be empty")
		return b
	}
	if symbol := b.symbols[head]; symbol != nil && symbol.Terminal() {
		b.err = errorf(ErrTerminalHead, []string{head},
			"terminal symbol '%s' may not be on left-side of a rule", head)
		return b
	}
	alts := make([]Alternative, len(alternatives))
	for i, text := range alternatives {
		alt := Alternative{}
		for _, name := range strings.Fields(text) {
			alt = append(alt, b.symbol(name))
		}
		alts[i] = alt
	}
	rule, err := NewRule(b.symbol(head), alts...)
	if err != nil {
		b.err = err
		return b
	}
	b.err = b.grammar.AddRule(rule)
	return b
}

func (b *Builder) symbol(name string) *Symbol {
	if symbol, ok := b.symbols[name]; ok {
		return symbol
	}
	symbol := NewNonTerminal(name)
	b.symbols[name] = symbol
	return symbol
}

// Grammar completes and returns the grammar.
func (b *Builder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.grammar.Complete(); err != nil {
		return nil, err
	}
	b.state = completed
	return b.grammar, nil
}

// MustGrammar is like Grammar but panics on error.
func (b *Builder) MustGrammar() *Grammar {
	g, err := b.Grammar()
	if err != nil {
		panic(err)
	}
	return g
}
