package grammar

import "sort"

// Kind of a grammar symbol.
type Kind int

const (
	// Terminal symbols are matched by input tokens.
	Terminal Kind = iota
	// NonTerminal symbols are rewritten by a rule.
	NonTerminal
)

func (k Kind) String() string {
	if k == Terminal {
		return "terminal"
	}
	return "non-terminal"
}

// A Symbol of a grammar.
//
// Symbols are compared by identity. The derived flags are only meaningful once the
// Grammar owning the symbol is complete.
type Symbol struct {
	Name string
	Kind Kind

	id         int
	nullable   bool
	productive bool
	cyclic     bool
}

// Pseudo-terminals found in FIRST and FOLLOW sets.
var (
	// Epsilon stands for the empty string.
	Epsilon = &Symbol{Name: "__epsilon", Kind: Terminal, id: 1 << 30}
	// EndMarker stands for the end of input.
	EndMarker = &Symbol{Name: "$$", Kind: Terminal, id: 1<<30 + 1}
)

// NewTerminal creates a terminal symbol.
func NewTerminal(name string) *Symbol { return &Symbol{Name: name, Kind: Terminal, id: -1} }

// NewNonTerminal creates a non-terminal symbol.
func NewNonTerminal(name string) *Symbol { return &Symbol{Name: name, Kind: NonTerminal, id: -1} }

// Terminal returns true if the symbol is a terminal.
func (s *Symbol) Terminal() bool { return s.Kind == Terminal }

// ID is the rank of the symbol in its grammar.
func (s *Symbol) ID() int { return s.id }

// Nullable returns true if the symbol derives the empty string.
func (s *Symbol) Nullable() bool { return s.nullable }

// Productive returns true if the symbol derives a string of terminals.
func (s *Symbol) Productive() bool { return s.productive }

// Cyclic returns true if the symbol derives itself, ie. X =>+ X.
func (s *Symbol) Cyclic() bool { return s.cyclic }

func (s *Symbol) String() string { return s.Name }

type symbolSet map[*Symbol]bool

// merge adds the members of other and reports whether the set grew.
func (s symbolSet) merge(other symbolSet) bool {
	grew := false
	for symbol := range other {
		if !s[symbol] {
			s[symbol] = true
			grew = true
		}
	}
	return grew
}

func (s symbolSet) sorted() []*Symbol {
	out := make([]*Symbol, 0, len(s))
	for symbol := range s {
		out = append(out, symbol)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func symbolNames(symbols []*Symbol) []string {
	out := make([]string, len(symbols))
	for i, symbol := range symbols {
		out[i] = symbol.Name
	}
	return out
}
