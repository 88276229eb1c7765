// Package grammar models context-free grammars for the Earley recognizer.
//
// A Grammar is assembled from terminal symbols and rules, then frozen by Complete, which
// validates it and computes the derived properties (nullable, productive and cyclic
// symbols, FIRST and FOLLOW sets) and the dotted items the recognizer walks over.
package grammar

// A Grammar is an ordered collection of rules, one per non-terminal.
//
// The head of the first rule is the start symbol.
type Grammar struct {
	symbols  []*Symbol
	byName   map[string]*Symbol
	rules    []*Rule
	ruleFor  map[*Symbol]*Rule
	items    []*DottedItem
	first    map[*Symbol]symbolSet
	follow   map[*Symbol]symbolSet
	cyclic   bool
	complete bool
}

// New creates an empty grammar over the given terminals.
func New(terminals ...*Symbol) *Grammar {
	g := &Grammar{
		byName:  map[string]*Symbol{},
		ruleFor: map[*Symbol]*Rule{},
	}
	for _, terminal := range terminals {
		g.register(terminal)
	}
	return g
}

// AddRule appends a rule to the grammar.
//
// Symbols are identified by name: a symbol of the rule whose name is already known to the
// grammar is replaced by the known symbol.
func (g *Grammar) AddRule(rule *Rule) error {
	if g.complete {
		return errorf(ErrFrozen, nil, "cannot add rule '%s' to a complete grammar", rule)
	}
	head, err := g.intern(rule.Head)
	if err != nil {
		if known := g.byName[rule.Head.Name]; known != nil && known.Terminal() {
			return errorf(ErrTerminalHead, []string{known.Name},
				"terminal symbol '%s' may not be on left-side of a rule", known.Name)
		}
		return err
	}
	if _, ok := g.ruleFor[head]; ok {
		return errorf(ErrDuplicateHead, []string{head.Name},
			"non-terminal '%s' is on left-hand side of more than one rule", head.Name)
	}
	for _, alt := range rule.Alternatives {
		for i, symbol := range alt {
			if alt[i], err = g.intern(symbol); err != nil {
				return err
			}
		}
	}
	rule.Head = head
	rule.id = len(g.rules)
	g.rules = append(g.rules, rule)
	g.ruleFor[head] = rule
	return nil
}

func (g *Grammar) intern(symbol *Symbol) (*Symbol, error) {
	known, ok := g.byName[symbol.Name]
	if !ok {
		g.register(symbol)
		return symbol, nil
	}
	if known.Kind != symbol.Kind {
		return nil, errorf(ErrKindConflict, []string{symbol.Name},
			"symbol '%s' is used both as %s and %s", symbol.Name, known.Kind, symbol.Kind)
	}
	return known, nil
}

func (g *Grammar) register(symbol *Symbol) {
	if _, ok := g.byName[symbol.Name]; ok {
		return
	}
	symbol.id = len(g.symbols)
	g.symbols = append(g.symbols, symbol)
	g.byName[symbol.Name] = symbol
}

// Complete validates the grammar and computes its derived properties.
//
// The grammar is immutable afterwards. Calling Complete again is a no-op.
func (g *Grammar) Complete() error {
	if g.complete {
		return nil
	}
	if err := g.validate(); err != nil {
		return err
	}
	g.markNullable()
	g.markCyclic()
	g.buildFirstSets()
	g.buildFollowSets()
	g.buildItems()
	g.complete = true
	return nil
}

// IsComplete returns true once Complete succeeded.
func (g *Grammar) IsComplete() bool { return g.complete }

// StartSymbol is the head of the first rule, or nil if there is no rule.
func (g *Grammar) StartSymbol() *Symbol {
	if len(g.rules) == 0 {
		return nil
	}
	return g.rules[0].Head
}

// Rules in definition order.
func (g *Grammar) Rules() []*Rule { return g.rules }

// Symbols in registration order.
func (g *Grammar) Symbols() []*Symbol { return g.symbols }

// Symbol returns the symbol with the given name, or nil.
func (g *Grammar) Symbol(name string) *Symbol { return g.byName[name] }

// RuleFor returns the rule rewriting the given non-terminal, or nil.
func (g *Grammar) RuleFor(symbol *Symbol) *Rule { return g.ruleFor[symbol] }

// Terminals in registration order.
func (g *Grammar) Terminals() []*Symbol { return g.filter(Terminal) }

// NonTerminals in registration order.
func (g *Grammar) NonTerminals() []*Symbol { return g.filter(NonTerminal) }

func (g *Grammar) filter(kind Kind) []*Symbol {
	out := []*Symbol{}
	for _, symbol := range g.symbols {
		if symbol.Kind == kind {
			out = append(out, symbol)
		}
	}
	return out
}

// Nullable returns true if the symbol derives the empty string.
func (g *Grammar) Nullable(symbol *Symbol) bool { return symbol.nullable }

// Productive returns true if the symbol derives a string of terminals.
func (g *Grammar) Productive(symbol *Symbol) bool { return symbol.productive }

// Cyclic returns true if some symbol derives itself, ie. X =>+ X.
func (g *Grammar) Cyclic() bool { return g.cyclic }

// Items returns every dotted item, indexed by their ID.
func (g *Grammar) Items() []*DottedItem { return g.items }

// Item returns the dotted item for the given alternative and dot position.
func (g *Grammar) Item(rule *Rule, alt, pos int) *DottedItem {
	return rule.items[alt][pos]
}

// NextItem returns the item with the dot moved one symbol to the right, or nil if the
// item is completed.
func (g *Grammar) NextItem(item *DottedItem) *DottedItem {
	if item.Completed() {
		return nil
	}
	return g.items[item.id+1]
}

// PredictedItems returns the items with the dot at the start of each alternative.
func (g *Grammar) PredictedItems(rule *Rule) []*DottedItem {
	out := make([]*DottedItem, len(rule.items))
	for i, items := range rule.items {
		out[i] = items[0]
	}
	return out
}

// ReduceItems returns the completed item of each alternative.
func (g *Grammar) ReduceItems(rule *Rule) []*DottedItem {
	out := make([]*DottedItem, len(rule.items))
	for i, items := range rule.items {
		out[i] = items[len(items)-1]
	}
	return out
}

func (g *Grammar) buildItems() {
	for _, rule := range g.rules {
		rule.items = make([][]*DottedItem, len(rule.Alternatives))
		for alt, symbols := range rule.Alternatives {
			for pos := 0; pos <= len(symbols); pos++ {
				first, nullable := g.firstOf(symbols[pos:])
				item := &DottedItem{
					Rule:         rule,
					Alt:          alt,
					Pos:          pos,
					id:           len(g.items),
					first:        first,
					restNullable: nullable,
				}
				rule.items[alt] = append(rule.items[alt], item)
				g.items = append(g.items, item)
			}
		}
	}
}
