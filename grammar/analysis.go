package grammar

func (g *Grammar) validate() error {
	terminals := g.Terminals()
	if len(terminals) == 0 {
		return errorf(ErrNoTerminal, nil, "grammar doesn't contain any terminal symbol")
	}

	used := symbolSet{}
	defined := symbolSet{}
	for _, rule := range g.rules {
		defined[rule.Head] = true
		for _, alt := range rule.Alternatives {
			for _, symbol := range alt {
				used[symbol] = true
			}
		}
	}
	if unused := g.collect(func(s *Symbol) bool { return s.Terminal() && !used[s] }); len(unused) > 0 {
		return errorf(ErrUnusedTerminal, unused,
			"terminal symbols %s never appear in production rules", quoteNames(unused))
	}
	if undefined := g.collect(func(s *Symbol) bool { return !s.Terminal() && !defined[s] }); len(undefined) > 0 {
		return errorf(ErrUndefinedNonTerminal, undefined,
			"non-terminal symbols %s never appear in head of any production rule", quoteNames(undefined))
	}

	g.markProductive()
	if barren := g.collect(func(s *Symbol) bool { return !s.productive }); len(barren) > 0 {
		return errorf(ErrNonProductive, barren, "symbols %s are non-productive", quoteNames(barren))
	}

	reachable := g.reachable()
	if unreachable := g.collect(func(s *Symbol) bool { return !reachable[s] }); len(unreachable) > 0 {
		return errorf(ErrUnreachable, unreachable,
			"symbols %s are unreachable from start symbol", quoteNames(unreachable))
	}
	return nil
}

func (g *Grammar) collect(predicate func(s *Symbol) bool) []string {
	out := []string{}
	for _, symbol := range g.symbols {
		if predicate(symbol) {
			out = append(out, symbol.Name)
		}
	}
	return out
}

// markProductive computes the productive symbols by fixpoint. An empty alternative is
// productive.
func (g *Grammar) markProductive() {
	for _, symbol := range g.symbols {
		symbol.productive = symbol.Terminal()
	}
	for changed := true; changed; {
		changed = false
		for _, rule := range g.rules {
			if rule.Head.productive {
				continue
			}
			for _, alt := range rule.Alternatives {
				if all(alt, func(s *Symbol) bool { return s.productive }) {
					rule.Head.productive = true
					changed = true
					break
				}
			}
		}
	}
}

func (g *Grammar) reachable() symbolSet {
	start := g.StartSymbol()
	reached := symbolSet{start: true}
	backlog := []*Symbol{start}
	for len(backlog) > 0 {
		symbol := backlog[len(backlog)-1]
		backlog = backlog[:len(backlog)-1]
		for _, alt := range g.ruleFor[symbol].Alternatives {
			for _, member := range alt {
				if reached[member] {
					continue
				}
				reached[member] = true
				if !member.Terminal() {
					backlog = append(backlog, member)
				}
			}
		}
	}
	return reached
}

func (g *Grammar) markNullable() {
	for changed := true; changed; {
		changed = false
		for _, rule := range g.rules {
			if rule.Head.nullable {
				continue
			}
			for _, alt := range rule.Alternatives {
				if all(alt, func(s *Symbol) bool { return s.nullable }) {
					rule.Head.nullable = true
					changed = true
					break
				}
			}
		}
	}
}

// markCyclic finds the symbols X such that X =>+ X. X derives Y in one step without
// consuming input when some alternative of X is αYβ with α and β nullable.
func (g *Grammar) markCyclic() {
	unit := map[*Symbol][]*Symbol{}
	for _, rule := range g.rules {
		for _, alt := range rule.Alternatives {
			for i, symbol := range alt {
				if symbol.Terminal() {
					continue
				}
				if all(alt[:i], nullable) && all(alt[i+1:], nullable) {
					unit[rule.Head] = append(unit[rule.Head], symbol)
				}
			}
		}
	}
	for _, rule := range g.rules {
		head := rule.Head
		seen := symbolSet{}
		backlog := append([]*Symbol{}, unit[head]...)
		for len(backlog) > 0 {
			symbol := backlog[len(backlog)-1]
			backlog = backlog[:len(backlog)-1]
			if symbol == head {
				head.cyclic = true
				g.cyclic = true
				break
			}
			if seen[symbol] {
				continue
			}
			seen[symbol] = true
			backlog = append(backlog, unit[symbol]...)
		}
	}
}

func (g *Grammar) buildFirstSets() {
	g.first = map[*Symbol]symbolSet{}
	for _, symbol := range g.symbols {
		switch {
		case symbol.Terminal():
			g.first[symbol] = symbolSet{symbol: true}
		case symbol.nullable:
			g.first[symbol] = symbolSet{Epsilon: true}
		default:
			g.first[symbol] = symbolSet{}
		}
	}
	for changed := true; changed; {
		changed = false
		for _, rule := range g.rules {
			for _, alt := range rule.Alternatives {
				first, _ := g.firstOf(alt)
				if g.first[rule.Head].merge(first) {
					changed = true
				}
			}
		}
	}
}

// firstOf computes the FIRST set of a sequence without Epsilon, and whether the whole
// sequence is nullable.
func (g *Grammar) firstOf(symbols []*Symbol) (symbolSet, bool) {
	out := symbolSet{}
	for _, symbol := range symbols {
		for member := range g.first[symbol] {
			if member != Epsilon {
				out[member] = true
			}
		}
		if !symbol.nullable {
			return out, false
		}
	}
	return out, true
}

func (g *Grammar) buildFollowSets() {
	g.follow = map[*Symbol]symbolSet{}
	for _, symbol := range g.NonTerminals() {
		g.follow[symbol] = symbolSet{}
	}
	g.follow[g.StartSymbol()][EndMarker] = true
	for changed := true; changed; {
		changed = false
		for _, rule := range g.rules {
			for _, alt := range rule.Alternatives {
				for i, symbol := range alt {
					if symbol.Terminal() {
						continue
					}
					trailer, nullable := g.firstOf(alt[i+1:])
					if g.follow[symbol].merge(trailer) {
						changed = true
					}
					if nullable && g.follow[symbol].merge(g.follow[rule.Head]) {
						changed = true
					}
				}
			}
		}
	}
}

// First returns the FIRST set of a symbol. It contains Epsilon when the symbol is
// nullable.
func (g *Grammar) First(symbol *Symbol) []*Symbol { return g.first[symbol].sorted() }

// FirstOf returns the FIRST set of a sequence of symbols. It contains Epsilon when the
// whole sequence is nullable.
func (g *Grammar) FirstOf(symbols ...*Symbol) []*Symbol {
	first, nullable := g.firstOf(symbols)
	if nullable {
		first[Epsilon] = true
	}
	return first.sorted()
}

// Follow returns the FOLLOW set of a non-terminal. It contains EndMarker when the symbol
// can end a sentence.
func (g *Grammar) Follow(symbol *Symbol) []*Symbol { return g.follow[symbol].sorted() }

func nullable(s *Symbol) bool { return s.nullable }

func all(symbols []*Symbol, predicate func(s *Symbol) bool) bool {
	for _, symbol := range symbols {
		if !predicate(symbol) {
			return false
		}
	}
	return true
}
