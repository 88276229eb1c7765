package forest

import (
	"github.com/sppf/dendroid/grammar"
	"github.com/sppf/dendroid/lexer"
	"github.com/sppf/dendroid/recognizer"
)

// entryKey identifies the node of a non-terminal over a range.
type entryKey struct {
	symbol *grammar.Symbol
	lower  int
	upper  int
}

func (k entryKey) sameRange(other entryKey) bool {
	return k.lower == other.lower && k.upper == other.upper
}

// A derivation is one way a completed item matches its range: the chart items of its
// alternative for every dot position, and the rank of the set holding each of them.
type derivation struct {
	dotted *grammar.DottedItem
	items  []*recognizer.EItem
	bounds []int
}

func (d *derivation) empty() bool { return len(d.items) == 1 }

// childKey identifies the node of the i-th symbol, which must be a non-terminal.
func (d *derivation) childKey(i int) entryKey {
	return entryKey{d.dotted.Symbols()[i], d.bounds[i], d.bounds[i+1]}
}

// An entry of the sharing table: the node of a non-terminal over a range, built once
// whatever the number of parents reaching it.
type entry struct {
	key    entryKey
	node   ParseNode
	derivs []*derivation
	// nodes[i] is the AND or empty rule node of derivs[i].
	nodes []ParseNode
	// started once a thread walks the derivations.
	started  bool
	pending  int
	complete bool
	waiters  []*walkProgress
	parents  []*insertionPoint
}

// scaffold holds the state shared by the threads of one walk.
type scaffold struct {
	chart     *recognizer.Chart
	grammar   *grammar.Grammar
	tokens    []lexer.Token
	entries   map[entryKey]*entry
	terminals map[int]*TerminalNode
}

func newScaffold(chart *recognizer.Chart) *scaffold {
	return &scaffold{
		chart:     chart,
		grammar:   chart.Grammar(),
		tokens:    chart.Tokens(),
		entries:   map[entryKey]*entry{},
		terminals: map[int]*TerminalNode{},
	}
}

// terminal returns the node of the token at rank.
func (s *scaffold) terminal(rank int) *TerminalNode {
	if node, ok := s.terminals[rank]; ok {
		return node
	}
	token := s.tokens[rank]
	node := &TerminalNode{Symbol: s.grammar.Symbol(token.Terminal), Token: token, Range: Range{rank, rank + 1}}
	s.terminals[rank] = node
	return node
}

// lookup returns the entry of key, creating it if needed.
func (s *scaffold) lookup(key entryKey) (*entry, error) {
	if e, ok := s.entries[key]; ok {
		return e, nil
	}
	e := s.create(key, nil)
	if e == nil {
		return nil, invariantf("share", "no acyclic derivation of %s %s", key.symbol, Range{key.lower, key.upper})
	}
	return e, nil
}

// create an entry with its derivations, or return nil if it has none.
//
// In cyclic grammars a derivation is dropped when one of its children spans the same
// range as the entry and is the entry itself or one of the entries being created. The
// other children over the same range are created right away so that the dropped
// derivations are known before the entry is used.
func (s *scaffold) create(key entryKey, creating []entryKey) *entry {
	e := &entry{key: key}
	s.entries[key] = e
	creating = append(creating[:len(creating):len(creating)], key)
	for _, d := range s.derivations(key) {
		if s.grammar.Cyclic() && !s.acyclic(key, d, creating) {
			continue
		}
		e.derivs = append(e.derivs, d)
	}
	if len(e.derivs) == 0 {
		delete(s.entries, key)
		return nil
	}

	rng := Range{key.lower, key.upper}
	for _, d := range e.derivs {
		var node ParseNode
		if d.empty() {
			node = &EmptyRuleNode{Rule: d.dotted.Rule, Alt: d.dotted.Alt, Range: rng}
		} else {
			node = newAndNode(d.dotted.Rule, d.dotted.Alt, rng)
			e.pending++
		}
		e.nodes = append(e.nodes, node)
	}
	if len(e.nodes) == 1 {
		e.node = e.nodes[0]
	} else {
		e.node = &OrNode{Symbol: key.symbol, Range: rng, Children: e.nodes}
	}
	e.complete = e.pending == 0
	return e
}

func (s *scaffold) acyclic(key entryKey, d *derivation, creating []entryKey) bool {
	for i, symbol := range d.dotted.Symbols() {
		if symbol.Terminal() {
			continue
		}
		child := d.childKey(i)
		if !child.sameRange(key) {
			continue
		}
		for _, ancestor := range creating {
			if ancestor == child {
				return false
			}
		}
		if _, ok := s.entries[child]; ok {
			continue
		}
		if s.create(child, creating) == nil {
			return false
		}
	}
	return true
}

// derivations enumerates the derivations of the chart for key, walking the
// predecessors backward from each completed item. Derivations of an alternative come
// by descending split ranks.
func (s *scaffold) derivations(key entryKey) []*derivation {
	var out []*derivation
	for _, completed := range s.chart.Set(key.upper).CompletedItems(key.symbol, key.lower) {
		out = append(out, s.splits(completed)...)
	}
	return out
}

func (s *scaffold) splits(completed *recognizer.EItem) []*derivation {
	dotted := completed.Dotted
	symbols := dotted.Symbols()
	m := len(symbols)
	items := make([]*recognizer.EItem, m+1)
	bounds := make([]int, m+1)
	items[m], bounds[m] = completed, completed.Rank

	var out []*derivation
	var walk func(pos int)
	walk = func(pos int) {
		if pos == 0 {
			if bounds[0] == completed.Origin {
				out = append(out, &derivation{
					dotted: dotted,
					items:  append([]*recognizer.EItem{}, items...),
					bounds: append([]int{}, bounds...),
				})
			}
			return
		}
		rank := bounds[pos]
		symbol := symbols[pos-1]
		before := s.grammar.Item(dotted.Rule, dotted.Alt, pos-1)
		if symbol.Terminal() {
			if rank == 0 || s.tokens[rank-1].Terminal != symbol.Name {
				return
			}
			if prev := s.chart.Set(rank - 1).Find(before, completed.Origin); prev != nil {
				items[pos-1], bounds[pos-1] = prev, rank-1
				walk(pos - 1)
			}
			return
		}
		seen := map[int]bool{}
		for _, pred := range items[pos].Predecessors() {
			if pred.Dotted == nil || !pred.Completed() || pred.Head() != symbol || seen[pred.Origin] {
				continue
			}
			seen[pred.Origin] = true
			if prev := s.chart.Set(pred.Origin).Find(before, completed.Origin); prev != nil {
				items[pos-1], bounds[pos-1] = prev, pred.Origin
				walk(pos - 1)
			}
		}
	}
	walk(m)
	return out
}
