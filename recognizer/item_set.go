package recognizer

import (
	"strings"

	"github.com/sppf/dendroid/grammar"
)

type itemKey struct {
	dotted int
	origin int
}

type completedKey struct {
	head   *grammar.Symbol
	origin int
}

// An ItemSet holds the Earley items of one rank, in insertion order.
type ItemSet struct {
	Rank int

	items     []*EItem
	index     map[itemKey]*EItem
	expecting map[*grammar.Symbol][]*EItem
	completed map[completedKey][]*EItem
}

func newItemSet(rank int) *ItemSet {
	return &ItemSet{
		Rank:      rank,
		index:     map[itemKey]*EItem{},
		expecting: map[*grammar.Symbol][]*EItem{},
		completed: map[completedKey][]*EItem{},
	}
}

// Items in insertion order, pseudo items included.
func (s *ItemSet) Items() []*EItem { return s.items }

// Len is the number of items.
func (s *ItemSet) Len() int { return len(s.items) }

// Find returns the item with the given dotted item and origin, or nil.
func (s *ItemSet) Find(dotted *grammar.DottedItem, origin int) *EItem {
	return s.index[itemKey{dotted.ID(), origin}]
}

// ItemsExpecting returns the items whose next symbol is the given one. Pseudo items are
// never returned.
func (s *ItemSet) ItemsExpecting(symbol *grammar.Symbol) []*EItem { return s.expecting[symbol] }

// CompletedItems returns the completed items of the given head and origin.
func (s *ItemSet) CompletedItems(head *grammar.Symbol, origin int) []*EItem {
	return s.completed[completedKey{head, origin}]
}

// add returns the item for (dotted, origin), creating it if needed, and records pred as
// one of its predecessors.
func (s *ItemSet) add(dotted *grammar.DottedItem, origin int, algo Algo, pred *EItem) (*EItem, bool) {
	key := itemKey{dotted.ID(), origin}
	item, found := s.index[key]
	if !found {
		item = &EItem{Dotted: dotted, Origin: origin, Algo: algo, Rank: s.Rank}
		s.items = append(s.items, item)
		s.index[key] = item
		if next := dotted.NextSymbol(); next != nil {
			s.expecting[next] = append(s.expecting[next], item)
		} else {
			ckey := completedKey{dotted.Head(), origin}
			s.completed[ckey] = append(s.completed[ckey], item)
		}
	}
	if pred != nil {
		item.addPredecessor(pred)
	}
	return item, !found
}

func (s *ItemSet) String() string {
	lines := make([]string, len(s.items))
	for i, item := range s.items {
		lines[i] = item.String()
	}
	return strings.Join(lines, "\n")
}
