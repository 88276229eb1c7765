package recognizer

import (
	"fmt"
	"strings"

	"github.com/sppf/dendroid/grammar"
	"github.com/sppf/dendroid/lexer"
)

// A Chart is the outcome of a recognition: one item set per rank, from 0 to the number
// of tokens when the whole input was scanned.
type Chart struct {
	grammar *grammar.Grammar
	sets    []*ItemSet
	tokens  []lexer.Token
	eof     lexer.Token
	start   *EItem
	success *EItem
	failure *Failure
}

func newChart(g *grammar.Grammar) *Chart {
	c := &Chart{grammar: g, start: newStartItem(g.StartSymbol())}
	first := c.appendSet()
	first.items = append(first.items, c.start)
	return c
}

func (c *Chart) appendSet() *ItemSet {
	set := newItemSet(len(c.sets))
	c.sets = append(c.sets, set)
	return set
}

// Grammar recognized by the chart.
func (c *Chart) Grammar() *grammar.Grammar { return c.grammar }

// Sets of the chart by rank.
func (c *Chart) Sets() []*ItemSet { return c.sets }

// Set returns the item set at the given rank.
func (c *Chart) Set(rank int) *ItemSet { return c.sets[rank] }

// Len is the number of item sets.
func (c *Chart) Len() int { return len(c.sets) }

// Tokens read from the lexer, EOF excluded. Recognition stops reading at the first
// token it cannot scan.
func (c *Chart) Tokens() []lexer.Token { return c.tokens }

// Successful returns true if the input is a sentence of the grammar.
func (c *Chart) Successful() bool { return c.success != nil }

// Failure describes why recognition failed, or nil on success.
func (c *Chart) Failure() *Failure { return c.failure }

// StartItem is the pseudo item seeding set 0.
func (c *Chart) StartItem() *EItem { return c.start }

// SuccessItem is the pseudo item whose predecessors are the completed start items
// spanning the whole input, or nil when recognition failed.
func (c *Chart) SuccessItem() *EItem { return c.success }

// lookahead returns the terminal of the token at rank, or nil at the end of input and
// for tokens of unknown terminals.
func (c *Chart) lookahead(rank int) *grammar.Symbol {
	if rank >= len(c.tokens) {
		return nil
	}
	return c.grammar.Symbol(c.tokens[rank].Terminal)
}

// String dumps the chart, one line per item with its step and predecessors.
func (c *Chart) String() string {
	w := &strings.Builder{}
	for _, set := range c.sets {
		fmt.Fprintf(w, "State[%d]\n", set.Rank)
		for _, item := range set.items {
			fmt.Fprintf(w, "  %s (%s)", item, item.Algo)
			if preds := item.Predecessors(); len(preds) > 0 {
				texts := make([]string, len(preds))
				for i, pred := range preds {
					texts[i] = pred.String()
				}
				fmt.Fprintf(w, " <- [%s]", strings.Join(texts, "; "))
			}
			w.WriteString("\n")
		}
	}
	return w.String()
}
