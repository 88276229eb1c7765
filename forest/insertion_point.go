package forest

import (
	"strings"

	"github.com/sppf/dendroid/grammar"
	"github.com/sppf/dendroid/recognizer"
)

// An insertionPoint is an AND node under construction. Its slots are filled from right
// to left: the slots from dot to the end are filled.
type insertionPoint struct {
	node  *AndNode
	entry *entry
	deriv *derivation
	dot   int
}

func newInsertionPoint(node *AndNode, e *entry, d *derivation) *insertionPoint {
	return &insertionPoint{node: node, entry: e, deriv: d, dot: len(node.Children)}
}

// full returns true once every slot is filled.
func (ip *insertionPoint) full() bool { return ip.dot == 0 }

// item is the chart item with the dot at the insertion point's dot.
func (ip *insertionPoint) item() *recognizer.EItem { return ip.deriv.items[ip.dot] }

// slot is the symbol of the next slot to fill.
func (ip *insertionPoint) slot() *grammar.Symbol { return ip.deriv.dotted.Symbols()[ip.dot-1] }

// childKey identifies the node expected in the next slot.
func (ip *insertionPoint) childKey() entryKey { return ip.deriv.childKey(ip.dot - 1) }

// fill the next slot and move the dot left.
func (ip *insertionPoint) fill(child ParseNode) error {
	if ip.full() {
		return invariantf("fill", "no free slot left in %s for %s", ip, child)
	}
	if ip.node.Children[ip.dot-1] != nil {
		return invariantf("fill", "slot %d of %s is already filled", ip.dot-1, ip)
	}
	ip.node.Children[ip.dot-1] = child
	ip.dot--
	return nil
}

func (ip *insertionPoint) String() string {
	names := make([]string, 0, len(ip.node.Children)+1)
	for i, symbol := range ip.deriv.dotted.Symbols() {
		if i == ip.dot && !ip.full() {
			names = append(names, "^")
		}
		names = append(names, symbol.Name)
	}
	if ip.dot == len(ip.node.Children) && !ip.full() {
		names = append(names, "^")
	}
	return ip.node.Head().Name + " => " + strings.Join(names, " ") + " " + ip.node.Range.String()
}
