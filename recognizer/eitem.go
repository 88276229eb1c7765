package recognizer

import (
	"strconv"

	"github.com/sppf/dendroid/grammar"
)

// Algo is the Earley step that derived an item.
type Algo int

// Earley steps.
const (
	Predictor Algo = iota
	Scanner
	Completer
)

func (a Algo) String() string {
	switch a {
	case Predictor:
		return "predictor"
	case Scanner:
		return "scanner"
	default:
		return "completer"
	}
}

type itemKind int

const (
	regularItem itemKind = iota
	startItem
	successItem
)

// An EItem is a dotted item paired with the rank where its match began.
//
// Two items of a set never share the same dotted item and origin. Deriving an existing
// item again records one more predecessor instead. The chart also holds two pseudo items:
// the start item, first of set 0, and the success item, last of the final set on success.
// Pseudo items have no dotted item.
type EItem struct {
	Dotted *grammar.DottedItem
	Origin int
	Algo   Algo
	// Rank of the item set holding the item.
	Rank int

	kind   itemKind
	symbol *grammar.Symbol
	preds  []*EItem
}

func newStartItem(start *grammar.Symbol) *EItem {
	return &EItem{kind: startItem, symbol: start, Algo: Predictor}
}

func newSuccessItem(start *grammar.Symbol, rank int) *EItem {
	return &EItem{kind: successItem, symbol: start, Algo: Completer, Rank: rank}
}

// IsStart returns true for the start pseudo item.
func (e *EItem) IsStart() bool { return e.kind == startItem }

// IsSuccess returns true for the success pseudo item.
func (e *EItem) IsSuccess() bool { return e.kind == successItem }

// Head is the head of the item's rule, or the start symbol for pseudo items.
func (e *EItem) Head() *grammar.Symbol {
	if e.Dotted == nil {
		return e.symbol
	}
	return e.Dotted.Head()
}

// Completed returns true if the dot is at the end. The success item is completed.
func (e *EItem) Completed() bool {
	if e.Dotted == nil {
		return e.kind == successItem
	}
	return e.Dotted.Completed()
}

// NextSymbol returns the symbol after the dot. The start item expects the start symbol.
func (e *EItem) NextSymbol() *grammar.Symbol {
	switch e.kind {
	case startItem:
		return e.symbol
	case successItem:
		return nil
	}
	return e.Dotted.NextSymbol()
}

// Predecessors of the item, by descending origin.
//
// The predecessor of a predicted item is an item expecting its head, of a scanned item
// the item before the scan, and of an advanced item the completed item that advanced it.
func (e *EItem) Predecessors() []*EItem { return e.preds }

// addPredecessor inserts pred after every predecessor of greater or equal origin,
// ignoring duplicates.
func (e *EItem) addPredecessor(pred *EItem) {
	at := len(e.preds)
	for i, known := range e.preds {
		if known == pred {
			return
		}
		if known.Origin < pred.Origin && at == len(e.preds) {
			at = i
		}
	}
	e.preds = append(e.preds, nil)
	copy(e.preds[at+1:], e.preds[at:])
	e.preds[at] = pred
}

func (e *EItem) String() string {
	switch e.kind {
	case startItem:
		return ". " + e.symbol.Name
	case successItem:
		return e.symbol.Name + " ."
	}
	return e.Dotted.String() + " @ " + strconv.Itoa(e.Origin)
}
