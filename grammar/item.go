package grammar

import "strings"

// A DottedItem is a position in one alternative of a rule, eg. "S => S . S".
//
// Dotted items are created once by Grammar.Complete and never mutated. Advancing the
// dot means fetching another item with Grammar.NextItem.
type DottedItem struct {
	Rule *Rule
	Alt  int
	Pos  int

	id int
	// FIRST set of the symbols after the dot, and whether they can all vanish.
	first        symbolSet
	restNullable bool
}

// ID is a dense index of the item in its grammar.
func (d *DottedItem) ID() int { return d.id }

// Head of the item's rule.
func (d *DottedItem) Head() *Symbol { return d.Rule.Head }

// Symbols of the item's alternative.
func (d *DottedItem) Symbols() Alternative { return d.Rule.Alternatives[d.Alt] }

// NextSymbol is the symbol after the dot, or nil if the item is completed.
func (d *DottedItem) NextSymbol() *Symbol {
	if d.Completed() {
		return nil
	}
	return d.Symbols()[d.Pos]
}

// PrevSymbol is the symbol before the dot, or nil if the dot is at the start.
func (d *DottedItem) PrevSymbol() *Symbol {
	if d.Pos == 0 {
		return nil
	}
	return d.Symbols()[d.Pos-1]
}

// Completed returns true if the dot is at the end of the alternative.
func (d *DottedItem) Completed() bool { return d.Pos == len(d.Symbols()) }

// AtStart returns true if the dot is before the first symbol.
func (d *DottedItem) AtStart() bool { return d.Pos == 0 }

// Empty returns true if the item's alternative is the empty sequence.
func (d *DottedItem) Empty() bool { return len(d.Symbols()) == 0 }

// PreScan returns true if the symbol after the dot is a terminal.
func (d *DottedItem) PreScan() bool {
	next := d.NextSymbol()
	return next != nil && next.Terminal()
}

// Expecting returns true if the symbol after the dot is the given one.
func (d *DottedItem) Expecting(symbol *Symbol) bool { return d.NextSymbol() == symbol }

// Admits returns true if the rest of the alternative can derive a string that starts
// with the given terminal or can derive the empty string. A nil terminal stands for the
// end of input.
func (d *DottedItem) Admits(terminal *Symbol) bool {
	return d.restNullable || (terminal != nil && d.first[terminal])
}

func (d *DottedItem) String() string {
	names := symbolNames(d.Symbols())
	parts := make([]string, 0, len(names)+1)
	parts = append(parts, names[:d.Pos]...)
	parts = append(parts, ".")
	parts = append(parts, names[d.Pos:]...)
	return d.Rule.Head.Name + " => " + strings.Join(parts, " ")
}
