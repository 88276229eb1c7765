package grammar

import "strings"

// An Alternative is one right-hand side of a rule. It may be empty.
type Alternative []*Symbol

func (a Alternative) String() string {
	return strings.Join(symbolNames(a), " ")
}

// A Rule rewrites its head non-terminal into one of its alternatives.
//
// A rule with a single alternative is a production, one with more is a choice.
type Rule struct {
	Head         *Symbol
	Alternatives []Alternative

	id    int
	items [][]*DottedItem
}

// NewRule creates a rule, checking the constraints that don't depend on the rest of the
// grammar.
func NewRule(head *Symbol, alternatives ...Alternative) (*Rule, error) {
	if head.Terminal() {
		return nil, errorf(ErrTerminalHead, []string{head.Name},
			"terminal symbol '%s' may not be on left-side of a rule", head.Name)
	}
	if len(alternatives) == 0 {
		return nil, errorf(ErrNoAlternative, []string{head.Name},
			"the rule for '%s' must have at least one alternative", head.Name)
	}
	seen := map[string]bool{}
	for _, alt := range alternatives {
		if len(alt) == 1 && alt[0] == head {
			return nil, errorf(ErrDirectCycle, []string{head.Name},
				"cyclic rules of the kind %s => %s are not allowed", head.Name, head.Name)
		}
		text := alt.String()
		if seen[text] {
			return nil, errorf(ErrDuplicateAlternative, []string{head.Name},
				"duplicate alternatives: %s => %s", head.Name, text)
		}
		seen[text] = true
	}
	return &Rule{Head: head, Alternatives: alternatives, id: -1}, nil
}

// ID is the rank of the rule in its grammar.
func (r *Rule) ID() int { return r.id }

// Choice returns true if the rule has more than one alternative.
func (r *Rule) Choice() bool { return len(r.Alternatives) > 1 }

// AltString renders one alternative, eg. "S => S S".
func (r *Rule) AltString(alt int) string {
	return r.Head.Name + " => " + r.Alternatives[alt].String()
}

func (r *Rule) String() string {
	texts := make([]string, len(r.Alternatives))
	for i, alt := range r.Alternatives {
		texts[i] = alt.String()
	}
	return r.Head.Name + " => " + strings.Join(texts, " | ")
}

// Terminals returns the distinct terminals referenced by the alternatives.
func (r *Rule) Terminals() []*Symbol { return r.members(Terminal) }

// NonTerminals returns the distinct non-terminals referenced by the alternatives.
func (r *Rule) NonTerminals() []*Symbol { return r.members(NonTerminal) }

func (r *Rule) members(kind Kind) []*Symbol {
	seen := map[*Symbol]bool{}
	out := []*Symbol{}
	for _, alt := range r.Alternatives {
		for _, symbol := range alt {
			if symbol.Kind == kind && !seen[symbol] {
				seen[symbol] = true
				out = append(out, symbol)
			}
		}
	}
	return out
}
