package ebnf

import (
	"go/token"
	"strconv"
	"strings"

	"github.com/sppf/dendroid/grammar"
)

// Format renders a grammar in EBNF, one production per line.
//
// Terminals listed in literals and terminals whose name is not an identifier are written
// as quoted tokens, other terminals as names. A rule with an empty alternative is written
// as an option, so the empty alternative of the rule comes last once parsed back.
func Format(g *grammar.Grammar, literals ...string) string {
	quoted := map[string]bool{}
	for _, literal := range literals {
		quoted[literal] = true
	}
	width := 0
	for _, rule := range g.Rules() {
		if len(rule.Head.Name) > width {
			width = len(rule.Head.Name)
		}
	}
	w := &strings.Builder{}
	for _, rule := range g.Rules() {
		w.WriteString(rule.Head.Name)
		w.WriteString(strings.Repeat(" ", width-len(rule.Head.Name)))
		w.WriteString(" =")
		body := []string{}
		optional := false
		for _, alt := range rule.Alternatives {
			if len(alt) == 0 {
				optional = true
				continue
			}
			terms := make([]string, len(alt))
			for i, symbol := range alt {
				terms[i] = formatSymbol(symbol, quoted)
			}
			body = append(body, strings.Join(terms, " "))
		}
		switch {
		case len(body) == 0:
		case optional:
			w.WriteString(" [ " + strings.Join(body, " | ") + " ]")
		default:
			w.WriteString(" " + strings.Join(body, " | "))
		}
		w.WriteString(" .\n")
	}
	return w.String()
}

func formatSymbol(symbol *grammar.Symbol, quoted map[string]bool) string {
	if symbol.Terminal() && (quoted[symbol.Name] || !token.IsIdentifier(symbol.Name)) {
		return strconv.Quote(symbol.Name)
	}
	return symbol.Name
}

// String renders the grammar in EBNF.
func (g *Grammar) String() string { return Format(g.Grammar, g.Literals...) }
