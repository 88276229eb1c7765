package forest

import (
	"fmt"
	"strings"

	"github.com/sppf/dendroid/grammar"
	"github.com/sppf/dendroid/lexer"
)

// A Range of token ranks covered by a node, from Lower included to Upper excluded.
type Range struct {
	Lower int
	Upper int
}

// Width is the number of tokens in the range.
func (r Range) Width() int { return r.Upper - r.Lower }

func (r Range) String() string { return fmt.Sprintf("[%d..%d]", r.Lower, r.Upper) }

// A ParseNode is a node of a parse forest.
//
// Nodes are shared: a node reached through several derivations has several parents.
type ParseNode interface {
	// Span of the node over the token ranks.
	Span() Range
	// Accept calls back the Visitor method of the node's variant.
	Accept(v Visitor) error
	String() string
	parseNode()
}

// A TerminalNode is a scanned token.
type TerminalNode struct {
	Symbol *grammar.Symbol
	Token  lexer.Token
	Range  Range
}

func (n *TerminalNode) Span() Range { return n.Range }
func (n *TerminalNode) Accept(v Visitor) error { return v.VisitTerminal(n) }
func (n *TerminalNode) parseNode() {}

func (n *TerminalNode) String() string {
	if n.Token.Literal != nil {
		return fmt.Sprintf("%s: %s %s", n.Symbol.Name, n.Token.Value, n.Range)
	}
	return n.Symbol.Name + " " + n.Range.String()
}

// An EmptyRuleNode is the match of an empty alternative. Its range has no width.
type EmptyRuleNode struct {
	Rule  *grammar.Rule
	Alt   int
	Range Range
}

func (n *EmptyRuleNode) Span() Range { return n.Range }
func (n *EmptyRuleNode) Accept(v Visitor) error { return v.VisitEmptyRuleNode(n) }
func (n *EmptyRuleNode) parseNode() {}

func (n *EmptyRuleNode) String() string { return n.Rule.AltString(n.Alt) + " " + n.Range.String() }

// An AndNode is the match of one alternative of a rule over a range, with one child per
// symbol of the alternative.
type AndNode struct {
	Rule     *grammar.Rule
	Alt      int
	Range    Range
	Children []ParseNode
}

func newAndNode(rule *grammar.Rule, alt int, rng Range) *AndNode {
	return &AndNode{Rule: rule, Alt: alt, Range: rng, Children: make([]ParseNode, len(rule.Alternatives[alt]))}
}

func (n *AndNode) Span() Range { return n.Range }
func (n *AndNode) Accept(v Visitor) error { return v.VisitAndNode(n) }
func (n *AndNode) parseNode() {}

// Partial returns true while some child slot is unfilled.
func (n *AndNode) Partial() bool {
	for _, child := range n.Children {
		if child == nil {
			return true
		}
	}
	return false
}

// Head of the node's rule.
func (n *AndNode) Head() *grammar.Symbol { return n.Rule.Head }

func (n *AndNode) String() string { return n.Rule.AltString(n.Alt) + " " + n.Range.String() }

// An OrNode packs two or more derivations of the same symbol over the same range.
// Children are AndNode or EmptyRuleNode values.
type OrNode struct {
	Symbol   *grammar.Symbol
	Range    Range
	Children []ParseNode
}

func (n *OrNode) Span() Range { return n.Range }
func (n *OrNode) Accept(v Visitor) error { return v.VisitOrNode(n) }
func (n *OrNode) parseNode() {}

func (n *OrNode) String() string { return "OR: " + n.Symbol.Name + " " + n.Range.String() }

// Children of a node, nil for leaves.
func Children(n ParseNode) []ParseNode {
	switch n := n.(type) {
	case *AndNode:
		return n.Children
	case *OrNode:
		return n.Children
	}
	return nil
}

// Dump renders the forest as an indented tree, one node per line. Shared nodes are
// rendered under each of their parents.
func Dump(root ParseNode) string {
	w := &strings.Builder{}
	var dump func(n ParseNode, depth int)
	dump = func(n ParseNode, depth int) {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), n)
		for _, child := range Children(n) {
			dump(child, depth+1)
		}
	}
	dump(root, 0)
	return w.String()
}
