package forest_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/require"

	"github.com/sppf/dendroid/forest"
	"github.com/sppf/dendroid/grammar"
	"github.com/sppf/dendroid/internal/samples"
	"github.com/sppf/dendroid/lexer"
	"github.com/sppf/dendroid/recognizer"
)

func recognize(t *testing.T, g *grammar.Grammar, lex lexer.Lexer) *recognizer.Chart {
	t.Helper()
	r, err := recognizer.New(g)
	require.NoError(t, err)
	chart, err := r.Run(lex)
	require.NoError(t, err)
	require.True(t, chart.Successful(), "%s", chart.Failure())
	return chart
}

func build(t *testing.T, g *grammar.Grammar, input string, options ...forest.Option) forest.ParseNode {
	t.Helper()
	chart := recognize(t, g, samples.Letters().LexString("", input))
	b, err := forest.New(options...)
	require.NoError(t, err)
	root, err := b.Run(chart)
	require.NoError(t, err)
	return root
}

func dump(lines ...string) string { return strings.Join(lines, "\n") + "\n" }

func TestArithmetic(t *testing.T) {
	chart := recognize(t, samples.L1(), samples.L1Lexer().LexString("", "2 + 3 * 4"))
	b, err := forest.New()
	require.NoError(t, err)
	root, err := b.Run(chart)
	require.NoError(t, err)
	require.Equal(t, dump(
		"p => s [0..5]",
		"  s => s PLUS m [0..5]",
		"    s => m [0..1]",
		"      m => t [0..1]",
		"        t => INTEGER [0..1]",
		"          INTEGER: 2 [0..1]",
		"    PLUS [1..2]",
		"    m => m STAR t [2..5]",
		"      m => t [2..3]",
		"        t => INTEGER [2..3]",
		"          INTEGER: 3 [2..3]",
		"      STAR [3..4]",
		"      t => INTEGER [4..5]",
		"        INTEGER: 4 [4..5]",
	), forest.Dump(root))
}

func TestArithmeticWithParentheses(t *testing.T) {
	chart := recognize(t, samples.L2(), samples.L2Lexer().LexString("", "2 * (3 + 4)"))
	b, err := forest.New()
	require.NoError(t, err)
	root, err := b.Run(chart)
	require.NoError(t, err)
	require.Equal(t, dump(
		"p => sum [0..7]",
		"  sum => product [0..7]",
		"    product => product STAR factor [0..7]",
		"      product => factor [0..1]",
		"        factor => NUMBER [0..1]",
		"          NUMBER: 2 [0..1]",
		"      STAR [1..2]",
		"      factor => LPAREN sum RPAREN [2..7]",
		"        LPAREN [2..3]",
		"        sum => sum PLUS product [3..6]",
		"          sum => product [3..4]",
		"            product => factor [3..4]",
		"              factor => NUMBER [3..4]",
		"                NUMBER: 3 [3..4]",
		"          PLUS [4..5]",
		"          product => factor [5..6]",
		"            factor => NUMBER [5..6]",
		"              NUMBER: 4 [5..6]",
		"        RPAREN [6..7]",
	), forest.Dump(root))
}

func TestUnambiguousNesting(t *testing.T) {
	root := build(t, samples.L5(), "a a b c c")
	require.Equal(t, dump(
		"S => A [0..5]",
		"  A => a A c [0..5]",
		"    a [0..1]",
		"    A => a A c [1..4]",
		"      a [1..2]",
		"      A => b [2..3]",
		"        b [2..3]",
		"      c [3..4]",
		"    c [4..5]",
	), forest.Dump(root))
}

func TestLeftRecursion(t *testing.T) {
	root := build(t, samples.L10(), "a a")
	require.Equal(t, dump(
		"A => A a [0..2]",
		"  A => A a [0..1]",
		"    A =>  [0..0]",
		"    a [0..1]",
		"  a [1..2]",
	), forest.Dump(root))

	root = build(t, samples.L10(), "")
	require.Equal(t, "A =>  [0..0]", root.String())
	require.IsType(t, &forest.EmptyRuleNode{}, root)
}

func TestRightRecursion(t *testing.T) {
	root := build(t, samples.L11(), "a a")
	require.Equal(t, dump(
		"A => a A [0..2]",
		"  a [0..1]",
		"  A => a A [1..2]",
		"    a [1..2]",
		"    A =>  [2..2]",
	), forest.Dump(root))
}

func TestHiddenLeftRecursion(t *testing.T) {
	root := build(t, samples.L18(), "a a")
	require.Equal(t, dump(
		"S => X S a [0..2]",
		"  X =>  [0..0]",
		"  S => a [0..1]",
		"    a [0..1]",
		"  a [1..2]",
	), forest.Dump(root))

	root = build(t, samples.L18(), "a a a")
	require.Equal(t, dump(
		"S => X S a [0..3]",
		"  X =>  [0..0]",
		"  S => X S a [0..2]",
		"    X =>  [0..0]",
		"    S => a [0..1]",
		"      a [0..1]",
		"    a [1..2]",
		"  a [2..3]",
	), forest.Dump(root))
	and := root.(*forest.AndNode)
	require.Same(t, and.Children[0], and.Children[1].(*forest.AndNode).Children[0])
}

func TestHiddenRightRecursion(t *testing.T) {
	root := build(t, samples.L19(), "a a a")
	require.Equal(t, dump(
		"S => a S X [0..3]",
		"  a [0..1]",
		"  S => a S X [1..3]",
		"    a [1..2]",
		"    S => a [2..3]",
		"      a [2..3]",
		"    X =>  [3..3]",
		"  X =>  [3..3]",
	), forest.Dump(root))
	and := root.(*forest.AndNode)
	inner := and.Children[1].(*forest.AndNode)
	require.Same(t, and.Children[2], inner.Children[2])
}

func TestAmbiguity(t *testing.T) {
	root := build(t, samples.L8(), "x")
	require.Equal(t, dump(
		"S => x [0..1]",
		"  x [0..1]",
	), forest.Dump(root))

	root = build(t, samples.L8(), "x x")
	require.Equal(t, dump(
		"S => S S [0..2]",
		"  S => x [0..1]",
		"    x [0..1]",
		"  S => x [1..2]",
		"    x [1..2]",
	), forest.Dump(root))

	root = build(t, samples.L8(), "x x x")
	require.Equal(t, dump(
		"OR: S [0..3]",
		"  S => S S [0..3]",
		"    S => S S [0..2]",
		"      S => x [0..1]",
		"        x [0..1]",
		"      S => x [1..2]",
		"        x [1..2]",
		"    S => x [2..3]",
		"      x [2..3]",
		"  S => S S [0..3]",
		"    S => x [0..1]",
		"      x [0..1]",
		"    S => S S [1..3]",
		"      S => x [1..2]",
		"        x [1..2]",
		"      S => x [2..3]",
		"        x [2..3]",
	), forest.Dump(root))

	or := root.(*forest.OrNode)
	require.Len(t, or.Children, 2)
	left := or.Children[0].(*forest.AndNode)
	right := or.Children[1].(*forest.AndNode)
	// S => x over [0..1], [1..2] and [2..3] exist once each.
	require.Same(t, left.Children[1], right.Children[1].(*forest.AndNode).Children[1])
	require.Same(t, left.Children[0].(*forest.AndNode).Children[0], right.Children[0])
	require.Same(t, left.Children[0].(*forest.AndNode).Children[1], right.Children[1].(*forest.AndNode).Children[0])
}

func TestAmbiguityOfFourTokens(t *testing.T) {
	root := build(t, samples.L8(), "x x x x")
	or, ok := root.(*forest.OrNode)
	require.True(t, ok, "%s", root)
	require.Equal(t, "OR: S [0..4]", or.String())
	splits := []string{}
	for _, child := range or.Children {
		and := child.(*forest.AndNode)
		require.Equal(t, "S => S S [0..4]", and.String())
		splits = append(splits, and.Children[0].String()+" + "+and.Children[1].String())
	}
	require.Equal(t, []string{
		"OR: S [0..3] + S => x [3..4]",
		"S => S S [0..2] + S => S S [2..4]",
		"S => x [0..1] + OR: S [1..4]",
	}, splits)
	require.Equal(t, 5, derivations(root))
}

// derivations counts the parse trees packed in a forest.
func derivations(root forest.ParseNode) int {
	memo := map[forest.ParseNode]int{}
	var count func(n forest.ParseNode) int
	count = func(n forest.ParseNode) int {
		if c, ok := memo[n]; ok {
			return c
		}
		c := 1
		switch n := n.(type) {
		case *forest.OrNode:
			c = 0
			for _, child := range n.Children {
				c += count(child)
			}
		case *forest.AndNode:
			for _, child := range n.Children {
				c *= count(child)
			}
		}
		memo[n] = c
		return c
	}
	return count(root)
}

func TestCatalanNumberOfDerivations(t *testing.T) {
	catalan := []int{1, 1, 2, 5, 14, 42, 132}
	for n := 1; n <= len(catalan); n++ {
		input := strings.TrimSpace(strings.Repeat("x ", n))
		root := build(t, samples.L8(), input)
		require.Equal(t, catalan[n-1], derivations(root), "%d tokens", n)
	}
}

type andKey struct {
	rule   *grammar.Rule
	alt    int
	bounds string
}

// TestNoDuplication checks that a derivation is represented by a single AND node and a
// symbol over a range by a single node, whatever the number of parents.
func TestNoDuplication(t *testing.T) {
	tests := []struct {
		grammar *grammar.Grammar
		input   string
	}{
		{samples.L8(), "x x x x x"},
		{samples.L10(), "a a a a"},
		{samples.L11(), "a a a a"},
		{samples.L18(), "a a a a"},
		{samples.L19(), "a a a a"},
		{samples.L3(), "a c d"},
	}
	for _, test := range tests {
		root := build(t, test.grammar, test.input)
		ands := map[andKey]*forest.AndNode{}
		symbols := map[string]forest.ParseNode{}
		err := forest.Visit(root, func(n forest.ParseNode, next func() error) error {
			and, ok := n.(*forest.AndNode)
			if !ok {
				return next()
			}
			bounds := []string{}
			for _, child := range and.Children {
				bounds = append(bounds, child.Span().String())
				switch child := child.(type) {
				case *forest.AndNode, *forest.OrNode, *forest.EmptyRuleNode:
					key := fmt.Sprintf("%s %s", head(child), child.Span())
					if known, ok := symbols[key]; ok {
						require.Same(t, known, child, key)
					}
					symbols[key] = child
				}
			}
			key := andKey{and.Rule, and.Alt, and.Span().String() + strings.Join(bounds, "")}
			require.NotContains(t, ands, key, "%s", and)
			ands[key] = and
			return next()
		})
		require.NoError(t, err)
	}
}

func head(n forest.ParseNode) string {
	switch n := n.(type) {
	case *forest.AndNode:
		return n.Rule.Head.Name
	case *forest.EmptyRuleNode:
		return n.Rule.Head.Name
	case *forest.OrNode:
		return n.Symbol.Name
	}
	return ""
}

func TestIdempotence(t *testing.T) {
	chart := recognize(t, samples.L8(), samples.Letters().LexString("", "x x x x"))
	b, err := forest.New()
	require.NoError(t, err)
	first, err := b.Run(chart)
	require.NoError(t, err)
	second, err := b.Run(chart)
	require.NoError(t, err)
	require.NotSame(t, first, second)
	require.Equal(t, forest.Dump(first), forest.Dump(second))
	require.Equal(t, forest.Stats(first), forest.Stats(second))
}

func TestCyclicGrammar(t *testing.T) {
	root := build(t, samples.L3(), "d")
	require.Equal(t, dump(
		"Z => d [0..1]",
		"  d [0..1]",
	), forest.Dump(root))

	root = build(t, samples.L3(), "a d")
	require.Equal(t, dump(
		"Z => X Y Z [0..2]",
		"  X => a [0..1]",
		"    a [0..1]",
		"  Y =>  [1..1]",
		"  Z => d [1..2]",
		"    d [1..2]",
	), forest.Dump(root))

	// c is derived by X or by Y
	root = build(t, samples.L3(), "c d")
	require.Equal(t, "OR: Z [0..2]", root.String())
	require.Equal(t, 2, derivations(root), "%s", forest.Dump(root))
}

func TestNullableChoice(t *testing.T) {
	g := grammar.NewBuilder().
		DeclareTerminals("b").
		Rule("S", "", "A", "b").
		Rule("A", "").
		MustGrammar()
	chart := recognize(t, g, lexer.FromTerminals())
	b, err := forest.New()
	require.NoError(t, err)
	root, err := b.Run(chart)
	require.NoError(t, err)
	require.Equal(t, dump(
		"OR: S [0..0]",
		"  S =>  [0..0]",
		"  S => A [0..0]",
		"    A =>  [0..0]",
	), forest.Dump(root))
}

func TestRejectedInput(t *testing.T) {
	r, err := recognizer.New(samples.L8())
	require.NoError(t, err)
	chart, err := r.Run(lexer.FromTerminals("x", "y"))
	require.NoError(t, err)
	b, err := forest.New()
	require.NoError(t, err)
	_, err = b.Run(chart)
	require.True(t, errors.Is(err, forest.ErrNotRecognized), "%v", err)
}

func TestMaxThreads(t *testing.T) {
	chart := recognize(t, samples.L8(), samples.Letters().LexString("", "x x x"))
	b, err := forest.New(forest.WithMaxThreads(1))
	require.NoError(t, err)
	_, err = b.Run(chart)
	var invariant *forest.InvariantError
	require.True(t, errors.As(err, &invariant), "%v", err)
	require.Equal(t, "fork", invariant.Step)

	b, err = forest.New(forest.WithMaxThreads(3))
	require.NoError(t, err)
	_, err = b.Run(chart)
	require.NoError(t, err)

	_, err = forest.New(forest.WithMaxThreads(0))
	require.Error(t, err)
}

func TestTrace(t *testing.T) {
	trace := &bytes.Buffer{}
	build(t, samples.L8(), "x x", forest.WithTrace(trace))
	require.Equal(t, []string{
		"T0 [2] completer: S => S S ^ [0..2]",
		"T0 [2] completer: S => x ^ [1..2]",
		"T0 [1] scanner: S => x [1..2]",
		"T0 [1] predictor: S => S ^ S [0..2]",
		"T0 [1] completer: S => x ^ [0..1]",
		"T0 [0] scanner: S => x [0..1]",
		"T0 [0] predictor: S => S S [0..2]",
	}, strings.Split(strings.TrimSpace(trace.String()), "\n"), repr.String(trace.String()))
}

func TestStats(t *testing.T) {
	root := build(t, samples.L8(), "x x x")
	require.Equal(t, forest.Statistics{Terminals: 3, AndNodes: 7, OrNodes: 1}, forest.Stats(root))
	require.Equal(t, "11 nodes: 7 and, 1 or, 3 terminal, 0 empty", forest.Stats(root).String())
}
