// Package ebnf loads grammars written in the EBNF of "golang.org/x/exp/ebnf".
//
// Only the BNF subset of the notation is accepted:
//
//	Expr   = Expr "+" Term | Term .
//	Term   = Term "*" Factor | Factor .
//	Factor = "(" Expr ")" | Int .
//	List   = [ Factor List ] .
//	Empty  = .
//
// Every production defines a non-terminal. Names without a production and quoted tokens
// are terminals; a token is a terminal named by its text. An empty body is the empty
// alternative, and a body wrapped in brackets has the empty alternative in addition to
// its own. Groups, repetitions, ranges and nested options are rejected.
package ebnf

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/scanner"

	exp "golang.org/x/exp/ebnf"

	"github.com/sppf/dendroid/grammar"
	"github.com/sppf/dendroid/lexer"
)

// A Grammar loaded from EBNF.
type Grammar struct {
	*grammar.Grammar
	// Literals are the texts of the quoted tokens, by first appearance. They are the
	// literals a lexer.TextScanner needs to tokenize the grammar's input.
	Literals []string
}

// Parse an EBNF grammar and complete it.
//
// The start symbol is the start production if given, otherwise the first production of
// the source.
func Parse(filename string, r io.Reader, start string) (*Grammar, error) {
	if filename == "" {
		filename = lexer.NameOfReader(r)
	}
	ast, err := exp.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	productions := make([]*exp.Production, 0, len(ast))
	for _, production := range ast {
		productions = append(productions, production)
	}
	if len(productions) == 0 {
		return nil, errorf(filename, "no production")
	}
	sort.Slice(productions, func(i, j int) bool {
		return productions[i].Name.Pos().Offset < productions[j].Name.Pos().Offset
	})
	if start != "" {
		first, ok := ast[start]
		if !ok {
			return nil, errorf(filename, "no production %q", start)
		}
		for i, production := range productions {
			if production == first {
				copy(productions[1:i+1], productions[:i])
				productions[0] = first
				break
			}
		}
	}

	l := &loader{ast: ast, literals: map[string]bool{}}
	out := &Grammar{Grammar: grammar.New()}
	for _, production := range productions {
		alternatives, err := l.alternatives(production.Expr, true)
		if err != nil {
			return nil, err
		}
		rule, err := grammar.NewRule(grammar.NewNonTerminal(production.Name.String), alternatives...)
		if err != nil {
			return nil, wrap(production.Name.Pos(), err)
		}
		if err := out.AddRule(rule); err != nil {
			return nil, wrap(production.Name.Pos(), err)
		}
	}
	if err := out.Complete(); err != nil {
		return nil, err
	}
	out.Literals = l.order
	return out, nil
}

// ParseString parses an EBNF grammar from a string.
func ParseString(source string, start string) (*Grammar, error) {
	return Parse("", strings.NewReader(source), start)
}

// MustParseString parses an EBNF grammar from a string, panicking on error.
func MustParseString(source string, start string) *Grammar {
	g, err := ParseString(source, start)
	if err != nil {
		panic(err)
	}
	return g
}

type loader struct {
	ast      exp.Grammar
	literals map[string]bool
	order    []string
}

func (l *loader) alternatives(expr exp.Expression, optional bool) ([]grammar.Alternative, error) {
	switch expr := expr.(type) {
	case nil:
		return []grammar.Alternative{{}}, nil

	case exp.Alternative:
		out := make([]grammar.Alternative, 0, len(expr))
		for _, branch := range expr {
			alternative, err := l.sequence(branch)
			if err != nil {
				return nil, err
			}
			out = append(out, alternative)
		}
		return out, nil

	case *exp.Option:
		if !optional {
			return nil, unsupported(expr)
		}
		out, err := l.alternatives(expr.Body, false)
		if err != nil {
			return nil, err
		}
		return append(out, grammar.Alternative{}), nil

	default:
		alternative, err := l.sequence(expr)
		if err != nil {
			return nil, err
		}
		return []grammar.Alternative{alternative}, nil
	}
}

func (l *loader) sequence(expr exp.Expression) (grammar.Alternative, error) {
	terms := exp.Sequence{expr}
	if sequence, ok := expr.(exp.Sequence); ok {
		terms = sequence
	}
	out := make(grammar.Alternative, 0, len(terms))
	for _, term := range terms {
		switch term := term.(type) {
		case *exp.Name:
			if l.ast[term.String] != nil {
				out = append(out, grammar.NewNonTerminal(term.String))
			} else {
				out = append(out, grammar.NewTerminal(term.String))
			}

		case *exp.Token:
			if !l.literals[term.String] {
				l.literals[term.String] = true
				l.order = append(l.order, term.String)
			}
			out = append(out, grammar.NewTerminal(term.String))

		default:
			return nil, unsupported(term)
		}
	}
	return out, nil
}

func unsupported(expr exp.Expression) error {
	what := fmt.Sprintf("%T expressions", expr)
	switch expr.(type) {
	case *exp.Group:
		what = "groups"
	case *exp.Option:
		what = "nested options"
	case *exp.Repetition:
		what = "repetitions"
	case *exp.Range:
		what = "ranges"
	case exp.Alternative:
		what = "nested alternatives"
	}
	return lexer.Errorf(lexer.Position(expr.Pos()), "%s are not supported", what)
}

func errorf(filename string, format string, args ...interface{}) error {
	if filename == "" {
		return fmt.Errorf(format, args...)
	}
	return fmt.Errorf("%s: "+format, append([]interface{}{filename}, args...)...)
}

func wrap(pos scanner.Position, err error) error {
	return fmt.Errorf("%s: %w", lexer.Position(pos), err)
}
