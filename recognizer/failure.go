package recognizer

import (
	"fmt"
	"strings"

	"github.com/sppf/dendroid/grammar"
	"github.com/sppf/dendroid/lexer"
)

// FailureKind classifies recognition failures.
type FailureKind int

// Recognition failures.
const (
	// EmptyInput: no token while the start symbol isn't nullable.
	EmptyInput FailureKind = iota + 1
	// UnexpectedToken: a token none of the expected terminals matches.
	UnexpectedToken
	// PrematureEnd: the input ended before the start symbol could be completed.
	PrematureEnd
)

func (k FailureKind) String() string {
	switch k {
	case EmptyInput:
		return "empty input"
	case UnexpectedToken:
		return "unexpected token"
	default:
		return "premature end"
	}
}

// A Failure describes why the input is not a sentence of the grammar.
type Failure struct {
	Kind    FailureKind
	Message string
	// Token is the offending token for UnexpectedToken, the last token for PrematureEnd
	// and the EOF token for EmptyInput.
	Token lexer.Token
	// Expected terminals at the failure point. It contains grammar.EndMarker when the
	// input could have ended there.
	Expected []*grammar.Symbol
}

func (f *Failure) String() string { return f.Message }

func emptyInputFailure(eof lexer.Token) *Failure {
	return &Failure{Kind: EmptyInput, Token: eof, Message: "input may not be empty nor blank"}
}

func unexpectedTokenFailure(token lexer.Token, expected []*grammar.Symbol) *Failure {
	return &Failure{
		Kind:     UnexpectedToken,
		Token:    token,
		Expected: expected,
		Message: fmt.Sprintf("syntax error at or near token line %d, column %d >>>%s<<< expected %s, found a %s instead",
			token.Pos.Line, token.Pos.Column, token.Value, Expectation(expected), token.Terminal),
	}
}

func prematureEndFailure(last lexer.Token, expected []*grammar.Symbol) *Failure {
	return &Failure{
		Kind:     PrematureEnd,
		Token:    last,
		Expected: expected,
		Message: fmt.Sprintf("line %d, column %d: premature end of input after '%s', expected: %s",
			last.Pos.Line, last.Pos.Column, last.Value, Expectation(expected)),
	}
}

// Expectation renders a set of expected terminals: the name of a single terminal,
// otherwise "one of: [a, b]".
func Expectation(expected []*grammar.Symbol) string {
	if len(expected) == 1 {
		return expected[0].Name
	}
	names := make([]string, len(expected))
	for i, symbol := range expected {
		names[i] = symbol.Name
	}
	return "one of: [" + strings.Join(names, ", ") + "]"
}
