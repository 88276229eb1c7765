package dendroid

import (
	"fmt"
	"strings"

	"github.com/sppf/dendroid/lexer"
	"github.com/sppf/dendroid/recognizer"
)

// Error represents an error while parsing.
//
// The error will contain positional information if available. A *lexer.Error is an Error.
type Error interface {
	error
	// Unadorned message.
	Message() string
	// Position error occurred.
	Position() lexer.Position
}

var (
	_ Error = &UnexpectedTokenError{}
	_ Error = &PrematureEndError{}
	_ Error = &EmptyInputError{}
	_ Error = &lexer.Error{}
)

// UnexpectedTokenError is returned when a token doesn't match any expected terminal.
type UnexpectedTokenError struct {
	Unexpected lexer.Token
	// Expected terminal names. "$$" stands for the end of input.
	Expected []string
}

func (u *UnexpectedTokenError) Error() string {
	return lexer.FormatError(u.Unexpected.Pos, u.Message())
}

func (u *UnexpectedTokenError) Message() string { // nolint: golint
	return fmt.Sprintf("unexpected token %q%s", u.Unexpected.Value, expectation(u.Expected))
}

func (u *UnexpectedTokenError) Position() lexer.Position { return u.Unexpected.Pos } // nolint: golint

// PrematureEndError is returned when the input ends before the start symbol is complete.
type PrematureEndError struct {
	// Last token of the input.
	Last     lexer.Token
	Expected []string
}

func (p *PrematureEndError) Error() string {
	return lexer.FormatError(p.Last.Pos, p.Message())
}

func (p *PrematureEndError) Message() string { // nolint: golint
	return fmt.Sprintf("unexpected end of input after %q%s", p.Last.Value, expectation(p.Expected))
}

func (p *PrematureEndError) Position() lexer.Position { return p.Last.Pos } // nolint: golint

// EmptyInputError is returned for an empty or blank input when the grammar has no empty
// sentence.
type EmptyInputError struct {
	Pos lexer.Position
}

func (e *EmptyInputError) Error() string { return lexer.FormatError(e.Pos, e.Message()) }

func (e *EmptyInputError) Message() string { return "input may not be empty nor blank" } // nolint: golint

func (e *EmptyInputError) Position() lexer.Position { return e.Pos } // nolint: golint

func failureError(failure *recognizer.Failure) Error {
	expected := make([]string, len(failure.Expected))
	for i, symbol := range failure.Expected {
		expected[i] = symbol.Name
	}
	switch failure.Kind {
	case recognizer.EmptyInput:
		return &EmptyInputError{Pos: failure.Token.Pos}
	case recognizer.UnexpectedToken:
		return &UnexpectedTokenError{Unexpected: failure.Token, Expected: expected}
	default:
		return &PrematureEndError{Last: failure.Token, Expected: expected}
	}
}

func expectation(expected []string) string {
	switch len(expected) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(" (expected %s)", expected[0])
	default:
		return fmt.Sprintf(" (expected one of %s)", strings.Join(expected, ", "))
	}
}
