package grammar

import (
	"fmt"
	"strings"
)

// ErrorKind classifies structural grammar errors.
//
// Each kind is itself an error so callers can test for it with errors.Is.
type ErrorKind int

// Structural grammar errors.
const (
	ErrTerminalHead ErrorKind = iota + 1
	ErrDuplicateHead
	ErrDuplicateAlternative
	ErrNoAlternative
	ErrDirectCycle
	ErrNoTerminal
	ErrUnusedTerminal
	ErrUndefinedNonTerminal
	ErrUnreachable
	ErrNonProductive
	ErrFrozen
	ErrKindConflict
	ErrEmptyName
	ErrLateDeclaration
)

var errorKindNames = map[ErrorKind]string{
	ErrTerminalHead:         "terminal head",
	ErrDuplicateHead:        "duplicate head",
	ErrDuplicateAlternative: "duplicate alternative",
	ErrNoAlternative:        "no alternative",
	ErrDirectCycle:          "direct cycle",
	ErrNoTerminal:           "no terminal",
	ErrUnusedTerminal:       "unused terminal",
	ErrUndefinedNonTerminal: "undefined non-terminal",
	ErrUnreachable:          "unreachable symbol",
	ErrNonProductive:        "non-productive symbol",
	ErrFrozen:               "grammar is complete",
	ErrKindConflict:         "symbol kind conflict",
	ErrEmptyName:            "empty symbol name",
	ErrLateDeclaration:      "late terminal declaration",
}

func (k ErrorKind) Error() string { return errorKindNames[k] }

// Error is a structural error detected while defining or completing a grammar.
type Error struct {
	Kind ErrorKind
	// Symbols names the offending symbols, if any.
	Symbols []string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap returns the error kind.
func (e *Error) Unwrap() error { return e.Kind }

func errorf(kind ErrorKind, symbols []string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Symbols: symbols, Message: fmt.Sprintf(format, args...)}
}

// quoteNames renders names as 'a', 'b'.
func quoteNames(names []string) string {
	return "'" + strings.Join(names, "', '") + "'"
}
