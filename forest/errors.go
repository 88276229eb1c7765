package forest

import (
	"errors"
	"fmt"
)

// ErrNotRecognized is returned when a forest is requested for a rejected input.
var ErrNotRecognized = errors.New("input was not recognized")

// An InvariantError reports an inconsistency found while building a forest. It is a
// defect of the chart or of the builder, never a property of the input.
type InvariantError struct {
	// Step of the walk that failed.
	Step    string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("forest invariant violated at %s: %s", e.Step, e.Message)
}

func invariantf(step string, format string, args ...interface{}) *InvariantError {
	return &InvariantError{Step: step, Message: fmt.Sprintf(format, args...)}
}
