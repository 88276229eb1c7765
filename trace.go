package dendroid

import (
	"io"

	"github.com/tliron/commonlog"
)

// Trace the parse to "w".
//
// One line is written per recognizer step, then one per forest walk step.
func Trace(w io.Writer) Option {
	return func(p *Parser) error {
		p.trace = w
		return nil
	}
}

// Logger sets the logger of the recognizer and of the forest builder.
func Logger(logger commonlog.Logger) Option {
	return func(p *Parser) error {
		p.logger = logger
		return nil
	}
}
