// Package recognizer implements the Earley recognition algorithm.
//
// Recognition builds a Chart, one item set per rank. Every item records the items it
// was derived from so the chart can later be walked backward to build a parse forest.
package recognizer

import (
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/sppf/dendroid/grammar"
	"github.com/sppf/dendroid/lexer"
)

type mode int

const (
	// genuine mode drops the items that cannot match the next token.
	genuine mode = iota
	// replay mode keeps every item and never scans. It is used to collect the expected
	// terminals at a failure point.
	replay
)

// An Option to modify the behaviour of the Recognizer.
type Option func(r *Recognizer) error

// WithLogger sets a logger. A nil logger disables logging.
func WithLogger(logger commonlog.Logger) Option {
	return func(r *Recognizer) error {
		r.logger = logger
		return nil
	}
}

// WithTrace writes one line per Earley step to w.
func WithTrace(w io.Writer) Option {
	return func(r *Recognizer) error {
		r.trace = w
		return nil
	}
}

// A Recognizer decides whether token streams are sentences of a grammar.
//
// A Recognizer is stateless between runs and safe for concurrent use.
type Recognizer struct {
	grammar *grammar.Grammar
	logger  commonlog.Logger
	trace   io.Writer
}

// New creates a Recognizer, completing the grammar if needed.
func New(g *grammar.Grammar, options ...Option) (*Recognizer, error) {
	if err := g.Complete(); err != nil {
		return nil, err
	}
	r := &Recognizer{grammar: g}
	for _, option := range options {
		if err := option(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Grammar recognized.
func (r *Recognizer) Grammar() *grammar.Grammar { return r.grammar }

// Run reads tokens from lex and recognizes them.
//
// A chart is returned whether the input is recognized or not; Chart.Failure describes
// a rejected input. Only lexing errors are returned as errors.
func (r *Recognizer) Run(lex lexer.Lexer) (*Chart, error) {
	chart := newChart(r.grammar)
	first, err := lex.Next()
	if err != nil {
		return nil, err
	}
	eos := first.EOF()
	if eos {
		chart.eof = first
		if !r.grammar.StartSymbol().Nullable() {
			chart.failure = emptyInputFailure(first)
			r.debugf("recognition failed: %s", chart.failure)
			return chart, nil
		}
	} else {
		chart.tokens = append(chart.tokens, first)
	}

	for rank := 0; ; rank++ {
		for !eos && len(chart.tokens) <= rank {
			token, err := lex.Next()
			if err != nil {
				return nil, err
			}
			if token.EOF() {
				eos = true
				chart.eof = token
			} else {
				chart.tokens = append(chart.tokens, token)
			}
		}
		if !r.process(chart, chart.sets[rank], genuine) {
			break
		}
	}
	r.determineOutcome(chart)
	return chart, nil
}

// process applies the Earley steps to every item of the set, including the items added
// along the way. It returns true if a token was scanned.
func (r *Recognizer) process(chart *Chart, set *ItemSet, mode mode) bool {
	lookahead := chart.lookahead(set.Rank)
	advance := false
	for i := 0; i < len(set.items); i++ {
		item := set.items[i]
		switch {
		case item.IsStart():
			r.tracef(set.Rank, Predictor, item)
			r.predict(set, item, lookahead, mode)
		case item.Completed():
			r.tracef(set.Rank, Completer, item)
			r.complete(chart, set, item, lookahead, mode)
		case item.Dotted.PreScan():
			if mode == genuine && r.scan(chart, set, item) {
				r.tracef(set.Rank, Scanner, item)
				advance = true
			}
		default:
			r.tracef(set.Rank, Predictor, item)
			r.predict(set, item, lookahead, mode)
		}
	}
	return advance
}

// predict adds the alternatives of the symbol expected by the caller.
//
// When the symbol is nullable the caller is also advanced over it right away, linked to
// the completed items of that symbol found so far at this rank. Completions arriving
// later are linked by complete.
func (r *Recognizer) predict(set *ItemSet, caller *EItem, lookahead *grammar.Symbol, mode mode) {
	symbol := caller.NextSymbol()
	for _, dotted := range r.grammar.PredictedItems(r.grammar.RuleFor(symbol)) {
		if mode == genuine && !dotted.Admits(lookahead) {
			continue
		}
		set.add(dotted, set.Rank, Predictor, caller)
	}
	if !symbol.Nullable() || caller.IsStart() {
		return
	}
	next := r.grammar.NextItem(caller.Dotted)
	if mode == genuine && !next.Admits(lookahead) {
		return
	}
	advanced, _ := set.add(next, caller.Origin, Completer, nil)
	for _, completed := range set.CompletedItems(symbol, set.Rank) {
		advanced.addPredecessor(completed)
	}
}

// scan moves the dot over a terminal matching the token at the set's rank.
func (r *Recognizer) scan(chart *Chart, set *ItemSet, item *EItem) bool {
	rank := set.Rank
	if rank >= len(chart.tokens) || item.NextSymbol().Name != chart.tokens[rank].Terminal {
		return false
	}
	if rank+1 == len(chart.sets) {
		chart.appendSet()
	}
	chart.sets[rank+1].add(r.grammar.NextItem(item.Dotted), item.Origin, Scanner, item)
	return true
}

// complete advances the items that expected the head of a completed item at its origin.
//
// Completions of empty alternatives are left to predict.
func (r *Recognizer) complete(chart *Chart, set *ItemSet, item *EItem, lookahead *grammar.Symbol, mode mode) {
	if item.Dotted.Empty() {
		return
	}
	origin := set
	if item.Origin != set.Rank {
		origin = chart.sets[item.Origin]
	}
	for _, caller := range origin.ItemsExpecting(item.Head()) {
		next := r.grammar.NextItem(caller.Dotted)
		if mode == genuine && !next.Admits(lookahead) {
			continue
		}
		set.add(next, caller.Origin, Completer, item)
	}
}

func (r *Recognizer) determineOutcome(chart *Chart) {
	n := len(chart.tokens)
	if len(chart.sets) == n+1 {
		last := chart.sets[n]
		var finals []*EItem
		for _, dotted := range r.grammar.ReduceItems(r.grammar.RuleFor(r.grammar.StartSymbol())) {
			if item := last.Find(dotted, 0); item != nil {
				finals = append(finals, item)
			}
		}
		if len(finals) > 0 {
			chart.success = newSuccessItem(r.grammar.StartSymbol(), n)
			for _, final := range finals {
				chart.success.addPredecessor(final)
			}
			last.items = append(last.items, chart.success)
			if r.logger != nil {
				r.logger.Infof("recognized %d tokens with %d derivations of %s", n, len(finals), chart.success.symbol)
			}
			return
		}
	}

	expected := r.expectedTerminals(chart)
	switch {
	case len(chart.sets) < n+1:
		chart.failure = unexpectedTokenFailure(chart.tokens[len(chart.sets)-1], expected)
	default:
		// Empty input never gets here: Run rejects it up front unless the start symbol is
		// nullable, and then set 0 holds the completed start item.
		chart.failure = prematureEndFailure(chart.tokens[n-1], expected)
	}
	r.debugf("recognition failed: %s", chart.failure)
}

// expectedTerminals rebuilds the last item set in replay mode, in a scratch set so the
// chart is left untouched, and collects the terminals its items expect.
func (r *Recognizer) expectedTerminals(chart *Chart) []*grammar.Symbol {
	rank := len(chart.sets) - 1
	scratch := newItemSet(rank)
	if rank == 0 {
		scratch.items = append(scratch.items, chart.start)
	} else {
		token := chart.tokens[rank-1]
		for _, item := range chart.sets[rank-1].items {
			if item.Dotted != nil && item.Dotted.PreScan() && item.NextSymbol().Name == token.Terminal {
				scratch.add(r.grammar.NextItem(item.Dotted), item.Origin, Scanner, item)
			}
		}
	}
	r.process(chart, scratch, replay)

	start := r.grammar.StartSymbol()
	seen := map[*grammar.Symbol]bool{}
	expected := []*grammar.Symbol{}
	for _, item := range scratch.items {
		var symbol *grammar.Symbol
		switch {
		case item.Dotted == nil:
			continue
		case item.Dotted.PreScan():
			symbol = item.NextSymbol()
		case item.Completed() && item.Origin == 0 && item.Head() == start:
			symbol = grammar.EndMarker
		default:
			continue
		}
		if !seen[symbol] {
			seen[symbol] = true
			expected = append(expected, symbol)
		}
	}
	return expected
}

func (r *Recognizer) tracef(rank int, algo Algo, item *EItem) {
	if r.trace != nil {
		fmt.Fprintf(r.trace, "[%d] %s: %s\n", rank, algo, item)
	}
}

func (r *Recognizer) debugf(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Debugf(format, args...)
	}
}
