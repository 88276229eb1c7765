// Package forest builds shared packed parse forests from Earley charts.
//
// The Builder walks a successful chart backward, from the end of the input to its
// start. Each non-terminal matched over a range gets a single node, shared by every
// parent reaching it. A non-terminal with several derivations over the same range gets
// an OrNode with one child per derivation, and the walk forks one thread per
// derivation. Threads move one rank at a time through a SwappingQueue.
package forest

import (
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/sppf/dendroid/recognizer"
)

// An Option to modify the behaviour of the Builder.
type Option func(b *Builder) error

// WithLogger sets a logger. A nil logger disables logging.
func WithLogger(logger commonlog.Logger) Option {
	return func(b *Builder) error {
		b.logger = logger
		return nil
	}
}

// WithTrace writes one line per walk step to w.
func WithTrace(w io.Writer) Option {
	return func(b *Builder) error {
		b.trace = w
		return nil
	}
}

// WithMaxThreads limits the number of threads of a walk. Exceeding it fails the walk
// with an InvariantError. The default is no limit.
func WithMaxThreads(n int) Option {
	return func(b *Builder) error {
		if n < 1 {
			return fmt.Errorf("thread limit must be positive, not %d", n)
		}
		b.maxThreads = n
		return nil
	}
}

// A Builder builds parse forests. It is stateless between runs.
type Builder struct {
	logger     commonlog.Logger
	trace      io.Writer
	maxThreads int
}

// New creates a Builder.
func New(options ...Option) (*Builder, error) {
	b := &Builder{}
	for _, option := range options {
		if err := option(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Run builds the forest of a chart and returns its root, which spans the whole input.
func (b *Builder) Run(chart *recognizer.Chart) (ParseNode, error) {
	if !chart.Successful() {
		return nil, fmt.Errorf("%w: %s", ErrNotRecognized, chart.Failure())
	}
	w := &walk{
		Builder:  b,
		scaffold: newScaffold(chart),
	}
	w.queue = NewSwappingQueue(len(w.tokens),
		func(s step) bool { return s.algo == recognizer.Scanner },
		func(a, b step) bool { return a == b })
	root, err := w.run()
	if err != nil {
		return nil, err
	}
	if b.logger != nil {
		b.logger.Infof("built forest with %d threads: %s", len(w.threads), Stats(root))
	}
	return root, nil
}

// A step moves a thread to a chart item.
type step struct {
	thread *walkProgress
	algo   recognizer.Algo
	item   *recognizer.EItem
}

// walk is the state of one Run.
type walk struct {
	*Builder
	*scaffold
	queue   *SwappingQueue[step]
	threads []*walkProgress
}

func (w *walk) run() (ParseNode, error) {
	success := w.chart.SuccessItem()
	rootKey := entryKey{success.Head(), 0, len(w.tokens)}
	root, err := w.lookup(rootKey)
	if err != nil {
		return nil, err
	}
	for _, d := range root.derivs {
		if !contains(success.Predecessors(), d.items[len(d.items)-1]) {
			return nil, invariantf("start", "%s is not a predecessor of the success item", d.items[len(d.items)-1])
		}
	}

	main, err := w.spawn()
	if err != nil {
		return nil, err
	}
	if err := main.setState(stateRunning); err != nil {
		return nil, err
	}
	if err := w.reach(main, rootKey); err != nil {
		return nil, err
	}
	for {
		s, ok := w.queue.Dequeue()
		if !ok {
			break
		}
		if err := w.process(s); err != nil {
			return nil, err
		}
	}

	if !root.complete {
		return nil, invariantf("end", "the walk ended before %s was complete", root.node)
	}
	for _, thread := range w.threads {
		if thread.state != stateComplete {
			return nil, invariantf("end", "the walk ended with thread %s", thread)
		}
	}
	return root.node, nil
}

func (w *walk) spawn() (*walkProgress, error) {
	if w.maxThreads > 0 && len(w.threads) >= w.maxThreads {
		return nil, invariantf("fork", "more than %d threads needed", w.maxThreads)
	}
	thread := newWalkProgress(len(w.threads), w.queue.Priority())
	w.threads = append(w.threads, thread)
	return thread, nil
}

func (w *walk) enqueue(thread *walkProgress, algo recognizer.Algo, item *recognizer.EItem) {
	w.queue.Enqueue(step{thread: thread, algo: algo, item: item})
}

// process fills the next slot of the thread's insertion point.
func (w *walk) process(s step) error {
	thread := s.thread
	if thread.state == stateNew {
		if err := thread.setState(stateRunning); err != nil {
			return err
		}
	}
	if thread.state != stateRunning {
		return invariantf(s.algo.String(), "thread %s was scheduled", thread)
	}
	if s.item.Rank != w.queue.Priority() {
		return invariantf(s.algo.String(), "%s from set %d while walking set %d", s.item, s.item.Rank, w.queue.Priority())
	}
	thread.item, thread.rank = s.item, s.item.Rank
	w.tracef(thread, s.algo)

	ip := thread.top()
	if ip.full() {
		return w.rollup(thread)
	}
	if !ip.slot().Terminal() {
		return w.reach(thread, ip.childKey())
	}
	if err := ip.fill(w.terminal(thread.rank - 1)); err != nil {
		return err
	}
	w.enqueue(thread, recognizer.Scanner, ip.item())
	return nil
}

// reach handles a thread reaching the node of key: the node fills the slot of the
// thread's insertion point, if any, then the thread either goes on, descends into the
// node, forks one thread per derivation or waits for the node to be complete.
func (w *walk) reach(thread *walkProgress, key entryKey) error {
	e, err := w.lookup(key)
	if err != nil {
		return err
	}
	if parent := thread.top(); parent != nil {
		if err := parent.fill(e.node); err != nil {
			return err
		}
		e.parents = append(e.parents, parent)
		if len(e.parents) == 2 {
			w.debugf("%s is shared", e.node)
		}
	}

	switch {
	case e.complete:
		return w.resume(thread)

	case e.started:
		e.waiters = append(e.waiters, thread)
		return thread.setState(stateDelegating)

	case len(e.derivs) == 1:
		e.started = true
		ip := newInsertionPoint(e.node.(*AndNode), e, e.derivs[0])
		thread.push(ip)
		w.enqueue(thread, recognizer.Completer, ip.item())
		return nil

	default:
		return w.fork(thread, e)
	}
}

func (w *walk) fork(thread *walkProgress, e *entry) error {
	e.started = true
	if err := thread.setState(stateForking); err != nil {
		return err
	}
	e.waiters = append(e.waiters, thread)
	forks := 0
	for i, d := range e.derivs {
		if d.empty() {
			continue
		}
		child, err := w.spawn()
		if err != nil {
			return err
		}
		ip := newInsertionPoint(e.nodes[i].(*AndNode), e, d)
		child.push(ip)
		w.enqueue(child, recognizer.Completer, ip.item())
		forks++
	}
	w.debugf("thread %d forks %d threads for %s", thread.id, forks, e.node)
	return thread.setState(stateWaiting)
}

// rollup pops a filled insertion point. The entry of the node is complete once all its
// derivations are filled.
func (w *walk) rollup(thread *walkProgress) error {
	ip := thread.pop()
	e := ip.entry
	if ip.item().Rank != e.key.lower {
		return invariantf("rollup", "%s starts at %d, not %d", ip, ip.item().Rank, e.key.lower)
	}
	e.pending--
	if e.pending == 0 {
		if err := w.wake(e); err != nil {
			return err
		}
	}
	if len(thread.ancestry) == 0 && thread.id != 0 {
		// forked for one derivation of e
		return thread.setState(stateComplete)
	}
	if err := w.checkCaller(thread, ip.deriv); err != nil {
		return err
	}
	return w.resume(thread)
}

// wake marks an entry complete and resumes the threads waiting for it.
func (w *walk) wake(e *entry) error {
	e.complete = true
	waiters := e.waiters
	e.waiters = nil
	for _, waiter := range waiters {
		for _, d := range e.derivs {
			if d.empty() {
				continue
			}
			if err := w.checkCaller(waiter, d); err != nil {
				return err
			}
		}
		if err := waiter.setState(stateRunning); err != nil {
			return err
		}
		if err := w.resume(waiter); err != nil {
			return err
		}
	}
	return nil
}

// resume moves a thread back to its insertion point after a slot was filled with a
// complete node.
func (w *walk) resume(thread *walkProgress) error {
	ip := thread.top()
	if ip == nil {
		return thread.setState(stateComplete)
	}
	w.enqueue(thread, recognizer.Predictor, ip.item())
	return nil
}

// checkCaller verifies that the item the thread resumes at predicted the derivation.
func (w *walk) checkCaller(thread *walkProgress, d *derivation) error {
	caller := w.chart.StartItem()
	if ip := thread.top(); ip != nil {
		caller = ip.item()
	}
	if !contains(d.items[0].Predecessors(), caller) {
		return invariantf("predictor", "%s was not predicted by %s", d.items[0], caller)
	}
	return nil
}

func (w *walk) tracef(thread *walkProgress, algo recognizer.Algo) {
	if w.trace != nil {
		fmt.Fprintf(w.trace, "T%d [%d] %s: %s\n", thread.id, thread.rank, algo, thread.top())
	}
}

func (w *walk) debugf(format string, args ...interface{}) {
	if w.logger != nil {
		w.logger.Debugf(format, args...)
	}
}

func contains(items []*recognizer.EItem, item *recognizer.EItem) bool {
	for _, candidate := range items {
		if candidate == item {
			return true
		}
	}
	return false
}
