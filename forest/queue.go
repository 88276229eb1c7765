package forest

// A SwappingQueue schedules the steps of a backward walk one rank at a time.
//
// It holds two buckets: the current one, for steps at the current priority, and the
// lobby, for steps one priority below. Steps are dequeued from the current bucket; once
// it is drained the buckets are swapped and the priority drops by one. Every step of a
// rank is therefore handled before any step of the previous rank.
type SwappingQueue[T any] struct {
	priority int
	current  []T
	lobby    []T
	lower    func(step T) bool
	equal    func(a, b T) bool
}

// NewSwappingQueue creates a queue at the given priority. Steps for which lower returns
// true are enqueued in the lobby. A step equal to one already waiting in its bucket is
// dropped.
func NewSwappingQueue[T any](priority int, lower func(step T) bool, equal func(a, b T) bool) *SwappingQueue[T] {
	return &SwappingQueue[T]{priority: priority, lower: lower, equal: equal}
}

// Priority of the current bucket.
func (q *SwappingQueue[T]) Priority() int { return q.priority }

// Len is the number of waiting steps in both buckets.
func (q *SwappingQueue[T]) Len() int { return len(q.current) + len(q.lobby) }

// Empty returns true if no step is waiting.
func (q *SwappingQueue[T]) Empty() bool { return q.Len() == 0 }

// Enqueue a step. It returns false if an equal step was already waiting.
func (q *SwappingQueue[T]) Enqueue(step T) bool {
	bucket := &q.current
	if q.lower(step) {
		bucket = &q.lobby
	}
	for _, waiting := range *bucket {
		if q.equal(waiting, step) {
			return false
		}
	}
	*bucket = append(*bucket, step)
	return true
}

// Dequeue the next step, swapping the buckets first if the current one is drained.
func (q *SwappingQueue[T]) Dequeue() (T, bool) {
	var zero T
	if len(q.current) == 0 {
		if len(q.lobby) == 0 {
			return zero, false
		}
		q.swap()
	}
	step := q.current[0]
	q.current[0] = zero
	q.current = q.current[1:]
	return step, true
}

// Peek returns the step Dequeue would return, without removing it.
func (q *SwappingQueue[T]) Peek() (T, bool) {
	var zero T
	switch {
	case len(q.current) > 0:
		return q.current[0], true
	case len(q.lobby) > 0:
		return q.lobby[0], true
	}
	return zero, false
}

func (q *SwappingQueue[T]) swap() {
	q.current, q.lobby = q.lobby, q.current[:0]
	q.priority--
}
