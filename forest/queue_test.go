package forest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestQueue() *SwappingQueue[string] {
	// Doubled letters stand for scanner steps.
	return NewSwappingQueue(5,
		func(s string) bool { return len(s) == 2 },
		func(a, b string) bool { return a == b })
}

func drain(q *SwappingQueue[string]) []string {
	out := []string{}
	for {
		s, ok := q.Dequeue()
		if !ok {
			return out
		}
		out = append(out, s+"@"+strings.Repeat("'", 5-q.Priority()))
	}
}

func TestSwappingQueueOrder(t *testing.T) {
	q := newTestQueue()
	require.True(t, q.Empty())
	for _, s := range []string{"a", "ee", "b", "ff", "c"} {
		require.True(t, q.Enqueue(s))
	}
	require.Equal(t, 5, q.Len())
	require.Equal(t, 5, q.Priority())
	require.Equal(t, []string{"a@", "b@", "c@", "ee@'", "ff@'"}, drain(q))
	require.Equal(t, 4, q.Priority())
	require.True(t, q.Empty())
}

func TestSwappingQueuePeek(t *testing.T) {
	q := newTestQueue()
	_, ok := q.Peek()
	require.False(t, ok)
	q.Enqueue("ee")
	q.Enqueue("ff")
	s, _ := q.Peek()
	require.Equal(t, "ee", s)
	q.Enqueue("a")
	s, _ = q.Peek()
	require.Equal(t, "a", s)
	require.Equal(t, 3, q.Len())
}

func TestSwappingQueueDeduplicates(t *testing.T) {
	q := newTestQueue()
	require.True(t, q.Enqueue("a"))
	require.False(t, q.Enqueue("a"))
	require.True(t, q.Enqueue("ee"))
	require.False(t, q.Enqueue("ee"))
	require.Equal(t, 2, q.Len())
	s, _ := q.Dequeue()
	require.Equal(t, "a", s)
	// "a" left the queue so it may come back.
	require.True(t, q.Enqueue("a"))
}

func TestSwappingQueueInterleaving(t *testing.T) {
	q := newTestQueue()
	q.Enqueue("a")
	q.Enqueue("ee")
	s, _ := q.Dequeue()
	require.Equal(t, "a", s)
	// Steps enqueued while the current rank drains still come first.
	q.Enqueue("b")
	q.Enqueue("ff")
	require.Equal(t, []string{"b@", "ee@'", "ff@'"}, drain(q))
}
