package forest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sppf/dendroid/internal/samples"
	"github.com/sppf/dendroid/lexer"
	"github.com/sppf/dendroid/recognizer"
)

func TestWalkProgressTransitions(t *testing.T) {
	w := newWalkProgress(3, 2)
	require.Equal(t, "T3 new [2]", w.String())
	require.NoError(t, w.setState(stateRunning))
	require.NoError(t, w.setState(stateForking))
	require.NoError(t, w.setState(stateWaiting))
	require.NoError(t, w.setState(stateRunning))
	require.NoError(t, w.setState(stateDelegating))
	require.NoError(t, w.setState(stateRunning))
	require.NoError(t, w.setState(stateComplete))

	err := w.setState(stateRunning)
	var invariant *InvariantError
	require.True(t, errors.As(err, &invariant))
	require.Equal(t, "forest invariant violated at thread: T3 cannot go from complete to running", err.Error())
	require.Error(t, newWalkProgress(0, 0).setState(stateComplete))
}

func l8Scaffold(t *testing.T, terminals ...string) *scaffold {
	t.Helper()
	r, err := recognizer.New(samples.L8())
	require.NoError(t, err)
	chart, err := r.Run(lexer.FromTerminals(terminals...))
	require.NoError(t, err)
	require.True(t, chart.Successful())
	return newScaffold(chart)
}

func TestInsertionPoint(t *testing.T) {
	s := l8Scaffold(t, "x", "x")
	S := s.grammar.Symbol("S")
	e, err := s.lookup(entryKey{S, 0, 2})
	require.NoError(t, err)
	require.Len(t, e.derivs, 1)
	require.Equal(t, []int{0, 1, 2}, e.derivs[0].bounds)

	ip := newInsertionPoint(e.node.(*AndNode), e, e.derivs[0])
	require.Equal(t, "S => S S ^ [0..2]", ip.String())
	require.Equal(t, "S => S S . @ 0", ip.item().String())
	require.Equal(t, entryKey{S, 1, 2}, ip.childKey())

	right, err := s.lookup(ip.childKey())
	require.NoError(t, err)
	require.NoError(t, ip.fill(right.node))
	require.Equal(t, "S => S ^ S [0..2]", ip.String())
	require.Equal(t, "S => S . S @ 0", ip.item().String())

	left, err := s.lookup(ip.childKey())
	require.NoError(t, err)
	require.NoError(t, ip.fill(left.node))
	require.True(t, ip.full())
	require.False(t, ip.node.Partial())
	require.Equal(t, "S => S S [0..2]", ip.String())

	err = ip.fill(left.node)
	var invariant *InvariantError
	require.True(t, errors.As(err, &invariant))
	require.Equal(t, "fill", invariant.Step)
}

func TestSharingTable(t *testing.T) {
	s := l8Scaffold(t, "x", "x", "x")
	S := s.grammar.Symbol("S")
	root, err := s.lookup(entryKey{S, 0, 3})
	require.NoError(t, err)
	require.Len(t, root.derivs, 2)
	require.Equal(t, []int{0, 2, 3}, root.derivs[0].bounds)
	require.Equal(t, []int{0, 1, 3}, root.derivs[1].bounds)
	require.Equal(t, 2, root.pending)
	require.False(t, root.complete)
	require.IsType(t, &OrNode{}, root.node)

	again, err := s.lookup(entryKey{S, 0, 3})
	require.NoError(t, err)
	require.Same(t, root, again)
	require.Same(t, s.terminal(1), s.terminal(1))
	require.Equal(t, "x [1..2]", s.terminal(1).String())

	_, err = s.lookup(entryKey{S, 1, 1})
	require.Error(t, err)
}
