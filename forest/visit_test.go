package forest_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sppf/dendroid/forest"
	"github.com/sppf/dendroid/internal/samples"
)

func record(events *[]string) forest.Subscriber {
	return func(event forest.Event, n forest.ParseNode, depth int) error {
		*events = append(*events, fmt.Sprintf("%s%s %s", strings.Repeat(".", depth), event, n))
		return nil
	}
}

func TestBroadcasterPreOrder(t *testing.T) {
	root := build(t, samples.L11(), "a")
	events := []string{}
	err := forest.NewBroadcaster(forest.PreOrder, record(&events)).Walk(root)
	require.NoError(t, err)
	require.Equal(t, []string{
		"before A => a A [0..1]",
		".before a [0..1]",
		".after a [0..1]",
		".before A =>  [1..1]",
		".after A =>  [1..1]",
		"after A => a A [0..1]",
	}, events)
}

func TestBroadcasterPostOrder(t *testing.T) {
	root := build(t, samples.L11(), "a")
	events := []string{}
	err := forest.NewBroadcaster(forest.PostOrder, record(&events)).Walk(root)
	require.NoError(t, err)
	require.Equal(t, []string{
		".before a [0..1]",
		".after a [0..1]",
		".before A =>  [1..1]",
		".after A =>  [1..1]",
		"before A => a A [0..1]",
		"after A => a A [0..1]",
	}, events)
}

func TestBroadcasterSharedNodes(t *testing.T) {
	root := build(t, samples.L8(), "x x x")
	count := func(once bool) int {
		n := 0
		b := forest.NewBroadcaster(forest.PreOrder)
		b.Once = once
		b.Subscribe(func(event forest.Event, _ forest.ParseNode, _ int) error {
			if event == forest.Before {
				n++
			}
			return nil
		})
		require.NoError(t, b.Walk(root))
		return n
	}
	// OR, 2 ANDs over [0..3], 2 inner ANDs, 6 S => x and 6 terminals
	require.Equal(t, 17, count(false))
	require.Equal(t, forest.Stats(root).Total(), count(true))
}

func TestBroadcasterStopsOnError(t *testing.T) {
	root := build(t, samples.L8(), "x x")
	n := 0
	err := forest.NewBroadcaster(forest.PreOrder, func(event forest.Event, node forest.ParseNode, _ int) error {
		n++
		if _, ok := node.(*forest.TerminalNode); ok {
			return fmt.Errorf("stop at %s", node)
		}
		return nil
	}).Walk(root)
	require.EqualError(t, err, "stop at x [0..1]")
	require.Equal(t, 3, n)
}

func TestVisitOnce(t *testing.T) {
	root := build(t, samples.L19(), "a a")
	visited := []string{}
	err := forest.Visit(root, func(n forest.ParseNode, next func() error) error {
		visited = append(visited, n.String())
		return next()
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"S => a S X [0..2]",
		"a [0..1]",
		"S => a [1..2]",
		"a [1..2]",
		"X =>  [2..2]",
	}, visited)
}

func TestChildren(t *testing.T) {
	root := build(t, samples.L8(), "x x")
	require.Len(t, forest.Children(root), 2)
	require.Nil(t, forest.Children(forest.Children(forest.Children(root)[0])[0]))
}
