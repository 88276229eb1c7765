package forest

import (
	"fmt"

	"github.com/sppf/dendroid/recognizer"
)

type walkState int

const (
	stateNew walkState = iota
	stateRunning
	// stateWaiting: waiting for the threads it forked.
	stateWaiting
	stateForking
	// stateDelegating: waiting for a node another thread is building.
	stateDelegating
	stateComplete
)

var walkStateNames = map[walkState]string{
	stateNew:        "new",
	stateRunning:    "running",
	stateWaiting:    "waiting",
	stateForking:    "forking",
	stateDelegating: "delegating",
	stateComplete:   "complete",
}

func (s walkState) String() string { return walkStateNames[s] }

var walkTransitions = map[walkState][]walkState{
	stateNew:        {stateRunning},
	stateRunning:    {stateForking, stateDelegating, stateComplete},
	stateForking:    {stateWaiting},
	stateWaiting:    {stateRunning},
	stateDelegating: {stateRunning},
}

// walkProgress is a thread of the backward walk.
//
// The top of the ancestry is the AND node the thread is filling. A thread forked at an
// ambiguity starts with a single insertion point and completes when it is filled.
type walkProgress struct {
	id       int
	state    walkState
	item     *recognizer.EItem
	rank     int
	ancestry []*insertionPoint
}

func newWalkProgress(id int, rank int) *walkProgress {
	return &walkProgress{id: id, rank: rank}
}

func (w *walkProgress) setState(state walkState) error {
	for _, allowed := range walkTransitions[w.state] {
		if allowed == state {
			w.state = state
			return nil
		}
	}
	return invariantf("thread", "T%d cannot go from %s to %s", w.id, w.state, state)
}

func (w *walkProgress) top() *insertionPoint {
	if len(w.ancestry) == 0 {
		return nil
	}
	return w.ancestry[len(w.ancestry)-1]
}

func (w *walkProgress) push(ip *insertionPoint) { w.ancestry = append(w.ancestry, ip) }

func (w *walkProgress) pop() *insertionPoint {
	ip := w.top()
	if ip != nil {
		w.ancestry = w.ancestry[:len(w.ancestry)-1]
	}
	return ip
}

func (w *walkProgress) String() string {
	out := fmt.Sprintf("T%d %s [%d]", w.id, w.state, w.rank)
	if ip := w.top(); ip != nil {
		out += " " + ip.String()
	}
	return out
}
