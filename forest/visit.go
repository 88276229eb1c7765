package forest

import "fmt"

// A Visitor is called back by ParseNode.Accept with the concrete node.
type Visitor interface {
	VisitTerminal(n *TerminalNode) error
	VisitAndNode(n *AndNode) error
	VisitOrNode(n *OrNode) error
	VisitEmptyRuleNode(n *EmptyRuleNode) error
}

type visitorFunc func(n ParseNode, next func() error) error

// Visit calls visitor once for every node reachable from root, shared nodes included.
// Calling next descends into the children of n.
func Visit(root ParseNode, visitor func(n ParseNode, next func() error) error) error {
	return _visit(map[ParseNode]bool{}, root, visitor)
}

func _visit(seen map[ParseNode]bool, n ParseNode, visitor visitorFunc) error {
	if seen[n] {
		return nil
	}
	seen[n] = true
	return visitor(n, func() error {
		switch n := n.(type) {
		case *AndNode:
			for _, c := range n.Children {
				if c == nil {
					return fmt.Errorf("%s: unfilled child", n)
				}
				if err := _visit(seen, c, visitor); err != nil {
					return err
				}
			}

		case *OrNode:
			for _, c := range n.Children {
				if err := _visit(seen, c, visitor); err != nil {
					return err
				}
			}

		case *TerminalNode:

		case *EmptyRuleNode:

		default:
			panic("unsupported")

		}
		return nil
	})
}

// Order of a walk.
type Order int

const (
	// PreOrder notifies Before and After around the children of a node.
	PreOrder Order = iota
	// PostOrder notifies both Before and After once the children are done.
	PostOrder
)

// Event of a walk.
type Event int

// Walk events.
const (
	Before Event = iota
	After
)

func (e Event) String() string {
	if e == Before {
		return "before"
	}
	return "after"
}

// A Subscriber is notified of the walk events of a Broadcaster. Depth is 0 at the root.
type Subscriber func(event Event, n ParseNode, depth int) error

// A Broadcaster is a Visitor walking a forest and notifying its subscribers.
//
// Shared nodes are walked once per parent unless Once is set, in which case they are
// walked the first time they are reached.
type Broadcaster struct {
	Order Order
	Once  bool

	subscribers []Subscriber
	depth       int
	seen        map[ParseNode]bool
}

var _ Visitor = &Broadcaster{}

// NewBroadcaster creates a Broadcaster.
func NewBroadcaster(order Order, subscribers ...Subscriber) *Broadcaster {
	return &Broadcaster{Order: order, subscribers: subscribers}
}

// Subscribe adds a subscriber.
func (b *Broadcaster) Subscribe(subscriber Subscriber) { b.subscribers = append(b.subscribers, subscriber) }

// Walk the forest from root.
func (b *Broadcaster) Walk(root ParseNode) error {
	b.depth = 0
	b.seen = map[ParseNode]bool{}
	return root.Accept(b)
}

func (b *Broadcaster) VisitTerminal(n *TerminalNode) error { return b.leaf(n) }

func (b *Broadcaster) VisitEmptyRuleNode(n *EmptyRuleNode) error { return b.leaf(n) }

func (b *Broadcaster) VisitAndNode(n *AndNode) error { return b.composite(n, n.Children) }

func (b *Broadcaster) VisitOrNode(n *OrNode) error { return b.composite(n, n.Children) }

func (b *Broadcaster) leaf(n ParseNode) error {
	if b.skip(n) {
		return nil
	}
	if err := b.broadcast(Before, n); err != nil {
		return err
	}
	return b.broadcast(After, n)
}

func (b *Broadcaster) composite(n ParseNode, children []ParseNode) error {
	if b.skip(n) {
		return nil
	}
	if b.Order == PreOrder {
		if err := b.broadcast(Before, n); err != nil {
			return err
		}
	}
	b.depth++
	for _, child := range children {
		if child == nil {
			return fmt.Errorf("%s: unfilled child", n)
		}
		if err := child.Accept(b); err != nil {
			return err
		}
	}
	b.depth--
	if b.Order == PostOrder {
		if err := b.broadcast(Before, n); err != nil {
			return err
		}
	}
	return b.broadcast(After, n)
}

func (b *Broadcaster) skip(n ParseNode) bool {
	if !b.Once {
		return false
	}
	if b.seen == nil {
		b.seen = map[ParseNode]bool{}
	}
	if b.seen[n] {
		return true
	}
	b.seen[n] = true
	return false
}

func (b *Broadcaster) broadcast(event Event, n ParseNode) error {
	for _, subscriber := range b.subscribers {
		if err := subscriber(event, n, b.depth); err != nil {
			return err
		}
	}
	return nil
}

// Statistics counts the distinct nodes of a forest by variant.
type Statistics struct {
	Terminals      int
	AndNodes       int
	OrNodes        int
	EmptyRuleNodes int
}

// Total number of distinct nodes.
func (s Statistics) Total() int { return s.Terminals + s.AndNodes + s.OrNodes + s.EmptyRuleNodes }

func (s Statistics) String() string {
	return fmt.Sprintf("%d nodes: %d and, %d or, %d terminal, %d empty", s.Total(), s.AndNodes, s.OrNodes, s.Terminals, s.EmptyRuleNodes)
}

// Stats counts the distinct nodes reachable from root.
func Stats(root ParseNode) Statistics {
	stats := Statistics{}
	_ = Visit(root, func(n ParseNode, next func() error) error {
		switch n.(type) {
		case *TerminalNode:
			stats.Terminals++
		case *AndNode:
			stats.AndNodes++
		case *OrNode:
			stats.OrNodes++
		case *EmptyRuleNode:
			stats.EmptyRuleNodes++
		}
		return next()
	})
	return stats
}
