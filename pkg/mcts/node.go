package mcts

import (
	"cmp"
	"fmt"
	"slices"
)

// Edge of the graph, statistics of a single move played from its parent node.
// Values are stated from the perspective of the player making the move.
type ActionNode[T MoveLike] struct {
	Move       T
	Visits     uint32
	Prior      Result // rollout estimate, used until the edge gets visited
	Cumulative Result
	Average    Result
	// Move ends the game with a win
	Decisive bool
}

// Average value once visited, prior otherwise
func (a *ActionNode[T]) Value() Result {
	if a.Visits > 0 {
		return a.Average
	}
	return a.Prior
}

func (a *ActionNode[T]) update(value Result) {
	a.Visits++
	a.Cumulative += value
	a.Average = a.Cumulative / Result(a.Visits)
}

func (a ActionNode[T]) String() string {
	return fmt.Sprintf("{%v n=%d avg=%.3f prior=%.3f}", a.Move, a.Visits, a.Average, a.Prior)
}

// Node holds the statistics of a single position, it is owned by the table
// and may be reached through several parent edges. Nodes have no parent
// pointer, so the move leading to a node is not defined.
type Node[T MoveLike] struct {
	Key      uint64
	Visits   uint32
	Children []ActionNode[T]
	Terminal bool
	// One of the children wins immediately
	Decisive bool
}

// A node is expanded once it was visited
func (n *Node[T]) Expanded() bool {
	return n.Visits > 0
}

// First decisive child, nil if there is none
func (n *Node[T]) DecisiveChild() *ActionNode[T] {
	if !n.Decisive {
		return nil
	}
	for i := range n.Children {
		if n.Children[i].Decisive {
			return &n.Children[i]
		}
	}
	return nil
}

func (n *Node[T]) String() string {
	return fmt.Sprintf("Node={Key=%016x, Visits=%d, Terminal=%v, Decisive=%v, Children=%d}",
		n.Key, n.Visits, n.Terminal, n.Decisive, len(n.Children))
}

// Decisive edges first, then by descending prior, keeping the generation
// order for equal ones
func sortChildren[T MoveLike](children []ActionNode[T]) {
	slices.SortStableFunc(children, func(a, b ActionNode[T]) int {
		if a.Decisive != b.Decisive {
			if a.Decisive {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.Prior, a.Prior)
	})
}
