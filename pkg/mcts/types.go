package mcts

// Other types, which didn't fit to Engine or Node files

// Reward in [0, 1], always stated from the perspective of a specific player:
// 1 being a win, 0.5 a draw and 0 a loss
type Result float64
type MoveLike comparable
type BestChildPolicy int
type SeedGeneratorFnType func() uint64

// What to do when a position has more legal moves than the node capacity
type OverflowPolicy int

const (
	// Refuse to expand the node, the search returns ErrChildOverflow
	OverflowError OverflowPolicy = iota
	// Allocate as many children as there are legal moves
	OverflowGrow
)

func (p OverflowPolicy) String() string {
	if p == OverflowGrow {
		return "grow"
	}
	return "error"
}
