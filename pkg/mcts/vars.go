package mcts

import "time"

// Exploration constant used in the UCT formula, higher values favour
// less visited edges
const DefaultExploration float64 = 0.7

const (
	// Maximum number of children of a single node (see OverflowPolicy)
	DefaultMaxChildren int = 128
	// Maximum game length, bounds the frame stack
	DefaultMaxPly int = 128
)

var SeedGeneratorFn SeedGeneratorFnType = func() uint64 {
	return uint64(time.Now().UnixNano())
}

// Set custom seed generator function for random number generators of new engines,
// by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

const (
	// When choosing the best child, choose the one with most visits,
	// this is the go-to method for MCTS
	BestChildMostVisits BestChildPolicy = iota

	// Choose the child with the best average value
	BestChildAverage
)
