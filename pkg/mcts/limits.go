package mcts

import (
	"encoding/json"
	"math"
	"strings"
)

// Search budget, checked once per full iteration
type Limits struct {
	Depth    int
	Nodes    uint32
	Cycles   uint32
	Movetime int
	Infinite bool
	MultiPv  int
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultDepthLimit    int    = math.MaxInt
	DefaultNodeLimit     uint32 = math.MaxUint32
	DefaultMovetimeLimit int    = -1
	DefaultCyclesLimit   uint32 = math.MaxUint32

	// Budget of an engine created without explicit limits
	EngineCycles   uint32 = 10000
	EngineMovetime int    = 5000
)

// Limits with nothing set, the search runs until stopped
func DefaultLimits() *Limits {
	return &Limits{
		Depth:    DefaultDepthLimit,
		Nodes:    DefaultNodeLimit,
		Cycles:   DefaultCyclesLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
		MultiPv:  1,
	}
}

// Iteration and time caps used when no limits are given
func EngineLimits() *Limits {
	return DefaultLimits().SetCycles(EngineCycles).SetMovetime(EngineMovetime)
}

// Set the maximum depth of the search
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = depth
	l.Infinite = false
	return l
}

// Set the maximum number of positions stored in the table
func (l *Limits) SetNodes(nodes uint32) *Limits {
	l.Nodes = nodes
	l.Infinite = false
	return l
}

// Set the number of full iterations (select, expand, backpropagate)
func (l *Limits) SetCycles(cycles uint32) *Limits {
	l.Cycles = cycles
	l.Infinite = false
	return l
}

// Set the maximum time for engine to think, in milliseconds
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	return l
}

func (l *Limits) SetMultiPv(multipv int) *Limits {
	l.MultiPv = max(1, multipv)
	return l
}

func (l *Limits) Clone() *Limits {
	c := *l
	return &c
}
