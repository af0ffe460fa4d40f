package mcts

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/exp/rand"
)

type TreeStats struct {
	maxdepth int
	cycles   int
	cps      uint32
}

// Frame of the descent, the edge taken from 'node' to reach 'child'
type frame[T MoveLike, S any] struct {
	node  *Node[T]
	edge  *ActionNode[T]
	child *Node[T]
	st    S
}

// Engine runs a single-threaded search on a live game position, sharing
// statistics between transpositions through its table. Only Stop may be
// called from another goroutine while searching.
type Engine[T MoveLike, S any] struct {
	TreeStats
	Limiter    LimiterLike
	game       Game[T, S]
	table      *Table[T]
	root       *Node[T]
	frames     []frame[T, S]
	depth      int
	rootPly    int
	moveBuf    []T
	rng        *rand.Rand
	settings   Settings
	listener   *StatsListener[T]
	stopReason StopReason
}

// Create an engine searching on 'game', the game is mutated during the search
// and restored before Search returns
func NewEngine[T MoveLike, S any](game Game[T, S], opts ...Option) *Engine[T, S] {
	settings := defaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	e := &Engine[T, S]{
		Limiter:  NewLimiter(),
		game:     game,
		table:    NewTable[T](),
		frames:   make([]frame[T, S], settings.MaxPly),
		moveBuf:  make([]T, 0, 16),
		rng:      rand.New(rand.NewSource(settings.Seed)),
		settings: settings,
		listener: &StatsListener[T]{nCycles: 1},
	}
	e.Limiter.SetLimits(settings.Limits)
	e.Limiter.SetContext(settings.Context)
	return e
}

// Search the current position and return the move to play: the winning
// move if there is one, otherwise the root edge with most visits
func (e *Engine[T, S]) BestMove() (T, error) {
	var move T
	if err := e.Search(); err != nil {
		return move, err
	}

	if best := BestChild(e.root, BestChildMostVisits); best != nil {
		move = best.Move
	}
	return move, nil
}

func (e *Engine[T, S]) Settings() Settings {
	return e.settings
}

func (e *Engine[T, S]) Game() Game[T, S] {
	return e.game
}

func (e *Engine[T, S]) Table() *Table[T] {
	return e.table
}

// Root node of the last search, nil before the first one
func (e *Engine[T, S]) Root() *Node[T] {
	return e.root
}

// Drop all statistics
func (e *Engine[T, S]) Reset() {
	e.table.Clear()
	e.root = nil
	e.TreeStats = TreeStats{}
	e.stopReason = StopNone
}

func (e *Engine[T, S]) StatsListener() *StatsListener[T] {
	return e.listener
}

func (e *Engine[T, S]) SetListener(listener StatsListener[T]) {
	*e.listener = listener
}

// Adds custom context to the limiter, enabling cancellation through it
func (e *Engine[T, S]) SetContext(ctx context.Context) {
	e.Limiter.SetContext(ctx)
}

// Stop the search before its next iteration
func (e *Engine[T, S]) Stop() {
	e.Limiter.SetStop(true)
}

func (e *Engine[T, S]) SetLimits(limits *Limits) {
	e.Limiter.SetLimits(limits)
}

func (e *Engine[T, S]) Limits() *Limits {
	return e.Limiter.Limits()
}

// Maximum depth reached during the search, note that usually MaxDepth != len(pv)
func (e *Engine[T, S]) MaxDepth() int {
	return e.maxdepth
}

// Total number of full iterations of the last search
func (e *Engine[T, S]) Cycles() int {
	return e.cycles
}

// Get cycles per second statistic
func (e *Engine[T, S]) Cps() uint32 {
	return e.cps
}

// Get the reason why the search was stopped, valid after search ends
func (e *Engine[T, S]) StopReason() StopReason {
	return e.stopReason
}

// Number of positions in the table
func (e *Engine[T, S]) Size() int {
	return e.table.Len()
}

// Value of the best root edge for the player to move, 0.5 without a search
func (e *Engine[T, S]) RootScore() Result {
	if best := BestChild(e.root, BestChildMostVisits); best != nil {
		return best.Value()
	}
	return 0.5
}

func (e *Engine[T, S]) String() string {
	str := fmt.Sprintf("Engine={Size=%d, Stats:{maxdepth=%d, cps=%d, cycles=%d}, Stop=%v",
		e.Size(), e.MaxDepth(), e.Cps(), e.Cycles(), e.StopReason())
	if e.root != nil {
		str += fmt.Sprintf(", Root=%v, Root.Children=%v", e.root, e.root.Children)
	}
	return str + "}"
}

type SearchLine[T MoveLike] struct {
	BestMove T
	Moves    []T
	Eval     Result
	Visits   uint32
	Terminal bool
	Draw     bool
}

// Principal variation of the current position, following the best children by 'policy'
func (e *Engine[T, S]) Pv(policy BestChildPolicy) SearchLine[T] {
	root, ok := e.table.Lookup(e.game.Hash())
	if !ok {
		return SearchLine[T]{}
	}
	return e.line(BestChild(root, policy), policy)
}

// Returns up to 'limits.MultiPv' lines, starting from the most visited root edges
func (e *Engine[T, S]) MultiPv(policy BestChildPolicy) []SearchLine[T] {
	root, ok := e.table.Lookup(e.game.Hash())
	if !ok || len(root.Children) == 0 {
		return nil
	}

	edges := make([]*ActionNode[T], len(root.Children))
	for i := range root.Children {
		edges[i] = &root.Children[i]
	}
	slices.SortStableFunc(edges, func(a, b *ActionNode[T]) int {
		if a.Visits != b.Visits {
			if a.Visits > b.Visits {
				return -1
			}
			return 1
		}
		return 0
	})
	if best := BestChild(root, policy); best != nil && best != edges[0] {
		// keep the chosen move as the first line
		idx := slices.Index(edges, best)
		copy(edges[1:idx+1], edges[:idx])
		edges[0] = best
	}

	count := min(len(edges), max(1, e.Limits().MultiPv))
	lines := make([]SearchLine[T], 0, count)
	for _, edge := range edges[:count] {
		lines = append(lines, e.line(edge, policy))
	}
	return lines
}

// Play 'first' and follow the best edges while they were visited,
// the position is restored afterwards
func (e *Engine[T, S]) line(first *ActionNode[T], policy BestChildPolicy) SearchLine[T] {
	if first == nil {
		return SearchLine[T]{}
	}

	result := SearchLine[T]{
		BestMove: first.Move,
		Eval:     first.Value(),
		Visits:   first.Visits,
	}
	states := make([]S, max(0, len(e.frames)-e.game.Ply()))
	edge := first

	for edge != nil && len(result.Moves) < len(states) {
		e.game.Apply(edge.Move, &states[len(result.Moves)])
		result.Moves = append(result.Moves, edge.Move)

		if e.game.IsTerminal() {
			result.Terminal = true
			result.Draw = e.game.TerminalValue() == 0.5
			break
		}

		node, ok := e.table.Lookup(e.game.Hash())
		if !ok {
			break
		}
		edge = BestChild(node, policy)
		if edge != nil && edge.Visits == 0 && !edge.Decisive {
			break
		}
	}

	for i := len(result.Moves) - 1; i >= 0; i-- {
		e.game.Undo(result.Moves[i])
	}
	return result
}
