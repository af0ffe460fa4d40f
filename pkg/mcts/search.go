package mcts

import (
	"github.com/pkg/errors"
)

// Search until the budget runs out, the statistics stay in the table
// and are reused by the next search. Calls:
//
// 1. selection - descend by UCT to an unvisited or terminal node
//
// 2. expansion - build the node's children, each seeded by a rollout
//
// 3. backpropagation - update the visited edges up to the root
func (e *Engine[T, S]) Search() error {
	e.Limiter.Reset()
	e.stopReason = StopNone

	if err := e.createRoot(); err != nil {
		return err
	}

	if e.root.Decisive {
		e.stopReason = StopDecisive
	} else {
		for !e.budgetExceeded() {
			prevDepth := e.maxdepth
			leaf, err := e.selectLeaf()
			if err != nil {
				e.unwind()
				return err
			}

			reward, err := e.expandAndRollout(leaf)
			if err != nil {
				e.unwind()
				return err
			}
			e.backpropagate(reward)

			e.cycles++
			e.cps = uint32(e.cycles) * 1000 / e.Limiter.Elapsed()
			// listeners run with the game back at the root
			if e.maxdepth > prevDepth {
				e.listener.invoke(e.listener.onDepth, e)
			}
			e.listener.invokeCycle(e)
		}

		e.Limiter.EvaluateStopReason(uint32(e.table.Len()), uint32(e.maxdepth), uint32(e.cycles))
		e.stopReason = e.Limiter.StopReason()
	}

	e.settings.Logger.Debug().
		Int("cycles", e.cycles).
		Int("nodes", e.table.Len()).
		Int("maxdepth", e.maxdepth).
		Uint32("cps", e.cps).
		Uint32("elapsed_ms", e.Limiter.Elapsed()).
		Stringer("stop", e.stopReason).
		Msg("search finished")

	e.listener.invoke(e.listener.onStop, e)
	return nil
}

// Reset the counters and fetch (or create and expand) the root node
func (e *Engine[T, S]) createRoot() error {
	e.cycles = 0
	e.maxdepth = 0
	e.cps = 0
	e.depth = 0
	e.rootPly = e.game.Ply()

	e.root = e.table.GetOrCreate(e.game)
	if e.root.Terminal {
		return ErrTerminalRoot
	}

	if !e.root.Expanded() {
		if _, err := e.expand(e.root); err != nil {
			return err
		}
	}

	if len(e.root.Children) == 0 {
		return errors.Wrap(ErrTerminalRoot, "no legal moves")
	}
	return nil
}

func (e *Engine[T, S]) budgetExceeded() bool {
	return !e.Limiter.Ok(uint32(e.table.Len()), uint32(e.maxdepth), uint32(e.cycles))
}

// Descend from the root while the nodes are already visited, every step is
// recorded as a frame. Stops on the first unvisited or terminal node.
func (e *Engine[T, S]) selectLeaf() (*Node[T], error) {
	node := e.root
	e.depth = 0

	for node.Expanded() && !node.Terminal && len(node.Children) > 0 {
		if e.rootPly+e.depth >= len(e.frames) {
			return node, errors.Wrapf(ErrPlyOverflow, "ply %d", e.rootPly+e.depth)
		}

		edge := e.selectChild(node)
		node.Visits++

		f := &e.frames[e.depth]
		e.game.Apply(edge.Move, &f.st)
		child := e.table.GetOrCreate(e.game)
		f.node, f.edge, f.child = node, edge, child

		e.depth++
		node = child
	}

	e.maxdepth = max(e.maxdepth, e.depth)
	return node, nil
}

// A winning move is always taken, otherwise UCT decides
func (e *Engine[T, S]) selectChild(node *Node[T]) *ActionNode[T] {
	if decisive := node.DecisiveChild(); decisive != nil {
		return decisive
	}
	return bestUCT(node, e.settings.Exploration)
}

// Returns the reward for the player to move at 'node'
func (e *Engine[T, S]) expandAndRollout(node *Node[T]) (Result, error) {
	if node.Terminal {
		node.Visits++
		return 1 - Result(e.game.TerminalValue()), nil
	}
	return e.expand(node)
}

// Create the children of 'node', each one gets a rollout as its prior.
// Returns the prior of the best child.
func (e *Engine[T, S]) expand(node *Node[T]) (Result, error) {
	moves := e.game.GenerateMoves(e.moveBuf[:0])
	e.moveBuf = moves

	if len(moves) > e.settings.MaxChildren && e.settings.Overflow == OverflowError {
		return 0, errors.Wrapf(ErrChildOverflow, "%d legal moves, capacity %d", len(moves), e.settings.MaxChildren)
	}

	children := make([]ActionNode[T], len(moves))
	for i, move := range moves {
		prior, ended := rollout(e.game, move, e.rng)
		children[i] = ActionNode[T]{
			Move:     move,
			Prior:    prior,
			Decisive: ended && prior == 1,
		}
		node.Decisive = node.Decisive || children[i].Decisive
	}

	sortChildren(children)
	node.Children = children
	node.Visits++

	if len(children) == 0 {
		// no moves in a live position, scored as a draw
		return 0.5, nil
	}
	return children[0].Prior, nil
}
