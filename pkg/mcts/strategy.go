package mcts

// Walk the frame stack back to the root, undoing every move.
// 'reward' is stated for the player to move at the leaf, so it gets flipped
// before each edge update, the edge value belongs to the player who made the move.
func (e *Engine[T, S]) backpropagate(reward Result) {
	for e.depth > 0 {
		e.depth--
		f := &e.frames[e.depth]
		e.game.Undo(f.edge.Move)

		reward = 1 - reward
		if e.settings.Minimax {
			// value of the position below the edge, as seen by its player to move
			if best := bestByAverage(f.child.Children); best != nil {
				reward = 1 - best.Value()
			}
		}
		f.edge.update(reward)
	}
}

// Undo the moves of an interrupted descent, without touching the statistics
func (e *Engine[T, S]) unwind() {
	for e.depth > 0 {
		e.depth--
		e.game.Undo(e.frames[e.depth].edge.Move)
	}
}
