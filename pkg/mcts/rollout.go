package mcts

import "golang.org/x/exp/rand"

// Random playout starting with 'move', the position is left unchanged.
// Returns the reward for the player making 'move' and whether the move
// itself ended the game.
func rollout[T MoveLike, S any](g Game[T, S], move T, rng *rand.Rand) (Result, bool) {
	var st S
	g.Apply(move, &st)

	if g.IsTerminal() {
		value := Result(g.TerminalValue())
		g.Undo(move)
		return value, true
	}

	var reward Result = 0.5
	if moves := g.GenerateMoves(nil); len(moves) > 0 {
		child, _ := rollout(g, moves[rng.Intn(len(moves))], rng)
		reward = 1 - child
	}
	g.Undo(move)
	return reward, false
}
