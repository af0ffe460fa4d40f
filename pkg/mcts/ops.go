package mcts

// Game is the position the engine searches on. It is mutated in place:
// every Apply is matched by an Undo of the same move, in LIFO order.
type Game[T MoveLike, S any] interface {
	// Make the move, 'st' is the snapshot storage for this ply,
	// it stays valid until the matching Undo
	Apply(move T, st *S)
	// Take back the most recently applied move
	Undo(move T)
	// Fingerprint of the current position, including side to move
	// and terminal status, equal hashes are treated as equal positions
	Hash() uint64
	// Append legal moves of the side to move to 'dst'
	GenerateMoves(dst []T) []T
	IsTerminal() bool
	// 1 if the player who made the last move won, 0.5 for a draw, 0 otherwise.
	// Called only on terminal positions.
	TerminalValue() float64
	// Number of moves played since the start of the game
	Ply() int
}

// Anything that can be looked up in the transposition table
type Keyed interface {
	Hash() uint64
	IsTerminal() bool
}
