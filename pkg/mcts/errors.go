package mcts

import "github.com/pkg/errors"

var (
	// The position has more legal moves than a node can hold
	ErrChildOverflow = errors.New("mcts: too many children")
	// Search was asked for a finished game
	ErrTerminalRoot = errors.New("mcts: root position is terminal")
	// Descent went deeper than the frame stack
	ErrPlyOverflow = errors.New("mcts: maximum ply exceeded")
)
