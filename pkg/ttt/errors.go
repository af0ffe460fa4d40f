package ttt

import "github.com/pkg/errors"

var (
	ErrIllegalMove = errors.New("ttt: illegal move")
	ErrBadNotation = errors.New("ttt: malformed notation")
)
