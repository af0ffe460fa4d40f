package ttt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Move packs the target cell (low 6 bits) and the token placed there
type Move uint8

const (
	MoveNone Move = 0xFF

	moveCellMask   = 0x3F
	moveTokenShift = 6
)

func NewMove(cell int, token Token) Move {
	return Move(uint8(cell)&moveCellMask | uint8(token)<<moveTokenShift)
}

func (m Move) Cell() int {
	return int(m & moveCellMask)
}

func (m Move) Token() Token {
	return Token(m >> moveTokenShift)
}

// Coordinates of the move, column letter followed by the row counted from the top
func (m Move) Notation(g *Geometry) string {
	if m == MoveNone {
		return "-"
	}
	row, col := g.RowCol(m.Cell())
	return fmt.Sprintf("%c%d", 'a'+col, row+1)
}

func (m Move) String() string {
	if m == MoveNone {
		return "none"
	}
	return fmt.Sprintf("%s@%d", m.Token(), m.Cell())
}

// Parse cell coordinates like "b2" into a cell index of the geometry
func ParseCell(g *Geometry, s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) < 2 {
		return -1, errors.Wrapf(ErrBadNotation, "cell %q", s)
	}

	col := int(s[0] - 'a')
	row, err := strconv.Atoi(s[1:])
	if err != nil || col < 0 || col >= g.Cols || row < 1 || row > g.Rows {
		return -1, errors.Wrapf(ErrBadNotation, "cell %q", s)
	}
	return g.Cell(row-1, col), nil
}

type MoveList struct {
	Moves [MaxCells]Move
	Size  uint8
}

func (ml *MoveList) AppendMove(mv Move) {
	ml.Moves[ml.Size] = mv
	ml.Size++
}

func (ml *MoveList) Slice() []Move {
	return ml.Moves[:ml.Size]
}

func (ml *MoveList) Contains(mv Move) bool {
	for _, m := range ml.Moves[:ml.Size] {
		if m == mv {
			return true
		}
	}
	return false
}
