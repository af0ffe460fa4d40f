package ttt

import (
	"strings"

	"github.com/pkg/errors"
)

// Notation of the position: rows from the top separated by '/', cells as
// 'x', 'o' or '.', then the side to move, e.g. "x.o/.x./..o o"
func (p *Position) Notation() string {
	var sb strings.Builder
	for row := 0; row < p.geo.Rows; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		for col := 0; col < p.geo.Cols; col++ {
			sb.WriteString(p.cells[p.geo.Cell(row, col)].String())
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.Turn().String())
	return sb.String()
}

// Parse the notation, the board dimensions must match 'geo'.
// The side to move is optional, if given it has to agree with the token count.
func ParseNotation(geo *Geometry, notation string) (*Position, error) {
	fields := strings.Fields(notation)
	if len(fields) == 0 || len(fields) > 2 {
		return nil, errors.Wrapf(ErrBadNotation, "%q", notation)
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != geo.Rows {
		return nil, errors.Wrapf(ErrBadNotation, "%q: expected %d rows", notation, geo.Rows)
	}

	grid := make([]Token, 0, geo.Size())
	for _, row := range rows {
		if len(row) != geo.Cols {
			return nil, errors.Wrapf(ErrBadNotation, "%q: row %q must have %d cells", notation, row, geo.Cols)
		}
		for _, c := range row {
			t, ok := parseToken(c)
			if !ok {
				return nil, errors.Wrapf(ErrBadNotation, "%q: unknown cell %q", notation, c)
			}
			grid = append(grid, t)
		}
	}

	p, err := FromGrid(geo, grid)
	if err != nil {
		return nil, err
	}

	if len(fields) == 2 {
		side, ok := parseToken([]rune(fields[1])[0])
		if !ok || side == Empty || len(fields[1]) != 1 {
			return nil, errors.Wrapf(ErrBadNotation, "%q: bad side to move %q", notation, fields[1])
		}
		if side != p.Turn() {
			return nil, errors.Wrapf(ErrBadNotation, "%q: %s cannot be to move", notation, side)
		}
	}
	return p, nil
}

// Parse "b2" style coordinates into a move for the side to move
func (p *Position) ParseMove(s string) (Move, error) {
	cell, err := ParseCell(p.geo, s)
	if err != nil {
		return MoveNone, err
	}
	m := NewMove(cell, p.Turn())
	if err := p.Validate(m); err != nil {
		return MoveNone, err
	}
	return m, nil
}

func parseToken(c rune) (Token, bool) {
	switch c {
	case 'x', 'X':
		return Cross, true
	case 'o', 'O':
		return Circle, true
	case '.', '-', '_':
		return Empty, true
	}
	return Empty, false
}

func (p *Position) String() string {
	var sb strings.Builder
	for row := 0; row < p.geo.Rows; row++ {
		for col := 0; col < p.geo.Cols; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.cells[p.geo.Cell(row, col)].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
