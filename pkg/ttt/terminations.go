package ttt

import "github.com/pkg/errors"

// Check only the lines going through 'cell'
func (p *Position) wins(cell int, token Token) bool {
	for _, idx := range p.geo.cellLines[cell] {
		if p.lineOwner(p.geo.lines[idx]) == token {
			return true
		}
	}
	return false
}

// Token filling every cell of the line, Empty if there is none
func (p *Position) lineOwner(line []int) Token {
	first := p.cells[line[0]]
	if first == Empty {
		return Empty
	}
	for _, cell := range line[1:] {
		if p.cells[cell] != first {
			return Empty
		}
	}
	return first
}

// Full board scan, used when the position was not built move by move
func (p *Position) findWinner() (Token, error) {
	winner := Empty
	for _, line := range p.geo.lines {
		owner := p.lineOwner(line)
		if owner == Empty {
			continue
		}
		if winner != Empty && owner != winner {
			return Empty, errors.Wrap(ErrBadNotation, "both sides have a winning line")
		}
		winner = owner
	}
	return winner, nil
}
