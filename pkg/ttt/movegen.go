package ttt

import "math/bits"

// Legal moves for the side to move, cached until the next Apply/Undo
func (p *Position) LegalMoves() MoveList {
	if !p.movesValid {
		p.moves = p.generateMoves()
		p.movesValid = true
	}
	return p.moves
}

// Append legal moves to 'dst'
func (p *Position) GenerateMoves(dst []Move) []Move {
	ml := p.LegalMoves()
	return append(dst, ml.Slice()...)
}

func (p *Position) generateMoves() MoveList {
	var ml MoveList
	if p.IsTerminal() {
		return ml
	}

	turn := p.Turn()
	free := p.empty
	for free != 0 {
		ml.AppendMove(NewMove(bits.TrailingZeros64(free), turn))
		free &= free - 1
	}
	return ml
}
