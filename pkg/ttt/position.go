package ttt

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Position is a reversible tic-tac-toe board, every Apply links a new StateData
// to the previous one, Undo must follow the LIFO order
type Position struct {
	geo        *Geometry
	cells      [MaxCells]Token
	empty      uint64
	root       StateData
	st         *StateData
	moves      MoveList
	movesValid bool
	history    []*StateData
}

func NewPosition() *Position {
	return NewPositionWith(Standard)
}

func NewPositionWith(geo *Geometry) *Position {
	p := &Position{geo: geo}
	p.Reset()
	return p
}

// Builds a position from a row-major list of tokens, side to move is derived
// from the token count (cross always starts)
func FromGrid(geo *Geometry, grid []Token) (*Position, error) {
	if len(grid) != geo.Size() {
		return nil, errors.Wrapf(ErrBadNotation, "expected %d cells, got %d", geo.Size(), len(grid))
	}

	p := NewPositionWith(geo)
	var key Key
	crosses, circles := 0, 0
	for cell, token := range grid {
		switch token {
		case Empty:
			continue
		case Cross:
			crosses++
		case Circle:
			circles++
		default:
			return nil, errors.Wrapf(ErrBadNotation, "unknown token %d at cell %d", token, cell)
		}
		p.cells[cell] = token
		p.empty &^= 1 << cell
		key ^= zobristKey(cell, token)
	}

	if crosses != circles && crosses != circles+1 {
		return nil, errors.Wrapf(ErrBadNotation, "unreachable token count x=%d o=%d", crosses, circles)
	}
	if crosses > circles {
		key |= KeySide
	}

	winner, err := p.findWinner()
	if err != nil {
		return nil, err
	}
	if winner != Empty {
		key |= KeyTerminal
	} else if p.empty == 0 {
		key |= KeyTerminal | KeyDraw
	}

	p.root = StateData{Key: key, Ply: crosses + circles, Move: MoveNone, Winner: winner}
	p.st = &p.root
	return p, nil
}

// Reset the board to the empty starting position
func (p *Position) Reset() {
	p.cells = [MaxCells]Token{}
	p.empty = p.geo.full
	p.root = StateData{Move: MoveNone}
	p.st = &p.root
	p.movesValid = false
	p.history = p.history[:0]
}

// Copy of the current position, the undo chain is not carried over
func (p *Position) Clone() *Position {
	c := &Position{
		geo:   p.geo,
		cells: p.cells,
		empty: p.empty,
		root:  *p.st,
	}
	c.root.Previous = nil
	c.st = &c.root
	return c
}

// Place the move, 'st' receives the new snapshot and must stay valid
// until the matching Undo. Panics on an illegal move.
func (p *Position) Apply(m Move, st *StateData) {
	if err := p.Validate(m); err != nil {
		panic(err)
	}

	cell, token := m.Cell(), m.Token()
	p.cells[cell] = token
	p.empty &^= 1 << cell

	key := (p.st.Key ^ zobristKey(cell, token) ^ KeySide) &^ (KeyTerminal | KeyDraw)
	winner := Empty
	if p.wins(cell, token) {
		winner = token
		key |= KeyTerminal
	} else if p.empty == 0 {
		key |= KeyTerminal | KeyDraw
	}

	*st = StateData{
		Key:      key,
		Ply:      p.st.Ply + 1,
		Move:     m,
		Winner:   winner,
		Previous: p.st,
	}
	p.st = st
	p.movesValid = false
}

// Take back 'm', which has to be the last applied move
func (p *Position) Undo(m Move) {
	if p.st.Previous == nil || p.st.Move != m {
		panic(errors.Wrapf(ErrIllegalMove, "undo %v, last move is %v", m, p.st.Move))
	}

	cell := m.Cell()
	p.cells[cell] = Empty
	p.empty |= 1 << cell
	p.st = p.st.Previous
	p.movesValid = false
}

// Apply with internally owned snapshot, see UndoMove
func (p *Position) MakeMove(m Move) {
	st := &StateData{}
	p.Apply(m, st)
	p.history = append(p.history, st)
}

// Take back the last move made with MakeMove, returns false if there is none
func (p *Position) UndoMove() bool {
	if len(p.history) == 0 {
		return false
	}
	p.Undo(p.st.Move)
	p.history = p.history[:len(p.history)-1]
	return true
}

// Check if the move can be applied, without panicking
func (p *Position) Validate(m Move) error {
	if m == MoveNone {
		return errors.Wrap(ErrIllegalMove, "null move")
	}
	if p.IsTerminal() {
		return errors.Wrapf(ErrIllegalMove, "%v: game is over", m)
	}
	cell := m.Cell()
	if cell >= p.geo.Size() {
		return errors.Wrapf(ErrIllegalMove, "%v: cell outside the board", m)
	}
	if m.Token() != p.Turn() {
		return errors.Wrapf(ErrIllegalMove, "%v: %s is to move", m, p.Turn())
	}
	if p.empty&(1<<cell) == 0 {
		return errors.Wrapf(ErrIllegalMove, "%v: cell is occupied", m)
	}
	return nil
}

func (p *Position) Geometry() *Geometry {
	return p.geo
}

func (p *Position) At(cell int) Token {
	return p.cells[cell]
}

func (p *Position) Cells() []Token {
	return p.cells[:p.geo.Size()]
}

func (p *Position) EmptyCount() int {
	return bits.OnesCount64(p.empty)
}

func (p *Position) Key() Key {
	return p.st.Key
}

func (p *Position) Hash() uint64 {
	return uint64(p.st.Key)
}

func (p *Position) State() *StateData {
	return p.st
}

func (p *Position) Ply() int {
	return p.st.Ply
}

func (p *Position) Turn() Token {
	return p.st.Key.Turn()
}

func (p *Position) LastMove() Move {
	return p.st.Move
}

func (p *Position) IsTerminal() bool {
	return p.st.Key.Terminal()
}

func (p *Position) IsDraw() bool {
	return p.st.Key.Draw()
}

func (p *Position) Winner() Token {
	return p.st.Winner
}

// Reward of a finished game for the player who made the last move:
// 1 for a win, 0.5 for a draw, 0 otherwise
func (p *Position) TerminalValue() float64 {
	switch {
	case p.st.Winner != Empty && p.st.Winner == p.Turn().Opponent():
		return 1
	case p.IsDraw():
		return 0.5
	}
	return 0
}
