package ttt

// Token occupying a cell, Empty for a free one
type Token uint8

const (
	Empty  Token = 0
	Cross  Token = 1
	Circle Token = 2
)

// Opponent of the token, Empty stays Empty
func (t Token) Opponent() Token {
	switch t {
	case Cross:
		return Circle
	case Circle:
		return Cross
	}
	return Empty
}

func (t Token) String() string {
	switch t {
	case Cross:
		return "x"
	case Circle:
		return "o"
	}
	return "."
}

// Key is the 64-bit fingerprint of a position, the low 3 bits carry the status
type Key uint64

const (
	KeyTerminal Key = 1 << 0
	KeyDraw     Key = 1 << 1
	KeySide     Key = 1 << 2 // set when circle is to move

	keyStatusMask = KeyTerminal | KeyDraw | KeySide
)

func (k Key) Terminal() bool {
	return k&KeyTerminal != 0
}

func (k Key) Draw() bool {
	return k&KeyDraw != 0
}

// Side to move encoded in the key
func (k Key) Turn() Token {
	if k&KeySide != 0 {
		return Circle
	}
	return Cross
}

// StateData is a single entry of the undo chain, created by every Apply
type StateData struct {
	Key      Key
	Ply      int
	Move     Move
	Winner   Token
	Previous *StateData
}
