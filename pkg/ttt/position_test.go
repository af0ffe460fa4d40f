package ttt

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, p *Position, cells ...string) {
	t.Helper()
	for _, c := range cells {
		m, err := p.ParseMove(c)
		require.NoError(t, err, c)
		p.MakeMove(m)
	}
}

func TestApplyUndoRoundTrip(t *testing.T) {
	p := NewPosition()
	seen := map[Key]bool{}

	var walk func()
	walk = func() {
		if seen[p.Key()] {
			return
		}
		seen[p.Key()] = true

		key, cells, moves := p.Key(), p.cells, p.LegalMoves()
		for _, m := range moves.Slice() {
			var st StateData
			p.Apply(m, &st)
			require.Equal(t, key, st.Previous.Key)
			require.Equal(t, p.Ply(), st.Previous.Ply+1)
			walk()
			p.Undo(m)

			if p.Key() != key || p.cells != cells || p.LegalMoves() != moves {
				t.Fatalf("apply/undo of %v did not restore %s", m, p.Notation())
			}
		}
	}
	walk()

	// every reachable tic-tac-toe position
	require.Equal(t, 5478, len(seen))
	require.Equal(t, Key(0), p.Key())
}

func TestHashConsistency(t *testing.T) {
	a, b := NewPosition(), NewPosition()
	play(t, a, "b2", "a1", "c3", "c1")
	play(t, b, "c3", "c1", "b2", "a1")
	require.Equal(t, a.Key(), b.Key())
	require.Equal(t, a.Notation(), b.Notation())

	fromNotation, err := ParseNotation(Standard, a.Notation())
	require.NoError(t, err)
	require.Equal(t, a.Key(), fromNotation.Key())

	// side to move is part of the key
	c := NewPosition()
	play(t, c, "b2", "a1", "c3")
	require.NotEqual(t, a.Key(), c.Key())
	require.Equal(t, Circle, c.Turn())
	require.Equal(t, Cross, a.Turn())
}

func TestTerminalStatus(t *testing.T) {
	t.Run("Win", func(t *testing.T) {
		p := NewPosition()
		play(t, p, "a1", "a2", "b1", "b2", "c1")
		require.True(t, p.IsTerminal())
		require.True(t, p.Key().Terminal())
		require.False(t, p.IsDraw())
		require.Equal(t, Cross, p.Winner())
		require.Equal(t, 1.0, p.TerminalValue())
		require.Zero(t, p.LegalMoves().Size)

		require.True(t, p.UndoMove())
		require.False(t, p.IsTerminal())
		require.Equal(t, Empty, p.Winner())
	})

	t.Run("Draw", func(t *testing.T) {
		p := NewPosition()
		// x o x / x o o / o x x
		play(t, p, "a1", "b1", "c1", "b2", "a2", "c2", "b3", "a3", "c3")
		require.True(t, p.IsTerminal())
		require.True(t, p.IsDraw())
		require.True(t, p.Key().Draw())
		require.Equal(t, Empty, p.Winner())
		require.Equal(t, 0.5, p.TerminalValue())

		// same value no matter which side looks at it
		q, err := ParseNotation(Standard, p.Notation())
		require.NoError(t, err)
		require.Equal(t, 0.5, q.TerminalValue())
		require.Equal(t, 0.5, 1-q.TerminalValue())
	})

	t.Run("Diagonal", func(t *testing.T) {
		p := NewPosition()
		play(t, p, "a1", "b1", "b2", "c1", "c3")
		require.Equal(t, Cross, p.Winner())
	})
}

func TestIllegalMoves(t *testing.T) {
	p := NewPosition()
	play(t, p, "b2")

	occupied := NewMove(Standard.Cell(1, 1), Circle)
	require.True(t, errors.Is(p.Validate(occupied), ErrIllegalMove))
	require.Panics(t, func() { p.Apply(occupied, &StateData{}) })

	wrongSide := NewMove(0, Cross)
	require.True(t, errors.Is(p.Validate(wrongSide), ErrIllegalMove))
	require.Panics(t, func() { p.Apply(wrongSide, &StateData{}) })

	// undo has to follow the LIFO order
	require.Panics(t, func() { p.Undo(NewMove(0, Circle)) })
	require.NotPanics(t, func() { p.UndoMove() })
	require.False(t, p.UndoMove())

	_, err := p.ParseMove("d1")
	require.True(t, errors.Is(err, ErrBadNotation))
}

func TestNotation(t *testing.T) {
	cases := []struct {
		notation string
		ok       bool
		turn     Token
	}{
		{".../.../... x", true, Cross},
		{"x../.../...", true, Circle},
		{"x.o/.x./..o x", true, Cross},
		{"xxx/oo./... o", true, Circle},
		{"x../.../... x", false, Empty},
		{"xx./.../... o", false, Empty},
		{"xxx/ooo/... x", false, Empty},
		{"x../..", false, Empty},
		{"x?./.../...", false, Empty},
	}

	for _, c := range cases {
		t.Run(c.notation, func(t *testing.T) {
			p, err := ParseNotation(Standard, c.notation)
			if !c.ok {
				require.True(t, errors.Is(err, ErrBadNotation), "%v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.turn, p.Turn())
		})
	}

	p, err := ParseNotation(Standard, "xxx/oo./... o")
	require.NoError(t, err)
	require.True(t, p.IsTerminal())
	require.Equal(t, Cross, p.Winner())
	require.Equal(t, 1.0, p.TerminalValue())
}

func TestGeometry(t *testing.T) {
	require.Len(t, Standard.Lines(), 8)

	g, err := NewGeometry(4, 4, 3)
	require.NoError(t, err)
	require.Len(t, g.Lines(), 24)

	_, err = NewGeometry(9, 9, 5)
	require.Error(t, err)
	_, err = NewGeometry(3, 3, 4)
	require.Error(t, err)

	// bigger board plays the same way
	p := NewPositionWith(g)
	play(t, p, "a1", "a4", "b2", "b4", "c3")
	require.True(t, p.IsTerminal())
	require.Equal(t, Cross, p.Winner())
	require.Equal(t, "x.../.x../..x./oo.. o", p.Notation())
}

func TestClone(t *testing.T) {
	p := NewPosition()
	play(t, p, "b2", "a1")
	c := p.Clone()
	require.Equal(t, p.Key(), c.Key())
	require.Equal(t, p.Ply(), c.Ply())

	play(t, c, "c3")
	require.NotEqual(t, p.Key(), c.Key())
	require.Equal(t, 7, p.EmptyCount())
}
