package ttt

import "github.com/pkg/errors"

// Empty cells are kept in a single uint64
const MaxCells = 64

// Board dimensions and the number of tokens in a line needed to win
type Geometry struct {
	Rows  int
	Cols  int
	InRow int

	// every winning line as a list of cells
	lines [][]int
	// indices into 'lines' for every cell
	cellLines [][]int
	full      uint64
}

// Standard 3x3 board, three in a row
var Standard = MustGeometry(3, 3, 3)

func NewGeometry(rows, cols, inRow int) (*Geometry, error) {
	if rows < 1 || cols < 1 || rows*cols > MaxCells {
		return nil, errors.Errorf("ttt: board %dx%d must have between 1 and %d cells", rows, cols, MaxCells)
	}
	if inRow < 1 || (inRow > rows && inRow > cols) {
		return nil, errors.Errorf("ttt: %d in a row does not fit a %dx%d board", inRow, rows, cols)
	}

	g := &Geometry{Rows: rows, Cols: cols, InRow: inRow}
	g.full = ^uint64(0) >> (MaxCells - rows*cols)
	g.buildLines()
	return g, nil
}

func MustGeometry(rows, cols, inRow int) *Geometry {
	g, err := NewGeometry(rows, cols, inRow)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Geometry) Size() int {
	return g.Rows * g.Cols
}

func (g *Geometry) Cell(row, col int) int {
	return row*g.Cols + col
}

func (g *Geometry) RowCol(cell int) (int, int) {
	return cell / g.Cols, cell % g.Cols
}

// All winning lines of the board
func (g *Geometry) Lines() [][]int {
	return g.lines
}

func (g *Geometry) buildLines() {
	// horizontal, vertical and both diagonals
	directions := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	g.cellLines = make([][]int, g.Size())

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			for _, d := range directions {
				endRow := row + d[0]*(g.InRow-1)
				endCol := col + d[1]*(g.InRow-1)
				if endRow < 0 || endRow >= g.Rows || endCol < 0 || endCol >= g.Cols {
					continue
				}
				// a single cell line only once
				if g.InRow == 1 && d != directions[0] {
					continue
				}

				line := make([]int, g.InRow)
				for i := range line {
					line[i] = g.Cell(row+d[0]*i, col+d[1]*i)
				}

				idx := len(g.lines)
				g.lines = append(g.lines, line)
				for _, cell := range line {
					g.cellLines[cell] = append(g.cellLines[cell], idx)
				}
			}
		}
	}
}
