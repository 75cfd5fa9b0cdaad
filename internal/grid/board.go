// Package grid implements the fixed-size cell board shared by the grid games.
// A cell is either empty or holds an occupant tag (its color).
package grid

import (
	"github.com/AbdelPr0/terminal-arcade/internal/core"
)

// Empty marks an unoccupied cell.
const Empty = core.ColorDefault

// Board is a W×H grid stored row-major.
type Board struct {
	width  int
	height int
	cells  []core.Color
}

// New creates an empty board. Non-positive dimensions yield an empty 0×0 board.
func New(width, height int) *Board {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]core.Color, width*height),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Size returns the number of cells.
func (b *Board) Size() int { return len(b.cells) }

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

// Index returns the row-major index of p. p must be in bounds.
func (b *Board) Index(p core.Point) int {
	return p.Y*b.width + p.X
}

// PointAt is the inverse of Index.
func (b *Board) PointAt(i int) core.Point {
	return core.Point{X: i % b.width, Y: i / b.width}
}

// At returns the occupant at p, or Empty when p is out of bounds.
func (b *Board) At(p core.Point) core.Color {
	if !b.InBounds(p) {
		return Empty
	}
	return b.cells[b.Index(p)]
}

// Set writes an occupant at p. Out-of-bounds writes are ignored.
func (b *Board) Set(p core.Point, c core.Color) {
	if !b.InBounds(p) {
		return
	}
	b.cells[b.Index(p)] = c
}

// IsEmpty reports whether p is on the board and unoccupied.
func (b *Board) IsEmpty(p core.Point) bool {
	return b.InBounds(p) && b.cells[b.Index(p)] == Empty
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := &Board{width: b.width, height: b.height, cells: make([]core.Color, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}

// Clear empties every cell.
func (b *Board) Clear() {
	clear(b.cells)
}

// RowFull reports whether every cell of row y is occupied.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= b.height {
		return false
	}
	for _, c := range b.row(y) {
		if c == Empty {
			return false
		}
	}
	return true
}

// ClearFullRows removes complete rows, shifts the rows above them down and
// inserts empty rows at the top so the height is unchanged. It returns the
// number of rows removed.
func (b *Board) ClearFullRows() int {
	write := b.height - 1
	for read := b.height - 1; read >= 0; read-- {
		if b.RowFull(read) {
			continue
		}
		if write != read {
			copy(b.row(write), b.row(read))
		}
		write--
	}
	removed := write + 1
	for y := 0; y <= write; y++ {
		clear(b.row(y))
	}
	return removed
}

// Occupied returns the number of non-empty cells.
func (b *Board) Occupied() int {
	n := 0
	for _, c := range b.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// Rows returns a copy of the board as rows of occupants, top row first.
func (b *Board) Rows() [][]core.Color {
	out := make([][]core.Color, b.height)
	for y := range out {
		out[y] = append([]core.Color(nil), b.row(y)...)
	}
	return out
}

func (b *Board) row(y int) []core.Color {
	return b.cells[y*b.width : (y+1)*b.width]
}
