package tetris

import (
	"github.com/AbdelPr0/terminal-arcade/internal/core"
)

// Kind identifies a tetromino.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
	kindCount
)

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "?"
	}
	return string("IOTSZJL"[k])
}

// Color returns the occupant tag a locked cell of this kind gets.
func (k Kind) Color() core.Color {
	return kindColors[k]
}

var kindColors = [kindCount]core.Color{
	KindI: core.ColorCyan,
	KindO: core.ColorYellow,
	KindT: core.ColorMagenta,
	KindS: core.ColorGreen,
	KindZ: core.ColorRed,
	KindJ: core.ColorBlue,
	KindL: core.ColorOrange,
}

// Spawn orientations. I sits in a 4×4 box, O in 2×2, the rest in 3×3.
var templates = [kindCount][]string{
	KindI: {
		"....",
		"####",
		"....",
		"....",
	},
	KindO: {
		"##",
		"##",
	},
	KindT: {
		".#.",
		"###",
		"...",
	},
	KindS: {
		".##",
		"##.",
		"...",
	},
	KindZ: {
		"##.",
		".##",
		"...",
	},
	KindJ: {
		"#..",
		"###",
		"...",
	},
	KindL: {
		"..#",
		"###",
		"...",
	},
}

// rotations holds the cell offsets of every kind in each of its four
// orientations, relative to the piece anchor (top-left of its box).
var rotations [kindCount][4][]core.Point

func init() {
	for k := range kindCount {
		shape := parseTemplate(templates[k])
		for r := range 4 {
			rotations[k][r] = offsets(shape)
			shape = rotateCW(shape)
		}
	}
}

func parseTemplate(rows []string) [][]bool {
	shape := make([][]bool, len(rows))
	for y, row := range rows {
		shape[y] = make([]bool, len(row))
		for x, ch := range row {
			shape[y][x] = ch == '#'
		}
	}
	return shape
}

// rotateCW turns a square shape a quarter turn clockwise.
func rotateCW(shape [][]bool) [][]bool {
	n := len(shape)
	out := make([][]bool, n)
	for i := range out {
		out[i] = make([]bool, n)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			out[x][n-1-y] = shape[y][x]
		}
	}
	return out
}

func offsets(shape [][]bool) []core.Point {
	var pts []core.Point
	for y, row := range shape {
		for x, on := range row {
			if on {
				pts = append(pts, core.Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// Piece is the falling tetromino: a kind, one of four orientations and the
// board position of its box's top-left corner.
type Piece struct {
	Kind     Kind
	Rotation int
	X, Y     int
}

// Cells returns the board cells the piece covers.
func (p Piece) Cells() []core.Point {
	offs := rotations[p.Kind][p.Rotation&3]
	cells := make([]core.Point, len(offs))
	for i, o := range offs {
		cells[i] = core.Point{X: p.X + o.X, Y: p.Y + o.Y}
	}
	return cells
}

// Moved returns the piece shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns the piece turned a quarter clockwise around its box.
func (p Piece) Rotated() Piece {
	p.Rotation = (p.Rotation + 1) & 3
	return p
}
