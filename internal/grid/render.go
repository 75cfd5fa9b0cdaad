package grid

import "github.com/AbdelPr0/terminal-arcade/internal/core"

// CellWidth is the number of terminal columns used per board cell.
// Two columns make cells roughly square in most terminal fonts.
const CellWidth = 2

// Frame returns the screen rectangle a board occupies when drawn with its
// top-left border corner at (ox, oy).
func Frame(w, h, ox, oy int) core.Rect {
	return core.NewRect(ox, oy, w*CellWidth+2, h+2)
}

// Centered returns the origin that centers a w×h board on the screen,
// reserving top rows for a HUD.
func Centered(s *core.Screen, w, h, hud int) (int, int) {
	f := Frame(w, h, 0, 0)
	ox := max((s.Width()-f.W)/2, 0)
	oy := max(hud, (s.Height()-f.H+hud)/2)
	return ox, oy
}

// Overlay is a cell drawn on top of the settled board, such as a falling
// piece or the snake. A zero Rune draws a full block.
type Overlay struct {
	At    core.Point
	Color core.Color
	Rune  rune
}

// Draw renders the board frame, settled cells and overlays onto the screen.
// Empty cells show a faint dot so the grid stays readable.
func (b *Board) Draw(s *core.Screen, ox, oy int, overlays ...Overlay) {
	s.DrawBox(Frame(b.width, b.height, ox, oy), core.ColorGray)

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			if c == Empty {
				drawCell(s, ox, oy, core.Point{X: x, Y: y}, '·', ' ', core.ColorGray)
				continue
			}
			drawCell(s, ox, oy, core.Point{X: x, Y: y}, '█', '█', c)
		}
	}

	for _, o := range overlays {
		if !b.InBounds(o.At) {
			continue
		}
		if o.Rune == 0 {
			drawCell(s, ox, oy, o.At, '█', '█', o.Color)
			continue
		}
		drawCell(s, ox, oy, o.At, o.Rune, ' ', o.Color)
	}
}

func drawCell(s *core.Screen, ox, oy int, p core.Point, left, right rune, c core.Color) {
	sx := ox + 1 + p.X*CellWidth
	sy := oy + 1 + p.Y
	s.SetColored(sx, sy, left, c)
	s.SetColored(sx+1, sy, right, c)
}
