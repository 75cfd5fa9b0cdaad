package tetris

import "github.com/AbdelPr0/terminal-arcade/internal/core"

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	Ticks  uint64
	Score  int
	Lines  int
	Locked int
	Piece  Piece
	Cells  []core.Point
	Next   Kind
	Board  [][]core.Color // settled cells, top row first
	Phase  string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Ticks:  g.state.Ticks,
		Score:  g.state.Score,
		Lines:  g.state.Lines,
		Locked: g.state.Locked,
		Piece:  g.state.Piece,
		Cells:  g.state.Piece.Cells(),
		Next:   g.state.Next,
		Board:  g.state.Board.Rows(),
		Phase:  g.state.Phase.String(),
	}
}
