package snake

import (
	"time"

	"github.com/AbdelPr0/terminal-arcade/internal/core"
)

// Snapshot is a read-only copy of a session, taken for tests and debugging.
type Snapshot struct {
	Moves    uint64
	Score    int
	Body     []core.Point
	Dir      Direction
	Food     core.Point
	Interval time.Duration
	Phase    string
	Won      bool
}

// Snapshot returns the current game snapshot. The body slice is a copy.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Moves:    g.state.Moves,
		Score:    g.state.Score,
		Body:     append([]core.Point(nil), g.state.Body...),
		Dir:      g.state.Dir,
		Food:     g.state.Food,
		Interval: g.state.Interval,
		Phase:    g.state.Phase.String(),
		Won:      g.state.Won,
	}
}
