package snake

import (
	"math/rand"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/AbdelPr0/terminal-arcade/internal/config"
	"github.com/AbdelPr0/terminal-arcade/internal/core"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Vector returns the unit step for the direction.
func (d Direction) Vector() core.Point {
	switch d {
	case DirUp:
		return core.Point{X: 0, Y: -1}
	case DirDown:
		return core.Point{X: 0, Y: 1}
	case DirLeft:
		return core.Point{X: -1, Y: 0}
	default:
		return core.Point{X: 1, Y: 0}
	}
}

// Opposite reports whether d points straight back along o.
func (d Direction) Opposite(o Direction) bool {
	return d != o && (d+2)%4 == o
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Settings are the rules a session is played with.
type Settings struct {
	Width, Height int
	FoodPoints    int
	Interval      time.Duration // starting move interval
	Speedup       time.Duration // removed from the interval per food
	MinInterval   time.Duration
	TailVacates   bool
}

// SettingsFrom converts a loaded configuration.
func SettingsFrom(cfg config.SnakeConfig) Settings {
	return Settings{
		Width:       cfg.Board.Width,
		Height:      cfg.Board.Height,
		FoodPoints:  cfg.Scoring.Food,
		Interval:    cfg.Interval(),
		Speedup:     time.Duration(cfg.Timing.SpeedupMS) * time.Millisecond,
		MinInterval: time.Duration(cfg.Timing.MinIntervalMS) * time.Millisecond,
		TailVacates: cfg.Rules.TailVacates,
	}
}

// DefaultSettings are the classic rules: 20×20, 150ms, +10 per food.
func DefaultSettings() Settings {
	return SettingsFrom(config.DefaultSnakeConfig())
}

// NoFood marks the food position once the board is full.
var NoFood = core.Point{X: -1, Y: -1}

// State is one Snake session. Step never mutates its input; Body is
// replaced, not edited, on every move.
type State struct {
	Body     []core.Point // head first, pairwise distinct
	Dir      Direction    // direction of the last move
	Food     core.Point
	Score    int
	Interval time.Duration
	Phase    core.Phase
	Won      bool
	Moves    uint64
}

// NewState builds a waiting session: a one-cell snake in the middle of the
// board heading right, with food up and to the left.
func NewState(s Settings) State {
	return State{
		Body:     []core.Point{{X: s.Width / 2, Y: s.Height / 2}},
		Dir:      DirRight,
		Food:     core.Point{X: s.Width / 4, Y: s.Height / 4},
		Interval: s.Interval,
		Phase:    core.PhaseNotStarted,
	}
}

// Head returns the first body cell.
func (st State) Head() core.Point {
	return st.Body[0]
}

// Intent is the steering request buffered between two moves.
type Intent struct {
	Dir Direction
	Set bool
}

// Steer records a direction press. A press that would reverse the snake
// onto itself is rejected; otherwise the latest press replaces any earlier one.
func Steer(st State, pending Intent, d Direction) Intent {
	if d.Opposite(st.Dir) {
		return pending
	}
	return Intent{Dir: d, Set: true}
}

// Events describes what a single step did.
type Events struct {
	Moved bool
	Ate   bool
	Died  bool
	Won   bool
}

// Step advances a running session by one move. Sessions in any other phase
// are returned unchanged.
func Step(st State, in Intent, s Settings, rng *rand.Rand) (State, Events) {
	var ev Events
	if !st.Phase.Advancing() || len(st.Body) == 0 {
		return st, ev
	}

	next := st
	next.Moves++
	if in.Set && !in.Dir.Opposite(st.Dir) {
		next.Dir = in.Dir
	}

	head := st.Head().Add(next.Dir.Vector())
	if !inBoard(head, s) {
		next.Phase = next.Phase.End()
		ev.Died = true
		return next, ev
	}

	eating := head == st.Food
	occ := newOccupancy(st.Body, s.Width)
	if seg, hit := occ.at(head, s.Width); hit {
		tail := seg == len(st.Body)-1
		if !(s.TailVacates && tail && !eating) {
			next.Phase = next.Phase.End()
			ev.Died = true
			return next, ev
		}
	}

	body := make([]core.Point, 0, len(st.Body)+1)
	body = append(body, head)
	body = append(body, st.Body...)
	ev.Moved = true

	if eating {
		ev.Ate = true
		next.Score += s.FoodPoints
		next.Interval = max(st.Interval-s.Speedup, s.MinInterval)
		next.Food = spawnFood(body, s, rng)
		if next.Food == NoFood {
			next.Won = true
			next.Phase = next.Phase.End()
			ev.Won = true
		}
	} else {
		body = body[:len(body)-1]
	}
	next.Body = body
	return next, ev
}

func inBoard(p core.Point, s Settings) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// spawnFood picks a uniformly random cell not covered by body, or NoFood
// when the snake fills the board.
func spawnFood(body []core.Point, s Settings, rng *rand.Rand) core.Point {
	free := s.Width*s.Height - len(body)
	if free <= 0 {
		return NoFood
	}
	occ := newOccupancy(body, s.Width)
	k := rng.Intn(free)
	for i := 0; i < s.Width*s.Height; i++ {
		p := core.Point{X: i % s.Width, Y: i / s.Width}
		if _, taken := occ.at(p, s.Width); taken {
			continue
		}
		if k == 0 {
			return p
		}
		k--
	}
	return NoFood
}

// occupancy maps a cell index to the body segment covering it.
type occupancy struct {
	cells *intmap.Map[int, int]
}

func newOccupancy(body []core.Point, width int) occupancy {
	o := occupancy{cells: intmap.New[int, int](len(body))}
	for i, p := range body {
		o.cells.Put(p.Y*width+p.X, i)
	}
	return o
}

func (o occupancy) at(p core.Point, width int) (int, bool) {
	return o.cells.Get(p.Y*width + p.X)
}
