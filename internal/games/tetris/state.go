package tetris

import (
	"math/rand"
	"time"

	"github.com/AbdelPr0/terminal-arcade/internal/config"
	"github.com/AbdelPr0/terminal-arcade/internal/core"
	"github.com/AbdelPr0/terminal-arcade/internal/grid"
)

// Settings are the rules a session is played with.
type Settings struct {
	Width, Height int
	FallInterval  time.Duration
	LinePoints    [4]int // points for clearing 1..4 rows with one lock
	LockPoints    int
}

// SettingsFrom converts a loaded configuration.
func SettingsFrom(cfg config.TetrisConfig) Settings {
	s := Settings{
		Width:        cfg.Board.Width,
		Height:       cfg.Board.Height,
		FallInterval: cfg.FallInterval(),
		LockPoints:   cfg.Scoring.Lock,
	}
	copy(s.LinePoints[:], cfg.Scoring.Lines)
	return s
}

// DefaultSettings are the classic rules: 10×20, 800ms gravity,
// 100/300/500/800 per clear and 10 per lock.
func DefaultSettings() Settings {
	return SettingsFrom(config.DefaultTetrisConfig())
}

// Move is a player request, validated when it is applied.
type Move int

const (
	MoveNone Move = iota
	MoveLeft
	MoveRight
	MoveRotate
	MoveSoftDrop
	MoveHardDrop
)

// State is one Tetris session. Step and Apply never mutate the board of
// their input; a lock works on a copy.
type State struct {
	Board  *grid.Board
	Piece  Piece
	Next   Kind
	Score  int
	Lines  int
	Locked int
	Phase  core.Phase
	Ticks  uint64
}

// Events describes what a step or move did.
type Events struct {
	Moved    bool
	Locked   bool
	Cleared  int
	Points   int
	GameOver bool
}

// NewState builds a waiting session with an empty board. A first piece
// that does not fit the board ends the session straight away.
func NewState(s Settings, rng *rand.Rand) State {
	st := State{
		Board: grid.New(s.Width, s.Height),
		Piece: Spawn(randomKind(rng), s),
		Next:  randomKind(rng),
		Phase: core.PhaseNotStarted,
	}
	if !Fits(st.Board, st.Piece) {
		st.Phase = core.PhaseGameOver
	}
	return st
}

// Spawn places a new piece at the top centre of the board.
func Spawn(k Kind, s Settings) Piece {
	return Piece{Kind: k, X: s.Width/2 - 1, Y: 0}
}

func randomKind(rng *rand.Rand) Kind {
	return Kind(rng.Intn(int(kindCount)))
}

// Fits reports whether every cell of p is inside the side walls, above the
// floor and unoccupied. Cells above the top edge are allowed.
func Fits(b *grid.Board, p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= b.Width() || c.Y >= b.Height() {
			return false
		}
		if c.Y >= 0 && !b.IsEmpty(c) {
			return false
		}
	}
	return true
}

// Apply performs a single player move. Illegal lateral moves and rotations
// are discarded. A soft drop that cannot descend locks the piece, as
// gravity would; a hard drop falls as far as possible and locks.
func Apply(st State, m Move, s Settings, rng *rand.Rand) (State, Events) {
	var ev Events
	if !st.Phase.Advancing() {
		return st, ev
	}

	var cand Piece
	switch m {
	case MoveLeft:
		cand = st.Piece.Moved(-1, 0)
	case MoveRight:
		cand = st.Piece.Moved(1, 0)
	case MoveRotate:
		cand = st.Piece.Rotated()
	case MoveSoftDrop:
		return fall(st, s, rng)
	case MoveHardDrop:
		for Fits(st.Board, st.Piece.Moved(0, 1)) {
			st.Piece = st.Piece.Moved(0, 1)
		}
		return lock(st, s, rng)
	default:
		return st, ev
	}

	if Fits(st.Board, cand) {
		st.Piece = cand
		ev.Moved = true
	}
	return st, ev
}

// Step advances a running session by one gravity tick. A pending drop
// replaces gravity for the tick; other moves are applied before it.
func Step(st State, m Move, s Settings, rng *rand.Rand) (State, Events) {
	if !st.Phase.Advancing() {
		return st, Events{}
	}
	st.Ticks++

	switch m {
	case MoveSoftDrop, MoveHardDrop:
		return Apply(st, m, s, rng)
	case MoveNone:
	default:
		st, _ = Apply(st, m, s, rng)
	}
	return fall(st, s, rng)
}

func fall(st State, s Settings, rng *rand.Rand) (State, Events) {
	if down := st.Piece.Moved(0, 1); Fits(st.Board, down) {
		st.Piece = down
		return st, Events{Moved: true}
	}
	return lock(st, s, rng)
}

// lock merges the piece into a copy of the board, clears complete rows,
// scores and spawns the next piece. An unplaceable spawn ends the game.
func lock(st State, s Settings, rng *rand.Rand) (State, Events) {
	var ev Events
	board := st.Board.Clone()
	color := st.Piece.Kind.Color()
	for _, c := range st.Piece.Cells() {
		if c.Y >= 0 {
			board.Set(c, color)
		}
	}

	ev.Locked = true
	ev.Cleared = board.ClearFullRows()
	ev.Points = s.LockPoints
	if ev.Cleared > 0 {
		ev.Points += s.LinePoints[min(ev.Cleared, len(s.LinePoints))-1]
	}

	st.Board = board
	st.Score += ev.Points
	st.Lines += ev.Cleared
	st.Locked++
	st.Piece = Spawn(st.Next, s)
	st.Next = randomKind(rng)

	if !Fits(st.Board, st.Piece) {
		st.Phase = st.Phase.End()
		ev.GameOver = true
	}
	return st, ev
}

// Ghost returns where the piece would land if hard dropped.
func Ghost(st State) Piece {
	p := st.Piece
	for Fits(st.Board, p.Moved(0, 1)) {
		p = p.Moved(0, 1)
	}
	return p
}
