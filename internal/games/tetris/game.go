// Package tetris implements Tetris on a fixed grid. The rules are pure
// functions over State (Apply, Step); Game adapts them to the registry.
package tetris

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/AbdelPr0/terminal-arcade/internal/config"
	"github.com/AbdelPr0/terminal-arcade/internal/core"
	"github.com/AbdelPr0/terminal-arcade/internal/grid"
	"github.com/AbdelPr0/terminal-arcade/internal/registry"
)

const (
	hudHeight  = 1
	panelWidth = 16
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
}

// Game implements Tetris.
type Game struct {
	settings   Settings
	difficulty *config.DifficultyManager
	state      State
	rng        *rand.Rand
	epoch      int
	best       int
	tooSmall   bool
}

// New creates a Tetris game with default settings. Reset must be called
// before play.
func New() *Game {
	s := DefaultSettings()
	return &Game{
		settings:   s,
		difficulty: config.NewDifficultyManager(config.ProgressionConfig{}, s.FallInterval),
		state:      NewState(s, rand.New(rand.NewSource(1))),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset loads the configuration and builds a fresh session waiting for the
// first key.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tc, err := config.LoadTetris(configPath)
	if err != nil {
		tc = config.DefaultTetrisConfig()
	}
	if preset, err := config.ParsePreset(cfg.Difficulty); err == nil && preset != "" {
		config.ApplyTetrisPreset(&tc, preset)
	}
	g.settings = SettingsFrom(tc)
	g.difficulty = config.NewDifficultyManager(tc.Progression, g.settings.FallInterval)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.best = cfg.HighScore
	g.newSession(core.PhaseNotStarted)
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

func (g *Game) newSession(phase core.Phase) {
	g.state = NewState(g.settings, g.rng)
	if g.state.Phase != core.PhaseGameOver {
		g.state.Phase = phase
	}
	g.epoch++
}

// Resize checks the board and side panel still fit. A zero size means the
// screen is unknown and never blocks play.
func (g *Game) Resize(w, h int) {
	if w == 0 && h == 0 {
		g.tooSmall = false
		return
	}
	f := grid.Frame(g.settings.Width, g.settings.Height, 0, 0)
	g.tooSmall = w < f.W+panelWidth || h < f.H+hudHeight
}

// Handle applies actions as they arrive: moves and rotations take effect
// immediately instead of waiting for the next gravity tick.
func (g *Game) Handle(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.state.Phase.CanRestart() {
		if g.state.Score > g.best {
			g.best = g.state.Score
		}
		g.newSession(core.PhaseRunning)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.state.Phase = g.state.Phase.TogglePause()
	}

	m := moveOf(in)
	if g.state.Phase == core.PhaseNotStarted && (m != MoveNone || in.Has(core.ActionConfirm)) {
		g.state.Phase = g.state.Phase.Start()
		return core.StepResult{State: g.State()}
	}
	if m != MoveNone {
		g.state, _ = Apply(g.state, m, g.settings, g.rng)
	}
	return core.StepResult{State: g.State()}
}

func moveOf(in core.InputFrame) Move {
	switch {
	case in.Has(core.ActionDrop):
		return MoveHardDrop
	case in.Has(core.ActionDown):
		return MoveSoftDrop
	case in.Has(core.ActionUp):
		return MoveRotate
	case in.Has(core.ActionLeft):
		return MoveLeft
	case in.Has(core.ActionRight):
		return MoveRight
	}
	return MoveNone
}

// Step advances the game by one gravity tick. Any actions in the frame are
// applied first, as Handle would.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !in.Empty() {
		g.Handle(in)
	}
	if !g.tooSmall {
		g.state, _ = Step(g.state, MoveNone, g.settings, g.rng)
	}
	return core.StepResult{State: g.State()}
}

// Interval returns the gravity interval for the rows cleared so far.
func (g *Game) Interval() time.Duration {
	return g.difficulty.FallInterval(g.state.Lines)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		Phase:    g.state.Phase,
		GameOver: g.state.Phase == core.PhaseGameOver,
		Paused:   g.state.Phase == core.PhasePaused,
		Epoch:    g.epoch,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawTextColored(0, 0, fmt.Sprintf(" TETRIS  Score: %d  Best: %d", g.state.Score, max(g.best, g.state.Score)), core.ColorBrightWhite)

	f := grid.Frame(g.settings.Width, g.settings.Height, 0, 0)
	if g.tooSmall {
		dst.DrawOverlay("Window too small", fmt.Sprintf("Need %dx%d", f.W+panelWidth, f.H+hudHeight))
		return
	}

	ox := max((dst.Width()-f.W-panelWidth)/2, 0)
	_, oy := grid.Centered(dst, g.settings.Width, g.settings.Height, hudHeight)

	var overlays []grid.Overlay
	if g.state.Phase != core.PhaseGameOver {
		ghost := Ghost(g.state)
		for _, c := range ghost.Cells() {
			overlays = append(overlays, grid.Overlay{At: c, Color: core.ColorGray, Rune: '░'})
		}
	}
	for _, c := range g.state.Piece.Cells() {
		overlays = append(overlays, grid.Overlay{At: c, Color: g.state.Piece.Kind.Color()})
	}
	g.state.Board.Draw(dst, ox, oy, overlays...)
	g.renderPanel(dst, ox+f.W+2, oy)

	switch g.state.Phase {
	case core.PhaseNotStarted:
		dst.DrawOverlay("TETRIS", "Press any move key to start")
	case core.PhasePaused:
		dst.DrawOverlay("PAUSED", "Space to resume")
	case core.PhaseGameOver:
		dst.DrawOverlay("GAME OVER", fmt.Sprintf("Score: %d", g.state.Score), "E to restart, Q for menu")
	}
}

func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	dst.DrawText(x, y, "NEXT")
	next := Piece{Kind: g.state.Next}
	for _, c := range next.Cells() {
		dst.SetColored(x+c.X*grid.CellWidth, y+2+c.Y, '█', g.state.Next.Color())
		dst.SetColored(x+c.X*grid.CellWidth+1, y+2+c.Y, '█', g.state.Next.Color())
	}

	lines := []string{
		fmt.Sprintf("Lines  %d", g.state.Lines),
		fmt.Sprintf("Level  %d", g.difficulty.Level(g.state.Lines)),
		fmt.Sprintf("Pieces %d", g.state.Locked),
	}
	for i, l := range lines {
		dst.DrawText(x, y+7+i, l)
	}
}
