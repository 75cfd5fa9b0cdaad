// Package snake implements the classic Snake game on a fixed grid.
// The rules live in pure functions over State (see Step); Game adapts them
// to the platform registry.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/AbdelPr0/terminal-arcade/internal/config"
	"github.com/AbdelPr0/terminal-arcade/internal/core"
	"github.com/AbdelPr0/terminal-arcade/internal/grid"
	"github.com/AbdelPr0/terminal-arcade/internal/registry"
)

const hudHeight = 1

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// Game implements the Snake game.
type Game struct {
	settings Settings
	state    State
	pending  Intent
	rng      *rand.Rand
	epoch    int
	best     int

	tooSmall bool
}

// New creates a Snake game with default settings. Reset must be called
// before play.
func New() *Game {
	s := DefaultSettings()
	return &Game{settings: s, state: NewState(s)}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset loads the configuration and builds a fresh session waiting for the
// first direction key.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.settings = loadSettings(cfg.Difficulty)
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.best = cfg.HighScore
	g.newSession(core.PhaseNotStarted)
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

func loadSettings(difficulty string) Settings {
	cfg, err := config.LoadSnake(configPath)
	if err != nil {
		cfg = config.DefaultSnakeConfig()
	}
	if preset, err := config.ParsePreset(difficulty); err == nil && preset != "" {
		config.ApplySnakePreset(&cfg, preset)
	}
	return SettingsFrom(cfg)
}

func (g *Game) newSession(phase core.Phase) {
	g.state = NewState(g.settings)
	g.state.Phase = phase
	g.pending = Intent{}
	g.epoch++
}

// Resize checks the board still fits; the board itself never changes size.
// A zero size means the screen is unknown (headless play) and never blocks.
func (g *Game) Resize(w, h int) {
	if w == 0 && h == 0 {
		g.tooSmall = false
		return
	}
	f := grid.Frame(g.settings.Width, g.settings.Height, 0, 0)
	g.tooSmall = w < f.W || h < f.H+hudHeight
}

// Handle applies actions immediately: starting, pausing, restarting and
// buffering the next direction.
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

	dir, steered := directionOf(in)
	if g.state.Phase == core.PhaseNotStarted && (steered || in.Has(core.ActionConfirm)) {
		g.state.Phase = g.state.Phase.Start()
	}
	if steered && g.state.Phase == core.PhaseRunning {
		g.pending = Steer(g.state, g.pending, dir)
	}

	return core.StepResult{State: g.State()}
}

func directionOf(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return DirRight, false
}

// Step advances the game by one move. Any actions in the frame are applied
// first, as Handle would.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !in.Empty() {
		g.Handle(in)
	}
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	moves := g.state.Moves
	g.state, _ = Step(g.state, g.pending, g.settings, g.rng)
	if g.state.Moves != moves {
		g.pending = Intent{}
	}
	return core.StepResult{State: g.State()}
}

// Interval returns the current move interval, which shrinks as food is eaten.
func (g *Game) Interval() time.Duration {
	return g.state.Interval
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		Phase:    g.state.Phase,
		GameOver: g.state.Phase == core.PhaseGameOver,
		Paused:   g.state.Phase == core.PhasePaused,
		Won:      g.state.Won,
		Epoch:    g.epoch,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		f := grid.Frame(g.settings.Width, g.settings.Height, 0, 0)
		dst.DrawOverlay("Window too small", fmt.Sprintf("Need %dx%d", f.W, f.H+hudHeight))
		return
	}

	board := grid.New(g.settings.Width, g.settings.Height)
	overlays := make([]grid.Overlay, 0, len(g.state.Body)+1)
	if g.state.Food != NoFood {
		overlays = append(overlays, grid.Overlay{At: g.state.Food, Color: core.ColorBrightRed, Rune: '●'})
	}
	for i := len(g.state.Body) - 1; i >= 0; i-- {
		c := core.ColorGreen
		if i == 0 {
			c = core.ColorBrightGreen
		}
		overlays = append(overlays, grid.Overlay{At: g.state.Body[i], Color: c})
	}
	ox, oy := grid.Centered(dst, g.settings.Width, g.settings.Height, hudHeight)
	board.Draw(dst, ox, oy, overlays...)

	switch g.state.Phase {
	case core.PhaseNotStarted:
		dst.DrawOverlay("SNAKE", "Press an arrow key to start")
	case core.PhasePaused:
		dst.DrawOverlay("PAUSED", "Space to resume")
	case core.PhaseGameOver:
		title := "GAME OVER"
		if g.state.Won {
			title = "YOU WIN!"
		}
		dst.DrawOverlay(title, fmt.Sprintf("Score: %d", g.state.Score), "E to restart, Q for menu")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	best := max(g.best, g.state.Score)
	hud := fmt.Sprintf(" SNAKE  Score: %d  Best: %d  Speed: %dms  Length: %d",
		g.state.Score, best, g.state.Interval.Milliseconds(), len(g.state.Body))
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
}
