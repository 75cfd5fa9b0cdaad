package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/AbdelPr0/terminal-arcade/internal/core"
	"github.com/AbdelPr0/terminal-arcade/internal/ledger"
	"github.com/AbdelPr0/terminal-arcade/internal/logging"
	"github.com/AbdelPr0/terminal-arcade/internal/presence"
	"github.com/AbdelPr0/terminal-arcade/internal/registry"
	"github.com/AbdelPr0/terminal-arcade/internal/storage"
)

// footerHeight is the number of rows reserved below the game for help.
const footerHeight = 1

// Backends are the shared services a session reports scores to.
// Any of them may be nil.
type Backends struct {
	Store    *storage.Store
	Ledger   *ledger.Ledger
	Logger   *log.Logger
	Presence *presence.Registry // Set on shared servers only
}

func (b Backends) logger() *log.Logger {
	if b.Logger == nil {
		return logging.Discard()
	}
	return b.Logger
}

func (b Backends) highScore(gameID string) int {
	if b.Ledger == nil {
		return 0
	}
	return b.Ledger.HighScore(gameID)
}

// GameModel runs one game: it owns the clock, routes keys and reports
// scores to the backends.
type GameModel struct {
	game     registry.Game
	screen   *core.Screen
	backends Backends
	config   core.RuntimeConfig
	keys     GameKeyMap
	help     help.Model
	clock    Clock
	input    core.InputFrame
	state    core.GameState
	best     int
	started  time.Time
	saved    bool

	// standalone models quit the program on Back instead of returning to a menu.
	standalone bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game and resets it for a new session.
func NewGameModel(game registry.Game, backends Backends, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.HighScore = backends.highScore(game.ID())

	m := GameModel{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 0)),
		backends: backends,
		config:   cfg,
		keys:     DefaultGameKeyMap(),
		help:     help.New(),
		input:    core.NewInputFrame(),
		best:     cfg.HighScore,
	}
	m.help.Width = cfg.ScreenW

	game.Reset(m.gameConfig())
	m.state = game.State()
	m.started = time.Now()
	m.clock.Start(m.interval())
	return m
}

// gameConfig is the config handed to the game, with the footer row taken
// out of the screen height.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	if cfg.ScreenH > 0 {
		cfg.ScreenH -= footerHeight
	}
	return cfg
}

// interval returns the game's own pace, or the configured tick rate.
func (m GameModel) interval() time.Duration {
	if p, ok := m.game.(registry.Paced); ok {
		return p.Interval()
	}
	return tickInterval(m.config.TickRate)
}

// Init schedules the first tick.
func (m GameModel) Init() tea.Cmd {
	return m.clock.Next()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.leave()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.leave()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionNone {
		return m, nil
	}

	if g, ok := m.game.(registry.Interactive); ok {
		res := g.Handle(core.FrameOf(action))
		return m, m.observe(res.State)
	}

	// Everything else picks the action up on the next tick
	m.input.Set(action)
	return m, nil
}

// handleResize keeps the screen in step with the terminal. The session is
// not reset.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerHeight, 0))
	m.help.Width = msg.Width

	if g, ok := m.game.(registry.Resizable); ok {
		cfg := m.gameConfig()
		g.Resize(cfg.ScreenW, cfg.ScreenH)
	}
	return m, nil
}

// handleTick runs exactly one simulation step per accepted tick.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.clock.Accept(msg) {
		return m, nil
	}

	res := m.game.Step(m.input)
	m.input.Clear()

	if cmd := m.observe(res.State); cmd != nil {
		return m, cmd
	}
	return m, m.clock.Next()
}

// observe reacts to a state change: restarts the clock for a fresh session,
// raises the high score and stores the result once the session ends.
// It returns a command only when the clock was restarted.
func (m *GameModel) observe(st core.GameState) tea.Cmd {
	prev := m.state
	m.state = st

	var cmd tea.Cmd
	if st.Epoch != prev.Epoch {
		m.saved = false
		m.started = time.Now()
		cmd = m.clock.Start(m.interval())
	}

	if st.Score > m.best {
		m.best = st.Score
		if m.backends.Ledger != nil {
			m.backends.Ledger.RecordScore(m.game.ID(), st.Score)
		}
	}

	if st.GameOver {
		m.clock.Stop()
		m.saveResult()
		return cmd
	}

	if p, ok := m.game.(registry.Paced); ok {
		m.clock.SetInterval(p.Interval())
	}
	return cmd
}

// leave stops the clock so no tick outlives the session.
func (m *GameModel) leave() {
	m.clock.Stop()
}

// saveResult stores the finished session in the history, once.
func (m *GameModel) saveResult() {
	if m.saved {
		return
	}
	m.saved = true

	logger := m.backends.logger()
	logger.Info("game over",
		"game", m.game.ID(),
		"score", m.state.Score,
		"won", m.state.Won,
	)

	if m.backends.Store == nil || m.state.Score == 0 {
		return
	}
	_, err := m.backends.Store.SaveGame(storage.GameRecord{
		GameID:     m.game.ID(),
		Score:      m.state.Score,
		Won:        m.state.Won,
		Difficulty: m.config.Difficulty,
		Duration:   time.Since(m.started),
	})
	if err != nil {
		logger.Warn("could not save score", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + dimStyle.Render(m.help.View(m.keys))
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single game.
func Run(game registry.Game, backends Backends, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, backends, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
