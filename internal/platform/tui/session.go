package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AbdelPr0/terminal-arcade/internal/core"
	"github.com/AbdelPr0/terminal-arcade/internal/presence"
	"github.com/AbdelPr0/terminal-arcade/internal/registry"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenDifficulty
	screenGame
	screenScores
)

// SessionModel manages the full arcade flow in one program:
// menu -> difficulty -> game -> menu, with the scoreboard off the menu.
// It is the top-level model for both `arcade menu` and SSH sessions.
type SessionModel struct {
	backends   Backends
	config     core.RuntimeConfig
	username   string
	sessionID  presence.SessionID
	screen     sessionScreen
	menu       MenuModel
	difficulty DifficultyModel
	scores     ScoreboardModel
	game       GameModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(backends Backends, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		backends: backends,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(backends, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenDifficulty:
		return m.updateDifficulty(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.backends, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		m.difficulty = NewDifficultyModel(m.menu.Selected().GameID, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenDifficulty
		return m, m.difficulty.Init()
	}

	return m, cmd
}

func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.difficulty.Update(msg)
	m.difficulty = next.(DifficultyModel)

	switch {
	case m.difficulty.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.difficulty.WantsBack():
		return m.toMenu()

	case m.difficulty.Selected() != nil:
		game, err := registry.Create(m.difficulty.gameID)
		if err != nil {
			m.backends.logger().Error("cannot create game", "game", m.difficulty.gameID, "error", err)
			return m.toMenu()
		}

		cfg := m.config
		cfg.Seed = 0
		cfg.Difficulty = string(*m.difficulty.Selected())
		m.game = NewGameModel(game, m.backends, cfg)
		m.screen = screenGame
		m.setGame(game.ID())
		m.backends.logger().Debug("game started", "user", m.username, "game", game.ID(), "difficulty", cfg.Difficulty)
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		// Stale ticks still in flight fail the clock check and are dropped
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}

	return m, cmd
}

// toMenu rebuilds the menu so best scores are current.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.setGame("")
	m.menu = NewMenuModel(m.backends, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// setGame publishes what this session is playing on shared servers.
func (m SessionModel) setGame(gameID string) {
	if m.backends.Presence != nil && m.sessionID != "" {
		m.backends.Presence.SetGame(m.sessionID, gameID)
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenDifficulty:
		return m.difficulty.View()
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven arcade in the local terminal.
func RunSession(backends Backends, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewSessionModel(backends, cfg, ""), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
