package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelPr0/terminal-arcade/internal/core"
	"github.com/AbdelPr0/terminal-arcade/internal/registry"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	online         int // Connected players on a shared server, 0 when local
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model listing every registered game with
// its recorded best.
func NewMenuModel(backends Backends, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{
			GameID: g.ID,
			Title:  g.Title,
			Best:   backends.highScore(g.ID),
		})
	}

	online := 0
	if backends.Presence != nil {
		online = backends.Presence.Count()
	}

	return MenuModel{
		items:  items,
		online: online,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// taglines describe each game in the picker.
var taglines = map[string]string{
	"snake":  "eat, grow, never bite yourself",
	"tetris": "stack blocks, clear lines",
}

var menuBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(1, 3)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var rows []string
	if len(m.items) == 0 {
		rows = append(rows, dimStyle.Render("No games installed."))
	}
	for i, item := range m.items {
		marker, title := "  ", fmt.Sprintf("%-8s", item.Title)
		if i == m.cursor {
			marker, title = accent.Render("▸ "), accent.Render(title)
		}
		best := dimStyle.Render(fmt.Sprintf("best %6d", item.Best))
		rows = append(rows, marker+title+"  "+best)
		if line, ok := taglines[item.GameID]; ok {
			rows = append(rows, "    "+dimStyle.Render(line))
		}
		if i < len(m.items)-1 {
			rows = append(rows, "")
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  A R C A D E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, menuBox.Render(strings.Join(rows, "\n"))))
	b.WriteString("\n")

	if m.online > 0 {
		b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("%d online", m.online)), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("↑/↓ choose · enter play · tab scores · q quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
