package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelPr0/terminal-arcade/internal/registry"
	"github.com/AbdelPr0/terminal-arcade/internal/storage"
)

const (
	historyLimit   = 100 // rows loaded per game
	wideTableWidth = 60  // below this the detail columns are dropped
)

// scoreOrder selects which history the table shows.
type scoreOrder int

const (
	orderTop scoreOrder = iota
	orderRecent
)

func (o scoreOrder) String() string {
	if o == orderRecent {
		return "recent"
	}
	return "top"
}

var (
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Order key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Order, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev, k.Order},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Next:  key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next game")),
		Prev:  key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev game")),
		Order: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "top/recent")),
		Back:  key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the recorded best and the history of each game.
type ScoreboardModel struct {
	backends  Backends
	games     []registry.GameInfo
	cursor    int
	order     scoreOrder
	best      int
	stats     *storage.GameStats
	entries   []storage.ScoreEntry
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	wide      bool
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first game.
func NewScoreboardModel(backends Backends, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		backends: backends,
		games:    registry.List(),
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
		width:    width,
		height:   height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.reload()
	return m
}

// gameID returns the selected game, or "" when nothing is registered.
func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.cursor].ID
}

func (m *ScoreboardModel) newTable() table.Model {
	m.wide = m.width-6 >= wideTableWidth

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
	}
	if m.wide {
		columns = append(columns,
			table.Column{Title: "Result", Width: 7},
			table.Column{Title: "Level", Width: 7},
			table.Column{Title: "Time", Width: 6},
		)
	}
	columns = append(columns, table.Column{Title: "Played", Width: 12})

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches the best, the stats and the history of the selected game.
func (m *ScoreboardModel) reload() {
	id := m.gameID()
	m.best = m.backends.highScore(id)
	m.stats = nil
	m.entries = nil

	if store := m.backends.Store; store != nil && id != "" {
		var err error
		if m.order == orderRecent {
			m.entries, err = store.RecentScores(id, historyLimit)
		} else {
			m.entries, err = store.TopScores(id, historyLimit)
		}
		if err != nil {
			m.backends.logger().Warn("could not load scores", "game", id, "error", err)
		}
		if stats, err := store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, 0, len(m.entries))
	for i, e := range m.entries {
		row := table.Row{fmt.Sprintf("%d", i+1), fmt.Sprintf("%d", e.Score)}
		if m.wide {
			result := "over"
			if e.Won {
				result = "won"
			}
			level := e.Difficulty
			if level == "" {
				level = "-"
			}
			row = append(row, result, level, formatDuration(e.Duration))
		}
		rows = append(rows, append(row, e.CreatedAt.Format("Jan 02 15:04")))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Next):
			m.selectGame(1)
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.selectGame(-1)
			return m, nil

		case key.Matches(msg, m.keys.Order):
			m.order = 1 - m.order
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectGame moves the game cursor by delta, wrapping around.
func (m *ScoreboardModel) selectGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  H I G H   S C O R E S  "), m.width))
	b.WriteString("\n\n")

	if len(m.games) > 0 {
		b.WriteString(centerText(m.tabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(accent.Render(fmt.Sprintf("Best %d", m.best)), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render(m.statsLine()), m.width))
		b.WriteString("\n\n")
	}

	var body string
	if len(m.entries) == 0 {
		body = emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	} else {
		body = fmt.Sprintf("%s\n%s", dimStyle.Render("showing "+m.order.String()), m.table.View())
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(body)))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// tabs renders one tab per game, the selected one highlighted.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.cursor {
			parts[i] = activeTabStyle.Render(g.Title)
		} else {
			parts[i] = tabStyle.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// statsLine summarises the selected game's history.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No games played yet"
	}
	return fmt.Sprintf("%d games  ·  %d won  ·  avg %.0f  ·  played %s",
		m.stats.GamesCount, m.stats.Wins, m.stats.AvgScore, formatDuration(m.stats.PlayTime))
}

// formatDuration renders a duration as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
