package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AbdelPr0/terminal-arcade/internal/config"
	"github.com/AbdelPr0/terminal-arcade/internal/registry"
)

var presetNotes = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "slower pace",
	config.DifficultyNormal: "classic pace",
	config.DifficultyHard:   "faster, Tetris speeds up",
	config.DifficultyFixed:  "no speed-up at all",
}

// DifficultyModel lets users choose a difficulty preset before a game.
type DifficultyModel struct {
	gameID   string
	cursor   int
	width    int
	height   int
	chosen   *config.DifficultyPreset
	quitting bool
	back     bool
}

// NewDifficultyModel creates a picker for gameID with "normal" highlighted.
func NewDifficultyModel(gameID string, width, height int) DifficultyModel {
	m := DifficultyModel{gameID: gameID, width: width, height: height}
	for i, p := range config.Presets {
		if p == config.DifficultyNormal {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(config.Presets)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		preset := config.Presets[m.cursor]
		m.chosen = &preset
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	title := strings.Join(strings.Split(strings.ToUpper(registry.Title(m.gameID)), ""), " ")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, p := range config.Presets {
		line := fmt.Sprintf("  %-7s %s", p, dimStyle.Render(presetNotes[p]))
		if i == m.cursor {
			line = accent.Render(fmt.Sprintf("> %-7s", p)) + " " + presetNotes[p]
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen preset, or nil if still choosing.
func (m DifficultyModel) Selected() *config.DifficultyPreset {
	return m.chosen
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}
