package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/AbdelPr0/terminal-arcade/internal/config"
	"github.com/AbdelPr0/terminal-arcade/internal/core"
	"github.com/AbdelPr0/terminal-arcade/internal/games/snake"
	"github.com/AbdelPr0/terminal-arcade/internal/games/tetris"
	"github.com/AbdelPr0/terminal-arcade/internal/platform/tui"
	"github.com/AbdelPr0/terminal-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Steer (Snake), move and rotate (Tetris)
  Down/S       - Soft drop (Tetris)
  X            - Hard drop (Tetris)
  Space/P      - Pause
  R/E          - Restart
  Q/Esc        - Quit
  Ctrl+S       - Save a screenshot

Difficulty options:
  easy   - Slower pace
  normal - The classic pace
  hard   - Faster pace; Tetris speeds up as you clear lines
  fixed  - No speed-up at all

Examples:
  arcade play snake
  arcade play tetris --difficulty hard
  arcade play snake --config ./my-snake.yaml
  arcade play snake --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// applyConfigPath points every game at the --config file.
func applyConfigPath(path string) {
	snake.SetConfigPath(path)
	tetris.SetConfigPath(path)
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q; run 'arcade list' to see available games", gameID)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	applyConfigPath(flagConfig)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger, err := newLogger("arcade")
	if err != nil {
		return err
	}
	backends, err := openBackends(logger)
	if err != nil {
		return err
	}
	defer closeBackends(backends)

	// Logging to the terminal would tear the game screen
	backends.Logger = nil

	cfg := terminalConfig()
	cfg.Difficulty = flagDifficulty

	if err := tui.Run(game, backends, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
