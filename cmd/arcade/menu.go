package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdelPr0/terminal-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Pick a game, then a difficulty. After a game, Q brings you back to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Esc          - Back
  Q            - Quit

Examples:
  arcade menu
  arcade menu --config ./configs/snake.yaml
  arcade menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runMenu(_ *cobra.Command, _ []string) error {
	applyConfigPath(flagConfig)

	logger, err := newLogger("arcade")
	if err != nil {
		return err
	}
	backends, err := openBackends(logger)
	if err != nil {
		return err
	}
	defer closeBackends(backends)

	// Logging to the terminal would tear the menu
	backends.Logger = nil

	if err := tui.RunSession(backends, terminalConfig()); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
