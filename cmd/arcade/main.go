// arcade is a terminal arcade for playing Snake and Tetris.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade scores <game>     - Show high scores for a game
//	arcade serve             - Start SSH server for remote play
//	arcade web               - Serve high scores as a JSON API
//
// Global flags:
//
//	--fps <rate>         - Set tick rate for games without their own pace (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set history database path (default: ~/.arcade/scores.db)
//	--scores <path>      - Set high-score record path (default: ~/.arcade/highscores.json)
//	--log-level <level>  - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/AbdelPr0/terminal-arcade/internal/games/snake"
	_ "github.com/AbdelPr0/terminal-arcade/internal/games/tetris"
	"github.com/AbdelPr0/terminal-arcade/internal/ledger"
	"github.com/AbdelPr0/terminal-arcade/internal/logging"
	"github.com/AbdelPr0/terminal-arcade/internal/platform/tui"
	"github.com/AbdelPr0/terminal-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagScoresPath string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Terminal Arcade - Snake and Tetris in your terminal",
	Long: `Terminal Arcade lets you play Snake and Tetris directly in your terminal,
locally or over SSH, and keeps your best scores.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Serve high scores over HTTP

Examples:
  arcade list
  arcade play snake
  arcade play tetris --difficulty hard
  arcade menu
  arcade serve --ssh :2222
  arcade scores tetris`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate for games without their own pace")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath(), "Path to scores history database")
	rootCmd.PersistentFlags().StringVar(&flagScoresPath, "scores", "", "Path to high-score record (default ~/.arcade/highscores.json)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// newLogger builds the command logger from --log-level.
func newLogger(prefix string) (*log.Logger, error) {
	return logging.New(prefix, flagLogLevel)
}

// openBackends opens the ledger and the history store. A store that cannot
// be opened is reported and left out: games still run and keep their best
// score in the ledger.
func openBackends(logger *log.Logger) (tui.Backends, error) {
	l, err := ledger.Open(flagScoresPath, logger)
	if err != nil {
		return tui.Backends{}, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	return tui.Backends{Store: store, Ledger: l, Logger: logger}, nil
}

// closeBackends releases the history store.
func closeBackends(b tui.Backends) {
	if b.Store != nil {
		b.Store.Close() //nolint:errcheck // Best-effort close on exit
	}
}
