package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdelPr0/terminal-arcade/internal/ledger"
	"github.com/AbdelPr0/terminal-arcade/internal/registry"
	"github.com/AbdelPr0/terminal-arcade/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the best score and the top 10 games played for the specified game.

Examples:
  arcade scores snake
  arcade scores tetris
  arcade scores tetris --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the game's history (the best score is kept)")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q; run 'arcade list' to see available games", gameID)
	}

	logger, err := newLogger("arcade")
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("History for %s cleared.\n", registry.Title(gameID))
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	l, err := ledger.Open(flagScoresPath, logger)
	if err != nil {
		return err
	}
	best, err := l.Best(gameID)
	if err != nil {
		logger.Warn("high-score record unreadable", "error", err)
	}

	fmt.Printf("High Scores - %s\n", registry.Title(gameID))
	fmt.Println()
	fmt.Printf("Best: %d\n", best)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "Rank", "Score", "Result", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "----", "-----", "------", "-----", "----")

	for i, entry := range scores {
		result := "over"
		if entry.Won {
			result = "won"
		}
		level := entry.Difficulty
		if level == "" {
			level = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-6s  %-6s  %s\n",
			i+1, entry.Score, result, level, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Played %d games, won %d, average %.0f\n", stats.GamesCount, stats.Wins, stats.AvgScore)
	}
	return nil
}
