package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AbdelPr0/terminal-arcade/internal/ledger"
	"github.com/AbdelPr0/terminal-arcade/internal/logging"
	"github.com/AbdelPr0/terminal-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every game registered in the arcade with its best score.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// The list never fails on a broken record; best scores just read as 0
	l, err := ledger.Open(flagScoresPath, logging.Discard())
	if err != nil {
		l = nil
	}

	fmt.Println("Available games:")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTitle\tBest")
	fmt.Fprintln(w, "  --\t-----\t----")
	for _, g := range games {
		best := 0
		if l != nil {
			best = l.HighScore(g.ID)
		}
		fmt.Fprintf(w, "  %s\t%s\t%d\n", g.ID, g.Title, best)
	}
	w.Flush() //nolint:errcheck // Best-effort flush to stdout

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
