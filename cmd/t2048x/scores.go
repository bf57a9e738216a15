package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/upendraupu555/game-sub001/internal/platform/tui"
	"github.com/upendraupu555/game-sub001/internal/storage"
)

var flagScoresPlain bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Browse the leaderboard",
	Long: `Open the interactive leaderboard, filterable by mode.

With --plain, print the top 10 games to stdout instead.

Examples:
  t2048x scores
  t2048x scores --plain`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print scores to stdout instead of the interactive view")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening games database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresPlain {
		printScores(store)
		return
	}

	width, height := terminalSize()
	if err := tui.RunScoreboard(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error showing scores: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store) {
	games, err := store.TopGames("", 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048x play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-12s  %-6s  %s\n", "Rank", "Score", "Mode", "Tile", "Date")
	fmt.Printf("  %-4s  %-10s  %-12s  %-6s  %s\n", "----", "-----", "----", "----", "----")

	for i, g := range games {
		dateStr := g.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-12s  %-6d  %s\n", i+1, g.Score, g.Mode, g.HighestTile, dateStr)
	}
}
