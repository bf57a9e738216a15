// t2048x is a terminal tile-sliding puzzle with powerups, blockers,
// and multiple play modes.
//
// Usage:
//
//	t2048x play              - Play a game
//	t2048x scores            - Browse the leaderboard
//	t2048x serve             - Start SSH server for remote play
//	t2048x config            - Print the default configuration YAML
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible games
//	--db <path>     - Set database path (default: ~/.t2048x/games.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048x",
	Short: "Slide, merge, and outsmart the blockers in your terminal",
	Long: `t2048x is a terminal tile-sliding puzzle. Merge equal tiles to climb
the value ladder, dodge the blocker tiles that wall off your board,
and spend scarce powerups at the right moment.

Available commands:
  play     - Start or resume a game
  scores   - Browse the leaderboard
  serve    - Start SSH server for remote play
  config   - Print the default configuration YAML

Examples:
  t2048x play
  t2048x play --mode timeattack --difficulty hard
  t2048x play --resume
  t2048x scores
  t2048x serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048x/games.db", "Path to games database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
