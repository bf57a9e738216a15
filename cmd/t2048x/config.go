package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/upendraupu555/game-sub001/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration YAML",
	Long: `Print the embedded default configuration to stdout.

Pipe it to a file to start customizing:
  t2048x config > ~/.t2048x/configs/game.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.DefaultYAML())
	},
}
