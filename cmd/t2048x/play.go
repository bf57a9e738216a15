package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/upendraupu555/game-sub001/internal/config"
	"github.com/upendraupu555/game-sub001/internal/engine"
	"github.com/upendraupu555/game-sub001/internal/platform/tui"
	"github.com/upendraupu555/game-sub001/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMode       string
	flagResume     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume a game",
	Long: `Start a new game, or resume the suspended one with --resume.

Controls:
  Arrows/WASD - Slide tiles
  1-3         - Activate an unlocked powerup
  P           - Pause
  Ctrl+S      - Suspend and quit (resume with --resume)
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Modes:
  classic    - Untimed, play until the board locks up
  timeattack - Beat the countdown
  scenic     - Classic rules with rotating scenery

Difficulty options:
  easy   - Gentler blocker curve, longer countdown
  normal - The standard game
  hard   - Aggressive blockers, shorter countdown
  pure   - No blockers at all

Examples:
  t2048x play
  t2048x play --mode timeattack
  t2048x play --difficulty hard
  t2048x play --config ./my-game.yaml
  t2048x play --resume`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, pure")
	playCmd.Flags().StringVar(&flagMode, "mode", "classic", "Game mode: classic, timeattack, scenic")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the suspended game")
}

func runPlay(cmd *cobra.Command, args []string) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}

	modeKind, ok := engine.ParseModeKind(flagMode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagMode)
		fmt.Fprintln(os.Stderr, "Modes: classic, timeattack, scenic")
		os.Exit(1)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPreset(&cfg, preset)

	// Open game storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open games database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var model tui.GameModel
	if flagResume {
		model, err = resumeModel(cfg, preset, store)
		if err != nil {
			if store != nil {
				store.Close()
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		model = tui.NewGameModel(cfg, preset, buildMode(cfg, modeKind), flagSeed, store)
	}

	runErr := tui.Run(model)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// buildMode fills in the mode parameters from the loaded config.
func buildMode(cfg config.GameConfig, kind engine.ModeKind) engine.Mode {
	switch kind {
	case engine.ModeTimeAttack:
		return engine.TimeAttack(cfg.Modes.TimeAttack.LimitSeconds)
	case engine.ModeScenic:
		return engine.Scenic(0)
	default:
		return engine.Classic()
	}
}

// resumeModel loads the suspended session from storage.
func resumeModel(cfg config.GameConfig, preset config.DifficultyPreset, store *storage.Store) (tui.GameModel, error) {
	if store == nil {
		return tui.GameModel{}, fmt.Errorf("cannot resume without a database")
	}
	rec, err := store.LoadSession("autosave")
	if err != nil {
		return tui.GameModel{}, err
	}
	if rec == nil {
		return tui.GameModel{}, fmt.Errorf("no suspended game to resume")
	}
	return tui.ResumeGameModel(cfg, preset, rec.Snapshot, store)
}

// terminalSize returns the terminal dimensions with safe fallbacks.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
