package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg GameConfig
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	want := DefaultGameConfig()
	if cfg.Board != want.Board {
		t.Errorf("board: got %+v, want %+v", cfg.Board, want.Board)
	}
	if cfg.Blockers != want.Blockers {
		t.Errorf("blockers: got %+v, want %+v", cfg.Blockers, want.Blockers)
	}
	if cfg.Modes != want.Modes {
		t.Errorf("modes: got %+v, want %+v", cfg.Modes, want.Modes)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	if err := os.WriteFile(path, []byte("board:\n  size: 5\n  base: 3\n  win_exponent: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Board.Size != 5 || cfg.Board.Base != 3 || cfg.Board.WinExponent != 7 {
		t.Errorf("unexpected board config: %+v", cfg.Board)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom path")
	}
}

func TestToEngineWins(t *testing.T) {
	cfg := DefaultGameConfig()
	if got := cfg.ToEngine().WinValue(); got != 2048 {
		t.Errorf("win value = %d, want 2048", got)
	}
}

func TestApplyPreset(t *testing.T) {
	cases := []struct {
		preset   DifficultyPreset
		wantCap  float64
		wantTime float64
	}{
		{DifficultyEasy, 0.05, 300},
		{DifficultyNormal, 0.10, 180},
		{DifficultyHard, 0.10, 120},
		{DifficultyPure, 0, 180},
	}
	for _, tc := range cases {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultGameConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Blockers.Cap != tc.wantCap {
				t.Errorf("blocker cap = %v, want %v", cfg.Blockers.Cap, tc.wantCap)
			}
			if cfg.Modes.TimeAttack.LimitSeconds != tc.wantTime {
				t.Errorf("time limit = %v, want %v", cfg.Modes.TimeAttack.LimitSeconds, tc.wantTime)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("empty preset: got %q, %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("unknown preset should not parse")
	}
}
