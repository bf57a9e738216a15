// Package config provides YAML-based game configuration loading and
// difficulty management for the puzzle engine.
package config

import "github.com/upendraupu555/game-sub001/internal/engine"

// GameConfig contains all tunable parameters of a puzzle session.
type GameConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Spawn    SpawnConfig    `yaml:"spawn"`
	Blockers BlockerConfig  `yaml:"blockers"`
	Modes    ModesConfig    `yaml:"modes"`
	Powerups PowerupsConfig `yaml:"powerups"`
}

// BoardConfig defines the grid geometry and the value ladder.
type BoardConfig struct {
	Size        int `yaml:"size"`
	Base        int `yaml:"base"`
	WinExponent int `yaml:"win_exponent"`
}

// SpawnConfig defines the spawned tile value distribution.
type SpawnConfig struct {
	HighProb float64 `yaml:"high_prob"`
}

// BlockerConfig defines the blocker spawn curve.
type BlockerConfig struct {
	Base    float64 `yaml:"base"`
	PerMove float64 `yaml:"per_move"`
	Cap     float64 `yaml:"cap"`
}

// ModesConfig defines mode-specific parameters.
type ModesConfig struct {
	TimeAttack TimeAttackConfig `yaml:"time_attack"`
	Scenic     ScenicConfig     `yaml:"scenic"`
}

// TimeAttackConfig defines the Time Attack countdown.
type TimeAttackConfig struct {
	LimitSeconds   float64 `yaml:"limit_seconds"`
	WarningSeconds float64 `yaml:"warning_seconds"`
}

// ScenicConfig defines the rotating backgrounds of Scenic mode.
type ScenicConfig struct {
	Backgrounds int `yaml:"backgrounds"`
}

// PowerupsConfig defines when score milestones unlock powerup slots.
type PowerupsConfig struct {
	UnlockScores []uint64 `yaml:"unlock_scores"`
}

// ToEngine converts the file-level configuration into the engine's rule
// parameters.
func (c GameConfig) ToEngine() engine.Config {
	return engine.Config{
		GridSize:    c.Board.Size,
		Base:        c.Board.Base,
		WinExponent: c.Board.WinExponent,
		Spawn: engine.SpawnConfig{
			HighProb: c.Spawn.HighProb,
		},
		Blockers: engine.BlockerCurve{
			Base:    c.Blockers.Base,
			PerMove: c.Blockers.PerMove,
			Cap:     c.Blockers.Cap,
		},
		WarningSeconds: c.Modes.TimeAttack.WarningSeconds,
	}
}
