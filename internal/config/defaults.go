package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the classic 4x4 base-2 game reaching 2048,
// used when no configuration file can be read at all.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			Size:        4,
			Base:        2,
			WinExponent: 11,
		},
		Spawn: SpawnConfig{
			HighProb: 0.10,
		},
		Blockers: BlockerConfig{
			Base:    0.01,
			PerMove: 0.0005,
			Cap:     0.10,
		},
		Modes: ModesConfig{
			TimeAttack: TimeAttackConfig{
				LimitSeconds:   180,
				WarningSeconds: 10,
			},
			Scenic: ScenicConfig{
				Backgrounds: 6,
			},
		},
		Powerups: PowerupsConfig{
			UnlockScores: []uint64{500, 2000, 8000},
		},
	}
}

// DefaultYAML returns the embedded default configuration file, used by
// the config export command as a starting template.
func DefaultYAML() []byte {
	return defaultGameYAML
}
