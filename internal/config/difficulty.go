package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyPure   DifficultyPreset = "pure" // no blockers at all
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch DifficultyPreset(name) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyHard, DifficultyPure:
		return DifficultyPreset(name), true
	default:
		return "", false
	}
}

// ApplyPreset modifies the config based on a difficulty preset. The
// preset shapes the blocker curve and the Time Attack countdown; the
// board itself is never changed.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Blockers.Base = 0
		cfg.Blockers.PerMove = 0.00025
		cfg.Blockers.Cap = 0.05
		cfg.Modes.TimeAttack.LimitSeconds = 300
	case DifficultyHard:
		cfg.Blockers.Base = 0.02
		cfg.Blockers.PerMove = 0.001
		cfg.Blockers.Cap = 0.10
		cfg.Modes.TimeAttack.LimitSeconds = 120
	case DifficultyPure:
		cfg.Blockers = BlockerConfig{}
	}
}
