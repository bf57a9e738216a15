package engine

// PowerupType is the closed enumeration of powerups. Primary powerups
// are unlocked by score milestones, secondary powerups by achievements
// or entitlements; both arrive through Unlock, driven by the external
// unlock collaborator.
type PowerupType int

const (
	PowerupTileFreeze PowerupType = iota
	PowerupMergeBoost
	PowerupDoubleMerge
	PowerupTileDestroyer
	PowerupValueUpgrade
	PowerupLineClear
	PowerupUndo
	PowerupShuffle
	PowerupBlockerShield
	PowerupTileShrink
	PowerupLockTile
	PowerupValueTarget
	PowerupTimeSlow
	PowerupValueFinder
	PowerupCornerGather
	powerupCount // sentinel
)

// PowerupTypes lists every powerup type in declaration order.
func PowerupTypes() []PowerupType {
	out := make([]PowerupType, powerupCount)
	for i := range out {
		out[i] = PowerupType(i)
	}
	return out
}

// String returns the display name of the powerup.
func (p PowerupType) String() string {
	switch p {
	case PowerupTileFreeze:
		return "Tile Freeze"
	case PowerupMergeBoost:
		return "Merge Boost"
	case PowerupDoubleMerge:
		return "Double Merge"
	case PowerupTileDestroyer:
		return "Tile Destroyer"
	case PowerupValueUpgrade:
		return "Value Upgrade"
	case PowerupLineClear:
		return "Row/Column Clear"
	case PowerupUndo:
		return "Undo Move"
	case PowerupShuffle:
		return "Shuffle Board"
	case PowerupBlockerShield:
		return "Blocker Shield"
	case PowerupTileShrink:
		return "Tile Shrink"
	case PowerupLockTile:
		return "Lock Tile"
	case PowerupValueTarget:
		return "Value Target"
	case PowerupTimeSlow:
		return "Time Slow"
	case PowerupValueFinder:
		return "Value Finder"
	case PowerupCornerGather:
		return "Corner Gather"
	default:
		return "Unknown"
	}
}

// Glyph returns a single display character for HUD panels.
func (p PowerupType) Glyph() rune {
	switch p {
	case PowerupTileFreeze:
		return 'F'
	case PowerupMergeBoost:
		return 'B'
	case PowerupDoubleMerge:
		return '2'
	case PowerupTileDestroyer:
		return 'X'
	case PowerupValueUpgrade:
		return '^'
	case PowerupLineClear:
		return '-'
	case PowerupUndo:
		return 'U'
	case PowerupShuffle:
		return '~'
	case PowerupBlockerShield:
		return 'S'
	case PowerupTileShrink:
		return 'v'
	case PowerupLockTile:
		return 'L'
	case PowerupValueTarget:
		return 'V'
	case PowerupTimeSlow:
		return 'T'
	case PowerupValueFinder:
		return '?'
	case PowerupCornerGather:
		return 'G'
	default:
		return ' '
	}
}

// Primary reports whether the powerup is unlocked via score milestones
// rather than achievements or entitlements.
func (p PowerupType) Primary() bool {
	switch p {
	case PowerupTileFreeze, PowerupMergeBoost, PowerupDoubleMerge,
		PowerupTileDestroyer, PowerupValueUpgrade, PowerupLineClear:
		return true
	default:
		return false
	}
}

// Targeted reports whether activation requires a follow-up ApplyTarget
// call before any further command is accepted.
func (p PowerupType) Targeted() bool {
	switch p {
	case PowerupTileDestroyer, PowerupValueUpgrade, PowerupLineClear,
		PowerupTileShrink, PowerupLockTile, PowerupValueTarget,
		PowerupValueFinder, PowerupCornerGather:
		return true
	default:
		return false
	}
}

// MoveDuration returns how many moves a continuous powerup lasts, or 0
// for one-shots and second-based powerups. Lock Tile's duration starts
// when its target is applied.
func (p PowerupType) MoveDuration() int {
	switch p {
	case PowerupTileFreeze, PowerupLockTile:
		return 5
	case PowerupMergeBoost, PowerupDoubleMerge, PowerupBlockerShield:
		return 3
	default:
		return 0
	}
}

// SecondDuration returns how many seconds a clock-based powerup lasts.
func (p PowerupType) SecondDuration() float64 {
	if p == PowerupTimeSlow {
		return 30
	}
	return 0
}

// ActivePowerup tracks one activated powerup until it is applied or
// its remaining counter reaches zero.
type ActivePowerup struct {
	Type             PowerupType `json:"type"`
	MovesRemaining   int         `json:"moves_remaining,omitempty"`
	SecondsRemaining float64     `json:"seconds_remaining,omitempty"`
	PendingTarget    bool        `json:"pending_target,omitempty"`
}

// MaxUnlocked is the most powerups that may be unlocked-and-unused at
// once. The unlock collaborator enforces this upstream and Unlock
// rejects anything past the cap.
const MaxUnlocked = 3
