package engine

// ModeKind identifies the session mode. The mode is chosen at session
// creation and never changes for the session's lifetime.
type ModeKind int

const (
	ModeClassic ModeKind = iota
	ModeTimeAttack
	ModeScenic
)

// String returns a human-readable mode name.
func (k ModeKind) String() string {
	switch k {
	case ModeClassic:
		return "classic"
	case ModeTimeAttack:
		return "timeattack"
	case ModeScenic:
		return "scenic"
	default:
		return "unknown"
	}
}

// ParseModeKind maps a mode name back to its kind.
func ParseModeKind(s string) (ModeKind, bool) {
	switch s {
	case "classic":
		return ModeClassic, true
	case "timeattack":
		return ModeTimeAttack, true
	case "scenic":
		return ModeScenic, true
	default:
		return ModeClassic, false
	}
}

// Mode carries the session mode and its per-mode data: the Time Attack
// countdown or the Scenic background. Scenic plays exactly like
// Classic; the background index is cosmetic.
type Mode struct {
	Kind            ModeKind `json:"kind"`
	LimitSeconds    float64  `json:"limit_seconds,omitempty"`
	ElapsedSeconds  float64  `json:"elapsed_seconds,omitempty"`
	BackgroundIndex int      `json:"background_index,omitempty"`
}

// Classic returns the untimed default mode.
func Classic() Mode {
	return Mode{Kind: ModeClassic}
}

// TimeAttack returns a countdown mode with the given limit.
func TimeAttack(limitSeconds float64) Mode {
	return Mode{Kind: ModeTimeAttack, LimitSeconds: limitSeconds}
}

// Scenic returns a cosmetic variation of Classic.
func Scenic(backgroundIndex int) Mode {
	return Mode{Kind: ModeScenic, BackgroundIndex: backgroundIndex}
}

// Remaining returns the seconds left on the Time Attack clock, or 0
// for untimed modes.
func (m Mode) Remaining() float64 {
	if m.Kind != ModeTimeAttack {
		return 0
	}
	remaining := m.LimitSeconds - m.ElapsedSeconds
	if remaining < 0 {
		return 0
	}
	return remaining
}
