package engine

// Event describes one observable change produced by a command. The
// rendering collaborator consumes events to drive animation without
// diffing grids; the statistics collaborator consumes
// GameCompletedEvent.
type Event interface {
	gameEvent()
}

// MoveResolvedEvent is emitted for every accepted Move command,
// including no-op moves (Changed=false), which leave the state intact.
type MoveResolvedEvent struct {
	Direction  Direction
	ScoreDelta uint64
	Changed    bool
}

func (MoveResolvedEvent) gameEvent() {}

// TileMovedEvent reports a tile that changed coordinates without
// merging during resolution.
type TileMovedEvent struct {
	From Coord
	To   Coord
	Cell Cell
}

func (TileMovedEvent) gameEvent() {}

// TilesMergedEvent reports a merge: the resulting cell, where it
// landed, and the ids of the two tiles it consumed.
type TilesMergedEvent struct {
	At       Coord
	Cell     Cell
	Consumed [2]uint64
}

func (TilesMergedEvent) gameEvent() {}

// TileSpawnedEvent reports a tile injected by the spawner or placed at
// session start.
type TileSpawnedEvent struct {
	At   Coord
	Cell Cell
}

func (TileSpawnedEvent) gameEvent() {}

// TileChangedEvent reports a single cell rewritten by a targeted
// powerup (upgrade, shrink, destroy, lock, clear).
type TileChangedEvent struct {
	At     Coord
	Before Cell
	After  Cell
}

func (TileChangedEvent) gameEvent() {}

// PowerupUnlockedEvent is emitted when the unlock collaborator grants
// a powerup.
type PowerupUnlockedEvent struct {
	Type PowerupType
}

func (PowerupUnlockedEvent) gameEvent() {}

// PowerupActivatedEvent is emitted when an activation is accepted.
// PendingTarget is true for targeted powerups awaiting ApplyTarget.
type PowerupActivatedEvent struct {
	Type          PowerupType
	PendingTarget bool
}

func (PowerupActivatedEvent) gameEvent() {}

// PowerupAppliedEvent is emitted when a one-shot powerup takes effect.
type PowerupAppliedEvent struct {
	Type PowerupType
}

func (PowerupAppliedEvent) gameEvent() {}

// PowerupExpiredEvent is emitted when a duration powerup runs out.
type PowerupExpiredEvent struct {
	Type PowerupType
}

func (PowerupExpiredEvent) gameEvent() {}

// ValueFoundEvent lists the cells holding the value chosen for Value
// Finder. The grid is not mutated.
type ValueFoundEvent struct {
	Value int
	Cells []Coord
}

func (ValueFoundEvent) gameEvent() {}

// WinEvent fires the first time the win threshold is reached. It fires
// at most once per session.
type WinEvent struct {
	Value int
}

func (WinEvent) gameEvent() {}

// TimeWarningEvent fires when Time Attack remaining time first crosses
// the warning threshold.
type TimeWarningEvent struct {
	RemainingSeconds float64
}

func (TimeWarningEvent) gameEvent() {}

// TimeUpEvent fires when the Time Attack clock expires.
type TimeUpEvent struct{}

func (TimeUpEvent) gameEvent() {}

// GameOverEvent fires when no legal move remains or the clock expires.
type GameOverEvent struct{}

func (GameOverEvent) gameEvent() {}

// GameCompletedEvent is emitted exactly once per session, when the
// session reaches game over or is explicitly ended after a win.
type GameCompletedEvent struct {
	FinalScore      uint64
	Won             bool
	HighestTile     int
	PowerupsUsed    []PowerupType
	DurationSeconds float64
	Mode            ModeKind
}

func (GameCompletedEvent) gameEvent() {}
