package engine

import "sort"

// Config holds the rule parameters accepted at session creation. The
// mode is supplied separately to New and is immutable afterwards.
type Config struct {
	GridSize       int          `json:"grid_size"`
	Base           int          `json:"base"`
	WinExponent    int          `json:"win_exponent"`
	Spawn          SpawnConfig  `json:"spawn"`
	Blockers       BlockerCurve `json:"blockers"`
	WarningSeconds float64      `json:"warning_seconds"`
}

// DefaultConfig returns the classic 4×4 base-2 game reaching 2048.
func DefaultConfig() Config {
	return Config{
		GridSize:       DefaultGridSize,
		Base:           2,
		WinExponent:    11,
		Spawn:          DefaultSpawnConfig(),
		Blockers:       DefaultBlockerCurve(),
		WarningSeconds: 10,
	}
}

// WinValue returns base^winExponent, the tile value that wins.
func (c Config) WinValue() int {
	value := 1
	for i := 0; i < c.WinExponent; i++ {
		value *= c.Base
	}
	return value
}

func (c Config) normalized() Config {
	if c.GridSize <= 0 {
		c.GridSize = DefaultGridSize
	}
	if c.Base < 2 {
		c.Base = 2
	}
	if c.WinExponent <= 0 {
		c.WinExponent = 11
	}
	if c.WarningSeconds <= 0 {
		c.WarningSeconds = 10
	}
	return c
}

// State is the complete session snapshot. Every command consumes the
// previous state and returns a new one; a rejected command returns the
// previous state untouched. The caller holds the current reference and
// is responsible for serializing command dispatch.
type State struct {
	Config            Config          `json:"config"`
	Mode              Mode            `json:"mode"`
	Grid              Grid            `json:"grid"`
	Score             uint64          `json:"score"`
	BestScore         uint64          `json:"best_score"`
	MoveCount         uint32          `json:"move_count"`
	Paused            bool            `json:"paused,omitempty"`
	Won               bool            `json:"won,omitempty"`
	GameOver          bool            `json:"game_over,omitempty"`
	ContinuedAfterWin bool            `json:"continued_after_win,omitempty"`
	WarningFired      bool            `json:"warning_fired,omitempty"`
	Active            []ActivePowerup `json:"active_powerups,omitempty"`
	Unlocked          []PowerupType   `json:"unlocked_powerups,omitempty"`
	Used              []PowerupType   `json:"used_powerups,omitempty"`
	LockedCell        *Coord          `json:"locked_cell,omitempty"`
	IDCounter         uint64          `json:"id_counter"`
	RNGState          uint64          `json:"rng_state"`
	DurationSeconds   float64         `json:"duration_seconds,omitempty"`

	// Previous is the one-deep undo buffer: the state before the last
	// accepted move, with its own buffer stripped so an undo can never
	// be undone.
	Previous *State `json:"previous,omitempty"`
}

// New creates a session in the given mode and spawns the two opening
// tiles.
func New(cfg Config, mode Mode, seed int64) (State, []Event) {
	cfg = cfg.normalized()
	s := State{
		Config:   cfg,
		Mode:     mode,
		Grid:     NewGrid(cfg.GridSize),
		RNGState: newRNG(seed).state,
	}

	ids := &idAllocator{}
	r := restoreRNG(s.RNGState)
	var events []Event
	for i := 0; i < 2; i++ {
		if ev, ok := spawnNumeric(&s.Grid, cfg.Base, cfg.Spawn, r, ids); ok {
			events = append(events, ev)
		}
	}
	s.IDCounter = ids.next
	s.RNGState = r.state
	return s, events
}

// clone returns a deep copy. The undo buffer is shared: snapshots are
// immutable once taken.
func (s State) clone() State {
	ns := s
	ns.Grid = s.Grid.Clone()
	if s.Active != nil {
		ns.Active = append([]ActivePowerup(nil), s.Active...)
	}
	if s.Unlocked != nil {
		ns.Unlocked = append([]PowerupType(nil), s.Unlocked...)
	}
	if s.Used != nil {
		ns.Used = append([]PowerupType(nil), s.Used...)
	}
	if s.LockedCell != nil {
		at := *s.LockedCell
		ns.LockedCell = &at
	}
	return ns
}

func (s State) activeIndex(typ PowerupType) int {
	for i, a := range s.Active {
		if a.Type == typ && !a.PendingTarget {
			return i
		}
	}
	return -1
}

// HasActive reports whether a powerup effect is currently running
// (pending-target activations do not count).
func (s State) HasActive(typ PowerupType) bool {
	return s.activeIndex(typ) >= 0
}

// PendingTarget returns the powerup waiting for ApplyTarget, if any.
func (s State) PendingTarget() (PowerupType, bool) {
	for _, a := range s.Active {
		if a.PendingTarget {
			return a.Type, true
		}
	}
	return 0, false
}

// IsUnlocked reports whether the powerup is unlocked and unused.
func (s State) IsUnlocked(typ PowerupType) bool {
	return containsType(s.Unlocked, typ)
}

// IsUsed reports whether the powerup was already activated this
// session.
func (s State) IsUsed(typ PowerupType) bool {
	return containsType(s.Used, typ)
}

func containsType(list []PowerupType, typ PowerupType) bool {
	for _, t := range list {
		if t == typ {
			return true
		}
	}
	return false
}

// insertType keeps the list sorted so serialized snapshots are stable.
func insertType(list []PowerupType, typ PowerupType) []PowerupType {
	list = append(list, typ)
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

func removeType(list []PowerupType, typ PowerupType) []PowerupType {
	for i, t := range list {
		if t == typ {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// rules builds the resolver rules implied by the active powerups.
func (s State) rules() moveRules {
	r := moveRules{
		base:        s.Config.Base,
		mergeBoost:  s.HasActive(PowerupMergeBoost),
		doubleScore: s.HasActive(PowerupDoubleMerge),
	}
	if s.LockedCell != nil {
		r.locked = map[Coord]struct{}{*s.LockedCell: {}}
	}
	return r
}

// isStuck reports game over: no empty cell and no direction changes
// the grid. All four directions are simulated through the resolver
// because blockers and locked tiles defeat the adjacency heuristic.
func (s State) isStuck() bool {
	if len(s.Grid.EmptyCells()) > 0 {
		return false
	}
	for _, dir := range Directions {
		sim := idAllocator{next: s.IDCounter}
		if _, _, changed, _ := resolve(s.Grid, dir, s.rules(), &sim); changed {
			return false
		}
	}
	return true
}

// reject guards shared by every grid-mutating command.
func (s State) reject() error {
	switch {
	case s.GameOver:
		return ErrGameOver
	case s.Paused:
		return ErrPaused
	default:
		if _, pending := s.PendingTarget(); pending {
			return ErrTargetRequired
		}
		return nil
	}
}

// Move resolves one directional move. A direction that changes nothing
// returns the previous state byte-identical, with Changed=false on the
// MoveResolvedEvent. A changed move spawns tiles, advances powerup
// durations, and re-evaluates win and terminal conditions.
func (s State) Move(dir Direction) (State, []Event, error) {
	if err := s.reject(); err != nil {
		return s, nil, err
	}

	ids := idAllocator{next: s.IDCounter}
	grid, delta, changed, mergeEvents := resolve(s.Grid, dir, s.rules(), &ids)

	events := []Event{MoveResolvedEvent{Direction: dir, ScoreDelta: delta, Changed: changed}}
	if !changed {
		return s, events, nil
	}

	ns := s.clone()
	ns.Grid = grid
	ns.IDCounter = ids.next
	ns.Score += delta
	if ns.Score > ns.BestScore {
		ns.BestScore = ns.Score
	}
	ns.MoveCount++
	events = append(events, mergeEvents...)

	if !ns.Won && ns.Grid.MaxNumeric() >= ns.Config.WinValue() {
		ns.Won = true
		events = append(events, WinEvent{Value: ns.Grid.MaxNumeric()})
	}

	r := restoreRNG(ns.RNGState)
	spawnIDs := idAllocator{next: ns.IDCounter}
	if !ns.HasActive(PowerupTileFreeze) {
		if ev, ok := spawnNumeric(&ns.Grid, ns.Config.Base, ns.Config.Spawn, r, &spawnIDs); ok {
			events = append(events, ev)
		}
	}
	if !ns.HasActive(PowerupBlockerShield) {
		if ev, ok := spawnBlocker(&ns.Grid, ns.Config.Blockers, ns.MoveCount, r, &spawnIDs); ok {
			events = append(events, ev)
		}
	}
	ns.IDCounter = spawnIDs.next
	ns.RNGState = r.state

	events = ns.expireMoveDurations(events)

	if ns.isStuck() {
		ns.GameOver = true
		events = ns.complete(events)
	}

	prev := s.clone()
	prev.Previous = nil
	ns.Previous = &prev

	return ns, events, nil
}

// expireMoveDurations decrements move-based powerup counters and drops
// the ones that hit zero.
func (ns *State) expireMoveDurations(events []Event) []Event {
	remaining := ns.Active[:0]
	for _, a := range ns.Active {
		if a.PendingTarget || a.MovesRemaining == 0 {
			remaining = append(remaining, a)
			continue
		}
		a.MovesRemaining--
		if a.MovesRemaining > 0 {
			remaining = append(remaining, a)
			continue
		}
		if a.Type == PowerupLockTile {
			ns.LockedCell = nil
		}
		events = append(events, PowerupExpiredEvent{Type: a.Type})
	}
	ns.Active = remaining
	return events
}

// complete appends the terminal events. Callers set GameOver first;
// the transition happens at most once, so GameCompletedEvent is
// emitted exactly once per session.
func (ns *State) complete(events []Event) []Event {
	events = append(events, GameOverEvent{})
	events = append(events, GameCompletedEvent{
		FinalScore:      ns.Score,
		Won:             ns.Won,
		HighestTile:     ns.Grid.MaxNumeric(),
		PowerupsUsed:    append([]PowerupType(nil), ns.Used...),
		DurationSeconds: ns.DurationSeconds,
		Mode:            ns.Mode.Kind,
	})
	return events
}

// Unlock grants a powerup. The unlock collaborator drives this from
// score milestones and entitlements; the engine rejects anything past
// the capacity cap or already used this session.
func (s State) Unlock(typ PowerupType) (State, []Event, error) {
	if s.GameOver {
		return s, nil, ErrGameOver
	}
	if s.IsUnlocked(typ) || s.IsUsed(typ) {
		return s, nil, ErrPowerupAlreadyUsed
	}
	if len(s.Unlocked) >= MaxUnlocked {
		return s, nil, ErrPowerupCapacity
	}

	ns := s.clone()
	ns.Unlocked = insertType(ns.Unlocked, typ)
	return ns, []Event{PowerupUnlockedEvent{Type: typ}}, nil
}

// ActivatePowerup spends an unlocked powerup. Targeted powerups
// transition to pending-target and require ApplyTarget before any
// further command; Undo and Shuffle apply immediately; the rest
// register a duration effect consulted by Move and Tick.
func (s State) ActivatePowerup(typ PowerupType) (State, []Event, error) {
	if s.GameOver {
		return s, nil, ErrGameOver
	}
	if s.Paused {
		return s, nil, ErrPaused
	}
	if _, pending := s.PendingTarget(); pending {
		return s, nil, ErrTargetRequired
	}
	if !s.IsUnlocked(typ) {
		if s.IsUsed(typ) {
			return s, nil, ErrPowerupAlreadyUsed
		}
		return s, nil, ErrPowerupNotUnlocked
	}

	if typ == PowerupUndo {
		return s.applyUndo()
	}

	ns := s.clone()
	ns.Unlocked = removeType(ns.Unlocked, typ)
	ns.Used = insertType(ns.Used, typ)

	switch {
	case typ == PowerupShuffle:
		ns.shuffleBoard()
		return ns, []Event{
			PowerupActivatedEvent{Type: typ},
			PowerupAppliedEvent{Type: typ},
		}, nil

	case typ.Targeted():
		ns.Active = append(ns.Active, ActivePowerup{Type: typ, PendingTarget: true})
		return ns, []Event{PowerupActivatedEvent{Type: typ, PendingTarget: true}}, nil

	default:
		ns.Active = append(ns.Active, ActivePowerup{
			Type:             typ,
			MovesRemaining:   typ.MoveDuration(),
			SecondsRemaining: typ.SecondDuration(),
		})
		return ns, []Event{PowerupActivatedEvent{Type: typ}}, nil
	}
}

// applyUndo pops the one-deep history buffer. The restored snapshot
// has Undo marked as spent and no buffer of its own.
func (s State) applyUndo() (State, []Event, error) {
	if s.Previous == nil {
		return s, nil, ErrNothingToUndo
	}

	ns := s.Previous.clone()
	ns.Previous = nil
	// Powerups spent since the snapshot stay spent; an undo never
	// refunds an activation.
	for _, used := range s.Used {
		if !containsType(ns.Used, used) {
			ns.Used = insertType(ns.Used, used)
		}
		ns.Unlocked = removeType(ns.Unlocked, used)
	}
	ns.Unlocked = removeType(ns.Unlocked, PowerupUndo)
	if !containsType(ns.Used, PowerupUndo) {
		ns.Used = insertType(ns.Used, PowerupUndo)
	}
	// Best score never rolls back.
	if s.BestScore > ns.BestScore {
		ns.BestScore = s.BestScore
	}
	return ns, []Event{
		PowerupActivatedEvent{Type: PowerupUndo},
		PowerupAppliedEvent{Type: PowerupUndo},
	}, nil
}

// shuffleBoard redistributes the movable numeric tiles uniformly among
// their own cells, preserving the multiset of values. Blockers and the
// locked tile stay put.
func (ns *State) shuffleBoard() {
	var coords []Coord
	var cells []Cell
	for row := 0; row < ns.Grid.Size; row++ {
		for col := 0; col < ns.Grid.Size; col++ {
			at := Coord{Row: row, Col: col}
			c := ns.Grid.At(row, col)
			if !c.IsNumeric() {
				continue
			}
			if ns.LockedCell != nil && *ns.LockedCell == at {
				continue
			}
			coords = append(coords, at)
			cells = append(cells, c)
		}
	}

	r := restoreRNG(ns.RNGState)
	for i := len(cells) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		cells[i], cells[j] = cells[j], cells[i]
	}
	ns.RNGState = r.state

	for i, at := range coords {
		ns.Grid.Set(at.Row, at.Col, cells[i])
	}
}

// Tick advances the session clock by deltaSeconds. The caller owns the
// clock; the engine is agnostic to wall versus simulated time. Ticking
// while paused has no effect.
func (s State) Tick(deltaSeconds float64) (State, []Event, error) {
	if s.GameOver {
		return s, nil, ErrGameOver
	}
	if s.Paused || deltaSeconds <= 0 {
		return s, nil, nil
	}

	ns := s.clone()
	ns.DurationSeconds += deltaSeconds
	slow := ns.HasActive(PowerupTimeSlow)

	var events []Event
	remaining := ns.Active[:0]
	for _, a := range ns.Active {
		if a.SecondsRemaining > 0 && !a.PendingTarget {
			a.SecondsRemaining -= deltaSeconds
			if a.SecondsRemaining <= 0 {
				events = append(events, PowerupExpiredEvent{Type: a.Type})
				continue
			}
		}
		remaining = append(remaining, a)
	}
	ns.Active = remaining

	if ns.Mode.Kind == ModeTimeAttack {
		effective := deltaSeconds
		if slow {
			effective /= 2
		}
		ns.Mode.ElapsedSeconds += effective

		left := ns.Mode.Remaining()
		if !ns.WarningFired && left > 0 && left <= ns.Config.WarningSeconds {
			ns.WarningFired = true
			events = append(events, TimeWarningEvent{RemainingSeconds: left})
		}
		if ns.Mode.ElapsedSeconds >= ns.Mode.LimitSeconds {
			events = append(events, TimeUpEvent{})
			ns.GameOver = true
			events = ns.complete(events)
		}
	}

	return ns, events, nil
}

// ApplyTarget completes a targeted powerup activation. Validation runs
// against the current grid before anything is mutated, so an invalid
// target leaves the pending activation in place for a retry.
func (s State) ApplyTarget(t Target) (State, []Event, error) {
	if s.GameOver {
		return s, nil, ErrGameOver
	}
	if s.Paused {
		return s, nil, ErrPaused
	}

	typ, pending := s.PendingTarget()
	if !pending {
		return s, nil, ErrNoPendingTarget
	}
	if !typ.accepts(t) {
		return s, nil, ErrInvalidTarget
	}
	if err := s.validateTarget(typ, t); err != nil {
		return s, nil, err
	}

	ns := s.clone()
	events := ns.applyTarget(typ, t)
	events = append(events, PowerupAppliedEvent{Type: typ})
	return ns, events, nil
}

// validateTarget checks a target against the current grid.
func (s State) validateTarget(typ PowerupType, t Target) error {
	switch typ {
	case PowerupTileDestroyer:
		if !s.Grid.InBounds(t.Cell.Row, t.Cell.Col) || s.Grid.At(t.Cell.Row, t.Cell.Col).IsEmpty() {
			return ErrInvalidTarget
		}
	case PowerupValueUpgrade, PowerupLockTile:
		if !s.Grid.At(t.Cell.Row, t.Cell.Col).IsNumeric() {
			return ErrInvalidTarget
		}
	case PowerupTileShrink:
		c := s.Grid.At(t.Cell.Row, t.Cell.Col)
		if !c.IsNumeric() || c.Value <= s.Config.Base {
			return ErrInvalidTarget
		}
	case PowerupLineClear:
		if t.Index < 0 || t.Index >= s.Grid.Size {
			return ErrInvalidTarget
		}
	case PowerupValueTarget:
		if t.Value <= 0 || len(s.cellsWithValue(t.Value)) == 0 {
			return ErrInvalidTarget
		}
	case PowerupValueFinder:
		if t.Value <= 0 {
			return ErrInvalidTarget
		}
	case PowerupCornerGather:
		if t.Corner < CornerTopLeft || t.Corner > CornerBottomRight {
			return ErrInvalidTarget
		}
	}
	return nil
}

func (s State) cellsWithValue(value int) []Coord {
	var out []Coord
	for row := 0; row < s.Grid.Size; row++ {
		for col := 0; col < s.Grid.Size; col++ {
			if c := s.Grid.At(row, col); c.IsNumeric() && c.Value == value {
				out = append(out, Coord{Row: row, Col: col})
			}
		}
	}
	return out
}

// applyTarget mutates the grid for a validated target and retires the
// pending activation. Lock Tile stays active for its move duration;
// everything else transitions straight to applied.
func (ns *State) applyTarget(typ PowerupType, t Target) []Event {
	var events []Event

	setCell := func(at Coord, after Cell) {
		before := ns.Grid.At(at.Row, at.Col)
		ns.Grid.Set(at.Row, at.Col, after)
		events = append(events, TileChangedEvent{At: at, Before: before, After: after})
	}

	ids := idAllocator{next: ns.IDCounter}

	switch typ {
	case PowerupTileDestroyer:
		// Destruction overrides Lock Tile.
		if ns.LockedCell != nil && *ns.LockedCell == t.Cell {
			ns.LockedCell = nil
			ns.dropActive(PowerupLockTile)
		}
		setCell(t.Cell, Cell{})

	case PowerupValueUpgrade:
		c := ns.Grid.At(t.Cell.Row, t.Cell.Col)
		setCell(t.Cell, Numeric(c.Value*ns.Config.Base, ids.alloc()))

	case PowerupTileShrink:
		c := ns.Grid.At(t.Cell.Row, t.Cell.Col)
		setCell(t.Cell, Numeric(c.Value/ns.Config.Base, ids.alloc()))

	case PowerupLineClear:
		for i := 0; i < ns.Grid.Size; i++ {
			at := Coord{Row: t.Index, Col: i}
			if t.Kind == TargetColumn {
				at = Coord{Row: i, Col: t.Index}
			}
			if ns.LockedCell != nil && *ns.LockedCell == at {
				ns.LockedCell = nil
				ns.dropActive(PowerupLockTile)
			}
			if !ns.Grid.At(at.Row, at.Col).IsEmpty() {
				setCell(at, Cell{})
			}
		}

	case PowerupLockTile:
		at := t.Cell
		ns.LockedCell = &at
		for i := range ns.Active {
			if ns.Active[i].Type == PowerupLockTile {
				ns.Active[i].PendingTarget = false
				ns.Active[i].MovesRemaining = PowerupLockTile.MoveDuration()
			}
		}
		return events

	case PowerupValueTarget:
		for _, at := range ns.cellsWithValue(t.Value) {
			setCell(at, Numeric(t.Value*ns.Config.Base, ids.alloc()))
		}

	case PowerupValueFinder:
		events = append(events, ValueFoundEvent{Value: t.Value, Cells: ns.cellsWithValue(t.Value)})

	case PowerupCornerGather:
		horizontal, vertical := DirLeft, DirUp
		switch t.Corner {
		case CornerTopRight:
			horizontal, vertical = DirRight, DirUp
		case CornerBottomLeft:
			horizontal, vertical = DirLeft, DirDown
		case CornerBottomRight:
			horizontal, vertical = DirRight, DirDown
		}
		rules := ns.rules()
		rules.noMerge = true
		ns.Grid, _, _, _ = resolve(ns.Grid, horizontal, rules, &ids)
		ns.Grid, _, _, _ = resolve(ns.Grid, vertical, rules, &ids)
	}

	ns.IDCounter = ids.next
	ns.dropActive(typ)
	return events
}

// dropActive removes every active entry of the given type.
func (ns *State) dropActive(typ PowerupType) {
	remaining := ns.Active[:0]
	for _, a := range ns.Active {
		if a.Type != typ {
			remaining = append(remaining, a)
		}
	}
	ns.Active = remaining
}

// Pause suspends the session. Idempotent.
func (s State) Pause() State {
	ns := s.clone()
	ns.Paused = true
	return ns
}

// Resume lifts a pause. Idempotent.
func (s State) Resume() State {
	ns := s.clone()
	ns.Paused = false
	return ns
}

// ContinueAfterWin records the player's choice to keep playing past
// the win threshold; the win check is suppressed for the rest of the
// session.
func (s State) ContinueAfterWin() (State, error) {
	if s.GameOver {
		return s, ErrGameOver
	}
	if !s.Won {
		return s, ErrNotWon
	}
	ns := s.clone()
	ns.ContinuedAfterWin = true
	return ns, nil
}

// End terminates the session explicitly, typically after a win when
// the player declines to continue. Emits the completion events.
func (s State) End() (State, []Event, error) {
	if s.GameOver {
		return s, nil, ErrGameOver
	}
	ns := s.clone()
	ns.GameOver = true
	return ns, ns.complete(nil), nil
}
