package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/upendraupu555/game-sub001/internal/config"
	"github.com/upendraupu555/game-sub001/internal/engine"
	"github.com/upendraupu555/game-sub001/internal/storage"
)

// phase tracks which input layer is active on top of the board.
type phase int

const (
	phasePlaying phase = iota
	phaseTargeting
	phaseUnlocking
	phaseWinPrompt
	phaseGameOver
)

// autosaveSlot is the session name used for suspend and resume.
const autosaveSlot = "autosave"

// GameModel is the Bubble Tea model driving one puzzle session.
type GameModel struct {
	cfg        config.GameConfig
	difficulty config.DifficultyPreset
	store      *storage.Store
	keys       *KeyMapper

	state engine.State
	mode  engine.Mode // pristine mode, used for restarts

	phase        phase
	cursor       engine.Coord
	pendingType  engine.PowerupType
	choices      []engine.PowerupType
	choiceCursor int
	milestoneIdx int

	statusMsg string
	width     int
	height    int
	recorded  bool
	quitting  bool
}

// NewGameModel creates a model for a fresh session in the given mode.
// A zero seed picks a time-based seed.
func NewGameModel(cfg config.GameConfig, preset config.DifficultyPreset, mode engine.Mode, seed int64, store *storage.Store) GameModel {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	state, _ := engine.New(cfg.ToEngine(), mode, seed)

	return GameModel{
		cfg:        cfg,
		difficulty: preset,
		store:      store,
		keys:       NewKeyMapper(),
		state:      state,
		mode:       mode,
		width:      80,
		height:     24,
	}
}

// ResumeGameModel creates a model from a suspended session snapshot.
func ResumeGameModel(cfg config.GameConfig, preset config.DifficultyPreset, snapshot []byte, store *storage.Store) (GameModel, error) {
	state, err := engine.Decode(snapshot)
	if err != nil {
		return GameModel{}, err
	}

	m := GameModel{
		cfg:        cfg,
		difficulty: preset,
		store:      store,
		keys:       NewKeyMapper(),
		state:      state,
		mode:       engine.Mode{Kind: state.Mode.Kind, LimitSeconds: state.Mode.LimitSeconds, BackgroundIndex: state.Mode.BackgroundIndex},
		width:      80,
		height:     24,
	}
	// Resumed sessions come back unpaused with their milestones spent.
	m.state = m.state.Resume()
	m.milestoneIdx = passedMilestones(cfg.Powerups.UnlockScores, state.Score)
	switch {
	case state.GameOver:
		m.phase = phaseGameOver
	default:
		if typ, pending := state.PendingTarget(); pending {
			m.enterTargeting(typ)
		}
	}
	return m, nil
}

func passedMilestones(milestones []uint64, score uint64) int {
	n := 0
	for _, ms := range milestones {
		if score >= ms {
			n++
		}
	}
	return n
}

// Init starts the session clock.
func (m GameModel) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleTick advances the session clock by one second.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	if state, events, err := m.state.Tick(1); err == nil {
		m.state = state
		m.consumeEvents(events)
	}

	return m, tickCmd()
}

// handleKey dispatches a key press to the active input layer.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.phase {
	case phaseTargeting:
		return m.handleTargetingKey(msg, action)
	case phaseUnlocking:
		return m.handleUnlockingKey(action)
	case phaseWinPrompt:
		return m.handleWinPromptKey(msg, action)
	case phaseGameOver:
		return m.handleGameOverKey(action)
	default:
		return m.handlePlayingKey(msg, action)
	}
}

func (m GameModel) handlePlayingKey(msg tea.KeyMsg, action Action) (tea.Model, tea.Cmd) {
	if slot, ok := m.keys.MapKeyToSlot(msg); ok {
		return m.activateSlot(slot), nil
	}

	switch action {
	case ActionPause:
		if m.state.Paused {
			m.state = m.state.Resume()
			m.statusMsg = ""
		} else {
			m.state = m.state.Pause()
			m.statusMsg = "paused"
		}
		return m, nil

	case ActionSuspend:
		return m.suspend()

	case ActionUndo:
		return m.activateType(engine.PowerupUndo), nil

	case ActionRestart:
		return m.restart(), nil
	}

	if dir, ok := action.Direction(); ok {
		return m.move(dir), nil
	}

	return m, nil
}

// move resolves one directional move and reacts to its events.
func (m GameModel) move(dir engine.Direction) GameModel {
	state, events, err := m.state.Move(dir)
	if err != nil {
		m.statusMsg = err.Error()
		return m
	}

	m.state = state
	m.statusMsg = ""
	m.consumeEvents(events)
	if m.phase == phasePlaying {
		m.checkMilestones()
	}
	return m
}

// activateSlot spends the powerup in the given unlocked slot.
func (m GameModel) activateSlot(slot int) GameModel {
	unlocked := m.state.Unlocked
	if slot >= len(unlocked) {
		return m
	}
	return m.activateType(unlocked[slot])
}

func (m GameModel) activateType(typ engine.PowerupType) GameModel {
	state, events, err := m.state.ActivatePowerup(typ)
	if err != nil {
		m.statusMsg = err.Error()
		return m
	}

	m.state = state
	m.consumeEvents(events)
	if typ == engine.PowerupUndo || typ == engine.PowerupShuffle {
		m.statusMsg = fmt.Sprintf("%s applied", typ)
		return m
	}
	if _, pending := m.state.PendingTarget(); pending {
		m.enterTargeting(typ)
	} else {
		m.statusMsg = fmt.Sprintf("%s active", typ)
	}
	return m
}

// enterTargeting switches to the target selection layer.
func (m *GameModel) enterTargeting(typ engine.PowerupType) {
	m.phase = phaseTargeting
	m.pendingType = typ
	mid := m.state.Grid.Size / 2
	m.cursor = engine.Coord{Row: mid, Col: mid}
	if typ == engine.PowerupCornerGather {
		m.cursor = engine.Coord{}
	}
	m.statusMsg = fmt.Sprintf("select a target for %s", typ)
}

func (m GameModel) handleTargetingKey(msg tea.KeyMsg, action Action) (tea.Model, tea.Cmd) {
	size := m.state.Grid.Size

	if dir, ok := action.Direction(); ok {
		if m.pendingType == engine.PowerupCornerGather {
			m.cursor = snapCorner(m.cursor, dir, size)
		} else {
			m.cursor = stepCursor(m.cursor, dir, size)
		}
		return m, nil
	}

	switch {
	case action == ActionConfirm:
		return m.applyTarget(m.buildTarget(false)), nil
	case msg.String() == "v" && m.pendingType == engine.PowerupLineClear:
		return m.applyTarget(m.buildTarget(true)), nil
	case action == ActionBack:
		m.statusMsg = "a target must be chosen before anything else"
		return m, nil
	}

	return m, nil
}

func stepCursor(c engine.Coord, dir engine.Direction, size int) engine.Coord {
	switch dir {
	case engine.DirUp:
		c.Row--
	case engine.DirDown:
		c.Row++
	case engine.DirLeft:
		c.Col--
	case engine.DirRight:
		c.Col++
	}
	if c.Row < 0 {
		c.Row = 0
	}
	if c.Row >= size {
		c.Row = size - 1
	}
	if c.Col < 0 {
		c.Col = 0
	}
	if c.Col >= size {
		c.Col = size - 1
	}
	return c
}

// snapCorner moves the cursor between the four grid corners.
func snapCorner(c engine.Coord, dir engine.Direction, size int) engine.Coord {
	switch dir {
	case engine.DirUp:
		c.Row = 0
	case engine.DirDown:
		c.Row = size - 1
	case engine.DirLeft:
		c.Col = 0
	case engine.DirRight:
		c.Col = size - 1
	}
	return c
}

// buildTarget shapes the cursor position into the pending powerup's
// target kind. column selects the column form of Row/Column Clear.
func (m GameModel) buildTarget(column bool) engine.Target {
	switch m.pendingType {
	case engine.PowerupLineClear:
		if column {
			return engine.ColumnTarget(m.cursor.Col)
		}
		return engine.RowTarget(m.cursor.Row)

	case engine.PowerupValueTarget, engine.PowerupValueFinder:
		cell := m.state.Grid.At(m.cursor.Row, m.cursor.Col)
		return engine.ValueTarget(cell.Value)

	case engine.PowerupCornerGather:
		return engine.CornerTarget(cornerAt(m.cursor, m.state.Grid.Size))

	default:
		return engine.CellTarget(m.cursor.Row, m.cursor.Col)
	}
}

func cornerAt(c engine.Coord, size int) engine.Corner {
	bottom := c.Row >= size/2
	right := c.Col >= size/2
	switch {
	case bottom && right:
		return engine.CornerBottomRight
	case bottom:
		return engine.CornerBottomLeft
	case right:
		return engine.CornerTopRight
	default:
		return engine.CornerTopLeft
	}
}

func (m GameModel) applyTarget(t engine.Target) GameModel {
	state, events, err := m.state.ApplyTarget(t)
	if err != nil {
		m.statusMsg = fmt.Sprintf("invalid target: %v", err)
		return m
	}

	m.state = state
	m.phase = phasePlaying
	m.statusMsg = fmt.Sprintf("%s applied", m.pendingType)
	m.consumeEvents(events)
	return m
}

func (m GameModel) handleUnlockingKey(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case ActionUp:
		if m.choiceCursor > 0 {
			m.choiceCursor--
		}
	case ActionDown:
		if m.choiceCursor < len(m.choices)-1 {
			m.choiceCursor++
		}
	case ActionConfirm:
		typ := m.choices[m.choiceCursor]
		if state, events, err := m.state.Unlock(typ); err == nil {
			m.state = state
			m.consumeEvents(events)
			m.statusMsg = fmt.Sprintf("%s unlocked", typ)
		} else {
			m.statusMsg = err.Error()
		}
		m.phase = phasePlaying
	case ActionBack:
		m.phase = phasePlaying
		m.statusMsg = "unlock skipped"
	}
	return m, nil
}

func (m GameModel) handleWinPromptKey(msg tea.KeyMsg, action Action) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "c" || action == ActionConfirm:
		if state, err := m.state.ContinueAfterWin(); err == nil {
			m.state = state
		}
		m.phase = phasePlaying
		m.statusMsg = "keep going!"
	case msg.String() == "e" || action == ActionBack:
		if state, events, err := m.state.End(); err == nil {
			m.state = state
			m.consumeEvents(events)
		}
	}
	return m, nil
}

func (m GameModel) handleGameOverKey(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case ActionRestart:
		return m.restart(), nil
	case ActionBack:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// restart begins a fresh session in the same mode with a new seed.
func (m GameModel) restart() GameModel {
	state, _ := engine.New(m.cfg.ToEngine(), m.mode, time.Now().UnixNano())
	m.state = state
	m.phase = phasePlaying
	m.milestoneIdx = 0
	m.recorded = false
	m.statusMsg = ""
	return m
}

// suspend saves a resumable snapshot and quits.
func (m GameModel) suspend() (tea.Model, tea.Cmd) {
	if m.store != nil && !m.state.GameOver {
		snapshot, err := engine.Encode(m.state)
		if err == nil {
			//nolint:errcheck // Best-effort save, quitting regardless
			m.store.SaveSession(storage.SessionRecord{
				Name:     autosaveSlot,
				Mode:     m.state.Mode.Kind.String(),
				Score:    m.state.Score,
				Snapshot: snapshot,
			})
		}
	}
	m.quitting = true
	return m, tea.Quit
}

// consumeEvents reacts to engine events: phase changes, status text,
// and the final game record.
func (m *GameModel) consumeEvents(events []engine.Event) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case engine.WinEvent:
			m.phase = phaseWinPrompt
			m.statusMsg = fmt.Sprintf("you reached %d!", ev.Value)

		case engine.TimeWarningEvent:
			m.statusMsg = fmt.Sprintf("%.0f seconds left!", ev.RemainingSeconds)

		case engine.TimeUpEvent:
			m.statusMsg = "time's up"

		case engine.GameOverEvent:
			m.phase = phaseGameOver

		case engine.PowerupExpiredEvent:
			m.statusMsg = fmt.Sprintf("%s expired", ev.Type)

		case engine.ValueFoundEvent:
			m.statusMsg = fmt.Sprintf("%d tiles of value %d", len(ev.Cells), ev.Value)

		case engine.GameCompletedEvent:
			m.recordGame(ev)
		}
	}
}

// checkMilestones opens the unlock picker when the score crosses the
// next milestone.
func (m *GameModel) checkMilestones() {
	milestones := m.cfg.Powerups.UnlockScores
	if m.milestoneIdx >= len(milestones) || m.state.Score < milestones[m.milestoneIdx] {
		return
	}
	m.milestoneIdx++

	choices := m.unlockChoices()
	if len(choices) == 0 || len(m.state.Unlocked) >= engine.MaxUnlocked {
		return
	}
	m.choices = choices
	m.choiceCursor = 0
	m.phase = phaseUnlocking
	m.statusMsg = "milestone reached: pick a powerup"
}

// unlockChoices lists the powerups still available to unlock. Score
// milestones offer the primary set first; once it is exhausted the
// remaining types open up.
func (m GameModel) unlockChoices() []engine.PowerupType {
	var primary, rest []engine.PowerupType
	for _, typ := range engine.PowerupTypes() {
		if m.state.IsUnlocked(typ) || m.state.IsUsed(typ) {
			continue
		}
		if typ.Primary() {
			primary = append(primary, typ)
		} else {
			rest = append(rest, typ)
		}
	}
	if len(primary) > 0 {
		return primary
	}
	return rest
}

// recordGame persists the finished game and drops the autosave. Runs
// at most once per session.
func (m *GameModel) recordGame(ev engine.GameCompletedEvent) {
	if m.recorded {
		return
	}
	m.recorded = true

	if m.store == nil {
		return
	}

	names := make([]string, len(ev.PowerupsUsed))
	for i, typ := range ev.PowerupsUsed {
		names[i] = typ.String()
	}

	//nolint:errcheck // Best-effort save, game over screen shows regardless
	m.store.SaveGame(storage.GameRecord{
		Mode:         ev.Mode.String(),
		Difficulty:   string(m.difficulty),
		Score:        ev.FinalScore,
		Won:          ev.Won,
		HighestTile:  ev.HighestTile,
		Moves:        m.state.MoveCount,
		DurationSecs: int(ev.DurationSeconds),
		PowerupsUsed: storage.JoinPowerups(names),
	})
	//nolint:errcheck // A finished session has nothing left to resume
	m.store.DeleteSession(autosaveSlot)
}

// Run starts the Bubble Tea program with the given model.
func Run(m GameModel) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
