package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/upendraupu555/game-sub001/internal/engine"
)

// Action is a game-level input derived from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionBack
	ActionPause
	ActionRestart
	ActionSuspend
	ActionUndo
	ActionQuit
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action. Returns the action
// (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return ActionQuit, true
	}

	switch key {
	case "w", "up", "k": // vim-style k for up
		return ActionUp, false
	case "s", "down", "j": // vim-style j for down
		return ActionDown, false
	case "a", "left", "h":
		return ActionLeft, false
	case "d", "right", "l":
		return ActionRight, false
	case "enter", " ":
		return ActionConfirm, false
	case "b", "esc":
		return ActionBack, false
	case "p":
		return ActionPause, false
	case "r":
		return ActionRestart, false
	case "ctrl+s":
		return ActionSuspend, false
	case "u":
		return ActionUndo, false
	}

	return ActionNone, false
}

// Direction maps a movement action to an engine direction.
func (a Action) Direction() (engine.Direction, bool) {
	switch a {
	case ActionUp:
		return engine.DirUp, true
	case ActionDown:
		return engine.DirDown, true
	case ActionLeft:
		return engine.DirLeft, true
	case ActionRight:
		return engine.DirRight, true
	default:
		return 0, false
	}
}

// MapKeyToSlot translates a digit key to a powerup slot index.
// Returns the zero-based slot and whether the key was a digit.
func (km *KeyMapper) MapKeyToSlot(msg tea.KeyMsg) (int, bool) {
	key := msg.String()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '1'), true
	}
	return 0, false
}
