package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/upendraupu555/game-sub001/internal/engine"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyDirections(t *testing.T) {
	km := NewKeyMapper()

	cases := []struct {
		msg  tea.KeyMsg
		want engine.Direction
	}{
		{runeKey('w'), engine.DirUp},
		{runeKey('k'), engine.DirUp},
		{tea.KeyMsg{Type: tea.KeyUp}, engine.DirUp},
		{runeKey('s'), engine.DirDown},
		{runeKey('j'), engine.DirDown},
		{runeKey('a'), engine.DirLeft},
		{runeKey('h'), engine.DirLeft},
		{runeKey('d'), engine.DirRight},
		{runeKey('l'), engine.DirRight},
	}

	for _, tc := range cases {
		action, isQuit := km.MapKey(tc.msg)
		if isQuit {
			t.Errorf("%q mapped to quit", tc.msg.String())
			continue
		}
		dir, ok := action.Direction()
		if !ok || dir != tc.want {
			t.Errorf("%q: got %v (%v), want %v", tc.msg.String(), dir, ok, tc.want)
		}
	}
}

func TestMapKeyQuit(t *testing.T) {
	km := NewKeyMapper()

	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		if _, isQuit := km.MapKey(msg); !isQuit {
			t.Errorf("%q should quit", msg.String())
		}
	}
}

func TestMapKeyActions(t *testing.T) {
	km := NewKeyMapper()

	cases := []struct {
		msg  tea.KeyMsg
		want Action
	}{
		{runeKey('p'), ActionPause},
		{runeKey('r'), ActionRestart},
		{runeKey('u'), ActionUndo},
		{runeKey('b'), ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, ActionSuspend},
		{tea.KeyMsg{Type: tea.KeyEnter}, ActionConfirm},
	}
	for _, tc := range cases {
		if action, _ := km.MapKey(tc.msg); action != tc.want {
			t.Errorf("%q: got %v, want %v", tc.msg.String(), action, tc.want)
		}
	}
}

func TestMapKeyToSlot(t *testing.T) {
	km := NewKeyMapper()

	if slot, ok := km.MapKeyToSlot(runeKey('1')); !ok || slot != 0 {
		t.Errorf("key 1: got %d, %v", slot, ok)
	}
	if slot, ok := km.MapKeyToSlot(runeKey('3')); !ok || slot != 2 {
		t.Errorf("key 3: got %d, %v", slot, ok)
	}
	if _, ok := km.MapKeyToSlot(runeKey('0')); ok {
		t.Error("key 0 is not a slot")
	}
	if _, ok := km.MapKeyToSlot(runeKey('x')); ok {
		t.Error("key x is not a slot")
	}
}

func TestCornerAt(t *testing.T) {
	cases := []struct {
		at   engine.Coord
		want engine.Corner
	}{
		{engine.Coord{Row: 0, Col: 0}, engine.CornerTopLeft},
		{engine.Coord{Row: 0, Col: 3}, engine.CornerTopRight},
		{engine.Coord{Row: 3, Col: 0}, engine.CornerBottomLeft},
		{engine.Coord{Row: 3, Col: 3}, engine.CornerBottomRight},
	}
	for _, tc := range cases {
		if got := cornerAt(tc.at, 4); got != tc.want {
			t.Errorf("cornerAt(%v) = %v, want %v", tc.at, got, tc.want)
		}
	}
}

func TestStepCursorClamps(t *testing.T) {
	c := engine.Coord{Row: 0, Col: 0}
	if got := stepCursor(c, engine.DirUp, 4); got != c {
		t.Errorf("cursor moved above the grid: %v", got)
	}
	if got := stepCursor(engine.Coord{Row: 3, Col: 3}, engine.DirRight, 4); got.Col != 3 {
		t.Errorf("cursor moved past the right edge: %v", got)
	}
	if got := stepCursor(c, engine.DirDown, 4); got.Row != 1 {
		t.Errorf("cursor did not move down: %v", got)
	}
}
