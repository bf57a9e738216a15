// Package tui provides the Bubble Tea integration for the puzzle game.
// It handles the terminal UI loop, input mapping, and session
// orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per second to advance the session clock.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that delivers the next clock
// tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
