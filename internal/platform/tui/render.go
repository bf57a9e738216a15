package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/upendraupu555/game-sub001/internal/engine"
)

const cellWidth = 7

// tileColors maps tile values to background colors, cycling for values
// beyond 2048.
var tileColors = []lipgloss.Color{
	lipgloss.Color("250"), // 2
	lipgloss.Color("223"), // 4
	lipgloss.Color("215"), // 8
	lipgloss.Color("209"), // 16
	lipgloss.Color("203"), // 32
	lipgloss.Color("196"), // 64
	lipgloss.Color("227"), // 128
	lipgloss.Color("221"), // 256
	lipgloss.Color("220"), // 512
	lipgloss.Color("214"), // 1024
	lipgloss.Color("208"), // 2048
}

// scenicColors are the rotating board accents of Scenic mode.
var scenicColors = []lipgloss.Color{
	lipgloss.Color("24"),  // dusk blue
	lipgloss.Color("29"),  // forest
	lipgloss.Color("94"),  // desert
	lipgloss.Color("60"),  // mountain haze
	lipgloss.Color("132"), // heather
	lipgloss.Color("23"),  // deep sea
}

var (
	emptyCellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("240"))

	blockerStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("250"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1)

	hudStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("220")).
			Padding(1, 3).
			Align(lipgloss.Center)
)

// tileStyle returns the style for a numeric tile value.
func tileStyle(value, base int) lipgloss.Style {
	step := 0
	for v := value; v > base; v /= base {
		step++
	}
	color := tileColors[step%len(tileColors)]
	return lipgloss.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		Bold(true).
		Background(color).
		Foreground(lipgloss.Color("232"))
}

// View renders the full session screen.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderHUD())
	sections = append(sections, m.renderBoard())
	sections = append(sections, m.renderPowerups())

	switch m.phase {
	case phaseUnlocking:
		sections = append(sections, m.renderUnlockPicker())
	case phaseWinPrompt:
		sections = append(sections, promptStyle.Render(
			fmt.Sprintf("%s\n\n%s", m.statusMsg, "c continue  e end game")))
	case phaseGameOver:
		sections = append(sections, m.renderGameOver())
	default:
		if m.statusMsg != "" {
			sections = append(sections, statusStyle.Render(m.statusMsg))
		}
		sections = append(sections, faintStyle.Render(m.helpLine()))
	}

	screen := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, screen)
}

func (m GameModel) renderTitle() string {
	return titleStyle.Render(fmt.Sprintf("t2048x  [%s]", m.state.Mode.Kind))
}

func (m GameModel) renderHUD() string {
	parts := []string{
		fmt.Sprintf("Score %d", m.state.Score),
		fmt.Sprintf("Best %d", m.state.BestScore),
		fmt.Sprintf("Moves %d", m.state.MoveCount),
	}
	if m.state.Mode.Kind == engine.ModeTimeAttack {
		parts = append(parts, fmt.Sprintf("Time %3.0fs", m.state.Mode.Remaining()))
	}
	if m.state.Paused {
		parts = append(parts, "PAUSED")
	}
	return hudStyle.Render(strings.Join(parts, "   "))
}

func (m GameModel) renderBoard() string {
	grid := m.state.Grid
	rows := make([]string, 0, grid.Size)
	for row := 0; row < grid.Size; row++ {
		cells := make([]string, 0, grid.Size)
		for col := 0; col < grid.Size; col++ {
			cells = append(cells, m.renderCell(row, col))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	style := boardStyle
	if m.state.Mode.Kind == engine.ModeScenic {
		style = style.BorderForeground(m.scenicAccent())
	}
	return style.Render(strings.Join(rows, "\n"))
}

// scenicAccent rotates the board accent color as the session runs.
func (m GameModel) scenicAccent() lipgloss.Color {
	shift := int(m.state.DurationSeconds) / 30
	idx := (m.state.Mode.BackgroundIndex + shift) % len(scenicColors)
	return scenicColors[idx]
}

func (m GameModel) renderCell(row, col int) string {
	cell := m.state.Grid.At(row, col)
	at := engine.Coord{Row: row, Col: col}

	var rendered string
	switch {
	case cell.IsBlocker():
		rendered = blockerStyle.Render(strings.Repeat("#", cell.Strength))
	case cell.IsNumeric():
		style := tileStyle(cell.Value, m.state.Config.Base)
		if m.state.LockedCell != nil && *m.state.LockedCell == at {
			style = style.Underline(true)
		}
		rendered = style.Render(fmt.Sprintf("%d", cell.Value))
	default:
		rendered = emptyCellStyle.Render("·")
	}

	if m.phase == phaseTargeting && m.cursor == at {
		rendered = lipgloss.NewStyle().Reverse(true).Render(rendered)
	}
	return rendered
}

// renderPowerups shows the unlocked slots and the running effects.
func (m GameModel) renderPowerups() string {
	var lines []string

	if len(m.state.Unlocked) > 0 {
		slots := make([]string, 0, len(m.state.Unlocked))
		for i, typ := range m.state.Unlocked {
			slots = append(slots, fmt.Sprintf("[%d] %c %s", i+1, typ.Glyph(), typ))
		}
		lines = append(lines, hudStyle.Render(strings.Join(slots, "  ")))
	}

	if len(m.state.Active) > 0 {
		effects := make([]string, 0, len(m.state.Active))
		for _, a := range m.state.Active {
			switch {
			case a.PendingTarget:
				effects = append(effects, fmt.Sprintf("%s: choose target", a.Type))
			case a.SecondsRemaining > 0:
				effects = append(effects, fmt.Sprintf("%s %.0fs", a.Type, a.SecondsRemaining))
			default:
				effects = append(effects, fmt.Sprintf("%s %d moves", a.Type, a.MovesRemaining))
			}
		}
		lines = append(lines, statusStyle.Render(strings.Join(effects, "  ")))
	}

	if len(lines) == 0 {
		return faintStyle.Render("no powerups unlocked")
	}
	return strings.Join(lines, "\n")
}

func (m GameModel) renderUnlockPicker() string {
	var sb strings.Builder
	sb.WriteString("pick a powerup to unlock\n\n")
	for i, typ := range m.choices {
		marker := "  "
		if i == m.choiceCursor {
			marker = "> "
		}
		sb.WriteString(fmt.Sprintf("%s%c %s\n", marker, typ.Glyph(), typ))
	}
	sb.WriteString("\nenter select  esc skip")
	return promptStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func (m GameModel) renderGameOver() string {
	headline := "game over"
	if m.state.Won {
		headline = "you won!"
	}
	body := fmt.Sprintf("%s\n\nfinal score %d\nhighest tile %d\n\nr restart  esc quit",
		headline, m.state.Score, m.state.Grid.MaxNumeric())
	return promptStyle.Render(body)
}

func (m GameModel) helpLine() string {
	switch m.phase {
	case phaseTargeting:
		if m.pendingType == engine.PowerupLineClear {
			return "arrows move  enter clear row  v clear column"
		}
		return "arrows move  enter confirm"
	default:
		return "arrows/wasd move  1-3 powerup  u undo  p pause  ctrl+s save+quit  q quit"
	}
}
