// Package tui provides the Bubble Tea integration for Combo Jump.
// It handles the terminal UI loop, input mapping, the ranking hand-off and
// the SSH host.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation frame. Gen identifies the run that
// scheduled it so ticks from a finished run are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after a frame.
func tickCmd(tickRate, gen int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
