// Package tui provides the Bubble Tea frontend for the flap simulation.
// It owns the terminal loop, maps keys to taps, measures frame deltas and
// draws snapshots. The simulation itself never sees the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation step.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
// The rate only paces redraws; step sizes come from the wall clock.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
