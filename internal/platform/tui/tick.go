// Package tui provides the Bubble Tea integration for KObra.
// It handles the terminal UI loop, input mapping, match persistence and
// the SSH session flow.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// tick loop so a stale loop from a previous game dies out.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

var tickGens atomic.Uint64

// nextTickGen returns a fresh tick loop generation.
func nextTickGen() uint64 {
	return tickGens.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
