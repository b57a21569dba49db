// Package tui provides the Bubble Tea integration for the arena. The live
// scenario viewer runs locally or over SSH; stored runs get a table view.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultTickRate = 60

// TickMsg asks the viewer to advance one frame.
type TickMsg time.Time

// FrameInterval is the wall time between frames at rate frames per second.
// Non-positive rates fall back to 60.
func FrameInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = defaultTickRate
	}
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(FrameInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
