package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg advances the console by one frame.
type tickMsg time.Time

// tickCmd schedules the next frame after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
