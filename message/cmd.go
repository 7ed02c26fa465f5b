package message

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// FrameRate bounds how often pointer movement is applied.
const FrameRate = time.Second / 60

// GetPageCmd returns a command to request a page of data
func GetPageCmd(offset, size int) tea.Cmd {
	return func() tea.Msg {
		return GetPageMsg{
			Offset: offset,
			Size:   size,
		}
	}
}

// ErrorCmd returns a command reporting err
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// FrameCmd returns a command that ticks once, a frame from now
func FrameCmd() tea.Cmd {
	return tea.Tick(FrameRate, func(at time.Time) tea.Msg {
		return FrameMsg{At: at}
	})
}
