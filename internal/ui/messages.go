package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/folio/internal/region"
)

type frameMsg time.Time
type sentMsg struct {
	reply string
	err   error
}

func frameCmd() tea.Cmd {
	return tea.Tick(region.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
