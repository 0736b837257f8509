package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"clipdate/internal/domain"
)

// Sender is the part of *tea.Program the observer uses.
type Sender interface {
	Send(msg tea.Msg)
}

// Observer forwards walker events to a running program as messages.
type Observer struct {
	Program Sender
}

func (o Observer) OnStart(dir string, total int) {
	o.Program.Send(StartMsg{Dir: dir, Total: total})
}

func (o Observer) OnFileDone(done, total int, outcome domain.Outcome) {
	o.Program.Send(FileDoneMsg{Done: done, Total: total, Outcome: outcome})
}

func (o Observer) OnFinish(summary domain.Summary) {
	o.Program.Send(FinishMsg{Summary: summary})
}
