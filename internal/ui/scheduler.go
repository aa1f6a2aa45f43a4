package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerFiredMsg carries a scheduled callback back into Update.
type timerFiredMsg struct {
	fn func()
}

// scheduler is the table engine's timer facility. Callbacks are queued as
// commands and run from Update when their timer fires, so the engine only
// ever runs on the event loop.
type scheduler struct {
	pending []tea.Cmd
}

func newScheduler() *scheduler {
	return &scheduler{}
}

// AfterFunc queues fn to run after d.
func (s *scheduler) AfterFunc(d time.Duration, fn func()) {
	if d <= 0 {
		s.pending = append(s.pending, func() tea.Msg { return timerFiredMsg{fn: fn} })
		return
	}
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{fn: fn}
	}))
}

// Flush returns the commands queued since the last flush.
func (s *scheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Pending reports the number of queued timers.
func (s *scheduler) Pending() int {
	return len(s.pending)
}
