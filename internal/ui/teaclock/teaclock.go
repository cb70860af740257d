// Package teaclock drives a clock.Scheduler from Bubble Tea commands so an
// engine can run inside a program's Update.
package teaclock

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/linguoquest/linguoquest/internal/clock"
)

// Msg is produced by a Scheduler's commands. The root model must route it
// back with Apply whichever screen is active, so continuations such as
// ledger writes still land after navigation.
type Msg interface {
	Apply() tea.Cmd
}

// Scheduler queues tea commands for timers and background work. Callbacks
// run inside Apply, on the program's goroutine.
type Scheduler struct {
	nextID  int
	timers  map[int]func()
	pending []tea.Cmd
	closed  bool
}

var _ clock.Scheduler = (*Scheduler)(nil)

func New() *Scheduler {
	return &Scheduler{timers: make(map[int]func())}
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) clock.Timer {
	s.nextID++
	id := s.nextID
	s.timers[id] = fn
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return firedMsg{s: s, id: id}
	}))
	return timer{s: s, id: id}
}

func (s *Scheduler) Go(work func() func()) {
	s.pending = append(s.pending, func() tea.Msg {
		return doneMsg{s: s, next: work()}
	})
}

// Emit queues an arbitrary command for the next Drain. Hooks use it to
// navigate.
func (s *Scheduler) Emit(cmd tea.Cmd) {
	if cmd != nil {
		s.pending = append(s.pending, cmd)
	}
}

// Drain returns everything queued since the last call.
func (s *Scheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Close drops armed timers. Background work still completes.
func (s *Scheduler) Close() {
	s.closed = true
	clear(s.timers)
}

// Armed reports the number of timers that have not fired or been stopped.
func (s *Scheduler) Armed() int {
	return len(s.timers)
}

type timer struct {
	s  *Scheduler
	id int
}

func (t timer) Stop() bool {
	if _, ok := t.s.timers[t.id]; !ok {
		return false
	}
	delete(t.s.timers, t.id)
	return true
}

type firedMsg struct {
	s  *Scheduler
	id int
}

func (m firedMsg) Apply() tea.Cmd {
	fn, ok := m.s.timers[m.id]
	if !ok || m.s.closed {
		return m.s.Drain()
	}
	delete(m.s.timers, m.id)
	fn()
	return m.s.Drain()
}

type doneMsg struct {
	s    *Scheduler
	next func()
}

func (m doneMsg) Apply() tea.Cmd {
	if m.next != nil {
		m.next()
	}
	return m.s.Drain()
}
