package clock

import (
	"slices"
	"time"
)

// Manual is a deterministic Scheduler driven by the caller. Time only
// moves on Advance, and continuations from Go only run on Flush or
// Advance. It must be used from a single goroutine.
type Manual struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
	queue  []func()
}

func NewManual() *Manual {
	return &Manual{}
}

// Now is the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.seq++
	t := &manualTimer{owner: m, due: m.now + max(d, 0), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Go runs work immediately and queues its continuation for the next Flush.
func (m *Manual) Go(work func() func()) {
	if next := work(); next != nil {
		m.queue = append(m.queue, next)
	}
}

// Flush runs queued continuations, including ones queued while flushing.
func (m *Manual) Flush() {
	for len(m.queue) > 0 {
		fn := m.queue[0]
		m.queue = m.queue[1:]
		fn()
	}
}

// Advance moves time forward by d, firing due timers in order. Timers
// scheduled by callbacks fire in the same call when they fall within d.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		m.Flush()
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.remove(t)
		m.now = t.due
		t.fn()
	}
	m.now = target
	m.Flush()
}

// Pending reports the number of armed timers.
func (m *Manual) Pending() int {
	return len(m.timers)
}

func (m *Manual) nextDue(limit time.Duration) *manualTimer {
	var next *manualTimer
	for _, t := range m.timers {
		if t.due > limit {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *Manual) remove(t *manualTimer) bool {
	i := slices.Index(m.timers, t)
	if i < 0 {
		return false
	}
	m.timers = slices.Delete(m.timers, i, i+1)
	return true
}

type manualTimer struct {
	owner *Manual
	due   time.Duration
	seq   int
	fn    func()
}

func (t *manualTimer) Stop() bool {
	return t.owner.remove(t)
}
