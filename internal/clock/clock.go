// Package clock schedules engine callbacks onto a single event loop.
package clock

import "time"

// Timer is a pending callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// ran or was stopped.
	Stop() bool
}

// Scheduler runs callbacks on one logical thread. Callbacks passed to
// AfterFunc and the continuations returned by Go never run concurrently
// with each other.
type Scheduler interface {
	// AfterFunc runs fn on the loop once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer

	// Go runs work off the loop and then applies the continuation it
	// returns (if any) on the loop.
	Go(work func() func())
}
