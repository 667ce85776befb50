// Package clock provides the cancellable one-shot timers used for action
// durations and turn time limits.
package clock

import (
	"sync"
	"time"
)

// Timer fires a callback once after a duration unless stopped first.
// It is safe for concurrent use.
//
// Stop only guarantees the callback has not started yet when it reports true;
// callers racing a fire must still check their own state in the callback.
type Timer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	fired   bool
}

// AfterFunc creates and starts a timer that calls onFire after d on its own goroutine.
// A zero or negative d fires as soon as the runtime schedules it, never inline.
//
// Precondition: onFire must not be nil.
// Postcondition: onFire will be called exactly once unless Stop returns true first.
func AfterFunc(d time.Duration, onFire func()) *Timer {
	t := &Timer{}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		if t.stopped {
			t.mu.Unlock()
			return
		}
		t.fired = true
		t.mu.Unlock()
		onFire()
	})
	return t
}

// Stop prevents the callback from firing. Safe to call multiple times and on a nil Timer.
//
// Postcondition: returns true iff this call prevented the callback from running.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}
