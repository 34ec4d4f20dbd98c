package wall

import "time"

// Clock abstracts the wall clock so rounds can be timed deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}

// Timer accrues elapsed time only while it is running.
type Timer struct {
	running bool
	since   time.Time
	accrued time.Duration
}

// Start resets the timer to offset and begins accruing from now.
// Starting a running timer discards its previous run.
func (t *Timer) Start(now time.Time, offset time.Duration) {
	t.running = true
	t.since = now
	t.accrued = offset
}

// Stop freezes the accrued time.
func (t *Timer) Stop(now time.Time) {
	if !t.running {
		return
	}
	t.accrued += now.Sub(t.since)
	t.running = false
}

// Resume continues accruing from now, keeping the accrued time.
func (t *Timer) Resume(now time.Time) {
	if t.running {
		return
	}
	t.running = true
	t.since = now
}

// Reset stops the timer and clears the accrued time.
func (t *Timer) Reset() {
	*t = Timer{}
}

// Running reports whether time is accruing.
func (t *Timer) Running() bool {
	return t.running
}

// Elapsed returns the accrued time as of now.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	if !t.running {
		return t.accrued
	}
	if d := now.Sub(t.since); d > 0 {
		return t.accrued + d
	}
	return t.accrued
}

// Freeze stops the timer at exactly d.
func (t *Timer) Freeze(d time.Duration) {
	t.running = false
	t.accrued = d
}
