package game

import "time"

// Timer is a repeating cadence driven by frame deltas. It fires at most once
// per Tick; surplus time carries over modulo the interval.
type Timer struct {
	interval time.Duration
	elapsed  time.Duration
}

func NewTimer(interval time.Duration) *Timer {
	return &Timer{interval: interval}
}

// Tick adds delta and reports whether the interval elapsed.
func (t *Timer) Tick(delta time.Duration) bool {
	if t.interval <= 0 {
		return true
	}
	t.elapsed += delta
	if t.elapsed < t.interval {
		return false
	}
	t.elapsed %= t.interval
	return true
}

func (t *Timer) Reset() {
	t.elapsed = 0
}

func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}
