package clock

import "time"

// Clock provides time to services and the ride state machine. Using an
// interface keeps the cancellation window and lifecycle timers testable
// with a controllable implementation.
type Clock interface {
	Now() time.Time
}

// System returns the current wall-clock time.
type System struct{}

func NewSystem() System { return System{} }

func (System) Now() time.Time { return time.Now() }

// Manual is a hand-advanced clock for tests.
type Manual struct {
	now time.Time
}

func NewManual(start time.Time) *Manual { return &Manual{now: start} }

func (m *Manual) Now() time.Time { return m.now }

func (m *Manual) Advance(d time.Duration) { m.now = m.now.Add(d) }

func (m *Manual) Set(t time.Time) { m.now = t }
