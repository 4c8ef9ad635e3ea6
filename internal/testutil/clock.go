package testutil

import (
	"sync"
	"time"
)

// FixedClock is a settable wall clock for tests.
//
// Unlike the system clock, FixedClock only moves when told to, so
// timestamps written through a store are predictable.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock stopped at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// DefaultTime is the instant used by NewDefaultClock, in the local zone so
// that it survives the wire format unchanged.
var DefaultTime = time.Date(2025, time.January, 6, 8, 30, 0, 0, time.Local)

// NewDefaultClock creates a clock stopped at DefaultTime.
func NewDefaultClock() *FixedClock {
	return NewFixedClock(DefaultTime)
}

// Now returns the current fixed time.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new time.
func (c *FixedClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
