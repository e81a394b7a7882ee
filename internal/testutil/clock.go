package testutil

import (
	"sync"
	"time"
)

// SteppingClock is a fake wall clock that advances by a fixed step on
// every reading. Its Now method can be passed wherever a func() time.Time is
// expected.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SteppingClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// Epoch is the first instant returned by a new SteppingClock.
var Epoch = time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)

// NewSteppingClock creates a clock starting at Epoch. A zero step defaults
// to one millisecond.
func NewSteppingClock(step time.Duration) *SteppingClock {
	if step == 0 {
		step = time.Millisecond
	}
	return &SteppingClock{now: Epoch, step: step}
}

// Now returns the current instant, then advances the clock by one step.
func (c *SteppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}
