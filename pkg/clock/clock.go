package clock

import (
	"sync"
	"time"
)

// Clock abstracts the current time so the planner can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reports wall time in a fixed location.
type RealClock struct {
	Location *time.Location
}

// NewReal returns a clock reporting times in loc. A nil loc means time.Local.
func NewReal(loc *time.Location) *RealClock {
	if loc == nil {
		loc = time.Local
	}
	return &RealClock{Location: loc}
}

// Now returns the current time in the configured location.
func (c *RealClock) Now() time.Time {
	if c == nil || c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FakeClock returns a fixed time until it is moved.
type FakeClock struct {
	mu      sync.RWMutex
	current time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

func (c *FakeClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}
