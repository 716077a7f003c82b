package sdk

import "sync"

// FixedClock is a settable clock for tests and replays.
type FixedClock struct {
	mu  sync.Mutex
	now uint64
}

// NewFixedClock starts the clock at the given unix second.
func NewFixedClock(now uint64) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set jumps to an absolute time.
func (c *FixedClock) Set(now uint64) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Advance moves the clock forward by secs.
func (c *FixedClock) Advance(secs uint64) {
	c.mu.Lock()
	c.now += secs
	c.mu.Unlock()
}
