package engine

import (
	"fmt"
	"sync"
)

// ManualClock is a controllable Clock for tests and replays.
// Sleeping advances the clock instantly instead of blocking.
type ManualClock struct {
	mu     sync.Mutex
	now    uint64
	sleeps []int64
}

// NewManualClock creates a clock reading start microseconds.
func NewManualClock(start uint64) *ManualClock {
	return &ManualClock{now: start}
}

// NowUS returns the current mocked time.
func (c *ManualClock) NowUS() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// DiffUS returns a-b.
func (c *ManualClock) DiffUS(a, b uint64) int64 {
	return int64(a - b) //nolint:gosec // two's complement wrap is intended
}

// SleepUS records the request and advances time by us.
func (c *ManualClock) SleepUS(us int64) error {
	if us < 0 {
		return fmt.Errorf("%w: us=%d", ErrOutOfRange, us)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, us)
	c.now += uint64(us)
	return nil
}

// Advance moves time forward without recording a sleep.
func (c *ManualClock) Advance(us uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += us
}

// Sleeps returns a copy of every delay requested so far.
func (c *ManualClock) Sleeps() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int64, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}
