// Package engine contains the device-facing plumbing of the game: the
// monotonic clock, the frame-rate limiter, the gamma-corrected display and
// the button wiring. Games depend on these abstractions, never on a concrete
// LED driver or terminal.
package engine

import (
	"fmt"
	"time"

	"github.com/vovakirdan/scroll-pong/internal/core"
)

// ErrOutOfRange is returned for invalid pixel coordinates, brightness levels
// and delay requests.
var ErrOutOfRange = core.ErrOutOfRange

// Clock is a monotonic microsecond time source with a blocking delay.
type Clock interface {
	// NowUS returns an increasing microsecond counter with an arbitrary
	// reference point. It may wrap; use DiffUS to compare readings.
	NowUS() uint64

	// DiffUS returns a-b as a signed interval.
	DiffUS(a, b uint64) int64

	// SleepUS blocks for at least us microseconds.
	// Negative values fail with ErrOutOfRange.
	SleepUS(us int64) error
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock whose zero is the moment of creation.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// NowUS returns microseconds since the clock was created.
func (c *SystemClock) NowUS() uint64 {
	return uint64(time.Since(c.start).Microseconds()) //nolint:gosec // monotonic, never negative
}

// DiffUS returns a-b; wrapping subtraction keeps the sign meaningful.
func (c *SystemClock) DiffUS(a, b uint64) int64 {
	return int64(a - b) //nolint:gosec // two's complement wrap is intended
}

// SleepUS sleeps for us microseconds.
func (c *SystemClock) SleepUS(us int64) error {
	if us < 0 {
		return fmt.Errorf("%w: us=%d", ErrOutOfRange, us)
	}
	time.Sleep(time.Duration(us) * time.Microsecond)
	return nil
}
