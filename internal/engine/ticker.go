package engine

import "math"

const (
	usPerSecond  = 1_000_000
	secondsPerUS = 1.0 / usPerSecond
)

// DefaultMaxRate is the frame cap used when none is configured.
const DefaultMaxRate = 60

// FrameTicker bounds the update rate by sleeping out the rest of each frame
// interval. It never catches up: a frame that ran long simply starts the next
// interval late.
type FrameTicker struct {
	clock Clock

	// minIntervalUS is kept fractional so a configured rate round-trips
	// exactly; timestamps themselves stay integral.
	minIntervalUS float64

	lastTick uint64
	started  bool
}

// NewFrameTicker creates a ticker limited to maxRate frames per second.
// Zero or negative rates leave it unlimited.
func NewFrameTicker(clock Clock, maxRate float64) *FrameTicker {
	t := &FrameTicker{clock: clock}
	t.SetMaxRate(maxRate)
	return t
}

// Clock returns the time source used by the ticker.
func (t *FrameTicker) Clock() Clock {
	return t.clock
}

// MaxRate returns the frame cap in frames per second.
// ok is false when the ticker is unlimited.
func (t *FrameTicker) MaxRate() (rate float64, ok bool) {
	if t.minIntervalUS <= 0 {
		return 0, false
	}
	return usPerSecond / t.minIntervalUS, true
}

// SetMaxRate sets the frame cap. Zero, negative or NaN clears it.
func (t *FrameTicker) SetMaxRate(rate float64) {
	if !(rate > 0) || math.IsInf(rate, 1) {
		t.minIntervalUS = 0
		return
	}
	t.minIntervalUS = usPerSecond / rate
}

// MinInterval returns the minimum frame interval in seconds.
func (t *FrameTicker) MinInterval() float64 {
	return t.minIntervalUS * secondsPerUS
}

// SetMinInterval sets the minimum frame interval in seconds.
func (t *FrameTicker) SetMinInterval(seconds float64) {
	t.SetMinIntervalUS(seconds * usPerSecond)
}

// MinIntervalUS returns the minimum frame interval in microseconds.
func (t *FrameTicker) MinIntervalUS() float64 {
	return t.minIntervalUS
}

// SetMinIntervalUS sets the minimum frame interval in microseconds.
// Zero, negative or NaN clears the limit.
func (t *FrameTicker) SetMinIntervalUS(us float64) {
	if !(us > 0) {
		us = 0
	}
	t.minIntervalUS = us
}

// WaitUS blocks until at least the minimum interval has passed since the
// previous call and returns the current time. The first call never blocks.
func (t *FrameTicker) WaitUS() (uint64, error) {
	if err := t.maybeSleep(); err != nil {
		return 0, err
	}
	now := t.clock.NowUS()
	t.lastTick = now
	t.started = true
	return now, nil
}

// Wait is WaitUS in seconds.
func (t *FrameTicker) Wait() (float64, error) {
	now, err := t.WaitUS()
	return float64(now) * secondsPerUS, err
}

// Elapsed returns the seconds between two readings of the ticker's clock.
func (t *FrameTicker) Elapsed(from, to uint64) float64 {
	return float64(t.clock.DiffUS(to, from)) * secondsPerUS
}

func (t *FrameTicker) maybeSleep() error {
	if t.minIntervalUS <= 0 || !t.started {
		return nil
	}
	interval := t.clock.DiffUS(t.clock.NowUS(), t.lastTick)
	toWait := int64(math.Round(t.minIntervalUS - float64(interval)))
	if toWait <= 0 {
		return nil
	}
	return t.clock.SleepUS(toWait)
}
