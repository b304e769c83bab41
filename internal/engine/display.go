package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/scroll-pong/internal/core"
)

// Gamma presets.
const (
	GammaLED    = 3.0 // Physical LED response
	GammaLinear = 1.0 // Raw pass-through
)

// PixelSink is the device that ultimately shows a frame.
type PixelSink interface {
	Width() int
	Height() int
	SetPixel(x, y int, level uint8) error
	Clear()
	// Show pushes the buffered frame to the observer.
	Show() error
}

// Display maps linear brightness requests through a gamma curve before
// forwarding them to a PixelSink.
type Display struct {
	sink  PixelSink
	gamma float64
	lut   [256]uint8
}

// NewDisplay wraps sink with the given gamma exponent.
func NewDisplay(sink PixelSink, gamma float64) (*Display, error) {
	if sink == nil {
		return nil, errors.New("display: nil pixel sink")
	}
	if !(gamma > 0) || math.IsInf(gamma, 0) {
		return nil, fmt.Errorf("display: %w: gamma=%v", ErrOutOfRange, gamma)
	}
	return &Display{
		sink:  sink,
		gamma: gamma,
		lut:   core.GammaTable(gamma),
	}, nil
}

// Gamma returns the configured exponent.
func (d *Display) Gamma() float64 {
	return d.gamma
}

// Width returns the sink width.
func (d *Display) Width() int {
	return d.sink.Width()
}

// Height returns the sink height.
func (d *Display) Height() int {
	return d.sink.Height()
}

// Corrected returns the level actually sent to the sink for request v.
func (d *Display) Corrected(v uint8) uint8 {
	return d.lut[v]
}

// SetPixel validates the request and stores round(255*(v/255)^gamma).
// Invalid coordinates or levels fail before the sink is touched.
func (d *Display) SetPixel(x, y, v int) error {
	if x < 0 || x >= d.sink.Width() {
		return fmt.Errorf("%w: x=%d", ErrOutOfRange, x)
	}
	if y < 0 || y >= d.sink.Height() {
		return fmt.Errorf("%w: y=%d", ErrOutOfRange, y)
	}
	if v < 0 || v > 255 {
		return fmt.Errorf("%w: level=%d", ErrOutOfRange, v)
	}
	return d.sink.SetPixel(x, y, d.lut[v])
}

// Clear zeroes the sink buffer.
func (d *Display) Clear() {
	d.sink.Clear()
}

// Show flushes the sink.
func (d *Display) Show() error {
	return d.sink.Show()
}
