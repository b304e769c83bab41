package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/scroll-pong/internal/core"
)

func TestNewDisplayRejectsBadGamma(t *testing.T) {
	for _, gamma := range []float64{0, -1} {
		if _, err := NewDisplay(core.NewGrid(), gamma); err == nil {
			t.Errorf("NewDisplay(gamma=%v) should fail", gamma)
		}
	}
	if _, err := NewDisplay(nil, 1); err == nil {
		t.Error("NewDisplay(nil) should fail")
	}
}

func TestDisplaySetPixelAppliesGamma(t *testing.T) {
	grid := core.NewGrid()
	d, err := NewDisplay(grid, GammaLED)
	if err != nil {
		t.Fatalf("NewDisplay() failed: %v", err)
	}

	for v := 0; v <= 255; v += 15 {
		if err := d.SetPixel(4, 2, v); err != nil {
			t.Fatalf("SetPixel(4, 2, %d) failed: %v", v, err)
		}
		want := core.GammaTable(GammaLED)[v]
		if got := grid.Get(4, 2); got != want {
			t.Errorf("SetPixel(v=%d) stored %d, expected %d", v, got, want)
		}
		if d.Corrected(uint8(v)) != want {
			t.Errorf("Corrected(%d) = %d, expected %d", v, d.Corrected(uint8(v)), want)
		}
	}
}

func TestDisplayLinearPassThrough(t *testing.T) {
	grid := core.NewGrid()
	d, _ := NewDisplay(grid, GammaLinear)

	_ = d.SetPixel(0, 0, 192)
	_ = d.SetPixel(16, 6, 218)
	if grid.Get(0, 0) != 192 || grid.Get(16, 6) != 218 {
		t.Errorf("linear display altered levels: %d, %d", grid.Get(0, 0), grid.Get(16, 6))
	}
}

func TestDisplaySetPixelErrors(t *testing.T) {
	tests := []struct {
		x, y, v int
		message string
	}{
		{-1, 0, 192, "x=-1"},
		{0, -1, 192, "y=-1"},
		{17, 0, 192, "x=17"},
		{0, 7, 192, "y=7"},
		{0, 0, -1, "level=-1"},
		{0, 0, 256, "level=256"},
	}

	for _, tc := range tests {
		t.Run(tc.message, func(t *testing.T) {
			grid := core.NewGrid()
			d, _ := NewDisplay(grid, GammaLED)

			err := d.SetPixel(tc.x, tc.y, tc.v)
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange, got %v", err)
			}
			if !strings.HasSuffix(err.Error(), tc.message) {
				t.Errorf("error %q should end with %q", err.Error(), tc.message)
			}
			if grid.Lit() != 0 {
				t.Error("invalid request reached the sink")
			}
		})
	}
}

func TestDisplayDelegates(t *testing.T) {
	grid := core.NewGrid()
	d, _ := NewDisplay(grid, GammaLinear)

	if d.Width() != 17 || d.Height() != 7 {
		t.Errorf("dimensions = %dx%d, expected 17x7", d.Width(), d.Height())
	}

	_ = d.SetPixel(1, 1, 100)
	d.Clear()
	if grid.Lit() != 0 {
		t.Error("Clear() should reach the sink")
	}

	if err := d.Show(); err != nil {
		t.Fatalf("Show() failed: %v", err)
	}
	if grid.Shown() != 1 {
		t.Errorf("Show() should flush the sink once, got %d", grid.Shown())
	}
}

func TestClockSleepRejectsNegative(t *testing.T) {
	clocks := map[string]Clock{
		"system": NewSystemClock(),
		"manual": NewManualClock(0),
	}
	for name, c := range clocks {
		t.Run(name, func(t *testing.T) {
			if err := c.SleepUS(-1); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("SleepUS(-1) = %v, expected ErrOutOfRange", err)
			}
			if err := c.SleepUS(0); err != nil {
				t.Errorf("SleepUS(0) failed: %v", err)
			}
			if err := c.SleepUS(1); err != nil {
				t.Errorf("SleepUS(1) failed: %v", err)
			}
		})
	}
}

func TestSystemClockMonotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.NowUS()
	_ = c.SleepUS(1_000)
	b := c.NowUS()
	if c.DiffUS(b, a) < 1_000 {
		t.Errorf("DiffUS after 1ms sleep = %d, expected >= 1000", c.DiffUS(b, a))
	}
	if c.DiffUS(a, b) > 0 {
		t.Error("DiffUS(a, b) should be negative when a is earlier")
	}
}
