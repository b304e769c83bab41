package pong

import (
	"github.com/vovakirdan/scroll-pong/internal/core"
)

// AnimationKind selects the active variant of an Animation.
type AnimationKind int

const (
	AnimationNone AnimationKind = iota
	AnimationCountdown
	AnimationScore
)

// String returns the variant name.
func (k AnimationKind) String() string {
	switch k {
	case AnimationCountdown:
		return "countdown"
	case AnimationScore:
		return "score"
	default:
		return "none"
	}
}

// scoreGlyph is a left-pointing chevron, one 7-row column per byte with
// bit 0 at the top.
var scoreGlyph = []byte{0x22, 0x14, 0x08}

// Animation is a timed visual sequence shown outside of play. Only the
// fields of the active Kind are meaningful.
type Animation struct {
	Kind AnimationKind

	// Countdown
	Value float64
	Speed float64 // Steps per second

	// Score
	Rotated bool
	Offset  int
	Time    float64
	Period  float64 // Seconds per offset step
}

// NewCountdown creates a countdown indicator advancing speed steps/sec.
func NewCountdown(speed float64) Animation {
	return Animation{Kind: AnimationCountdown, Speed: speed}
}

// NewScore creates the score celebration. rotated mirrors it for a miss
// on the left side.
func NewScore(rotated bool, period float64) Animation {
	return Animation{Kind: AnimationScore, Rotated: rotated, Period: period}
}

// Active reports whether there is anything to show.
func (a *Animation) Active() bool {
	return a.Kind != AnimationNone
}

// Update advances the animation by dt seconds.
func (a *Animation) Update(dt float64) {
	switch a.Kind {
	case AnimationCountdown:
		a.Value += a.Speed * dt
	case AnimationScore:
		a.Time += dt
		if a.Period <= 0 {
			return
		}
		for a.Time >= a.Period {
			a.Time -= a.Period
			a.Offset = (a.Offset + 1) % len(scoreGlyph)
		}
	}
}

// Draw renders the current frame.
func (a *Animation) Draw(c Canvas) error {
	switch a.Kind {
	case AnimationCountdown:
		return a.drawCountdown(c)
	case AnimationScore:
		return a.drawScore(c)
	}
	return nil
}

// CountdownCell returns the lit cell and its level for the current step.
func (a *Animation) CountdownCell(width, height int) (x, y int, level uint8) {
	step := int(a.Value)
	level = core.LevelFull
	if step%2 == 1 {
		level = core.LevelHalf
	}
	return width / 2, (2 * step) % height, level
}

func (a *Animation) drawCountdown(c Canvas) error {
	x, y, level := a.CountdownCell(c.Width(), c.Height())
	return plot(c, x, y, level)
}

func (a *Animation) drawScore(c Canvas) error {
	w, h := c.Width(), c.Height()
	n := len(scoreGlyph)
	for x := range w {
		col := (x + a.Offset) % n
		for y := range h {
			if !core.BitmapLit(scoreGlyph, col, y) {
				continue
			}
			level := core.LevelFull
			if (x+y)%2 == 1 {
				level = core.LevelHalf
			}
			dx, dy := x, y
			if a.Rotated {
				dx, dy = w-1-x, h-1-y
			}
			if err := plot(c, dx, dy, level); err != nil {
				return err
			}
		}
	}
	return nil
}
