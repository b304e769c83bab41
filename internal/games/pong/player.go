package pong

import (
	"github.com/vovakirdan/scroll-pong/internal/core"
	"github.com/vovakirdan/scroll-pong/internal/engine"
)

// Paddle limits in rows. The paddle spans [Y-1, Y+1].
const (
	PaddleMinY   = 1.0
	PaddleMaxY   = 6.0
	PaddleStartY = 3.5
)

// Player is one paddle and the two buttons steering it.
type Player struct {
	X        int     // Column, 0 or 16
	Y        float64 // Paddle center
	Velocity float64 // Raw displacement of the last update
	Smoothed float64 // Decayed blend of recent displacement, feeds ball spin

	up, down engine.Button
	speed    float64
	coverage float64
}

// NewPlayer creates a paddle in column x moving at speed rows/sec.
// coverage is the distance from the center at which a ball still hits.
func NewPlayer(x int, up, down engine.Button, speed, coverage float64) *Player {
	p := &Player{
		X:        x,
		up:       up,
		down:     down,
		speed:    speed,
		coverage: coverage,
	}
	p.Reset()
	return p
}

// Reset centers the paddle and clears its motion.
func (p *Player) Reset() {
	p.Y = PaddleStartY
	p.Velocity = 0
	p.Smoothed = 0
}

// Update moves the paddle when exactly one of its buttons is held.
func (p *Player) Update(dt float64) {
	y0 := p.Y
	up, down := p.up.IsPressed(), p.down.IsPressed()
	switch {
	case up && !down:
		p.Y -= p.speed * dt
	case down && !up:
		p.Y += p.speed * dt
	}
	p.Y = core.ClampF(p.Y, PaddleMinY, PaddleMaxY)

	p.Velocity = p.Y - y0
	p.Smoothed = p.Velocity + max(1-dt, 0)*p.Smoothed
}

// IsAt reports whether a ball center at row y meets the paddle.
func (p *Player) IsAt(y float64) bool {
	d := y - p.Y
	return d >= -p.coverage && d <= p.coverage
}

// Coverage returns the hit band half-height.
func (p *Player) Coverage() float64 {
	return p.coverage
}

// Draw renders the paddle as three cells around floor(Y), blending the
// outer cells by the fractional position.
func (p *Player) Draw(c Canvas) error {
	row, frac := core.Floor(p.Y)
	cells := [3]struct {
		y     int
		level uint8
	}{
		{row - 1, core.Scale(core.LevelFull, 1-frac)},
		{row, core.LevelFull},
		{row + 1, core.Scale(core.LevelFull, frac)},
	}
	for _, cell := range cells {
		if err := plot(c, p.X, cell.y, cell.level); err != nil {
			return err
		}
	}
	return nil
}
