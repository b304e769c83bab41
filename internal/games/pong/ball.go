package pong

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/scroll-pong/internal/config"
	"github.com/vovakirdan/scroll-pong/internal/core"
)

// Field geometry in cell units. Paddle planes are where the ball center
// touches the inner face of a paddle column.
const (
	FieldWidth  = float64(core.GridWidth)
	FieldHeight = float64(core.GridHeight)
	BallRadius  = 0.5
	LeftPlane   = 1 + BallRadius
	RightPlane  = FieldWidth - 1 - BallRadius
)

// maxServeAngle bounds the heading of a fresh serve.
const maxServeAngle = math.Pi / 6

// Side names one half of the field.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

type boundary int

const (
	boundaryNone boundary = iota
	boundaryTop
	boundaryBottom
	boundaryLeft
	boundaryRight
)

// Ball is the puck with continuous position, velocity and spin.
type Ball struct {
	X, Y       float64
	VX, VY     float64
	Spin       float64
	Radius     float64
	MaxEnglish float64 // Radians

	transfer    float64
	scale       float64
	speedRamp   float64
	minVX       float64
	maxSubsteps int
	rng         *rand.Rand
}

// NewBall creates a centered, motionless ball tuned by cfg.
func NewBall(cfg config.PhysicsConfig, rng *rand.Rand) *Ball {
	return &Ball{
		X:           FieldWidth / 2,
		Y:           FieldHeight / 2,
		Radius:      BallRadius,
		MaxEnglish:  cfg.MaxEnglish(),
		transfer:    cfg.EnglishTransfer,
		scale:       cfg.EnglishScale,
		speedRamp:   cfg.SpeedRamp,
		minVX:       cfg.MinHorizontalSpeed,
		maxSubsteps: max(cfg.MaxSubsteps, 1),
		rng:         rng,
	}
}

// Reset serves from the center toward a random side with a random heading
// within 30 degrees of horizontal.
func (b *Ball) Reset(speed float64) {
	b.X = FieldWidth / 2
	b.Y = FieldHeight / 2
	b.Spin = 0

	angle := (b.rng.Float64()*2 - 1) * maxServeAngle
	dir := 1.0
	if b.rng.Intn(2) == 0 {
		dir = -1
	}
	b.VX = dir * speed * math.Cos(angle)
	b.VY = speed * math.Sin(angle)
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Update advances the ball by dt seconds, resolving every wall and paddle
// crossing inside the interval in time order. A paddle plane the ball
// slipped past stays open for the rest of the update. After maxSubsteps
// crossings the remaining wall bounces are folded analytically, without
// English, so no time is dropped.
func (b *Ball) Update(dt float64, left, right *Player) {
	if dt <= 0 {
		return
	}
	b.ensureProgress()

	total := dt
	leftOpen, rightOpen := true, true
	top, bottom := b.Radius, FieldHeight-b.Radius

	for crossings := 0; dt > 0; crossings++ {
		fold := crossings >= b.maxSubsteps
		dx, dy := b.VX*dt, b.VY*dt
		x1, y1 := b.X+dx, b.Y+dy

		hit, frac := boundaryNone, 1.0
		earliest := func(t float64, which boundary) {
			if hit == boundaryNone || t < frac {
				hit, frac = which, t
			}
		}
		if !fold && dy < 0 && y1 < top {
			earliest((b.Y-top)/-dy, boundaryTop)
		}
		if !fold && dy > 0 && y1 > bottom {
			earliest((bottom-b.Y)/dy, boundaryBottom)
		}
		if leftOpen && dx < 0 && b.X >= LeftPlane && x1 < LeftPlane {
			earliest((b.X-LeftPlane)/-dx, boundaryLeft)
		}
		if rightOpen && dx > 0 && b.X <= RightPlane && x1 > RightPlane {
			earliest((RightPlane-b.X)/dx, boundaryRight)
		}

		if hit == boundaryNone {
			b.X = x1
			if fold {
				b.Y, b.VY = foldBetween(b.Y, b.VY, dt, top, bottom)
			} else {
				b.Y = y1
			}
			break
		}

		frac = core.ClampF(frac, 0, 1)
		b.X += dx * frac
		if fold {
			b.Y, b.VY = foldBetween(b.Y, b.VY, dt*frac, top, bottom)
		} else {
			b.Y += dy * frac
		}
		dt *= 1 - frac

		switch hit {
		case boundaryTop:
			b.Y = top
			b.VY = -b.VY
			b.applyEnglish()
			b.ensureProgress()
			b.VY = math.Abs(b.VY)
		case boundaryBottom:
			b.Y = bottom
			b.VY = -b.VY
			b.applyEnglish()
			b.ensureProgress()
			b.VY = -math.Abs(b.VY)
		case boundaryLeft:
			b.X = LeftPlane
			if left != nil && left.IsAt(b.Y) {
				b.VX = -b.VX
				b.Spin += left.Smoothed
				b.applyEnglish()
				b.ensureProgress()
				b.VX = math.Abs(b.VX)
			} else {
				leftOpen = false
			}
		case boundaryRight:
			b.X = RightPlane
			if right != nil && right.IsAt(b.Y) {
				b.VX = -b.VX
				b.Spin -= right.Smoothed
				b.applyEnglish()
				b.ensureProgress()
				b.VX = -math.Abs(b.VX)
			} else {
				rightOpen = false
			}
		}
	}

	b.Y = core.ClampF(b.Y, top, bottom)

	step := min(total, 0.1)
	b.Spin *= 1 - step
	ramp := 1 + b.speedRamp*step
	b.VX *= ramp
	b.VY *= ramp
}

// foldBetween moves y by vy*t, reflecting off lo and hi as often as
// needed, and returns the new position and vertical velocity.
func foldBetween(y, vy, t, lo, hi float64) (float64, float64) {
	span := hi - lo
	if span <= 0 {
		return lo, vy
	}
	p := y - lo + vy*t
	k := math.Floor(p / span)
	r := p - k*span
	if math.Mod(k, 2) == 0 {
		return lo + r, vy
	}
	return hi - r, -vy
}

// applyEnglish turns a share of the stored spin into a rotation of the
// velocity and removes that share from the spin.
func (b *Ball) applyEnglish() {
	realized := b.Spin * b.transfer
	b.Spin -= realized
	angle := core.ClampF(realized*b.scale, -b.MaxEnglish, b.MaxEnglish)
	b.VX, b.VY = core.Rotate(b.VX, b.VY, angle)
}

// ensureProgress keeps the ball from bouncing vertically forever. It runs
// before each update and after every bounce, since English can rotate
// the velocity toward vertical.
func (b *Ball) ensureProgress() {
	if math.Abs(b.VX) >= b.minVX {
		return
	}
	dir := core.Sign(b.VX)
	if b.VX == 0 && b.rng.Intn(2) == 0 {
		dir = -1
	}
	b.VX = dir * b.minVX * (1 + b.rng.Float64())
}

// Exited reports which side the ball left the field through.
// SideLeft means the left player missed.
func (b *Ball) Exited() Side {
	switch {
	case b.X-b.Radius < 0:
		return SideLeft
	case b.X+b.Radius > FieldWidth:
		return SideRight
	default:
		return SideNone
	}
}

// Draw splats the ball onto the four cells under its footprint, weighting
// each by the covered area.
func (b *Ball) Draw(c Canvas) error {
	ix, fx := core.Floor(b.X - b.Radius)
	iy, fy := core.Floor(b.Y - b.Radius)
	cells := [4]struct {
		x, y int
		w    float64
	}{
		{ix, iy, (1 - fx) * (1 - fy)},
		{ix + 1, iy, fx * (1 - fy)},
		{ix, iy + 1, (1 - fx) * fy},
		{ix + 1, iy + 1, fx * fy},
	}
	for _, cell := range cells {
		if err := plot(c, cell.x, cell.y, core.Scale(core.LevelFull, cell.w)); err != nil {
			return err
		}
	}
	return nil
}
