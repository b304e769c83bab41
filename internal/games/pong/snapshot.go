package pong

import "math"

// Snapshot is a flat view of the game state for logging and tests.
type Snapshot struct {
	Tick      uint64
	State     string
	Wait      string
	Debounce  float64
	Countdown float64
	Animation string

	BallX, BallY   float64
	BallVX, BallVY float64
	Spin           float64
	LeftY, RightY  float64

	ScoreLeft  int
	ScoreRight int
	Rounds     int
	Loser      string
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tickCount,
		State:     g.state.String(),
		Wait:      g.wait.String(),
		Debounce:  g.debounce,
		Countdown: g.countdown,
		Animation: g.anim.Kind.String(),

		BallX:  g.ball.X,
		BallY:  g.ball.Y,
		BallVX: g.ball.VX,
		BallVY: g.ball.VY,
		Spin:   g.ball.Spin,
		LeftY:  g.left.Y,
		RightY: g.right.Y,

		ScoreLeft:  g.scoreLeft,
		ScoreRight: g.scoreRight,
		Rounds:     g.rounds,
		Loser:      g.loser.String(),
	}
}

// KeyVals flattens the snapshot into logger key/value pairs.
func (s Snapshot) KeyVals() []any {
	return []any{
		"tick", s.Tick,
		"state", s.State,
		"wait", s.Wait,
		"ball_x", s.BallX,
		"ball_y", s.BallY,
		"left_y", s.LeftY,
		"right_y", s.RightY,
		"score", [2]int{s.ScoreLeft, s.ScoreRight},
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := s.Tick
	for _, f := range []float64{s.BallX, s.BallY, s.BallVX, s.BallVY, s.Spin, s.LeftY, s.RightY} {
		h = h*31 + math.Float64bits(f)
	}
	h = h*31 + uint64(s.ScoreLeft)  //#nosec G115 -- hash computation
	h = h*31 + uint64(s.ScoreRight) //#nosec G115 -- hash computation
	for _, c := range s.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	return h
}
