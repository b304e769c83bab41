// Package pong implements two-player Pong for the 17x7 Scroll Pack grid:
// sub-stepped ball physics with spin, anti-aliased paddles, and a small
// attract/countdown/play/score state machine.
// Player 1 steers the left paddle with A/B, player 2 the right one with X/Y.
package pong

import (
	"context"
	"errors"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/scroll-pong/internal/config"
	"github.com/vovakirdan/scroll-pong/internal/core"
	"github.com/vovakirdan/scroll-pong/internal/engine"
)

// Paddle columns.
const (
	LeftColumn  = 0
	RightColumn = core.GridWidth - 1
)

// attractPulse is the field marker pulse frequency on the attract screen, in Hz.
const attractPulse = 0.5

// Canvas is the drawing surface entities render onto. engine.Display
// implements it with gamma correction.
type Canvas interface {
	Width() int
	Height() int
	SetPixel(x, y, v int) error
}

// plot draws one cell, skipping dark and off-grid cells.
func plot(c Canvas, x, y int, level uint8) error {
	if level == 0 || x < 0 || x >= c.Width() || y < 0 || y >= c.Height() {
		return nil
	}
	return c.SetPixel(x, y, int(level))
}

// State is the top-level game phase.
type State int

const (
	StateInsertCoin State = iota
	StateCountdown
	StateRunning
	StatePlayerScored
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInsertCoin:
		return "insert-coin"
	case StateCountdown:
		return "countdown"
	case StateRunning:
		return "running"
	case StatePlayerScored:
		return "player-scored"
	default:
		return "unknown"
	}
}

// WaitPhase tracks a press-then-release gesture.
type WaitPhase int

const (
	WaitIdle WaitPhase = iota
	WaitAwaitingPress
	WaitAwaitingRelease
)

// String returns the phase name.
func (w WaitPhase) String() string {
	switch w {
	case WaitAwaitingPress:
		return "awaiting-press"
	case WaitAwaitingRelease:
		return "awaiting-release"
	default:
		return "idle"
	}
}

// Options configures a Game.
type Options struct {
	Config config.Config
	Sink   engine.PixelSink
	Input  engine.InputSource
	Clock  engine.Clock // Defaults to the system clock
	Seed   int64
	Logger *log.Logger // Defaults to a discarding logger
}

// Game drives one Pong session on a pixel sink.
type Game struct {
	cfg        config.Config
	display    *engine.Display
	buttons    engine.Buttons
	ticker     *engine.FrameTicker
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	logger     *log.Logger

	left, right *Player
	ball        *Ball
	anim        Animation

	state     State
	wait      WaitPhase
	debounce  float64
	countdown float64
	loser     Side

	showPlayers bool
	showBall    bool
	showField   bool

	scoreLeft  int
	scoreRight int
	rounds     int
	elapsed    float64
	tickCount  uint64
}

// New creates a game in the attract state.
func New(opts Options) (*Game, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Input == nil {
		return nil, errors.New("pong: nil input source")
	}
	display, err := engine.NewDisplay(opts.Sink, opts.Config.Display.Gamma)
	if err != nil {
		return nil, err
	}
	clock := opts.Clock
	if clock == nil {
		clock = engine.NewSystemClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Game{
		cfg:        opts.Config,
		display:    display,
		buttons:    engine.NewButtons(opts.Input),
		ticker:     engine.NewFrameTicker(clock, opts.Config.Display.MaxFPS),
		difficulty: config.NewDifficultyManager(opts.Config.Difficulty),
		rng:        rand.New(rand.NewSource(opts.Seed)),
		logger:     logger,
	}
	g.Reset()
	return g, nil
}

// Reset recreates paddles and ball and returns to the attract screen.
func (g *Game) Reset() {
	phys := g.cfg.Physics
	coverage := g.cfg.PaddleCoverage()
	g.left = NewPlayer(LeftColumn, g.buttons.A, g.buttons.B, phys.PaddleSpeed, coverage)
	g.right = NewPlayer(RightColumn, g.buttons.X, g.buttons.Y, phys.PaddleSpeed, coverage)
	g.ball = NewBall(phys, g.rng)

	g.scoreLeft, g.scoreRight = 0, 0
	g.rounds = 0
	g.elapsed = 0
	g.tickCount = 0
	g.loser = SideNone
	g.enterInsertCoin()
}

// Run drives the game from its frame ticker until ctx is done or a tick fails.
func (g *Game) Run(ctx context.Context) error {
	g.logger.Info("game loop started", "max_fps", g.cfg.Display.MaxFPS, "gamma", g.display.Gamma())
	err := engine.Run(ctx, g.ticker, g.Tick)
	g.logger.Info("game loop stopped", "ticks", g.tickCount, "rounds", g.rounds, "error", err)
	return err
}

// Tick runs one pipeline step: transitions, physics, render, flush.
func (g *Game) Tick(dt float64) error {
	g.tickCount++
	g.elapsed += dt

	if g.debounce > 0 {
		g.debounce -= dt
		if g.debounce <= 0 {
			g.debounce = 0
		}
	}

	g.transition(dt)
	g.simulate(dt)
	return g.render()
}

// transition applies input and timer driven state changes.
func (g *Game) transition(dt float64) {
	switch g.state {
	case StateInsertCoin:
		if g.gesture() {
			g.startCountdown()
		}
	case StateCountdown:
		g.countdown -= dt
		if g.countdown <= 0 {
			g.startRunning()
		}
	case StatePlayerScored:
		if g.gesture() {
			g.enterInsertCoin()
		}
	}
}

// gesture advances a press-then-release wait and reports its completion.
// Input is ignored while the debounce window is open.
func (g *Game) gesture() bool {
	if g.debounce > 0 {
		return false
	}
	switch g.wait {
	case WaitAwaitingPress:
		if g.buttons.AnyPressed() {
			g.setWait(WaitAwaitingRelease)
		}
	case WaitAwaitingRelease:
		if g.buttons.AllReleased() {
			return true
		}
	}
	return false
}

func (g *Game) simulate(dt float64) {
	g.anim.Update(dt)

	switch g.state {
	case StateCountdown:
		g.left.Update(dt)
		g.right.Update(dt)
	case StateRunning:
		g.left.Update(dt)
		g.right.Update(dt)
		g.ball.Update(dt, g.left, g.right)
		if side := g.ball.Exited(); side != SideNone {
			g.playerScored(side)
		}
	}
}

func (g *Game) render() error {
	g.display.Clear()

	if err := g.anim.Draw(g.display); err != nil {
		return err
	}
	if g.showPlayers {
		if err := g.left.Draw(g.display); err != nil {
			return err
		}
		if err := g.right.Draw(g.display); err != nil {
			return err
		}
	}
	if g.showBall {
		if err := g.ball.Draw(g.display); err != nil {
			return err
		}
	}
	if g.showField {
		if err := g.drawField(); err != nil {
			return err
		}
	}
	return g.display.Show()
}

// drawField marks the center line on even rows. On the attract screen the
// markers pulse.
func (g *Game) drawField() error {
	level := core.LevelDim
	if g.state == StateInsertCoin {
		phase := 0.5 + 0.5*math.Sin(2*math.Pi*attractPulse*g.elapsed)
		level = core.LevelDim + uint8(math.Round(float64(core.LevelHalf-core.LevelDim)*phase))
	}
	x := g.display.Width() / 2
	for y := 0; y < g.display.Height(); y += 2 {
		if err := plot(g.display, x, y, level); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) setWait(w WaitPhase) {
	g.wait = w
	g.debounce = g.cfg.Gameplay.Debounce
}

func (g *Game) setState(s State) {
	from := g.state
	g.state = s
	if from != s {
		g.logger.Debug("state changed", append([]any{"from", from.String()}, g.Snapshot().KeyVals()...)...)
	}
}

func (g *Game) enterInsertCoin() {
	g.anim = Animation{}
	g.showPlayers, g.showBall = false, false
	g.showField = true
	g.setWait(WaitAwaitingPress)
	g.setState(StateInsertCoin)
}

func (g *Game) startCountdown() {
	g.left.Reset()
	g.right.Reset()
	g.anim = NewCountdown(g.cfg.Gameplay.CountdownSpeed)
	g.countdown = g.cfg.Gameplay.Countdown
	g.showPlayers = true
	g.showBall, g.showField = false, false
	g.setWait(WaitIdle)
	g.setState(StateCountdown)
}

func (g *Game) startRunning() {
	g.anim = Animation{}
	g.ball.Reset(g.ServeSpeed())
	g.showPlayers, g.showBall, g.showField = true, true, true
	g.setState(StateRunning)
}

func (g *Game) playerScored(loser Side) {
	g.loser = loser
	if loser == SideLeft {
		g.scoreRight++
	} else {
		g.scoreLeft++
	}
	g.rounds++
	g.anim = NewScore(loser == SideLeft, g.cfg.Gameplay.ScorePeriod)
	g.showPlayers, g.showBall, g.showField = false, false, false
	g.setWait(WaitAwaitingPress)
	g.setState(StatePlayerScored)
	g.logger.Info("point scored", "loser", loser.String(), "left", g.scoreLeft, "right", g.scoreRight)
}

// ServeSpeed returns the ball speed for the next serve.
func (g *Game) ServeSpeed() float64 {
	return g.difficulty.Speed(g.cfg.Physics.BallSpeed, g.rounds, g.elapsed)
}

// State returns the current phase.
func (g *Game) State() State {
	return g.state
}

// Wait returns the current gesture phase.
func (g *Game) Wait() WaitPhase {
	return g.wait
}

// Loser returns the side that missed last.
func (g *Game) Loser() Side {
	return g.loser
}

// Score returns the points of the left and right player.
func (g *Game) Score() (left, right int) {
	return g.scoreLeft, g.scoreRight
}

// Ball returns the ball.
func (g *Game) Ball() *Ball {
	return g.ball
}

// Players returns the left and right paddle.
func (g *Game) Players() (left, right *Player) {
	return g.left, g.right
}

// Display returns the gamma-correcting display the game draws on.
func (g *Game) Display() *engine.Display {
	return g.display
}

// Ticker returns the frame ticker used by Run.
func (g *Game) Ticker() *engine.FrameTicker {
	return g.ticker
}
