package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/scroll-pong/internal/core"
	"github.com/vovakirdan/scroll-pong/internal/engine"
	"github.com/vovakirdan/scroll-pong/internal/games/pong"
)

var (
	flagFrames int
	flagCoin   bool
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Simulate frames without a UI",
	Long: `Run the game on a simulated clock with no terminal UI, then print the
final grid and state. Time advances by exactly one frame interval per frame,
so runs with the same --seed are identical.

With --coin, button A is held for the first half second, which inserts a coin
and starts a countdown. Nobody moves the paddles after that.

Examples:
  scrollpong headless --frames 60
  scrollpong headless --frames 600 --coin --seed 7`,
	Args: cobra.NoArgs,
	RunE: runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&flagFrames, "frames", 60, "Number of frames to simulate")
	headlessCmd.Flags().BoolVar(&flagCoin, "coin", false, "Insert a coin on the first frames")
}

// coinInput holds button A until a frame count is reached.
type coinInput struct {
	frame *int
	until int
}

func (c coinInput) IsPressed(id core.ButtonID) bool {
	return id == core.ButtonA && *c.frame < c.until
}

// runFrames drives game through n frames of its own ticker. onFrame, if set,
// sees each frame index before that frame's tick.
func runFrames(ctx context.Context, game *pong.Game, n int, onFrame func(int)) error {
	if n <= 0 {
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frame := 0
	err := engine.Run(ctx, game.Ticker(), func(dt float64) error {
		if onFrame != nil {
			onFrame(frame)
		}
		if err := game.Tick(dt); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		frame++
		if frame == n {
			cancel()
		}
		return nil
	})
	if frame == n && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// printGrid writes the grid inside a border, one line per row.
func printGrid(w io.Writer, grid *core.Grid) error {
	edge := "+" + strings.Repeat("-", grid.Width()) + "+\n"
	var sb strings.Builder
	sb.WriteString(edge)
	for y := 0; y < grid.Height(); y++ {
		sb.WriteString("|" + grid.Row(y) + "|\n")
	}
	sb.WriteString(edge)
	_, err := io.WriteString(w, sb.String())
	return err
}

func runHeadless(cmd *cobra.Command, _ []string) error {
	if flagFrames < 0 {
		return errors.New("--frames must not be negative")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Display.MaxFPS <= 0 {
		// The simulated clock only advances by sleeping.
		cfg.Display.MaxFPS = 60
	}

	logger, closeLog, err := newLogger("scrollpong", false)
	if err != nil {
		return err
	}
	defer closeLog()

	frame := 0
	input := coinInput{frame: &frame}
	if flagCoin {
		input.until = int(cfg.Display.MaxFPS / 2)
	}

	grid := core.NewGrid()
	clock := engine.NewManualClock(0)
	game, err := pong.New(pong.Options{
		Config: cfg,
		Sink:   grid,
		Input:  input,
		Clock:  clock,
		Seed:   seed(),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	if err := runFrames(cmd.Context(), game, flagFrames, func(i int) { frame = i }); err != nil {
		return err
	}

	snap := game.Snapshot()
	left, right := game.Score()
	out := cmd.OutOrStdout()
	if err := printGrid(out, grid); err != nil {
		return err
	}
	fmt.Fprintf(out, "frames=%d shown=%d simulated=%.3fs state=%s score=%d:%d hash=%016x\n",
		flagFrames, grid.Shown(), float64(clock.NowUS())/1e6, snap.State, left, right, snap.Hash())
	logger.Debug("headless run finished", snap.KeyVals()...)
	return nil
}
