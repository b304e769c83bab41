package engine

import "context"

// TickFunc advances a game by dt seconds. A returned error stops Run.
type TickFunc func(dt float64) error

// Run drives tick from ticker until ctx is done or tick fails.
// Cancellation is observed between ticks only; the sole blocking point is
// the ticker's bounded frame delay.
func Run(ctx context.Context, ticker *FrameTicker, tick TickFunc) error {
	last, err := ticker.WaitUS()
	if err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		now, err := ticker.WaitUS()
		if err != nil {
			return err
		}
		if err := tick(ticker.Elapsed(last, now)); err != nil {
			return err
		}
		last = now
	}
}
