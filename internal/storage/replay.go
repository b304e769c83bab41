package storage

import (
	"context"
	"fmt"

	"github.com/vovakirdan/scroll-pong/internal/engine"
)

// Replay plays frames onto sink at their recorded pace scaled by speed.
// A speed of 0 or less plays as fast as possible.
func Replay(ctx context.Context, frames []Frame, sink engine.PixelSink, clock engine.Clock, speed float64) error {
	w, h := sink.Width(), sink.Height()
	start := clock.NowUS()

	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(f.Pixels) != w*h {
			return fmt.Errorf("storage: frame %d has %d pixels, expected %d", f.Seq, len(f.Pixels), w*h)
		}

		if speed > 0 {
			due := int64(float64(f.AtUS) / speed)
			if wait := due - clock.DiffUS(clock.NowUS(), start); wait > 0 {
				if err := clock.SleepUS(wait); err != nil {
					return err
				}
			}
		}

		sink.Clear()
		for i, level := range f.Pixels {
			if level == 0 {
				continue
			}
			if err := sink.SetPixel(i%w, i/w, level); err != nil {
				return err
			}
		}
		if err := sink.Show(); err != nil {
			return err
		}
	}
	return nil
}
