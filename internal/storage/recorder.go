package storage

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/scroll-pong/internal/core"
	"github.com/vovakirdan/scroll-pong/internal/engine"
)

// DefaultBatchSize is the number of frames buffered before a commit.
const DefaultBatchSize = 60

// Recorder is a PixelSink that tees every flushed frame into a Store
// before forwarding it to the next sink.
type Recorder struct {
	next      engine.PixelSink
	grid      *core.Grid
	store     *Store
	clock     engine.Clock
	logger    *log.Logger
	sessionID string

	batch     []Frame
	batchSize int
	seq       int
	start     uint64
	closed    bool
}

// RecorderOptions configures a Recorder.
type RecorderOptions struct {
	Label     string
	Gamma     float64 // Gamma applied upstream, stored for replay
	BatchSize int
	Logger    *log.Logger
}

// NewRecorder starts a new session in store and wraps next.
func NewRecorder(store *Store, next engine.PixelSink, clock engine.Clock, opts RecorderOptions) (*Recorder, error) {
	if store == nil || next == nil || clock == nil {
		return nil, errors.New("storage: recorder needs a store, a sink and a clock")
	}
	id, err := store.CreateSession(opts.Label, next.Width(), next.Height(), opts.Gamma)
	if err != nil {
		return nil, err
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger.Debug("recording started", "session", id)

	return &Recorder{
		next:      next,
		grid:      core.NewGrid(),
		store:     store,
		clock:     clock,
		logger:    logger,
		sessionID: id,
		batchSize: batchSize,
	}, nil
}

// SessionID returns the ID of the recording.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Width returns the wrapped sink width.
func (r *Recorder) Width() int {
	return r.next.Width()
}

// Height returns the wrapped sink height.
func (r *Recorder) Height() int {
	return r.next.Height()
}

// SetPixel stores the level in the recorded frame and the wrapped sink.
func (r *Recorder) SetPixel(x, y int, level uint8) error {
	if err := r.next.SetPixel(x, y, level); err != nil {
		return err
	}
	return r.grid.SetPixel(x, y, level)
}

// Clear clears both buffers.
func (r *Recorder) Clear() {
	r.grid.Clear()
	r.next.Clear()
}

// Show records the frame, committing a batch when it is full, and then
// flushes the wrapped sink.
func (r *Recorder) Show() error {
	if r.closed {
		return r.next.Show()
	}
	now := r.clock.NowUS()
	if r.seq == 0 {
		r.start = now
	}
	r.batch = append(r.batch, Frame{
		Seq:    r.seq,
		AtUS:   r.clock.DiffUS(now, r.start),
		Pixels: r.grid.Snapshot(),
	})
	r.seq++

	if len(r.batch) >= r.batchSize {
		if err := r.Flush(); err != nil {
			return err
		}
	}
	return r.next.Show()
}

// Flush commits buffered frames.
func (r *Recorder) Flush() error {
	if len(r.batch) == 0 {
		return nil
	}
	if err := r.store.AppendFrames(r.sessionID, r.batch); err != nil {
		return fmt.Errorf("storage: recording %s: %w", r.sessionID, err)
	}
	r.logger.Debug("frames committed", "session", r.sessionID, "count", len(r.batch), "total", r.seq)
	r.batch = r.batch[:0]
	return nil
}

// Close flushes pending frames. Later frames are forwarded but not recorded.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	err := r.Flush()
	r.logger.Info("recording saved", "session", r.sessionID, "frames", r.seq)
	return err
}
