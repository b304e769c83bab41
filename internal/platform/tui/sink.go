package tui

import (
	"sync"

	"github.com/vovakirdan/scroll-pong/internal/core"
)

// FrameSink is a PixelSink that hands each flushed frame to the UI
// goroutine. Only the latest frame is kept: a slow UI skips frames instead
// of stalling the game loop.
type FrameSink struct {
	*core.Grid

	frames chan []uint8
	once   sync.Once
	mu     sync.Mutex
	err    error
}

// NewFrameSink creates a sink with a one-slot frame channel.
func NewFrameSink() *FrameSink {
	return &FrameSink{
		Grid:   core.NewGrid(),
		frames: make(chan []uint8, 1),
	}
}

// Show publishes a snapshot, replacing an unread one.
func (s *FrameSink) Show() error {
	if err := s.Grid.Show(); err != nil {
		return err
	}
	frame := s.Snapshot()
	for {
		select {
		case s.frames <- frame:
			return nil
		default:
		}
		select {
		case <-s.frames:
		default:
		}
	}
}

// Frames returns the channel frames are published on. It is closed by Close.
func (s *FrameSink) Frames() <-chan []uint8 {
	return s.frames
}

// Close ends the stream, recording why the producer stopped. Show must not
// be called afterwards.
func (s *FrameSink) Close(err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.frames)
	})
}

// Err returns the error passed to Close.
func (s *FrameSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
