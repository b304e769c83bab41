package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/scroll-pong/internal/core"
	"github.com/vovakirdan/scroll-pong/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func frameWith(seq int, at int64, lit int) Frame {
	px := make([]byte, core.GridWidth*core.GridHeight)
	px[lit] = 255
	return Frame{Seq: seq, AtUS: at, Pixels: px}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSessionsAndFrames(t *testing.T) {
	store := openTestStore(t)

	id, err := store.CreateSession("first", core.GridWidth, core.GridHeight, 3)
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("session ID %q is not a UUID", id)
	}

	frames := []Frame{frameWith(0, 0, 0), frameWith(1, 16667, 5), frameWith(2, 33334, 118)}
	if err := store.AppendFrames(id, frames); err != nil {
		t.Fatalf("AppendFrames() failed: %v", err)
	}
	if err := store.AppendFrames(id, nil); err != nil {
		t.Fatalf("AppendFrames(nil) failed: %v", err)
	}

	got, err := store.Frames(id)
	if err != nil {
		t.Fatalf("Frames() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(got))
	}
	if got[1].AtUS != 16667 || got[1].Pixels[5] != 255 || got[2].Pixels[118] != 255 {
		t.Errorf("Frames not stored faithfully: %+v", got[1:])
	}

	sessions, err := store.Sessions(10)
	if err != nil {
		t.Fatalf("Sessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.ID != id || s.Label != "first" || s.Frames != 3 || s.Gamma != 3 || s.Width != core.GridWidth {
		t.Errorf("Unexpected session: %+v", s)
	}
	if s.Duration.Microseconds() != 33334 {
		t.Errorf("Duration = %v, expected 33.334ms", s.Duration)
	}
}

func TestStoreDuplicateFrameRejected(t *testing.T) {
	store := openTestStore(t)
	id, err := store.CreateSession("", core.GridWidth, core.GridHeight, 1)
	if err != nil {
		t.Fatal(err)
	}

	err = store.AppendFrames(id, []Frame{frameWith(0, 0, 0), frameWith(0, 1, 1)})
	if err == nil {
		t.Fatal("Expected duplicate sequence to fail")
	}
	// The failed batch is rolled back as a whole.
	frames, _ := store.Frames(id)
	if len(frames) != 0 {
		t.Errorf("Expected rollback, found %d frames", len(frames))
	}
}

func TestStoreFindSession(t *testing.T) {
	store := openTestStore(t)
	id, err := store.CreateSession("a", core.GridWidth, core.GridHeight, 1)
	if err != nil {
		t.Fatal(err)
	}

	s, err := store.FindSession(id[:8])
	if err != nil {
		t.Fatalf("FindSession(prefix) failed: %v", err)
	}
	if s.ID != id {
		t.Errorf("FindSession() = %s, expected %s", s.ID, id)
	}
	if s.Frames != 0 {
		t.Errorf("Frames = %d for an empty session", s.Frames)
	}

	if _, err := store.FindSession("zzzz"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("FindSession(unknown) = %v, expected ErrSessionNotFound", err)
	}
	if _, err := store.FindSession(""); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("FindSession(\"\") = %v, expected ErrSessionNotFound", err)
	}
}

func TestStoreFindSessionLiteralPrefix(t *testing.T) {
	store := openTestStore(t)
	id, err := store.CreateSession("a", core.GridWidth, core.GridHeight, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Pattern characters must not match as wildcards.
	for _, prefix := range []string{"%", "_", "%%", id[:2] + "%", id[:1] + "_"} {
		if _, err := store.FindSession(prefix); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("FindSession(%q) = %v, expected ErrSessionNotFound", prefix, err)
		}
	}

	s, err := store.FindSession(id)
	if err != nil {
		t.Fatalf("FindSession(full id) failed: %v", err)
	}
	if s.ID != id {
		t.Errorf("FindSession() = %s, expected %s", s.ID, id)
	}
}

func TestStoreSessionsLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := store.CreateSession("s", core.GridWidth, core.GridHeight, 1); err != nil {
			t.Fatal(err)
		}
	}

	sessions, err := store.Sessions(3)
	if err != nil {
		t.Fatalf("Sessions() failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Errorf("Expected 3 sessions with limit, got %d", len(sessions))
	}
}

func TestStoreDeleteSession(t *testing.T) {
	store := openTestStore(t)
	keep, _ := store.CreateSession("keep", core.GridWidth, core.GridHeight, 1)
	drop, _ := store.CreateSession("drop", core.GridWidth, core.GridHeight, 1)
	store.AppendFrames(keep, []Frame{frameWith(0, 0, 0)})
	store.AppendFrames(drop, []Frame{frameWith(0, 0, 0), frameWith(1, 10, 1)})

	if err := store.DeleteSession(drop); err != nil {
		t.Fatalf("DeleteSession() failed: %v", err)
	}
	if frames, _ := store.Frames(drop); len(frames) != 0 {
		t.Errorf("Expected frames of deleted session to be gone, got %d", len(frames))
	}
	if frames, _ := store.Frames(keep); len(frames) != 1 {
		t.Errorf("Other sessions should not be affected")
	}
	if err := store.DeleteSession(drop); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second DeleteSession() = %v, expected ErrSessionNotFound", err)
	}
}

func TestRecorder(t *testing.T) {
	store := openTestStore(t)
	clock := engine.NewManualClock(1_000_000)
	next := core.NewGrid()

	rec, err := NewRecorder(store, next, clock, RecorderOptions{Label: "test", Gamma: 3, BatchSize: 2})
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}

	for i := range 3 {
		rec.Clear()
		if err := rec.SetPixel(i, 1, 200); err != nil {
			t.Fatalf("SetPixel() failed: %v", err)
		}
		if err := rec.Show(); err != nil {
			t.Fatalf("Show() failed: %v", err)
		}
		clock.Advance(20_000)
	}

	// Frames are forwarded immediately.
	if next.Shown() != 3 || next.Get(2, 1) != 200 || next.Get(0, 1) != 0 {
		t.Errorf("wrapped sink not updated: shown=%d\n%s", next.Shown(), next)
	}

	// One full batch committed, one frame pending.
	frames, _ := store.Frames(rec.SessionID())
	if len(frames) != 2 {
		t.Errorf("Expected 2 committed frames before Close, got %d", len(frames))
	}

	if err := rec.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	frames, err = store.Frames(rec.SessionID())
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames after Close, got %d", len(frames))
	}
	for i, f := range frames {
		if f.AtUS != int64(i)*20_000 {
			t.Errorf("frame %d at %dus, expected %d", i, f.AtUS, i*20_000)
		}
		if f.Pixels[core.GridWidth+i] != 200 {
			t.Errorf("frame %d missing its pixel", i)
		}
	}

	// After Close frames still reach the sink.
	if err := rec.Show(); err != nil {
		t.Fatal(err)
	}
	if next.Shown() != 4 {
		t.Errorf("Shown() = %d after Close, expected 4", next.Shown())
	}
}

func TestRecorderRejectsInvalidPixels(t *testing.T) {
	store := openTestStore(t)
	rec, err := NewRecorder(store, core.NewGrid(), engine.NewManualClock(0), RecorderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.SetPixel(17, 0, 1); !errors.Is(err, core.ErrOutOfRange) {
		t.Errorf("SetPixel(17,0) = %v, expected ErrOutOfRange", err)
	}

	if _, err := NewRecorder(nil, core.NewGrid(), engine.NewManualClock(0), RecorderOptions{}); err == nil {
		t.Error("Expected error without a store")
	}
}

func TestReplay(t *testing.T) {
	frames := []Frame{frameWith(0, 0, 0), frameWith(1, 50_000, 1), frameWith(2, 100_000, 2)}
	sink := core.NewGrid()
	clock := engine.NewManualClock(0)

	if err := Replay(context.Background(), frames, sink, clock, 2); err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if sink.Shown() != 3 {
		t.Errorf("Shown() = %d, expected 3", sink.Shown())
	}
	if sink.Get(2, 0) != 255 || sink.Get(0, 0) != 0 {
		t.Errorf("last frame not shown:\n%s", sink)
	}
	sleeps := clock.Sleeps()
	if len(sleeps) != 2 || sleeps[0] != 25_000 || sleeps[1] != 25_000 {
		t.Errorf("sleeps = %v, expected two 25ms waits at double speed", sleeps)
	}

	// Unpaced replay never sleeps.
	clock = engine.NewManualClock(0)
	if err := Replay(context.Background(), frames, core.NewGrid(), clock, 0); err != nil {
		t.Fatal(err)
	}
	if len(clock.Sleeps()) != 0 {
		t.Errorf("unpaced replay slept: %v", clock.Sleeps())
	}
}

func TestReplayErrors(t *testing.T) {
	bad := []Frame{{Seq: 0, Pixels: []byte{1, 2, 3}}}
	err := Replay(context.Background(), bad, core.NewGrid(), engine.NewManualClock(0), 1)
	if err == nil || !strings.Contains(err.Error(), "pixels") {
		t.Errorf("Replay(short frame) = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Replay(ctx, []Frame{frameWith(0, 0, 0)}, core.NewGrid(), engine.NewManualClock(0), 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Replay(canceled) = %v, expected context.Canceled", err)
	}
}
