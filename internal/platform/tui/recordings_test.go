package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/scroll-pong/internal/core"
	"github.com/vovakirdan/scroll-pong/internal/storage"
)

func openRecordings(t *testing.T, labels ...string) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "rec.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, label := range labels {
		if _, err := store.CreateSession(label, core.GridWidth, core.GridHeight, 3); err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
	}
	return store
}

func TestSessionRow(t *testing.T) {
	row := SessionRow(storage.Session{
		ID:        "0123456789abcdef",
		Frames:    42,
		Duration:  1234 * time.Millisecond,
		StartedAt: time.Now(),
	})

	if row[0] != "01234567" {
		t.Errorf("ID column = %q, want 01234567", row[0])
	}
	if row[1] != "-" {
		t.Errorf("label column = %q, want -", row[1])
	}
	if row[3] != "42" {
		t.Errorf("frames column = %q, want 42", row[3])
	}
	if row[4] != "1.2s" {
		t.Errorf("length column = %q, want 1.2s", row[4])
	}
}

func TestRecordingsSelect(t *testing.T) {
	store := openRecordings(t, "old", "new")
	m := NewRecordingsModel(store, 80, 24)

	if len(m.sessions) != 2 {
		t.Fatalf("loaded %d sessions, want 2", len(m.sessions))
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(RecordingsModel)
	if cmd == nil {
		t.Fatal("enter should quit the browser")
	}

	sel, ok := m.Selected()
	if !ok {
		t.Fatal("enter should select a session")
	}
	if sel.Label != "new" {
		t.Errorf("selected %q, want the newest session", sel.Label)
	}
}

func TestRecordingsDelete(t *testing.T) {
	store := openRecordings(t, "a", "b")
	m := NewRecordingsModel(store, 80, 24)

	next, _ := m.Update(runeKey('d'))
	m = next.(RecordingsModel)

	if len(m.sessions) != 1 {
		t.Fatalf("%d sessions after delete, want 1", len(m.sessions))
	}
	if m.sessions[0].Label != "a" {
		t.Errorf("remaining session %q, want a", m.sessions[0].Label)
	}

	all, err := store.Sessions(0)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("store holds %d sessions, want 1", len(all))
	}
}

func TestRecordingsQuit(t *testing.T) {
	m := NewRecordingsModel(nil, 80, 24)

	next, cmd := m.Update(runeKey('q'))
	m = next.(RecordingsModel)
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := m.Selected(); ok {
		t.Error("quitting should not select anything")
	}
}

func TestRecordingsEmptyView(t *testing.T) {
	m := NewRecordingsModel(nil, 80, 24)
	if m.View() == "" {
		t.Error("empty browser should still render")
	}
}
