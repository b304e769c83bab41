package tui

import (
	"sync"
	"time"

	"github.com/vovakirdan/scroll-pong/internal/core"
)

// DefaultKeyHold covers the gap between a key press and the terminal's
// first auto-repeat.
const DefaultKeyHold = 500 * time.Millisecond

// HeldInput is an InputSource fed by key presses. Terminals report no
// key releases, so a button counts as held until hold has passed since its
// last press or auto-repeat.
type HeldInput struct {
	mu      sync.Mutex
	hold    time.Duration
	until   [core.NumButtons]time.Time
	nowFunc func() time.Time
}

// NewHeldInput creates an input source with the given hold window.
func NewHeldInput(hold time.Duration) *HeldInput {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	return &HeldInput{hold: hold, nowFunc: time.Now}
}

// Press marks id held for another hold window.
func (h *HeldInput) Press(id core.ButtonID) {
	if !id.Valid() {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.until[id] = h.nowFunc().Add(h.hold)
}

// ReleaseAll drops every held button.
func (h *HeldInput) ReleaseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.until = [core.NumButtons]time.Time{}
}

// IsPressed reports whether id was pressed within the hold window.
func (h *HeldInput) IsPressed(id core.ButtonID) bool {
	if !id.Valid() {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.nowFunc().Before(h.until[id])
}
