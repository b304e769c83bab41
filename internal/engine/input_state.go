package engine

import (
	"sync"

	"github.com/vovakirdan/scroll-pong/internal/core"
)

// InputState is an InputSource whose buttons are set programmatically.
// It is safe to drive from a goroutine other than the game loop.
type InputState struct {
	mu      sync.RWMutex
	pressed [core.NumButtons]bool
}

// NewInputState creates an input source with every button released.
func NewInputState() *InputState {
	return &InputState{}
}

// IsPressed reports the stored state of id.
func (s *InputState) IsPressed(id core.ButtonID) bool {
	if !id.Valid() {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pressed[id]
}

// Set stores the state of id. Unknown ids are ignored.
func (s *InputState) Set(id core.ButtonID, pressed bool) {
	if !id.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed[id] = pressed
}

// Press holds the given buttons.
func (s *InputState) Press(ids ...core.ButtonID) {
	for _, id := range ids {
		s.Set(id, true)
	}
}

// Release lets go of the given buttons.
func (s *InputState) Release(ids ...core.ButtonID) {
	for _, id := range ids {
		s.Set(id, false)
	}
}

// ReleaseAll lets go of every button.
func (s *InputState) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed = [core.NumButtons]bool{}
}
