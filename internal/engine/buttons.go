package engine

import "github.com/vovakirdan/scroll-pong/internal/core"

// InputSource reports the instantaneous state of the physical buttons.
type InputSource interface {
	IsPressed(id core.ButtonID) bool
}

// Button is a read-only handle on one input channel.
type Button struct {
	src InputSource
	id  core.ButtonID
}

// NewButton binds id on src.
func NewButton(src InputSource, id core.ButtonID) Button {
	return Button{src: src, id: id}
}

// ID returns the bound button.
func (b Button) ID() core.ButtonID {
	return b.id
}

// IsPressed reports whether the button is currently held.
// An unbound Button is never pressed.
func (b Button) IsPressed() bool {
	if b.src == nil {
		return false
	}
	return b.src.IsPressed(b.id)
}

// Buttons groups the four Scroll Pack buttons. A and B sit on the left edge
// of the board, X and Y on the right.
type Buttons struct {
	A, B, X, Y Button
}

// NewButtons binds all four buttons on src.
func NewButtons(src InputSource) Buttons {
	return Buttons{
		A: NewButton(src, core.ButtonA),
		B: NewButton(src, core.ButtonB),
		X: NewButton(src, core.ButtonX),
		Y: NewButton(src, core.ButtonY),
	}
}

// All returns the buttons in id order.
func (b Buttons) All() [core.NumButtons]Button {
	return [core.NumButtons]Button{b.A, b.B, b.X, b.Y}
}

// AnyPressed reports whether at least one button is held.
func (b Buttons) AnyPressed() bool {
	for _, btn := range b.All() {
		if btn.IsPressed() {
			return true
		}
	}
	return false
}

// AllReleased reports whether no button is held.
func (b Buttons) AllReleased() bool {
	return !b.AnyPressed()
}
