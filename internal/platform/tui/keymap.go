package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/scroll-pong/internal/core"
)

// KeyMap binds terminal keys to the four Scroll Pack buttons.
type KeyMap struct {
	LeftUp    key.Binding
	LeftDown  key.Binding
	RightUp   key.Binding
	RightDown key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LeftUp, k.LeftDown, k.RightUp, k.RightDown, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LeftUp, k.LeftDown},
		{k.RightUp, k.RightDown},
		{k.Quit},
	}
}

// DefaultKeyMap returns default key bindings. The button letters work
// directly; w/s and the arrow keys are the usual two-player layout.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LeftUp: key.NewBinding(
			key.WithKeys("a", "w"),
			key.WithHelp("a/w", "left up"),
		),
		LeftDown: key.NewBinding(
			key.WithKeys("b", "s"),
			key.WithHelp("b/s", "left down"),
		),
		RightUp: key.NewBinding(
			key.WithKeys("x", "up"),
			key.WithHelp("x/↑", "right up"),
		),
		RightDown: key.NewBinding(
			key.WithKeys("y", "down"),
			key.WithHelp("y/↓", "right down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Button translates a key message to the button it presses.
func (k KeyMap) Button(msg tea.KeyMsg) (core.ButtonID, bool) {
	switch {
	case key.Matches(msg, k.LeftUp):
		return core.ButtonA, true
	case key.Matches(msg, k.LeftDown):
		return core.ButtonB, true
	case key.Matches(msg, k.RightUp):
		return core.ButtonX, true
	case key.Matches(msg, k.RightDown):
		return core.ButtonY, true
	}
	return 0, false
}

// IsQuit reports whether msg requests to quit.
func (k KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Quit)
}
