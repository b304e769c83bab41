package core

// ButtonID identifies one of the four Scroll Pack buttons.
// Values match the BUTTON_A..BUTTON_Y constants of the device driver.
type ButtonID int

const (
	ButtonA ButtonID = iota // Player 1 up
	ButtonB                 // Player 1 down
	ButtonX                 // Player 2 up
	ButtonY                 // Player 2 down
)

// NumButtons is the number of physical buttons.
const NumButtons = 4

// AllButtons lists every button in id order.
var AllButtons = [NumButtons]ButtonID{ButtonA, ButtonB, ButtonX, ButtonY}

// String returns the silkscreen label of the button.
func (b ButtonID) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonX:
		return "X"
	case ButtonY:
		return "Y"
	default:
		return "Unknown"
	}
}

// Valid reports whether b names a physical button.
func (b ButtonID) Valid() bool {
	return b >= ButtonA && b <= ButtonY
}
