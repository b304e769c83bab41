package core

import (
	"errors"
	"fmt"
	"strings"
)

// Fixed dimensions of the Scroll Pack LED matrix.
const (
	GridWidth  = 17
	GridHeight = 7
)

// ErrOutOfRange is returned when a coordinate or brightness level falls
// outside the grid or the 0-255 range.
var ErrOutOfRange = errors.New("out of range")

// Grid is a 17x7 brightness buffer indexed row-major as y*GridWidth+x.
// It implements the pixel sink contract so games can draw into it directly
// in tests and headless runs, while front ends embed it and flush snapshots.
type Grid struct {
	width  int
	height int
	pixels []uint8
	shown  int
}

// NewGrid creates a cleared grid with the fixed display dimensions.
func NewGrid() *Grid {
	return &Grid{
		width:  GridWidth,
		height: GridHeight,
		pixels: make([]uint8, GridWidth*GridHeight),
	}
}

// Width returns the grid width in cells.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in cells.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// SetPixel stores a brightness level. Coordinates outside the grid fail
// with ErrOutOfRange and leave the buffer untouched.
func (g *Grid) SetPixel(x, y int, level uint8) error {
	if x < 0 || x >= g.width {
		return fmt.Errorf("%w: x=%d", ErrOutOfRange, x)
	}
	if y < 0 || y >= g.height {
		return fmt.Errorf("%w: y=%d", ErrOutOfRange, y)
	}
	g.pixels[y*g.width+x] = level
	return nil
}

// Get returns the level at (x, y), or 0 for out-of-bounds coordinates.
func (g *Grid) Get(x, y int) uint8 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.pixels[y*g.width+x]
}

// Clear sets every cell to 0.
func (g *Grid) Clear() {
	clear(g.pixels)
}

// Show counts a flush. Front ends wrap Grid and override this.
func (g *Grid) Show() error {
	g.shown++
	return nil
}

// Shown returns how many times Show has been called.
func (g *Grid) Shown() int {
	return g.shown
}

// Snapshot returns a copy of the buffer in row-major order.
func (g *Grid) Snapshot() []uint8 {
	out := make([]uint8, len(g.pixels))
	copy(out, g.pixels)
	return out
}

// Load replaces the buffer with a row-major frame of the same size.
func (g *Grid) Load(frame []uint8) error {
	if len(frame) != len(g.pixels) {
		return fmt.Errorf("%w: frame size=%d", ErrOutOfRange, len(frame))
	}
	copy(g.pixels, frame)
	return nil
}

// Lit returns the number of non-zero cells.
func (g *Grid) Lit() int {
	n := 0
	for _, v := range g.pixels {
		if v != 0 {
			n++
		}
	}
	return n
}

// BitmapLit reports whether column col of a 1D bitmap has row bit set.
// Each byte holds one 7-row column with bit 0 at the top. Columns outside
// the bitmap are dark.
func BitmapLit(bitmap []byte, col, row int) bool {
	if col < 0 || col >= len(bitmap) || row < 0 || row > 6 {
		return false
	}
	return bitmap[col]&(1<<row) != 0
}

// String renders the buffer using shade characters, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.width*g.height*3 + g.height)

	for y := 0; y < g.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < g.width; x++ {
			sb.WriteRune(ShadeRune(g.pixels[y*g.width+x]))
		}
	}
	return sb.String()
}

// Row returns row y rendered with shade characters.
func (g *Grid) Row(y int) string {
	if y < 0 || y >= g.height {
		return strings.Repeat(" ", g.width)
	}
	var sb strings.Builder
	for x := 0; x < g.width; x++ {
		sb.WriteRune(ShadeRune(g.pixels[y*g.width+x]))
	}
	return sb.String()
}
