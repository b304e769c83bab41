package core

import (
	"errors"
	"strings"
	"testing"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid()

	if g.Width() != 17 {
		t.Errorf("Width() = %d, expected 17", g.Width())
	}
	if g.Height() != 7 {
		t.Errorf("Height() = %d, expected 7", g.Height())
	}

	// Check that it starts clear
	if g.Lit() != 0 {
		t.Errorf("New grid should be dark, %d cells lit", g.Lit())
	}
}

func TestGridSetPixel(t *testing.T) {
	g := NewGrid()

	// First pixel
	if err := g.SetPixel(0, 0, 192); err != nil {
		t.Fatalf("SetPixel(0, 0) failed: %v", err)
	}
	snap := g.Snapshot()
	if snap[0] != 192 {
		t.Errorf("first cell = %d, expected 192", snap[0])
	}

	// Last pixel
	if err := g.SetPixel(16, 6, 218); err != nil {
		t.Fatalf("SetPixel(16, 6) failed: %v", err)
	}
	snap = g.Snapshot()
	if snap[len(snap)-1] != 218 {
		t.Errorf("last cell = %d, expected 218", snap[len(snap)-1])
	}

	sum := 0
	for _, v := range snap {
		sum += int(v)
	}
	if sum != 410 {
		t.Errorf("sum of cells = %d, expected 410", sum)
	}
}

func TestGridSetPixelErrors(t *testing.T) {
	tests := []struct {
		x, y    int
		message string
	}{
		{-1, 0, "x=-1"},
		{0, -1, "y=-1"},
		{17, 0, "x=17"},
		{0, 7, "y=7"},
	}

	for _, tc := range tests {
		t.Run(tc.message, func(t *testing.T) {
			g := NewGrid()
			err := g.SetPixel(tc.x, tc.y, 192)
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange, got %v", err)
			}
			if !strings.HasSuffix(err.Error(), tc.message) {
				t.Errorf("error %q should end with %q", err.Error(), tc.message)
			}
			if g.Lit() != 0 {
				t.Error("failed SetPixel must not touch the buffer")
			}
		})
	}
}

func TestGridClearAndShow(t *testing.T) {
	g := NewGrid()
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			_ = g.SetPixel(x, y, 255)
		}
	}
	if g.Lit() != 17*7 {
		t.Fatalf("expected all cells lit, got %d", g.Lit())
	}

	g.Clear()
	if g.Lit() != 0 {
		t.Errorf("After Clear, %d cells still lit", g.Lit())
	}

	_ = g.Show()
	_ = g.Show()
	if g.Shown() != 2 {
		t.Errorf("Shown() = %d, expected 2", g.Shown())
	}
}

func TestGridSnapshotIsCopy(t *testing.T) {
	g := NewGrid()
	_ = g.SetPixel(3, 3, 10)
	snap := g.Snapshot()
	snap[3*17+3] = 99

	if g.Get(3, 3) != 10 {
		t.Error("modifying a snapshot must not change the grid")
	}
}

func TestGridLoad(t *testing.T) {
	g := NewGrid()
	frame := make([]uint8, 17*7)
	frame[5*17+2] = 77

	if err := g.Load(frame); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if g.Get(2, 5) != 77 {
		t.Errorf("Get(2, 5) = %d, expected 77", g.Get(2, 5))
	}

	if err := g.Load(make([]uint8, 3)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("short frame should fail with ErrOutOfRange, got %v", err)
	}
}

func TestBitmapLit(t *testing.T) {
	bitmap := []byte("^E^@>*\x14\x00A\x006\x086\x01]Q=")

	tests := []struct {
		name     string
		col, row int
		want     bool
	}{
		// These pairs differ if the image is mirrored or flipped
		{"col 2 top", 2, 0, false},
		{"col 2 second", 2, 1, true},
		{"col 1 top", 1, 0, true},
		{"col 1 second", 1, 1, false},
		{"col 5 top", 5, 0, false},
		{"col 5 second", 5, 1, true},
		{"before bitmap", -1, 0, false},
		{"past bitmap", 100, 1, false},
		{"below row 6", 0, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BitmapLit(bitmap, tt.col, tt.row); got != tt.want {
				t.Errorf("BitmapLit(%d, %d) = %v, expected %v", tt.col, tt.row, got, tt.want)
			}
		})
	}
}

func TestGridString(t *testing.T) {
	g := NewGrid()
	_ = g.SetPixel(0, 0, 255)

	lines := strings.Split(g.String(), "\n")
	if len(lines) != 7 {
		t.Fatalf("String() should have 7 lines, got %d", len(lines))
	}
	if []rune(lines[0])[0] != '█' {
		t.Errorf("full brightness should render as a full block, got %q", lines[0])
	}
	if g.Row(-1) != strings.Repeat(" ", 17) {
		t.Error("out of bounds row should be spaces")
	}
}

func TestGammaTable(t *testing.T) {
	linear := GammaTable(1)
	for v := range 256 {
		if linear[v] != uint8(v) {
			t.Fatalf("gamma 1 should be identity, lut[%d] = %d", v, linear[v])
		}
	}

	cubic := GammaTable(3)
	if cubic[0] != 0 || cubic[255] != 255 {
		t.Errorf("endpoints must be fixed, got %d and %d", cubic[0], cubic[255])
	}
	// round(255 * (128/255)^3) = 32
	if cubic[128] != 32 {
		t.Errorf("lut[128] = %d, expected 32", cubic[128])
	}
}

func TestShadeRune(t *testing.T) {
	if ShadeRune(0) != ' ' {
		t.Error("level 0 should be blank")
	}
	if ShadeRune(255) != '█' {
		t.Error("level 255 should be a full block")
	}
	if ShadeRune(1) == ' ' {
		t.Error("any non-zero level should be visible")
	}
}
