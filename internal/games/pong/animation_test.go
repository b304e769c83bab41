package pong

import (
	"testing"

	"github.com/vovakirdan/scroll-pong/internal/core"
)

func TestCountdownSteps(t *testing.T) {
	a := NewCountdown(1)
	want := []struct {
		row   int
		level uint8
	}{
		{0, core.LevelFull},
		{2, core.LevelHalf},
		{4, core.LevelFull},
		{6, core.LevelHalf},
		{1, core.LevelFull},
		{3, core.LevelHalf},
		{5, core.LevelFull},
		{0, core.LevelHalf},
	}

	for step, w := range want {
		x, y, level := a.CountdownCell(core.GridWidth, core.GridHeight)
		if x != core.GridWidth/2 || y != w.row || level != w.level {
			t.Errorf("step %d: cell (%d,%d)=%d, expected (%d,%d)=%d", step, x, y, level, core.GridWidth/2, w.row, w.level)
		}
		a.Update(1)
	}
}

func TestCountdownDraw(t *testing.T) {
	d, grid := newTestDisplay(t)
	a := NewCountdown(7)
	a.Update(0.3) // step 2

	if err := a.Draw(d); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
	if grid.Lit() != 1 || grid.Get(8, 4) != core.LevelFull {
		t.Errorf("expected only (8,4) lit, got\n%s", grid)
	}
}

func TestScoreOffsetCycles(t *testing.T) {
	a := NewScore(false, 0.1)
	a.Update(0.05)
	if a.Offset != 0 {
		t.Errorf("Offset = %d before a full period", a.Offset)
	}
	a.Update(0.2)
	if a.Offset != 2 {
		t.Errorf("Offset = %d, expected 2", a.Offset)
	}
	a.Update(0.1)
	if a.Offset != 0 {
		t.Errorf("Offset = %d, expected wrap to 0", a.Offset)
	}
}

func TestScoreDraw(t *testing.T) {
	d, grid := newTestDisplay(t)
	a := NewScore(false, 0.1)
	if err := a.Draw(d); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}

	// Column 0 is the chevron's outer column, rows 1 and 5.
	if grid.Get(0, 1) != core.LevelHalf || grid.Get(0, 5) != core.LevelHalf {
		t.Errorf("column 0 = %d/%d, expected half brightness", grid.Get(0, 1), grid.Get(0, 5))
	}
	// Column 5 repeats the tip, row 3, on an even checkerboard cell.
	if grid.Get(5, 3) != core.LevelFull {
		t.Errorf("(5,3) = %d, expected full", grid.Get(5, 3))
	}
	if grid.Get(0, 3) != 0 {
		t.Errorf("(0,3) should be dark")
	}

	rotated := NewScore(true, 0.1)
	d2, grid2 := newTestDisplay(t)
	if err := rotated.Draw(d2); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
	for x := range core.GridWidth {
		for y := range core.GridHeight {
			if grid2.Get(core.GridWidth-1-x, core.GridHeight-1-y) != grid.Get(x, y) {
				t.Fatalf("rotated frame is not a mirror at (%d,%d)", x, y)
			}
		}
	}
}

func TestScoreDrawShiftsWithOffset(t *testing.T) {
	d, grid := newTestDisplay(t)
	a := NewScore(false, 0.1)
	a.Update(0.1)
	if err := a.Draw(d); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
	// With offset 1 column 0 shows the middle glyph column.
	if grid.Get(0, 2) == 0 || grid.Get(0, 4) == 0 {
		t.Errorf("column 0 should show rows 2 and 4:\n%s", grid)
	}
}

func TestAnimationNoneDrawsNothing(t *testing.T) {
	d, grid := newTestDisplay(t)
	var a Animation
	a.Update(1)
	if a.Active() {
		t.Error("zero Animation should be inactive")
	}
	if err := a.Draw(d); err != nil {
		t.Fatal(err)
	}
	if grid.Lit() != 0 {
		t.Errorf("inactive animation lit %d cells", grid.Lit())
	}
}
