package outline

import "testing"

func TestConvertTriangle(t *testing.T) {
	w := &scriptWalker{
		ops: []op{
			moveTo(0, 0),
			lineTo(10, 0),
			lineTo(10, 10),
			lineTo(0, 0),
		},
		bbox: Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
	}

	o, err := Convert(w)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if o.CellCountX == 0 || o.CellCountY == 0 {
		t.Fatalf("a simple triangle should always find a fitting grid")
	}
	if len(o.Cells) != o.CellCountX*o.CellCountY {
		t.Errorf("cells length = %d, want %d", len(o.Cells), o.CellCountX*o.CellCountY)
	}

	filled := false
	for _, c := range o.Cells {
		if c != 0 {
			filled = true
			break
		}
	}
	if !filled {
		t.Errorf("a triangle covering the whole grid should mark at least one non-empty cell")
	}
}

// TestConvertOShapeMarksHoleEmpty runs the full pipeline on a
// two-contour shape with a hole and checks that the hole is not marked
// filled while a cell in the ring is non-empty. The 19-point outline
// gets a 4x4 grid of 2.5-unit cells, so the hole's center (5,5) falls in
// cell [5,7.5]x[5,7.5], which the inner contour's corner at (7,7) passes
// through: that cell holds only the inner contour's two segments at
// point indices 14 and 16 (slot A, start 7, length 2), not the filled
// sentinel.
func TestConvertOShapeMarksHoleEmpty(t *testing.T) {
	w := &scriptWalker{
		ops: []op{
			moveTo(0, 0), lineTo(10, 0), lineTo(10, 10), lineTo(0, 10), lineTo(0, 0),
			moveTo(3, 3), lineTo(3, 7), lineTo(7, 7), lineTo(7, 3), lineTo(3, 3),
		},
		bbox: Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
	}

	o, err := Convert(w)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if o.CellCountX == 0 {
		t.Fatalf("grid search failed for an O shape")
	}

	w0 := (o.BBox.MaxX - o.BBox.MinX) / float64(o.CellCountX)
	h0 := (o.BBox.MaxY - o.BBox.MinY) / float64(o.CellCountY)
	cellOf := func(p Point) (int, int) {
		x := int((p.X - o.BBox.MinX) / w0)
		y := int((p.Y - o.BBox.MinY) / h0)
		if x >= o.CellCountX {
			x = o.CellCountX - 1
		}
		if y >= o.CellCountY {
			y = o.CellCountY - 1
		}
		return x, y
	}

	hx, hy := cellOf(Point{X: 5, Y: 5})
	holeCell := o.Cells[hy*o.CellCountX+hx]
	if holeCell != 0x00000702 {
		t.Errorf("cell at the hole's center = %#010x, want 0x00000702 (inner contour segments only)", holeCell)
	}

	rx, ry := cellOf(Point{X: 1, Y: 1})
	ringCell := o.Cells[ry*o.CellCountX+rx]
	if ringCell == 0 {
		t.Errorf("cell in the ring near a corner should not be empty")
	}
}

func TestConvertPropagatesWalkerError(t *testing.T) {
	w := &erroringWalker{bbox: Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}}
	if _, err := Convert(w); err == nil {
		t.Errorf("expected Convert to propagate the walker's error")
	}
}
