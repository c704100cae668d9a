package outline

import "testing"

// spikeOutline builds a single 4-segment contour where segment 0's
// control point is placed far off its chord, so its inflated control
// polygon (control pulled to (1,4)) crosses segment 2's chord on the
// opposite side of the contour -- a deliberate, deterministic trigger
// for the thin-line fixer's non-adjacent intersection test. The curve
// itself peaks at y=1 and never reaches segment 2 at y=2.
func spikeOutline() *Outline {
	pts := []Point{
		{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 0}, // segment 0: sharp spike
		{X: 2, Y: 1},                              // segment 1 control
		{X: 2, Y: 2},                              // segment 1 end / segment 2 start
		{X: 1, Y: 2},                               // segment 2 control
		{X: 0, Y: 2},                               // segment 2 end / segment 3 start
		{X: 0, Y: 1},                               // segment 3 control
		{X: 0, Y: 0},                               // segment 3 end, closes
	}
	return &Outline{
		BBox:     Rect{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2},
		Points:   pts,
		Contours: []ContourRange{{Begin: 0, End: 8}},
	}
}

func TestFixThinLinesSplitsOffendingSegment(t *testing.T) {
	o := spikeOutline()
	before := len(o.Points)

	FixThinLines(o)

	after := len(o.Points)
	if after != before+2 {
		t.Fatalf("point count after fix = %d, want %d (one segment split)", after, before+2)
	}
	if len(o.Contours) != 1 {
		t.Fatalf("contours = %d, want 1", len(o.Contours))
	}
	cr := o.Contours[0]
	segs := (cr.End - cr.Begin) / 2
	if segs != 5 {
		t.Errorf("segment count = %d, want 5 (4 original + 1 from the split)", segs)
	}
	if cr.Begin%2 != 0 || cr.End%2 != 0 {
		t.Errorf("contour range (%d,%d) not even", cr.Begin, cr.End)
	}
}

// TestFixThinLinesIdempotent checks invariant 5: applying the fixer to
// its own output leaves the segment count unchanged (no runaway
// splitting).
func TestFixThinLinesIdempotent(t *testing.T) {
	o := spikeOutline()
	FixThinLines(o)
	firstPass := len(o.Points)

	FixThinLines(o)
	secondPass := len(o.Points)

	if firstPass != secondPass {
		t.Errorf("point count changed on second fix pass: %d -> %d", firstPass, secondPass)
	}
}

func TestFixThinLinesLeavesSimpleSquareAlone(t *testing.T) {
	w := &scriptWalker{ops: closedSquare(0, 0, 10), bbox: Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}}
	o, err := Decompose(w)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	before := len(o.Points)

	FixThinLines(o)

	if len(o.Points) != before {
		t.Errorf("a convex square should not be modified: %d -> %d points", before, len(o.Points))
	}
}

func TestSubdivideDoublesSegments(t *testing.T) {
	w := &scriptWalker{ops: closedSquare(0, 0, 10), bbox: Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}}
	o, err := Decompose(w)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	cr := o.Contours[0]
	before := (cr.End - cr.Begin) / 2

	Subdivide(o)

	cr = o.Contours[0]
	after := (cr.End - cr.Begin) / 2
	if after != before*2 {
		t.Errorf("segment count after Subdivide = %d, want %d", after, before*2)
	}
}
