package outline

import "testing"

// oShapeOutline is a hand-built two-contour outline: an outer
// counter-clockwise square (0,0)-(10,10) with an inner clockwise square
// hole (3,3)-(7,7), the winding convention a TrueType-style rasterizer
// uses to mark the inner square as a hole rather than a second fill.
func oShapeOutline() *Outline {
	pts := []Point{
		// outer contour, CCW, begin=0 end=8
		{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0},
		{X: 10, Y: 5}, {X: 10, Y: 10},
		{X: 5, Y: 10}, {X: 0, Y: 10},
		{X: 0, Y: 5}, {X: 0, Y: 0},
		// odd-point padding so the next contour starts at an even index
		{X: 0, Y: 0},
		// inner contour, CW, begin=10 end=18
		{X: 3, Y: 3}, {X: 3, Y: 5}, {X: 3, Y: 7},
		{X: 5, Y: 7}, {X: 7, Y: 7},
		{X: 7, Y: 5}, {X: 7, Y: 3},
		{X: 5, Y: 3}, {X: 3, Y: 3},
	}
	return &Outline{
		BBox:     Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		Points:   pts,
		Contours: []ContourRange{{Begin: 0, End: 8}, {Begin: 10, End: 18}},
	}
}

func TestIsCellFilledRingIsFilled(t *testing.T) {
	o := oShapeOutline()
	// bbox centered on (1.5, 1), well inside the outer square but
	// outside the inner hole.
	bbox := Rect{MinX: 1, MinY: 0.5, MaxX: 2, MaxY: 1.5}
	if !isCellFilled(o, bbox) {
		t.Errorf("point (1.5,1) in the ring between outer square and hole should be filled")
	}
}

func TestIsCellFilledHoleIsEmpty(t *testing.T) {
	o := oShapeOutline()
	// bbox centered on (4, 5), inside the inner square's hole.
	bbox := Rect{MinX: 3.5, MinY: 4.5, MaxX: 4.5, MaxY: 5.5}
	if isCellFilled(o, bbox) {
		t.Errorf("point (4,5) inside the hole should not be filled")
	}
}

func TestIsCellFilledOutsideOuterSquare(t *testing.T) {
	o := oShapeOutline()
	bbox := Rect{MinX: 11, MinY: 11, MaxX: 12, MaxY: 12}
	if isCellFilled(o, bbox) {
		t.Errorf("point (11.5,11.5) outside the outer square should not be filled")
	}
}
