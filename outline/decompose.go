package outline

import "golang.org/x/image/math/fixed"

// Sink receives outline primitives in the canonical four-op vocabulary
// that font outline decomposers (FreeType's FT_Outline_Decompose,
// x/image/font/sfnt's Segments) already use: a move, followed by any
// number of lines, quadratics ("conics") and cubics, one run per
// contour. Coordinates are in 1/64ths, matching TrueType's hinted
// fixed-point convention.
type Sink interface {
	MoveTo(to fixed.Point26_6)
	LineTo(to fixed.Point26_6)
	ConicTo(ctrl, to fixed.Point26_6)
	CubicTo(c1, c2, to fixed.Point26_6)
}

// Walker drives a Sink over one glyph's outline primitives and reports
// the glyph's integer bounding box in 1/64ths. Implementations must
// close every contour -- the last primitive before a MoveTo (or before
// Walk returns, for the final contour) must land exactly back on that
// contour's starting point, the same contract FreeType's outline
// decomposer guarantees its callbacks. The cell packer relies on this
// to treat a contour's last segment's P2 as identical to its first
// segment's P0.
type Walker interface {
	Walk(sink Sink) error
	Bounds() (minX, minY, maxX, maxY fixed.Int26_6)
}

// decomposer implements Sink, converting a walker's move/line/conic/
// cubic calls into the canonical consecutive-quadratic-triple stream
// described on the Outline type.
type decomposer struct {
	o           *Outline
	contourOpen bool
}

func convertPoint(p fixed.Point26_6) Point {
	return Point{X: float64(p.X) / 64, Y: float64(p.Y) / 64}
}

// MoveTo closes the previous contour (if any) and opens a new one at
// to.
func (d *decomposer) MoveTo(to fixed.Point26_6) {
	o := d.o
	if d.contourOpen {
		o.Contours[len(o.Contours)-1].End = len(o.Points) - 1
		addPoint(o, Point{})
	}
	if len(o.Points)%2 != 0 {
		panic("outline: contour must start at an even point index")
	}
	addContour(o, ContourRange{Begin: len(o.Points), End: noIndex})
	d.contourOpen = true
	addPoint(o, convertPoint(to))
}

// LineTo represents a straight edge as a degenerate quadratic whose
// control point is the edge's midpoint.
func (d *decomposer) LineTo(to fixed.Point26_6) {
	o := d.o
	last := o.Points[len(o.Points)-1]
	toP := convertPoint(to)
	addPoint(o, last.Mid(toP))
	addPoint(o, toP)
}

// ConicTo appends a true quadratic segment.
func (d *decomposer) ConicTo(ctrl, to fixed.Point26_6) {
	o := d.o
	addPoint(o, convertPoint(ctrl))
	addPoint(o, convertPoint(to))
}

// CubicTo collapses the cubic to its terminal line segment. This
// matches the source implementation's behavior faithfully rather than
// approximating the cubic with one or more quadratics; see DESIGN.md's
// Open Question notes.
func (d *decomposer) CubicTo(c1, c2, to fixed.Point26_6) {
	d.LineTo(to)
}

// Decompose walks w and returns the canonical-form Outline it
// describes. The result has no grid yet; call MakeCells (or Convert,
// which also runs the thin-line fixer first) to build one.
func Decompose(w Walker) (*Outline, error) {
	minX, minY, maxX, maxY := w.Bounds()
	o := &Outline{
		BBox: Rect{
			MinX: float64(minX) / 64, MinY: float64(minY) / 64,
			MaxX: float64(maxX) / 64, MaxY: float64(maxY) / 64,
		},
	}
	d := &decomposer{o: o}
	if err := w.Walk(d); err != nil {
		return nil, err
	}
	if d.contourOpen {
		o.Contours[len(o.Contours)-1].End = len(o.Points) - 1
	}
	return o, nil
}
