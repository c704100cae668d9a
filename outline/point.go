// Package outline implements a glyph-outline preprocessor: it turns a
// vector glyph's closed quadratic-Bezier contours into a spatially
// indexed, GPU-ready cell grid that a fragment shader can sample to
// produce analytically antialiased coverage.
package outline

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
)

// Point is a 2D floating-point coordinate, in outline units (FUnits/64
// when sourced from a font).
type Point = model2d.Coord

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies within r, inclusive of the boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent of r.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

func lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// lineParamT returns the parameter t such that lerp(a, b, t) is the
// projection of p onto the infinite line through a and b.
func lineParamT(a, b, p Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	denom := dx*dx + dy*dy
	if denom == 0 {
		return 0
	}
	return ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / denom
}

// lineSignedDistance returns the signed perpendicular distance from p to
// the line through a and b; positive is to the left of a->b (the
// interior side for a counter-clockwise contour).
func lineSignedDistance(a, b, p Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0
	}
	return (dx*(p.Y-a.Y) - dy*(p.X-a.X)) / length
}

// quadAt evaluates the quadratic Bezier (p0, p1, p2) at parameter t.
func quadAt(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

// bezierSplitHalf performs a de Casteljau split of (p0, p1, p2) at
// t=0.5, returning the midpoint of P0P1, the point on the curve at
// t=0.5, and the midpoint of P1P2 -- the three new points a caller
// needs to replace one quadratic segment with two.
func bezierSplitHalf(p0, p1, p2 Point) (m01, split, m12 Point) {
	m01 = p0.Mid(p1)
	m12 = p1.Mid(p2)
	split = m01.Mid(m12)
	return
}

// bezierBBox returns the tight axis-aligned bounding box of the
// quadratic Bezier (p0, p1, p2), accounting for the curve's extrema
// rather than just its control polygon.
func bezierBBox(p0, p1, p2 Point) Rect {
	r := Rect{
		MinX: math.Min(p0.X, p2.X), MaxX: math.Max(p0.X, p2.X),
		MinY: math.Min(p0.Y, p2.Y), MaxY: math.Max(p0.Y, p2.Y),
	}
	extend := func(a0, a1, a2 float64, lo, hi *float64) {
		denom := a0 - 2*a1 + a2
		if denom == 0 {
			return
		}
		t := (a0 - a1) / denom
		if t <= 0 || t >= 1 {
			return
		}
		u := 1 - t
		v := u*u*a0 + 2*u*t*a1 + t*t*a2
		if v < *lo {
			*lo = v
		}
		if v > *hi {
			*hi = v
		}
	}
	extend(p0.X, p1.X, p2.X, &r.MinX, &r.MaxX)
	extend(p0.Y, p1.Y, p2.Y, &r.MinY, &r.MaxY)
	return r
}

func sub(a, b Point) Point   { return Point{X: a.X - b.X, Y: a.Y - b.Y} }
func cross(a, b Point) float64 { return a.X*b.Y - a.Y*b.X }

// segmentsIntersect reports whether the open line segments a0-a1 and
// b0-b1 cross each other.
func segmentsIntersect(a0, a1, b0, b1 Point) bool {
	d1 := cross(sub(a1, a0), sub(b0, a0))
	d2 := cross(sub(a1, a0), sub(b1, a0))
	d3 := cross(sub(b1, b0), sub(a0, b0))
	d4 := cross(sub(b1, b0), sub(a1, b0))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// bezierChordIntersects reports whether the quadratic Bezier (p0, p1,
// p2) crosses the chord q0->q2, approximated via the curve's control
// polygon edges (the curve lies within their convex hull with p0p2).
func bezierChordIntersects(p0, p1, p2, q0, q2 Point) bool {
	return segmentsIntersect(p0, p1, q0, q2) || segmentsIntersect(p1, p2, q0, q2)
}

// bezierSegmentIntersects reports whether the quadratic Bezier curve
// itself (not just its control polygon) crosses the segment a-b.
func bezierSegmentIntersects(p0, p1, p2, a, b Point) bool {
	nx := b.Y - a.Y
	ny := a.X - b.X
	c := -(nx*a.X + ny*a.Y)
	f := func(p Point) float64 { return nx*p.X + ny*p.Y + c }

	c0, c1, c2 := f(p0), f(p1), f(p2)
	A := c0 - 2*c1 + c2
	B := 2 * (c1 - c0)
	C := c0

	const eps = 1e-9
	var roots []float64
	if math.Abs(A) < eps {
		if math.Abs(B) > eps {
			roots = append(roots, -C/B)
		}
	} else {
		disc := B*B - 4*A*C
		if disc >= 0 {
			sq := math.Sqrt(disc)
			roots = append(roots, (-B+sq)/(2*A), (-B-sq)/(2*A))
		}
	}

	for _, t := range roots {
		if t < 0 || t > 1 {
			continue
		}
		pt := quadAt(p0, p1, p2, t)
		if s := lineParamT(a, b, pt); s >= 0 && s <= 1 {
			return true
		}
	}
	return false
}

// rectBezierIntersect reports whether the quadratic Bezier (p0, p1, p2)
// passes through the rectangle r.
func rectBezierIntersect(r Rect, p0, p1, p2 Point) bool {
	bb := bezierBBox(p0, p1, p2)
	if bb.MaxX < r.MinX || bb.MinX > r.MaxX || bb.MaxY < r.MinY || bb.MinY > r.MaxY {
		return false
	}
	if r.Contains(p0) || r.Contains(p1) || r.Contains(p2) {
		return true
	}
	corners := [4]Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
	for i := 0; i < 4; i++ {
		if bezierSegmentIntersects(p0, p1, p2, corners[i], corners[(i+1)%4]) {
			return true
		}
	}
	return false
}
