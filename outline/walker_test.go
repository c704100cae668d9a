package outline

import (
	"errors"

	"golang.org/x/image/math/fixed"
)

type opKind int

const (
	opMove opKind = iota
	opLine
	opConic
)

type op struct {
	kind       opKind
	ctrl, to   Point
}

// scriptWalker is a Walker built from a fixed script of primitives, for
// tests that need precise control over the outline fed to Decompose.
type scriptWalker struct {
	ops  []op
	bbox Rect
}

func toFixedPoint(p Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

func (w *scriptWalker) Bounds() (minX, minY, maxX, maxY fixed.Int26_6) {
	return fixed.Int26_6(w.bbox.MinX * 64), fixed.Int26_6(w.bbox.MinY * 64),
		fixed.Int26_6(w.bbox.MaxX * 64), fixed.Int26_6(w.bbox.MaxY * 64)
}

func (w *scriptWalker) Walk(sink Sink) error {
	for _, o := range w.ops {
		switch o.kind {
		case opMove:
			sink.MoveTo(toFixedPoint(o.to))
		case opLine:
			sink.LineTo(toFixedPoint(o.to))
		case opConic:
			sink.ConicTo(toFixedPoint(o.ctrl), toFixedPoint(o.to))
		}
	}
	return nil
}

func moveTo(x, y float64) op { return op{kind: opMove, to: Point{X: x, Y: y}} }
func lineTo(x, y float64) op { return op{kind: opLine, to: Point{X: x, Y: y}} }
func conicTo(cx, cy, x, y float64) op {
	return op{kind: opConic, ctrl: Point{X: cx, Y: cy}, to: Point{X: x, Y: y}}
}

// erroringWalker always fails its Walk call, for testing error
// propagation out of Decompose and Convert.
type erroringWalker struct {
	bbox Rect
}

func (w *erroringWalker) Bounds() (minX, minY, maxX, maxY fixed.Int26_6) {
	return fixed.Int26_6(w.bbox.MinX * 64), fixed.Int26_6(w.bbox.MinY * 64),
		fixed.Int26_6(w.bbox.MaxX * 64), fixed.Int26_6(w.bbox.MaxY * 64)
}

func (w *erroringWalker) Walk(sink Sink) error {
	return errors.New("erroringWalker: intentional failure")
}

// closedSquare returns a script for a square contour with the given
// corner and side length, explicitly closing back to the start point
// as the Walker contract requires.
func closedSquare(x0, y0, side float64) []op {
	return []op{
		moveTo(x0, y0),
		lineTo(x0+side, y0),
		lineTo(x0+side, y0+side),
		lineTo(x0, y0+side),
		lineTo(x0, y0),
	}
}
