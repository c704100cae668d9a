package main

import (
	"golang.org/x/image/font/sfnt"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/golang/freetype/truetype"

	"github.com/unixpickle/glyphcell/outline"
)

// ttWalker drives outline.Decompose from a freetype-loaded TrueType
// glyph, resolving TrueType's implied on-curve points the same way
// flattenTrueTypeContour used to, but emitting Sink primitives directly
// instead of flattening them to a polyline.
type ttWalker struct {
	gb   *truetype.GlyphBuf
	penX fixed.Int26_6
}

func newTTWalker(font *truetype.Font, scale fixed.Int26_6, idx truetype.Index, penX fixed.Int26_6) (*ttWalker, error) {
	var gb truetype.GlyphBuf
	if err := gb.Load(font, scale, idx, xfont.HintingNone); err != nil {
		return nil, err
	}
	return &ttWalker{gb: &gb, penX: penX}, nil
}

func (w *ttWalker) Bounds() (minX, minY, maxX, maxY fixed.Int26_6) {
	b := w.gb.Bounds
	return b.Min.X + w.penX, b.Min.Y, b.Max.X + w.penX, b.Max.Y
}

func (w *ttWalker) point(p truetype.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X) + w.penX, Y: fixed.Int26_6(p.Y)}
}

func onCurve(p truetype.Point) bool { return p.Flags&0x01 != 0 }

// Walk resolves each TrueType contour's on/off-curve point sequence
// into move/line/conic primitives, handling the wrap-around start point
// and implied on-curve midpoints between consecutive off-curve points
// exactly as the quadratic spec requires.
func (w *ttWalker) Walk(sink outline.Sink) error {
	pts := w.gb.Points
	start := 0
	for _, end := range w.gb.Ends {
		contourPts := pts[start:end]
		start = end
		if len(contourPts) == 0 {
			continue
		}
		w.walkContour(contourPts, sink)
	}
	return nil
}

func (w *ttWalker) walkContour(pts []truetype.Point, sink outline.Sink) {
	n := len(pts)

	var startPt fixed.Point26_6
	startIdx := 0
	switch {
	case onCurve(pts[0]):
		startPt = w.point(pts[0])
		startIdx = 0
	case onCurve(pts[n-1]):
		startPt = w.point(pts[n-1])
		startIdx = n - 1
	default:
		startPt = midpoint(w.point(pts[n-1]), w.point(pts[0]))
		startIdx = 0
	}
	sink.MoveTo(startPt)

	var haveCtrl bool
	var ctrl fixed.Point26_6

	i := (startIdx + 1) % n
	for steps := 0; steps < n; steps++ {
		p := pts[i]
		if onCurve(p) {
			on := w.point(p)
			if haveCtrl {
				sink.ConicTo(ctrl, on)
				haveCtrl = false
			} else {
				sink.LineTo(on)
			}
		} else {
			c := w.point(p)
			if haveCtrl {
				implied := midpoint(ctrl, c)
				sink.ConicTo(ctrl, implied)
				ctrl = c
			} else {
				ctrl = c
				haveCtrl = true
			}
		}
		i = (i + 1) % n
	}

	if haveCtrl {
		sink.ConicTo(ctrl, startPt)
	} else {
		sink.LineTo(startPt)
	}
}

func midpoint(a, b fixed.Point26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// sfntWalker drives outline.Decompose from x/image/font/sfnt's own
// already-decomposed Segments API, an alternate outline source to the
// freetype-backed ttWalker.
type sfntWalker struct {
	segs []sfnt.Segment
	penX fixed.Int26_6
}

func newSfntWalker(f *sfnt.Font, idx sfnt.GlyphIndex, ppem fixed.Int26_6, penX fixed.Int26_6) (*sfntWalker, error) {
	var buf sfnt.Buffer
	segs, err := f.LoadGlyph(&buf, idx, ppem, nil)
	if err != nil {
		return nil, err
	}
	return &sfntWalker{segs: segs, penX: penX}, nil
}

func (w *sfntWalker) offset(p fixed.Point26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: p.X + w.penX, Y: p.Y}
}

func (w *sfntWalker) Bounds() (minX, minY, maxX, maxY fixed.Int26_6) {
	if len(w.segs) == 0 {
		return 0, 0, 0, 0
	}
	p := w.offset(w.segs[0].Args[0])
	minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
	for _, s := range w.segs {
		for _, a := range s.Args {
			p := w.offset(a)
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	return minX, minY, maxX, maxY
}

// Walk translates sfnt's already-canonical move/line/quad/cubic stream
// straight into Sink calls; sfnt's Segment vocabulary matches ours
// closely enough that no on/off-curve resolution is needed here.
func (w *sfntWalker) Walk(sink outline.Sink) error {
	for _, s := range w.segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			sink.MoveTo(w.offset(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			sink.LineTo(w.offset(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			sink.ConicTo(w.offset(s.Args[0]), w.offset(s.Args[1]))
		case sfnt.SegmentOpCubeTo:
			sink.CubicTo(w.offset(s.Args[0]), w.offset(s.Args[1]), w.offset(s.Args[2]))
		}
	}
	return nil
}
