package outline

// noIndex is the sentinel for "no point index", mirroring the source's
// use of UINT32_MAX for an unset index.
const noIndex = -1

// MaxPoints caps the outline size make-cells will attempt to grid; an
// outline with more points than this is reported as unrenderable (zero
// grid) rather than risking pathological grid-search cost.
const MaxPoints = 65536

// ContourRange is a half-open index range [Begin, End) into an
// Outline's Points, except that End is itself the index of the last
// segment's P2 (i.e. the range of valid point indices is [Begin, End]
// inclusive). Begin and End are both even.
type ContourRange struct {
	Begin, End int
}

// Outline is a glyph outline in canonical form: every contour is a
// sequence of consecutive quadratic Bezier triples sharing endpoints,
// plus (once MakeCells has run) a grid of packed cell words spatially
// indexing those curves.
//
// For a contour with k segments, Points holds 2k+1 points: segments are
// (Points[b], Points[b+1], Points[b+2]), (Points[b+2], Points[b+3],
// Points[b+4]), and so on. Between contours there may be one padding
// point if the point count is odd at a contour's start.
type Outline struct {
	BBox       Rect
	Points     []Point
	Contours   []ContourRange
	CellCountX int
	CellCountY int
	Cells      []uint32
}

// CBox recomputes a tight bounding rectangle over Points, ignoring
// BBox. Returns the zero Rect for an empty outline.
func (o *Outline) CBox() Rect {
	if len(o.Points) == 0 {
		return Rect{}
	}
	r := Rect{MinX: o.Points[0].X, MinY: o.Points[0].Y, MaxX: o.Points[0].X, MaxY: o.Points[0].Y}
	for _, p := range o.Points[1:] {
		if p.X < r.MinX {
			r.MinX = p.X
		}
		if p.Y < r.MinY {
			r.MinY = p.Y
		}
		if p.X > r.MaxX {
			r.MaxX = p.X
		}
		if p.Y > r.MaxY {
			r.MaxY = p.Y
		}
	}
	return r
}

// Destroy releases an Outline's backing arrays. Callers that build many
// outlines in a loop should call it once an outline is no longer
// needed, mirroring the ownership-disciplined lifecycle the spec's
// source material uses (Go's GC reclaims the memory regardless, but
// this keeps outline values from holding stale large slices alive).
func Destroy(o *Outline) {
	*o = Outline{}
}

func addPoint(o *Outline, p Point) {
	o.Points = append(o.Points, p)
}

func addContour(o *Outline, cr ContourRange) {
	o.Contours = append(o.Contours, cr)
}

// addOddPoint pads Points with a single point (pinned at the current
// BBox's minimum corner) if the point count is currently odd, so a new
// contour always starts at an even index.
func addOddPoint(o *Outline) {
	if len(o.Points)%2 != 0 {
		addPoint(o, Point{X: o.BBox.MinX, Y: o.BBox.MinY})
	}
}

// wipCell is transient per-cell state used while packing curves into
// cell words; it is discarded once a grid-size attempt finishes.
type wipCell struct {
	bbox        Rect
	from, to    int
	value       uint32
	startLength int
}
