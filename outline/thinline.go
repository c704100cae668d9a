package outline

// FixThinLines runs one pass over o, replacing it with a new Outline in
// which every segment that would self-intersect a non-adjacent segment
// of the same contour at the current resolution has been split in two.
// This avoids shader artifacts where two close curves in the same
// contour cause inside/outside sign ambiguity within a single cell.
func FixThinLines(o *Outline) {
	*o = *fixThinLines(o)
}

func fixThinLines(o *Outline) *Outline {
	u := &Outline{BBox: o.BBox}

	for ci := range o.Contours {
		contourBegin := o.Contours[ci].Begin
		contourEnd := o.Contours[ci].End

		addOddPoint(u)
		addContour(u, ContourRange{Begin: len(u.Points), End: noIndex})

		for i := contourBegin; i < contourEnd; i += 2 {
			p0 := o.Points[i]
			p1 := o.Points[i+1]
			p2 := o.Points[i+2]

			// Inflate the control point away from the chord midpoint
			// before testing intersections, so near-misses at the
			// current resolution are caught conservatively.
			mid := p0.Mid(p2)
			inflatedP1 := Point{X: 2*p1.X - mid.X, Y: 2*p1.Y - mid.Y}

			subdivide := false
			for j := contourBegin; j < contourEnd; j += 2 {
				if i == contourBegin && j == contourEnd-2 {
					continue
				}
				if i == contourEnd-2 && j == contourBegin {
					continue
				}
				if j+2 >= i && j <= i+2 {
					continue
				}

				q0 := o.Points[j]
				q2 := o.Points[j+2]

				if bezierChordIntersects(p0, inflatedP1, p2, q0, q2) {
					subdivide = true
					break
				}
			}

			if subdivide {
				m01, split, m12 := bezierSplitHalf(p0, p1, p2)
				addPoint(u, p0)
				addPoint(u, m01)
				addPoint(u, split)
				addPoint(u, m12)
			} else {
				addPoint(u, p0)
				addPoint(u, p1)
			}
		}

		u.Contours[ci].End = len(u.Points)
		addPoint(u, o.Points[contourEnd])
	}

	return u
}

// Subdivide splits every segment of o at t=0.5 unconditionally,
// doubling the segment count of every contour. It is not part of
// Convert's default pipeline; callers use it for manual resolution
// tuning.
func Subdivide(o *Outline) {
	u := &Outline{BBox: o.BBox}

	for ci := range o.Contours {
		contourBegin := o.Contours[ci].Begin
		contourEnd := o.Contours[ci].End

		addOddPoint(u)
		addContour(u, ContourRange{Begin: len(u.Points), End: noIndex})

		for i := contourBegin; i < contourEnd; i += 2 {
			p0 := o.Points[i]
			m01, split, m12 := bezierSplitHalf(o.Points[i], o.Points[i+1], o.Points[i+2])
			addPoint(u, p0)
			addPoint(u, m01)
			addPoint(u, split)
			addPoint(u, m12)
		}

		u.Contours[ci].End = len(u.Points)
		addPoint(u, o.Points[contourEnd])
	}

	*o = *u
}
