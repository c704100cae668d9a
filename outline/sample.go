package outline

import "math"

// decodeSlot returns the point index and segment count a packed slot
// describes, or ok=false if the slot is empty.
func decodeSlot(word uint32, startShift, lengthShift, lengthMask uint32) (idx, count int, ok bool) {
	length := (word >> lengthShift) & lengthMask
	if length == 0 {
		return 0, 0, false
	}
	start := (word >> startShift) & 0xFF
	return int(start) * 2, int(length), true
}

// cellSegments decodes a packed cell word into the point indices of the
// quadratic segments it references, in slot order (A, B, C).
func cellSegments(word uint32) []int {
	var indices []int
	appendSlot := func(startShift, lengthShift, lengthMask uint32) {
		idx, count, ok := decodeSlot(word, startShift, lengthShift, lengthMask)
		if !ok {
			return
		}
		for k := 0; k < count; k++ {
			indices = append(indices, idx+2*k)
		}
	}
	appendSlot(8, 0, 0x03)
	appendSlot(16, 2, 0x07)
	appendSlot(24, 5, 0x07)
	return indices
}

// cellAt returns the grid coordinates of the cell containing p, or
// ok=false if p falls outside o's bounding box or o has no grid.
func cellAt(o *Outline, p Point) (x, y int, ok bool) {
	if o.CellCountX == 0 || o.CellCountY == 0 {
		return 0, 0, false
	}
	w := o.BBox.MaxX - o.BBox.MinX
	h := o.BBox.MaxY - o.BBox.MinY
	if w <= 0 || h <= 0 || !o.BBox.Contains(p) {
		return 0, 0, false
	}
	x = int((p.X - o.BBox.MinX) / w * float64(o.CellCountX))
	y = int((p.Y - o.BBox.MinY) / h * float64(o.CellCountY))
	if x >= o.CellCountX {
		x = o.CellCountX - 1
	}
	if y >= o.CellCountY {
		y = o.CellCountY - 1
	}
	return x, y, true
}

// isFilledSentinel reports whether (p0, p2) is the synthetic, degenerate
// segment addFilledLine appends to mark an interior cell that has no
// curve passing through it: flat, and positioned above everything real
// in the outline. It must be recognized by identity rather than by its
// signed distance, which (being an arbitrary horizontal line) carries
// no meaningful orientation relative to the glyph's winding.
func isFilledSentinel(o *Outline, p0, p2 Point) bool {
	return p0.Y == p2.Y && p0.Y > o.BBox.MaxY
}

// Sample is the CPU-side reference implementation of the lookup a
// fragment shader performs against the packed cell grid: locate p's
// cell, decode its (up to three) referenced segment ranges, and
// classify p by the sign of its distance to the nearest of them. It is
// a simplified cousin of the classifier MakeCells itself runs to decide
// which empty cells are interior (see isCellFilled): it skips that
// function's previous-segment tie-break for the wrap-around case, since
// a sampled cell's decoded ranges don't carry the full contour
// boundaries needed to detect it, which can misclassify points exactly
// on a cell boundary between two nearly-colinear segments.
func Sample(o *Outline, p Point) bool {
	x, y, ok := cellAt(o, p)
	if !ok {
		return false
	}
	word := o.Cells[y*o.CellCountX+x]
	if word == 0 {
		return false
	}

	indices := cellSegments(word)
	if len(indices) == 0 {
		return false
	}

	minDist := math.MaxFloat64
	sign := 1.0
	for n, idx := range indices {
		if idx+2 >= len(o.Points) {
			continue
		}
		p0 := o.Points[idx]
		p2 := o.Points[idx+2]
		if isFilledSentinel(o, p0, p2) {
			return true
		}
		t := lineParamT(p0, p2, p)
		proj := lerp(p0, p2, t)
		d := dist(proj, p)
		if d < minDist {
			minDist = d
			sign = lineSignedDistance(p0, p2, p)
			if n > 0 {
				prevIdx := indices[n-1]
				if prevIdx+2 < len(o.Points) {
					prevSign := lineSignedDistance(o.Points[prevIdx], o.Points[prevIdx+2], p)
					if prevSign < 0 {
						sign = math.Max(sign, prevSign)
					}
				}
			}
		}
	}
	return sign > 0
}
