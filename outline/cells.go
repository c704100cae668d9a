package outline

import (
	"math"
	"math/bits"
)

// cellAddRange attempts to place the range [from, to) -- both even
// point indices -- into the first free slot of cell that can hold it.
// Slot A accepts length <= 3, slots B and C accept length <= 7; a
// start index >= 255 or a length > 7 can never be represented. Returns
// 0 (empty/overflow) on failure, matching the source's failure
// signaling convention (0 is otherwise only the initial empty value,
// so a 0 return always means "try again with a bigger grid").
func cellAddRange(cell uint32, from, to int) uint32 {
	if from%2 != 0 || to%2 != 0 {
		panic("outline: range bounds must be even point indices")
	}

	f := from / 2
	t := to / 2

	if f >= 255 || t >= 255 {
		return 0
	}

	length := t - f

	if length <= 3 && cell&0x03 == 0 {
		cell |= uint32(f) << 8
		cell |= uint32(length)
		return cell
	}

	if length > 7 {
		return 0
	}

	if cell&0x1C == 0 {
		cell |= uint32(f) << 16
		cell |= uint32(length) << 2
		return cell
	}

	if cell&0xE0 == 0 {
		cell |= uint32(f) << 24
		cell |= uint32(length) << 5
		return cell
	}

	return 0
}

// wipcellAddBezier folds segment j (point index, within contourIndex)
// into cell's pending [from, to) range, flushing the previous pending
// range first if j doesn't extend it contiguously. A pending range
// that starts exactly at the contour's beginning is deferred as
// startLength instead of flushed, so it can later be concatenated onto
// the range touching the contour's end (see wipcellFinishContour).
func wipcellAddBezier(u *Outline, j, contourIndex int, cell *wipCell) bool {
	ucontourBegin := u.Contours[contourIndex].Begin
	ok := true

	if cell.to != noIndex && cell.to != j {
		if cell.to >= j {
			panic("outline: cell pending range is not monotonically increasing")
		}

		if cell.from == ucontourBegin {
			cell.startLength = (cell.to - cell.from) / 2
		} else {
			cell.value = cellAddRange(cell.value, cell.from, cell.to)
			if cell.value == 0 {
				ok = false
			}
		}

		cell.from = j
	} else if cell.from == noIndex {
		cell.from = j
	}

	cell.to = j + 2
	return ok
}

// wipcellFinishContour flushes whatever range remains pending in cell
// at the end of a contour, handling the wrap-around case where the
// cell also touched the contour's start (startLength != 0): that
// leading range is concatenated onto the trailing range so the packed
// indices stay contiguous across the synthetic extension appended at
// the contour's end.
func wipcellFinishContour(u *Outline, contourIndex int, cell *wipCell, maxStartLen *int) bool {
	ok := true
	ucontourBegin := u.Contours[contourIndex].Begin
	ucontourEnd := u.Contours[contourIndex].End

	if cell.to != noIndex && cell.to < ucontourEnd {
		cell.value = cellAddRange(cell.value, cell.from, cell.to)
		if cell.value == 0 {
			ok = false
		}
		cell.from = noIndex
		cell.to = noIndex
	}

	if cell.to != noIndex && cell.to != ucontourEnd {
		panic("outline: cell range did not end at the contour end")
	}
	cell.to = noIndex

	if cell.from != noIndex && cell.startLength != 0 {
		cell.value = cellAddRange(cell.value, cell.from, ucontourEnd+cell.startLength*2)
		if cell.value == 0 {
			ok = false
		}
		if cell.startLength > *maxStartLen {
			*maxStartLen = cell.startLength
		}
		cell.from = noIndex
		cell.startLength = 0
	}

	if cell.from != noIndex {
		cell.value = cellAddRange(cell.value, cell.from, ucontourEnd)
		if cell.value == 0 {
			ok = false
		}
		cell.from = noIndex
	}

	if cell.startLength != 0 {
		cell.value = cellAddRange(cell.value, ucontourBegin, ucontourBegin+cell.startLength*2)
		if cell.value == 0 {
			ok = false
		}
		cell.startLength = 0
	}

	if cell.from != noIndex || cell.to != noIndex {
		panic("outline: cell range not reset after contour finish")
	}
	return ok
}

// forEachWIPCellAddBezier finds every cell overlapping segment i's
// bounding box (in grid coordinates), and for each one the curve truly
// intersects, folds it into that cell's pending range under its new
// index j.
func forEachWIPCellAddBezier(o, u *Outline, i, j, contourIndex int, cells []wipCell) bool {
	bb := bezierBBox(o.Points[i], o.Points[i+1], o.Points[i+2])

	w := o.BBox.MaxX - o.BBox.MinX
	h := o.BBox.MaxY - o.BBox.MinY

	minX := int((bb.MinX - o.BBox.MinX) / w * float64(o.CellCountX))
	minY := int((bb.MinY - o.BBox.MinY) / h * float64(o.CellCountY))
	maxX := int((bb.MaxX - o.BBox.MinX) / w * float64(o.CellCountX))
	maxY := int((bb.MaxY - o.BBox.MinY) / h * float64(o.CellCountY))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= o.CellCountX {
		maxX = o.CellCountX - 1
	}
	if maxY >= o.CellCountY {
		maxY = o.CellCountY - 1
	}
	if minX >= o.CellCountX {
		minX = o.CellCountX - 1
	}
	if minY >= o.CellCountY {
		minY = o.CellCountY - 1
	}

	ok := true
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			cell := &cells[y*o.CellCountX+x]
			if rectBezierIntersect(cell.bbox, o.Points[i], o.Points[i+1], o.Points[i+2]) {
				if !wipcellAddBezier(u, j, contourIndex, cell) {
					ok = false
				}
			}
		}
	}
	return ok
}

func initWIPCells(o *Outline, cells []wipCell) {
	w := o.BBox.MaxX - o.BBox.MinX
	h := o.BBox.MaxY - o.BBox.MinY

	for y := 0; y < o.CellCountY; y++ {
		for x := 0; x < o.CellCountX; x++ {
			bb := Rect{
				MinX: o.BBox.MinX + float64(x)/float64(o.CellCountX)*w,
				MinY: o.BBox.MinY + float64(y)/float64(o.CellCountY)*h,
				MaxX: o.BBox.MinX + float64(x+1)/float64(o.CellCountX)*w,
				MaxY: o.BBox.MinY + float64(y+1)/float64(o.CellCountY)*h,
			}
			cells[y*o.CellCountX+x] = wipCell{bbox: bb, from: noIndex, to: noIndex}
		}
	}
}

// addFilledLine appends a degenerate, far-offscreen quadratic segment
// used as the "filled sentinel" for empty interior cells.
func addFilledLine(o *Outline) int {
	addOddPoint(o)
	i := len(o.Points)
	y := o.BBox.MaxY + 1000
	addPoint(o, Point{X: o.BBox.MinX, Y: y})
	addPoint(o, Point{X: o.BBox.MinX + 10, Y: y})
	addPoint(o, Point{X: o.BBox.MinX + 20, Y: y})
	return i
}

// makeCellFromSingleEdge packs segment index e (a point index) into
// slot A as a single-edge (length 1) reference: the cell word's
// external contract for the filled sentinel.
func makeCellFromSingleEdge(e int) uint32 {
	if e%2 != 0 {
		panic("outline: segment index must be even")
	}
	return uint32(e)<<7 | 1
}

func setFilledCells(u *Outline, cells []wipCell, filledCell uint32) {
	for y := 0; y < u.CellCountY; y++ {
		for x := 0; x < u.CellCountX; x++ {
			cell := &cells[y*u.CellCountX+x]
			if cell.value == 0 && isCellFilled(u, cell.bbox) {
				cell.value = filledCell
			}
		}
	}
}

// tryFit attempts to pack o's curves into a o.CellCountX x
// o.CellCountY grid, returning the rebuilt Outline (with extended
// per-contour points and a populated Cells array) and whether every
// cell fit within its word's budget.
func tryFit(o *Outline) (*Outline, bool) {
	cells := make([]wipCell, o.CellCountX*o.CellCountY)
	initWIPCells(o, cells)

	u := &Outline{
		BBox:       o.BBox,
		CellCountX: o.CellCountX,
		CellCountY: o.CellCountY,
	}

	ok := true
	for contourIndex := range o.Contours {
		contourBegin := o.Contours[contourIndex].Begin
		contourEnd := o.Contours[contourIndex].End

		addOddPoint(u)
		urange := ContourRange{Begin: len(u.Points), End: len(u.Points) + contourEnd - contourBegin}
		addContour(u, urange)

		for i := contourBegin; i < contourEnd; i += 2 {
			p0 := o.Points[i]
			p1 := o.Points[i+1]

			j := len(u.Points)
			addPoint(u, p0)
			addPoint(u, p1)

			if !forEachWIPCellAddBezier(o, u, i, j, contourIndex, cells) {
				ok = false
			}
		}

		maxStartLen := 0
		for y := 0; y < o.CellCountY; y++ {
			for x := 0; x < o.CellCountX; x++ {
				cell := &cells[y*o.CellCountX+x]
				if !wipcellFinishContour(u, contourIndex, cell, &maxStartLen) {
					ok = false
				}
			}
		}

		continuationEnd := contourBegin + maxStartLen*2
		for i := contourBegin; i < continuationEnd; i += 2 {
			addPoint(u, o.Points[i])
			addPoint(u, o.Points[i+1])
		}
		addPoint(u, o.Points[continuationEnd])
	}

	if !ok {
		return nil, false
	}

	filledLine := addFilledLine(u)
	filledCell := makeCellFromSingleEdge(filledLine)
	setFilledCells(u, cells, filledCell)

	u.Cells = make([]uint32, u.CellCountX*u.CellCountY)
	for i := range cells {
		u.Cells[i] = cells[i].value
	}

	return u, true
}

func nextPow2(v uint32) uint32 {
	if v <= 1 {
		return 1
	}
	return 1 << uint(bits.Len32(v-1))
}

// MakeCells chooses a cell-grid resolution for o and packs its curves
// into it, growing the grid and retrying whenever a cell overflows its
// 32-bit word budget. If o has more than MaxPoints points, or no grid
// up to 64x64 fits, o is left with a zero grid (unrenderable).
func MakeCells(o *Outline) {
	if len(o.Points) > MaxPoints {
		o.CellCountX, o.CellCountY = 0, 0
		return
	}

	w := o.BBox.MaxX - o.BBox.MinX
	h := o.BBox.MaxY - o.BBox.MinY

	c := nextPow2(uint32(math.Sqrt(float64(len(o.Points)) * 0.75)))
	o.CellCountX = int(c)
	o.CellCountY = int(c)

	if h > w*1.8 && o.CellCountX > 1 {
		o.CellCountX /= 2
	}
	if w > h*1.8 && o.CellCountY > 1 {
		o.CellCountY /= 2
	}

	for {
		if o.CellCountX > 64 || o.CellCountY > 64 {
			o.CellCountX, o.CellCountY = 0, 0
			return
		}

		u, ok := tryFit(o)
		if ok {
			*o = *u
			return
		}

		switch {
		case o.CellCountX == o.CellCountY:
			if w > h {
				o.CellCountX *= 2
			} else {
				o.CellCountY *= 2
			}
		case o.CellCountX < o.CellCountY:
			o.CellCountX *= 2
		default:
			o.CellCountY *= 2
		}
	}
}
