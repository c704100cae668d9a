package outline

import "math"

// isCellFilled classifies a cell (identified by its world-space bbox)
// as inside or outside the glyph by scanning every segment of every
// contour for the one nearest the cell's center, then taking its
// signed distance. When two segments tie for nearest (within 1e-4),
// the neighboring segment's sign disambiguates concave corners: if the
// previous segment's signed distance is negative, the larger of the
// two candidate distances wins, otherwise the smaller does.
func isCellFilled(o *Outline, bbox Rect) bool {
	center := Point{X: (bbox.MaxX + bbox.MinX) / 2, Y: (bbox.MaxY + bbox.MinY) / 2}

	minDist := math.MaxFloat64
	v := math.MaxFloat64
	j := noIndex

	for ci := range o.Contours {
		contourBegin := o.Contours[ci].Begin
		contourEnd := o.Contours[ci].End

		for i := contourBegin; i < contourEnd; i += 2 {
			p0 := o.Points[i]
			p2 := o.Points[i+2]

			t := lineParamT(p0, p2, center)
			p02 := lerp(p0, p2, t)
			udist := dist(p02, center)

			if udist < minDist+0.0001 {
				d := lineSignedDistance(p0, p2, center)

				if udist >= minDist && i > contourBegin {
					var lastD float64
					if i == contourEnd-2 && j == contourBegin {
						lastD = lineSignedDistance(p0, p2, o.Points[contourBegin+2])
					} else {
						lastD = lineSignedDistance(p0, p2, o.Points[i-2])
					}
					if lastD < 0 {
						v = math.Max(d, v)
					} else {
						v = math.Min(d, v)
					}
				} else {
					v = d
				}

				minDist = math.Min(minDist, udist)
				j = i
			}
		}
	}

	return v > 0
}
