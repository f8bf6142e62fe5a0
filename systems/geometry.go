package systems

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Segment is a straight gesture piece between two pointer samples.
type Segment struct {
	A, B r2.Vec
}

// Degenerate reports whether the segment has zero length.
func (s Segment) Degenerate() bool {
	return s.A == s.B
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return r2.Norm(r2.Sub(s.B, s.A))
}

// SegmentsIntersect reports whether segments a1-a2 and b1-b2 cross.
//
// Uses the parametric solution: ua and ub come from the cross-product
// determinant and both must lie in [0, 1]. A zero determinant (parallel or
// collinear, including any zero-length segment) counts as no intersection.
func SegmentsIntersect(a1, a2, b1, b2 r2.Vec) bool {
	da := r2.Sub(a2, a1)
	db := r2.Sub(b2, b1)
	denom := r2.Cross(da, db)
	if denom == 0 {
		return false
	}
	w := r2.Sub(b1, a1)
	ua := r2.Cross(w, db) / denom
	ub := r2.Cross(w, da) / denom
	return ua >= 0 && ua <= 1 && ub >= 0 && ub <= 1
}

// BoxAround returns the axis-aligned square of the given extent centred on c.
func BoxAround(c r2.Vec, extent float64) r2.Box {
	h := extent / 2
	return r2.Box{
		Min: r2.Vec{X: c.X - h, Y: c.Y - h},
		Max: r2.Vec{X: c.X + h, Y: c.Y + h},
	}
}

// SegmentIntersectsBox tests s against the four edges of b.
// A segment lying entirely inside the box touches no edge and does not hit.
func SegmentIntersectsBox(s Segment, b r2.Box) bool {
	if s.Degenerate() {
		return false
	}
	tl := b.Min
	tr := r2.Vec{X: b.Max.X, Y: b.Min.Y}
	br := b.Max
	bl := r2.Vec{X: b.Min.X, Y: b.Max.Y}
	return SegmentsIntersect(s.A, s.B, tl, tr) ||
		SegmentsIntersect(s.A, s.B, tr, br) ||
		SegmentsIntersect(s.A, s.B, br, bl) ||
		SegmentsIntersect(s.A, s.B, bl, tl)
}

// PointInRadius reports whether p lies strictly within r of c.
func PointInRadius(p, c r2.Vec, r float64) bool {
	return r2.Norm2(r2.Sub(p, c)) < r*r
}
