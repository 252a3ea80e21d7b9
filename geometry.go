package bridges

import "math"

// SegmentIntersectsRect reports whether the segment p1→p2 shares any stretch
// with the rectangle, using a bounding-box early reject followed by
// Liang–Barsky clipping over t ∈ [0, 1].
//
// The final comparison is strict (t0 < t1): a segment that only touches the
// rectangle at a single point, such as one ending on an edge or grazing a
// corner, does not intersect. A segment running along an edge does.
// Unmeasurable rectangles and non-finite points never intersect.
func SegmentIntersectsRect(p1, p2 Vec2, r Rect) bool {
	if !r.Valid() || !finite(p1) || !finite(p2) {
		return false
	}
	minX, maxX := r.MinX(), r.MaxX()
	minY, maxY := r.MinY(), r.MaxY()

	if math.Max(p1.X, p2.X) < minX || math.Min(p1.X, p2.X) > maxX ||
		math.Max(p1.Y, p2.Y) < minY || math.Min(p1.Y, p2.Y) > maxY {
		return false
	}

	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	t0, t1 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{p1.X - minX, maxX - p1.X, p1.Y - minY, maxY - p1.Y}

	for i := range p {
		if p[i] == 0 {
			// Parallel to this edge: outside it means no overlap at all.
			if q[i] < 0 {
				return false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			// Entering across this edge.
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			// Leaving across this edge.
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return t0 < t1
}

// IsOppositeSide reports whether entry and exit lie on angularly opposite
// sides of the rectangle's center: the angle between them, seen from the
// center, exceeds 90°.
//
// This is a heuristic, not edge identification. It separates a genuine
// traversal (in near one end, out near the other) from a graze that backs
// off the same side, but very elongated or L-shaped footprints can be
// misjudged. Unmeasurable rectangles and non-finite points yield false.
func IsOppositeSide(entry, exit Vec2, r Rect) bool {
	if !r.Valid() || !finite(entry) || !finite(exit) {
		return false
	}
	c := r.Center()
	a0 := math.Atan2(entry.Y-c.Y, entry.X-c.X)
	a1 := math.Atan2(exit.Y-c.Y, exit.X-c.X)
	return angleBetween(a0, a1) > math.Pi/2
}

// angleBetween returns the absolute difference of two atan2 angles,
// normalized into [0, π].
func angleBetween(a0, a1 float64) float64 {
	d := math.Abs(a1 - a0)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

func finite(v Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
