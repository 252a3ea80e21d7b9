package bridges

import "math"

// HitShape is a hit-testable area in a region's local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
	// Bounds returns the local-space bounding box. ok is false when the
	// shape cannot be measured.
	Bounds() (r Rect, ok bool)
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Bounds returns the rectangle itself.
func (r HitRect) Bounds() (Rect, bool) {
	b := Rect{r.X, r.Y, r.Width, r.Height}
	return b, b.Valid()
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Bounds returns the square enclosing the circle.
func (c HitCircle) Bounds() (Rect, bool) {
	b := Rect{c.CenterX - c.Radius, c.CenterY - c.Radius, 2 * c.Radius, 2 * c.Radius}
	return b, b.Valid()
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// Bounds returns the bounding box of the polygon's points.
func (p HitPolygon) Bounds() (Rect, bool) {
	if len(p.Points) < 3 {
		return Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Points {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	b := RectFromMinMax(minX, minY, maxX, maxY)
	return b, b.Valid()
}

// worldAABB computes the axis-aligned bounding box of a local rectangle
// transformed by the given affine matrix.
func worldAABB(transform [6]float64, local Rect) Rect {
	x0, y0 := transformPoint(transform, local.MinX(), local.MinY())
	x1, y1 := transformPoint(transform, local.MaxX(), local.MinY())
	x2, y2 := transformPoint(transform, local.MaxX(), local.MaxY())
	x3, y3 := transformPoint(transform, local.MinX(), local.MaxY())

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return RectFromMinMax(minX, minY, maxX, maxY)
}
