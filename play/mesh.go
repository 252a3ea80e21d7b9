package play

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bridges"
)

// mesh is a batch of untextured triangles in screen space, drawn with the
// shared white pixel.
type mesh struct {
	verts []ebiten.Vertex
	inds  []uint16
}

func (m *mesh) reset() {
	m.verts = m.verts[:0]
	m.inds = m.inds[:0]
}

// full reports whether adding n more vertices would overflow uint16 indices.
func (m *mesh) full(n int) bool {
	return len(m.verts)+n > math.MaxUint16
}

// vertex builds a vertex sampling the centre of the white pixel, with a
// premultiplied colour.
func vertex(p bridges.Vec2, c color.Color) ebiten.Vertex {
	r, g, b, a := c.RGBA()
	return ebiten.Vertex{
		DstX:   float32(p.X),
		DstY:   float32(p.Y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(r) / 0xffff,
		ColorG: float32(g) / 0xffff,
		ColorB: float32(b) / 0xffff,
		ColorA: float32(a) / 0xffff,
	}
}

// addFan appends a fan-triangulated convex polygon. N vertices, 3*(N-2)
// indices.
func (m *mesh) addFan(points []bridges.Vec2, c color.Color) {
	n := len(points)
	if n < 3 || m.full(n) {
		return
	}
	base := uint16(len(m.verts))
	for _, p := range points {
		m.verts = append(m.verts, vertex(p, c))
	}
	// Vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		m.inds = append(m.inds, base, base+uint16(i+1), base+uint16(i+2))
	}
}

// addRibbon appends a strip of the given width following points. Interior
// joints are mitred, clamped to twice the half width at sharp corners. For N
// points: 2N vertices, 6(N-1) indices.
func (m *mesh) addRibbon(points []bridges.Vec2, width float64, c color.Color) {
	n := len(points)
	if n < 2 || m.full(2*n) {
		return
	}
	halfW := width / 2
	base := uint16(len(m.verts))

	for i := 0; i < n; i++ {
		var nx, ny float64
		switch i {
		case 0:
			nx, ny = perpendicular(points[0], points[1])
		case n - 1:
			nx, ny = perpendicular(points[n-2], points[n-1])
		default:
			// Average of adjacent segment normals (miter).
			nx0, ny0 := perpendicular(points[i-1], points[i])
			nx1, ny1 := perpendicular(points[i], points[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			ln := math.Sqrt(nx*nx + ny*ny)
			if ln > 1e-10 {
				nx /= ln
				ny /= ln
			} else {
				nx, ny = nx0, ny0
			}
			if dot := nx0*nx + ny0*ny; dot > 0.1 {
				scale := math.Min(1/dot, 2)
				nx *= scale
				ny *= scale
			}
		}
		p := points[i]
		m.verts = append(m.verts,
			vertex(bridges.Vec2{X: p.X + nx*halfW, Y: p.Y + ny*halfW}, c),
			vertex(bridges.Vec2{X: p.X - nx*halfW, Y: p.Y - ny*halfW}, c),
		)
	}

	// Two triangles per segment.
	for i := 0; i < n-1; i++ {
		v := base + uint16(i*2)
		m.inds = append(m.inds, v, v+1, v+2, v+1, v+3, v+2)
	}
}

// addDot appends a filled circle, used for a stroke of a single point.
func (m *mesh) addDot(center bridges.Vec2, radius float64, c color.Color) {
	m.addFan(circlePoints(center, radius, 16), c)
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b bridges.Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

func circlePoints(center bridges.Vec2, radius float64, segments int) []bridges.Vec2 {
	pts := make([]bridges.Vec2, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = bridges.Vec2{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	return pts
}

// shapeOutline returns the convex outline of a hit shape in screen space.
// toScreen maps the shape's local coordinates to the screen; scale is the
// resulting uniform scale, used to pick the circle tessellation.
func shapeOutline(shape bridges.HitShape, toScreen func(x, y float64) bridges.Vec2, scale float64) []bridges.Vec2 {
	switch s := shape.(type) {
	case bridges.HitRect:
		return []bridges.Vec2{
			toScreen(s.X, s.Y),
			toScreen(s.X+s.Width, s.Y),
			toScreen(s.X+s.Width, s.Y+s.Height),
			toScreen(s.X, s.Y+s.Height),
		}
	case bridges.HitCircle:
		segs := int(s.Radius * scale / 2)
		segs = max(16, min(segs, 96))
		local := circlePoints(bridges.Vec2{X: s.CenterX, Y: s.CenterY}, s.Radius, segs)
		for i, p := range local {
			local[i] = toScreen(p.X, p.Y)
		}
		return local
	case bridges.HitPolygon:
		out := make([]bridges.Vec2, len(s.Points))
		for i, p := range s.Points {
			out[i] = toScreen(p.X, p.Y)
		}
		return out
	}
	return nil
}
