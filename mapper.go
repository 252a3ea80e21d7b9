package bridges

import "math"

// Mapper converts screen positions into map-local coordinates by inverting
// the map's current display transform.
type Mapper struct {
	// viewMatrix maps map space to screen space.
	viewMatrix    [6]float64
	invViewMatrix [6]float64
	laidOut       bool
}

// NewMapper returns a mapper with no transform; ToLocal fails until Layout
// or SetTransform is called.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Layout installs the transform that fits viewBox (map space) centered
// inside viewport (screen space) at the largest uniform scale that shows
// all of it ("xMidYMid meet"). An empty viewBox or viewport leaves the
// mapper without a transform.
func (m *Mapper) Layout(viewBox, viewport Rect) {
	if viewBox.Width <= 0 || viewBox.Height <= 0 || viewport.Width <= 0 || viewport.Height <= 0 ||
		!viewBox.Valid() || !viewport.Valid() {
		m.Clear()
		return
	}
	scale := math.Min(viewport.Width/viewBox.Width, viewport.Height/viewBox.Height)
	tx := viewport.X + (viewport.Width-viewBox.Width*scale)/2 - viewBox.X*scale
	ty := viewport.Y + (viewport.Height-viewBox.Height*scale)/2 - viewBox.Y*scale
	m.SetTransform([6]float64{scale, 0, 0, scale, tx, ty})
}

// SetTransform installs an explicit map→screen affine matrix. A singular
// matrix leaves the mapper without a transform.
func (m *Mapper) SetTransform(view [6]float64) {
	inv, ok := invertAffine(view)
	if !ok {
		m.Clear()
		return
	}
	m.viewMatrix = view
	m.invViewMatrix = inv
	m.laidOut = true
}

// Clear drops the transform, e.g. while the map is being laid out again.
func (m *Mapper) Clear() {
	m.viewMatrix = identityTransform
	m.invViewMatrix = identityTransform
	m.laidOut = false
}

// LaidOut reports whether a transform is installed.
func (m *Mapper) LaidOut() bool {
	return m.laidOut
}

// Transform returns the map→screen matrix.
func (m *Mapper) Transform() [6]float64 {
	return m.viewMatrix
}

// ToLocal converts a screen position to map coordinates. ok is false when
// no transform is available or the position is not finite.
func (m *Mapper) ToLocal(screen Vec2) (local Vec2, ok bool) {
	if !m.laidOut || !finite(screen) {
		return Vec2{}, false
	}
	x, y := transformPoint(m.invViewMatrix, screen.X, screen.Y)
	return Vec2{x, y}, true
}

// ToScreen converts a map position to screen coordinates.
func (m *Mapper) ToScreen(local Vec2) Vec2 {
	x, y := transformPoint(m.viewMatrix, local.X, local.Y)
	return Vec2{x, y}
}
