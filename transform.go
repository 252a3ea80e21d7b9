package bridges

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix. ok is false when
// the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) (inv [6]float64, ok bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// localTransform is Scale(ScaleX, ScaleY) followed by Translate(X, Y).
// Regions do not rotate or skew, so their footprints stay axis-aligned.
func localTransform(r *Region) [6]float64 {
	return [6]float64{r.ScaleX, 0, 0, r.ScaleY, r.X, r.Y}
}

// worldTransform composes the local transforms from the root down to r.
func worldTransform(r *Region) [6]float64 {
	if r.Parent == nil {
		return localTransform(r)
	}
	return multiplyAffine(worldTransform(r.Parent), localTransform(r))
}

// WorldTransform returns the affine matrix from r's local space to map
// space, in [a, b, c, d, tx, ty] layout.
func (r *Region) WorldTransform() [6]float64 {
	return worldTransform(r)
}

// ToMap converts a point in r's local space into map space.
func (r *Region) ToMap(lx, ly float64) (float64, float64) {
	return transformPoint(worldTransform(r), lx, ly)
}

// FromMap converts a map-space point into r's local space. Degenerate
// regions (zero scale) return ok == false.
func (r *Region) FromMap(mx, my float64) (lx, ly float64, ok bool) {
	inv, ok := invertAffine(worldTransform(r))
	if !ok {
		return 0, 0, false
	}
	lx, ly = transformPoint(inv, mx, my)
	return lx, ly, true
}
