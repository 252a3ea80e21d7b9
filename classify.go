package bridges

// regionContainsMap tests whether the map-space point falls inside a region's
// hit shape. Regions without a HitShape are not hit-testable.
func regionContainsMap(r *Region, mx, my float64) bool {
	if r.HitShape == nil {
		return false
	}
	lx, ly, ok := r.FromMap(mx, my)
	if !ok {
		return false
	}
	return r.HitShape.Contains(lx, ly)
}

// collectHittable walks the tree in painter order (DFS, ZIndex-sorted),
// appending hit-testable regions to buf. Skips Visible=false or
// Interactable=false subtrees.
func collectHittable(r *Region, buf []*Region) []*Region {
	if !r.Visible || !r.Interactable {
		return buf
	}
	if r.HitShape != nil {
		buf = append(buf, r)
	}
	for _, child := range r.PaintOrder() {
		buf = collectHittable(child, buf)
	}
	return buf
}

// hitTest finds the topmost hit-testable region at the map-space point.
// Returns nil if nothing is hit.
func (m *Map) hitTest(p Vec2) *Region {
	m.hitBuf = collectHittable(m.root, m.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost region first.
	for i := len(m.hitBuf) - 1; i >= 0; i-- {
		r := m.hitBuf[i]
		if regionContainsMap(r, p.X, p.Y) {
			return r
		}
	}
	return nil
}

// Classify returns whether the map-space point lies over land, water or a
// bridge. Starting from the topmost region under the point it walks up the
// containment hierarchy until it meets a terrain tag or a bridge; reaching
// the root without one classifies as water. Points outside the map bounds
// are off-map. The path overlay never takes part in the hit test.
func (m *Map) Classify(p Vec2) Area {
	if !m.bounds.Contains(p.X, p.Y) {
		return Area{Kind: AreaOffMap}
	}

	if m.overlay != nil {
		prev := m.overlay.Interactable
		m.overlay.Interactable = false
		defer func() { m.overlay.Interactable = prev }()
	}

	for r := m.hitTest(p); r != nil && r != m.root; r = r.Parent {
		switch {
		case r.Terrain == TerrainLand:
			return Area{Kind: AreaLand}
		case r.Terrain == TerrainWater:
			return Area{Kind: AreaWater}
		case r.IsBridge():
			return Area{Kind: AreaBridge, BridgeID: r.BridgeID}
		}
	}
	return Area{Kind: AreaWater}
}
