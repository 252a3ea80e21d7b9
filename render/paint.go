package render

import (
	"image/color"

	"github.com/phanxgames/bridges"
)

// WalkPaint visits the visible regions of m in paint order, bottom first,
// passing each region's effective terrain: its own tag, or the nearest tag
// above it. The path overlay and its subtree are skipped.
func WalkPaint(m *bridges.Map, fn func(r *bridges.Region, terrain bridges.Terrain)) {
	overlay := m.Overlay()
	m.Root().Walk(func(r *bridges.Region) bool {
		if !r.Visible || r == overlay {
			return false
		}
		fn(r, effectiveTerrain(r))
		return true
	})
}

// effectiveTerrain returns the nearest terrain tag on r or its ancestors.
func effectiveTerrain(r *bridges.Region) bridges.Terrain {
	for ; r != nil; r = r.Parent {
		if r.Terrain != bridges.TerrainNone {
			return r.Terrain
		}
	}
	return bridges.TerrainNone
}

// RegionColor returns the fill of a region. Untagged terrain paints as
// water, matching how it classifies.
func (p Palette) RegionColor(r *bridges.Region, terrain bridges.Terrain, crossed bool) color.Color {
	switch {
	case r.IsBridge() && crossed:
		return p.BridgeCrossed
	case r.IsBridge():
		return p.Bridge
	case terrain == bridges.TerrainLand:
		return p.Land
	default:
		return p.Water
	}
}
