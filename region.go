package bridges

import (
	"fmt"
	"sort"
)

// Region is one element of a map's containment hierarchy: a land mass, a
// stretch of water, a bridge, a decorative group or the path overlay.
// A single flat struct is used for every kind of region.
type Region struct {
	Name string

	// Terrain is the explicit tag; TerrainNone defers to the ancestors.
	Terrain Terrain
	// BridgeID is non-empty for bridge regions.
	BridgeID string

	// Hierarchy
	Parent   *Region
	children []*Region

	// Transform (local, relative to Parent)
	X, Y   float64
	ScaleX float64
	ScaleY float64

	// Hit testing. Regions without a HitShape are groups: never hit
	// themselves, but their tags apply to hit descendants.
	HitShape     HitShape
	Visible      bool
	Interactable bool
	ZIndex       int

	childrenSorted bool
	sortedChildren []*Region
}

func regionDefaults(r *Region) {
	r.ScaleX = 1
	r.ScaleY = 1
	r.Visible = true
	r.Interactable = true
	r.childrenSorted = true
}

// NewGroup creates a region with no hit area. A terrain tag on a group applies
// to every untagged descendant.
func NewGroup(name string, terrain Terrain) *Region {
	r := &Region{Name: name, Terrain: terrain}
	regionDefaults(r)
	return r
}

// NewArea creates a terrain region with the given hit shape.
func NewArea(name string, terrain Terrain, shape HitShape) *Region {
	r := &Region{Name: name, Terrain: terrain, HitShape: shape}
	regionDefaults(r)
	return r
}

// NewBridge creates a bridge region with a rectangular footprint.
func NewBridge(id string, footprint HitRect) *Region {
	r := &Region{Name: id, BridgeID: id, HitShape: footprint}
	regionDefaults(r)
	return r
}

// IsBridge reports whether the region is a bridge.
func (r *Region) IsBridge() bool {
	return r.BridgeID != ""
}

// --- Tree manipulation ---

// AddChild appends child to this region's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this region (cycle).
func (r *Region) AddChild(child *Region) {
	if child == nil {
		panic("bridges: cannot add nil child")
	}
	if isAncestor(child, r) {
		panic("bridges: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = r
	r.children = append(r.children, child)
	r.childrenSorted = false
}

// RemoveChild detaches child from this region.
// Panics if child.Parent != r.
func (r *Region) RemoveChild(child *Region) {
	if child.Parent != r {
		panic("bridges: child's parent is not this region")
	}
	r.removeChildByPtr(child)
	child.Parent = nil
	r.childrenSorted = false
}

// RemoveFromParent detaches this region from its parent.
// No-op if this region has no parent.
func (r *Region) RemoveFromParent() {
	if r.Parent == nil {
		return
	}
	r.Parent.RemoveChild(r)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (r *Region) Children() []*Region {
	return r.children
}

// NumChildren returns the number of children.
func (r *Region) NumChildren() int {
	return len(r.children)
}

// SetZIndex sets the region's ZIndex and marks the parent's children as unsorted.
func (r *Region) SetZIndex(z int) {
	if r.ZIndex == z {
		return
	}
	r.ZIndex = z
	if r.Parent != nil {
		r.Parent.childrenSorted = false
	}
}

// PaintOrder returns the children sorted by ZIndex, ties kept in insertion
// order. The returned slice MUST NOT be mutated by the caller.
func (r *Region) PaintOrder() []*Region {
	if r.childrenSorted {
		if r.sortedChildren == nil {
			return r.children
		}
		return r.sortedChildren
	}
	r.sortedChildren = append(r.sortedChildren[:0], r.children...)
	sort.SliceStable(r.sortedChildren, func(i, j int) bool {
		return r.sortedChildren[i].ZIndex < r.sortedChildren[j].ZIndex
	})
	r.childrenSorted = true
	return r.sortedChildren
}

// Bounds returns the map-space bounding box of the region's hit shape.
// The error wraps ErrMalformedGeometry when the shape is missing or cannot
// be measured.
func (r *Region) Bounds() (Rect, error) {
	if r.HitShape == nil {
		return Rect{}, fmt.Errorf("region %q has no hit shape: %w", r.Name, ErrMalformedGeometry)
	}
	local, ok := r.HitShape.Bounds()
	if !ok {
		return Rect{}, fmt.Errorf("region %q: %w", r.Name, ErrMalformedGeometry)
	}
	b := worldAABB(worldTransform(r), local)
	if !b.Valid() {
		return Rect{}, fmt.Errorf("region %q transform: %w", r.Name, ErrMalformedGeometry)
	}
	return b, nil
}

// Walk visits r and its descendants in painter order (parents before
// children, children by ZIndex). Returning false from fn skips the subtree.
func (r *Region) Walk(fn func(*Region) bool) {
	if !fn(r) {
		return
	}
	for _, child := range r.PaintOrder() {
		child.Walk(fn)
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of region.
func isAncestor(candidate, region *Region) bool {
	for p := region; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from r.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (r *Region) removeChildByPtr(child *Region) {
	for i, c := range r.children {
		if c == child {
			copy(r.children[i:], r.children[i+1:])
			r.children[len(r.children)-1] = nil
			r.children = r.children[:len(r.children)-1]
			return
		}
	}
}
