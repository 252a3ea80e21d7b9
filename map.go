package bridges

import (
	"context"
	"fmt"
)

// Bridge is a registered bridge: its identifier and map-space footprint.
// Valid is false when the footprint could not be measured; every geometry
// test against an invalid bridge fails closed.
type Bridge struct {
	ID        string
	Footprint Rect
	Valid     bool
}

// Map is the read-only terrain model the engine plays on: a region tree in
// map-local coordinates, the map bounds, an optional path overlay and the
// bridges registered when the map became ready.
type Map struct {
	root    *Region
	bounds  Rect
	overlay *Region

	bridges     []Bridge
	bridgeIndex map[string]int

	ready     chan struct{}
	readyDone bool

	hitBuf []*Region
}

// NewMap creates an empty map with the given bounds and a root group.
func NewMap(bounds Rect) *Map {
	return &Map{
		root:        NewGroup("root", TerrainNone),
		bounds:      bounds,
		bridgeIndex: make(map[string]int),
		ready:       make(chan struct{}),
	}
}

// Root returns the map's root region.
func (m *Map) Root() *Region {
	return m.root
}

// Bounds returns the map-space rectangle that holds drawable content.
func (m *Map) Bounds() Rect {
	return m.bounds
}

// SetOverlay attaches the region the drawn path is rendered into. It is kept
// above all terrain and excluded from classification.
func (m *Map) SetOverlay(r *Region) {
	if m.overlay != nil {
		m.overlay.RemoveFromParent()
	}
	m.overlay = r
	if r == nil {
		return
	}
	r.SetZIndex(int(^uint(0) >> 1))
	m.root.AddChild(r)
}

// Overlay returns the path overlay region, or nil.
func (m *Map) Overlay() *Region {
	return m.overlay
}

// MarkReady registers every bridge region in tree order and closes the
// readiness signal. It runs once; later calls return nil. The returned
// errors describe bridges whose footprint could not be measured or whose
// identifier was a duplicate; measured-or-not, every uniquely named bridge
// counts toward the total.
func (m *Map) MarkReady() []error {
	if m.readyDone {
		return nil
	}
	var errs []error
	walkTree(m.root, func(r *Region) {
		if !r.IsBridge() {
			return
		}
		if _, dup := m.bridgeIndex[r.BridgeID]; dup {
			errs = append(errs, fmt.Errorf("duplicate bridge id %q", r.BridgeID))
			return
		}
		fp, err := r.Bounds()
		if err != nil {
			errs = append(errs, fmt.Errorf("bridge %q: %w", r.BridgeID, err))
		}
		m.bridgeIndex[r.BridgeID] = len(m.bridges)
		m.bridges = append(m.bridges, Bridge{ID: r.BridgeID, Footprint: fp, Valid: err == nil})
	})
	m.readyDone = true
	close(m.ready)
	return errs
}

// Ready returns a channel closed once the map has registered its bridges.
func (m *Map) Ready() <-chan struct{} {
	return m.ready
}

// IsReady reports whether MarkReady has run.
func (m *Map) IsReady() bool {
	select {
	case <-m.ready:
		return true
	default:
		return false
	}
}

// WaitReady blocks until the map is ready or ctx is done.
func (m *Map) WaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for map: %w", ctx.Err())
	}
}

// Bridges returns the registered bridges in registration order. The returned
// slice MUST NOT be mutated.
func (m *Map) Bridges() []Bridge {
	return m.bridges
}

// Bridge looks up a registered bridge by identifier.
func (m *Map) Bridge(id string) (Bridge, bool) {
	i, ok := m.bridgeIndex[id]
	if !ok {
		return Bridge{}, false
	}
	return m.bridges[i], true
}

// BridgeCount returns the number of registered bridges.
func (m *Map) BridgeCount() int {
	return len(m.bridges)
}

// FirstIntersecting returns the first bridge, in registration order, whose
// footprint the segment p1→p2 intersects.
func (m *Map) FirstIntersecting(p1, p2 Vec2) (string, bool) {
	for _, b := range m.bridges {
		if b.Valid && SegmentIntersectsRect(p1, p2, b.Footprint) {
			return b.ID, true
		}
	}
	return "", false
}

// oppositeSide runs IsOppositeSide against a registered bridge, failing
// closed for unknown or unmeasurable bridges.
func (m *Map) oppositeSide(id string, entry, exit Vec2) bool {
	b, ok := m.Bridge(id)
	if !ok || !b.Valid {
		return false
	}
	return IsOppositeSide(entry, exit, b.Footprint)
}

// walkTree visits r and its descendants in insertion (document) order.
func walkTree(r *Region, fn func(*Region)) {
	fn(r)
	for _, child := range r.children {
		walkTree(child, fn)
	}
}
