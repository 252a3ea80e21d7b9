package level

import (
	"fmt"
	"math"

	"github.com/phanxgames/bridges"
)

// Shape is the hit area of a region, in the region's local coordinates.
// At most one of Rect, Circle and Polygon is set; none makes the region a
// group.
type Shape struct {
	Rect    *bridges.Rect
	Circle  *Circle
	Polygon []bridges.Vec2
}

// Circle is a circular hit area.
type Circle struct {
	CenterX, CenterY, Radius float64
}

// RegionSpec describes one region of a level's terrain tree.
type RegionSpec struct {
	Name     string
	Terrain  bridges.Terrain
	Shape    Shape
	X, Y     float64
	Scale    float64
	ZIndex   int
	Children []RegionSpec
}

// BridgeSpec describes one bridge: its identifier and rectangular footprint
// in map coordinates.
type BridgeSpec struct {
	ID        string
	Footprint bridges.Rect
}

// Level is a playable map definition.
type Level struct {
	ID      string
	Name    string
	ViewBox bridges.Rect
	Regions []RegionSpec
	Bridges []BridgeSpec
}

// Validate checks the level for structural errors.
//
// Postcondition: Returns nil when Build will produce a map whose bridges all
// have measurable footprints.
func (l *Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("level ID must not be empty")
	}
	if l.Name == "" {
		return fmt.Errorf("level %q: name must not be empty", l.ID)
	}
	if !l.ViewBox.Valid() || l.ViewBox.Width <= 0 || l.ViewBox.Height <= 0 {
		return fmt.Errorf("level %q: view_box must have a positive size", l.ID)
	}
	if len(l.Regions) == 0 {
		return fmt.Errorf("level %q: must contain at least one region", l.ID)
	}
	for i := range l.Regions {
		if err := l.Regions[i].validate(); err != nil {
			return fmt.Errorf("level %q: %w", l.ID, err)
		}
	}
	if len(l.Bridges) == 0 {
		return fmt.Errorf("level %q: must contain at least one bridge", l.ID)
	}
	seen := make(map[string]bool, len(l.Bridges))
	for _, b := range l.Bridges {
		if b.ID == "" {
			return fmt.Errorf("level %q: bridge ID must not be empty", l.ID)
		}
		if seen[b.ID] {
			return fmt.Errorf("level %q: duplicate bridge %q", l.ID, b.ID)
		}
		seen[b.ID] = true
		if !b.Footprint.Valid() || b.Footprint.Width <= 0 || b.Footprint.Height <= 0 {
			return fmt.Errorf("level %q: bridge %q: footprint must have a positive size", l.ID, b.ID)
		}
	}
	return nil
}

func (r *RegionSpec) validate() error {
	if r.Name == "" {
		return fmt.Errorf("region name must not be empty")
	}
	shapes := 0
	if r.Shape.Rect != nil {
		shapes++
		if !r.Shape.Rect.Valid() {
			return fmt.Errorf("region %q: rect must be finite with a non-negative size", r.Name)
		}
	}
	if r.Shape.Circle != nil {
		shapes++
		if r.Shape.Circle.Radius <= 0 || math.IsNaN(r.Shape.Circle.Radius) {
			return fmt.Errorf("region %q: circle radius must be positive", r.Name)
		}
	}
	if r.Shape.Polygon != nil {
		shapes++
		if len(r.Shape.Polygon) < 3 {
			return fmt.Errorf("region %q: polygon needs at least 3 points", r.Name)
		}
	}
	if shapes > 1 {
		return fmt.Errorf("region %q: at most one of rect, circle and polygon may be set", r.Name)
	}
	if shapes == 0 && len(r.Children) == 0 {
		return fmt.Errorf("region %q: needs a shape or children", r.Name)
	}
	if r.Scale < 0 {
		return fmt.Errorf("region %q: scale must not be negative", r.Name)
	}
	for i := range r.Children {
		if err := r.Children[i].validate(); err != nil {
			return fmt.Errorf("region %q: %w", r.Name, err)
		}
	}
	return nil
}

// Build creates the level's map. Terrain regions keep their declared order
// and bridges are placed in a group above all terrain. The map is not
// ready; the caller decides when to call MarkReady.
func (l *Level) Build() *bridges.Map {
	m := bridges.NewMap(l.ViewBox)
	for _, spec := range l.Regions {
		m.Root().AddChild(spec.build())
	}

	spans := bridges.NewGroup("bridges", bridges.TerrainNone)
	spans.SetZIndex(1)
	for _, b := range l.Bridges {
		spans.AddChild(bridges.NewBridge(b.ID, bridges.HitRect{
			X: b.Footprint.X, Y: b.Footprint.Y, Width: b.Footprint.Width, Height: b.Footprint.Height,
		}))
	}
	m.Root().AddChild(spans)
	return m
}

func (r *RegionSpec) build() *bridges.Region {
	var reg *bridges.Region
	switch {
	case r.Shape.Rect != nil:
		rc := r.Shape.Rect
		reg = bridges.NewArea(r.Name, r.Terrain, bridges.HitRect{X: rc.X, Y: rc.Y, Width: rc.Width, Height: rc.Height})
	case r.Shape.Circle != nil:
		c := r.Shape.Circle
		reg = bridges.NewArea(r.Name, r.Terrain, bridges.HitCircle{CenterX: c.CenterX, CenterY: c.CenterY, Radius: c.Radius})
	case r.Shape.Polygon != nil:
		pts := make([]bridges.Vec2, len(r.Shape.Polygon))
		copy(pts, r.Shape.Polygon)
		reg = bridges.NewArea(r.Name, r.Terrain, bridges.HitPolygon{Points: pts})
	default:
		reg = bridges.NewGroup(r.Name, r.Terrain)
	}
	reg.X, reg.Y = r.X, r.Y
	if r.Scale > 0 {
		reg.ScaleX, reg.ScaleY = r.Scale, r.Scale
	}
	reg.SetZIndex(r.ZIndex)
	for _, child := range r.Children {
		reg.AddChild(child.build())
	}
	return reg
}
