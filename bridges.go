package bridges

import (
	"math"
	"time"
)

// Vec2 is a 2D point or vector. Used for screen positions, map-local
// positions and path points alike.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Center returns the geometric center of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Valid reports whether the rectangle is measurable: every component finite
// and the size non-negative.
func (r Rect) Valid() bool {
	for _, f := range [4]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return r.Width >= 0 && r.Height >= 0
}

// RectFromMinMax builds a Rect from its edges.
func RectFromMinMax(minX, minY, maxX, maxY float64) Rect {
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Terrain is the explicit tag a region carries. Untagged regions defer to
// their ancestors.
type Terrain uint8

const (
	TerrainNone  Terrain = iota // no tag; classification keeps walking upward
	TerrainLand                 // drawable ground
	TerrainWater                // non-drawable; touching it breaks the stroke
)

// String returns the lowercase tag name used in level files.
func (t Terrain) String() string {
	switch t {
	case TerrainLand:
		return "land"
	case TerrainWater:
		return "water"
	default:
		return "none"
	}
}

// AreaKind is the outcome of classifying a map position.
type AreaKind uint8

const (
	AreaWater  AreaKind = iota // water, or nothing tagged (fail closed)
	AreaLand                   // land
	AreaBridge                 // a bridge; Area.BridgeID names it
	AreaOffMap                 // outside the map bounds
)

// Area is the classification of a single position.
type Area struct {
	Kind     AreaKind
	BridgeID string
}

// Drawable reports whether a stroke may pass through the area.
func (a Area) Drawable() bool {
	return a.Kind == AreaLand || a.Kind == AreaBridge
}

func (a Area) String() string {
	switch a.Kind {
	case AreaLand:
		return "land"
	case AreaBridge:
		return "bridge:" + a.BridgeID
	case AreaOffMap:
		return "off-map"
	default:
		return "water"
	}
}

// Severity tags a user-facing message.
type Severity uint8

const (
	SeverityInfo    Severity = iota // neutral hint (e.g. map still loading)
	SeverityWarning                 // rule violation or rejected start
	SeveritySuccess                 // level completed
	SeverityError                   // broken map content
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Message is a transient user-facing notice. A zero Duration persists until
// explicitly hidden.
type Message struct {
	Text     string
	Severity Severity
	Duration time.Duration
}

// EventType identifies a kind of game event.
type EventType uint8

const (
	EventStrokeStart   EventType = iota // a stroke was accepted
	EventBridgeCrossed                  // a bridge was marked crossed
	EventViolation                      // water contact or illegal re-cross
	EventIncomplete                     // stroke ended without crossing every bridge
	EventComplete                       // every bridge crossed; level done
	EventReset                          // session returned to idle
)

func (e EventType) String() string {
	switch e {
	case EventStrokeStart:
		return "stroke-start"
	case EventBridgeCrossed:
		return "bridge-crossed"
	case EventViolation:
		return "violation"
	case EventIncomplete:
		return "incomplete"
	case EventComplete:
		return "complete"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}
