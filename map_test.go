package bridges

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestClassifyGridMap(t *testing.T) {
	m := gridMap(t)
	tests := []struct {
		name string
		p    Vec2
		want Area
	}{
		{"land A", Vec2{50, 50}, Area{Kind: AreaLand}},
		{"land C", Vec2{300, 250}, Area{Kind: AreaLand}},
		{"vertical strait", Vec2{200, 20}, Area{Kind: AreaWater}},
		{"horizontal strait", Vec2{50, 150}, Area{Kind: AreaWater}},
		{"bridge over water", Vec2{200, 50}, Area{Kind: AreaBridge, BridgeID: "b1"}},
		{"bridge end over land", Vec2{185, 50}, Area{Kind: AreaBridge, BridgeID: "b1"}},
		{"off map left", Vec2{-1, 50}, Area{Kind: AreaOffMap}},
		{"off map below", Vec2{50, 301}, Area{Kind: AreaOffMap}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Classify(tt.p)
			if got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.p, got, tt.want)
			}
			if got.Drawable() != (tt.want.Kind == AreaLand || tt.want.Kind == AreaBridge) {
				t.Errorf("Drawable() = %v", got.Drawable())
			}
		})
	}
}

func TestClassifyUntaggedIsWater(t *testing.T) {
	m := NewMap(Rect{Width: 100, Height: 100})
	m.Root().AddChild(NewArea("decor", TerrainNone, HitRect{Width: 50, Height: 50}))
	if got := m.Classify(Vec2{10, 10}); got.Kind != AreaWater {
		t.Errorf("untagged region = %v, want water", got)
	}
	if got := m.Classify(Vec2{80, 80}); got.Kind != AreaWater {
		t.Errorf("empty space = %v, want water", got)
	}
}

func TestClassifyWalksUpToTag(t *testing.T) {
	m := NewMap(Rect{Width: 100, Height: 100})
	island := NewGroup("island", TerrainLand)
	inner := NewGroup("inner", TerrainNone)
	inner.AddChild(NewArea("tree", TerrainNone, HitCircle{CenterX: 20, CenterY: 20, Radius: 5}))
	island.AddChild(inner)
	m.Root().AddChild(island)

	if got := m.Classify(Vec2{20, 20}); got.Kind != AreaLand {
		t.Errorf("nested untagged shape = %v, want land", got)
	}
}

func TestClassifyIgnoresOverlay(t *testing.T) {
	m := gridMap(t)
	overlay := NewArea("path", TerrainWater, HitRect{Width: 400, Height: 300})
	m.SetOverlay(overlay)

	if got := m.Classify(Vec2{50, 50}); got.Kind != AreaLand {
		t.Errorf("with overlay = %v, want land", got)
	}
	if !overlay.Interactable {
		t.Error("overlay interactability should be restored")
	}
	if m.Overlay() != overlay || overlay.Parent != m.Root() {
		t.Error("overlay should be attached under the root")
	}
}

func TestClassifySkipsHiddenRegions(t *testing.T) {
	m := NewMap(Rect{Width: 100, Height: 100})
	land := NewArea("land", TerrainLand, HitRect{Width: 100, Height: 100})
	lake := NewArea("lake", TerrainWater, HitRect{X: 40, Y: 40, Width: 20, Height: 20})
	m.Root().AddChild(land)
	m.Root().AddChild(lake)

	if got := m.Classify(Vec2{50, 50}); got.Kind != AreaWater {
		t.Fatalf("lake = %v, want water", got)
	}
	lake.Visible = false
	if got := m.Classify(Vec2{50, 50}); got.Kind != AreaLand {
		t.Errorf("hidden lake = %v, want land", got)
	}
}

func TestMarkReadyRegistersInTreeOrder(t *testing.T) {
	m := gridMap(t)
	if m.BridgeCount() != 7 {
		t.Fatalf("BridgeCount = %d, want 7", m.BridgeCount())
	}
	for i, b := range m.Bridges() {
		want := []string{"b1", "b2", "b3", "b4", "b5", "b6", "b7"}[i]
		if b.ID != want || !b.Valid {
			t.Errorf("Bridges[%d] = %+v, want valid %q", i, b, want)
		}
	}
	b, ok := m.Bridge("b3")
	if !ok || b.Footprint != (Rect{X: 240, Y: 130, Width: 20, Height: 40}) {
		t.Errorf("Bridge(b3) = %+v, %v", b, ok)
	}
	if errs := m.MarkReady(); errs != nil {
		t.Errorf("second MarkReady = %v, want nil", errs)
	}
}

func TestMarkReadyDuplicateAndMalformed(t *testing.T) {
	m := NewMap(Rect{Width: 100, Height: 100})
	m.Root().AddChild(NewBridge("x", HitRect{Width: 10, Height: 10}))
	m.Root().AddChild(NewBridge("x", HitRect{X: 20, Width: 10, Height: 10}))
	m.Root().AddChild(NewBridge("bad", HitRect{Width: -1, Height: 10}))

	errs := m.MarkReady()
	if len(errs) != 2 {
		t.Fatalf("errors = %v, want 2", errs)
	}
	if !errors.Is(errs[1], ErrMalformedGeometry) {
		t.Errorf("errs[1] = %v, want ErrMalformedGeometry", errs[1])
	}
	if m.BridgeCount() != 2 {
		t.Errorf("BridgeCount = %d, want 2 (duplicate dropped, malformed kept)", m.BridgeCount())
	}
	bad, _ := m.Bridge("bad")
	if bad.Valid {
		t.Error("malformed bridge should be invalid")
	}
	if m.oppositeSide("bad", Vec2{-5, 5}, Vec2{5, 5}) {
		t.Error("oppositeSide on malformed bridge should fail closed")
	}
	if m.oppositeSide("missing", Vec2{-5, 5}, Vec2{5, 5}) {
		t.Error("oppositeSide on unknown bridge should fail closed")
	}
}

func TestFirstIntersectingRegistrationOrder(t *testing.T) {
	m := NewMap(Rect{Width: 100, Height: 100})
	m.Root().AddChild(NewBridge("second", HitRect{X: 60, Y: 0, Width: 10, Height: 10}))
	m.Root().AddChild(NewBridge("first", HitRect{X: 20, Y: 0, Width: 10, Height: 10}))
	m.MarkReady()

	id, ok := m.FirstIntersecting(Vec2{0, 5}, Vec2{100, 5})
	if !ok || id != "second" {
		t.Errorf("FirstIntersecting = %q, %v; want second (registered first)", id, ok)
	}
	if _, ok := m.FirstIntersecting(Vec2{0, 50}, Vec2{100, 50}); ok {
		t.Error("segment below every bridge should not intersect")
	}
}

func TestWaitReady(t *testing.T) {
	m := NewMap(Rect{Width: 10, Height: 10})
	if m.IsReady() {
		t.Fatal("new map should not be ready")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := m.WaitReady(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitReady before ready = %v, want DeadlineExceeded", err)
	}

	go m.MarkReady()
	if err := m.WaitReady(context.Background()); err != nil {
		t.Fatalf("WaitReady = %v", err)
	}
	select {
	case <-m.Ready():
	default:
		t.Error("Ready channel should be closed")
	}
}

// Maps share no package state, so separate goroutines can each build and
// query their own.
func TestIndependentMapsConcurrently(t *testing.T) {
	const perWorker = 200
	var wg sync.WaitGroup
	results := make([][]Area, 2)
	for w := range results {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				m := NewMap(Rect{Width: 30, Height: 10})
				m.Root().AddChild(NewArea("west", TerrainLand, HitRect{Width: 10, Height: 10}))
				m.Root().AddChild(NewArea("east", TerrainLand, HitRect{X: 20, Width: 10, Height: 10}))
				m.Root().AddChild(NewBridge("b", HitRect{X: 10, Y: 3, Width: 10, Height: 4}))
				if errs := m.MarkReady(); len(errs) > 0 {
					results[w] = nil
					return
				}
				results[w] = append(results[w], m.Classify(Vec2{5, 5}), m.Classify(Vec2{15, 5}), m.Classify(Vec2{15, 1}))
			}
		}(w)
	}
	wg.Wait()

	want := []Area{{Kind: AreaLand}, {Kind: AreaBridge, BridgeID: "b"}, {Kind: AreaWater}}
	for w, got := range results {
		if len(got) != 3*perWorker {
			t.Fatalf("worker %d classified %d points, want %d", w, len(got), 3*perWorker)
		}
		for i, a := range got {
			if a != want[i%3] {
				t.Fatalf("worker %d point %d = %v, want %v", w, i, a, want[i%3])
			}
		}
	}
}
