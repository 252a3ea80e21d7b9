package bridges

import (
	"context"
	"math"
	"testing"
)

// gridMap builds four land masses separated by a cross of water:
//
//	A (top-left)     | B (top-right)
//	-----------------+-----------------
//	D (bottom-left)  | C (bottom-right)
//
// with seven bridges: b1, b2 join A-B; b3, b4 join B-C; b5, b6 join C-D;
// b7 joins D-A. A and D have odd degree, so an Euler path runs from A to D.
func gridMap(t testing.TB) *Map {
	t.Helper()
	m := NewMap(Rect{Width: 400, Height: 300})

	m.Root().AddChild(NewArea("water", TerrainWater, HitRect{Width: 400, Height: 300}))

	land := NewGroup("land", TerrainLand)
	land.AddChild(NewArea("A", TerrainNone, HitRect{X: 0, Y: 0, Width: 190, Height: 140}))
	land.AddChild(NewArea("B", TerrainNone, HitRect{X: 210, Y: 0, Width: 190, Height: 140}))
	land.AddChild(NewArea("C", TerrainNone, HitRect{X: 210, Y: 160, Width: 190, Height: 140}))
	land.AddChild(NewArea("D", TerrainNone, HitRect{X: 0, Y: 160, Width: 190, Height: 140}))
	m.Root().AddChild(land)

	spans := NewGroup("bridges", TerrainNone)
	spans.SetZIndex(1)
	for _, b := range []struct {
		id string
		r  HitRect
	}{
		{"b1", HitRect{X: 180, Y: 40, Width: 40, Height: 20}},
		{"b2", HitRect{X: 180, Y: 90, Width: 40, Height: 20}},
		{"b3", HitRect{X: 240, Y: 130, Width: 20, Height: 40}},
		{"b4", HitRect{X: 330, Y: 130, Width: 20, Height: 40}},
		{"b5", HitRect{X: 180, Y: 190, Width: 40, Height: 20}},
		{"b6", HitRect{X: 180, Y: 240, Width: 40, Height: 20}},
		{"b7", HitRect{X: 90, Y: 130, Width: 20, Height: 40}},
	} {
		spans.AddChild(NewBridge(b.id, b.r))
	}
	m.Root().AddChild(spans)

	if errs := m.MarkReady(); len(errs) != 0 {
		t.Fatalf("MarkReady errors: %v", errs)
	}
	return m
}

// eulerWaypoints is a stroke over gridMap crossing b1, b2, b7, b5, b3, b4
// and b6 in that order, from A to D.
var eulerWaypoints = []Vec2{
	{150, 50}, {238, 50}, {238, 100}, {150, 100}, {100, 100}, {100, 200},
	{250, 200}, {250, 100}, {340, 100}, {340, 250}, {150, 250},
}

// polyline expands waypoints into points no closer than step, starting with
// the first waypoint.
func polyline(step float64, waypoints ...Vec2) []Vec2 {
	if len(waypoints) == 0 {
		return nil
	}
	out := []Vec2{waypoints[0]}
	for i := 1; i < len(waypoints); i++ {
		a, b := waypoints[i-1], waypoints[i]
		d := b.Sub(a)
		n := int(math.Floor(math.Sqrt(d.LenSq()) / step))
		if n < 1 {
			n = 1
		}
		for k := 1; k <= n; k++ {
			t := float64(k) / float64(n)
			out = append(out, Vec2{a.X + d.X*t, a.Y + d.Y*t})
		}
	}
	return out
}

type recordingRenderer struct {
	path    []Vec2
	crossed map[string]bool
	counter [2]int
	draws   int
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{crossed: make(map[string]bool)}
}

func (r *recordingRenderer) DrawPath(points []Vec2) {
	r.path = append(r.path[:0], points...)
	r.draws++
}

func (r *recordingRenderer) SetBridgeCrossed(id string, crossed bool) {
	r.crossed[id] = crossed
}

func (r *recordingRenderer) SetCounter(crossed, total int) {
	r.counter = [2]int{crossed, total}
}

func (r *recordingRenderer) crossedCount() int {
	n := 0
	for _, c := range r.crossed {
		if c {
			n++
		}
	}
	return n
}

type recordingSink struct {
	events []Event
}

func (s *recordingSink) EmitEvent(e Event) {
	s.events = append(s.events, e)
}

func (s *recordingSink) count(typ EventType) int {
	n := 0
	for _, e := range s.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

type recordingRecorder struct {
	levels []int
	err    error
}

func (r *recordingRecorder) MarkCompleted(_ context.Context, level int) error {
	r.levels = append(r.levels, level)
	return r.err
}

type testGame struct {
	*Game
	renderer *recordingRenderer
	board    *MessageBoard
	sink     *recordingSink
	recorder *recordingRecorder
}

// newTestGame wires a game over m with an identity mapper and recording
// collaborators.
func newTestGame(t testing.TB, m *Map) *testGame {
	t.Helper()
	mapper := NewMapper()
	mapper.SetTransform(identityTransform)
	cfg := DefaultConfig()
	cfg.Level = 2
	tg := &testGame{
		Game:     NewGame(m, mapper, cfg, nil),
		renderer: newRecordingRenderer(),
		board:    NewMessageBoard(),
		sink:     &recordingSink{},
		recorder: &recordingRecorder{},
	}
	tg.SetRenderer(tg.renderer)
	tg.SetPresenter(tg.board)
	tg.SetEventSink(tg.sink)
	tg.SetRecorder(tg.recorder)
	return tg
}

// draw starts a stroke on the first point and moves through the rest
// without ending it.
func (tg *testGame) draw(t testing.TB, pts []Vec2) {
	t.Helper()
	if err := tg.Start(pts[0]); err != nil {
		t.Fatalf("Start(%v) = %v", pts[0], err)
	}
	for _, p := range pts[1:] {
		tg.Move(p)
	}
}

// advance runs Update with a fixed 1/60 s tick for the given duration.
func (tg *testGame) advance(seconds float64) {
	const dt = float32(1.0 / 60)
	for elapsed := 0.0; elapsed < seconds; elapsed += float64(dt) {
		tg.Update(dt)
		tg.board.Update(dt)
	}
}
