package bridges

import (
	"testing"

	"pgregory.net/rapid"
)

func TestSessionStateNames(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateIdle, "idle"},
		{StateDrawingOnLand, "drawing-on-land"},
		{StateDrawingOnBridge, "drawing-on-bridge"},
		{StateViolated, "violated"},
		{StateComplete, "complete"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestSessionBeginIssuesStrokeID(t *testing.T) {
	s := newSession()
	s.begin(Vec2{1, 1})
	first, gen := s.StrokeID, s.Generation()
	s.begin(Vec2{2, 2})
	if s.StrokeID == first {
		t.Error("each stroke should get a fresh id")
	}
	if s.Generation() <= gen {
		t.Error("begin should advance the generation")
	}
}

func TestSessionCrossedIsCopied(t *testing.T) {
	s := newSession()
	s.begin(Vec2{})
	s.markCrossed("a")
	got := s.Crossed()
	got[0] = "mutated"
	if !s.HasCrossed("a") || s.Crossed()[0] != "a" {
		t.Error("Crossed should return a copy")
	}
	if s.markCrossed("a") {
		t.Error("marking twice should report false")
	}
}

// stubGeometry scripts the answers of bridgeGeometry.
type stubGeometry struct {
	hit      string
	opposite bool
}

func (g stubGeometry) FirstIntersecting(_, _ Vec2) (string, bool) { return g.hit, g.hit != "" }

func (g stubGeometry) oppositeSide(string, Vec2, Vec2) bool { return g.opposite }

func TestAdvanceTransitions(t *testing.T) {
	land := Area{Kind: AreaLand}
	s := newSession()
	s.begin(Vec2{0, 0})

	// Onto an uncrossed bridge.
	res := s.advance(Vec2{5, 0}, Area{Kind: AreaBridge, BridgeID: "x"}, stubGeometry{hit: "x"})
	if res.violation != nil || len(res.crossed) != 0 || s.inside != "x" || s.entry != (Vec2{5, 0}) {
		t.Fatalf("enter: %+v inside=%q entry=%v", res, s.inside, s.entry)
	}

	// Straight onto a second bridge from the far side of the first.
	res = s.advance(Vec2{10, 0}, land, stubGeometry{hit: "y", opposite: true})
	if len(res.crossed) != 1 || res.crossed[0] != "x" || s.justCrossed != "x" || s.inside != "y" {
		t.Fatalf("hand-over: %+v inside=%q justCrossed=%q", res, s.inside, s.justCrossed)
	}

	// Off the second bridge on the same side.
	res = s.advance(Vec2{15, 0}, land, stubGeometry{})
	if len(res.crossed) != 0 || s.inside != "" {
		t.Fatalf("graze: %+v inside=%q", res, s.inside)
	}
	if s.justCrossed != "x" {
		t.Errorf("leaving a bridge without crossing keeps justCrossed, got %q", s.justCrossed)
	}

	// A plain land step clears the one-move guard.
	s.advance(Vec2{20, 0}, land, stubGeometry{})
	if s.justCrossed != "" {
		t.Errorf("justCrossed = %q, want cleared", s.justCrossed)
	}

	// Back onto the crossed bridge: illegal.
	res = s.advance(Vec2{25, 0}, land, stubGeometry{hit: "x"})
	if res.violation == nil || res.bridge != "x" || s.State() != StateViolated {
		t.Errorf("recross: %+v state=%v", res, s.State())
	}
	if !res.appended {
		t.Error("the re-crossing point is on drawable ground and is appended")
	}
}

func TestFinishKinds(t *testing.T) {
	s := newSession()
	s.begin(Vec2{})
	if kind, _ := s.finish(stubGeometry{}, 3); kind != endEmpty || len(s.path) != 0 {
		t.Errorf("single point: kind=%v path=%d", kind, len(s.path))
	}

	s.begin(Vec2{})
	s.path = append(s.path, Vec2{5, 0})
	if kind, _ := s.finish(stubGeometry{}, 3); kind != endIncomplete || len(s.path) != 2 {
		t.Errorf("short stroke: kind=%v path=%d", kind, len(s.path))
	}

	s.begin(Vec2{})
	s.path = append(s.path, Vec2{5, 0})
	s.markCrossed("a")
	s.inside, s.entry = "b", Vec2{1, 0}
	kind, crossed := s.finish(stubGeometry{opposite: true}, 2)
	if kind != endComplete || len(crossed) != 1 || crossed[0] != "b" || !s.Complete() {
		t.Errorf("final bridge: kind=%v crossed=%v", kind, crossed)
	}

	s.begin(Vec2{})
	if kind, _ := s.finish(stubGeometry{}, 0); kind == endComplete {
		t.Error("a map without bridges can never complete")
	}
}

// TestPropertyCrossedSetInvariants drives random strokes over the grid map
// and checks that the crossed set only ever holds registered bridges, only
// grows within a stroke and never completes before the stroke ends.
func TestPropertyCrossedSetInvariants(t *testing.T) {
	m := gridMap(t)
	known := make(map[string]bool)
	for _, b := range m.Bridges() {
		known[b.ID] = true
	}

	rapid.Check(t, func(rt *rapid.T) {
		tg := newTestGame(t, m)
		start := Vec2{
			rapid.Float64Range(0, 400).Draw(rt, "sx"),
			rapid.Float64Range(0, 300).Draw(rt, "sy"),
		}
		if tg.Start(start) != nil {
			return
		}
		s := tg.Session()
		prev := 0
		steps := rapid.IntRange(1, 200).Draw(rt, "steps")
		p := start
		for i := 0; i < steps; i++ {
			p = Vec2{
				p.X + rapid.Float64Range(-12, 12).Draw(rt, "dx"),
				p.Y + rapid.Float64Range(-12, 12).Draw(rt, "dy"),
			}
			tg.Move(p)

			if s.CrossedCount() < prev {
				rt.Fatalf("crossed set shrank from %d to %d", prev, s.CrossedCount())
			}
			prev = s.CrossedCount()
			for _, id := range s.Crossed() {
				if !known[id] {
					rt.Fatalf("unknown bridge %q in crossed set", id)
				}
			}
			if s.Complete() {
				rt.Fatal("completed mid-stroke")
			}
			if s.Drawing() && len(s.Path()) == 0 {
				rt.Fatal("empty path while drawing")
			}
		}
		violated := s.State() == StateViolated
		tg.End()
		if !violated && s.Complete() != (s.CrossedCount() == m.BridgeCount()) {
			rt.Fatalf("complete=%v with %d/%d crossed", s.Complete(), s.CrossedCount(), m.BridgeCount())
		}
	})
}
