package bridges

import "testing"

func TestInjectDragQueuesFrames(t *testing.T) {
	tgt := &recordingTarget{}
	in := NewInput(tgt, nil)

	in.InjectDrag(0, 0, 30, 0, 5)
	if in.Pending() != 5 {
		t.Fatalf("Pending = %d, want 5", in.Pending())
	}

	in.Update()
	if in.Pending() != 4 {
		t.Fatalf("Pending after one frame = %d, want 4", in.Pending())
	}
	assertOps(t, tgt.ops(), "start")

	in.Drain()
	assertOps(t, tgt.ops(), "start", "move", "move", "move", "end")
	if got := tgt.calls[3].p; got != (Vec2{30, 0}) {
		t.Errorf("last move = %v, want (30, 0)", got)
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	in := NewInput(&recordingTarget{}, nil)
	in.InjectDrag(0, 0, 10, 10, 1)
	if in.Pending() != 3 {
		t.Errorf("Pending = %d, want 3 (press, move, release)", in.Pending())
	}
}

func TestInjectStroke(t *testing.T) {
	tgt := &recordingTarget{}
	in := NewInput(tgt, nil)

	in.InjectStroke([]Vec2{{1, 1}, {5, 1}, {9, 1}})
	in.Drain()
	assertOps(t, tgt.ops(), "start", "move", "move", "end")

	in.InjectStroke(nil)
	if in.Pending() != 0 {
		t.Error("empty stroke should queue nothing")
	}
}

func TestInjectTouch(t *testing.T) {
	tgt := &recordingTarget{}
	in := NewInput(tgt, nil)

	in.InjectTouch(TouchPoint{ID: 3, X: 10, Y: 10})
	in.InjectTouch(TouchPoint{ID: 3, X: 20, Y: 10})
	in.InjectTouch()
	in.Drain()

	assertOps(t, tgt.ops(), "start", "move", "end")
}

func TestInjectedStrokeDrivesGame(t *testing.T) {
	tg := newTestGame(t, gridMap(t))
	in := NewInput(tg, nil)

	in.InjectStroke(polyline(4, Vec2{150, 50}, Vec2{238, 50}))
	in.Drain()

	s := tg.Session()
	if !s.HasCrossed("b1") || s.CrossedCount() != 1 {
		t.Errorf("crossed = %v, want [b1]", s.Crossed())
	}
	if s.Drawing() {
		t.Error("release should end the stroke")
	}
}
