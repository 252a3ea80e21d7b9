package bridges

// PointerKind distinguishes the device a pointer sample came from.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota // primary mouse pointer
	PointerTouch                    // touch-originated pointer
)

// TouchPoint is one touch contact in screen coordinates.
type TouchPoint struct {
	ID   int
	X, Y float64
}

// PointerEvent is one pointer sample in screen coordinates.
type PointerEvent struct {
	Kind PointerKind
	// X and Y are the mouse position (PointerMouse only).
	X, Y float64
	// Touches are the touches still in contact, oldest first.
	Touches []TouchPoint
	// Lifted are the touches that ended with this event, at their final
	// recorded location.
	Lifted []TouchPoint
}

// Position returns the screen position the event stands for. Mouse events
// use the cursor; touch events use the first active touch, or the final
// recorded location of the first lifted touch once nothing is in contact.
func (e PointerEvent) Position() (Vec2, bool) {
	if e.Kind == PointerMouse {
		p := Vec2{e.X, e.Y}
		return p, finite(p)
	}
	switch {
	case len(e.Touches) > 0:
		p := Vec2{e.Touches[0].X, e.Touches[0].Y}
		return p, finite(p)
	case len(e.Lifted) > 0:
		p := Vec2{e.Lifted[0].X, e.Lifted[0].Y}
		return p, finite(p)
	}
	return Vec2{}, false
}

// Frame is one poll of raw device state.
type Frame struct {
	MouseX, MouseY float64
	MouseDown      bool
	Touches        []TouchPoint
}

// FrameSource supplies raw device state once per tick.
type FrameSource interface {
	Poll() Frame
}

// PointerTarget receives the interaction lifecycle of the single active pointer.
type PointerTarget interface {
	Start(screen Vec2) error
	Move(screen Vec2)
	End()
}

// pointerState tracks the one pointer the engine follows.
type pointerState struct {
	held    bool
	started bool // target accepted the press
	kind    PointerKind
	touchID int
	lastX   float64
	lastY   float64
}

// Input turns per-tick device frames into Start/Move/End calls. Only one
// pointer is followed at a time: the mouse, or the first touch to land.
// Other touches are ignored until the followed pointer is released.
type Input struct {
	target      PointerTarget
	source      FrameSource
	ptr         pointerState
	injectQueue []Frame
}

// NewInput creates an input tracker feeding target. source may be nil when
// all input is injected.
func NewInput(target PointerTarget, source FrameSource) *Input {
	return &Input{target: target, source: source}
}

// Update consumes one injected frame if any is queued, otherwise polls the
// source. Call once per tick.
func (in *Input) Update() {
	if len(in.injectQueue) > 0 {
		f := in.injectQueue[0]
		copy(in.injectQueue, in.injectQueue[1:])
		in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]
		in.Process(f)
		return
	}
	if in.source != nil {
		in.Process(in.source.Poll())
	}
}

// Pending returns the number of injected frames not yet consumed.
func (in *Input) Pending() int {
	return len(in.injectQueue)
}

// Process runs the pointer state machine for one frame.
func (in *Input) Process(f Frame) {
	ps := &in.ptr

	if !ps.held {
		var ev PointerEvent
		switch {
		case f.MouseDown:
			ev = PointerEvent{Kind: PointerMouse, X: f.MouseX, Y: f.MouseY}
		case len(f.Touches) > 0:
			ev = PointerEvent{Kind: PointerTouch, Touches: f.Touches}
			ps.touchID = f.Touches[0].ID
		default:
			return
		}
		pos, ok := ev.Position()
		if !ok {
			return
		}
		ps.held = true
		ps.kind = ev.Kind
		ps.lastX, ps.lastY = pos.X, pos.Y
		ps.started = in.target.Start(pos) == nil
		return
	}

	var ev PointerEvent
	released := false
	switch ps.kind {
	case PointerMouse:
		ev = PointerEvent{Kind: PointerMouse, X: f.MouseX, Y: f.MouseY}
		released = !f.MouseDown
	case PointerTouch:
		if t, ok := findTouch(f.Touches, ps.touchID); ok {
			ev = PointerEvent{Kind: PointerTouch, Touches: []TouchPoint{t}}
		} else {
			// The followed touch lifted; ebiten no longer reports its
			// position, so the last recorded one stands in.
			ev = PointerEvent{Kind: PointerTouch, Lifted: []TouchPoint{{ID: ps.touchID, X: ps.lastX, Y: ps.lastY}}}
			released = true
		}
	}

	if released {
		if ps.started {
			in.target.End()
		}
		*ps = pointerState{}
		return
	}

	pos, ok := ev.Position()
	if !ok || (pos.X == ps.lastX && pos.Y == ps.lastY) {
		return
	}
	ps.lastX, ps.lastY = pos.X, pos.Y
	if ps.started {
		in.target.Move(pos)
	}
}

func findTouch(touches []TouchPoint, id int) (TouchPoint, bool) {
	for _, t := range touches {
		if t.ID == id {
			return t, true
		}
	}
	return TouchPoint{}, false
}
