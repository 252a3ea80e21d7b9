package bridges

import "github.com/google/uuid"

// State is the coarse state of a session, derived from its fields.
type State uint8

const (
	StateIdle            State = iota // not drawing
	StateDrawingOnLand                // stroke in progress, not over a bridge
	StateDrawingOnBridge              // stroke in progress over a bridge
	StateViolated                     // rule broken; waiting for the scheduled reset
	StateComplete                     // every bridge crossed; terminal until reset
)

func (s State) String() string {
	switch s {
	case StateDrawingOnLand:
		return "drawing-on-land"
	case StateDrawingOnBridge:
		return "drawing-on-bridge"
	case StateViolated:
		return "violated"
	case StateComplete:
		return "complete"
	default:
		return "idle"
	}
}

// Session is the mutable state of one play-through of a level. It is owned
// by a single Game and never shared.
type Session struct {
	// StrokeID identifies the current stroke in logs and events. A new one is
	// issued on every accepted start.
	StrokeID string

	// generation increases on every start and reset; delayed tasks compare
	// it to decide whether they are stale.
	generation uint64

	drawing  bool
	complete bool
	violated bool

	path         []Vec2
	crossed      map[string]struct{}
	crossedOrder []string

	inside      string
	entry       Vec2
	justCrossed string
}

func newSession() *Session {
	return &Session{crossed: make(map[string]struct{})}
}

// State derives the coarse state.
func (s *Session) State() State {
	switch {
	case s.complete:
		return StateComplete
	case s.violated:
		return StateViolated
	case s.drawing && s.inside != "":
		return StateDrawingOnBridge
	case s.drawing:
		return StateDrawingOnLand
	default:
		return StateIdle
	}
}

// Drawing reports whether a stroke is in progress.
func (s *Session) Drawing() bool { return s.drawing }

// Complete reports whether the level was completed.
func (s *Session) Complete() bool { return s.complete }

// Generation returns the start/reset counter.
func (s *Session) Generation() uint64 { return s.generation }

// Path returns the accepted points of the current stroke in drawing order.
// The returned slice MUST NOT be mutated.
func (s *Session) Path() []Vec2 { return s.path }

// Crossed returns the crossed bridge identifiers in the order they were crossed.
func (s *Session) Crossed() []string {
	out := make([]string, len(s.crossedOrder))
	copy(out, s.crossedOrder)
	return out
}

// CrossedCount returns the number of crossed bridges.
func (s *Session) CrossedCount() int { return len(s.crossedOrder) }

// HasCrossed reports whether the bridge was crossed in this session.
func (s *Session) HasCrossed(id string) bool {
	_, ok := s.crossed[id]
	return ok
}

// Inside returns the bridge the last processed point was over, if any.
func (s *Session) Inside() (string, bool) { return s.inside, s.inside != "" }

// EntryPoint returns the point at which the tracked bridge was entered.
func (s *Session) EntryPoint() (Vec2, bool) { return s.entry, s.inside != "" }

// JustCrossed returns the bridge completed on the immediately preceding move.
func (s *Session) JustCrossed() string { return s.justCrossed }

// clear empties the session and invalidates every pending delayed task.
func (s *Session) clear() {
	s.generation++
	s.drawing = false
	s.complete = false
	s.violated = false
	s.path = s.path[:0]
	clear(s.crossed)
	s.crossedOrder = s.crossedOrder[:0]
	s.clearTracking()
}

func (s *Session) clearTracking() {
	s.inside = ""
	s.entry = Vec2{}
	s.justCrossed = ""
}

// clearStroke drops the path and crossed set but keeps the generation, so
// a pending reset for the same stroke still applies.
func (s *Session) clearStroke() {
	s.path = s.path[:0]
	clear(s.crossed)
	s.crossedOrder = s.crossedOrder[:0]
}

// begin starts a new stroke at p.
func (s *Session) begin(p Vec2) {
	s.clear()
	s.StrokeID = uuid.NewString()
	s.drawing = true
	s.path = append(s.path, p)
}

// markCrossed adds id to the crossed set. Reports false if it was already there.
func (s *Session) markCrossed(id string) bool {
	if _, ok := s.crossed[id]; ok {
		return false
	}
	s.crossed[id] = struct{}{}
	s.crossedOrder = append(s.crossedOrder, id)
	return true
}

func (s *Session) lastPoint() (Vec2, bool) {
	if len(s.path) == 0 {
		return Vec2{}, false
	}
	return s.path[len(s.path)-1], true
}
