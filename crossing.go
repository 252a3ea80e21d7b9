package bridges

import "fmt"

// bridgeGeometry is the part of Map the crossing rules need. Map satisfies it.
type bridgeGeometry interface {
	FirstIntersecting(p1, p2 Vec2) (string, bool)
	oppositeSide(id string, entry, exit Vec2) bool
}

// stepResult is what one accepted movement step did to the session.
type stepResult struct {
	appended  bool
	crossed   []string // bridges newly marked in this step
	violation error    // non-nil when the step broke a rule
	bridge    string   // bridge named by the violation, if any
}

// endKind is how a stroke finished.
type endKind uint8

const (
	endEmpty      endKind = iota // fewer than two points; cleared silently
	endIncomplete                // drawn, but not every bridge crossed
	endComplete                  // every bridge crossed
)

// accepts reports whether p is far enough from the last accepted point to be
// processed. Closer samples are pointer jitter and are dropped.
func (s *Session) accepts(p Vec2, minDistSq float64) bool {
	last, ok := s.lastPoint()
	if !ok {
		return false
	}
	return p.Sub(last).LenSq() >= minDistSq
}

// advance applies one movement step to p, whose area has already been
// classified. The caller must have checked accepts.
func (s *Session) advance(p Vec2, area Area, g bridgeGeometry) stepResult {
	var res stepResult

	if !area.Drawable() {
		// The stroke may have legitimately crossed the bridge it was on
		// before running into the water.
		if s.inside != "" && g.oppositeSide(s.inside, s.entry, p) && s.markCrossed(s.inside) {
			res.crossed = append(res.crossed, s.inside)
		}
		s.violate()
		res.violation = ErrWaterContact
		return res
	}

	last, _ := s.lastPoint()
	hit, onBridge := g.FirstIntersecting(last, p)
	s.path = append(s.path, p)
	res.appended = true

	if !onBridge {
		if s.inside != "" {
			if g.oppositeSide(s.inside, s.entry, p) {
				if s.markCrossed(s.inside) {
					res.crossed = append(res.crossed, s.inside)
				}
				s.justCrossed = s.inside
			}
			s.inside = ""
			s.entry = Vec2{}
		} else {
			s.justCrossed = ""
		}
		return res
	}

	if s.HasCrossed(hit) {
		if hit != s.justCrossed {
			s.violate()
			res.violation = fmt.Errorf("bridge %q: %w", hit, ErrIllegalRecross)
			res.bridge = hit
			return res
		}
		// Tail of the move that crossed it.
		s.justCrossed = ""
		if s.inside != hit {
			s.inside = hit
			s.entry = p
		}
		return res
	}

	if s.inside != hit {
		if s.inside != "" {
			if g.oppositeSide(s.inside, s.entry, p) {
				if s.markCrossed(s.inside) {
					res.crossed = append(res.crossed, s.inside)
				}
				s.justCrossed = s.inside
			}
		} else if s.justCrossed != "" && s.justCrossed != hit {
			s.justCrossed = ""
		}
		s.inside = hit
		s.entry = p
	}
	if s.justCrossed == hit {
		s.justCrossed = ""
	}
	return res
}

// finish ends the stroke. A bridge still being tracked counts if the final
// point is on the far side of where it was entered. total is the number of
// registered bridges; a map without bridges can never be completed.
func (s *Session) finish(g bridgeGeometry, total int) (endKind, []string) {
	var crossed []string
	if last, ok := s.lastPoint(); ok && s.inside != "" && g.oppositeSide(s.inside, s.entry, last) {
		if s.markCrossed(s.inside) {
			crossed = append(crossed, s.inside)
		}
	}
	s.drawing = false
	s.clearTracking()

	switch {
	case total > 0 && len(s.crossedOrder) == total:
		s.complete = true
		return endComplete, crossed
	case len(s.path) > 1:
		return endIncomplete, crossed
	default:
		s.clearStroke()
		return endEmpty, crossed
	}
}

// violate stops the stroke. The path stays visible until the scheduled reset.
func (s *Session) violate() {
	s.drawing = false
	s.violated = true
	s.clearTracking()
}
