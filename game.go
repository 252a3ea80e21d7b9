package bridges

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Default tuning values.
const (
	DefaultMinMoveDistance = 3.0
	DefaultResetDelay      = 1500 * time.Millisecond
	DefaultMessageTimeout  = 2000 * time.Millisecond
)

// Task names, also used by ResetProgress.
const (
	taskViolationReset  = "violation-reset"
	taskIncompleteClear = "incomplete-clear"
)

// User-facing texts.
const (
	msgNotReady     = "The map is still loading, please wait."
	msgNoBridges    = "Bridges could not be loaded. The map may be broken."
	msgStartOnLand  = "You can only start on land or on a bridge."
	msgWater        = "You cannot cross water or leave the map! Resetting the drawing."
	msgRecross      = "You cannot cross the same bridge twice! Resetting the drawing."
	msgIncomplete   = "You did not cross every bridge or drew an invalid path. Try again."
	msgCompleteText = "Congratulations! You completed this level!"
)

// Renderer draws the engine's visible state. The points slice passed to
// DrawPath is only valid for the duration of the call.
type Renderer interface {
	DrawPath(points []Vec2)
	SetBridgeCrossed(id string, crossed bool)
	SetCounter(crossed, total int)
}

// Presenter shows transient user-facing messages.
type Presenter interface {
	ShowMessage(msg Message)
	HideMessage()
}

// CompletionRecorder persists completed levels. Recording the same level
// twice has no additional effect.
type CompletionRecorder interface {
	MarkCompleted(ctx context.Context, level int) error
}

// EventSink receives game events, e.g. for an ECS world or a replay log.
type EventSink interface {
	EmitEvent(event Event)
}

// Event describes something the engine did.
type Event struct {
	Type     EventType
	Level    int
	StrokeID string
	// BridgeID is set for EventBridgeCrossed and for re-cross violations.
	BridgeID string
	Crossed  int
	Total    int
	// Err is the violation cause (EventViolation only).
	Err   error
	Point Vec2
}

// Config holds the engine tuning.
type Config struct {
	// Level is the index reported to the CompletionRecorder and in events.
	Level int
	// MinMoveDistance is the minimum map-space distance between accepted
	// path points.
	MinMoveDistance float64
	// ResetDelay is how long a violating or incomplete stroke stays visible.
	ResetDelay time.Duration
	// MessageTimeout is the display time of info and warning messages.
	MessageTimeout time.Duration
}

// DefaultConfig returns the default tuning for level 0.
func DefaultConfig() Config {
	return Config{
		MinMoveDistance: DefaultMinMoveDistance,
		ResetDelay:      DefaultResetDelay,
		MessageTimeout:  DefaultMessageTimeout,
	}
}

// Game drives one Session over a Map: it turns pointer positions into
// crossing decisions and reports them to its collaborators. Game is not safe
// for concurrent use; all calls happen on the update goroutine.
type Game struct {
	cfg     Config
	m       *Map
	mapper  *Mapper
	session *Session
	sched   scheduler
	log     *zap.Logger

	renderer  Renderer
	presenter Presenter
	recorder  CompletionRecorder
	sink      EventSink

	visualsReady bool
}

// NewGame creates a controller for m. A nil logger discards logs. Zero
// config fields take their defaults.
func NewGame(m *Map, mapper *Mapper, cfg Config, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinMoveDistance <= 0 {
		cfg.MinMoveDistance = DefaultMinMoveDistance
	}
	if cfg.ResetDelay <= 0 {
		cfg.ResetDelay = DefaultResetDelay
	}
	if cfg.MessageTimeout <= 0 {
		cfg.MessageTimeout = DefaultMessageTimeout
	}
	return &Game{
		cfg:       cfg,
		m:         m,
		mapper:    mapper,
		session:   newSession(),
		log:       logger.With(zap.Int("level", cfg.Level)),
		renderer:  nopRenderer{},
		presenter: nopPresenter{},
	}
}

// SetRenderer sets the renderer. nil disables rendering callbacks.
func (g *Game) SetRenderer(r Renderer) {
	if r == nil {
		r = nopRenderer{}
	}
	g.renderer = r
	if g.visualsReady {
		g.syncVisuals()
	}
}

// SetPresenter sets the message presenter. nil discards messages.
func (g *Game) SetPresenter(p Presenter) {
	if p == nil {
		p = nopPresenter{}
	}
	g.presenter = p
}

// SetRecorder sets the completion recorder.
func (g *Game) SetRecorder(r CompletionRecorder) {
	g.recorder = r
}

// SetEventSink sets the event sink.
func (g *Game) SetEventSink(s EventSink) {
	g.sink = s
}

// Session returns the session for inspection. Callers must not mutate it.
func (g *Game) Session() *Session { return g.session }

// Map returns the map being played.
func (g *Game) Map() *Map { return g.m }

// Mapper returns the screen-to-map mapper.
func (g *Game) Mapper() *Mapper { return g.mapper }

// Config returns the effective tuning.
func (g *Game) Config() Config { return g.cfg }

// WaitReady blocks until the map has registered its bridges or ctx is done,
// then initialises the bridge visuals.
func (g *Game) WaitReady(ctx context.Context) error {
	if err := g.m.WaitReady(ctx); err != nil {
		return err
	}
	g.syncReady()
	return nil
}

// Start begins a stroke at a screen position. A nil error means the stroke
// was accepted; a rejected start leaves the session untouched.
func (g *Game) Start(screen Vec2) error {
	g.syncReady()
	s := g.session

	if s.complete {
		return ErrComplete
	}
	if !g.m.IsReady() {
		g.show(msgNotReady, SeverityInfo, g.cfg.MessageTimeout)
		return ErrNotReady
	}
	if g.m.BridgeCount() == 0 {
		g.show(msgNoBridges, SeverityError, 0)
		return ErrNoBridges
	}
	if s.drawing {
		return ErrAlreadyDrawing
	}
	p, ok := g.mapper.ToLocal(screen)
	if !ok {
		return ErrUnmappable
	}
	if area := g.m.Classify(p); !area.Drawable() {
		g.show(msgStartOnLand, SeverityWarning, g.cfg.MessageTimeout)
		return fmt.Errorf("start on %s: %w", area, ErrOffDrawableArea)
	}

	s.begin(p)
	g.restoreVisuals()
	g.presenter.HideMessage()
	g.renderer.DrawPath(s.path)

	g.log.Debug("stroke started", zap.String("stroke", s.StrokeID), zap.Float64("x", p.X), zap.Float64("y", p.Y))
	g.emit(Event{Type: EventStrokeStart, Point: p})
	return nil
}

// Move extends the stroke to a screen position. Calls outside a stroke,
// unmappable positions and jitter are ignored.
func (g *Game) Move(screen Vec2) {
	s := g.session
	if !s.drawing || s.complete {
		return
	}
	p, ok := g.mapper.ToLocal(screen)
	if !ok {
		return
	}
	d := g.cfg.MinMoveDistance
	if !s.accepts(p, d*d) {
		return
	}

	area := g.m.Classify(p)
	res := s.advance(p, area, g.m)

	for _, id := range res.crossed {
		g.bridgeCrossed(id, p)
	}
	if res.appended {
		g.renderer.DrawPath(s.path)
	}
	if res.violation != nil {
		g.violation(res, p)
	}
}

// End finishes the stroke. A completed stroke records the level; an
// incomplete one is cleared after the reset delay.
func (g *Game) End() {
	s := g.session
	if !s.drawing || s.complete {
		return
	}

	kind, crossed := s.finish(g.m, g.m.BridgeCount())
	last, _ := s.lastPoint()
	for _, id := range crossed {
		g.bridgeCrossed(id, last)
	}

	switch kind {
	case endComplete:
		g.log.Info("level complete",
			zap.String("stroke", s.StrokeID),
			zap.Int("crossed", s.CrossedCount()),
			zap.Int("path_points", len(s.path)),
		)
		g.show(msgCompleteText, SeveritySuccess, 0)
		g.recordCompletion()
		g.emit(Event{Type: EventComplete, Point: last})

	case endIncomplete:
		g.log.Info("stroke incomplete",
			zap.String("stroke", s.StrokeID),
			zap.Int("crossed", s.CrossedCount()),
			zap.Int("total", g.m.BridgeCount()),
		)
		g.show(msgIncomplete, SeverityWarning, g.cfg.MessageTimeout)
		g.emit(Event{Type: EventIncomplete, Point: last})
		gen := s.generation
		g.sched.after(taskIncompleteClear, g.cfg.ResetDelay, func() {
			if s.generation != gen || s.complete || len(s.path) == 0 {
				return
			}
			s.clearStroke()
			g.restoreVisuals()
			g.renderer.DrawPath(s.path)
			g.presenter.HideMessage()
		})

	case endEmpty:
		g.renderer.DrawPath(s.path)
	}
}

// Reset returns the session to Idle with an empty path and every bridge
// shown uncrossed. It is idempotent and cancels every pending delayed task.
func (g *Game) Reset() {
	g.session.clear()
	g.restoreVisuals()
	g.renderer.DrawPath(nil)
	g.presenter.HideMessage()
	g.emit(Event{Type: EventReset})
}

// Update advances delayed tasks by dt seconds. Call once per tick.
func (g *Game) Update(dt float32) {
	g.syncReady()
	g.sched.update(dt)
}

// ResetProgress reports how far along a pending reset or clear of the shown
// stroke is, from 0 to 1. ok is false when none is pending.
func (g *Game) ResetProgress() (progress float32, ok bool) {
	if v, ok := g.sched.progress(taskViolationReset); ok {
		return v, true
	}
	return g.sched.progress(taskIncompleteClear)
}

func (g *Game) violation(res stepResult, p Vec2) {
	s := g.session
	text := msgWater
	if res.bridge != "" {
		text = msgRecross
	}
	g.log.Info("stroke violated",
		zap.String("stroke", s.StrokeID),
		zap.String("bridge", res.bridge),
		zap.Int("crossed", s.CrossedCount()),
		zap.Error(res.violation),
	)
	g.show(text, SeverityWarning, g.cfg.MessageTimeout)
	g.emit(Event{Type: EventViolation, BridgeID: res.bridge, Err: res.violation, Point: p})

	gen := s.generation
	g.sched.after(taskViolationReset, g.cfg.ResetDelay, func() {
		if s.generation != gen {
			return
		}
		g.Reset()
	})
}

func (g *Game) bridgeCrossed(id string, p Vec2) {
	s := g.session
	g.renderer.SetBridgeCrossed(id, true)
	g.renderer.SetCounter(s.CrossedCount(), g.m.BridgeCount())
	g.log.Debug("bridge crossed",
		zap.String("stroke", s.StrokeID),
		zap.String("bridge", id),
		zap.Int("crossed", s.CrossedCount()),
		zap.Int("total", g.m.BridgeCount()),
	)
	g.emit(Event{Type: EventBridgeCrossed, BridgeID: id, Point: p})
}

func (g *Game) recordCompletion() {
	if g.recorder == nil {
		return
	}
	if err := g.recorder.MarkCompleted(context.Background(), g.cfg.Level); err != nil {
		g.log.Error("recording completion", zap.Error(err))
	}
}

// syncReady initialises the bridge visuals the first time the map is seen
// ready and logs every bridge whose footprint could not be measured.
func (g *Game) syncReady() {
	if g.visualsReady || !g.m.IsReady() {
		return
	}
	g.visualsReady = true
	for _, b := range g.m.Bridges() {
		if !b.Valid {
			g.log.Warn("bridge footprint cannot be measured", zap.String("bridge", b.ID))
		}
	}
	g.log.Info("map ready", zap.Int("bridges", g.m.BridgeCount()))
	g.syncVisuals()
}

// syncVisuals pushes the full session state to the renderer.
func (g *Game) syncVisuals() {
	s := g.session
	for _, b := range g.m.Bridges() {
		g.renderer.SetBridgeCrossed(b.ID, s.HasCrossed(b.ID))
	}
	g.renderer.SetCounter(s.CrossedCount(), g.m.BridgeCount())
	g.renderer.DrawPath(s.path)
}

func (g *Game) restoreVisuals() {
	for _, b := range g.m.Bridges() {
		g.renderer.SetBridgeCrossed(b.ID, false)
	}
	g.renderer.SetCounter(g.session.CrossedCount(), g.m.BridgeCount())
}

func (g *Game) show(text string, sev Severity, d time.Duration) {
	g.presenter.ShowMessage(Message{Text: text, Severity: sev, Duration: d})
}

func (g *Game) emit(e Event) {
	if g.sink == nil {
		return
	}
	s := g.session
	e.Level = g.cfg.Level
	e.StrokeID = s.StrokeID
	e.Crossed = s.CrossedCount()
	e.Total = g.m.BridgeCount()
	g.sink.EmitEvent(e)
}

type nopRenderer struct{}

func (nopRenderer) DrawPath([]Vec2)              {}
func (nopRenderer) SetBridgeCrossed(string, bool) {}
func (nopRenderer) SetCounter(int, int)           {}

type nopPresenter struct{}

func (nopPresenter) ShowMessage(Message) {}
func (nopPresenter) HideMessage()        {}
