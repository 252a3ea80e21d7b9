// Package play runs the bridges game in an ebiten window: it polls mouse and
// touch input, draws the map, the stroke and the bridge states, and moves
// between levels as they are completed.
package play

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/phanxgames/bridges"
	"github.com/phanxgames/bridges/config"
	"github.com/phanxgames/bridges/level"
	"github.com/phanxgames/bridges/progress"
	"github.com/phanxgames/bridges/render"
)

// Options configures an App.
type Options struct {
	Config config.Config
	Levels []*level.Level
	Store  progress.Store
	Logger *zap.Logger
	// Sinks receive every game event in addition to the App itself.
	Sinks []bridges.EventSink
}

// App is an ebiten.Game playing a sequence of levels.
type App struct {
	cfg     config.Config
	levels  []*level.Level
	store   progress.Store
	log     *zap.Logger
	sinks   []bridges.EventSink
	palette render.Palette

	index     int
	m         *bridges.Map
	mapper    *bridges.Mapper
	game      *bridges.Game
	input     *bridges.Input
	board     *bridges.MessageBoard
	source    EbitenSource
	completed []int

	path    []bridges.Vec2
	tints   map[string]*tint
	counter [2]int

	white  *ebiten.Image
	scene  mesh
	width  int
	height int
}

// New creates an App and opens the configured start level.
func New(opts Options) (*App, error) {
	if len(opts.Levels) == 0 {
		return nil, fmt.Errorf("no levels to play")
	}
	if opts.Store == nil {
		opts.Store = progress.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)

	a := &App{
		cfg:     opts.Config,
		levels:  opts.Levels,
		store:   opts.Store,
		log:     opts.Logger,
		sinks:   opts.Sinks,
		palette: render.DefaultPalette(),
		board:   bridges.NewMessageBoard(),
		white:   white,
	}
	if err := a.refreshCompleted(); err != nil {
		return nil, err
	}

	start := 0
	if _, idx, ok := level.Find(a.levels, a.cfg.Game.StartLevel); ok && progress.Unlocked(a.completed, idx) {
		start = idx
	} else if ok {
		a.log.Info("start level is locked; opening the first level", zap.String("level", a.cfg.Game.StartLevel))
	}
	if err := a.LoadLevel(start); err != nil {
		return nil, err
	}
	return a, nil
}

// Game returns the controller of the current level.
func (a *App) Game() *bridges.Game { return a.game }

// LevelIndex returns the index of the current level.
func (a *App) LevelIndex() int { return a.index }

// LoadLevel switches to the level at index. Locked levels are refused.
func (a *App) LoadLevel(index int) error {
	if index < 0 || index >= len(a.levels) {
		return fmt.Errorf("level index %d out of range [0, %d)", index, len(a.levels))
	}
	if !progress.Unlocked(a.completed, index) {
		return fmt.Errorf("level %q is locked", a.levels[index].ID)
	}

	lvl := a.levels[index]
	a.index = index
	a.m = lvl.Build()
	a.mapper = bridges.NewMapper()
	a.game = bridges.NewGame(a.m, a.mapper, a.cfg.Game.EngineConfig(index), a.log.With(zap.String("level_id", lvl.ID)))
	a.game.SetRenderer(a)
	a.game.SetPresenter(a.board)
	a.game.SetRecorder(a.store)
	a.game.SetEventSink(a)
	a.input = bridges.NewInput(a.game, &a.source)
	a.board.HideMessage()

	a.path = a.path[:0]
	a.tints = make(map[string]*tint)
	a.counter = [2]int{}
	if a.width > 0 && a.height > 0 {
		a.layoutMap()
	}
	a.log.Info("level loaded", zap.String("level_id", lvl.ID), zap.String("name", lvl.Name))
	return nil
}

// EmitEvent implements bridges.EventSink. It refreshes unlocks on
// completion and forwards every event to the configured sinks.
func (a *App) EmitEvent(e bridges.Event) {
	if e.Type == bridges.EventComplete {
		if err := a.refreshCompleted(); err != nil {
			a.log.Warn("reading progress", zap.Error(err))
		}
	}
	for _, s := range a.sinks {
		s.EmitEvent(e)
	}
}

func (a *App) refreshCompleted() error {
	done, err := a.store.Completed(context.Background())
	if err != nil {
		return fmt.Errorf("reading progress: %w", err)
	}
	a.completed = done
	return nil
}

// --- bridges.Renderer ---

// DrawPath stores the stroke for the next Draw.
func (a *App) DrawPath(points []bridges.Vec2) {
	a.path = append(a.path[:0], points...)
}

// SetBridgeCrossed eases the bridge towards its crossed or uncrossed colour.
func (a *App) SetBridgeCrossed(id string, crossed bool) {
	target := toNRGBA(a.palette.Bridge)
	if crossed {
		target = toNRGBA(a.palette.BridgeCrossed)
	}
	ti, ok := a.tints[id]
	if !ok {
		a.tints[id] = newTint(target)
		return
	}
	ti.set(target)
}

// SetCounter stores the crossed/total counter.
func (a *App) SetCounter(crossed, total int) {
	a.counter = [2]int{crossed, total}
}

// --- ebiten.Game ---

// Update advances input, the game clock and the level controls by one tick.
func (a *App) Update() error {
	dt := float32(1) / float32(ebiten.TPS())

	a.markReady()

	a.handleKeys()
	a.input.Update()
	a.game.Update(dt)
	a.board.Update(dt)
	for _, ti := range a.tints {
		ti.update(dt)
	}
	return nil
}

// markReady registers the map's bridges once it has a place on screen,
// logging bridges that were skipped or cannot be measured.
func (a *App) markReady() {
	if a.m.IsReady() || !a.mapper.LaidOut() {
		return
	}
	for _, err := range a.m.MarkReady() {
		a.log.Warn("bridge footprint", zap.String("level_id", a.levels[a.index].ID), zap.Error(err))
	}
}

func (a *App) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.game.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		a.switchLevel(a.index + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.switchLevel(a.index - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		if err := a.store.Clear(context.Background()); err != nil {
			a.log.Warn("clearing progress", zap.Error(err))
			return
		}
		a.completed = nil
		a.switchLevel(0)
	}
}

func (a *App) switchLevel(index int) {
	if index < 0 || index >= len(a.levels) {
		return
	}
	if err := a.LoadLevel(index); err != nil {
		a.board.ShowMessage(bridges.Message{
			Text:     "Complete the previous level first!",
			Severity: bridges.SeverityInfo,
			Duration: a.game.Config().MessageTimeout,
		})
		a.log.Debug("level switch refused", zap.Error(err))
	}
}

// Draw renders the map, the stroke and the overlay text.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	if !a.mapper.LaidOut() {
		return
	}

	a.scene.reset()
	scale := a.mapper.Transform()[0]
	render.WalkPaint(a.m, func(r *bridges.Region, terrain bridges.Terrain) {
		if r.HitShape == nil {
			return
		}
		fill := a.palette.RegionColor(r, terrain, false)
		if r.IsBridge() {
			if ti, ok := a.tints[r.BridgeID]; ok {
				fill = ti.current()
			}
		}
		toScreen := func(x, y float64) bridges.Vec2 {
			mx, my := r.ToMap(x, y)
			return a.mapper.ToScreen(bridges.Vec2{X: mx, Y: my})
		}
		a.scene.addFan(shapeOutline(r.HitShape, toScreen, scale*r.WorldTransform()[0]), fill)
	})
	a.drawMesh(screen)

	a.scene.reset()
	a.addPath(scale)
	a.drawMesh(screen)

	if a.counter[1] > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Bridges crossed: %d/%d", a.counter[0], a.counter[1]), 8, 8)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level %d/%d: %s", a.index+1, len(a.levels), a.levels[a.index].Name), 8, a.height-20)
	if msg, ok := a.board.Current(); ok {
		ebitenutil.DebugPrintAt(screen, msg.Text, a.width/2-len(msg.Text)*3, a.height-40)
	}
}

// addPath adds the stroke ribbon, fading it out while a reset is pending.
func (a *App) addPath(scale float64) {
	if len(a.path) == 0 {
		return
	}
	col := toNRGBA(a.palette.Path)
	if p, ok := a.game.ResetProgress(); ok {
		col.A = uint8(float32(col.A) * (1 - p))
	}
	pts := make([]bridges.Vec2, len(a.path))
	for i, p := range a.path {
		pts[i] = a.mapper.ToScreen(p)
	}
	width := a.palette.PathWidth * scale
	if len(pts) == 1 {
		a.scene.addDot(pts[0], width/2, col)
		return
	}
	a.scene.addRibbon(pts, width, col)
}

func (a *App) drawMesh(screen *ebiten.Image) {
	if len(a.scene.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	screen.DrawTriangles(a.scene.verts, a.scene.inds, a.white, &op)
}

// Layout fits the map into the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.layoutMap()
	}
	return outsideWidth, outsideHeight
}

// layoutMap leaves room for the counter above the map and the message and
// level name below it.
func (a *App) layoutMap() {
	const top, bottom = 24, 48
	viewport := bridges.Rect{Y: top, Width: float64(a.width), Height: float64(a.height - top - bottom)}
	a.mapper.Layout(a.m.Bounds(), viewport)
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
