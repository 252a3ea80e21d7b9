// Command bridges opens the bridges game in a window.
//
// Trace a path over the map crossing every bridge exactly once. R resets the
// level, N and P move between unlocked levels and Delete forgets progress.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"go.uber.org/zap"

	"github.com/phanxgames/bridges"
	"github.com/phanxgames/bridges/config"
	"github.com/phanxgames/bridges/ecs"
	"github.com/phanxgames/bridges/level"
	"github.com/phanxgames/bridges/observability"
	"github.com/phanxgames/bridges/play"
	"github.com/phanxgames/bridges/progress"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	startLevel := flag.String("level", "", "level id to open, overriding the config")
	flag.Parse()

	if err := run(*configPath, *startLevel); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, startLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if startLevel != "" {
		cfg.Game.StartLevel = startLevel
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	levels, err := loadLevels(cfg.Levels)
	if err != nil {
		return err
	}
	if _, _, ok := level.Find(levels, cfg.Game.StartLevel); !ok {
		logger.Warn("unknown start level", zap.String("level", cfg.Game.StartLevel))
	}

	var store progress.Store = progress.NewMemoryStore()
	if cfg.Storage.ProgressPath != "" {
		sqlStore, err := progress.Open(cfg.Storage.ProgressPath)
		if err != nil {
			return err
		}
		defer sqlStore.Close()
		store = sqlStore
	}

	world := donburi.NewWorld()
	tally := ecs.TrackTally(world)

	app, err := play.New(play.Options{
		Config: cfg,
		Levels: levels,
		Store:  store,
		Logger: logger,
		Sinks:  []bridges.EventSink{observability.NewEventLogger(logger), ecs.NewDonburiSink(world)},
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("starting", zap.Int("levels", len(levels)), zap.String("start_level", cfg.Game.StartLevel))
	if err := ebiten.RunGame(&game{App: app, world: world}); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running game: %w", err)
	}

	events.ProcessAllEvents(world)
	if t, ok := ecs.TallyOf(world, tally); ok {
		logger.Info("session summary",
			zap.Int("strokes", t.Strokes),
			zap.Int("crossings", t.Crossings),
			zap.Int("violations", t.Violations),
			zap.Int("completions", t.Completions),
		)
	}
	return nil
}

// game drains the event world once per tick so the tally stays current.
type game struct {
	*play.App
	world donburi.World
}

func (g *game) Update() error {
	if err := g.App.Update(); err != nil {
		return err
	}
	events.ProcessAllEvents(g.world)
	return nil
}

func loadLevels(cfg config.LevelsConfig) ([]*level.Level, error) {
	if cfg.Dir == "" {
		return level.Builtin()
	}
	return level.LoadFromDir(cfg.Dir)
}
