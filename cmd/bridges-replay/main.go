// Command bridges-replay plays a recorded stroke script against a level
// without opening a window, prints the outcome and optionally saves a PNG of
// the final frame.
//
// Script coordinates are screen positions on a canvas of -width by -height
// pixels, the same canvas the PNG is drawn on.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/phanxgames/bridges"
	"github.com/phanxgames/bridges/config"
	"github.com/phanxgames/bridges/level"
	"github.com/phanxgames/bridges/observability"
	"github.com/phanxgames/bridges/render"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	levelID := flag.String("level", "konigsberg", "level id")
	levelFile := flag.String("level-file", "", "load the level from a YAML file instead of the built-in set")
	scriptPath := flag.String("script", "", "path to a JSON stroke script")
	pngPath := flag.String("png", "", "write the final frame to this PNG file")
	width := flag.Int("width", 800, "canvas width in pixels")
	height := flag.Int("height", 500, "canvas height in pixels")
	maxFrames := flag.Int("frames", 3600, "give up after this many frames")
	flag.Parse()

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "usage: bridges-replay -script <file> [-level <id> | -level-file <file>] [-png <file>]")
		os.Exit(1)
	}

	opts := replayOptions{
		configPath: *configPath,
		levelID:    *levelID,
		levelFile:  *levelFile,
		scriptPath: *scriptPath,
		pngPath:    *pngPath,
		width:      *width,
		height:     *height,
		maxFrames:  *maxFrames,
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type replayOptions struct {
	configPath string
	levelID    string
	levelFile  string
	scriptPath string
	pngPath    string
	width      int
	height     int
	maxFrames  int
}

func run(opts replayOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	lvl, index, err := findLevel(opts.levelID, opts.levelFile)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(opts.scriptPath)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	runner, err := bridges.LoadScript(data)
	if err != nil {
		return err
	}

	m := lvl.Build()
	if errs := m.MarkReady(); len(errs) > 0 {
		for _, e := range errs {
			logger.Warn("bridge footprint", zap.Error(e))
		}
	}
	mapper := bridges.NewMapper()
	mapper.Layout(m.Bounds(), bridges.Rect{Width: float64(opts.width), Height: float64(opts.height)})

	canvas := render.NewCanvas(opts.width, opts.height)
	g := bridges.NewGame(m, mapper, cfg.Game.EngineConfig(index), logger.With(zap.String("level_id", lvl.ID)))
	g.SetRenderer(canvas)
	g.SetPresenter(canvas)
	g.SetEventSink(observability.NewEventLogger(logger))

	frames, runErr := bridges.RunScript(runner, bridges.NewInput(g, nil), g, 1.0/60, opts.maxFrames)

	s := g.Session()
	crossed, total := canvas.Counter()
	fmt.Printf("level:   %s (%s)\n", lvl.Name, lvl.ID)
	fmt.Printf("frames:  %d\n", frames)
	fmt.Printf("state:   %s\n", s.State())
	fmt.Printf("crossed: %d/%d %v\n", crossed, total, s.Crossed())
	if msg, ok := canvas.Message(); ok {
		fmt.Printf("message: %s\n", msg.Text)
	}

	if opts.pngPath != "" {
		if err := canvas.SavePNG(m, opts.pngPath); err != nil {
			return err
		}
		logger.Info("frame saved", zap.String("path", opts.pngPath))
	}
	return runErr
}

func findLevel(id, file string) (*level.Level, int, error) {
	if file != "" {
		lvl, err := level.LoadFromFile(file)
		if err != nil {
			return nil, 0, err
		}
		return lvl, 0, nil
	}
	levels, err := level.Builtin()
	if err != nil {
		return nil, 0, err
	}
	lvl, index, ok := level.Find(levels, id)
	if !ok {
		return nil, 0, fmt.Errorf("unknown level %q", id)
	}
	return lvl, index, nil
}
