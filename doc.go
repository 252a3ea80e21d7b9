// Package bridges is the path-tracing and bridge-crossing engine of a Seven
// Bridges of Königsberg puzzle.
//
// The player draws one continuous stroke over a map of land masses joined by
// bridges and must cross every bridge exactly once without touching water.
// Given a stream of pointer positions the engine classifies each position,
// detects bridge traversals, enforces the rules as the stroke is drawn and
// decides completion when the stroke ends.
//
// # Quick start
//
//	m := bridges.NewMap(bridges.Rect{Width: 400, Height: 300})
//	// ... add land, water and bridge regions under m.Root() ...
//	m.MarkReady()
//
//	mapper := bridges.NewMapper()
//	mapper.Layout(m.Bounds(), bridges.Rect{Width: 800, Height: 600})
//
//	g := bridges.NewGame(m, mapper, bridges.DefaultConfig(), logger)
//	g.SetRenderer(myRenderer)
//	g.SetPresenter(bridges.NewMessageBoard())
//
//	in := bridges.NewInput(g, mySource)
//	// every tick:
//	in.Update()
//	g.Update(dt)
//
// # Map model
//
// A [Map] is a tree of [Region] values in map-local coordinates. Regions
// carry an optional terrain tag ([TerrainLand], [TerrainWater]), an optional
// bridge identifier and an optional [HitShape]. [Map.Classify] hit-tests the
// topmost region under a point and walks up its ancestors until it finds a
// tag or a bridge; anything untagged is water.
//
// Bridges are registered once by [Map.MarkReady]. Until then [Game.Start]
// rejects with [ErrNotReady].
//
// # Crossing rules
//
// A bridge counts as crossed when the stroke leaves its footprint on the
// opposite side from where it entered ([IsOppositeSide]). Segments are
// tested against footprints with [SegmentIntersectsRect]; touching an edge
// in a single point is not a crossing. Touching water, leaving the map or
// entering an already crossed bridge on a fresh traversal breaks the stroke,
// which is shown for [Config.ResetDelay] and then reset.
//
// Completion is decided only when the stroke ends.
//
// # Time
//
// The engine never starts goroutines or timers. Delayed resets are tweens
// advanced by [Game.Update]; each one checks the session generation before
// it mutates anything, so a stale reset is a no-op.
//
// # Sub-packages
//
// bridges/level loads maps from YAML and ships the built-in levels.
// bridges/progress records completed levels. bridges/play runs the engine
// in an Ebitengine window, bridges/render draws PNG snapshots and
// bridges/ecs forwards events into a Donburi world.
package bridges
