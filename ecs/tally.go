package ecs

import (
	"github.com/phanxgames/bridges"

	"github.com/yohamta/donburi"
)

// Tally accumulates play statistics from the game event stream.
type Tally struct {
	Strokes     int
	Crossings   int
	Violations  int
	Incomplete  int
	Completions int
	Resets      int
	// LastBridge is the bridge most recently crossed.
	LastBridge string
}

// TallyComponent stores a Tally on an entity.
var TallyComponent = donburi.NewComponentType[Tally]()

// TrackTally creates an entity carrying a Tally and subscribes it to
// GameEventType. The tally updates when the world's events are processed.
func TrackTally(world donburi.World) donburi.Entity {
	entity := world.Create(TallyComponent)
	GameEventType.Subscribe(world, func(w donburi.World, e bridges.Event) {
		if !w.Valid(entity) {
			return
		}
		t := TallyComponent.Get(w.Entry(entity))
		switch e.Type {
		case bridges.EventStrokeStart:
			t.Strokes++
		case bridges.EventBridgeCrossed:
			t.Crossings++
			t.LastBridge = e.BridgeID
		case bridges.EventViolation:
			t.Violations++
		case bridges.EventIncomplete:
			t.Incomplete++
		case bridges.EventComplete:
			t.Completions++
		case bridges.EventReset:
			t.Resets++
		}
	})
	return entity
}

// TallyOf returns the tally stored on entity.
func TallyOf(world donburi.World, entity donburi.Entity) (Tally, bool) {
	if !world.Valid(entity) {
		return Tally{}, false
	}
	return *TallyComponent.Get(world.Entry(entity)), true
}
