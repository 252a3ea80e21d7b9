// Package ecs provides ECS adapters for the bridges game event stream.
//
// The primary adapter is [NewDonburiSink], which publishes game events
// (stroke start, bridge crossed, violation, completion, reset) into a
// [Donburi] world as typed events. Subscribe to [GameEventType] in your ECS
// systems to receive them, or attach a [Tally] entity with [TrackTally].
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	game.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
