// Package ecs provides ECS adapters for survivalmaze's gameplay events.
//
// The primary adapter is [NewDonburiSink], which bridges game events (kills,
// shots, damage, round outcome) into a [Donburi] world as typed events.
// Subscribe to [GameEventType] in your ECS systems to receive them, or attach
// a [Scoreboard] to keep running totals in a component.
//
// Usage:
//
//	world := donburi.NewWorld()
//	game.SetEventSink(ecs.NewDonburiSink(world))
//	board := ecs.NewScoreboard(world)
//	// once per frame:
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
