package ecs

import (
	"github.com/phanxgames/survivalmaze"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GameEventType is the Donburi event type for survivalmaze game events.
var GameEventType = events.NewEventType[survivalmaze.GameEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Game events are published to GameEventType and can be consumed with
// Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) survivalmaze.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event survivalmaze.GameEvent) {
	GameEventType.Publish(s.world, event)
}
