package ecs

import (
	"github.com/phanxgames/wishheart"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FormationEventType carries every formation transition into a Donburi
// world: ModeChanged when the wishes scatter or gather, LayoutRebuilt with
// the rebuild reason and generation, RotationUpdated with the smoothed
// pitch and yaw. Events queue until the world runs ProcessEvents.
var FormationEventType = events.NewEventType[wishheart.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink returns an EventSink for Formation.SetEventSink or
// Scene.SetEventSink that publishes on FormationEventType in world.
func NewDonburiSink(world donburi.World) wishheart.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event wishheart.Event) {
	FormationEventType.Publish(s.world, event)
}
