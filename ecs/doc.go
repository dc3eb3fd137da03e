// Package ecs connects a wishheart scene to a Donburi world.
//
// A system that reacts to the heart, such as one that spawns a burst when
// the wishes gather or mirrors the orbit onto other entities, subscribes to
// [FormationEventType] and reads the flat [wishheart.Event] values:
//
//	scene.SetEventSink(ecs.NewDonburiSink(world))
//	ecs.FormationEventType.Subscribe(world, func(w donburi.World, ev wishheart.Event) {
//		if ev.Type == wishheart.EventModeChanged && ev.To == wishheart.PhaseGathered {
//			// ...
//		}
//	})
//
// See https://github.com/yohamta/donburi for the event feature.
package ecs
