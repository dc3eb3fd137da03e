package ecs

import (
	"testing"

	"github.com/phanxgames/wishheart"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []wishheart.Event
	FormationEventType.Subscribe(world, func(w donburi.World, e wishheart.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(wishheart.Event{
		Type: wishheart.EventModeChanged,
		From: wishheart.PhaseIdle,
		To:   wishheart.PhaseScattering,
	})
	sink.EmitEvent(wishheart.Event{
		Type:       wishheart.EventLayoutRebuilt,
		Reason:     wishheart.ReasonResize,
		Generation: 3,
	})

	// Events are queued — process them.
	FormationEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e0 := received[0]; e0.Type != wishheart.EventModeChanged || e0.To != wishheart.PhaseScattering {
		t.Errorf("event 0: %+v", e0)
	}
	if e1 := received[1]; e1.Type != wishheart.EventLayoutRebuilt || e1.Generation != 3 || e1.Reason != wishheart.ReasonResize {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_FromScene(t *testing.T) {
	world := donburi.NewWorld()
	scene := wishheart.NewScene(wishheart.SceneOptions{Seed: 1, Texts: []string{"a", "b"}})
	scene.Resize(1280, 720)
	scene.SetEventSink(NewDonburiSink(world))

	var types []wishheart.EventType
	FormationEventType.Subscribe(world, func(w donburi.World, e wishheart.Event) {
		types = append(types, e.Type)
	})

	scene.Start()
	scene.Toggle()
	events.ProcessAllEvents(world)

	want := []wishheart.EventType{
		wishheart.EventModeChanged, wishheart.EventLayoutRebuilt,
		wishheart.EventModeChanged, wishheart.EventLayoutRebuilt,
	}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, types[i], want[i])
		}
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	FormationEventType.Subscribe(world, func(w donburi.World, e wishheart.Event) {
		count1++
	})
	FormationEventType.Subscribe(world, func(w donburi.World, e wishheart.Event) {
		count2++
	})

	sink.EmitEvent(wishheart.Event{Type: wishheart.EventRotationUpdated, Yaw: 12})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
