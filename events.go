package wishheart

import "slices"

// ModeChangedEvent fires on every phase transition.
type ModeChangedEvent struct {
	From, To Phase
}

// LayoutRebuiltEvent fires after every build pass. Layout is owned by the
// Formation and stays valid until the next rebuild.
type LayoutRebuiltEvent struct {
	Layout *Layout
	Mode   Mode
	Reason RebuildReason
}

// RotationUpdatedEvent fires when the smoothed orbit angles move.
type RotationUpdatedEvent struct {
	Angles  Angles
	Counter Angles
}

// Event is the flattened form of every formation event, forwarded to an
// EventSink.
type Event struct {
	Type       EventType
	From, To   Phase
	Reason     RebuildReason
	Generation int
	Pitch, Yaw float64
}

// EventSink is the interface for optional external event consumers such as an
// ECS world. When set on a Formation, every event is forwarded to it.
type EventSink interface {
	EmitEvent(event Event)
}

// --- Handler registry ---

type modeHandler struct {
	id uint32
	fn func(ModeChangedEvent)
}

type layoutHandler struct {
	id uint32
	fn func(LayoutRebuiltEvent)
}

type rotationHandler struct {
	id uint32
	fn func(RotationUpdatedEvent)
}

type handlerRegistry struct {
	mode     []modeHandler
	layout   []layoutHandler
	rotation []rotationHandler
	nextID   uint32
	sink     EventSink
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventModeChanged:
		h.reg.mode = removeHandler(h.reg.mode, h.id, func(m modeHandler) uint32 { return m.id })
	case EventLayoutRebuilt:
		h.reg.layout = removeHandler(h.reg.layout, h.id, func(l layoutHandler) uint32 { return l.id })
	case EventRotationUpdated:
		h.reg.rotation = removeHandler(h.reg.rotation, h.id, func(r rotationHandler) uint32 { return r.id })
	}
}

func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) onModeChanged(fn func(ModeChangedEvent)) CallbackHandle {
	r.nextID++
	r.mode = append(r.mode, modeHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: EventModeChanged}
}

func (r *handlerRegistry) onLayoutRebuilt(fn func(LayoutRebuiltEvent)) CallbackHandle {
	r.nextID++
	r.layout = append(r.layout, layoutHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: EventLayoutRebuilt}
}

func (r *handlerRegistry) onRotationUpdated(fn func(RotationUpdatedEvent)) CallbackHandle {
	r.nextID++
	r.rotation = append(r.rotation, rotationHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: EventRotationUpdated}
}

// --- Event dispatch ---

// Dispatch iterates a copy of each list, so a callback may Remove itself
// or register another without disturbing the current event.

func (r *handlerRegistry) fireModeChanged(ev ModeChangedEvent) {
	for _, h := range slices.Clone(r.mode) {
		h.fn(ev)
	}
	if r.sink != nil {
		r.sink.EmitEvent(Event{Type: EventModeChanged, From: ev.From, To: ev.To})
	}
}

func (r *handlerRegistry) fireLayoutRebuilt(ev LayoutRebuiltEvent) {
	for _, h := range slices.Clone(r.layout) {
		h.fn(ev)
	}
	if r.sink != nil {
		r.sink.EmitEvent(Event{Type: EventLayoutRebuilt, Reason: ev.Reason, Generation: ev.Layout.Generation})
	}
}

func (r *handlerRegistry) fireRotationUpdated(ev RotationUpdatedEvent) {
	for _, h := range slices.Clone(r.rotation) {
		h.fn(ev)
	}
	if r.sink != nil {
		r.sink.EmitEvent(Event{Type: EventRotationUpdated, Pitch: ev.Angles.Pitch, Yaw: ev.Angles.Yaw})
	}
}
