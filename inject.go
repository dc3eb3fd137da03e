package wishheart

type pointerAction uint8

const (
	pointerPress pointerAction = iota
	pointerMove
	pointerRelease
	pointerLeave
)

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates.
type syntheticPointerEvent struct {
	x, y   float64
	action pointerAction
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, action: pointerPress})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, action: pointerMove})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, action: pointerRelease})
}

// InjectLeave queues the pointer leaving the surface at the given
// coordinates.
func (s *Scene) InjectLeave(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, action: pointerLeave})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// frames-2 moves that step linearly to (toX, toY), and a release there. The
// total sequence consumes `frames` frames. Minimum frames is 2 (press +
// release), which rotates nothing.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// Injecting reports whether synthetic events are still queued.
func (s *Scene) Injecting() bool {
	return len(s.injectQueue) > 0
}

// processInjectedInput pops one event from the inject queue and feeds it to
// the gate. Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.action {
	case pointerPress:
		s.PointerDown(evt.x, evt.y)
	case pointerMove:
		s.PointerMove(evt.x, evt.y)
	case pointerRelease:
		s.PointerUp(evt.x, evt.y)
	case pointerLeave:
		s.PointerLeave(evt.x, evt.y)
	}
	return true
}
