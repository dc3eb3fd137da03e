package wishheart

import "testing"

func newTestScene() *Scene {
	s := NewScene(SceneOptions{Seed: 7, Texts: testTexts(12)})
	s.Resize(1280, 720)
	return s
}

func TestInjectClick(t *testing.T) {
	s := newTestScene()

	s.InjectClick(50, 50)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(s.injectQueue))
	}

	// Frame 1: press
	s.processInjectedInput()
	if len(s.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(s.injectQueue))
	}
	if s.Formation().Phase() != PhaseIdle {
		t.Error("tap should not fire on press frame")
	}
	if !s.Gate().Active() {
		t.Error("gate should be active after press")
	}

	// Frame 2: release → tap starts the experience
	s.processInjectedInput()
	if len(s.injectQueue) != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", len(s.injectQueue))
	}
	if got := s.Formation().Phase(); got != PhaseScattering {
		t.Errorf("phase after tap = %s, want scattering", got)
	}
}

func TestInjectDrag(t *testing.T) {
	s := newTestScene()
	s.Start()

	// frame 0: press at (10,10)
	// frames 1-3: moves to (73.3,10) (136.7,10) (200,10)
	// frame 4: release at (200,10)
	s.InjectDrag(10, 10, 200, 10, 5)
	if len(s.injectQueue) != 5 {
		t.Fatalf("expected 5 queued events, got %d", len(s.injectQueue))
	}
	for i := 0; i < 5; i++ {
		s.processInjectedInput()
	}

	raw := s.Orbit().Raw()
	want := 190 * s.Orbit().Sensitivity
	if !approxEqual(raw.Yaw, want, 1e-9) {
		t.Errorf("yaw after drag = %v, want %v", raw.Yaw, want)
	}
	if raw.Pitch != 0 {
		t.Errorf("pitch after horizontal drag = %v, want 0", raw.Pitch)
	}
	if got := s.Formation().Phase(); got != PhaseScattering {
		t.Errorf("drag toggled the formation to %s", got)
	}
}

func TestInjectDragIgnoredWhileIdle(t *testing.T) {
	s := newTestScene()
	s.InjectDrag(10, 10, 200, 200, 4)
	for s.processInjectedInput() {
	}
	if raw := s.Orbit().Raw(); raw != (Angles{}) {
		t.Errorf("idle drag rotated the orbit to %+v", raw)
	}
	if got := s.Formation().Phase(); got != PhaseIdle {
		t.Errorf("phase = %s, want idle", got)
	}
}

func TestInjectDrag_MinFrames(t *testing.T) {
	s := NewScene(SceneOptions{Seed: 1})
	s.InjectDrag(0, 0, 100, 100, 1) // should clamp to 2
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events (clamped), got %d", len(s.injectQueue))
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s := NewScene(SceneOptions{Seed: 1})

	s.InjectPress(10, 20)
	s.InjectMove(30, 40)
	s.InjectRelease(50, 60)
	s.InjectLeave(70, 80)

	if len(s.injectQueue) != 4 {
		t.Fatalf("expected 4 events, got %d", len(s.injectQueue))
	}
	want := []pointerAction{pointerPress, pointerMove, pointerRelease, pointerLeave}
	for i, a := range want {
		if s.injectQueue[i].action != a || s.injectQueue[i].x != float64(10+20*i) {
			t.Errorf("event %d = %+v, want action %d at x=%d", i, s.injectQueue[i], a, 10+20*i)
		}
	}
}

func TestInjectLeaveEndsPress(t *testing.T) {
	s := newTestScene()
	s.Start()
	s.InjectPress(100, 100)
	s.InjectLeave(101, 100)
	s.processInjectedInput()
	s.processInjectedInput()
	if s.Gate().Active() {
		t.Error("gate still active after pointer left")
	}
	if got := s.Formation().Phase(); got != PhaseGathered {
		t.Errorf("short press ending in leave: phase = %s, want gathered", got)
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	s := NewScene(SceneOptions{Seed: 1})
	if s.processInjectedInput() {
		t.Error("processInjectedInput should return false on empty queue")
	}
}

func TestUpdateConsumesOneEventPerFrame(t *testing.T) {
	s := newTestScene()
	s.InjectClick(640, 360)
	s.Update()
	if got := len(s.injectQueue); got != 1 {
		t.Fatalf("queue after one Update = %d, want 1", got)
	}
	s.Update()
	if s.Injecting() {
		t.Error("queue not drained after two Updates")
	}
	if got := s.Formation().Phase(); got != PhaseScattering {
		t.Errorf("phase = %s, want scattering", got)
	}
}
