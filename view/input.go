package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSink receives normalized pointer input. *wishheart.Scene implements
// it.
type PointerSink interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp(x, y float64)
	PointerLeave(x, y float64)
}

// pointerSample is one tick's worth of pointer state.
type pointerSample struct {
	x, y   float64
	down   bool
	inside bool
}

// pointerTracker turns per-tick samples into press/move/release/leave
// edges. Only one pointer drives the scene at a time.
type pointerTracker struct {
	down         bool
	lastX, lastY float64
}

func (p *pointerTracker) feed(s pointerSample, sink PointerSink) {
	switch {
	case !p.down && s.down && s.inside:
		p.down = true
		sink.PointerDown(s.x, s.y)
	case p.down && !s.inside:
		p.down = false
		sink.PointerLeave(p.lastX, p.lastY)
	case p.down && !s.down:
		p.down = false
		sink.PointerUp(s.x, s.y)
	case p.down && (s.x != p.lastX || s.y != p.lastY):
		sink.PointerMove(s.x, s.y)
	}
	p.lastX, p.lastY = s.x, s.y
}

// reset forgets a press in progress without emitting anything.
func (p *pointerTracker) reset() {
	p.down = false
}

// inputState reads mouse and touch from Ebitengine. The first touch wins
// while it lasts; the mouse is used otherwise.
type inputState struct {
	tracker  pointerTracker
	touchIDs []ebiten.TouchID
	touch    ebiten.TouchID
	touching bool
}

func (in *inputState) poll(width, height int, sink PointerSink) {
	in.tracker.feed(in.sample(width, height), sink)
}

func (in *inputState) sample(width, height int) pointerSample {
	inside := func(x, y int) bool {
		return ebiten.IsFocused() && x >= 0 && y >= 0 && x < width && y < height
	}

	if in.touching {
		if inpututil.IsTouchJustReleased(in.touch) {
			in.touching = false
			x, y := inpututil.TouchPositionInPreviousTick(in.touch)
			return pointerSample{x: float64(x), y: float64(y), inside: true}
		}
		x, y := ebiten.TouchPosition(in.touch)
		return pointerSample{x: float64(x), y: float64(y), down: true, inside: inside(x, y)}
	}
	in.touchIDs = inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		in.touch = in.touchIDs[0]
		in.touching = true
		x, y := ebiten.TouchPosition(in.touch)
		return pointerSample{x: float64(x), y: float64(y), down: true, inside: inside(x, y)}
	}

	mx, my := ebiten.CursorPosition()
	return pointerSample{
		x:      float64(mx),
		y:      float64(my),
		down:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		inside: inside(mx, my),
	}
}
