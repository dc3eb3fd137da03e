package wishheart

import "math"

// DefaultTapThreshold is the largest pointer travel, in pixels, that still
// counts as a tap.
const DefaultTapThreshold = 5.0

// Rotator receives drag deltas.
type Rotator interface {
	Drag(dx, dy float64)
}

// Toggler receives taps.
type Toggler interface {
	Toggle()
}

// TogglerFunc adapts a function to Toggler.
type TogglerFunc func()

// Toggle calls f.
func (f TogglerFunc) Toggle() { f() }

// Gate separates "drag to rotate" from "tap to toggle". Every move while the
// pointer is down is forwarded as rotation; on release, a press that moved
// less than Threshold pixels is a tap.
type Gate struct {
	Threshold float64

	rot    Rotator
	tog    Toggler
	active bool
	startX float64
	startY float64
	lastX  float64
	lastY  float64
}

// NewGate returns a gate that forwards drags to rot and taps to tog.
func NewGate(rot Rotator, tog Toggler, threshold float64) *Gate {
	return &Gate{Threshold: threshold, rot: rot, tog: tog}
}

// Active reports whether a press is in progress.
func (g *Gate) Active() bool {
	return g.active
}

// PointerDown records the press position.
func (g *Gate) PointerDown(x, y float64) {
	g.active = true
	g.startX, g.startY = x, y
	g.lastX, g.lastY = x, y
}

// PointerMove forwards the movement since the last sample while pressed.
func (g *Gate) PointerMove(x, y float64) {
	if !g.active {
		return
	}
	dx, dy := x-g.lastX, y-g.lastY
	g.lastX, g.lastY = x, y
	if dx != 0 || dy != 0 {
		g.rot.Drag(dx, dy)
	}
}

// PointerUp ends the press. It reports whether the press was a tap.
func (g *Gate) PointerUp(x, y float64) bool {
	if !g.active {
		return false
	}
	g.active = false
	dx, dy := x-g.startX, y-g.startY
	if math.Sqrt(dx*dx+dy*dy) < g.Threshold {
		g.tog.Toggle()
		return true
	}
	return false
}

// PointerLeave handles the pointer leaving the surface. A press in progress
// ends exactly as PointerUp would, so the gate cannot get stuck dragging.
func (g *Gate) PointerLeave(x, y float64) bool {
	return g.PointerUp(x, y)
}
