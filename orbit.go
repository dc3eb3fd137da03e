package wishheart

import "math"

// Angles is an assembly orientation in degrees.
type Angles struct {
	Pitch float64 // rotation about X
	Yaw   float64 // rotation about Y
}

// Neg returns the counter-rotation that keeps content facing the viewer.
func (a Angles) Neg() Angles {
	return Angles{Pitch: -a.Pitch, Yaw: -a.Yaw}
}

// Orbit turns pointer drags into smoothed assembly rotation. Drags move the
// raw angles immediately; the applied angles follow them through a pair of
// springs so discrete pointer samples read as continuous motion.
type Orbit struct {
	// Sensitivity converts pointer pixels to degrees.
	Sensitivity float64

	raw   Angles
	pitch Spring
	yaw   Spring
}

// NewOrbit returns an orbit at the front-facing origin.
func NewOrbit(sensitivity float64, params SpringParams) *Orbit {
	return &Orbit{
		Sensitivity: sensitivity,
		pitch:       NewSpring(params),
		yaw:         NewSpring(params),
	}
}

// Drag applies a pointer movement. Horizontal motion drives yaw; vertical
// motion drives pitch with the sign inverted so the assembly follows the
// pointer like a grabbed object.
func (o *Orbit) Drag(dx, dy float64) {
	o.raw.Yaw += dx * o.Sensitivity
	o.raw.Pitch -= dy * o.Sensitivity
}

// Update advances the smoothing springs by dt seconds.
func (o *Orbit) Update(dt float64) {
	o.pitch.Step(o.raw.Pitch, dt)
	o.yaw.Step(o.raw.Yaw, dt)
}

// Raw returns the pointer-driven target angles.
func (o *Orbit) Raw() Angles {
	return o.raw
}

// Angles returns the smoothed angles to apply to the assembly.
func (o *Orbit) Angles() Angles {
	return Angles{Pitch: o.pitch.Position, Yaw: o.yaw.Position}
}

// Counter returns the negated smoothed angles for billboarded content.
func (o *Orbit) Counter() Angles {
	return o.Angles().Neg()
}

// Reset returns the target to the front-facing origin. The smoothed angles
// keep easing through the springs rather than jumping.
func (o *Orbit) Reset() {
	o.raw = Angles{}
}

// Snap resets target, smoothed angles and spring velocity at once.
func (o *Orbit) Snap() {
	o.raw = Angles{}
	o.pitch.Snap(0)
	o.yaw.Snap(0)
}

// Settled reports whether the smoothed angles are within eps degrees of the
// target and nearly at rest.
func (o *Orbit) Settled(eps float64) bool {
	return math.Abs(o.pitch.Position-o.raw.Pitch) <= eps &&
		math.Abs(o.yaw.Position-o.raw.Yaw) <= eps &&
		math.Abs(o.pitch.Velocity) <= eps && math.Abs(o.yaw.Velocity) <= eps
}
