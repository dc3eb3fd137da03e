package wishheart

import "math"

// maxSpringStep bounds the integration step so a long frame cannot blow the
// oscillator up.
const maxSpringStep = 1.0 / 120

// Spring is a damped harmonic oscillator integrated with semi-implicit Euler:
//
//	a = (k*(target-x) - c*v) / m
//	v += a*dt
//	x += v*dt
type Spring struct {
	SpringParams
	Position float64
	Velocity float64
}

// NewSpring returns a spring at rest at position 0.
func NewSpring(p SpringParams) Spring {
	if p.Mass <= 0 {
		p.Mass = 1
	}
	return Spring{SpringParams: p}
}

// Step advances the spring toward target by dt seconds.
func (s *Spring) Step(target, dt float64) {
	for dt > 0 {
		h := min(dt, maxSpringStep)
		a := (s.Stiffness*(target-s.Position) - s.Damping*s.Velocity) / s.Mass
		s.Velocity += a * h
		s.Position += s.Velocity * h
		dt -= h
	}
}

// Snap puts the spring at rest on x.
func (s *Spring) Snap(x float64) {
	s.Position = x
	s.Velocity = 0
}

// DampingRatio returns c / (2*sqrt(k*m)). One is critical damping; smaller
// values overshoot.
func (p SpringParams) DampingRatio() float64 {
	return p.Damping / (2 * sqrtPos(p.Stiffness*p.Mass))
}

// AngularFrequency returns sqrt(k/m).
func (p SpringParams) AngularFrequency() float64 {
	if p.Mass <= 0 {
		return sqrtPos(p.Stiffness)
	}
	return sqrtPos(p.Stiffness / p.Mass)
}

func sqrtPos(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Sqrt(x)
}
