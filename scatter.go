package wishheart

import (
	"math"

	"github.com/golang/geo/r3"
)

// ScatterSpread sizes the scatter volume relative to the viewport. The box
// spans Width*Fraction*Factor horizontally (and likewise vertically) centered
// on the origin, and Depth along z.
type ScatterSpread struct {
	Fraction float64 `json:"fraction"`
	Factor   float64 `json:"factor"`
	Depth    float64 `json:"depth"`
}

// ScatterPoint returns a point uniformly distributed inside the scatter box
// for vp.
func ScatterPoint(vp Viewport, s ScatterSpread, rng Rand) r3.Vector {
	return r3.Vector{
		X: centered(rng) * vp.Width * s.Fraction * s.Factor,
		Y: centered(rng) * vp.Height * s.Fraction * s.Factor,
		Z: centered(rng) * s.Depth,
	}
}

// CloudPoint samples a point on a spherical shell around the origin whose
// radius is radius*shell.Random(). Directions are uniform over the sphere;
// z is then multiplied by flatten to keep the cloud from getting too deep.
func CloudPoint(radius float64, shell Range, flatten float64, rng Rand) r3.Vector {
	theta := rng.Float64() * 2 * math.Pi
	phi := math.Acos(rng.Float64()*2 - 1)
	r := radius * shell.Random(rng)
	sinPhi := math.Sin(phi)
	return r3.Vector{
		X: r * sinPhi * math.Cos(theta),
		Y: r * sinPhi * math.Sin(theta),
		Z: r * math.Cos(phi) * flatten,
	}
}
