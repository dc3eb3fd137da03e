package wishheart

import (
	"math"

	"github.com/golang/geo/r3"
)

// Shell is one progress band of the heart parametrisation. Each band covers
// the full curve once at its own scale, so three nested shells fill the
// silhouette instead of tracing a hollow outline.
type Shell struct {
	Start, End float64 // progress band [Start, End)
	Scale      float64 // multiplier applied to the curve
}

// Shells lists the outer, middle and inner bands in progress order.
var Shells = [3]Shell{
	{Start: 0, End: 0.5, Scale: 1.0},
	{Start: 0.5, End: 0.8, Scale: 0.7},
	{Start: 0.8, End: 1.0, Scale: 0.4},
}

// heartDepth is the depth jitter span in curve units, scaled by radius/10.
const heartDepth = 10.0

// shellFor returns the shell containing progress. Values at or past the last
// boundary land in the inner shell.
func shellFor(progress float64) Shell {
	for _, s := range Shells[:len(Shells)-1] {
		if progress < s.End {
			return s
		}
	}
	return Shells[len(Shells)-1]
}

// ShellScale returns the scale factor applied at the given progress.
func ShellScale(progress float64) float64 {
	return shellFor(progress).Scale
}

// heartCurve evaluates the classic parametric heart at t. y is negated so the
// lobes point up in a y-down screen space. |x| <= 16 and |y| <= 17; the
// bottom tip sits at y = 17.
func heartCurve(t float64) (x, y float64) {
	s := math.Sin(t)
	x = 16 * s * s * s
	y = -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t))
	return x, y
}

// HeartPoint maps slot index of total onto the layered heart of the given
// radius. Slot 0 is the focal slot and always maps to the origin. Depth is
// jittered uniformly using rng, so the heart has volume rather than lying flat.
//
// A total of one (only the focal slot) has no curve to distribute over; every
// index then maps to the origin instead of dividing by zero.
func HeartPoint(index, total int, radius float64, rng Rand) r3.Vector {
	adjustedTotal := total - 1
	if index <= 0 || adjustedTotal <= 0 {
		return origin
	}
	progress := float64(index-1) / float64(adjustedTotal)
	shell := shellFor(progress)
	t := (progress - shell.Start) / (shell.End - shell.Start) * 2 * math.Pi

	x, y := heartCurve(t)
	k := shell.Scale * radius / 16
	return r3.Vector{
		X: x * k,
		Y: y * k,
		Z: centered(rng) * heartDepth * (radius / 10),
	}
}
