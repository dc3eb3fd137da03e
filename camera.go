package wishheart

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultPerspective is the eye distance in pixels.
const DefaultPerspective = 1000

// minDepth keeps points that reach the eye plane from exploding.
const minDepth = 1

// Projected is a point placed on screen.
type Projected struct {
	X, Y float64
	// Scale is the perspective factor at the point's depth.
	Scale float64
	// Depth grows toward the viewer.
	Depth float64
	// Index is the caller's index of the projected record.
	Index int
}

// Camera projects assembly points onto the screen. The assembly is rotated
// by Angles (pitch about X, then yaw about Y) and seen through a pinhole at
// Perspective pixels from the screen plane, centered on the viewport.
type Camera struct {
	Perspective float64
	Viewport    Viewport

	// CullMargin widens the viewport for Visible, in pixels.
	CullMargin float64

	angles Angles
	rot    mgl64.Mat3
	dirty  bool

	dolly *gween.Tween
}

// NewCamera returns a camera with the default perspective for vp.
func NewCamera(vp Viewport) *Camera {
	return &Camera{
		Perspective: DefaultPerspective,
		Viewport:    vp,
		CullMargin:  64,
		rot:         mgl64.Ident3(),
	}
}

// SetAngles sets the assembly orientation.
func (c *Camera) SetAngles(a Angles) {
	if a != c.angles {
		c.angles = a
		c.dirty = true
	}
}

// Angles returns the assembly orientation.
func (c *Camera) Angles() Angles {
	return c.angles
}

// DollyTo animates Perspective to the given distance over duration seconds.
func (c *Camera) DollyTo(perspective float64, duration float32, fn ease.TweenFunc) {
	c.dolly = gween.New(float32(c.Perspective), float32(perspective), duration, fn)
}

// Update advances the dolly animation.
func (c *Camera) Update(dt float32) {
	if c.dolly == nil {
		return
	}
	v, done := c.dolly.Update(dt)
	c.Perspective = float64(v)
	if done {
		c.dolly = nil
	}
}

// rotation returns the cached assembly rotation, recomputing it if the
// angles changed.
func (c *Camera) rotation() mgl64.Mat3 {
	if !c.dirty {
		return c.rot
	}
	c.dirty = false
	pitch := mgl64.Rotate3DX(mgl64.DegToRad(c.angles.Pitch))
	yaw := mgl64.Rotate3DY(mgl64.DegToRad(c.angles.Yaw))
	c.rot = pitch.Mul3(yaw)
	return c.rot
}

// Rotate applies the assembly rotation to p.
func (c *Camera) Rotate(p r3.Vector) r3.Vector {
	v := c.rotation().Mul3x1(mgl64.Vec3{p.X, p.Y, p.Z})
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Project rotates p with the assembly and projects it. It reports false for
// points at or behind the eye.
func (c *Camera) Project(p r3.Vector) (Projected, bool) {
	return c.project(c.Rotate(p))
}

// ProjectFixed projects p without the assembly rotation.
func (c *Camera) ProjectFixed(p r3.Vector) (Projected, bool) {
	return c.project(p)
}

func (c *Camera) project(q r3.Vector) (Projected, bool) {
	d := c.Perspective
	if d <= 0 {
		d = DefaultPerspective
	}
	if d-q.Z < minDepth {
		return Projected{}, false
	}
	s := d / (d - q.Z)
	cx, cy := c.Viewport.Center()
	return Projected{X: cx + q.X*s, Y: cy + q.Y*s, Scale: s, Depth: q.Z}, true
}

// Visible reports whether p lies inside the viewport grown by CullMargin.
func (c *Camera) Visible(p Projected) bool {
	m := c.CullMargin
	return p.X >= -m && p.Y >= -m && p.X <= c.Viewport.Width+m && p.Y <= c.Viewport.Height+m
}

// SortByDepth orders ps back to front. Ties keep their input order.
func SortByDepth(ps []Projected) {
	slices.SortStableFunc(ps, func(a, b Projected) int {
		switch {
		case a.Depth < b.Depth:
			return -1
		case a.Depth > b.Depth:
			return 1
		}
		return 0
	})
}
