package wishheart

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/golang/geo/r3"
)

// DefaultTPS is the tick rate used when none is given.
const DefaultTPS = 60

const (
	axisX = iota
	axisY
	axisZ
	axisScale
	axisRotation
	axisCount
)

// Body is the animated state of one record.
type Body struct {
	ID          string
	Pos         r3.Vector
	Scale       float64
	RotationDeg float64

	target Target
	vel    [axisCount]float64
}

// Target returns the destination the body is moving toward.
func (b *Body) Target() Target {
	return b.target
}

func (b *Body) axes() [axisCount]*float64 {
	return [axisCount]*float64{&b.Pos.X, &b.Pos.Y, &b.Pos.Z, &b.Scale, &b.RotationDeg}
}

func (b *Body) goal() [axisCount]float64 {
	t := b.target
	return [axisCount]float64{t.Pos.X, t.Pos.Y, t.Pos.Z, t.Scale, t.RotationDeg}
}

// Animator moves bodies toward their targets with damped springs. Every
// record waits for its own delay, counted from the last Sync, before it
// starts moving.
type Animator struct {
	step    float64
	accum   float64
	elapsed float64

	bodies  []Body
	index   map[string]int
	springs map[SpringParams]harmonica.Spring
}

// NewAnimator returns an animator that integrates at tps ticks per second.
func NewAnimator(tps int) *Animator {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return &Animator{
		step:    harmonica.FPS(tps),
		index:   make(map[string]int),
		springs: make(map[SpringParams]harmonica.Spring),
	}
}

// Sync retargets the animator. Bodies whose ID is already known keep their
// position and velocity; new IDs appear directly on their target; IDs
// missing from targets are dropped. Delays restart from zero.
func (a *Animator) Sync(targets []Target) {
	bodies := make([]Body, len(targets))
	index := make(map[string]int, len(targets))
	for i, t := range targets {
		if j, ok := a.index[t.ID]; ok {
			bodies[i] = a.bodies[j]
		} else {
			bodies[i] = Body{ID: t.ID, Pos: t.Pos, Scale: t.Scale, RotationDeg: t.RotationDeg}
		}
		bodies[i].target = t
		index[t.ID] = i
	}
	a.bodies = bodies
	a.index = index
	a.elapsed = 0
}

// SyncLayout retargets the animator to l's records for mode.
func (a *Animator) SyncLayout(l *Layout, mode Mode) {
	a.Sync(l.Targets(mode))
}

// Update advances the simulation by dt seconds in whole ticks.
func (a *Animator) Update(dt float64) {
	a.accum += dt
	for a.accum >= a.step {
		a.accum -= a.step
		a.tick()
	}
}

func (a *Animator) tick() {
	a.elapsed += a.step
	for i := range a.bodies {
		b := &a.bodies[i]
		if a.elapsed < b.target.Delay.Seconds() {
			continue
		}
		sp := b.target.Spring
		if sp.Stiffness <= 0 {
			b.Pos, b.Scale, b.RotationDeg = b.target.Pos, b.target.Scale, b.target.RotationDeg
			b.vel = [axisCount]float64{}
			continue
		}
		s := a.spring(sp)
		goal := b.goal()
		for k, p := range b.axes() {
			*p, b.vel[k] = s.Update(*p, b.vel[k], goal[k])
		}
	}
}

// spring returns the harmonica spring for p, building it on first use.
func (a *Animator) spring(p SpringParams) harmonica.Spring {
	s, ok := a.springs[p]
	if !ok {
		s = harmonica.NewSpring(a.step, p.AngularFrequency(), p.DampingRatio())
		a.springs[p] = s
	}
	return s
}

// Bodies returns the animated records in target order: decorations first,
// then wishes. The slice MUST NOT be retained across Sync.
func (a *Animator) Bodies() []Body {
	return a.bodies
}

// Body returns the body for id.
func (a *Animator) Body(id string) (*Body, bool) {
	i, ok := a.index[id]
	if !ok {
		return nil, false
	}
	return &a.bodies[i], true
}

// Elapsed returns the simulated time since the last Sync.
func (a *Animator) Elapsed() float64 {
	return a.elapsed
}

// Settled reports whether every body is within eps of its target.
func (a *Animator) Settled(eps float64) bool {
	for i := range a.bodies {
		b := &a.bodies[i]
		goal := b.goal()
		for k, p := range b.axes() {
			if math.Abs(*p-goal[k]) > eps || math.Abs(b.vel[k]) > eps {
				return false
			}
		}
	}
	return true
}
