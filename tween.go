package wishheart

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Pulse oscillates a value between From and To forever, easing both ways.
// Call Update(dt) each frame and read Value.
type Pulse struct {
	From, To float64
	Period   float32 // seconds for one full cycle
	Ease     ease.TweenFunc

	tween   *gween.Tween
	forward bool
	value   float64
}

// NewPulse returns a pulse that starts at from.
func NewPulse(from, to float64, period float32, fn ease.TweenFunc) *Pulse {
	if fn == nil {
		fn = ease.InOutSine
	}
	p := &Pulse{From: from, To: to, Period: period, Ease: fn, value: from}
	p.restart(true)
	return p
}

func (p *Pulse) restart(forward bool) {
	p.forward = forward
	from, to := p.From, p.To
	if !forward {
		from, to = to, from
	}
	p.tween = gween.New(float32(from), float32(to), p.Period/2, p.Ease)
}

// Update advances the pulse by dt seconds and returns the new value.
func (p *Pulse) Update(dt float32) float64 {
	if p.Period <= 0 {
		p.value = p.To
		return p.value
	}
	v, done := p.tween.Update(dt)
	p.value = float64(v)
	if done {
		p.restart(!p.forward)
	}
	return p.value
}

// Value returns the current value.
func (p *Pulse) Value() float64 {
	return p.value
}

// Fade animates a value once from From to To. Done is set when it arrives.
type Fade struct {
	tween *gween.Tween
	value float64
	Done  bool
}

// NewFade returns a fade over duration seconds.
func NewFade(from, to float64, duration float32, fn ease.TweenFunc) *Fade {
	if fn == nil {
		fn = ease.OutQuad
	}
	return &Fade{tween: gween.New(float32(from), float32(to), duration, fn), value: from}
}

// Update advances the fade by dt seconds and returns the new value.
func (f *Fade) Update(dt float32) float64 {
	if f.Done {
		return f.value
	}
	v, done := f.tween.Update(dt)
	f.value = float64(v)
	f.Done = done
	return f.value
}

// Value returns the current value.
func (f *Fade) Value() float64 {
	return f.value
}
