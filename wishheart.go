package wishheart

import "github.com/golang/geo/r3"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha component replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Viewport is the size of the render surface in pixels. Viewport metrics are
// polled by the frontend and pushed into the scene via Resize.
type Viewport struct {
	Width, Height float64
}

// MinDim returns the smaller of the two viewport dimensions.
func (v Viewport) MinDim() float64 {
	return min(v.Width, v.Height)
}

// Center returns the screen-space center of the viewport.
func (v Viewport) Center() (float64, float64) {
	return v.Width / 2, v.Height / 2
}

// Empty reports whether the viewport has no drawable area.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Range is a general-purpose min/max range.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Random returns a random float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// origin is the focal slot position.
var origin = r3.Vector{}

// Mode selects which of a record's two positions is active.
type Mode uint8

const (
	ModeScatter   Mode = iota // dispersed random positions
	ModeFormation             // heart-shaped gathered positions
)

func (m Mode) String() string {
	if m == ModeFormation {
		return "formation"
	}
	return "scatter"
}

// Phase is the state of the formation state machine.
type Phase uint8

const (
	PhaseIdle       Phase = iota // nothing started yet
	PhaseScattering              // records fly toward their scatter positions
	PhaseGathered                // records fly toward the heart
)

func (p Phase) String() string {
	switch p {
	case PhaseScattering:
		return "scattering"
	case PhaseGathered:
		return "gathered"
	default:
		return "idle"
	}
}

// Mode returns the position set that is active in this phase. Idle reports
// ModeScatter.
func (p Phase) Mode() Mode {
	if p == PhaseGathered {
		return ModeFormation
	}
	return ModeScatter
}

// DecorationKind selects the glyph drawn for a decoration particle.
type DecorationKind uint8

const (
	KindStar    DecorationKind = iota // filled four-point star, pulses
	KindSparkle                       // thin cross, pings
	KindPearl                         // white disc with glow
	KindDiamond                       // rotated square
)

// decorationKinds lists every kind in declaration order.
var decorationKinds = [...]DecorationKind{KindStar, KindSparkle, KindPearl, KindDiamond}

func (k DecorationKind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindSparkle:
		return "sparkle"
	case KindPearl:
		return "pearl"
	case KindDiamond:
		return "diamond"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of formation event.
type EventType uint8

const (
	EventModeChanged     EventType = iota // phase transition
	EventLayoutRebuilt                    // a new Layout was built
	EventRotationUpdated                  // smoothed orbit angles moved
)

func (e EventType) String() string {
	switch e {
	case EventModeChanged:
		return "mode-changed"
	case EventLayoutRebuilt:
		return "layout-rebuilt"
	case EventRotationUpdated:
		return "rotation-updated"
	default:
		return "unknown"
	}
}

// RebuildReason records why a layout was rebuilt.
type RebuildReason uint8

const (
	ReasonStart  RebuildReason = iota // experience started
	ReasonToggle                      // user toggled the formation
	ReasonGather                      // delayed initial gather fired
	ReasonResize                      // debounced viewport resize
)

func (r RebuildReason) String() string {
	switch r {
	case ReasonStart:
		return "start"
	case ReasonToggle:
		return "toggle"
	case ReasonGather:
		return "gather"
	case ReasonResize:
		return "resize"
	default:
		return "unknown"
	}
}
