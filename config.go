package wishheart

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Tier is a performance preset. Constrained targets small or slow screens:
// fewer particles, shallower scatter, snappier springs.
type Tier uint8

const (
	TierFull        Tier = iota // desktop-class
	TierConstrained             // phones and narrow windows
)

func (t Tier) String() string {
	if t == TierConstrained {
		return "constrained"
	}
	return "full"
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	switch string(b) {
	case "full":
		*t = TierFull
	case "constrained":
		*t = TierConstrained
	default:
		return fmt.Errorf("unknown tier %q", b)
	}
	return nil
}

// Duration is a time.Duration that reads and writes JSON as "800ms".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler. Bare numbers are milliseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var ms float64
	if err := json.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("parse duration %s: %w", b, err)
	}
	*d = Duration(ms * float64(time.Millisecond))
	return nil
}

// SpringParams describes a damped spring the same way across the package:
// stiffness k, damping c and mass m.
type SpringParams struct {
	Stiffness float64 `json:"stiffness"`
	Damping   float64 `json:"damping"`
	Mass      float64 `json:"mass"`
}

// Counts sizes the particle populations.
type Counts struct {
	Decorations int `json:"decorations"`
	Stars       int `json:"stars"`
}

// Springs groups the spring parameters of every animated population.
type Springs struct {
	Wish       SpringParams `json:"wish"`
	Decoration SpringParams `json:"decoration"`
	Rotation   SpringParams `json:"rotation"`
}

// Spreads groups the scatter volumes of wishes and decorations.
type Spreads struct {
	Wish       ScatterSpread `json:"wish"`
	Decoration ScatterSpread `json:"decoration"`
}

// Palette holds color tokens ("#rrggbb").
type Palette struct {
	Focal       string   `json:"focal"`
	Wishes      []string `json:"wishes"`
	Decorations []string `json:"decorations"`
	Stars       []string `json:"stars"`
}

// Config tunes one performance tier.
type Config struct {
	Tier    Tier    `json:"tier"`
	Counts  Counts  `json:"counts"`
	Springs Springs `json:"springs"`
	Spreads Spreads `json:"spreads"`
	Palette Palette `json:"palette"`

	// RadiusFactor sizes the heart as a fraction of the smaller viewport side.
	RadiusFactor float64 `json:"radiusFactor"`
	// OriginOffsetX nudges the gathered heart horizontally to correct the
	// visual center bias of the glyphs.
	OriginOffsetX float64 `json:"originOffsetX"`

	FocalScale      float64 `json:"focalScale"`
	WishScale       float64 `json:"wishScale"`
	DecorationScale float64 `json:"decorationScale"`

	// DecorationHeartBias is the probability a decoration hugs the heart
	// rather than the surrounding cloud.
	DecorationHeartBias float64 `json:"decorationHeartBias"`
	DecorationNoise     float64 `json:"decorationNoise"`
	DecorationRadius    Range   `json:"decorationRadius"`
	CloudRadius         Range   `json:"cloudRadius"`
	CloudFlatten        float64 `json:"cloudFlatten"`

	WishStagger       Duration `json:"wishStagger"`
	DecorationStagger Duration `json:"decorationStagger"`

	Sensitivity  float64 `json:"sensitivity"`
	TapThreshold float64 `json:"tapThreshold"`

	GatherDelay    Duration `json:"gatherDelay"`
	ResizeDebounce Duration `json:"resizeDebounce"`

	StarSpeed  float64 `json:"starSpeed"`
	StarExtent float64 `json:"starExtent"`
	StarSize   float64 `json:"starSize"`

	// DecorationContinuity keeps decoration records across rebuilds and only
	// rescales them, instead of regenerating the population every time.
	DecorationContinuity bool `json:"decorationContinuity"`
}

// FullConfig returns the desktop preset.
func FullConfig() Config {
	return Config{
		Tier:   TierFull,
		Counts: Counts{Decorations: 100, Stars: 2000},
		Springs: Springs{
			Wish:       SpringParams{Stiffness: 45, Damping: 15, Mass: 0.8},
			Decoration: SpringParams{Stiffness: 40, Damping: 15, Mass: 0.6},
			Rotation:   SpringParams{Stiffness: 100, Damping: 20, Mass: 1},
		},
		Spreads: Spreads{
			Wish:       ScatterSpread{Fraction: 0.4, Factor: 2.2, Depth: 800},
			Decoration: ScatterSpread{Fraction: 0.5, Factor: 2.5, Depth: 1000},
		},
		Palette: Palette{
			Focal:       FocalColorToken,
			Wishes:      DreamyPalette,
			Decorations: DecorationPalette,
			Stars:       StarPalette,
		},
		RadiusFactor:        0.45,
		OriginOffsetX:       -10,
		FocalScale:          2.0,
		WishScale:           1,
		DecorationScale:     1,
		DecorationHeartBias: 0.4,
		DecorationNoise:     120,
		DecorationRadius:    Range{Min: 0.9, Max: 1.5},
		CloudRadius:         Range{Min: 1.2, Max: 2.0},
		CloudFlatten:        0.5,
		WishStagger:         Duration(5 * time.Millisecond),
		DecorationStagger:   Duration(2 * time.Millisecond),
		Sensitivity:         0.5,
		TapThreshold:        5,
		GatherDelay:         Duration(800 * time.Millisecond),
		ResizeDebounce:      Duration(100 * time.Millisecond),
		StarSpeed:           120,
		StarExtent:          1000,
		StarSize:            4,
	}
}

// ConstrainedConfig returns the preset for small or slow screens.
func ConstrainedConfig() Config {
	c := FullConfig()
	c.Tier = TierConstrained
	c.Counts = Counts{Decorations: 40, Stars: 1000}
	c.Springs.Wish = SpringParams{Stiffness: 60, Damping: 18, Mass: 0.8}
	c.Springs.Decoration = SpringParams{Stiffness: 60, Damping: 20, Mass: 0.6}
	c.Spreads.Wish.Depth = 500
	c.RadiusFactor = 0.34
	c.FocalScale = 1.4
	c.WishScale = 0.75
	c.DecorationScale = 0.6
	c.DecorationNoise = 60
	c.StarSize = 3
	return c
}

// Validate reports the first setting that would break layout math.
func (c Config) Validate() error {
	switch {
	case c.RadiusFactor <= 0:
		return errors.New("config: radiusFactor must be positive")
	case c.Counts.Decorations < 0 || c.Counts.Stars < 0:
		return errors.New("config: counts must not be negative")
	case len(c.Palette.Wishes) == 0 || len(c.Palette.Decorations) == 0:
		return errors.New("config: wish and decoration palettes must not be empty")
	case c.Sensitivity < 0 || c.TapThreshold < 0:
		return errors.New("config: sensitivity and tapThreshold must not be negative")
	}
	for _, sp := range []SpringParams{c.Springs.Wish, c.Springs.Decoration, c.Springs.Rotation} {
		if sp.Stiffness <= 0 || sp.Mass <= 0 || sp.Damping < 0 {
			return fmt.Errorf("config: invalid spring %+v", sp)
		}
	}
	tokens := append([]string{c.Palette.Focal}, c.Palette.Wishes...)
	tokens = append(tokens, c.Palette.Decorations...)
	tokens = append(tokens, c.Palette.Stars...)
	if _, err := parseColors(tokens); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DefaultBreakpoint is the viewport width below which the constrained preset
// applies.
const DefaultBreakpoint = 768

// Presets holds one Config per tier and picks between them by viewport width.
type Presets struct {
	Full        Config  `json:"full"`
	Constrained Config  `json:"constrained"`
	Breakpoint  float64 `json:"breakpoint"`
}

// DefaultPresets returns the built-in tier presets.
func DefaultPresets() Presets {
	return Presets{
		Full:        FullConfig(),
		Constrained: ConstrainedConfig(),
		Breakpoint:  DefaultBreakpoint,
	}
}

// For returns the preset that applies to vp.
func (p Presets) For(vp Viewport) Config {
	if vp.Width < p.Breakpoint {
		return p.Constrained
	}
	return p.Full
}

// Validate validates both presets.
func (p Presets) Validate() error {
	if err := p.Full.Validate(); err != nil {
		return fmt.Errorf("full: %w", err)
	}
	if err := p.Constrained.Validate(); err != nil {
		return fmt.Errorf("constrained: %w", err)
	}
	return nil
}

// LoadPresets parses JSON overrides on top of DefaultPresets. Fields absent
// from the document keep their default values.
func LoadPresets(jsonData []byte) (Presets, error) {
	p := DefaultPresets()
	if err := json.Unmarshal(jsonData, &p); err != nil {
		return Presets{}, fmt.Errorf("parse presets: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Presets{}, fmt.Errorf("parse presets: %w", err)
	}
	return p, nil
}
