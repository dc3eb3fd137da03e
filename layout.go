package wishheart

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/golang/geo/r3"
)

// DefaultFocalText is used when the content source yields nothing.
const DefaultFocalText = "新的一年"

// Wish is a single text record. ID stays bound to Text for the lifetime of an
// experience; only the two positions change on rebuild.
type Wish struct {
	ID           string
	Text         string
	ScatterPos   r3.Vector
	FormationPos r3.Vector
	Scale        float64
	ColorToken   string
	StaggerDelay time.Duration
	IsFocal      bool
}

// Decoration is a purely decorative glyph with no identity binding.
type Decoration struct {
	ID           string
	Kind         DecorationKind
	ScatterPos   r3.Vector
	FormationPos r3.Vector
	Scale        float64
	ColorToken   string
	StaggerDelay time.Duration
	RotationDeg  float64
}

// Layout is the output of one build pass.
type Layout struct {
	Wishes      []Wish
	Decorations []Decoration

	Radius   float64
	Viewport Viewport
	Tier     Tier
	// Origin is the assembly-space offset applied to formation positions.
	Origin r3.Vector
	// Generation increases by one for every build of the owning Formation.
	Generation int

	wishSpring SpringParams
	decoSpring SpringParams
}

// Target is one record's destination for the active mode, as consumed by an
// Animator or any other renderer.
type Target struct {
	ID          string
	Pos         r3.Vector
	Scale       float64
	RotationDeg float64
	Delay       time.Duration
	Spring      SpringParams
}

// Targets returns the destination of every record for mode, decorations
// first so they draw behind the wishes. Stagger delays apply only when
// gathering; scattering starts every record at once.
func (l *Layout) Targets(mode Mode) []Target {
	out := make([]Target, 0, len(l.Decorations)+len(l.Wishes))
	for i := range l.Decorations {
		d := &l.Decorations[i]
		t := Target{ID: d.ID, Pos: d.ScatterPos, Scale: d.Scale, RotationDeg: d.RotationDeg, Spring: l.decoSpring}
		if mode == ModeFormation {
			t.Pos = d.FormationPos.Add(l.Origin)
			t.Delay = d.StaggerDelay
		}
		out = append(out, t)
	}
	for i := range l.Wishes {
		w := &l.Wishes[i]
		t := Target{ID: w.ID, Pos: w.ScatterPos, Scale: w.Scale, Spring: l.wishSpring}
		if mode == ModeFormation {
			t.Pos = w.FormationPos.Add(l.Origin)
			t.Delay = w.StaggerDelay
		}
		out = append(out, t)
	}
	return out
}

// Focal returns the focal wish, or nil for an empty layout.
func (l *Layout) Focal() *Wish {
	for i := range l.Wishes {
		if l.Wishes[i].IsFocal {
			return &l.Wishes[i]
		}
	}
	return nil
}

// Builder produces layouts. The zero value is not usable; Rand must be set.
type Builder struct {
	Rand Rand
}

// Build lays out texts for vp. Wish i takes heart slot perm.Slot(i); a
// missing mapping falls back to slot i. An empty texts slice degrades to a
// single focal wish.
func (b Builder) Build(cfg Config, texts []string, perm SlotPermutation, vp Viewport) Layout {
	return b.Rebuild(cfg, texts, perm, vp, nil)
}

// Rebuild is Build with the previous layout available. With
// cfg.DecorationContinuity set and a compatible previous population, the
// decorations are rescaled to the new viewport instead of regenerated.
func (b Builder) Rebuild(cfg Config, texts []string, perm SlotPermutation, vp Viewport, prev *Layout) Layout {
	if len(texts) == 0 {
		texts = []string{DefaultFocalText}
	}
	radius := vp.MinDim() * cfg.RadiusFactor
	l := Layout{
		Wishes:     b.buildWishes(cfg, texts, perm, vp, radius),
		Radius:     radius,
		Viewport:   vp,
		Tier:       cfg.Tier,
		Origin:     r3.Vector{X: cfg.OriginOffsetX},
		wishSpring: cfg.Springs.Wish,
		decoSpring: cfg.Springs.Decoration,
	}
	if cfg.DecorationContinuity && prev != nil && len(prev.Decorations) == cfg.Counts.Decorations {
		l.Decorations = rescaleDecorations(prev, vp, radius)
	} else {
		l.Decorations = b.buildDecorations(cfg, len(texts), vp, radius)
	}
	return l
}

func (b Builder) buildWishes(cfg Config, texts []string, perm SlotPermutation, vp Viewport, radius float64) []Wish {
	rng := b.Rand
	wishes := make([]Wish, len(texts))
	for i, text := range texts {
		w := Wish{
			ID:           fmt.Sprintf("wish-%d", i),
			Text:         text,
			FormationPos: HeartPoint(perm.Slot(i), len(texts), radius, rng),
			ScatterPos:   ScatterPoint(vp, cfg.Spreads.Wish, rng),
			StaggerDelay: time.Duration(i) * cfg.WishStagger.Std(),
			IsFocal:      i == 0,
		}
		if w.IsFocal {
			w.ColorToken = cfg.Palette.Focal
			w.Scale = cfg.FocalScale
		} else {
			w.ColorToken = pick(rng, cfg.Palette.Wishes)
			w.Scale = wishScale(text, rng) * cfg.WishScale
		}
		wishes[i] = w
	}
	return wishes
}

// wishScale grows longer texts slightly so they stay legible; short ones get
// a random size for variety.
func wishScale(text string, rng Rand) float64 {
	if utf8.RuneCountInString(text) > 2 {
		return 1.1
	}
	return 0.8 + rng.Float64()*0.4
}

func (b Builder) buildDecorations(cfg Config, total int, vp Viewport, radius float64) []Decoration {
	rng := b.Rand
	decos := make([]Decoration, cfg.Counts.Decorations)
	for i := range decos {
		var formation r3.Vector
		if rng.Float64() < cfg.DecorationHeartBias {
			base := HeartPoint(i%total, total, radius*cfg.DecorationRadius.Random(rng), rng)
			noise := cfg.DecorationNoise
			formation = r3.Vector{
				X: base.X + centered(rng)*noise,
				Y: base.Y + centered(rng)*noise,
				Z: base.Z + centered(rng)*noise,
			}
		} else {
			formation = CloudPoint(radius, cfg.CloudRadius, cfg.CloudFlatten, rng)
		}
		decos[i] = Decoration{
			ID:           fmt.Sprintf("deco-%d", i),
			FormationPos: formation,
			ScatterPos:   ScatterPoint(vp, cfg.Spreads.Decoration, rng),
			Kind:         pick(rng, decorationKinds[:]),
			ColorToken:   pick(rng, cfg.Palette.Decorations),
			Scale:        (0.3 + rng.Float64()) * cfg.DecorationScale,
			StaggerDelay: time.Duration(i) * cfg.DecorationStagger.Std(),
			RotationDeg:  rng.Float64() * 360,
		}
	}
	return decos
}

// rescaleDecorations carries prev's decorations over to a new viewport:
// formation positions follow the radius, scatter positions follow the
// viewport axes.
func rescaleDecorations(prev *Layout, vp Viewport, radius float64) []Decoration {
	kr := ratio(radius, prev.Radius)
	kx := ratio(vp.Width, prev.Viewport.Width)
	ky := ratio(vp.Height, prev.Viewport.Height)
	decos := make([]Decoration, len(prev.Decorations))
	for i, d := range prev.Decorations {
		d.FormationPos = d.FormationPos.Mul(kr)
		d.ScatterPos.X *= kx
		d.ScatterPos.Y *= ky
		decos[i] = d
	}
	return decos
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 1
	}
	return a / b
}
