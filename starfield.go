package wishheart

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/golang/geo/r3"
)

// StarfieldConfig controls the warp-speed background.
type StarfieldConfig struct {
	// Count is the pool size.
	Count int
	// Extent is the half-size of the cube the stars live in. Stars that pass
	// +Extent on z wrap back by 2*Extent.
	Extent float64
	// Speed is the z velocity in units per second.
	Speed float64
	// Size is the point size at unit distance, scaled by half the viewport
	// height.
	Size float64
	// Colors are drawn uniformly per star.
	Colors []Color
	// SpinZ and SpinX rotate the whole field, in radians per second.
	SpinZ, SpinX float64
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Fog is the exponential-squared fog density.
	Fog float64
	// Twinkle is the depth of the noise-driven alpha flicker in [0, 1].
	Twinkle float64
}

// StarfieldFor derives the background settings for a tier preset.
func StarfieldFor(cfg Config) StarfieldConfig {
	colors, err := parseColors(cfg.Palette.Stars)
	if err != nil || len(colors) == 0 {
		colors = []Color{ColorWhite}
	}
	return StarfieldConfig{
		Count:   cfg.Counts.Stars,
		Extent:  cfg.StarExtent,
		Speed:   cfg.StarSpeed,
		Size:    cfg.StarSize,
		Colors:  colors,
		SpinZ:   0.06,
		SpinX:   0.03,
		FOV:     75,
		Fog:     0.001,
		Twinkle: 0.35,
	}
}

// star holds per-star state. Unexported; managed by Starfield.
type star struct {
	pos   r3.Vector
	color Color
	phase float64
}

// StarSprite is a star placed on screen.
type StarSprite struct {
	X, Y  float64
	Size  float64
	Color Color
}

// Starfield is a pool of stars that stream toward a fixed camera at z =
// Extent while the field slowly spins. It never interacts with the layout.
type Starfield struct {
	config StarfieldConfig
	stars  []star
	rotZ   float64
	rotX   float64
	time   float64
	noise  *perlin.Perlin
}

// NewStarfield fills the pool uniformly inside the cube.
func NewStarfield(cfg StarfieldConfig, rng Rand) *Starfield {
	if cfg.Extent <= 0 {
		cfg.Extent = 1000
	}
	if len(cfg.Colors) == 0 {
		cfg.Colors = []Color{ColorWhite}
	}
	f := &Starfield{
		config: cfg,
		stars:  make([]star, max(cfg.Count, 0)),
		noise:  perlin.NewPerlin(2, 2, 3, int64(rng.IntN(math.MaxInt32))),
	}
	e := cfg.Extent
	for i := range f.stars {
		f.stars[i] = star{
			pos: r3.Vector{
				X: (rng.Float64()*2 - 1) * e,
				Y: (rng.Float64()*2 - 1) * e,
				Z: (rng.Float64()*2 - 1) * e,
			},
			color: pick(rng, cfg.Colors),
			phase: rng.Float64() * 100,
		}
	}
	return f
}

// Config returns a pointer to the starfield's config for live tuning.
func (f *Starfield) Config() *StarfieldConfig {
	return &f.config
}

// Len returns the number of stars.
func (f *Starfield) Len() int {
	return len(f.stars)
}

// Update advances the simulation by dt seconds.
func (f *Starfield) Update(dt float64) {
	f.time += dt
	f.rotZ += f.config.SpinZ * dt
	f.rotX += f.config.SpinX * dt

	dz := f.config.Speed * dt
	e := f.config.Extent
	for i := range f.stars {
		p := &f.stars[i].pos
		p.Z += dz
		for p.Z > e {
			p.Z -= 2 * e
		}
	}
}

// Project appends the visible stars for vp to dst and returns it.
func (f *Starfield) Project(vp Viewport, dst []StarSprite) []StarSprite {
	if vp.Empty() {
		return dst
	}
	cx, cy := vp.Center()
	fov := f.config.FOV
	if fov <= 0 {
		fov = 75
	}
	focal := (vp.Height / 2) / math.Tan(fov*math.Pi/360)
	camZ := f.config.Extent

	sz, cz := math.Sincos(f.rotZ)
	sx, cx2 := math.Sincos(f.rotX)

	for i := range f.stars {
		s := &f.stars[i]
		// Field rotation: X then Z, as a three.js Euler with order XYZ.
		x, y, z := s.pos.X, s.pos.Y, s.pos.Z
		x, y = x*cz-y*sz, x*sz+y*cz
		y, z = y*cx2-z*sx, y*sx+z*cx2

		dist := camZ - z // near plane 0.1, far plane at Extent
		if dist <= 0.1 || dist >= camZ {
			continue
		}
		px := cx + x*focal/dist
		py := cy - y*focal/dist
		if px < 0 || py < 0 || px > vp.Width || py > vp.Height {
			continue
		}
		fog := f.config.Fog * dist
		alpha := math.Exp(-fog*fog) * f.twinkle(s.phase)
		dst = append(dst, StarSprite{
			X:     px,
			Y:     py,
			Size:  f.config.Size * (vp.Height / 2) / dist,
			Color: s.color.WithAlpha(alpha),
		})
	}
	return dst
}

// twinkle returns an alpha multiplier in [1-Twinkle, 1].
func (f *Starfield) twinkle(phase float64) float64 {
	if f.config.Twinkle <= 0 {
		return 1
	}
	n := f.noise.Noise1D(phase + f.time*0.8)
	n = math.Max(-1, math.Min(1, n))
	return 1 - f.config.Twinkle*(0.5+0.5*n)
}
