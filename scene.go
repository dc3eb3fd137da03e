package wishheart

import (
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
)

// SceneOptions configures NewScene. Zero fields take defaults.
type SceneOptions struct {
	// Presets are the tier presets. Zero means DefaultPresets.
	Presets *Presets
	// Seed drives every random choice. Zero seeds from the clock.
	Seed uint64
	// TPS is the fixed update rate. Zero means DefaultTPS.
	TPS int
	// Texts are the wishes; index 0 is the focal text. Nil means
	// DefaultWishes.
	Texts []string
	// ScreenshotDir is where Screenshot writes PNGs. Empty means
	// "screenshots".
	ScreenshotDir string
	// FontData is a TrueType font for headless screenshots. Nil means Go
	// Regular.
	FontData []byte
}

// SpriteKind distinguishes the records in a Frame.
type SpriteKind uint8

const (
	SpriteWish       SpriteKind = iota // text record
	SpriteDecoration                   // decorative glyph
)

// Sprite is one record placed on screen for the current frame. Content is
// billboarded: it always faces the viewer regardless of the orbit angles.
type Sprite struct {
	ID          string
	Kind        SpriteKind
	Text        string
	Decoration  DecorationKind
	Focal       bool
	X, Y        float64
	Scale       float64
	RotationDeg float64
	Depth       float64
	Color       Color
}

// Frame is everything a renderer needs to draw one frame.
type Frame struct {
	Viewport Viewport
	Phase    Phase
	Angles   Angles
	Stars    []StarSprite
	// Sprites are ordered back to front.
	Sprites []Sprite
	// Glow is the focal glow alpha; zero unless gathered.
	Glow float64
	// GlowX and GlowY locate the focal glow on screen.
	GlowX, GlowY float64
	// Intro is the alpha of the intro overlay.
	Intro float64
}

type recordInfo struct {
	kind  SpriteKind
	text  string
	deco  DecorationKind
	focal bool
	color Color
}

// Scene is the composition root: it owns the formation state machine, the
// orbit, the interaction gate, the animator, the camera and the starfield,
// and advances them together once per tick.
type Scene struct {
	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir string

	presets   Presets
	rng       *rand.Rand
	tps       int
	texts     []string
	formation *Formation
	orbit     *Orbit
	gate      *Gate
	animator  *Animator
	camera    *Camera
	stars     *Starfield
	starTier  Tier
	glow      *Pulse
	intro     *Fade
	records   map[string]recordInfo
	debug     bool
	frames    int

	injectQueue     []syntheticPointerEvent
	runner          *ScriptRunner
	screenshotQueue []string
	fontData        []byte
	faces           FaceCache
}

// NewScene builds an idle scene. Call Resize with the surface size before
// the first Update.
func NewScene(opts SceneOptions) *Scene {
	presets := DefaultPresets()
	if opts.Presets != nil {
		presets = *opts.Presets
	}
	tps := opts.TPS
	if tps <= 0 {
		tps = DefaultTPS
	}
	texts := opts.Texts
	if texts == nil {
		texts = DefaultWishes
	}
	dir := opts.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	rng := NewRand(opts.Seed)
	cfg := presets.Full

	s := &Scene{
		ScreenshotDir: dir,
		presets:       presets,
		rng:           rng,
		tps:           tps,
		texts:         texts,
		orbit:         NewOrbit(cfg.Sensitivity, cfg.Springs.Rotation),
		animator:      NewAnimator(tps),
		camera:        NewCamera(Viewport{}),
		glow:          NewPulse(0.35, 0.8, 2, ease.InOutSine),
		intro:         NewFade(0, 1, 0.8, ease.OutQuad),
		records:       make(map[string]recordInfo),
		fontData:      opts.FontData,
	}
	s.formation = NewFormation(presets, s.orbit, rng)
	s.gate = NewGate(s, TogglerFunc(s.tap), cfg.TapThreshold)
	s.formation.OnLayoutRebuilt(s.onLayoutRebuilt)
	return s
}

// Formation returns the scene's state machine.
func (s *Scene) Formation() *Formation { return s.formation }

// Orbit returns the scene's orbit controller.
func (s *Scene) Orbit() *Orbit { return s.orbit }

// Gate returns the scene's interaction gate.
func (s *Scene) Gate() *Gate { return s.gate }

// Animator returns the scene's animator.
func (s *Scene) Animator() *Animator { return s.animator }

// Camera returns the scene's camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Starfield returns the background, or nil before the first Resize.
func (s *Scene) Starfield() *Starfield { return s.stars }

// TPS returns the fixed update rate.
func (s *Scene) TPS() int { return s.tps }

// Frames returns the number of Update calls so far.
func (s *Scene) Frames() int { return s.frames }

// SetTexts replaces the texts used by the next Start.
func (s *Scene) SetTexts(texts []string) {
	s.texts = texts
}

// SetEventSink forwards formation events to sink.
func (s *Scene) SetEventSink(sink EventSink) {
	s.formation.SetEventSink(sink)
}

// SetDebugMode enables or disables [wishheart] diagnostics on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	s.formation.SetDebugMode(enabled)
}

// Start begins (or restarts) the experience.
func (s *Scene) Start() {
	s.formation.Start(s.texts)
}

// Toggle flips the formation.
func (s *Scene) Toggle() {
	s.formation.Toggle()
}

// Close stops every pending timer.
func (s *Scene) Close() {
	s.formation.Close()
}

// Resize pushes new surface metrics into the scene.
func (s *Scene) Resize(w, h float64) {
	vp := Viewport{Width: w, Height: h}
	if vp == s.formation.Viewport() {
		return
	}
	s.formation.Resize(w, h)
	s.camera.Viewport = vp

	cfg := s.presets.For(vp)
	s.gate.Threshold = cfg.TapThreshold
	s.orbit.Sensitivity = cfg.Sensitivity
	if s.stars == nil || s.starTier != cfg.Tier {
		s.stars = NewStarfield(StarfieldFor(cfg), s.rng)
		s.starTier = cfg.Tier
	}
}

// Drag implements Rotator. Rotation is ignored until the experience starts.
func (s *Scene) Drag(dx, dy float64) {
	if s.formation.Phase() == PhaseIdle {
		return
	}
	s.orbit.Drag(dx, dy)
}

// tap starts the experience from the intro screen and toggles afterwards.
func (s *Scene) tap() {
	if s.formation.Phase() == PhaseIdle {
		s.Start()
		return
	}
	s.formation.Toggle()
}

// PointerDown forwards a press to the gate.
func (s *Scene) PointerDown(x, y float64) { s.gate.PointerDown(x, y) }

// PointerMove forwards a move to the gate.
func (s *Scene) PointerMove(x, y float64) { s.gate.PointerMove(x, y) }

// PointerUp forwards a release to the gate.
func (s *Scene) PointerUp(x, y float64) { s.gate.PointerUp(x, y) }

// PointerLeave forwards the pointer leaving the surface to the gate.
func (s *Scene) PointerLeave(x, y float64) { s.gate.PointerLeave(x, y) }

func (s *Scene) onLayoutRebuilt(ev LayoutRebuiltEvent) {
	l := ev.Layout
	clear(s.records)
	for i := range l.Decorations {
		d := &l.Decorations[i]
		s.records[d.ID] = recordInfo{kind: SpriteDecoration, deco: d.Kind, color: ColorOf(d.ColorToken)}
	}
	for i := range l.Wishes {
		w := &l.Wishes[i]
		s.records[w.ID] = recordInfo{kind: SpriteWish, text: w.Text, focal: w.IsFocal, color: ColorOf(w.ColorToken)}
	}
	s.animator.SyncLayout(l, ev.Mode)
}

// Update advances the scene by one fixed tick.
func (s *Scene) Update() {
	dt := 1.0 / float64(s.tps)
	s.frames++

	if s.runner != nil {
		s.runner.step(s)
	}
	s.processInjectedInput()

	var stats debugFrameStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.formation.Update(dt)
	s.camera.SetAngles(s.orbit.Angles())
	s.camera.Update(float32(dt))

	if s.debug {
		stats.formationTime = time.Since(t0)
		t0 = time.Now()
	}

	s.animator.Update(dt)

	if s.debug {
		stats.animateTime = time.Since(t0)
		stats.bodies = len(s.animator.Bodies())
		t0 = time.Now()
	}

	if s.stars != nil {
		s.stars.Update(dt)
	}

	if s.debug {
		stats.starsTime = time.Since(t0)
		if s.stars != nil {
			stats.stars = s.stars.Len()
		}
		debugLogFrame(stats)
	}

	s.glow.Update(float32(dt))
	if s.formation.Phase() == PhaseIdle {
		s.intro.Update(float32(dt))
	}

	s.flushScreenshots()
}

// Frame assembles the drawable state of the current tick.
func (s *Scene) Frame() Frame {
	vp := s.formation.Viewport()
	f := Frame{
		Viewport: vp,
		Phase:    s.formation.Phase(),
		Angles:   s.orbit.Angles(),
	}
	if s.stars != nil {
		f.Stars = s.stars.Project(vp, nil)
	}
	if f.Phase == PhaseIdle {
		f.Intro = s.intro.Value()
		return f
	}

	bodies := s.animator.Bodies()
	proj := make([]Projected, 0, len(bodies))
	for i := range bodies {
		p, ok := s.camera.Project(bodies[i].Pos)
		if !ok || !s.camera.Visible(p) {
			continue
		}
		p.Index = i
		proj = append(proj, p)
	}
	SortByDepth(proj)

	f.Sprites = make([]Sprite, 0, len(proj))
	for _, p := range proj {
		b := &bodies[p.Index]
		info := s.records[b.ID]
		f.Sprites = append(f.Sprites, Sprite{
			ID:          b.ID,
			Kind:        info.kind,
			Text:        info.text,
			Decoration:  info.deco,
			Focal:       info.focal,
			X:           p.X,
			Y:           p.Y,
			Scale:       b.Scale * p.Scale,
			RotationDeg: b.RotationDeg,
			Depth:       p.Depth,
			Color:       info.color,
		})
	}

	if f.Phase == PhaseGathered {
		if l := s.formation.Layout(); l != nil {
			if c, ok := s.camera.Project(l.Origin); ok {
				f.Glow = s.glow.Value()
				f.GlowX, f.GlowY = c.X, c.Y
			}
		}
	}
	return f
}
