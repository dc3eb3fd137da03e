package wishheart

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func testTexts(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = DefaultWishes[i%len(DefaultWishes)]
	}
	return out
}

func TestBuildFortyFiveItems(t *testing.T) {
	rng := NewRand(21)
	cfg := FullConfig()
	vp := Viewport{Width: 1280, Height: 720}
	texts := testTexts(45)
	l := Builder{Rand: rng}.Build(cfg, texts, NewSlotPermutation(45, rng), vp)

	if len(l.Wishes) != 45 {
		t.Fatalf("wishes = %d, want 45", len(l.Wishes))
	}
	if want := 720 * 0.45; l.Radius != want {
		t.Errorf("radius = %v, want %v", l.Radius, want)
	}
	focal := l.Wishes[0]
	if !focal.IsFocal {
		t.Error("wish 0 is not focal")
	}
	if focal.FormationPos != (r3.Vector{}) {
		t.Errorf("focal formation = %v, want origin", focal.FormationPos)
	}
	if focal.ColorToken != FocalColorToken || focal.Scale != cfg.FocalScale {
		t.Errorf("focal color/scale = %s/%v, want %s/%v", focal.ColorToken, focal.Scale, FocalColorToken, cfg.FocalScale)
	}
	for i, w := range l.Wishes[1:] {
		if w.IsFocal {
			t.Errorf("wish %d is focal", i+1)
		}
		if math.Abs(w.FormationPos.X) > l.Radius {
			t.Errorf("wish %d |x| = %v > radius %v", i+1, math.Abs(w.FormationPos.X), l.Radius)
		}
		if w.Text != texts[i+1] {
			t.Errorf("wish %d text = %q, want %q", i+1, w.Text, texts[i+1])
		}
	}
}

func TestBuildFocalTargetIncludesOrigin(t *testing.T) {
	rng := NewRand(22)
	l := Builder{Rand: rng}.Build(FullConfig(), testTexts(10), NewSlotPermutation(10, rng), Viewport{Width: 1000, Height: 800})
	for _, tg := range l.Targets(ModeFormation) {
		if tg.ID == "wish-0" {
			if tg.Pos != (r3.Vector{X: -10}) {
				t.Errorf("focal formation target = %v, want (-10, 0, 0)", tg.Pos)
			}
			return
		}
	}
	t.Fatal("no target for wish-0")
}

func TestRebuildKeepsBinding(t *testing.T) {
	rng := NewRand(23)
	b := Builder{Rand: rng}
	cfg := FullConfig()
	vp := Viewport{Width: 1280, Height: 720}
	texts := testTexts(30)

	first := b.Build(cfg, texts, NewSlotPermutation(30, rng), vp)
	second := b.Build(cfg, texts, NewSlotPermutation(30, rng), vp)

	moved := 0
	for i := range first.Wishes {
		a, c := first.Wishes[i], second.Wishes[i]
		if a.ID != c.ID || a.Text != c.Text {
			t.Errorf("wish %d binding %s=%q became %s=%q", i, a.ID, a.Text, c.ID, c.Text)
		}
		if a.FormationPos.X != c.FormationPos.X || a.FormationPos.Y != c.FormationPos.Y {
			moved++
		}
	}
	if moved == 0 {
		t.Error("new permutation did not move any wish")
	}
}

func TestBuildIdentityPermutationMatchesIndex(t *testing.T) {
	rng := NewRand(24)
	cfg := FullConfig()
	vp := Viewport{Width: 1000, Height: 1000}
	l := Builder{Rand: rng}.Build(cfg, testTexts(12), nil, vp)
	for i, w := range l.Wishes {
		want := HeartPoint(i, 12, l.Radius, rng)
		if math.Abs(w.FormationPos.X-want.X) > 1e-9 || math.Abs(w.FormationPos.Y-want.Y) > 1e-9 {
			t.Errorf("wish %d formation = (%v, %v), want slot %d (%v, %v)", i, w.FormationPos.X, w.FormationPos.Y, i, want.X, want.Y)
		}
	}
}

func TestBuildStaggerMonotonic(t *testing.T) {
	rng := NewRand(25)
	cfg := FullConfig()
	l := Builder{Rand: rng}.Build(cfg, testTexts(20), nil, Viewport{Width: 1000, Height: 1000})
	for i := 1; i < len(l.Wishes); i++ {
		if l.Wishes[i].StaggerDelay <= l.Wishes[i-1].StaggerDelay {
			t.Errorf("wish %d delay %v not after wish %d delay %v", i, l.Wishes[i].StaggerDelay, i-1, l.Wishes[i-1].StaggerDelay)
		}
	}
	if got := l.Wishes[4].StaggerDelay; got != 4*cfg.WishStagger.Std() {
		t.Errorf("wish 4 delay = %v, want %v", got, 4*cfg.WishStagger.Std())
	}
}

func TestBuildScatterTargetsHaveNoDelay(t *testing.T) {
	rng := NewRand(26)
	l := Builder{Rand: rng}.Build(FullConfig(), testTexts(20), nil, Viewport{Width: 1000, Height: 1000})
	for _, tg := range l.Targets(ModeScatter) {
		if tg.Delay != 0 {
			t.Fatalf("%s scatter delay = %v, want 0", tg.ID, tg.Delay)
		}
	}
}

func TestBuildEmptyTexts(t *testing.T) {
	rng := NewRand(27)
	l := Builder{Rand: rng}.Build(FullConfig(), nil, nil, Viewport{Width: 800, Height: 600})
	if len(l.Wishes) != 1 {
		t.Fatalf("wishes = %d, want 1", len(l.Wishes))
	}
	if w := l.Wishes[0]; !w.IsFocal || w.Text != DefaultFocalText {
		t.Errorf("wish = %+v, want focal %q", w, DefaultFocalText)
	}
	for _, d := range l.Decorations {
		if math.IsNaN(d.FormationPos.X) || math.IsNaN(d.FormationPos.Y) {
			t.Fatalf("decoration %s has NaN position", d.ID)
		}
	}
}

func TestBuildDecorations(t *testing.T) {
	rng := NewRand(28)
	for _, cfg := range []Config{FullConfig(), ConstrainedConfig()} {
		l := Builder{Rand: rng}.Build(cfg, testTexts(45), nil, Viewport{Width: 1280, Height: 720})
		if len(l.Decorations) != cfg.Counts.Decorations {
			t.Errorf("%s: decorations = %d, want %d", cfg.Tier, len(l.Decorations), cfg.Counts.Decorations)
		}
		kinds := map[DecorationKind]bool{}
		for _, d := range l.Decorations {
			kinds[d.Kind] = true
			if d.RotationDeg < 0 || d.RotationDeg >= 360 {
				t.Errorf("%s rotation = %v", d.ID, d.RotationDeg)
			}
			lo, hi := 0.3*cfg.DecorationScale, 1.3*cfg.DecorationScale
			if d.Scale < lo || d.Scale > hi {
				t.Errorf("%s scale = %v, want in [%v, %v]", d.ID, d.Scale, lo, hi)
			}
		}
		if cfg.Tier == TierFull && len(kinds) != 4 {
			t.Errorf("kinds = %v, want all four", kinds)
		}
	}
}

func TestRebuildDecorationContinuity(t *testing.T) {
	rng := NewRand(29)
	cfg := FullConfig()
	cfg.DecorationContinuity = true
	b := Builder{Rand: rng}
	texts := testTexts(10)

	first := b.Build(cfg, texts, nil, Viewport{Width: 1000, Height: 1000})
	second := b.Rebuild(cfg, texts, nil, Viewport{Width: 2000, Height: 1000}, &first)

	for i := range first.Decorations {
		a, c := first.Decorations[i], second.Decorations[i]
		if a.Kind != c.Kind || a.ColorToken != c.ColorToken {
			t.Fatalf("decoration %d changed identity", i)
		}
		if math.Abs(c.ScatterPos.X-2*a.ScatterPos.X) > 1e-9 || c.ScatterPos.Y != a.ScatterPos.Y {
			t.Fatalf("decoration %d scatter %v not rescaled from %v", i, c.ScatterPos, a.ScatterPos)
		}
	}

	cfg.DecorationContinuity = false
	third := b.Rebuild(cfg, texts, nil, Viewport{Width: 2000, Height: 1000}, &second)
	same := 0
	for i := range second.Decorations {
		if second.Decorations[i].FormationPos == third.Decorations[i].FormationPos {
			same++
		}
	}
	if same == len(second.Decorations) {
		t.Error("decorations were not regenerated without continuity")
	}
}

func TestWishScaleByLength(t *testing.T) {
	rng := NewRand(30)
	if got := wishScale("做想做的事", rng); got != 1.1 {
		t.Errorf("long text scale = %v, want 1.1", got)
	}
	for range 100 {
		got := wishScale("自由", rng)
		if got < 0.8 || got > 1.2 {
			t.Fatalf("short text scale = %v, want in [0.8, 1.2]", got)
		}
	}
}
