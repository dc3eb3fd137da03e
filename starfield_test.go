package wishheart

import (
	"math"
	"testing"
)

func testStarfieldConfig() StarfieldConfig {
	return StarfieldConfig{
		Count:  200,
		Extent: 1000,
		Speed:  120,
		Size:   4,
		Colors: []Color{ColorWhite},
		FOV:    75,
		Fog:    0.001,
	}
}

func TestStarfieldFor(t *testing.T) {
	full := StarfieldFor(FullConfig())
	if full.Count != 2000 || full.Extent != 1000 {
		t.Errorf("full starfield = %d stars in ±%v, want 2000 in ±1000", full.Count, full.Extent)
	}
	if len(full.Colors) != len(StarPalette) {
		t.Errorf("colors = %d, want %d", len(full.Colors), len(StarPalette))
	}
	if got := StarfieldFor(ConstrainedConfig()).Count; got != 1000 {
		t.Errorf("constrained stars = %d, want 1000", got)
	}
}

func TestStarfieldFillsCube(t *testing.T) {
	f := NewStarfield(testStarfieldConfig(), NewRand(5))
	if f.Len() != 200 {
		t.Fatalf("Len = %d, want 200", f.Len())
	}
	for i, s := range f.stars {
		if math.Abs(s.pos.X) > 1000 || math.Abs(s.pos.Y) > 1000 || math.Abs(s.pos.Z) > 1000 {
			t.Errorf("star %d at %v outside the cube", i, s.pos)
		}
	}
}

func TestStarfieldWraps(t *testing.T) {
	f := NewStarfield(testStarfieldConfig(), NewRand(5))
	xs := make([]float64, f.Len())
	for i, s := range f.stars {
		xs[i] = s.pos.X
	}
	for i := 0; i < 600; i++ {
		f.Update(1.0 / 60)
	}
	for i, s := range f.stars {
		if s.pos.Z > 1000 || s.pos.Z < -1000 {
			t.Errorf("star %d z = %v after wrap", i, s.pos.Z)
		}
		if s.pos.X != xs[i] {
			t.Errorf("star %d moved sideways", i)
		}
	}
}

func TestStarfieldProject(t *testing.T) {
	f := NewStarfield(testStarfieldConfig(), NewRand(9))
	vp := Viewport{Width: 800, Height: 600}
	sprites := f.Project(vp, nil)
	if len(sprites) == 0 {
		t.Fatal("no stars visible")
	}
	for _, s := range sprites {
		if s.X < 0 || s.Y < 0 || s.X > 800 || s.Y > 600 {
			t.Errorf("sprite %+v outside the viewport", s)
		}
		if s.Size <= 0 || s.Color.A <= 0 || s.Color.A > 1 {
			t.Errorf("sprite %+v has bad size or alpha", s)
		}
	}
	if got := f.Project(Viewport{}, nil); len(got) != 0 {
		t.Errorf("empty viewport projected %d stars", len(got))
	}
}

func TestStarfieldNoTwinkle(t *testing.T) {
	cfg := testStarfieldConfig()
	cfg.Fog = 0
	cfg.Twinkle = 0
	f := NewStarfield(cfg, NewRand(2))
	for _, s := range f.Project(Viewport{Width: 800, Height: 600}, nil) {
		if s.Color.A != 1 {
			t.Fatalf("alpha = %v without fog or twinkle, want 1", s.Color.A)
		}
	}
}
