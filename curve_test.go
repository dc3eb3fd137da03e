package wishheart

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestHeartPointFocalIsOrigin(t *testing.T) {
	rng := NewRand(1)
	for _, total := range []int{1, 2, 45, 1000} {
		if p := HeartPoint(0, total, 100, rng); p != (r3.Vector{}) {
			t.Errorf("HeartPoint(0, %d) = %v, want origin", total, p)
		}
	}
}

func TestHeartPointSingleItemGuard(t *testing.T) {
	rng := NewRand(1)
	p := HeartPoint(1, 1, 100, rng)
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
		t.Fatalf("HeartPoint(1, 1) = %v, want finite", p)
	}
	if p != (r3.Vector{}) {
		t.Errorf("HeartPoint(1, 1) = %v, want origin", p)
	}
}

func TestHeartPointBounds(t *testing.T) {
	rng := NewRand(7)
	const r = 200.0
	for _, total := range []int{2, 3, 10, 45, 301} {
		for i := 1; i < total; i++ {
			p := HeartPoint(i, total, r, rng)
			if math.Abs(p.X) > r+1e-9 {
				t.Errorf("total %d index %d: |x| = %v > %v", total, i, math.Abs(p.X), r)
			}
			// The curve's bottom tip reaches 17/16 of the radius.
			if math.Abs(p.Y) > r*17/16+1e-9 {
				t.Errorf("total %d index %d: |y| = %v > %v", total, i, math.Abs(p.Y), r*17/16)
			}
			if math.Abs(p.Z) > r/2 {
				t.Errorf("total %d index %d: |z| = %v > %v", total, i, math.Abs(p.Z), r/2)
			}
		}
	}
}

func TestShellScaleBoundaries(t *testing.T) {
	tests := []struct {
		progress float64
		want     float64
	}{
		{0, 1.0},
		{0.25, 1.0},
		{0.4999, 1.0},
		{0.5, 0.7},
		{0.7999, 0.7},
		{0.8, 0.4},
		{0.99, 0.4},
		{1.0, 0.4},
	}
	for _, tt := range tests {
		if got := ShellScale(tt.progress); got != tt.want {
			t.Errorf("ShellScale(%v) = %v, want %v", tt.progress, got, tt.want)
		}
	}
}

func TestShellScalesAcrossRange(t *testing.T) {
	const total = 101
	seen := map[float64]bool{}
	prev := math.Inf(1)
	for i := 1; i < total; i++ {
		progress := float64(i-1) / float64(total-1)
		s := ShellScale(progress)
		seen[s] = true
		// Shells are contiguous: the scale never increases again.
		if s > prev {
			t.Fatalf("scale rose from %v to %v at progress %v", prev, s, progress)
		}
		prev = s
	}
	if len(seen) != 3 || !seen[1.0] || !seen[0.7] || !seen[0.4] {
		t.Errorf("shell scales = %v, want exactly {1.0, 0.7, 0.4}", seen)
	}
}

func TestHeartPointShellStart(t *testing.T) {
	// The first slot of every shell sits at t = 0, the top notch of the
	// heart: (0, -5) in curve units.
	rng := NewRand(3)
	const total, r = 11, 160.0
	p := HeartPoint(1, total, r, rng)
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y-(-5*r/16)) > 1e-9 {
		t.Errorf("first outer slot = (%v, %v), want (0, %v)", p.X, p.Y, -5*r/16)
	}
	// Index 6 has progress 0.5: the middle shell at scale 0.7.
	p = HeartPoint(6, total, r, rng)
	if math.Abs(p.Y-(-5*0.7*r/16)) > 1e-9 {
		t.Errorf("first middle slot y = %v, want %v", p.Y, -5*0.7*r/16)
	}
}

func TestHeartPointDeterministic(t *testing.T) {
	a := HeartPoint(5, 20, 100, NewRand(99))
	b := HeartPoint(5, 20, 100, NewRand(99))
	if a != b {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}
