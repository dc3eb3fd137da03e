package wishheart

import "testing"

func TestSlotPermutationFixesFocal(t *testing.T) {
	rng := NewRand(11)
	for n := 0; n < 60; n++ {
		p := NewSlotPermutation(n, rng)
		if len(p) != n {
			t.Fatalf("len = %d, want %d", len(p), n)
		}
		if n > 0 && p[0] != 0 {
			t.Errorf("n=%d: p[0] = %d, want 0", n, p[0])
		}
		if !p.Valid() {
			t.Errorf("n=%d: %v is not a bijection fixing 0", n, p)
		}
	}
}

func TestSlotPermutationShuffles(t *testing.T) {
	rng := NewRand(12)
	p := NewSlotPermutation(45, rng)
	moved := 0
	for i, v := range p {
		if i != v {
			moved++
		}
	}
	if moved == 0 {
		t.Error("permutation of 45 slots left every slot in place")
	}
}

func TestSlotFallback(t *testing.T) {
	p := SlotPermutation{0, 2, 1}
	if got := p.Slot(1); got != 2 {
		t.Errorf("Slot(1) = %d, want 2", got)
	}
	if got := p.Slot(7); got != 7 {
		t.Errorf("Slot(7) = %d, want 7 (identity on miss)", got)
	}
	var empty SlotPermutation
	if got := empty.Slot(3); got != 3 {
		t.Errorf("empty.Slot(3) = %d, want 3", got)
	}
}

func TestSlotPermutationValid(t *testing.T) {
	tests := []struct {
		p    SlotPermutation
		want bool
	}{
		{SlotPermutation{}, true},
		{SlotPermutation{0}, true},
		{SlotPermutation{0, 2, 1}, true},
		{SlotPermutation{1, 0}, false},
		{SlotPermutation{0, 1, 1}, false},
		{SlotPermutation{0, 3, 1}, false},
	}
	for _, tt := range tests {
		if got := tt.p.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestShuffleTextsKeepsFocal(t *testing.T) {
	rng := NewRand(13)
	in := []string{"focal", "a", "b", "c", "d", "e"}
	out := ShuffleTexts(in, rng)
	if out[0] != "focal" {
		t.Errorf("out[0] = %q, want %q", out[0], "focal")
	}
	if in[1] != "a" || in[5] != "e" {
		t.Error("ShuffleTexts modified its input")
	}
	count := map[string]int{}
	for _, s := range out {
		count[s]++
	}
	for _, s := range in {
		if count[s] != 1 {
			t.Errorf("%q appears %d times, want 1", s, count[s])
		}
	}
}
