package wishheart

// SlotPermutation maps a wish index to the heart slot it occupies while
// gathered. Index 0 always maps to slot 0; the rest form a bijection on
// [1, N).
type SlotPermutation []int

// NewSlotPermutation returns a fresh random permutation of n slots with slot 0
// fixed in place.
func NewSlotPermutation(n int, rng Rand) SlotPermutation {
	p := IdentityPermutation(n)
	for i := n - 1; i > 1; i-- {
		j := 1 + rng.IntN(i)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// IdentityPermutation returns the permutation that maps every index to itself.
func IdentityPermutation(n int) SlotPermutation {
	if n < 0 {
		n = 0
	}
	p := make(SlotPermutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Slot returns the slot for index i. Indices without a mapping fall back to
// themselves.
func (p SlotPermutation) Slot(i int) int {
	if i < 0 || i >= len(p) {
		return i
	}
	return p[i]
}

// Valid reports whether p fixes 0 and is a bijection on [0, len(p)).
func (p SlotPermutation) Valid() bool {
	if len(p) > 0 && p[0] != 0 {
		return false
	}
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// ShuffleTexts returns a copy of texts with element 0 kept in place and the
// remainder shuffled.
func ShuffleTexts(texts []string, rng Rand) []string {
	out := make([]string, len(texts))
	copy(out, texts)
	if len(out) < 3 {
		return out
	}
	rest := out[1:]
	for i := len(rest) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		rest[i], rest[j] = rest[j], rest[i]
	}
	return out
}
