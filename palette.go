package wishheart

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// FocalColorToken is the accent color of the focal wish.
const FocalColorToken = "#ff4d4d"

// DreamyPalette is the pastel set non-focal wishes draw their color from.
var DreamyPalette = []string{
	"#FFB7B2", // light pink
	"#FFDAC1", // peach
	"#E2F0CB", // pale green
	"#B5EAD7", // mint
	"#C7CEEA", // periwinkle
	"#E0BBE4", // lavender
	"#F4D03F", // soft yellow
	"#89CFF0", // baby blue
	"#F8C8DC", // pastel rose
	"#D7BDE2", // light purple
	"#A9DFBF", // pale teal
	"#FFFFFF", // white
	"#FFD700", // gold
}

// DecorationPalette is the set decorations draw their color from.
var DecorationPalette = []string{
	"#FFFFFF",
	"#FFD700",
	"#E0E0E0",
	"#FFFACD",
	"#E6E6FA",
	"#B5EAD7",
	"#FFB7B2",
}

// StarPalette colors the background starfield.
var StarPalette = []string{
	"#FF00FF", // magenta
	"#00FFFF", // cyan
	"#FFFFFF",
	"#9933FF", // purple
}

// ParseColor converts a "#rrggbb" token into an opaque Color.
func ParseColor(token string) (Color, error) {
	c, err := colorful.Hex(token)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", token, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// ColorOf is ParseColor for tokens that come from the built-in palettes or a
// validated Config. Malformed tokens render white.
func ColorOf(token string) Color {
	c, err := ParseColor(token)
	if err != nil {
		return ColorWhite
	}
	return c
}

// Blend mixes a toward b by t in CIE L*a*b* space, which keeps pastel glows
// from going muddy.
func Blend(a, b Color, t float64) Color {
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	m := ca.BlendLab(cb, t).Clamped()
	return Color{R: m.R, G: m.G, B: m.B, A: a.A + (b.A-a.A)*t}
}

// parseColors resolves every token, failing on the first bad one.
func parseColors(tokens []string) ([]Color, error) {
	out := make([]Color, 0, len(tokens))
	for _, t := range tokens {
		c, err := ParseColor(t)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
