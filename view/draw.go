package view

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/wishheart"
)

// Base sizes in pixels at scale 1.
const (
	wishFontSize  = 19.2
	focalFontSize = 32
	introFontSize = 24
	hintFontSize  = 14
	decoSize      = 16
)

// renderer draws wishheart frames with Ebitengine primitives.
type renderer struct {
	source *text.GoTextFaceSource
	faces  map[int]*text.GoTextFace

	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newRenderer(fontData []byte) (*renderer, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("view: parse font: %w", err)
	}
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &renderer{
		source: src,
		faces:  make(map[int]*text.GoTextFace),
		white:  img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}, nil
}

// face returns a cached face for the rounded size.
func (r *renderer) face(size float64) *text.GoTextFace {
	key := faceKey(size)
	f, ok := r.faces[key]
	if !ok {
		f = &text.GoTextFace{Source: r.source, Size: float64(key)}
		r.faces[key] = f
	}
	return f
}

func faceKey(size float64) int {
	return max(int(math.Round(size)), 1)
}

func (r *renderer) drawFrame(screen *ebiten.Image, f wishheart.Frame, hint float64) {
	screen.Fill(wishheart.ToNRGBA(wishheart.Background))

	for _, st := range f.Stars {
		vector.DrawFilledCircle(screen, float32(st.X), float32(st.Y),
			float32(math.Max(st.Size/2, 0.5)), wishheart.ToNRGBA(st.Color), true)
	}

	if f.Glow > 0 {
		glow := wishheart.ColorOf(wishheart.FocalColorToken)
		for i := 3; i >= 1; i-- {
			vector.DrawFilledCircle(screen, float32(f.GlowX), float32(f.GlowY), float32(i*40),
				wishheart.ToNRGBA(glow.WithAlpha(f.Glow*0.15)), true)
		}
	}

	for i := range f.Sprites {
		sp := &f.Sprites[i]
		if sp.Kind == wishheart.SpriteDecoration {
			r.drawDecoration(screen, sp)
			continue
		}
		size := wishFontSize
		if sp.Focal {
			size = focalFontSize
		}
		r.drawText(screen, sp.Text, size*sp.Scale, sp.X, sp.Y, sp.Color)
	}

	if hint > 0 {
		r.drawText(screen, wishheart.HintText, hintFontSize, f.Viewport.Width/2, f.Viewport.Height-32,
			wishheart.ColorWhite.WithAlpha(0.6*hint))
	}

	if f.Intro > 0 {
		vector.DrawFilledRect(screen, 0, 0, float32(f.Viewport.Width), float32(f.Viewport.Height),
			wishheart.ToNRGBA(wishheart.Color{A: 0.8 * f.Intro}), false)
		r.drawText(screen, wishheart.IntroText, introFontSize, f.Viewport.Width/2, f.Viewport.Height/2,
			wishheart.Color{R: 1, G: 0.9, B: 0.95, A: f.Intro})
	}
}

func (r *renderer) drawText(screen *ebiten.Image, s string, size, x, y float64, c wishheart.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(wishheart.ToNRGBA(c))
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, r.face(size), op)
}

func (r *renderer) drawDecoration(screen *ebiten.Image, sp *wishheart.Sprite) {
	rad := decoSize * sp.Scale / 2
	if rad <= 0 {
		return
	}
	c := sp.Color
	switch sp.Decoration {
	case wishheart.KindStar:
		pts := make([][2]float64, 0, 8)
		for i := 0; i < 8; i++ {
			rr := rad
			if i%2 == 1 {
				rr = rad * 0.4
			}
			a := float64(i)*math.Pi/4 - math.Pi/2 + sp.RotationDeg*math.Pi/180
			pts = append(pts, [2]float64{sp.X + rr*math.Cos(a), sp.Y + rr*math.Sin(a)})
		}
		r.fillFan(screen, sp.X, sp.Y, pts, c)
	case wishheart.KindSparkle:
		a := sp.RotationDeg * math.Pi / 180
		dx, dy := rad*math.Cos(a), rad*math.Sin(a)
		w := float32(math.Max(1, rad/5))
		col := wishheart.ToNRGBA(c)
		vector.StrokeLine(screen, float32(sp.X-dx), float32(sp.Y-dy), float32(sp.X+dx), float32(sp.Y+dy), w, col, true)
		vector.StrokeLine(screen, float32(sp.X+dy), float32(sp.Y-dx), float32(sp.X-dy), float32(sp.Y+dx), w, col, true)
	case wishheart.KindPearl:
		vector.DrawFilledCircle(screen, float32(sp.X), float32(sp.Y), float32(rad*1.6),
			wishheart.ToNRGBA(wishheart.ColorWhite.WithAlpha(0.25)), true)
		vector.DrawFilledCircle(screen, float32(sp.X), float32(sp.Y), float32(rad),
			wishheart.ToNRGBA(wishheart.ColorWhite), true)
	case wishheart.KindDiamond:
		s := rad * 0.8
		a := sp.RotationDeg * math.Pi / 180
		pts := make([][2]float64, 0, 4)
		for i := 0; i < 4; i++ {
			t := a + float64(i)*math.Pi/2 - math.Pi/2
			pts = append(pts, [2]float64{sp.X + s*math.Cos(t), sp.Y + s*math.Sin(t)})
		}
		r.fillFan(screen, sp.X, sp.Y, pts, wishheart.ColorOf(wishheart.DiamondColorToken))
	}
}

// fillFan fills the polygon pts, which must be star-shaped around (cx, cy),
// as a triangle fan from the center.
func (r *renderer) fillFan(screen *ebiten.Image, cx, cy float64, pts [][2]float64, c wishheart.Color) {
	cr, cg, cb, ca := float32(c.R), float32(c.G), float32(c.B), float32(c.A)
	vertex := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	r.vertices = append(r.vertices[:0], vertex(cx, cy))
	r.indices = r.indices[:0]
	for i, p := range pts {
		r.vertices = append(r.vertices, vertex(p[0], p[1]))
		next := (i+1)%len(pts) + 1
		r.indices = append(r.indices, 0, uint16(i+1), uint16(next))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	op.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
	screen.DrawTriangles(r.vertices, r.indices, r.white, op)
}
