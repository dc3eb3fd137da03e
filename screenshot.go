package wishheart

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Base sizes in pixels at scale 1.
const (
	wishFontSize  = 19.2 // 1.2rem
	focalFontSize = 32   // 2rem, already includes the focal emphasis
	decoSize      = 16
)

// Background is the clear color of rendered frames.
var Background = Color{R: 0, G: 0, B: 0, A: 1}

// Screenshot queues a labeled screenshot to be rendered at the end of the
// current Update. The resulting PNG is written to ScreenshotDir with a
// timestamped filename.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots renders the current frame once for every queued label and
// writes each as a PNG file. Called at the end of Scene.Update.
func (s *Scene) flushScreenshots() {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	frame := s.Frame()
	if frame.Viewport.Empty() {
		_, _ = fmt.Fprintf(os.Stderr, "[wishheart] screenshot: empty viewport, call Resize first\n")
		return
	}
	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[wishheart] screenshot: mkdir %s: %v\n", s.ScreenshotDir, err)
		return
	}

	img, err := RenderFrame(frame, &s.faces, s.fontData)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[wishheart] screenshot: %v\n", err)
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		path := fmt.Sprintf("%s/%s_%s.png", s.ScreenshotDir, stamp, sanitizeLabel(label))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[wishheart] screenshot: %v\n", err)
		}
	}
}

// FaceCache holds one font face per rounded size for headless rendering.
// The zero value is ready to use.
type FaceCache struct {
	font  *truetype.Font
	faces map[int]font.Face
}

func (c *FaceCache) face(fontData []byte, size float64) (font.Face, error) {
	if c.font == nil {
		if fontData == nil {
			fontData = goregular.TTF
		}
		f, err := truetype.Parse(fontData)
		if err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		c.font = f
		c.faces = make(map[int]font.Face)
	}
	key := max(int(math.Round(size)), 1)
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	face := truetype.NewFace(c.font, &truetype.Options{Size: float64(key), DPI: 72, Hinting: font.HintingFull})
	c.faces[key] = face
	return face, nil
}

// RenderFrame draws f headlessly. faces may be shared between calls; a nil
// fontData uses Go Regular.
func RenderFrame(f Frame, faces *FaceCache, fontData []byte) (image.Image, error) {
	if f.Viewport.Empty() {
		return nil, fmt.Errorf("render frame: empty viewport")
	}
	if faces == nil {
		faces = &FaceCache{}
	}
	w, h := int(f.Viewport.Width), int(f.Viewport.Height)
	dc := gg.NewContext(w, h)
	setColor(dc, Background)
	dc.Clear()

	for _, st := range f.Stars {
		setColor(dc, st.Color)
		dc.DrawCircle(st.X, st.Y, math.Max(st.Size/2, 0.5))
		dc.Fill()
	}

	if f.Glow > 0 {
		glow := ColorOf(FocalColorToken)
		for i := 3; i >= 1; i-- {
			setColor(dc, glow.WithAlpha(f.Glow*0.15))
			dc.DrawCircle(f.GlowX, f.GlowY, float64(i)*40)
			dc.Fill()
		}
	}

	for i := range f.Sprites {
		sp := &f.Sprites[i]
		if sp.Kind == SpriteDecoration {
			drawDecoration(dc, sp)
			continue
		}
		size := wishFontSize
		if sp.Focal {
			size = focalFontSize
		}
		face, err := faces.face(fontData, size*sp.Scale)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		setColor(dc, sp.Color)
		dc.DrawStringAnchored(sp.Text, sp.X, sp.Y, 0.5, 0.5)
	}

	if f.Intro > 0 {
		setColor(dc, Color{A: 0.8 * f.Intro})
		dc.DrawRectangle(0, 0, f.Viewport.Width, f.Viewport.Height)
		dc.Fill()
		face, err := faces.face(fontData, 24)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		setColor(dc, Color{R: 1, G: 0.9, B: 0.95, A: f.Intro})
		dc.DrawStringAnchored(IntroText, f.Viewport.Width/2, f.Viewport.Height/2, 0.5, 0.5)
	}
	return dc.Image(), nil
}

// IntroText is shown over the idle scene.
const IntroText = "TAP TO OPEN"

// HintText is shown once the heart has gathered.
const HintText = "drag to rotate · tap to scatter"

func drawDecoration(dc *gg.Context, sp *Sprite) {
	r := decoSize * sp.Scale / 2
	if r <= 0 {
		return
	}
	dc.Push()
	defer dc.Pop()
	dc.RotateAbout(gg.Radians(sp.RotationDeg), sp.X, sp.Y)

	switch sp.Decoration {
	case KindStar:
		setColor(dc, sp.Color)
		for i := 0; i < 8; i++ {
			rr := r
			if i%2 == 1 {
				rr = r * 0.4
			}
			a := float64(i)*math.Pi/4 - math.Pi/2
			dc.LineTo(sp.X+rr*math.Cos(a), sp.Y+rr*math.Sin(a))
		}
		dc.ClosePath()
		dc.Fill()
	case KindSparkle:
		setColor(dc, sp.Color)
		dc.SetLineWidth(math.Max(1, r/5))
		dc.DrawLine(sp.X-r, sp.Y, sp.X+r, sp.Y)
		dc.DrawLine(sp.X, sp.Y-r, sp.X, sp.Y+r)
		dc.Stroke()
	case KindPearl:
		setColor(dc, ColorWhite.WithAlpha(0.25))
		dc.DrawCircle(sp.X, sp.Y, r*1.6)
		dc.Fill()
		setColor(dc, ColorWhite)
		dc.DrawCircle(sp.X, sp.Y, r)
		dc.Fill()
	case KindDiamond:
		setColor(dc, ColorOf(DiamondColorToken))
		s := r * 0.8
		dc.MoveTo(sp.X, sp.Y-s)
		dc.LineTo(sp.X+s, sp.Y)
		dc.LineTo(sp.X, sp.Y+s)
		dc.LineTo(sp.X-s, sp.Y)
		dc.ClosePath()
		dc.Fill()
	}
}

// DiamondColorToken is the fill of diamond decorations regardless of their
// palette color.
const DiamondColorToken = "#F0FFFF"

func setColor(dc *gg.Context, c Color) {
	dc.SetColor(ToNRGBA(c))
}

// ToNRGBA converts c to a straight-alpha 8-bit color.
func ToNRGBA(c Color) color.NRGBA {
	return color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
}

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
