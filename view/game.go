// Package view runs a wishheart scene in an Ebitengine window.
//
// The simplest way to get started is [Run]:
//
//	scene := wishheart.NewScene(wishheart.SceneOptions{})
//	view.Run(scene, view.RunConfig{Title: "Wishes", Width: 1280, Height: 720})
//
// For full control, build a [Game] with [NewGame] and hand it to
// ebiten.RunGame yourself.
package view

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/wishheart"
)

// RunConfig configures Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// FontData is a TrueType or OpenType font. Nil means Go Regular, which
	// has no CJK glyphs; pass a CJK font for the default wishes.
	FontData []byte
}

// Game is an ebiten.Game that drives a wishheart.Scene.
//
// Keys: Space toggles, R restarts, F shows FPS, S takes a screenshot,
// Escape quits.
type Game struct {
	ShowFPS bool

	scene    *wishheart.Scene
	input    inputState
	renderer *renderer
	fps      *fpsWidget
	hint     *wishheart.Fade
	width    int
	height   int
}

// NewGame wraps scene. A nil fontData uses Go Regular.
func NewGame(scene *wishheart.Scene, fontData []byte) (*Game, error) {
	if fontData == nil {
		fontData = goregular.TTF
	}
	r, err := newRenderer(fontData)
	if err != nil {
		return nil, err
	}
	return &Game{scene: scene, renderer: r, fps: newFPSWidget()}, nil
}

// Scene returns the driven scene.
func (g *Game) Scene() *wishheart.Scene {
	return g.scene
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.input.tracker.reset()
		g.scene.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.scene.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.ShowFPS = !g.ShowFPS
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.scene.Screenshot("manual")
	}

	g.input.poll(g.width, g.height, g.scene)
	g.scene.Update()

	dt := 1.0 / float64(g.scene.TPS())
	g.updateHint(dt)
	if g.ShowFPS {
		g.fps.update(dt)
	}
	return nil
}

// updateHint fades the hint line in while the heart is gathered.
func (g *Game) updateHint(dt float64) {
	if g.scene.Formation().Phase() != wishheart.PhaseGathered {
		g.hint = nil
		return
	}
	if g.hint == nil {
		g.hint = wishheart.NewFade(0, 1, 1.2, nil)
	}
	g.hint.Update(float32(dt))
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	var hint float64
	if g.hint != nil {
		hint = g.hint.Value()
	}
	g.renderer.drawFrame(screen, g.scene.Frame(), hint)
	if g.ShowFPS {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The scene is resized to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.scene.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and runs scene until it is closed.
func Run(scene *wishheart.Scene, cfg RunConfig) error {
	g, err := NewGame(scene, cfg.FontData)
	if err != nil {
		return err
	}
	g.ShowFPS = cfg.ShowFPS

	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(scene.TPS())

	defer scene.Close()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
