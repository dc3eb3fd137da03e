package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsWidget displays the current FPS and TPS in the top-left corner. The
// text is redrawn every ~0.5 seconds.
type fpsWidget struct {
	img     *ebiten.Image
	elapsed float64
	stats   string
}

func newFPSWidget() *fpsWidget {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsWidget{img: ebiten.NewImage(100, 32), elapsed: 0.5}
}

func (w *fpsWidget) update(dt float64) {
	w.elapsed += dt
	if w.elapsed < 0.5 {
		return
	}
	w.elapsed = 0
	w.stats = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())

	w.img.Clear()
	// Semi-transparent background for readability
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, w.stats)
}

func (w *fpsWidget) draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(8, 8)
	screen.DrawImage(w.img, op)
}
