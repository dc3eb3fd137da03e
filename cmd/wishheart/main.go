// Command wishheart opens a window with the wishes heart.
//
// Tap or click to open the experience; the wishes drift in the void and
// gather into a heart. Drag to turn the heart, tap to scatter it again.
//
//	wishheart -texts wishes.txt -font NotoSansSC.otf -sound
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/phanxgames/wishheart"
	"github.com/phanxgames/wishheart/chime"
	"github.com/phanxgames/wishheart/view"
)

const (
	windowTitle = "Wishes"
	screenW     = 1280
	screenH     = 720
)

func main() {
	var (
		textsPath   = flag.String("texts", "", "file with one wish per line; the first line is the focal text")
		url         = flag.String("url", "", "URL returning a JSON array of wishes")
		seed        = flag.Uint64("seed", 0, "random seed; 0 seeds from the clock")
		debug       = flag.Bool("debug", false, "log phase changes and rebuilds to stderr")
		sound       = flag.Bool("sound", false, "play a chime when the heart gathers")
		volume      = flag.Float64("volume", chime.DefaultConfig().Volume, "chime volume in [0, 1]")
		showFPS     = flag.Bool("fps", false, "show the FPS counter")
		presetsPath = flag.String("presets", "", "JSON file overriding the tier presets")
		fontPath    = flag.String("font", "", "TrueType/OpenType font with CJK glyphs")
		shots       = flag.String("screenshots", "screenshots", "directory for S-key screenshots")
	)
	flag.Parse()

	opts := wishheart.SceneOptions{Seed: *seed, ScreenshotDir: *shots}

	if *presetsPath != "" {
		data, err := os.ReadFile(*presetsPath)
		if err != nil {
			log.Fatal(err)
		}
		p, err := wishheart.LoadPresets(data)
		if err != nil {
			log.Fatal(err)
		}
		opts.Presets = &p
	}

	var fontData []byte
	if *fontPath != "" {
		data, err := os.ReadFile(*fontPath)
		if err != nil {
			log.Fatal(err)
		}
		fontData = data
		opts.FontData = data
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	src := wishheart.SourceFor(*textsPath, *url, func(err error) {
		log.Printf("wishes: %v; using the fallback list", err)
	})
	texts, err := src.Wishes(ctx)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	opts.Texts = texts

	scene := wishheart.NewScene(opts)
	scene.SetDebugMode(*debug)

	if *sound {
		cfg := chime.DefaultConfig()
		cfg.Volume = *volume
		player, err := chime.NewSpeaker(cfg.SampleRate)
		if err != nil {
			log.Printf("sound disabled: %v", err)
		} else {
			chime.New(player, cfg).Attach(scene.Formation())
		}
	}

	if err := view.Run(scene, view.RunConfig{
		Title:    windowTitle,
		Width:    screenW,
		Height:   screenH,
		ShowFPS:  *showFPS,
		FontData: fontData,
	}); err != nil {
		log.Fatal(err)
	}
}
