// Command wishsnap runs a scene without a window and writes screenshots.
//
// It replays a JSON script against a headless scene, so the layout can be
// checked from CI:
//
//	wishsnap -script tour.json -out shots -seed 7
//
// With -schema it writes JSON Schemas for the script and presets formats
// into the given directory and exits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phanxgames/wishheart"
)

func main() {
	var (
		scriptPath  = flag.String("script", "", "path to a JSON script")
		outDir      = flag.String("out", "screenshots", "screenshot directory")
		seed        = flag.Uint64("seed", 1, "random seed")
		width       = flag.Float64("width", 1280, "viewport width in pixels")
		height      = flag.Float64("height", 720, "viewport height in pixels")
		fontPath    = flag.String("font", "", "TrueType font with CJK glyphs")
		presetsPath = flag.String("presets", "", "JSON file overriding the tier presets")
		maxFrames   = flag.Int("max-frames", 60*60, "stop after this many frames")
		schemaDir   = flag.String("schema", "", "write JSON Schemas to this directory and exit")
		debug       = flag.Bool("debug", false, "log phase changes and rebuilds to stderr")
	)
	flag.Parse()

	if *schemaDir != "" {
		if err := writeSchemas(*schemaDir); err != nil {
			log.Fatalf("wishsnap: %v", err)
		}
		return
	}
	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "-script is required")
		os.Exit(2)
	}

	opts := wishheart.SceneOptions{Seed: *seed, ScreenshotDir: *outDir}
	if *fontPath != "" {
		data, err := os.ReadFile(*fontPath)
		if err != nil {
			log.Fatalf("wishsnap: %v", err)
		}
		opts.FontData = data
	}
	if *presetsPath != "" {
		data, err := os.ReadFile(*presetsPath)
		if err != nil {
			log.Fatalf("wishsnap: %v", err)
		}
		p, err := wishheart.LoadPresets(data)
		if err != nil {
			log.Fatalf("wishsnap: %v", err)
		}
		opts.Presets = &p
	}

	data, err := os.ReadFile(*scriptPath)
	if err != nil {
		log.Fatalf("wishsnap: %v", err)
	}
	runner, err := wishheart.LoadScript(data)
	if err != nil {
		log.Fatalf("wishsnap: %v", err)
	}

	scene := wishheart.NewScene(opts)
	scene.SetDebugMode(*debug)
	scene.Resize(*width, *height)
	scene.SetScriptRunner(runner)
	defer scene.Close()

	frames, err := play(scene, runner, *maxFrames)
	if err != nil {
		log.Fatalf("wishsnap: %v", err)
	}
	log.Printf("wishsnap: %d frames, phase %s", frames, scene.Formation().Phase())
}

// play updates scene until runner finishes. It fails if maxFrames pass
// first.
func play(scene *wishheart.Scene, runner *wishheart.ScriptRunner, maxFrames int) (int, error) {
	for n := 0; n < maxFrames; n++ {
		if runner.Done() {
			return n, nil
		}
		scene.Update()
	}
	if runner.Done() {
		return maxFrames, nil
	}
	return maxFrames, fmt.Errorf("script still running after %d frames", maxFrames)
}
