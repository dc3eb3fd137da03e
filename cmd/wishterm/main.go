// Command wishterm runs the wishes heart in a terminal.
//
// Space opens the experience and toggles the heart, the mouse drags it
// around, c copies the wishes to the clipboard and q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/wishheart"
	"github.com/phanxgames/wishheart/term"
)

func main() {
	var (
		textsPath = flag.String("texts", "", "file with one wish per line; the first line is the focal text")
		url       = flag.String("url", "", "URL returning a JSON array of wishes")
		seed      = flag.Uint64("seed", 0, "random seed; 0 seeds from the clock")
		tps       = flag.Int("tps", 30, "simulation ticks per second")
	)
	flag.Parse()

	var warn error
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	texts, err := wishheart.SourceFor(*textsPath, *url, func(err error) { warn = err }).Wishes(ctx)
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	scene := wishheart.NewScene(wishheart.SceneOptions{Seed: *seed, TPS: *tps, Texts: texts})
	p := tea.NewProgram(term.New(scene), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "wishterm: %v\n", err)
		os.Exit(1)
	}
	if warn != nil {
		fmt.Fprintf(os.Stderr, "wishterm: used the fallback list: %v\n", warn)
	}
}
