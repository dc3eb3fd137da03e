package wishheart

import (
	"fmt"
	"os"
	"time"
)

// debugLogRebuild prints a one-line summary of a build pass to stderr.
func debugLogRebuild(l *Layout, reason RebuildReason, took time.Duration) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[wishheart] rebuild #%d (%s): %d wishes | %d decorations | radius %.1f | %s | %.0fx%.0f | %v\n",
		l.Generation, reason, len(l.Wishes), len(l.Decorations), l.Radius, l.Tier,
		l.Viewport.Width, l.Viewport.Height, took)
}

// debugLogPhase prints a phase transition to stderr.
func debugLogPhase(ev ModeChangedEvent) {
	_, _ = fmt.Fprintf(os.Stderr, "[wishheart] phase: %s -> %s\n", ev.From, ev.To)
}

// debugFrameStats holds per-frame timing, only populated in debug mode.
type debugFrameStats struct {
	formationTime time.Duration
	animateTime   time.Duration
	starsTime     time.Duration
	bodies        int
	stars         int
}

// debugMaxFrameTime is the update budget above which a frame is reported.
const debugMaxFrameTime = 4 * time.Millisecond

// debugLogFrame reports frames whose update work exceeded the budget.
func debugLogFrame(stats debugFrameStats) {
	total := stats.formationTime + stats.animateTime + stats.starsTime
	if total < debugMaxFrameTime {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[wishheart] slow update: formation %v | animate %v (%d bodies) | stars %v (%d) | total %v\n",
		stats.formationTime, stats.animateTime, stats.bodies, stats.starsTime, stats.stars, total)
}

// debugCheckPermutation warns when a permutation does not cover the texts.
func debugCheckPermutation(p SlotPermutation, n int) {
	if len(p) != n || !p.Valid() {
		_, _ = fmt.Fprintf(os.Stderr, "[wishheart] warning: permutation of %d slots for %d texts (valid=%v)\n",
			len(p), n, p.Valid())
	}
}
