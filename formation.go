package wishheart

import (
	"math"
	"time"
)

// rotationEpsilon is the smallest angle change, in degrees, reported as a
// RotationUpdated event.
const rotationEpsilon = 1e-4

// Formation is the state machine that owns the formation phase, the slot
// permutation and the current layout. It is single-threaded: every method
// must be called from the goroutine that drives Update.
type Formation struct {
	presets Presets
	rng     Rand
	builder Builder
	orbit   *Orbit
	timers  Timers
	events  handlerRegistry

	phase    Phase
	texts    []string
	perm     SlotPermutation
	viewport Viewport
	layout   Layout
	built    bool

	gatherTimer TimerHandle
	resizeTimer TimerHandle

	generation  int
	decorations int
	closed      bool
	debug       bool
	lastAngles  Angles
}

// NewFormation returns an idle state machine. orbit is reset when the heart
// gathers; rng drives every random choice.
func NewFormation(presets Presets, orbit *Orbit, rng Rand) *Formation {
	return &Formation{
		presets: presets,
		rng:     rng,
		builder: Builder{Rand: rng},
		orbit:   orbit,
	}
}

// Phase returns the current phase.
func (f *Formation) Phase() Phase {
	return f.phase
}

// Mode returns the active position set.
func (f *Formation) Mode() Mode {
	return f.phase.Mode()
}

// Layout returns the current layout, or nil before the first build.
func (f *Formation) Layout() *Layout {
	if !f.built {
		return nil
	}
	return &f.layout
}

// Texts returns the ordered texts of the running experience.
func (f *Formation) Texts() []string {
	return f.texts
}

// Permutation returns the slot permutation in effect.
func (f *Formation) Permutation() SlotPermutation {
	return f.perm
}

// Viewport returns the last viewport passed to Resize.
func (f *Formation) Viewport() Viewport {
	return f.viewport
}

// Config returns the preset that applies to the current viewport. While an
// experience runs, the decoration count stays at the value captured by Start
// even if a resize crosses the tier breakpoint.
func (f *Formation) Config() Config {
	cfg := f.presets.For(f.viewport)
	if f.phase != PhaseIdle {
		cfg.Counts.Decorations = f.decorations
	}
	return cfg
}

// Timers exposes the scheduler so callers can inspect pending work.
func (f *Formation) Timers() *Timers {
	return &f.timers
}

// OnModeChanged registers a callback for phase transitions. It fires before
// the rebuild that follows the transition, so Layout still returns the
// previous layout; use OnLayoutRebuilt to observe the new one.
func (f *Formation) OnModeChanged(fn func(ModeChangedEvent)) CallbackHandle {
	return f.events.onModeChanged(fn)
}

// OnLayoutRebuilt registers a callback for layout rebuilds.
func (f *Formation) OnLayoutRebuilt(fn func(LayoutRebuiltEvent)) CallbackHandle {
	return f.events.onLayoutRebuilt(fn)
}

// OnRotationUpdated registers a callback for smoothed rotation changes.
func (f *Formation) OnRotationUpdated(fn func(RotationUpdatedEvent)) CallbackHandle {
	return f.events.onRotationUpdated(fn)
}

// SetEventSink sets the optional external event consumer.
func (f *Formation) SetEventSink(sink EventSink) {
	f.events.sink = sink
}

// SetDebugMode enables [wishheart] diagnostics on stderr.
func (f *Formation) SetDebugMode(enabled bool) {
	f.debug = enabled
}

// Start begins a new experience with texts. Element 0 stays in the focal slot
// and the rest are shuffled. The formation scatters at once and gathers after
// the configured delay. Calling Start again restarts the experience and
// cancels anything still pending from the previous one.
func (f *Formation) Start(texts []string) {
	if f.closed {
		return
	}
	if len(texts) == 0 {
		texts = []string{DefaultFocalText}
	}
	f.cancelPending()
	f.decorations = f.presets.For(f.viewport).Counts.Decorations
	f.texts = ShuffleTexts(texts, f.rng)
	f.perm = NewSlotPermutation(len(f.texts), f.rng)
	f.built = false
	if f.orbit != nil {
		f.orbit.Snap()
		f.lastAngles = Angles{}
	}

	f.setPhase(PhaseScattering)
	f.rebuild(ReasonStart)

	f.gatherTimer = f.timers.After(f.Config().GatherDelay.Std(), func() {
		f.enterGathered(ReasonGather)
	})
}

// Toggle flips between scattering and gathered. It has no effect while idle.
// Entering the heart draws a new slot permutation, so repeated gatherings
// relocate the texts, and turns the view back to the front. Any pending
// delayed gather is cancelled: the latest explicit action wins.
func (f *Formation) Toggle() {
	if f.closed || f.phase == PhaseIdle {
		return
	}
	f.gatherTimer.Stop()
	if f.phase == PhaseGathered {
		f.setPhase(PhaseScattering)
		f.rebuild(ReasonToggle)
		return
	}
	f.enterGathered(ReasonToggle)
}

func (f *Formation) enterGathered(reason RebuildReason) {
	f.perm = NewSlotPermutation(len(f.texts), f.rng)
	if f.orbit != nil {
		f.orbit.Reset()
	}
	f.setPhase(PhaseGathered)
	f.rebuild(reason)
}

// Resize records the viewport. While an experience is running, a rebuild is
// scheduled once resizing has been quiet for the debounce interval; only the
// final size is used.
func (f *Formation) Resize(w, h float64) {
	if f.closed {
		return
	}
	f.viewport = Viewport{Width: w, Height: h}
	if f.phase == PhaseIdle {
		return
	}
	f.resizeTimer.Stop()
	f.resizeTimer = f.timers.After(f.Config().ResizeDebounce.Std(), func() {
		f.rebuild(ReasonResize)
	})
}

// Update advances timers and the orbit by dt seconds and reports rotation
// changes.
func (f *Formation) Update(dt float64) {
	if f.closed {
		return
	}
	f.timers.Advance(seconds(dt))
	if f.orbit == nil {
		return
	}
	f.orbit.Update(dt)
	a := f.orbit.Angles()
	if math.Abs(a.Pitch-f.lastAngles.Pitch) > rotationEpsilon || math.Abs(a.Yaw-f.lastAngles.Yaw) > rotationEpsilon {
		f.lastAngles = a
		f.events.fireRotationUpdated(RotationUpdatedEvent{Angles: a, Counter: a.Neg()})
	}
}

// Close cancels every pending timer. Nothing fires afterwards and all
// further calls are ignored.
func (f *Formation) Close() {
	f.cancelPending()
	f.timers.StopAll()
	f.closed = true
}

func (f *Formation) cancelPending() {
	f.gatherTimer.Stop()
	f.resizeTimer.Stop()
}

func (f *Formation) setPhase(p Phase) {
	from := f.phase
	f.phase = p
	if from != p {
		if f.debug {
			debugLogPhase(ModeChangedEvent{From: from, To: p})
		}
		f.events.fireModeChanged(ModeChangedEvent{From: from, To: p})
	}
}

func (f *Formation) rebuild(reason RebuildReason) {
	var t0 time.Time
	if f.debug {
		t0 = time.Now()
		debugCheckPermutation(f.perm, len(f.texts))
	}

	var prev *Layout
	if f.built {
		prev = &f.layout
	}
	cfg := f.Config()
	next := f.builder.Rebuild(cfg, f.texts, f.perm, f.viewport, prev)
	f.generation++
	next.Generation = f.generation
	f.layout = next
	f.built = true

	if f.debug {
		debugLogRebuild(&f.layout, reason, time.Since(t0))
	}
	f.events.fireLayoutRebuilt(LayoutRebuiltEvent{Layout: &f.layout, Mode: f.Mode(), Reason: reason})
}

// seconds converts a tick length to a Duration, rounding to the nearest
// nanosecond so sums of ticks land on whole milliseconds.
func seconds(dt float64) time.Duration {
	return time.Duration(math.Round(dt * float64(time.Second)))
}
