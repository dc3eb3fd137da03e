// Package wishheart lays out short text "wishes" and decorative glyphs in
// 3D and moves them between a random scatter and a parametric heart.
//
// The layout engine is plain Go with no window or GPU dependency. Frontends
// (the Ebitengine window in wishheart/view, the terminal preview in
// wishheart/term) drive a [Scene] once per tick and draw its [Frame].
//
// # Quick start
//
//	scene := wishheart.NewScene(wishheart.SceneOptions{Seed: 42})
//	scene.Resize(1280, 720)
//	scene.Start()
//	for range 120 {
//		scene.Update()
//	}
//	frame := scene.Frame() // sprites back to front, stars, glow
//
// # Layout
//
// [HeartPoint] places item i of N on one of three nested shells of the
// classic heart curve; slot 0 is the focal origin. [ScatterPoint] places a
// point in a box larger than the viewport. [Builder] combines both, plus a
// [SlotPermutation], into a [Layout] holding two positions per record.
//
// # State
//
// [Formation] owns the phase (idle, scattering, gathered), draws a fresh
// permutation every time the heart gathers, and rebuilds on a debounced
// resize. Its timers are frame-driven and cancelled by every superseding
// action, so a stale timer never overrides the user.
//
// [Orbit] turns pointer drags into pitch and yaw smoothed by a damped
// spring; [Gate] tells a tap from a drag. [Animator] interpolates every
// record toward the active set with per-record delay.
//
// # Events
//
// Subscribe with [Formation.OnModeChanged], [Formation.OnLayoutRebuilt] and
// [Formation.OnRotationUpdated]. An [EventSink] receives the same events in
// flat form; wishheart/ecs publishes them into a Donburi world.
//
// # Testing
//
// Scenes accept injected pointer input ([Scene.InjectClick],
// [Scene.InjectDrag]) and JSON scripts ([LoadScript]); [Scene.Screenshot]
// renders headless PNGs with [gg].
//
// [gg]: https://github.com/fogleman/gg
package wishheart
