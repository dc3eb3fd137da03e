package wishheart

import "time"

// Timers is a frame-driven scheduler for one-shot callbacks. Time only moves
// when Advance is called, so every callback runs on the caller's goroutine in
// the middle of a tick.
type Timers struct {
	now     time.Duration
	pending []*timer
	nextID  uint64
}

type timer struct {
	id      uint64
	due     time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// TimerHandle refers to a scheduled callback.
type TimerHandle struct {
	t *timer
}

// Stop cancels the callback. It reports whether the call prevented the
// callback from running. Stopping a zero handle is a no-op.
func (h TimerHandle) Stop() bool {
	if h.t == nil || h.t.stopped || h.t.fired {
		return false
	}
	h.t.stopped = true
	return true
}

// Active reports whether the callback is still scheduled.
func (h TimerHandle) Active() bool {
	return h.t != nil && !h.t.stopped && !h.t.fired
}

// Now returns the scheduler clock.
func (ts *Timers) Now() time.Duration {
	return ts.now
}

// After schedules fn to run once the clock has advanced by d.
func (ts *Timers) After(d time.Duration, fn func()) TimerHandle {
	ts.nextID++
	t := &timer{id: ts.nextID, due: ts.now + d, fn: fn}
	ts.pending = append(ts.pending, t)
	return TimerHandle{t: t}
}

// Advance moves the clock forward by dt and runs every due callback in due
// order (ties in scheduling order). Callbacks may schedule or stop timers.
func (ts *Timers) Advance(dt time.Duration) {
	ts.now += dt
	for {
		t := ts.nextDue()
		if t == nil {
			break
		}
		t.fired = true
		t.fn()
	}
	ts.compact()
}

// nextDue returns the earliest live timer whose due time has passed.
func (ts *Timers) nextDue() *timer {
	var best *timer
	for _, t := range ts.pending {
		if t.stopped || t.fired || t.due > ts.now {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

// compact drops fired and stopped timers.
func (ts *Timers) compact() {
	live := ts.pending[:0]
	for _, t := range ts.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(ts.pending); i++ {
		ts.pending[i] = nil
	}
	ts.pending = live
}

// StopAll cancels every pending callback.
func (ts *Timers) StopAll() {
	for _, t := range ts.pending {
		t.stopped = true
	}
	ts.compact()
}

// Len returns the number of pending callbacks.
func (ts *Timers) Len() int {
	n := 0
	for _, t := range ts.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
