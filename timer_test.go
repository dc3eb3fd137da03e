package wishheart

import (
	"testing"
	"time"
)

func TestTimersFireInDueOrder(t *testing.T) {
	var ts Timers
	var got []string
	ts.After(30*time.Millisecond, func() { got = append(got, "c") })
	ts.After(10*time.Millisecond, func() { got = append(got, "a") })
	ts.After(10*time.Millisecond, func() { got = append(got, "b") })

	ts.Advance(5 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}
	ts.Advance(50 * time.Millisecond)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("order = %v, want [a b c]", got)
	}
	if ts.Len() != 0 {
		t.Errorf("Len = %d, want 0", ts.Len())
	}
}

func TestTimerStop(t *testing.T) {
	var ts Timers
	fired := false
	h := ts.After(time.Second, func() { fired = true })
	if !h.Active() {
		t.Fatal("handle not active")
	}
	if !h.Stop() {
		t.Error("Stop reported nothing to cancel")
	}
	if h.Stop() {
		t.Error("second Stop reported a cancel")
	}
	ts.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestTimerStopAfterFire(t *testing.T) {
	var ts Timers
	h := ts.After(0, func() {})
	ts.Advance(0)
	if h.Active() || h.Stop() {
		t.Error("fired timer still active")
	}
	var zero TimerHandle
	if zero.Stop() || zero.Active() {
		t.Error("zero handle reported active")
	}
}

func TestTimerCallbackSchedules(t *testing.T) {
	var ts Timers
	var got []time.Duration
	ts.After(10*time.Millisecond, func() {
		got = append(got, ts.Now())
		ts.After(10*time.Millisecond, func() { got = append(got, ts.Now()) })
	})
	ts.Advance(15 * time.Millisecond)
	if len(got) != 1 {
		t.Fatalf("fired %d, want 1", len(got))
	}
	ts.Advance(10 * time.Millisecond)
	if len(got) != 2 {
		t.Fatalf("fired %d, want 2", len(got))
	}
}

func TestTimerCallbackStopsSibling(t *testing.T) {
	var ts Timers
	var second TimerHandle
	fired := false
	ts.After(time.Millisecond, func() { second.Stop() })
	second = ts.After(2*time.Millisecond, func() { fired = true })
	ts.Advance(time.Second)
	if fired {
		t.Error("timer stopped by an earlier callback still fired")
	}
}

func TestTimersStopAll(t *testing.T) {
	var ts Timers
	n := 0
	for range 5 {
		ts.After(time.Millisecond, func() { n++ })
	}
	ts.StopAll()
	ts.Advance(time.Second)
	if n != 0 || ts.Len() != 0 {
		t.Errorf("fired %d, pending %d after StopAll", n, ts.Len())
	}
}
