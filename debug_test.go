package wishheart

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"
)

// captureStderr runs fn and returns what it wrote to os.Stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stderr
	os.Stderr = w
	done := make(chan string)
	go func() {
		b, _ := io.ReadAll(r)
		done <- string(b)
	}()
	fn()
	os.Stderr = orig
	w.Close()
	return <-done
}

func TestDebugMode_LogsRebuildsAndPhases(t *testing.T) {
	f, _ := newTestFormation(3)
	f.SetDebugMode(true)
	out := captureStderr(t, func() {
		f.Start(testTexts(4))
	})
	if !strings.Contains(out, "[wishheart] phase: idle -> scattering") {
		t.Errorf("missing phase line in %q", out)
	}
	if !strings.Contains(out, "[wishheart] rebuild #1 (start): 4 wishes") {
		t.Errorf("missing rebuild line in %q", out)
	}
}

func TestReleaseMode_Silent(t *testing.T) {
	f, _ := newTestFormation(3)
	out := captureStderr(t, func() {
		f.Start(testTexts(4))
		f.Toggle()
	})
	if out != "" {
		t.Errorf("release mode wrote %q", out)
	}
}

func TestDebugCheckPermutation(t *testing.T) {
	out := captureStderr(t, func() {
		debugCheckPermutation(IdentityPermutation(3), 3)
	})
	if out != "" {
		t.Errorf("valid permutation warned: %q", out)
	}
	out = captureStderr(t, func() {
		debugCheckPermutation(SlotPermutation{0, 2, 2}, 3)
	})
	if !strings.Contains(out, "warning") {
		t.Errorf("invalid permutation not reported: %q", out)
	}
}

func TestDebugLogFrameBudget(t *testing.T) {
	out := captureStderr(t, func() {
		debugLogFrame(debugFrameStats{formationTime: time.Millisecond})
	})
	if out != "" {
		t.Errorf("fast frame reported: %q", out)
	}
	out = captureStderr(t, func() {
		debugLogFrame(debugFrameStats{animateTime: 5 * time.Millisecond, bodies: 140})
	})
	if !strings.Contains(out, "slow update") || !strings.Contains(out, "140 bodies") {
		t.Errorf("slow frame not reported: %q", out)
	}
}
