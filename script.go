package wishheart

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownAction is returned by LoadScript for a step whose action is not
// recognised.
var ErrUnknownAction = errors.New("unknown script action")

// Script actions.
const (
	ActionStart      = "start"
	ActionClick      = "click"
	ActionDrag       = "drag"
	ActionLeave      = "leave"
	ActionWait       = "wait"
	ActionResize     = "resize"
	ActionToggle     = "toggle"
	ActionScreenshot = "screenshot"
)

var scriptActions = map[string]bool{
	ActionStart: true, ActionClick: true, ActionDrag: true, ActionLeave: true,
	ActionWait: true, ActionResize: true, ActionToggle: true, ActionScreenshot: true,
}

// ScriptStep is a single action in a script.
type ScriptStep struct {
	Action string  `json:"action" jsonschema:"enum=start,enum=click,enum=drag,enum=leave,enum=wait,enum=resize,enum=toggle,enum=screenshot"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// Script is the top-level JSON structure of a script file.
type Script struct {
	Steps []ScriptStep `json:"steps"`
}

// ScriptRunner sequences injected input, state changes and screenshots
// across frames. Attach to a Scene via SetScriptRunner.
type ScriptRunner struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script and returns a runner ready to be attached
// to a Scene.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script Script
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: %w %q", i, ErrUnknownAction, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a runner to the scene. The runner advances at the
// start of every Update.
func (s *Scene) SetScriptRunner(runner *ScriptRunner) {
	s.runner = runner
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Len returns the number of steps.
func (r *ScriptRunner) Len() int {
	return len(r.steps)
}

// step advances the runner by one frame. Called from Scene.Update.
func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case ActionStart:
		s.Start()
	case ActionToggle:
		s.Toggle()
	case ActionResize:
		s.Resize(st.Width, st.Height)
	case ActionScreenshot:
		s.Screenshot(st.Label)
	case ActionClick:
		s.InjectClick(st.X, st.Y)
	case ActionLeave:
		s.InjectPress(st.FromX, st.FromY)
		s.InjectMove(st.X, st.Y)
		s.InjectLeave(st.X, st.Y)
	case ActionDrag:
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case ActionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
