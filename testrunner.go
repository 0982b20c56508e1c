package scrollstage

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Offset float64 `json:"offset,omitempty"`
	From   float64 `json:"from,omitempty"`
	To     float64 `json:"to,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected scroll and resize events and snapshots
// across frames for scripted replays. Attach to an Engine via SetTestRunner.
//
//	{"steps": [
//		{"action": "resize", "width": 1024, "height": 768},
//		{"action": "scrollTo", "from": 0, "to": 2048, "frames": 30},
//		{"action": "wait", "frames": 20},
//		{"action": "snapshot", "label": "end"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool

	// OnSnapshot is called for every "snapshot" step with the engine's
	// timeline states at that frame.
	OnSnapshot func(label string, frame int, states []TimelineState)
	frame      int
}

var testActions = map[string]bool{
	"scroll": true, "scrollTo": true, "resize": true, "wait": true, "snapshot": true,
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Engine via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !testActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the engine. The runner's step
// method is called from Engine.Update before injected events are drained.
func (e *Engine) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Engine.Update.
func (r *TestRunner) step(e *Engine) {
	r.frame++
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
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
	case "snapshot":
		if r.OnSnapshot != nil {
			r.OnSnapshot(st.Label, r.frame, e.Snapshot())
		}
	case "scroll":
		e.InjectScroll(st.Offset)
	case "scrollTo":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		e.InjectScrollTo(st.From, st.To, frames)
	case "resize":
		e.InjectResize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}
