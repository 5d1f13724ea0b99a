package warpfx

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tanema/gween/ease"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Param   string  `json:"param,omitempty"`
	Value   float64 `json:"value,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences parameter changes, pauses and screenshots across
// frames for automated visual testing. Attach to an App via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an App via SetTestRunner. Unknown actions and unknown
// parameter names are rejected here rather than mid-run.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.check(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// LoadTestScriptFile reads and parses a test script from disk.
func LoadTestScriptFile(path string) (*TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test script: %w", err)
	}
	return LoadTestScript(data)
}

func (st testStep) check() error {
	switch st.Action {
	case "wait", "screenshot", "pause", "resume", "quit":
		return nil
	case "set", "tween":
		if _, err := ParseParamID(st.Param); err != nil {
			return err
		}
		if st.Action == "tween" && st.Seconds <= 0 {
			return fmt.Errorf("tween %s: seconds must be positive", st.Param)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

// SetTestRunner attaches a TestRunner to the app. The runner's step method
// is called from App.Update before the control panel each frame.
func (a *App) SetTestRunner(runner *TestRunner) {
	a.runner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from App.Update.
func (r *TestRunner) step(a *App) {
	if r.done {
		return
	}
	// Count down wait frames.
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
	case "screenshot":
		a.Screenshot(st.Label)
	case "pause":
		a.loop.Pause()
	case "resume":
		a.loop.Resume()
	case "set":
		id, _ := ParseParamID(st.Param)
		a.params.Update(func(p Params) Params { return p.With(id, st.Value) })
	case "tween":
		id, _ := ParseParamID(st.Param)
		a.tweens.start(TweenParam(a.params, id, st.Value, float32(st.Seconds), ease.InOutQuad))
	case "quit":
		a.Apply(Action{Kind: ActionQuit})
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
