package warpfx

import (
	"path/filepath"
	"testing"
)

func TestLoadTestScriptValid(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "set", "param": "progress", "value": 0},
		{"action": "tween", "param": "scale", "value": 1.5, "seconds": 0.5},
		{"action": "pause"},
		{"action": "screenshot", "label": "paused"},
		{"action": "resume"},
		{"action": "quit"}
	]}`)
	r, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 7 {
		t.Errorf("steps = %d, want 7", len(r.steps))
	}
	if r.Done() {
		t.Error("fresh runner should not be done")
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := map[string]string{
		"invalid json":  `{`,
		"no steps":      `{"steps": []}`,
		"unknown":       `{"steps": [{"action": "click"}]}`,
		"unknown param": `{"steps": [{"action": "set", "param": "speed", "value": 1}]}`,
		"tween seconds": `{"steps": [{"action": "tween", "param": "progress", "value": 1}]}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTestScriptFileMissing(t *testing.T) {
	if _, err := LoadTestScriptFile(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTestRunnerSteps(t *testing.T) {
	a := newTestApp(t, 3)
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "set", "param": "progress", "value": 0.25},
		{"action": "pause"},
		{"action": "wait", "frames": 2},
		{"action": "screenshot", "label": "shot"},
		{"action": "resume"},
		{"action": "tween", "param": "cosChange", "value": 2, "seconds": 1},
		{"action": "quit"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	a.SetTestRunner(r)

	r.step(a) // set
	assertNear(t, "progress", a.params.Load().Progress, 0.25)
	r.step(a) // pause
	if a.loop.State() != LoopPaused {
		t.Fatal("loop should be paused")
	}
	r.step(a) // wait 2: this frame counts
	r.step(a) // waiting
	if len(a.screenshotQueue) != 0 {
		t.Fatal("screenshot taken during wait")
	}
	r.step(a) // screenshot
	if len(a.screenshotQueue) != 1 || a.screenshotQueue[0] != "shot" {
		t.Errorf("screenshotQueue = %v", a.screenshotQueue)
	}
	r.step(a) // resume
	if a.loop.State() != LoopRunning {
		t.Error("loop should be running")
	}
	r.step(a) // tween
	if a.tweens.running() != 1 {
		t.Errorf("running tweens = %d, want 1", a.tweens.running())
	}
	r.step(a) // quit
	if !a.quit {
		t.Error("quit not requested")
	}
	if !r.Done() {
		t.Error("runner should be done")
	}
}
