package hologram

import (
	"encoding/json"
	"fmt"
	"os"
)

// scriptStep is a single action in a capture script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure of a capture script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptTarget is what a ScriptRunner drives.
type ScriptTarget interface {
	// Screenshot queues a capture of the next rendered frame.
	Screenshot(label string)
	// Ready reports whether the world has been built.
	Ready() bool
	// Controls returns the camera controls that receive injected input.
	Controls() *OrbitControls
}

// ScriptRunner sequences injected camera input and screenshots across
// frames for automated captures.
//
// Actions:
//
//	{"action": "wait-ready"}                   wait until every asset settled
//	{"action": "wait", "frames": 30}           idle for a number of frames
//	{"action": "drag", "fromX": 0, "fromY": 0, "toX": 200, "toY": 0, "frames": 20}
//	{"action": "zoom", "delta": 1}             wheel notches, positive zooms in
//	{"action": "screenshot", "label": "front"}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON capture script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "wait-ready", "wait", "drag", "zoom", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// LoadScriptFile reads and parses a JSON capture script.
func LoadScriptFile(path string) (*ScriptRunner, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadScript(b)
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step(t ScriptTarget) {
	if r.done {
		return
	}
	c := t.Controls()
	// Wait for injected input to drain before advancing.
	if c.Injected() > 0 {
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
	if st.Action == "wait-ready" && !t.Ready() {
		return
	}
	r.cursor++

	switch st.Action {
	case "screenshot":
		t.Screenshot(st.Label)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "zoom":
		c.InjectWheel(st.Delta)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && c.Injected() == 0 {
		r.done = true
	}
}
