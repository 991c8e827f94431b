package inkling

import (
	"encoding/json"
	"fmt"
)

// replayStep represents a single action in a replay script.
type replayStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// replayScript is the top-level JSON structure for a replay script.
type replayScript struct {
	Steps []replayStep `json:"steps"`
}

// Replay feeds scripted input and screenshot requests to the game one frame
// at a time, for automated playthroughs.
type Replay struct {
	steps     []replayStep
	cursor    int
	waitCount int
	done      bool
}

// LoadReplay parses a JSON replay script. Every step is checked up front.
func LoadReplay(jsonData []byte) (*Replay, error) {
	var script replayScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse replay: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse replay: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "drag", "wait", "screenshot":
		case "key":
			if _, ok := keyByName(st.Key); !ok {
				return nil, fmt.Errorf("parse replay: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse replay: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Replay{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *Replay) Done() bool {
	return r.done
}

// Step advances the replay by one frame, queuing input on in and screenshots
// on scene. Call it before reading input for the frame.
func (r *Replay) Step(in *InputReader, scene *Scene) {
	if r.done {
		return
	}
	// Let queued input drain before the next action.
	if in.Pending() > 0 {
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
	case "screenshot":
		scene.Screenshot(st.Label)
	case "click":
		in.InjectClick(st.X, st.Y)
	case "drag":
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "key":
		k, _ := keyByName(st.Key)
		in.InjectKey(k)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
