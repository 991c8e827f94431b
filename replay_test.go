package inkling

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadReplay(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "key", "key": "Enter"},
			{"action": "drag", "fromX": 1, "fromY": 2, "toX": 3, "toY": 4, "frames": 5}
		]
	}`)

	r, err := LoadReplay(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(r.steps))
	}
	if r.steps[1].X != 100 || r.steps[1].Y != 200 {
		t.Error("click step mismatch")
	}
	if r.steps[4].ToY != 4 || r.steps[4].Frames != 5 {
		t.Error("drag step mismatch")
	}
}

func TestLoadReplayErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "dance"}]}`},
		{"unknown key", `{"steps": [{"action": "key", "key": "Hyper"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadReplay([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func mustReplay(t *testing.T, data string) *Replay {
	t.Helper()
	r, err := LoadReplay([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestReplayClickWaitsForQueue(t *testing.T) {
	in := NewInputReader()
	s := NewScene()
	r := mustReplay(t, `{"steps": [{"action": "click", "x": 50, "y": 50}]}`)

	r.Step(in, s)
	if in.Pending() != 2 {
		t.Fatalf("expected 2 queued events, got %d", in.Pending())
	}
	if r.Done() {
		t.Error("replay should not be done while input is pending")
	}

	in.Read()
	r.Step(in, s)
	if in.Pending() != 1 || r.Done() {
		t.Error("replay should wait for the queue to drain")
	}

	in.Read()
	r.Step(in, s)
	if !r.Done() {
		t.Error("replay should be done after the queue drains")
	}
}

func TestReplayWait(t *testing.T) {
	in := NewInputReader()
	s := NewScene()
	r := mustReplay(t, `{"steps": [{"action": "wait", "frames": 3}, {"action": "screenshot", "label": "after"}]}`)

	for frame := 0; frame < 3; frame++ {
		r.Step(in, s)
		if s.PendingScreenshots() != 0 {
			t.Fatalf("frame %d: screenshot taken during wait", frame)
		}
	}
	r.Step(in, s)
	if s.PendingScreenshots() != 1 || s.screenshotQueue[0] != "after" {
		t.Errorf("queue = %v, want [after]", s.screenshotQueue)
	}
	if !r.Done() {
		t.Error("replay should finish with its last step")
	}
}

func TestReplayKeyAndDrag(t *testing.T) {
	in := NewInputReader()
	s := NewScene()
	r := mustReplay(t, `{"steps": [
		{"action": "key", "key": "space"},
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 30, "toY": 0, "frames": 4}
	]}`)

	r.Step(in, s)
	if got := in.Read(); !got.JustPressed(ebiten.KeySpace) {
		t.Error("key step should inject Space")
	}
	r.Step(in, s)
	if in.Pending() != 4 {
		t.Errorf("drag queued %d frames, want 4", in.Pending())
	}
}

// --- Game ---

func TestGameReplayDrivesSequencer(t *testing.T) {
	seq, _ := newTestSequencer(t)
	if err := seq.Jump("intro", 3); err != nil {
		t.Fatal(err)
	}
	r := mustReplay(t, `{"steps": [
		{"action": "key", "key": "Enter"},
		{"action": "click", "x": 50, "y": 185}
	]}`)
	g := NewGame(seq, r)
	g.ExitOnReplayEnd = true

	for frame := 0; frame < 3; frame++ {
		if err := g.Update(); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
	}
	wantAt(t, seq, "left", 0)

	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("err = %v, want ebiten.Termination after the replay", err)
	}
}

func TestGameScreenshotKey(t *testing.T) {
	seq, _ := newTestSequencer(t)
	g := NewGame(seq, nil)
	g.Input().InjectKey(ebiten.KeyF12)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	s := seq.Scene()
	if s.PendingScreenshots() != 1 || s.screenshotQueue[0] != "intro-1" {
		t.Errorf("queue = %v, want [intro-1]", s.screenshotQueue)
	}
}

func TestGameLayout(t *testing.T) {
	g := &Game{}
	w, h := g.Layout(1920, 1080)
	if w != ScreenWidth || h != ScreenHeight {
		t.Errorf("Layout = %dx%d", w, h)
	}
}
