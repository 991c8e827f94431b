package inkling

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestInjectClick(t *testing.T) {
	r := NewInputReader()
	r.InjectClick(50, 60)
	if r.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", r.Pending())
	}

	// Frame 1: press
	in := r.Read()
	if !in.Pressed || !in.Held || in.Released {
		t.Errorf("frame 1 = %+v, want pressed and held", in)
	}
	if in.X != 50 || in.Y != 60 {
		t.Errorf("frame 1 pos = (%v, %v), want (50, 60)", in.X, in.Y)
	}

	// Frame 2: release
	in = r.Read()
	if in.Pressed || in.Held || !in.Released {
		t.Errorf("frame 2 = %+v, want released", in)
	}
	if r.Pending() != 0 {
		t.Errorf("Pending = %d after two reads, want 0", r.Pending())
	}
}

func TestInjectDragInterpolates(t *testing.T) {
	r := NewInputReader()
	// press, 3 moves, release
	r.InjectDrag(10, 10, 210, 110, 5)
	if r.Pending() != 5 {
		t.Fatalf("Pending = %d, want 5", r.Pending())
	}

	wantX := []float64{10, 60, 110, 160, 210}
	wantY := []float64{10, 35, 60, 85, 110}
	for i := range wantX {
		in := r.Read()
		if math.Abs(in.X-wantX[i]) > 1e-9 || math.Abs(in.Y-wantY[i]) > 1e-9 {
			t.Errorf("frame %d pos = (%v, %v), want (%v, %v)", i, in.X, in.Y, wantX[i], wantY[i])
		}
		if i == 0 && !in.Pressed {
			t.Error("frame 0 should be the press edge")
		}
		if i > 0 && i < 4 && (!in.Held || in.Pressed) {
			t.Errorf("frame %d should be held without a new press", i)
		}
		if i == 4 && !in.Released {
			t.Error("last frame should be the release edge")
		}
	}
}

func TestInjectDragMinFrames(t *testing.T) {
	r := NewInputReader()
	r.InjectDrag(0, 0, 100, 100, 1)
	if r.Pending() != 2 {
		t.Errorf("Pending = %d, want 2 (press + release)", r.Pending())
	}
}

func TestInjectKeyKeepsPointer(t *testing.T) {
	r := NewInputReader()
	r.InjectPress(30, 40)
	r.InjectKey(ebiten.KeyEnter)

	r.Read()
	in := r.Read()
	if !in.JustPressed(ebiten.KeyEnter) {
		t.Error("Enter should be just pressed")
	}
	if in.X != 30 || in.Y != 40 || !in.Held {
		t.Errorf("pointer = (%v, %v, held=%v), want (30, 40, held)", in.X, in.Y, in.Held)
	}
	if in.Pressed {
		t.Error("pointer press edge should not repeat on the key frame")
	}
}

func TestInjectKeyAfterRead(t *testing.T) {
	r := NewInputReader()
	r.InjectRelease(7, 9)
	r.Read()

	r.InjectKey(ebiten.KeySpace)
	in := r.Read()
	if in.X != 7 || in.Y != 9 || in.Held {
		t.Errorf("pointer = (%v, %v, held=%v), want last read state", in.X, in.Y, in.Held)
	}
	if !in.JustPressed(ebiten.KeySpace) {
		t.Error("Space should be just pressed")
	}
}

func TestInjectQueueFIFO(t *testing.T) {
	r := NewInputReader()
	r.InjectPress(1, 1)
	r.InjectMove(2, 2)
	r.InjectMove(3, 3)
	r.InjectRelease(4, 4)

	for i := 1; i <= 4; i++ {
		in := r.Read()
		if in.X != float64(i) {
			t.Errorf("read %d X = %v, want %d", i, in.X, i)
		}
	}
}
