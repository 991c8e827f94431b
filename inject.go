package inkling

import "github.com/hajimehoshi/ebiten/v2"

// syntheticEvent is a single injected frame of input. Coordinates are in
// virtual-screen pixels, identical to real pointer input.
type syntheticEvent struct {
	x, y float64
	held bool
	keys []ebiten.Key
}

// InjectPress queues a frame with the pointer pressed at (x, y). The event is
// consumed by the next Read call.
func (r *InputReader) InjectPress(x, y float64) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{x: x, y: y, held: true})
}

// InjectMove queues a frame with the pointer held at (x, y). Use this between
// InjectPress and InjectRelease to simulate a stroke.
func (r *InputReader) InjectMove(x, y float64) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{x: x, y: y, held: true})
}

// InjectRelease queues a frame with the pointer released at (x, y).
func (r *InputReader) InjectRelease(x, y float64) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{x: x, y: y})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two frames.
func (r *InputReader) InjectClick(x, y float64) {
	r.InjectPress(x, y)
	r.InjectRelease(x, y)
}

// InjectDrag queues a full stroke: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (r *InputReader) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	r.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		r.InjectMove(x, y)
	}
	r.InjectRelease(toX, toY)
}

// InjectKey queues a frame in which key is newly pressed. The pointer keeps
// its last position and held state.
func (r *InputReader) InjectKey(key ebiten.Key) {
	x, y, held := r.lastX, r.lastY, r.held
	if n := len(r.injectQueue); n > 0 {
		last := r.injectQueue[n-1]
		x, y, held = last.x, last.y, last.held
	}
	r.injectQueue = append(r.injectQueue, syntheticEvent{x: x, y: y, held: held, keys: []ebiten.Key{key}})
}

// Pending returns the number of queued synthetic frames.
func (r *InputReader) Pending() int {
	return len(r.injectQueue)
}

// popInjected removes and returns the oldest queued event.
func (r *InputReader) popInjected() (syntheticEvent, bool) {
	if len(r.injectQueue) == 0 {
		return syntheticEvent{}, false
	}
	evt := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue[len(r.injectQueue)-1] = syntheticEvent{}
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]
	return evt, true
}
