package inkling

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle. The right and
// bottom edges are exclusive.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// --- Per-frame input facts ---

// Input is the read-only snapshot of input device state for one frame.
// Coordinates are in virtual-screen pixels.
type Input struct {
	X, Y     float64
	Held     bool // pointer button (or first touch) is down
	Pressed  bool // pointer went down this frame
	Released bool // pointer went up this frame

	keys []ebiten.Key // keys newly pressed this frame
}

// JustPressed reports whether key was newly pressed this frame.
func (in *Input) JustPressed(key ebiten.Key) bool {
	return slices.Contains(in.keys, key)
}

// AnyJustPressed reports whether any of keys was newly pressed this frame.
func (in *Input) AnyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if in.JustPressed(k) {
			return true
		}
	}
	return false
}

// Keys returns the keys newly pressed this frame. The returned slice MUST NOT
// be mutated.
func (in *Input) Keys() []ebiten.Key {
	return in.keys
}

// WithKeys returns a copy of in with the given newly pressed keys.
func (in Input) WithKeys(keys ...ebiten.Key) Input {
	in.keys = keys
	return in
}

// --- Input reader ---

// InputReader samples mouse, touch and keyboard state once per frame and
// derives press/release edges from its own held state, so injected and real
// input follow the same rules.
type InputReader struct {
	held        bool
	lastX       float64
	lastY       float64
	touchIDs    []ebiten.TouchID
	keyBuf      []ebiten.Key
	injectQueue []syntheticEvent
}

// NewInputReader creates an InputReader with no pointer held.
func NewInputReader() *InputReader {
	return &InputReader{}
}

// Read returns this frame's input facts. A queued synthetic event, if any,
// replaces real device input for the frame.
func (r *InputReader) Read() Input {
	if evt, ok := r.popInjected(); ok {
		return r.advance(evt.x, evt.y, evt.held, evt.keys)
	}

	x, y, held := r.samplePointer()
	r.keyBuf = inpututil.AppendJustPressedKeys(r.keyBuf[:0])
	return r.advance(x, y, held, r.keyBuf)
}

// samplePointer reads the mouse, falling back to the first active touch.
func (r *InputReader) samplePointer() (x, y float64, held bool) {
	mx, my := ebiten.CursorPosition()
	x, y = float64(mx), float64(my)
	held = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	r.touchIDs = ebiten.AppendTouchIDs(r.touchIDs[:0])
	if !held && len(r.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(r.touchIDs[0])
		return float64(tx), float64(ty), true
	}
	return x, y, held
}

// advance runs the pointer edge state machine and builds the Input.
func (r *InputReader) advance(x, y float64, held bool, keys []ebiten.Key) Input {
	in := Input{
		X:        x,
		Y:        y,
		Held:     held,
		Pressed:  held && !r.held,
		Released: !held && r.held,
		keys:     keys,
	}
	r.held = held
	r.lastX = x
	r.lastY = y
	return in
}

// --- Hit testing ---

type hitCandidate struct {
	node  *Node
	layer Layer
}

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise derives the box from the node's image.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx < w && ly >= 0 && ly < h
}

// collectInteractable walks the tree in painter order, appending nodes that
// have a pointer handler. Skips Visible=false or Interactable=false subtrees.
func (s *Scene) collectInteractable(n *Node, layer Layer, buf []hitCandidate) []hitCandidate {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.Parent == s.root {
		layer = n.RenderLayer
	}
	if n.OnPointerDown != nil {
		buf = append(buf, hitCandidate{node: n, layer: layer})
	}

	children := n.children
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = s.collectInteractable(child, layer, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY): the highest
// layer wins, and within a layer the node drawn last wins.
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, LayerBackground, s.hitBuf[:0])

	var best *Node
	var bestLayer Layer
	for _, c := range s.hitBuf {
		lx, ly := c.node.WorldToLocal(worldX, worldY)
		if !nodeContainsLocal(c.node, lx, ly) {
			continue
		}
		if best == nil || c.layer >= bestLayer {
			best = c.node
			bestLayer = c.layer
		}
	}
	clear(s.hitBuf)
	return best
}
