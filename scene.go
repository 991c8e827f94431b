package inkling

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 256

// Scene is the live scene graph for the current story beat. It owns the node
// tree, the render command buffers and the screenshot queue. The sequencer
// empties and repopulates it on every transition.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the frame before any node is drawn.
	ClearColor Color

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	// epoch increments on every Clear so an update pass can tell that a
	// callback replaced the scene underneath it.
	epoch uint64

	// Render state
	commands []RenderCommand
	sortBuf  []RenderCommand

	// Update and hit-test scratch buffers
	updateBuf []*Node
	hitBuf    []hitCandidate

	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		ClearColor:    Color{0, 0, 0, 1},
		ScreenshotDir: "screenshots",
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:       make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Add mounts node as a top-level entity in the given layer.
func (s *Scene) Add(layer Layer, node *Node) {
	node.RenderLayer = layer
	s.root.AddChild(node)
}

// Clear detaches every top-level entity. Entities are not disposed; stage
// decorations are mounted again when their step is re-entered.
func (s *Scene) Clear() {
	s.root.RemoveChildren()
	s.epoch++
}

// Len returns the number of top-level entities.
func (s *Scene) Len() int {
	return s.root.NumChildren()
}

// Find returns the first node with the given name in painter order, or nil.
func (s *Scene) Find(name string) *Node {
	return findNode(s.root, name)
}

func findNode(n *Node, name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := findNode(c, name); found != nil {
			return found
		}
	}
	return nil
}

// Update gives every mounted entity its per-frame update and then routes a
// pointer-down edge to the topmost interactable node under the pointer. If a
// callback clears the scene, the remaining callbacks for the old entities are
// skipped; the new entities receive their first update on the next frame.
func (s *Scene) Update(in *Input) {
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	epoch := s.epoch
	s.updateBuf = collectUpdatable(s.root, s.updateBuf[:0])
	for _, n := range s.updateBuf {
		if s.epoch != epoch {
			break
		}
		if n.disposed || n.OnUpdate == nil {
			continue
		}
		n.OnUpdate(in)
	}
	clear(s.updateBuf)

	if s.epoch != epoch || !in.Pressed {
		return
	}
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	if target := s.hitTest(in.X, in.Y); target != nil && target.OnPointerDown != nil {
		lx, ly := target.WorldToLocal(in.X, in.Y)
		target.OnPointerDown(PointerContext{
			Node:    target,
			GlobalX: in.X,
			GlobalY: in.Y,
			LocalX:  lx,
			LocalY:  ly,
		})
	}
}

// collectUpdatable walks the tree depth-first and appends visible nodes.
func collectUpdatable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	buf = append(buf, n)
	for _, child := range n.children {
		buf = collectUpdatable(child, buf)
	}
	return buf
}

// Draw traverses the scene tree, emits render commands, sorts them by layer,
// and submits them to the given screen image.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.toRGBA())

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.commands = s.commands[:0]
	treeOrder := 0
	s.traverse(s.root, identityTransform, 1.0, false, LayerBackground, &treeOrder)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.mergeSort()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		stats.nodeCount = countNodes(s.root)
		t0 = time.Now()
	}

	s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings are printed, and per-frame timing stats
// go to the package logger at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
