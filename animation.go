package inkling

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TickSeconds is the duration of one fixed update tick.
const TickSeconds = float32(1) / TicksPerSec

// TweenGroup animates up to 3 float64 fields on a Node simultaneously.
// Create one via TweenPosition, TweenAlpha or TweenEntrance and advance it
// with Update each tick. If the target node is disposed, the group stops
// immediately.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	fields [3]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target
// fields, and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Reset rewinds every tween to its start value.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
		val, _ := g.tweens[i].Update(0)
		*g.fields[i] = float64(val)
	}
	g.Done = false
	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Attach makes the group advance one tick whenever node updates, keeping any
// existing OnUpdate handler.
func (g *TweenGroup) Attach(node *Node) {
	prev := node.OnUpdate
	node.OnUpdate = func(in *Input) {
		g.Update(TickSeconds)
		if prev != nil {
			prev(in)
		}
	}
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over duration seconds.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}

// TweenEntrance fades node in from transparent while sliding it up by rise
// pixels into its current position.
func TweenEntrance(node *Node, rise float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(0, 1, duration, fn)
	g.tweens[1] = gween.New(float32(node.Y+rise), float32(node.Y), duration, fn)
	g.fields[0] = &node.Alpha
	g.fields[1] = &node.Y
	node.SetAlpha(0)
	node.SetPosition(node.X, node.Y+rise)
	return g
}
