package inkling

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewContainer("test")
	assertMatrix(t, "identity", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 0, 0})
}

func TestLocalTransformTranslation(t *testing.T) {
	n := NewContainer("test")
	n.X, n.Y = 10, 20
	assertMatrix(t, "translation", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformScaleAndTranslate(t *testing.T) {
	n := NewContainer("test")
	n.X, n.Y = CanvasX, CanvasY
	n.ScaleX, n.ScaleY = CanvasZoom, CanvasZoom
	assertMatrix(t, "zoomed", computeLocalTransform(n),
		[6]float64{CanvasZoom, 0, 0, CanvasZoom, CanvasX, CanvasY})
}

// --- multiplyAffine / invertAffine ---

func TestMultiplyIdentity(t *testing.T) {
	m := [6]float64{2, 0, 0, 3, 5, 7}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyNested(t *testing.T) {
	parent := [6]float64{2, 0, 0, 2, 10, 10}
	child := [6]float64{1, 0, 0, 1, 5, 3}
	// Child offset is scaled by the parent before the parent's translation.
	assertMatrix(t, "nested", multiplyAffine(parent, child), [6]float64{2, 0, 0, 2, 20, 16})
}

func TestInvertRoundTrip(t *testing.T) {
	m := [6]float64{4, 0, 0, 4, 168, 152}
	inv := invertAffine(m)
	assertMatrix(t, "m*inv", multiplyAffine(m, inv), identityTransform)
}

func TestInvertSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 1, 1}), identityTransform)
}

// --- World transforms ---

func TestUpdateWorldTransformPropagates(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	parent.X, parent.Y = 100, 50
	parent.ScaleX, parent.ScaleY = 2, 2
	child := NewContainer("child")
	child.X, child.Y = 5, 5
	root.AddChild(parent)
	parent.AddChild(child)

	updateWorldTransform(root, identityTransform, 1, false)

	wx, wy := transformPoint(child.worldTransform, 0, 0)
	assertNear(t, "wx", wx, 110)
	assertNear(t, "wy", wy, 60)
}

func TestUpdateWorldAlphaMultiplies(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	parent.Alpha = 0.5
	child := NewContainer("child")
	child.Alpha = 0.5
	root.AddChild(parent)
	parent.AddChild(child)

	updateWorldTransform(root, identityTransform, 1, false)
	assertNear(t, "worldAlpha", child.worldAlpha, 0.25)
}

func TestCleanSubtreeSkipsRecompute(t *testing.T) {
	root := NewContainer("root")
	n := NewContainer("n")
	root.AddChild(n)
	updateWorldTransform(root, identityTransform, 1, false)

	// Writing X without MarkDirty is not picked up.
	n.X = 40
	updateWorldTransform(root, identityTransform, 1, false)
	assertNear(t, "stale tx", n.worldTransform[4], 0)

	n.MarkDirty()
	updateWorldTransform(root, identityTransform, 1, false)
	assertNear(t, "fresh tx", n.worldTransform[4], 40)
}

func TestSettersMarkDirty(t *testing.T) {
	n := NewContainer("n")
	for name, set := range map[string]func(){
		"SetPosition": func() { n.SetPosition(1, 2) },
		"SetScale":    func() { n.SetScale(2, 2) },
		"SetAlpha":    func() { n.SetAlpha(0.5) },
	} {
		n.transformDirty = false
		set()
		if !n.transformDirty {
			t.Errorf("%s should mark dirty", name)
		}
	}
}

func TestWorldToLocalCanvasCell(t *testing.T) {
	root := NewContainer("root")
	n := NewContainer("canvas")
	n.X, n.Y = CanvasX, CanvasY
	n.ScaleX, n.ScaleY = CanvasZoom, CanvasZoom
	root.AddChild(n)
	updateWorldTransform(root, identityTransform, 1, false)

	lx, ly := n.WorldToLocal(CanvasX+9, CanvasY+13)
	assertNear(t, "lx", lx, 2.25)
	assertNear(t, "ly", ly, 3.25)
}
