package inkling

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// traverseScene runs traversal without drawing.
func traverseScene(s *Scene) {
	s.commands = s.commands[:0]
	treeOrder := 0
	s.traverse(s.root, identityTransform, 1.0, false, LayerBackground, &treeOrder)
}

// --- Command emission ---

func TestImageNodeEmitsOneCommand(t *testing.T) {
	s := NewScene()
	s.Add(LayerBackground, NewImageNode("img", ebiten.NewImage(4, 4)))

	traverseScene(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
}

func TestContainerEmitsNothing(t *testing.T) {
	s := NewScene()
	s.Add(LayerForeground, NewContainer("group"))

	traverseScene(s)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestInvisibleSubtreeSkipped(t *testing.T) {
	s := NewScene()
	parent := NewContainer("parent")
	parent.Visible = false
	parent.AddChild(NewRect("child", 4, 4, ColorWhite))
	s.Add(LayerForeground, parent)

	traverseScene(s)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0 for invisible subtree", len(s.commands))
	}
}

func TestZeroAlphaSkipped(t *testing.T) {
	s := NewScene()
	parent := NewContainer("faded")
	parent.Alpha = 0
	parent.AddChild(NewRect("child", 4, 4, ColorWhite))
	s.Add(LayerForeground, parent)

	traverseScene(s)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0 for zero alpha", len(s.commands))
	}
}

func TestAlphaMultipliesIntoColor(t *testing.T) {
	s := NewScene()
	parent := NewContainer("half")
	parent.Alpha = 0.5
	parent.AddChild(NewRect("child", 4, 4, Color{R: 1, G: 1, B: 1, A: 0.5}))
	s.Add(LayerForeground, parent)

	traverseScene(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	if got := s.commands[0].Color.A; got != 0.25 {
		t.Errorf("Color.A = %f, want 0.25", got)
	}
}

func TestDescendantsInheritLayer(t *testing.T) {
	s := NewScene()
	parent := NewContainer("fg")
	child := NewRect("child", 4, 4, ColorWhite)
	child.RenderLayer = LayerBackground // ignored below the top level
	parent.AddChild(child)
	s.Add(LayerForeground, parent)

	traverseScene(s)

	if s.commands[0].RenderLayer != LayerForeground {
		t.Errorf("RenderLayer = %v, want %v", s.commands[0].RenderLayer, LayerForeground)
	}
}

func TestRectTransformScales(t *testing.T) {
	s := NewScene()
	r := NewRect("r", 20, 10, ColorWhite)
	r.X, r.Y = 5, 7
	s.Add(LayerForeground, r)

	traverseScene(s)

	tr := s.commands[0].Transform
	if tr[0] != 20 || tr[3] != 10 || tr[4] != 5 || tr[5] != 7 {
		t.Errorf("Transform = %v, want scale (20, 10) at (5, 7)", tr)
	}
}

// --- Sorting ---

func TestMergeSortByLayerThenTreeOrder(t *testing.T) {
	s := NewScene()
	s.commands = []RenderCommand{
		{RenderLayer: LayerForeground, treeOrder: 1},
		{RenderLayer: LayerBackground, treeOrder: 2},
		{RenderLayer: LayerFrame, treeOrder: 3},
		{RenderLayer: LayerBackground, treeOrder: 4},
		{RenderLayer: LayerForeground, treeOrder: 5},
	}
	s.mergeSort()

	want := []int{2, 4, 3, 1, 5}
	for i, w := range want {
		if s.commands[i].treeOrder != w {
			t.Fatalf("order[%d] = %d, want %d (full: %+v)", i, s.commands[i].treeOrder, w, s.commands)
		}
	}
}

func TestMergeSortLargeIsSorted(t *testing.T) {
	s := NewScene()
	for i := range 37 {
		s.commands = append(s.commands, RenderCommand{
			RenderLayer: Layer((i * 7) % 4),
			treeOrder:   i,
		})
	}
	s.mergeSort()

	for i := 1; i < len(s.commands); i++ {
		if !commandLessOrEqual(s.commands[i-1], s.commands[i]) {
			t.Fatalf("commands not sorted at %d: %+v then %+v", i, s.commands[i-1], s.commands[i])
		}
	}
}

func TestSceneLayersSortRegardlessOfAddOrder(t *testing.T) {
	s := NewScene()
	s.Add(LayerForeground, NewRect("fg", 1, 1, ColorWhite))
	s.Add(LayerBackground, NewRect("bg", 1, 1, ColorWhite))

	traverseScene(s)
	s.mergeSort()

	if s.commands[0].RenderLayer != LayerBackground {
		t.Error("background should draw first")
	}
}

func TestZIndexOrdersSiblings(t *testing.T) {
	s := NewScene()
	parent := NewContainer("p")
	a := NewRect("a", 1, 1, ColorWhite)
	b := NewRect("b", 1, 1, ColorWhite)
	a.X = 3
	a.SetZIndex(5)
	parent.AddChild(a)
	parent.AddChild(b)
	s.Add(LayerForeground, parent)

	traverseScene(s)

	if len(s.commands) != 2 || s.commands[0].Transform != b.worldTransform {
		t.Error("lower ZIndex should draw first")
	}
	if s.commands[1].treeOrder <= s.commands[0].treeOrder {
		t.Error("tree order should follow the sorted children")
	}
}
