package inkling

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// setupBenchScene creates a Scene with n rect nodes spread over the layers.
func setupBenchScene(n int) *Scene {
	s := NewScene()
	for i := 0; i < n; i++ {
		r := NewRect("r", 4, 4, ColorWhite)
		r.X = float64(i%64) * 4
		r.Y = float64(i/64) * 4
		s.Add(Layer(i%4), r)
	}
	return s
}

func BenchmarkSceneTraverseSort(b *testing.B) {
	s := setupBenchScene(400)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		traverseScene(s)
		s.mergeSort()
	}
}

func BenchmarkSceneDraw(b *testing.B) {
	s := setupBenchScene(400)
	screen := ebiten.NewImage(ScreenWidth, ScreenHeight)
	s.Draw(screen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Draw(screen)
	}
}

func BenchmarkCanvasStroke(b *testing.B) {
	c := NewGlyphCanvas()
	c.Smooth = true
	in := &Input{Held: true}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		in.X, in.Y = cellCenter(i%GlyphWidth, (i/GlyphWidth)%GlyphHeight)
		c.Sample(in)
	}
}

func BenchmarkCanvasExport(b *testing.B) {
	c := NewGlyphCanvas()
	for i := 0; i < GlyphWidth; i++ {
		c.SetCell(i, i, Ink)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.ExportImage()
	}
}
