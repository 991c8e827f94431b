package inkling

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

type glyphEntry struct {
	src image.Image
	img *ebiten.Image
}

// Glyphs is the symbol vocabulary: a registry from symbol name to its drawn
// glyph. Names are declared up front and each may be bound exactly once.
// Renderers borrow the uploaded images; the registry owns them.
type Glyphs struct {
	width, height int
	names         []string
	entries       map[string]*glyphEntry
}

// NewGlyphs declares the vocabulary. Every name starts unbound.
func NewGlyphs(names ...string) *Glyphs {
	g := &Glyphs{
		width:   GlyphWidth,
		height:  GlyphHeight,
		entries: make(map[string]*glyphEntry, len(names)),
	}
	for _, name := range names {
		g.Declare(name)
	}
	return g
}

// Declare adds name to the vocabulary. Declaring a known name is a no-op.
func (g *Glyphs) Declare(name string) {
	if _, ok := g.entries[name]; ok {
		return
	}
	g.entries[name] = &glyphEntry{}
	g.names = append(g.names, name)
}

// Bind stores img as the glyph for name. The first binding wins: binding an
// already bound name returns ErrGlyphBound and leaves the glyph unchanged.
func (g *Glyphs) Bind(name string, img image.Image) error {
	e, ok := g.entries[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
	}
	if e.src != nil {
		return fmt.Errorf("%w: %q", ErrGlyphBound, name)
	}
	if b := img.Bounds(); b.Dx() != g.width || b.Dy() != g.height {
		return fmt.Errorf("%w: %q is %dx%d, want %dx%d", ErrGlyphSize, name, b.Dx(), b.Dy(), g.width, g.height)
	}
	e.src = img
	logger.Debugf("glyph %q bound", name)
	return nil
}

// Lookup returns the uploaded image for name. The same image is returned on
// every call once bound. Unbound and undeclared names report false.
func (g *Glyphs) Lookup(name string) (*ebiten.Image, bool) {
	e, ok := g.entries[name]
	if !ok || e.src == nil {
		return nil, false
	}
	if e.img == nil {
		e.img = ebiten.NewImageFromImage(e.src)
	}
	return e.img, true
}

// Source returns the bound image in Go image space.
func (g *Glyphs) Source(name string) (image.Image, bool) {
	e, ok := g.entries[name]
	if !ok || e.src == nil {
		return nil, false
	}
	return e.src, true
}

// Declared reports whether name is part of the vocabulary.
func (g *Glyphs) Declared(name string) bool {
	_, ok := g.entries[name]
	return ok
}

// Bound reports whether name has a glyph.
func (g *Glyphs) Bound(name string) bool {
	e, ok := g.entries[name]
	return ok && e.src != nil
}

// Names returns the vocabulary in declaration order.
func (g *Glyphs) Names() []string {
	return append([]string(nil), g.names...)
}
