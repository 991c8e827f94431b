package inkling

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// PaletteCode is a small enumerated color stored in one canvas cell.
type PaletteCode uint8

const (
	Transparent PaletteCode = iota
	Ink
	Paper
	Red
	Green
	Blue
	Yellow

	paletteSize
)

// Palette maps every PaletteCode to its color. Transparent exports as a fully
// transparent pixel.
var Palette = color.Palette{
	Transparent: color.NRGBA{},
	Ink:         color.NRGBA{0x00, 0x00, 0x00, 0xff},
	Paper:       color.NRGBA{0xff, 0xff, 0xff, 0xff},
	Red:         color.NRGBA{0xd8, 0x28, 0x00, 0xff},
	Green:       color.NRGBA{0x00, 0xa8, 0x00, 0xff},
	Blue:        color.NRGBA{0x00, 0x58, 0xf8, 0xff},
	Yellow:      color.NRGBA{0xf8, 0xb8, 0x00, 0xff},
}

// Valid reports whether p is a known palette code.
func (p PaletteCode) Valid() bool {
	return p < paletteSize
}

// Canvas is the glyph editor: a fixed grid of palette codes shown zoomed on
// screen. Holding the pointer over the canvas paints the cell under it.
// The grid never changes size after construction.
type Canvas struct {
	cols, rows int
	zoom       int
	bounds     Rect

	cells []PaletteCode

	// Brush is the code painted by held samples. Defaults to Ink.
	Brush PaletteCode
	// Smooth fills the straight line between consecutive held cells so fast
	// strokes leave no gaps. Off by default.
	Smooth bool

	hover    image.Point
	hovering bool
	last     image.Point
	stroking bool

	dirty bool
	pix   *image.NRGBA
	img   *ebiten.Image
	node  *Node
}

// NewCanvas creates a cols x rows canvas whose cells are zoom screen pixels
// wide, with its top-left corner at (x, y).
func NewCanvas(cols, rows, zoom int, x, y float64) *Canvas {
	if cols <= 0 || rows <= 0 || zoom <= 0 {
		panic("inkling: canvas dimensions must be positive")
	}
	c := &Canvas{
		cols:   cols,
		rows:   rows,
		zoom:   zoom,
		bounds: Rect{X: x, Y: y, Width: float64(cols * zoom), Height: float64(rows * zoom)},
		cells:  make([]PaletteCode, cols*rows),
		Brush:  Ink,
		pix:    image.NewNRGBA(image.Rect(0, 0, cols, rows)),
		dirty:  true,
	}
	c.node = NewContainer("canvas")
	c.node.SetPosition(x, y)
	c.node.SetScale(float64(zoom), float64(zoom))
	c.node.OnUpdate = c.Sample
	return c
}

// NewGlyphCanvas creates the standard glyph editor at its screen position.
func NewGlyphCanvas() *Canvas {
	return NewCanvas(GlyphWidth, GlyphHeight, CanvasZoom, CanvasX, CanvasY)
}

// Node returns the scene node that displays the canvas. It samples the
// pointer on every scene update.
func (c *Canvas) Node() *Node {
	return c.node
}

// Size returns the grid dimensions in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Bounds returns the canvas rectangle in screen pixels.
func (c *Canvas) Bounds() Rect {
	return c.bounds
}

// PointerInBounds reports whether (x, y) lies on the canvas.
func (c *Canvas) PointerInBounds(x, y float64) bool {
	return c.bounds.Contains(x, y)
}

// CellAt converts a screen position to a grid cell.
func (c *Canvas) CellAt(x, y float64) (image.Point, bool) {
	if !c.PointerInBounds(x, y) {
		return image.Point{}, false
	}
	z := float64(c.zoom)
	col := int((x - c.bounds.X) / z)
	row := int((y - c.bounds.Y) / z)
	return image.Pt(col, row), true
}

// Sample consumes one frame of pointer facts. While the pointer is held on
// the canvas the cell under it is painted with Brush. Unheld frames only move
// the hover cell.
func (c *Canvas) Sample(in *Input) {
	cell, ok := c.CellAt(in.X, in.Y)
	c.hover, c.hovering = cell, ok
	if !ok || !in.Held {
		c.stroking = false
		return
	}
	if c.Smooth && c.stroking {
		c.line(c.last, cell)
	} else {
		c.paint(cell)
	}
	c.last, c.stroking = cell, true
}

func (c *Canvas) paint(p image.Point) {
	c.paintCode(p.X, p.Y, c.Brush)
}

// line paints every cell on the Bresenham line from a to b inclusive.
func (c *Canvas) line(a, b image.Point) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	for {
		c.paint(a)
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Clear resets every cell to Transparent and ends any stroke in progress.
func (c *Canvas) Clear() {
	clear(c.cells)
	c.stroking = false
	c.dirty = true
}

// Cell returns the code at (col, row). Out-of-range cells read Transparent.
func (c *Canvas) Cell(col, row int) PaletteCode {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return Transparent
	}
	return c.cells[row*c.cols+col]
}

// SetCell writes a code directly, bypassing the pointer.
func (c *Canvas) SetCell(col, row int, code PaletteCode) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows || !code.Valid() {
		return
	}
	c.paintCode(col, row, code)
}

func (c *Canvas) paintCode(col, row int, code PaletteCode) {
	i := row*c.cols + col
	if c.cells[i] != code {
		c.cells[i] = code
		c.dirty = true
	}
}

// Inked returns the cells holding any non-transparent code, in row-major order.
func (c *Canvas) Inked() []image.Point {
	var pts []image.Point
	for i, code := range c.cells {
		if code != Transparent {
			pts = append(pts, image.Pt(i%c.cols, i/c.cols))
		}
	}
	return pts
}

// Hover returns the cell under the pointer as of the last Sample.
func (c *Canvas) Hover() (image.Point, bool) {
	return c.hover, c.hovering
}

// ExportImage renders the grid one pixel per cell. The result shares nothing
// with the canvas.
func (c *Canvas) ExportImage() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.cols, c.rows), Palette)
	for i, code := range c.cells {
		img.Pix[i] = uint8(code)
	}
	return img
}

// Dirty reports whether the on-screen texture is stale.
func (c *Canvas) Dirty() bool {
	return c.dirty
}

// Flush uploads the grid to the canvas texture if it changed since the last
// flush. Transparent cells show as paper.
func (c *Canvas) Flush() {
	if !c.dirty {
		return
	}
	if c.img == nil {
		c.img = ebiten.NewImage(c.cols, c.rows)
		c.node.SetImage(c.img)
	}
	for i, code := range c.cells {
		if code == Transparent {
			code = Paper
		}
		col := Palette[code].(color.NRGBA)
		c.pix.Pix[i*4+0] = col.R
		c.pix.Pix[i*4+1] = col.G
		c.pix.Pix[i*4+2] = col.B
		c.pix.Pix[i*4+3] = col.A
	}
	c.img.WritePixels(c.pix.Pix)
	c.dirty = false
}
