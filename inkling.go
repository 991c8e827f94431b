package inkling

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Virtual screen and editor geometry. The frame buffer is ScreenWidth x
// ScreenHeight virtual pixels; ebiten upscales it to the window.
const (
	ScreenWidth  = 256
	ScreenHeight = 240
	ScreenZoom   = 2
	TicksPerSec  = 40

	GlyphWidth  = 20
	GlyphHeight = 20
	CanvasZoom  = 4

	CanvasWidth  = GlyphWidth * CanvasZoom
	CanvasHeight = GlyphHeight * CanvasZoom
	CanvasX      = ScreenWidth - 8 - CanvasWidth
	CanvasY      = ScreenHeight - 8 - CanvasHeight

	// FrameInterval is the number of ticks a sprite holds each frame
	// (0.5 s at 40 TPS).
	FrameInterval = 20
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used for solid color rectangles.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The right and bottom edges are exclusive so that cell arithmetic over the
// rectangle never yields an index one past the end.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Layer selects the compositing band a node is drawn in. Lower layers are
// drawn first.
type Layer uint8

const (
	LayerBackground Layer = iota // the step's stage: background and decorations
	LayerFrame                   // constant screen border
	LayerDebug                   // pointer/selection readout (debug builds only)
	LayerForeground              // step-specific interactive content
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerFrame:
		return "frame"
	case LayerDebug:
		return "debug"
	case LayerForeground:
		return "foreground"
	default:
		return "unknown"
	}
}
