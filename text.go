package inkling

import (
	"github.com/tanema/gween/ease"
)

// TextAlign controls horizontal alignment of symbol lines within the wrap width.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// LineBreak is a pseudo-symbol that forces the following symbols onto a new
// row.
const LineBreak = "\n"

// SymbolGap is the horizontal and vertical space between glyph slots.
const SymbolGap = 2

// SymbolLine is a run of symbols laid out as glyph slots, left to right,
// wrapping at WrapWidth. A symbol with no bound glyph keeps its slot empty.
type SymbolLine struct {
	Symbols   []string
	WrapWidth float64 // 0 = never wrap
	Align     TextAlign

	// Cached layout
	slots     []symbolSlot
	measuredW float64
	measuredH float64
}

// symbolSlot is the computed local position of one symbol.
type symbolSlot struct {
	symbol string
	x, y   float64
}

type symbolRow struct {
	start, end int // range into slots
	width      float64
}

// layout computes slot positions and the block size.
func (sl *SymbolLine) layout() []symbolSlot {
	sl.slots = sl.slots[:0]
	sl.measuredW, sl.measuredH = 0, 0

	const advance = GlyphWidth + SymbolGap
	var rows []symbolRow
	row := symbolRow{}
	cursorX, cursorY := 0.0, 0.0

	flush := func() {
		rows = append(rows, row)
		if row.width > sl.measuredW {
			sl.measuredW = row.width
		}
		cursorX = 0
		cursorY += GlyphHeight + SymbolGap
		row = symbolRow{start: len(sl.slots), end: len(sl.slots)}
	}

	for _, sym := range sl.Symbols {
		if sym == LineBreak {
			flush()
			continue
		}
		if sl.WrapWidth > 0 && cursorX > 0 && cursorX+GlyphWidth > sl.WrapWidth {
			flush()
		}
		sl.slots = append(sl.slots, symbolSlot{symbol: sym, x: cursorX, y: cursorY})
		row.end = len(sl.slots)
		row.width = cursorX + GlyphWidth
		cursorX += advance
	}
	if row.end > row.start || len(rows) == 0 {
		flush()
	}
	sl.measuredH = cursorY - SymbolGap
	if sl.measuredH < 0 {
		sl.measuredH = 0
	}

	alignW := sl.measuredW
	if sl.WrapWidth > 0 {
		alignW = sl.WrapWidth
	}
	for _, r := range rows {
		var offsetX float64
		switch sl.Align {
		case TextAlignCenter:
			offsetX = (alignW - r.width) / 2
		case TextAlignRight:
			offsetX = alignW - r.width
		}
		for i := r.start; i < r.end; i++ {
			sl.slots[i].x += offsetX
		}
	}
	return sl.slots
}

// Measure returns the laid-out block size in pixels.
func (sl *SymbolLine) Measure() (w, h float64) {
	sl.layout()
	return sl.measuredW, sl.measuredH
}

// Build creates a container with one image child per bound symbol, using the
// registry's images as they are at call time.
func (sl *SymbolLine) Build(name string, glyphs *Glyphs) *Node {
	root := NewContainer(name)
	for _, slot := range sl.layout() {
		img, ok := glyphs.Lookup(slot.symbol)
		if !ok {
			logger.Debugf("symbol %q has no glyph, leaving slot empty", slot.symbol)
			continue
		}
		child := NewImageNode("glyph:"+slot.symbol, img)
		child.SetPosition(slot.x, slot.y)
		root.AddChild(child)
	}
	return root
}

// NewSymbolLine lays out symbols left-aligned, wrapping at maxWidth.
func NewSymbolLine(glyphs *Glyphs, symbols []string, maxWidth float64) *Node {
	sl := &SymbolLine{Symbols: symbols, WrapWidth: maxWidth}
	return sl.Build("symbols", glyphs)
}

// Message bubble styling.
const (
	bubblePadding  = 4
	bubbleRise     = 6
	bubbleFadeSecs = 0.25
)

var (
	bubbleFill   = Color{1, 1, 1, 1}
	bubbleBorder = Color{0, 0, 0, 1}
)

// A bubble placed at or inside these limits keeps at least one symbol
// within the frame.
const (
	messageMaxX = ScreenWidth - 8 - GlyphWidth - 2*bubblePadding
	messageMaxY = ScreenHeight - 8 - GlyphHeight - 2*bubblePadding
)

// bubbleWrapWidth is the wrap width of a bubble at x that ends at the
// frame's inner edge. It never drops below one glyph.
func bubbleWrapWidth(x float64) float64 {
	return max(ScreenWidth-8-x-2*bubblePadding, GlyphWidth)
}

// NewMessageBubble builds a speech bubble holding symbols, with its top-left
// corner at (x, y). The bubble fades and rises into place over its first
// frames.
func NewMessageBubble(glyphs *Glyphs, symbols []string, x, y, maxWidth float64) *Node {
	sl := &SymbolLine{Symbols: symbols, WrapWidth: maxWidth}
	w, h := sl.Measure()
	w = max(w, GlyphWidth)
	h = max(h, GlyphHeight)

	bubble := NewContainer("message")
	bubble.SetPosition(x, y)

	outerW, outerH := w+2*bubblePadding, h+2*bubblePadding
	bubble.AddChild(NewRect("bubble-border", outerW, outerH, bubbleBorder))
	fill := NewRect("bubble-fill", outerW-2, outerH-2, bubbleFill)
	fill.SetPosition(1, 1)
	bubble.AddChild(fill)

	line := sl.Build("symbols", glyphs)
	line.SetPosition(bubblePadding, bubblePadding)
	bubble.AddChild(line)

	TweenEntrance(bubble, bubbleRise, bubbleFadeSecs, ease.OutQuad).Attach(bubble)
	return bubble
}
