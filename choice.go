package inkling

import "fmt"

// Choice layout: rows stacked at the bottom of the screen inside the frame.
const (
	ChoiceLeft      = 16
	ChoiceRowHeight = GlyphHeight + 4
	choiceBottom    = ScreenHeight - 12
)

var (
	choiceRowFill   = Color{1, 1, 1, 0.85}
	choiceRowBorder = Color{0, 0, 0, 1}
)

// ChoiceMatrix shows one row of symbols per option. A pointer press on a row
// jumps to the start of that option's target story.
type ChoiceMatrix struct {
	options   []ChoiceOption
	top       float64
	width     float64
	rowHeight float64
	jumper    Jumper
	node      *Node
}

// NewChoiceMatrix lays out options as rows ending just above the bottom of
// the frame.
func NewChoiceMatrix(glyphs *Glyphs, options []ChoiceOption, j Jumper) *ChoiceMatrix {
	m := &ChoiceMatrix{
		options:   options,
		width:     ScreenWidth - 2*ChoiceLeft,
		rowHeight: ChoiceRowHeight,
		jumper:    j,
	}
	m.top = choiceBottom - float64(len(options))*m.rowHeight

	m.node = NewContainer("choice")
	m.node.SetPosition(ChoiceLeft, m.top)
	m.node.Interactable = true
	m.node.HitShape = HitRect{Width: m.width, Height: float64(len(options)) * m.rowHeight}
	m.node.OnPointerDown = func(ctx PointerContext) {
		row, ok := m.RowAt(ctx.GlobalY)
		if !ok {
			return
		}
		if err := m.Select(row); err != nil {
			logger.Errorf("choice: %v", err)
		}
	}

	for i, opt := range options {
		y := float64(i) * m.rowHeight
		border := NewRect(fmt.Sprintf("choice-row-%d", i), m.width, m.rowHeight-1, choiceRowBorder)
		border.SetPosition(0, y)
		m.node.AddChild(border)
		fill := NewRect(fmt.Sprintf("choice-fill-%d", i), m.width-2, m.rowHeight-3, choiceRowFill)
		fill.SetPosition(1, y+1)
		m.node.AddChild(fill)

		line := NewSymbolLine(glyphs, opt.Symbols, 0)
		line.SetPosition(4, y+(m.rowHeight-1-GlyphHeight)/2)
		m.node.AddChild(line)
	}
	return m
}

// Node returns the matrix's scene node.
func (m *ChoiceMatrix) Node() *Node {
	return m.node
}

// Top returns the screen Y of the first row.
func (m *ChoiceMatrix) Top() float64 {
	return m.top
}

// RowAt returns the option row under screen coordinate y.
func (m *ChoiceMatrix) RowAt(y float64) (int, bool) {
	if y < m.top {
		return 0, false
	}
	row := int((y - m.top) / m.rowHeight)
	if row >= len(m.options) {
		return 0, false
	}
	return row, true
}

// Select jumps to the start of row's target story.
func (m *ChoiceMatrix) Select(row int) error {
	if row < 0 || row >= len(m.options) {
		return fmt.Errorf("inkling: choice row %d of %d", row, len(m.options))
	}
	return m.jumper.Jump(m.options[row].Target, 0)
}
