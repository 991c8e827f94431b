package inkling

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugLineHeight is the row pitch of ebitenutil's debug font.
const debugLineHeight = 16

// NewDebugReadout creates a node that prints the pointer position, the canvas
// cell under the pointer when the canvas is on screen, and the measured frame
// rate. The text image is re-rendered only when the text changes.
func NewDebugReadout(canvas *Canvas) *Node {
	img := ebiten.NewImage(ScreenWidth/2, 3*debugLineHeight)
	node := NewImageNode("debug_readout", img)

	var (
		last  string
		ticks int
		fps   float64
		b     strings.Builder
	)
	node.OnUpdate = func(in *Input) {
		if ticks%FrameInterval == 0 {
			fps = ebiten.ActualFPS()
		}
		ticks++

		b.Reset()
		fmt.Fprintf(&b, "cursor: (%d, %d)", int(in.X), int(in.Y))
		if canvas != nil && canvas.Node().Parent != nil {
			if cell, ok := canvas.Hover(); ok {
				fmt.Fprintf(&b, "\nselection: (%d, %d)", cell.X, cell.Y)
			}
		}
		fmt.Fprintf(&b, "\nfps: %.1f", fps)

		text := b.String()
		if text == last {
			return
		}
		last = text
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrintAt(img, text, 0, 0)
	}
	return node
}
