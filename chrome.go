package inkling

import (
	"image"
	"image/color"
	"image/draw"
)

// PixelArt builds an image from rows of characters, one pixel per
// character. Characters missing from key are transparent. Rows may differ in
// length; the image is as wide as the longest row.
func PixelArt(rows []string, key map[byte]color.Color) *image.NRGBA {
	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, len(rows)))
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			if c, ok := key[r[x]]; ok {
				img.Set(x, y, c)
			}
		}
	}
	return img
}

var chromeKey = map[byte]color.Color{
	'#': color.NRGBA{0x00, 0x00, 0x00, 0xff},
	'W': color.NRGBA{0xff, 0xff, 0xff, 0xff},
	'G': color.NRGBA{0x00, 0xa8, 0x00, 0xff},
	'g': color.NRGBA{0x58, 0xd8, 0x54, 0xff},
}

// DefaultFrameBorder draws the screen-sized border decoration: a dark band
// around the edge with a light inner rule. The interior is transparent.
func DefaultFrameBorder() image.Image {
	const band = 4
	img := image.NewNRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	dark := image.NewUniform(color.NRGBA{0x30, 0x30, 0x50, 0xff})
	light := image.NewUniform(color.NRGBA{0xa0, 0xa0, 0xc8, 0xff})

	full := img.Bounds()
	inner := full.Inset(band)
	for _, r := range []image.Rectangle{
		image.Rect(full.Min.X, full.Min.Y, full.Max.X, inner.Min.Y),
		image.Rect(full.Min.X, inner.Max.Y, full.Max.X, full.Max.Y),
		image.Rect(full.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y),
		image.Rect(inner.Max.X, inner.Min.Y, full.Max.X, inner.Max.Y),
	} {
		draw.Draw(img, r, dark, image.Point{}, draw.Src)
	}

	rule := inner.Inset(-1)
	for x := rule.Min.X; x < rule.Max.X; x++ {
		img.Set(x, rule.Min.Y, light.C)
		img.Set(x, rule.Max.Y-1, light.C)
	}
	for y := rule.Min.Y; y < rule.Max.Y; y++ {
		img.Set(rule.Min.X, y, light.C)
		img.Set(rule.Max.X-1, y, light.C)
	}
	return img
}

var acceptArt = []string{
	" ###################### ",
	"#GGGGGGGGGGGGGGGGGGGGGG#",
	"#GggggggggggggggggggggG#",
	"#Ggggggggggggggggg#WggG#",
	"#Gggggggggggggggg#WWggG#",
	"#Ggggggggggggggg#WWgggG#",
	"#Ggggg#ggggggggg#WWgggG#",
	"#GgggWW#ggggggg#WWggggG#",
	"#GggggWW#ggggg#WWgggggG#",
	"#GgggggWW#ggg#WWggggggG#",
	"#GggggggWW#g#WWgggggggG#",
	"#GgggggggWW#WWggggggggG#",
	"#GggggggggWWWgggggggggG#",
	"#GgggggggggWggggggggggG#",
	"#GGGGGGGGGGGGGGGGGGGGGG#",
	" ###################### ",
}

// DefaultAcceptButton draws the check-mark button that accepts a glyph.
func DefaultAcceptButton() image.Image {
	return PixelArt(acceptArt, chromeKey)
}

var definesArt = []string{
	"                    ",
	"                    ",
	"                    ",
	"                    ",
	"                    ",
	"                    ",
	"   WWWWWWWWWWWWWW   ",
	"   WWWWWWWWWWWWWW   ",
	"                    ",
	"                    ",
	"                    ",
	"                    ",
	"   WWWWWWWWWWWWWW   ",
	"   WWWWWWWWWWWWWW   ",
	"                    ",
	"                    ",
	"                    ",
	"                    ",
	"                    ",
	"                    ",
}

// DefaultDefines draws the divider shown between an emblem and the canvas.
func DefaultDefines() image.Image {
	return PixelArt(definesArt, chromeKey)
}

// Design-step layout. The emblem, the divider and the canvas read left to
// right as "emblem defines glyph"; the accept button sits under the divider.
const (
	EmblemX  = CanvasX - 2*GlyphWidth - 3*8
	EmblemY  = CanvasY + (CanvasHeight-GlyphHeight)/2
	DefinesX = CanvasX - GlyphWidth - 8
	DefinesY = EmblemY
	AcceptX  = CanvasX - 8 - 24
	AcceptY  = CanvasY + CanvasHeight - 16
)
