package main

import (
	"image"
	"image/color"
	"time"

	"github.com/phanxgames/inkling"
)

// Procedural stand-ins for every image and track the story names, so the
// demo runs without an asset directory.

var artKey = map[byte]color.Color{
	'#': color.NRGBA{0x20, 0x18, 0x18, 0xff},
	'r': color.NRGBA{0xd8, 0x28, 0x00, 0xff},
	'o': color.NRGBA{0xf8, 0x78, 0x00, 0xff},
	'y': color.NRGBA{0xf8, 0xd8, 0x40, 0xff},
	'b': color.NRGBA{0x00, 0x58, 0xf8, 0xff},
	'c': color.NRGBA{0x68, 0xb8, 0xf8, 0xff},
	'w': color.NRGBA{0xe8, 0xe0, 0xd0, 0xff},
	's': color.NRGBA{0xf0, 0xb8, 0x88, 0xff},
	'g': color.NRGBA{0x30, 0x90, 0x30, 0xff},
	'm': color.NRGBA{0x88, 0x48, 0x20, 0xff},
}

func proceduralAssets() inkling.MemAssets {
	return inkling.MemAssets{
		"backgrounds/sky.png":   gradient(color.NRGBA{0x38, 0x78, 0xd8, 0xff}, color.NRGBA{0xb0, 0xd8, 0xf8, 0xff}, false),
		"backgrounds/night.png": gradient(color.NRGBA{0x08, 0x08, 0x28, 0xff}, color.NRGBA{0x30, 0x28, 0x60, 0xff}, true),
		"sheets/walker.png":     walkerSheet(),
		"emblems/fire.png":      inkling.PixelArt(fireArt, artKey),
		"emblems/water.png":     inkling.PixelArt(waterArt, artKey),
		"emblems/house.png":     inkling.PixelArt(houseArt, artKey),
		"emblems/person.png":    inkling.PixelArt(personArt, artKey),
	}
}

// gradient fills the screen top to bottom and lays a strip of ground along
// the bottom. Night skies get a fixed scatter of stars.
func gradient(top, bottom color.NRGBA, stars bool) image.Image {
	const ground = 48
	img := image.NewNRGBA(image.Rect(0, 0, inkling.ScreenWidth, inkling.ScreenHeight))
	skyH := inkling.ScreenHeight - ground
	for y := 0; y < inkling.ScreenHeight; y++ {
		c := color.NRGBA{0x30, 0x70, 0x28, 0xff}
		if y < skyH {
			t := float64(y) / float64(skyH)
			c = color.NRGBA{
				R: lerp(top.R, bottom.R, t),
				G: lerp(top.G, bottom.G, t),
				B: lerp(top.B, bottom.B, t),
				A: 0xff,
			}
		}
		for x := 0; x < inkling.ScreenWidth; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	if stars {
		seed := uint32(7)
		for range 40 {
			seed = seed*1664525 + 1013904223
			x := int(seed>>8) % inkling.ScreenWidth
			y := int(seed>>20) % (skyH - 8)
			img.SetNRGBA(x, y, color.NRGBA{0xff, 0xff, 0xe0, 0xff})
		}
	}
	return img
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// walkerSheet packs four 16x24 walking frames side by side.
func walkerSheet() image.Image {
	sheet := image.NewNRGBA(image.Rect(0, 0, 64, 24))
	for i, legs := range walkerLegs {
		frame := inkling.PixelArt(append(append([]string(nil), walkerBody...), legs...), artKey)
		for y := 0; y < frame.Bounds().Dy(); y++ {
			for x := 0; x < frame.Bounds().Dx(); x++ {
				sheet.Set(i*16+x, y, frame.At(x, y))
			}
		}
	}
	return sheet
}

var walkerBody = []string{
	"      ####      ",
	"     #ssss#     ",
	"     #s#s##     ",
	"     #ssss#     ",
	"      #ss#      ",
	"     ######     ",
	"    #rrrrrr#    ",
	"   #rrrrrrrr#   ",
	"   #s#rrrr#s#   ",
	"   #s#rrrr#s#   ",
	"    # #rr# #    ",
	"      #mm#      ",
	"     #mmmm#     ",
	"     #mmmm#     ",
	"     #m##m#     ",
}

var walkerLegs = [4][]string{
	{
		"     #m# #m#    ",
		"     #m# #m#    ",
		"     #m# #m#    ",
		"    #m#   #m#   ",
		"    #m#   #m#   ",
		"    #m#   #m#   ",
		"   ###     ###  ",
		"   ###     ###  ",
		"                ",
	},
	{
		"     #m##m#     ",
		"     #m##m#     ",
		"     #m##m#     ",
		"     #m##m#     ",
		"     #m##m#     ",
		"     #m##m#     ",
		"    ###  ###    ",
		"    ###  ###    ",
		"                ",
	},
	{
		"    #m#  #m#    ",
		"    #m#  #m#    ",
		"   #m#    #m#   ",
		"   #m#    #m#   ",
		"  #m#      #m#  ",
		"  #m#      #m#  ",
		" ###        ### ",
		" ###        ### ",
		"                ",
	},
	{
		"     #m##m#     ",
		"     #m##m#     ",
		"     #m##m#     ",
		"     #m##m#     ",
		"     #m##m#     ",
		"     #m##m#     ",
		"    ###  ###    ",
		"    ###  ###    ",
		"                ",
	},
}

var fireArt = []string{
	"          #         ",
	"         #r#        ",
	"         #r#        ",
	"        #rr#        ",
	"       #rrr#   #    ",
	"      #rrrr#  #r#   ",
	"     #rrorr# #rr#   ",
	"     #rroorr#rrr#   ",
	"    #rrooorrrrrr#   ",
	"    #rroooorrorr#   ",
	"    #rrooyooroorr#  ",
	"   #rrooyyyooooor#  ",
	"   #rrooyyyyoooor#  ",
	"   #rroyyyyyyoorr#  ",
	"   #rroyyyyyyoorr#  ",
	"    #rroyyyyoorr#   ",
	"    #rrooyyoorrr#   ",
	"     #rrroorrrr#    ",
	"      ##rrrrr##     ",
	"        #####       ",
}

var waterArt = []string{
	"                    ",
	"                    ",
	"                    ",
	"   ###     ###      ",
	"  #ccc#   #ccc#     ",
	" #c   c# #c   c#   #",
	"#c     ###     c###c",
	"                    ",
	"                    ",
	"   ###     ###      ",
	"  #bbb#   #bbb#     ",
	" #b   b# #b   b#   #",
	"#b     ###     b###b",
	"                    ",
	"                    ",
	"   ###     ###      ",
	"  #ccc#   #ccc#     ",
	" #c   c# #c   c#   #",
	"#c     ###     c###c",
	"                    ",
}

var houseArt = []string{
	"         ##         ",
	"        #rr#        ",
	"       #rrrr#       ",
	"      #rrrrrr#      ",
	"     #rrrrrrrr#     ",
	"    #rrrrrrrrrr#    ",
	"   #rrrrrrrrrrrr#   ",
	"  #rrrrrrrrrrrrrr#  ",
	" ################## ",
	"  #wwwwwwwwwwwwww#  ",
	"  #w###wwwwww###w#  ",
	"  #w#c#wwwwww#c#w#  ",
	"  #w###wwwwww###w#  ",
	"  #wwwwww##wwwwww#  ",
	"  #wwwww#mm#wwwww#  ",
	"  #wwwww#mm#wwwww#  ",
	"  #wwwww#mm#wwwww#  ",
	"  #wwwww#mm#wwwww#  ",
	"  ################  ",
	"                    ",
}

var personArt = []string{
	"        ####        ",
	"       #ssss#       ",
	"      #ssssss#      ",
	"      #s#ss#s#      ",
	"      #ssssss#      ",
	"       #ssss#       ",
	"        ####        ",
	"      ########      ",
	"     #bbbbbbbb#     ",
	"    #s#bbbbbb#s#    ",
	"    #s#bbbbbb#s#    ",
	"    #s#bbbbbb#s#    ",
	"     ##bbbbbb##     ",
	"      #mmmmmm#      ",
	"      #mm##mm#      ",
	"      #mm##mm#      ",
	"      #mm##mm#      ",
	"      #mm##mm#      ",
	"     ###m##m###     ",
	"     ####  ####     ",
}

// proceduralTones registers generated melodies for tracks that have no
// decoded audio yet.
func proceduralTones(j *inkling.Jukebox) error {
	const note = 240 * time.Millisecond
	melodies := map[string]struct {
		noteLen time.Duration
		freqs   []float64
	}{
		"theme": {note, []float64{392, 440, 494, 587, 494, 440, 392, 0, 330, 392, 440, 392, 330, 294, 330, 0}},
		"calm":  {2 * note, []float64{262, 330, 392, 330, 294, 349, 440, 0}},
	}
	for id, m := range melodies {
		if j.Has(id) {
			continue
		}
		if err := j.AddTone(id, m.noteLen, m.freqs...); err != nil {
			return err
		}
	}
	return nil
}
