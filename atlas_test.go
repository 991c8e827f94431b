package inkling

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"
)

// --- Test JSON fixtures ---

const singlePageJSON = `{
  "frames": {
    "walker.png": {
      "frame": {"x": 0, "y": 0, "w": 4, "h": 2},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 4, "h": 2},
      "sourceSize": {"w": 4, "h": 2}
    },
    "trimmed.png": {
      "frame": {"x": 4, "y": 0, "w": 2, "h": 2},
      "rotated": false,
      "trimmed": true,
      "spriteSourceSize": {"x": 1, "y": 1, "w": 2, "h": 2},
      "sourceSize": {"w": 4, "h": 4}
    },
    "rotated.png": {
      "frame": {"x": 6, "y": 0, "w": 2, "h": 1},
      "rotated": true,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 2, "h": 1},
      "sourceSize": {"w": 2, "h": 1}
    }
  },
  "meta": {"image": "atlas.png", "size": {"w": 8, "h": 2}}
}`

const multiPageJSON = `{
  "textures": [
    {"image": "page0.png", "frames": [
      {"filename": "sky", "frame": {"x": 0, "y": 0, "w": 2, "h": 2}}
    ]},
    {"image": "page1.png", "frames": [
      {"filename": "ground", "frame": {"x": 0, "y": 0, "w": 1, "h": 1}}
    ]}
  ]
}`

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
)

// testPage builds an 8x2 page: walker is red, trimmed is green, and the
// rotated column holds red above green.
func testPage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, red)
		}
		for x := 4; x < 6; x++ {
			img.SetNRGBA(x, y, green)
		}
	}
	img.SetNRGBA(6, 0, red)
	img.SetNRGBA(6, 1, green)
	return img
}

func TestLoadAtlasHashFormat(t *testing.T) {
	a, err := LoadAtlas([]byte(singlePageJSON), []image.Image{testPage()})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	want := []string{"rotated.png", "trimmed.png", "walker.png"}
	if got := a.Names(); !slices.Equal(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
	r, ok := a.Region("walker.png")
	if !ok {
		t.Fatal("walker.png missing")
	}
	if r.Frame != image.Rect(0, 0, 4, 2) || r.Page != 0 {
		t.Errorf("walker region = %+v", r)
	}
}

func TestLoadAtlasArrayFormat(t *testing.T) {
	pages := []image.Image{
		image.NewNRGBA(image.Rect(0, 0, 2, 2)),
		image.NewNRGBA(image.Rect(0, 0, 1, 1)),
	}
	a, err := LoadAtlas([]byte(multiPageJSON), pages)
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	sky, _ := a.Region("sky")
	ground, _ := a.Region("ground")
	if sky.Page != 0 || ground.Page != 1 {
		t.Errorf("pages = (%d, %d), want (0, 1)", sky.Page, ground.Page)
	}
	if ground.SourceW != 1 || ground.SourceH != 1 {
		t.Errorf("missing sourceSize should default to the frame: %+v", ground)
	}
}

func TestLoadAtlasPageOutOfRange(t *testing.T) {
	pages := []image.Image{image.NewNRGBA(image.Rect(0, 0, 2, 2))}
	if _, err := LoadAtlas([]byte(multiPageJSON), pages); err == nil {
		t.Error("expected error when a region references a missing page")
	}
}

func TestLoadAtlasBadJSON(t *testing.T) {
	if _, err := LoadAtlas([]byte(`{"frames":`), nil); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := LoadAtlas([]byte(`{"meta": {}}`), nil); err == nil {
		t.Error("expected error for JSON without frames")
	}
}

func TestAtlasImagePlain(t *testing.T) {
	a, _ := LoadAtlas([]byte(singlePageJSON), []image.Image{testPage()})
	img, err := a.Image("walker.png")
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if got := color.NRGBAModel.Convert(img.At(3, 1)); got != red {
		t.Errorf("pixel = %v, want red", got)
	}
}

func TestAtlasImageTrimmed(t *testing.T) {
	a, _ := LoadAtlas([]byte(singlePageJSON), []image.Image{testPage()})
	img, err := a.Image("trimmed.png")
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds = %v, want untrimmed 4x4", img.Bounds())
	}
	if _, _, _, alpha := img.At(0, 0).RGBA(); alpha != 0 {
		t.Error("trimmed margin should be transparent")
	}
	if got := color.NRGBAModel.Convert(img.At(1, 1)); got != green {
		t.Errorf("pixel at offset = %v, want green", got)
	}
}

func TestAtlasImageRotated(t *testing.T) {
	a, _ := LoadAtlas([]byte(singlePageJSON), []image.Image{testPage()})
	r, _ := a.Region("rotated.png")
	if r.Frame != image.Rect(6, 0, 7, 2) {
		t.Errorf("rotated frame = %v, want swapped dims", r.Frame)
	}

	img, err := a.Image("rotated.png")
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v, want 2x1", img.Bounds())
	}
	if got := color.NRGBAModel.Convert(img.At(0, 0)); got != red {
		t.Errorf("left pixel = %v, want red", got)
	}
	if got := color.NRGBAModel.Convert(img.At(1, 0)); got != green {
		t.Errorf("right pixel = %v, want green", got)
	}
}

func TestAtlasImageUnknown(t *testing.T) {
	a, _ := LoadAtlas([]byte(singlePageJSON), []image.Image{testPage()})
	if _, err := a.Image("nope"); !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("err = %v, want ErrUnknownAsset", err)
	}
}
