package inkling

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"slices"

	"github.com/tidwall/gjson"
)

// AtlasRegion describes a sub-rectangle within an atlas page.
type AtlasRegion struct {
	Page    int
	Frame   image.Rectangle // rect of the stored pixels within the page
	Rotated bool            // stored 90 degrees clockwise in the page
	SourceW int             // untrimmed width as authored
	SourceH int             // untrimmed height as authored
	OffsetX int             // trim offset within the untrimmed frame
	OffsetY int
}

// Atlas holds one or more atlas page images and a map of named regions.
// Pages stay in Go image space; callers upload the regions they need.
type Atlas struct {
	Pages   []image.Image
	regions map[string]AtlasRegion
}

// LoadAtlas parses TexturePacker JSON data and associates the given page
// images. Supports both the hash format (single "frames" object) and the
// array format ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []image.Image) (*Atlas, error) {
	if !gjson.ValidBytes(jsonData) {
		return nil, fmt.Errorf("inkling: atlas JSON is malformed")
	}
	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]AtlasRegion),
	}

	doc := gjson.ParseBytes(jsonData)
	if textures := doc.Get("textures"); textures.IsArray() {
		page := 0
		textures.ForEach(func(_, tex gjson.Result) bool {
			parseFrames(tex.Get("frames"), page, atlas)
			page++
			return true
		})
	} else if frames := doc.Get("frames"); frames.Exists() {
		parseFrames(frames, 0, atlas)
	} else {
		return nil, fmt.Errorf("inkling: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	for name, r := range atlas.regions {
		if r.Page >= len(pages) {
			return nil, fmt.Errorf("inkling: atlas region %q references page %d of %d", name, r.Page, len(pages))
		}
	}
	return atlas, nil
}

// ReadAtlas loads an atlas through loader: the JSON document from the named
// file and one image per page, in page order.
func ReadAtlas(loader AssetLoader, dataName string, pageNames ...string) (*Atlas, error) {
	rc, err := loader.Open(dataName)
	if err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("inkling: read atlas %s: %w", dataName, err)
	}
	pages := make([]image.Image, 0, len(pageNames))
	for _, name := range pageNames {
		img, err := loader.Image(name)
		if err != nil {
			return nil, fmt.Errorf("atlas page: %w", err)
		}
		pages = append(pages, img)
	}
	atlas, err := LoadAtlas(data, pages)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dataName, err)
	}
	return atlas, nil
}

// parseFrames accepts both {"name": {...}} and [{"filename": "name", ...}].
func parseFrames(frames gjson.Result, page int, atlas *Atlas) {
	frames.ForEach(func(key, f gjson.Result) bool {
		name := key.String()
		if frames.IsArray() {
			name = f.Get("filename").String()
		}
		atlas.regions[name] = frameToRegion(f, page)
		return true
	})
}

func frameToRegion(f gjson.Result, page int) AtlasRegion {
	x, y := int(f.Get("frame.x").Int()), int(f.Get("frame.y").Int())
	w, h := int(f.Get("frame.w").Int()), int(f.Get("frame.h").Int())
	r := AtlasRegion{
		Page:    page,
		Rotated: f.Get("rotated").Bool(),
		SourceW: int(f.Get("sourceSize.w").Int()),
		SourceH: int(f.Get("sourceSize.h").Int()),
		OffsetX: int(f.Get("spriteSourceSize.x").Int()),
		OffsetY: int(f.Get("spriteSourceSize.y").Int()),
	}
	if r.Rotated {
		r.Frame = image.Rect(x, y, x+h, y+w)
	} else {
		r.Frame = image.Rect(x, y, x+w, y+h)
	}
	if r.SourceW == 0 || r.SourceH == 0 {
		r.SourceW, r.SourceH = w, h
	}
	return r
}

// Region returns the named region.
func (a *Atlas) Region(name string) (AtlasRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Names returns the region names in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.regions))
	for name := range a.regions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Image returns the named region as a standalone image at its untrimmed size,
// un-rotated. The result does not share pixels with the page.
func (a *Atlas) Image(name string) (image.Image, error) {
	r, ok := a.regions[name]
	if !ok {
		return nil, fmt.Errorf("%w: atlas region %q", ErrUnknownAsset, name)
	}
	page := a.Pages[r.Page]
	dst := image.NewNRGBA(image.Rect(0, 0, r.SourceW, r.SourceH))

	if !r.Rotated {
		at := image.Pt(r.OffsetX, r.OffsetY)
		draw.Draw(dst, r.Frame.Sub(r.Frame.Min).Add(at), page, r.Frame.Min, draw.Src)
		return dst, nil
	}

	// Stored clockwise: the page column runs along the sprite's rows.
	w, h := r.Frame.Dy(), r.Frame.Dx()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := page.At(r.Frame.Min.X+h-1-y, r.Frame.Min.Y+x)
			dst.Set(r.OffsetX+x, r.OffsetY+y, c)
		}
	}
	return dst, nil
}

// Open always fails; an atlas serves its regions as images only. Together
// with Image this makes an Atlas an AssetLoader for use in an Overlay.
func (a *Atlas) Open(name string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("%w: file %q", ErrUnknownAsset, name)
}
