package inkling

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // register PNG decoding
	"io"
	"io/fs"
)

// AssetLoader resolves named resources. Errors for missing resources wrap
// ErrUnknownAsset.
type AssetLoader interface {
	Image(name string) (image.Image, error)
	Open(name string) (io.ReadCloser, error)
}

// DirAssets loads PNG images and raw files from a file system. Decoded
// images are cached by name.
type DirAssets struct {
	fsys  fs.FS
	cache map[string]image.Image
}

// NewDirAssets serves assets from fsys (typically os.DirFS or an embed.FS).
func NewDirAssets(fsys fs.FS) *DirAssets {
	return &DirAssets{fsys: fsys, cache: make(map[string]image.Image)}
}

// Image returns the named image, decoding it on first use.
func (d *DirAssets) Image(name string) (image.Image, error) {
	if img, ok := d.cache[name]; ok {
		return img, nil
	}
	img, err := d.decode(name)
	if err != nil {
		return nil, err
	}
	d.cache[name] = img
	return img, nil
}

func (d *DirAssets) decode(name string) (image.Image, error) {
	f, err := d.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: image %q", ErrUnknownAsset, name)
		}
		return nil, fmt.Errorf("inkling: open image %q: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("inkling: decode image %q: %w", name, err)
	}
	return img, nil
}

// Open returns a reader for the named file.
func (d *DirAssets) Open(name string) (io.ReadCloser, error) {
	f, err := d.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file %q", ErrUnknownAsset, name)
		}
		return nil, fmt.Errorf("inkling: open %q: %w", name, err)
	}
	return f, nil
}

// MemAssets serves images held in memory, such as procedurally drawn art.
// It has no raw files.
type MemAssets map[string]image.Image

// Image returns the named image.
func (m MemAssets) Image(name string) (image.Image, error) {
	img, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: image %q", ErrUnknownAsset, name)
	}
	return img, nil
}

// Open always fails; MemAssets holds images only.
func (m MemAssets) Open(name string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("%w: file %q", ErrUnknownAsset, name)
}

// Overlay tries each loader in order and returns the first hit.
type Overlay []AssetLoader

func (o Overlay) Image(name string) (image.Image, error) {
	for _, l := range o {
		img, err := l.Image(name)
		if err == nil {
			return img, nil
		}
		if !errors.Is(err, ErrUnknownAsset) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: image %q", ErrUnknownAsset, name)
}

func (o Overlay) Open(name string) (io.ReadCloser, error) {
	for _, l := range o {
		rc, err := l.Open(name)
		if err == nil {
			return rc, nil
		}
		if !errors.Is(err, ErrUnknownAsset) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: file %q", ErrUnknownAsset, name)
}
