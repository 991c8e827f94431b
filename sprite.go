package inkling

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
)

// SliceSheet cuts the clip rectangle of a sprite sheet into cols x rows
// equally sized frames, row-major. Each frame is an independent copy.
func SliceSheet(sheet image.Image, clip image.Rectangle, cols, rows int) ([]image.Image, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("inkling: sheet grid %dx%d must be positive", cols, rows)
	}
	if clip.Empty() {
		clip = sheet.Bounds()
	}
	if !clip.In(sheet.Bounds()) {
		return nil, fmt.Errorf("inkling: clip %v outside sheet bounds %v", clip, sheet.Bounds())
	}
	fw, fh := clip.Dx()/cols, clip.Dy()/rows
	if fw == 0 || fh == 0 {
		return nil, fmt.Errorf("inkling: clip %v too small for %dx%d grid", clip, cols, rows)
	}

	frames := make([]image.Image, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			src := image.Rect(0, 0, fw, fh).Add(clip.Min).Add(image.Pt(c*fw, r*fh))
			dst := image.NewNRGBA(image.Rect(0, 0, fw, fh))
			draw.Draw(dst, dst.Bounds(), sheet, src.Min, draw.Src)
			frames = append(frames, dst)
		}
	}
	return frames, nil
}

// FlipHorizontal returns a mirrored copy of img.
func FlipHorizontal(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(b.Dx()-1-x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// FrameSet is an immutable, shared sequence of animation frames, optionally
// with pre-mirrored copies. Sprites spawned from one set share its images.
type FrameSet struct {
	Name     string
	frames   []*ebiten.Image
	mirrored []*ebiten.Image
}

// NewFrameSet uploads frames. When mirror is set, a horizontally flipped copy
// of every frame is prepared as well.
func NewFrameSet(name string, frames []image.Image, mirror bool) (*FrameSet, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("inkling: frame set %q has no frames", name)
	}
	fs := &FrameSet{Name: name, frames: make([]*ebiten.Image, len(frames))}
	for i, f := range frames {
		fs.frames[i] = ebiten.NewImageFromImage(f)
	}
	if mirror {
		fs.mirrored = make([]*ebiten.Image, len(frames))
		for i, f := range frames {
			fs.mirrored[i] = ebiten.NewImageFromImage(FlipHorizontal(f))
		}
	}
	return fs, nil
}

// Len returns the number of frames.
func (fs *FrameSet) Len() int {
	return len(fs.frames)
}

// HasMirror reports whether mirrored frames were prepared.
func (fs *FrameSet) HasMirror() bool {
	return fs.mirrored != nil
}

// Frame returns frame i of the normal or mirrored sequence.
func (fs *FrameSet) Frame(i int, mirrored bool) *ebiten.Image {
	if mirrored && fs.mirrored != nil {
		return fs.mirrored[i]
	}
	return fs.frames[i]
}

// Spawn creates an independent sprite at (x, y). Mirrored falls back to the
// normal frames when the set has no mirror.
func (fs *FrameSet) Spawn(x, y float64, mirrored bool) *Sprite {
	s := &Sprite{set: fs, mirrored: mirrored && fs.mirrored != nil}
	s.node = NewImageNode(fs.Name, fs.Frame(0, s.mirrored))
	s.node.SetPosition(x, y)
	s.node.OnUpdate = s.update
	return s
}

// Sprite is one on-screen instance of a FrameSet. It cycles through the
// frames forever, holding each for FrameInterval ticks. Its timer and
// position are its own.
type Sprite struct {
	set      *FrameSet
	mirrored bool
	tick     int
	index    int
	node     *Node
}

// Node returns the sprite's scene node.
func (s *Sprite) Node() *Node {
	return s.node
}

// Set returns the shared frame set.
func (s *Sprite) Set() *FrameSet {
	return s.set
}

// Mirrored reports whether the sprite draws mirrored frames.
func (s *Sprite) Mirrored() bool {
	return s.mirrored
}

// Frame returns the current frame index.
func (s *Sprite) Frame() int {
	return s.index
}

// Clone spawns a new sprite from the same frames at (x, y) with a fresh timer.
func (s *Sprite) Clone(x, y float64, mirrored bool) *Sprite {
	return s.set.Spawn(x, y, mirrored)
}

// Restart rewinds the sprite to its first frame.
func (s *Sprite) Restart() {
	s.tick, s.index = 0, 0
	s.node.SetImage(s.set.Frame(0, s.mirrored))
}

// Advance runs the sprite's timer forward by n ticks.
func (s *Sprite) Advance(n int) {
	for range n {
		s.step()
	}
}

func (s *Sprite) update(*Input) {
	s.step()
}

func (s *Sprite) step() {
	s.tick++
	if s.tick < FrameInterval {
		return
	}
	s.tick = 0
	s.index = (s.index + 1) % s.set.Len()
	s.node.SetImage(s.set.Frame(s.index, s.mirrored))
}
