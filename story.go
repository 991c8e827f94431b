package inkling

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Library ---

// Library holds every image the story needs, loaded once before the game
// loop starts.
type Library struct {
	Backgrounds map[string]*ebiten.Image
	Sheets      map[string]*FrameSet
	Emblems     map[string]*ebiten.Image // symbol -> hint image

	Frame   *ebiten.Image
	Accept  *ebiten.Image
	Defines *ebiten.Image
}

// LoadLibrary resolves every asset named by script through loader. When the
// script names an atlas, its regions are tried before loader. Any missing or
// undecodable asset fails the whole load.
func LoadLibrary(script *Script, loader AssetLoader) (*Library, error) {
	lib := &Library{
		Backgrounds: make(map[string]*ebiten.Image),
		Sheets:      make(map[string]*FrameSet),
		Emblems:     make(map[string]*ebiten.Image),
	}

	if script.Atlas != nil {
		atlas, err := ReadAtlas(loader, script.Atlas.Data, script.Atlas.Pages...)
		if err != nil {
			return nil, err
		}
		loader = Overlay{atlas, loader}
	}

	chrome := func(name string, fallback func() image.Image) (*ebiten.Image, error) {
		if name == "" {
			return ebiten.NewImageFromImage(fallback()), nil
		}
		img, err := loader.Image(name)
		if err != nil {
			return nil, fmt.Errorf("chrome: %w", err)
		}
		return ebiten.NewImageFromImage(img), nil
	}
	var err error
	if lib.Frame, err = chrome(script.Chrome.Frame, DefaultFrameBorder); err != nil {
		return nil, err
	}
	if lib.Accept, err = chrome(script.Chrome.Accept, DefaultAcceptButton); err != nil {
		return nil, err
	}
	if lib.Defines, err = chrome(script.Chrome.Defines, DefaultDefines); err != nil {
		return nil, err
	}

	for name, sh := range script.Sheets {
		img, err := loader.Image(sh.Image)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		var clip image.Rectangle
		if len(sh.Clip) == 4 {
			clip = image.Rect(sh.Clip[0], sh.Clip[1], sh.Clip[0]+sh.Clip[2], sh.Clip[1]+sh.Clip[3]).
				Add(img.Bounds().Min)
		}
		frames, err := SliceSheet(img, clip, sh.Cols, sh.Rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		if lib.Sheets[name], err = NewFrameSet(name, frames, sh.Mirror); err != nil {
			return nil, err
		}
	}

	for sym, name := range script.Emblems {
		img, err := loader.Image(name)
		if err != nil {
			return nil, fmt.Errorf("emblem %s: %w", sym, err)
		}
		lib.Emblems[sym] = ebiten.NewImageFromImage(img)
	}

	for _, id := range script.StoryIDs() {
		for _, st := range script.Stories[id] {
			bg := st.stage().Background
			if bg == "" || lib.Backgrounds[bg] != nil {
				continue
			}
			img, err := loader.Image(bg)
			if err != nil {
				return nil, fmt.Errorf("background: %w", err)
			}
			lib.Backgrounds[bg] = ebiten.NewImageFromImage(img)
		}
	}
	return lib, nil
}

func (d StepDoc) stage() StageDoc {
	switch {
	case d.Animation != nil:
		return d.Animation.Stage
	case d.Design != nil:
		return d.Design.Stage
	case d.Message != nil:
		return d.Message.Stage
	case d.Choice != nil:
		return d.Choice.Stage
	}
	return StageDoc{}
}

// --- Stage ---

// Stage is a step's backdrop: an optional background image and the step's
// own sprite instances. Stages never share sprites.
type Stage struct {
	background *Node
	Sprites    []*Sprite
}

func newStage(doc StageDoc, lib *Library) *Stage {
	st := &Stage{}
	if img := lib.Backgrounds[doc.Background]; img != nil {
		st.background = NewImageNode("background:"+doc.Background, img)
	}
	for _, sp := range doc.Sprites {
		st.Sprites = append(st.Sprites, lib.Sheets[sp.Sheet].Spawn(sp.X, sp.Y, sp.Mirrored))
	}
	return st
}

// mount adds the stage to the scene's background layer. Sprites restart from
// their first frame on every entry and are depth sorted by their bottom edge,
// so a sprite lower on screen draws over one behind it.
func (st *Stage) mount(scene *Scene) {
	if st.background != nil {
		scene.Add(LayerBackground, st.background)
	}
	for _, sp := range st.Sprites {
		sp.Restart()
		n := sp.Node()
		_, h := nodeDimensions(n)
		n.SetZIndex(max(int(n.Y+h), 1))
		scene.Add(LayerBackground, n)
	}
}

// --- Steps ---

// Step is one beat of a story. The set of implementations is closed:
// AnimationStep, DesignGlyphStep, MessageStep, ChoiceStep and MusicCueStep.
type Step interface {
	isStep()
}

// AnimationStep shows its stage for Duration ticks and then advances.
type AnimationStep struct {
	Duration int
	Stage    *Stage
}

// DesignGlyphStep asks the player to draw the glyph for Symbol.
type DesignGlyphStep struct {
	Symbol string
	Emblem *ebiten.Image // nil shows an empty hint
	Stage  *Stage
}

// MessageStep shows a bubble of symbols until the player confirms.
type MessageStep struct {
	Symbols []string
	X, Y    float64
	Stage   *Stage
}

// ChoiceOption is one selectable row of a choice.
type ChoiceOption struct {
	Symbols []string
	Target  string
}

// ChoiceStep waits for the player to pick an option and branches to the
// start of its target story.
type ChoiceStep struct {
	Options []ChoiceOption
	Stage   *Stage
}

// MusicCueStep switches the looping track and falls through at once.
type MusicCueStep struct {
	Track string
}

func (*AnimationStep) isStep()   {}
func (*DesignGlyphStep) isStep() {}
func (*MessageStep) isStep()     {}
func (*ChoiceStep) isStep()      {}
func (*MusicCueStep) isStep()    {}

// StepKind names the variant of st.
func StepKind(st Step) string {
	switch st.(type) {
	case *AnimationStep:
		return "animation"
	case *DesignGlyphStep:
		return "design"
	case *MessageStep:
		return "message"
	case *ChoiceStep:
		return "choice"
	case *MusicCueStep:
		return "music"
	default:
		panic(fmt.Sprintf("inkling: unhandled step type %T", st))
	}
}

// stageOf returns the stage of a visual step, or nil for a music cue.
func stageOf(st Step) *Stage {
	switch st := st.(type) {
	case *AnimationStep:
		return st.Stage
	case *DesignGlyphStep:
		return st.Stage
	case *MessageStep:
		return st.Stage
	case *ChoiceStep:
		return st.Stage
	case *MusicCueStep:
		return nil
	default:
		panic(fmt.Sprintf("inkling: unhandled step type %T", st))
	}
}

// --- Storybook ---

// Storybook is the immutable set of stories built from a script.
type Storybook struct {
	Title   string
	Start   string
	Symbols []string
	Tracks  map[string]string
	Library *Library

	stories map[string][]Step
}

// NewStorybook builds runtime steps from a validated script. Each step gets
// its own stage and sprite instances.
func NewStorybook(script *Script, lib *Library) (*Storybook, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}
	b := &Storybook{
		Title:   script.Title,
		Start:   script.Start,
		Symbols: append([]string(nil), script.Symbols...),
		Tracks:  script.Tracks,
		Library: lib,
		stories: make(map[string][]Step, len(script.Stories)),
	}
	for id, docs := range script.Stories {
		steps := make([]Step, len(docs))
		for i, d := range docs {
			steps[i] = newStep(d, lib)
		}
		b.stories[id] = steps
	}
	return b, nil
}

func newStep(d StepDoc, lib *Library) Step {
	switch {
	case d.Animation != nil:
		return &AnimationStep{Duration: d.Animation.Duration, Stage: newStage(d.Animation.Stage, lib)}
	case d.Design != nil:
		return &DesignGlyphStep{
			Symbol: d.Design.Symbol,
			Emblem: lib.Emblems[d.Design.Symbol],
			Stage:  newStage(d.Design.Stage, lib),
		}
	case d.Message != nil:
		return &MessageStep{
			Symbols: d.Message.Symbols,
			X:       d.Message.X,
			Y:       d.Message.Y,
			Stage:   newStage(d.Message.Stage, lib),
		}
	case d.Choice != nil:
		opts := make([]ChoiceOption, len(d.Choice.Options))
		for i, o := range d.Choice.Options {
			opts[i] = ChoiceOption{Symbols: o.Symbols, Target: o.Target}
		}
		return &ChoiceStep{Options: opts, Stage: newStage(d.Choice.Stage, lib)}
	case d.Music != nil:
		return &MusicCueStep{Track: d.Music.Track}
	}
	panic("inkling: step document has no variant")
}

// NewGlyphs declares the storybook's vocabulary in a fresh registry.
func (b *Storybook) NewGlyphs() *Glyphs {
	return NewGlyphs(b.Symbols...)
}

// Story returns the steps of a story.
func (b *Storybook) Story(id string) ([]Step, bool) {
	steps, ok := b.stories[id]
	return steps, ok
}

// Len returns the number of steps in a story, or 0 if unknown.
func (b *Storybook) Len(id string) int {
	return len(b.stories[id])
}
