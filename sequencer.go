package inkling

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Jumper is the one transition capability handed to interactive entities.
type Jumper interface {
	Jump(story string, index int) error
}

// Sequencer walks the storybook. It owns the scene, the glyph canvas and the
// position in the story, and rebuilds the scene on every jump.
type Sequencer struct {
	book   *Storybook
	lib    *Library
	glyphs *Glyphs
	music  Music
	cfg    Config

	scene   *Scene
	canvas  *Canvas
	frame   *Node
	readout *Node
	owned   []*Node // built for the current step only

	story   string
	index   int
	current Step
	timer   int
	idle    bool
}

// NewSequencer prepares a sequencer over book. glyphs is the vocabulary
// registry shared with every text renderer; music receives music cues and
// may be nil.
func NewSequencer(book *Storybook, glyphs *Glyphs, music Music, cfg Config) *Sequencer {
	if music == nil {
		music = &Silent{}
	}
	q := &Sequencer{
		book:   book,
		lib:    book.Library,
		glyphs: glyphs,
		music:  music,
		cfg:    cfg,
		scene:  NewScene(),
		canvas: NewGlyphCanvas(),
		index:  -1,
	}
	q.canvas.Smooth = cfg.Smooth
	q.frame = NewImageNode("frame", q.lib.Frame)
	if cfg.Debug {
		q.scene.SetDebugMode(true)
		q.readout = NewDebugReadout(q.canvas)
	}
	if cfg.ScreenshotDir != "" {
		q.scene.ScreenshotDir = cfg.ScreenshotDir
	}
	return q
}

// Start enters the first step of the storybook's start story.
func (q *Sequencer) Start() error {
	return q.Jump(q.book.Start, 0)
}

// Jump makes step index of story current. Music cues on the way are played
// and skipped, so the current step is never a music cue. Jumping past the
// last step leaves the sequencer idle on the last step.
func (q *Sequencer) Jump(story string, index int) error {
	steps, ok := q.book.Story(story)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStory, story)
	}
	if index < 0 {
		return fmt.Errorf("%w: %s[%d]", ErrStepRange, story, index)
	}

	for index < len(steps) {
		cue, ok := steps[index].(*MusicCueStep)
		if !ok {
			break
		}
		if err := q.music.Loop(cue.Track); err != nil {
			logger.Errorf("music cue %s[%d]: %v", story, index, err)
		}
		index++
	}

	if index >= len(steps) {
		if q.current != nil && q.story == story {
			if !q.idle {
				logger.Infof("story %q finished; idle on step %d", story, q.index)
			}
			q.idle = true
			return nil
		}
		index = len(steps) - 1
		q.enter(story, index, steps[index])
		q.idle = true
		return nil
	}

	q.enter(story, index, steps[index])
	return nil
}

// enter rebuilds the scene for st. The canvas is cleared on every entry,
// whether or not the step shows it.
func (q *Sequencer) enter(story string, index int, st Step) {
	if _, ok := st.(*MusicCueStep); ok {
		panic("inkling: music cue entered as a step")
	}
	q.scene.Clear()
	q.canvas.Clear()
	for _, n := range q.owned {
		n.Dispose()
	}
	clear(q.owned)
	q.owned = q.owned[:0]

	stageOf(st).mount(q.scene)
	q.scene.Add(LayerFrame, q.frame)

	switch st := st.(type) {
	case *AnimationStep:
		q.timer = st.Duration
	case *DesignGlyphStep:
		q.mountDesign(st, story, index)
	case *MessageStep:
		bubble := NewMessageBubble(q.glyphs, st.Symbols, st.X, st.Y, bubbleWrapWidth(st.X))
		q.addOwned(bubble)
	case *ChoiceStep:
		m := NewChoiceMatrix(q.glyphs, st.Options, q)
		q.addOwned(m.Node())
	default:
		panic(fmt.Sprintf("inkling: unhandled step type %T", st))
	}

	if q.readout != nil {
		q.scene.Add(LayerDebug, q.readout)
	}

	q.story, q.index, q.current = story, index, st
	q.idle = false
	logger.Debugf("jump %s[%d] (%s)", story, index, StepKind(st))
}

func (q *Sequencer) mountDesign(st *DesignGlyphStep, story string, index int) {
	var emblem *Node
	if st.Emblem != nil {
		emblem = NewImageNode("emblem:"+st.Symbol, st.Emblem)
	} else {
		emblem = NewContainer("emblem:" + st.Symbol)
	}
	emblem.SetPosition(EmblemX, EmblemY)
	q.addOwned(emblem)

	defines := NewImageNode("defines", q.lib.Defines)
	defines.SetPosition(DefinesX, DefinesY)
	q.addOwned(defines)

	q.scene.Add(LayerForeground, q.canvas.Node())

	q.addOwned(newAcceptButton(q.lib.Accept, q.canvas, q.glyphs, st.Symbol, q, story, index+1))
}

// addOwned mounts a foreground entity that lives only as long as the current
// step. It is disposed when the sequencer leaves the step.
func (q *Sequencer) addOwned(n *Node) {
	q.owned = append(q.owned, n)
	q.scene.Add(LayerForeground, n)
}

// newAcceptButton creates the button that stores the drawing as the glyph
// for symbol and moves on to (story, next).
func newAcceptButton(img *ebiten.Image, canvas *Canvas, glyphs *Glyphs, symbol string,
	j Jumper, story string, next int) *Node {
	btn := NewImageNode("accept", img)
	btn.SetPosition(AcceptX, AcceptY)
	btn.Interactable = true
	btn.OnPointerDown = func(PointerContext) {
		if err := glyphs.Bind(symbol, canvas.ExportImage()); err != nil {
			if !errors.Is(err, ErrGlyphBound) {
				logger.Errorf("accept %q: %v", symbol, err)
				return
			}
			logger.Warnf("%v; keeping the first drawing", err)
		}
		if err := j.Jump(story, next); err != nil {
			logger.Errorf("accept %q: %v", symbol, err)
		}
	}
	return btn
}

// Update runs one frame: the current step's own advance rule, then every
// entity's update and pointer dispatch. When the advance rule jumps, the
// entities of the new step receive this frame's update.
func (q *Sequencer) Update(in *Input) error {
	if q.current == nil {
		return errors.New("inkling: sequencer not started")
	}
	if !q.idle {
		if err := q.dispatch(in); err != nil {
			return err
		}
	}
	q.scene.Update(in)
	return nil
}

func (q *Sequencer) dispatch(in *Input) error {
	switch st := q.current.(type) {
	case *MessageStep:
		if in.AnyJustPressed(q.cfg.ConfirmKeys) {
			return q.Jump(q.story, q.index+1)
		}
	case *AnimationStep:
		q.timer--
		if q.timer <= 0 {
			return q.Jump(q.story, q.index+1)
		}
	case *DesignGlyphStep, *ChoiceStep:
		// Advanced by their entities.
	case *MusicCueStep:
		panic("inkling: music cue is never current")
	default:
		panic(fmt.Sprintf("inkling: unhandled step type %T", st))
	}
	return nil
}

// Draw composites the scene into screen.
func (q *Sequencer) Draw(screen *ebiten.Image) {
	if q.canvas.Node().Parent != nil {
		q.canvas.Flush()
	}
	q.scene.Draw(screen)
}

// Current returns the story id and step index of the current step.
func (q *Sequencer) Current() (story string, index int) {
	return q.story, q.index
}

// Step returns the current step, or nil before Start.
func (q *Sequencer) Step() Step {
	return q.current
}

// Idle reports whether the story ran past its last step.
func (q *Sequencer) Idle() bool {
	return q.idle
}

// Timer returns the ticks left on the current animation step.
func (q *Sequencer) Timer() int {
	return q.timer
}

func (q *Sequencer) Canvas() *Canvas {
	return q.canvas
}

func (q *Sequencer) Glyphs() *Glyphs {
	return q.glyphs
}

func (q *Sequencer) Scene() *Scene {
	return q.scene
}

func (q *Sequencer) Storybook() *Storybook {
	return q.book
}
