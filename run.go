package inkling

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game adapts a Sequencer to ebiten.Game.
type Game struct {
	seq    *Sequencer
	input  *InputReader
	replay *Replay
	// ExitOnReplayEnd stops the game once the replay finishes.
	ExitOnReplayEnd bool
}

// NewGame wraps seq. replay may be nil.
func NewGame(seq *Sequencer, replay *Replay) *Game {
	return &Game{seq: seq, input: NewInputReader(), replay: replay}
}

// Input returns the game's input reader, for injecting synthetic events.
func (g *Game) Input() *InputReader {
	return g.input
}

// Update reads this frame's input and advances the sequencer. F12 queues a
// screenshot.
func (g *Game) Update() error {
	if g.replay != nil {
		g.replay.Step(g.input, g.seq.Scene())
		if g.ExitOnReplayEnd && g.replay.Done() && g.seq.Scene().PendingScreenshots() == 0 {
			return ebiten.Termination
		}
	}
	in := g.input.Read()
	if in.JustPressed(ebiten.KeyF12) {
		story, index := g.seq.Current()
		g.seq.Scene().Screenshot(fmt.Sprintf("%s-%d", story, index))
	}
	return g.seq.Update(&in)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.seq.Draw(screen)
}

// Layout returns the virtual resolution; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Run opens the window and runs seq until the window closes. The sequencer
// is started if it has not been already.
func Run(seq *Sequencer, replay *Replay, cfg Config) error {
	if seq.Step() == nil {
		if err := seq.Start(); err != nil {
			return err
		}
	}
	title := cfg.Title
	if seq.Storybook().Title != "" {
		title = seq.Storybook().Title
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(ScreenWidth*cfg.WindowZoom, ScreenHeight*cfg.WindowZoom)
	ebiten.SetFullscreen(cfg.Fullscreen)
	ebiten.SetTPS(TicksPerSec)

	g := NewGame(seq, replay)
	g.ExitOnReplayEnd = replay != nil
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
