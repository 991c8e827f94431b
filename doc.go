// Package inkling is a small engine for picture-language stories built on
// [Ebitengine].
//
// A story is a script of steps. Some steps just play: an animation holds its
// stage for a number of ticks, a music cue swaps the looping track. Others
// wait for the player: a design step shows a zoomed glyph canvas and an
// emblem hint and waits for the drawing to be accepted, a message step shows
// a bubble of symbols and waits for a confirm key, and a choice step offers
// rows of symbols that branch to other stories. Every accepted drawing is
// bound into the [Glyphs] registry and from then on stands for its symbol in
// every message and choice.
//
// # Quick start
//
//	script, err := inkling.ParseScript(data)
//	lib, err := inkling.LoadLibrary(script, inkling.NewDirAssets(os.DirFS("assets")))
//	book, err := inkling.NewStorybook(script, lib)
//	seq := inkling.NewSequencer(book, book.NewGlyphs(), nil, inkling.DefaultConfig())
//	err = inkling.Run(seq, nil, inkling.DefaultConfig())
//
// # Scripts
//
// A script is a JSON document:
//
//	{
//	  "start": "intro",
//	  "symbols": ["fire", "person"],
//	  "sheets": {"walker": {"image": "walker.png", "cols": 4, "rows": 1, "mirror": true}},
//	  "emblems": {"fire": "emblems/fire.png"},
//	  "tracks": {"theme": "theme.ogg"},
//	  "stories": {
//	    "intro": [
//	      {"music": {"track": "theme"}},
//	      {"animation": {"duration": 80, "stage": {"background": "sky.png",
//	        "sprites": [{"sheet": "walker", "x": 40, "y": 160}]}}},
//	      {"design": {"symbol": "fire", "stage": {}}},
//	      {"message": {"symbols": ["person", "fire"], "x": 24, "y": 24, "stage": {}}},
//	      {"choice": {"options": [{"symbols": ["fire"], "target": "intro"}], "stage": {}}}
//	    ]
//	  }
//	}
//
// [ParseScript] validates the whole document before anything runs: each step
// holds exactly one kind, every symbol is declared, every target and sheet
// exists, and no story ends with a music cue.
//
// # Sequencer
//
// [Sequencer.Jump] is the only transition. It clears the scene and the
// canvas, plays any music cues it lands on, and mounts the new step in four
// layers: the stage, the frame, the optional debug readout, and the step's
// own interactive content. Jumping past the last step leaves the sequencer
// idle on that step.
//
// # Scene graph
//
// Every drawable is a [Node]. Nodes form a tree rooted at [Scene.Root];
// children inherit their parent's position, scale and alpha. Components own
// their nodes and attach behavior through [Node.OnUpdate] and
// [Node.OnPointerDown].
//
// # Testing
//
// [InputReader] accepts synthetic input (InjectClick, InjectDrag, InjectKey)
// that replaces device input frame by frame, and [Replay] drives it from a
// JSON script with screenshots along the way.
//
// [Ebitengine]: https://ebitengine.org
package inkling
