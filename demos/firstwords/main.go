// Firstwords is a short playable story: draw the glyphs for person, fire,
// house and water, then read them back in messages and choices.
//
// With no -assets directory every image is drawn procedurally and the music
// is a pair of generated melodies. Files under -assets override the built-in
// art by name (backgrounds/sky.png, sheets/walker.png, music/theme.ogg, ...).
//
// Controls: hold the mouse button over the canvas to draw, click the check
// mark to accept a glyph, Enter or Space to continue a message, click a row
// to choose. F12 saves a screenshot.
package main

import (
	_ "embed"
	"flag"
	"os"

	"github.com/phanxgames/inkling"
)

//go:embed story.json
var storyJSON []byte

func main() {
	configPath := flag.String("config", "", "INI settings file")
	scriptPath := flag.String("script", "", "story JSON (default: built-in story)")
	assetDir := flag.String("assets", "", "directory of images and music overriding the built-in art")
	replayPath := flag.String("replay", "", "JSON replay script to play back, exiting at its end")
	debug := flag.Bool("debug", false, "show the debug readout and log frame stats")
	mute := flag.Bool("mute", false, "disable audio")
	flag.Parse()

	log := inkling.DefaultLogger()
	if err := run(*configPath, *scriptPath, *assetDir, *replayPath, *debug, *mute); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(configPath, scriptPath, assetDir, replayPath string, debug, mute bool) error {
	cfg := inkling.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = inkling.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if debug {
		cfg.Debug = true
		cfg.LogLevel = inkling.LevelDebug
	}
	inkling.DefaultLogger().SetLevel(cfg.LogLevel)

	data := storyJSON
	if scriptPath != "" {
		var err error
		if data, err = os.ReadFile(scriptPath); err != nil {
			return err
		}
	}
	script, err := inkling.ParseScript(data)
	if err != nil {
		return err
	}

	var loader inkling.AssetLoader = proceduralAssets()
	if assetDir != "" {
		loader = inkling.Overlay{inkling.NewDirAssets(os.DirFS(assetDir)), loader}
	}
	lib, err := inkling.LoadLibrary(script, loader)
	if err != nil {
		return err
	}
	book, err := inkling.NewStorybook(script, lib)
	if err != nil {
		return err
	}

	var music inkling.Music = &inkling.Silent{}
	if !mute && cfg.Volume > 0 {
		jb, err := loadMusic(book, loader, assetDir != "", cfg)
		if err != nil {
			return err
		}
		defer jb.Close()
		music = jb
	}

	var replay *inkling.Replay
	if replayPath != "" {
		raw, err := os.ReadFile(replayPath)
		if err != nil {
			return err
		}
		if replay, err = inkling.LoadReplay(raw); err != nil {
			return err
		}
	}

	seq := inkling.NewSequencer(book, book.NewGlyphs(), music, cfg)
	if err := seq.Start(); err != nil {
		return err
	}
	return inkling.Run(seq, replay, cfg)
}

// loadMusic decodes the story's tracks from the asset directory when there is
// one. Tracks without a file fall back to the generated melodies.
func loadMusic(book *inkling.Storybook, loader inkling.AssetLoader, fromFiles bool, cfg inkling.Config) (*inkling.Jukebox, error) {
	jb := inkling.NewJukebox(cfg.SampleRate, cfg.Volume)
	if fromFiles {
		for id, name := range book.Tracks {
			rc, err := loader.Open(name)
			if err != nil {
				inkling.DefaultLogger().Infof("track %s: %v; using generated tone", id, err)
				continue
			}
			if err := jb.LoadTrack(id, rc); err != nil {
				return nil, err
			}
		}
	}
	if err := proceduralTones(jb); err != nil {
		return nil, err
	}
	for id := range book.Tracks {
		if !jb.Has(id) {
			inkling.DefaultLogger().Warnf("track %s has no audio; its cue will be skipped", id)
		}
	}
	if err := jb.Start(); err != nil {
		return nil, err
	}
	return jb, nil
}
