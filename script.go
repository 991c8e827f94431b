package inkling

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Script is the declarative story document. It names every asset the story
// uses and lists each story's steps in order.
type Script struct {
	Title   string               `json:"title,omitempty"`
	Start   string               `json:"start"`
	Symbols []string             `json:"symbols"`
	Chrome  ChromeDoc            `json:"chrome"`
	Atlas   *AtlasDoc            `json:"atlas,omitempty"`
	Sheets  map[string]SheetDoc  `json:"sheets,omitempty"`
	Emblems map[string]string    `json:"emblems,omitempty"` // symbol -> image
	Tracks  map[string]string    `json:"tracks,omitempty"`  // track id -> audio file
	Stories map[string][]StepDoc `json:"stories"`
}

// ChromeDoc optionally overrides the built-in decorations.
type ChromeDoc struct {
	Frame   string `json:"frame,omitempty"`
	Accept  string `json:"accept,omitempty"`
	Defines string `json:"defines,omitempty"`
}

// AtlasDoc names a TexturePacker atlas. Its regions shadow loose image files
// of the same name.
type AtlasDoc struct {
	Data  string   `json:"data"`
	Pages []string `json:"pages"`
}

// SheetDoc describes how to slice a sprite sheet into animation frames.
type SheetDoc struct {
	Image  string `json:"image"`
	Clip   []int  `json:"clip,omitempty"` // x, y, w, h; empty = whole image
	Cols   int    `json:"cols"`
	Rows   int    `json:"rows"`
	Mirror bool   `json:"mirror,omitempty"`
}

// StageDoc is a step's backdrop.
type StageDoc struct {
	Background string      `json:"background,omitempty"`
	Sprites    []SpriteDoc `json:"sprites,omitempty"`
}

// SpriteDoc places one animated decoration.
type SpriteDoc struct {
	Sheet    string  `json:"sheet"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Mirrored bool    `json:"mirrored,omitempty"`
}

// StepDoc holds exactly one step variant.
type StepDoc struct {
	Animation *AnimationDoc `json:"animation,omitempty"`
	Design    *DesignDoc    `json:"design,omitempty"`
	Message   *MessageDoc   `json:"message,omitempty"`
	Choice    *ChoiceDoc    `json:"choice,omitempty"`
	Music     *MusicDoc     `json:"music,omitempty"`
}

type AnimationDoc struct {
	Duration int      `json:"duration"` // ticks
	Stage    StageDoc `json:"stage"`
}

type DesignDoc struct {
	Symbol string   `json:"symbol"`
	Stage  StageDoc `json:"stage"`
}

type MessageDoc struct {
	Symbols []string `json:"symbols"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Stage   StageDoc `json:"stage"`
}

type ChoiceDoc struct {
	Options []OptionDoc `json:"options"`
	Stage   StageDoc    `json:"stage"`
}

type OptionDoc struct {
	Symbols []string `json:"symbols"`
	Target  string   `json:"target"`
}

type MusicDoc struct {
	Track string `json:"track"`
}

// variants counts the populated variant fields and names the first.
func (d StepDoc) variants() (int, string) {
	n, kind := 0, ""
	for _, v := range []struct {
		set  bool
		name string
	}{
		{d.Animation != nil, "animation"},
		{d.Design != nil, "design"},
		{d.Message != nil, "message"},
		{d.Choice != nil, "choice"},
		{d.Music != nil, "music"},
	} {
		if v.set {
			if n == 0 {
				kind = v.name
			}
			n++
		}
	}
	return n, kind
}

// ParseScript decodes a story document and validates it. Unknown fields are
// rejected.
func ParseScript(data []byte) (*Script, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidScript)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// StoryIDs returns the story ids in sorted order.
func (s *Script) StoryIDs() []string {
	ids := make([]string, 0, len(s.Stories))
	for id := range s.Stories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Validate checks the whole document up front so that every step the
// sequencer can reach is well formed. All problems are reported together.
func (s *Script) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	symbols := make(map[string]bool, len(s.Symbols))
	for _, sym := range s.Symbols {
		if sym == "" || sym == LineBreak {
			fail("symbols: invalid symbol name %q", sym)
			continue
		}
		if symbols[sym] {
			fail("symbols: %q declared twice", sym)
		}
		symbols[sym] = true
	}
	checkSymbols := func(path string, list []string) {
		if len(list) == 0 {
			fail("%s: no symbols", path)
		}
		for _, sym := range list {
			if sym != LineBreak && !symbols[sym] {
				fail("%s: undeclared symbol %q", path, sym)
			}
		}
	}

	if s.Atlas != nil {
		if s.Atlas.Data == "" {
			fail("atlas: no data file")
		}
		if len(s.Atlas.Pages) == 0 {
			fail("atlas: no pages")
		}
	}
	for sym := range s.Emblems {
		if !symbols[sym] {
			fail("emblems: undeclared symbol %q", sym)
		}
	}
	for name, sh := range s.Sheets {
		if sh.Image == "" {
			fail("sheets.%s: no image", name)
		}
		if sh.Cols <= 0 || sh.Rows <= 0 {
			fail("sheets.%s: grid %dx%d must be positive", name, sh.Cols, sh.Rows)
		}
		if len(sh.Clip) != 0 && len(sh.Clip) != 4 {
			fail("sheets.%s: clip needs 4 values, got %d", name, len(sh.Clip))
		}
	}

	checkStage := func(path string, st StageDoc) {
		for i, sp := range st.Sprites {
			if _, ok := s.Sheets[sp.Sheet]; !ok {
				fail("%s.stage.sprites[%d]: unknown sheet %q", path, i, sp.Sheet)
			}
		}
	}

	if _, ok := s.Stories[s.Start]; !ok {
		fail("start: unknown story %q", s.Start)
	}

	for _, id := range s.StoryIDs() {
		steps := s.Stories[id]
		if len(steps) == 0 {
			fail("stories.%s: no steps", id)
			continue
		}
		for i, st := range steps {
			path := fmt.Sprintf("stories.%s[%d]", id, i)
			n, kind := st.variants()
			if n != 1 {
				fail("%s: want exactly one step kind, got %d", path, n)
				continue
			}
			path += "." + kind
			switch {
			case st.Animation != nil:
				if st.Animation.Duration <= 0 {
					fail("%s: duration %d must be positive", path, st.Animation.Duration)
				}
				checkStage(path, st.Animation.Stage)
			case st.Design != nil:
				if !symbols[st.Design.Symbol] {
					fail("%s: undeclared symbol %q", path, st.Design.Symbol)
				}
				checkStage(path, st.Design.Stage)
			case st.Message != nil:
				checkSymbols(path, st.Message.Symbols)
				if m := st.Message; m.X < 0 || m.X > messageMaxX || m.Y < 0 || m.Y > messageMaxY {
					fail("%s: position (%v, %v) outside the screen", path, m.X, m.Y)
				}
				checkStage(path, st.Message.Stage)
			case st.Choice != nil:
				if len(st.Choice.Options) == 0 {
					fail("%s: no options", path)
				}
				for j, opt := range st.Choice.Options {
					opath := fmt.Sprintf("%s.options[%d]", path, j)
					checkSymbols(opath, opt.Symbols)
					if _, ok := s.Stories[opt.Target]; !ok {
						fail("%s: unknown target story %q", opath, opt.Target)
					}
				}
				checkStage(path, st.Choice.Stage)
			case st.Music != nil:
				if _, ok := s.Tracks[st.Music.Track]; !ok {
					fail("%s: unknown track %q", path, st.Music.Track)
				}
				if i == len(steps)-1 {
					fail("%s: a story cannot end with a music cue", path)
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidScript, errors.Join(errs...))
	}
	return nil
}
