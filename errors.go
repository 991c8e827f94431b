package inkling

import "errors"

var (
	// ErrUnknownStory is returned when a jump names a story that is not in
	// the storybook.
	ErrUnknownStory = errors.New("inkling: unknown story")
	// ErrStepRange is returned for a negative step index.
	ErrStepRange = errors.New("inkling: step index out of range")
	// ErrUnknownSymbol is returned when binding a glyph that was never declared.
	ErrUnknownSymbol = errors.New("inkling: unknown symbol")
	// ErrGlyphBound is returned when binding a glyph a second time.
	ErrGlyphBound = errors.New("inkling: glyph already bound")
	// ErrInvalidScript wraps every script validation failure.
	ErrInvalidScript = errors.New("inkling: invalid script")
	// ErrUnknownAsset is returned when a loader cannot find a named resource.
	ErrUnknownAsset = errors.New("inkling: unknown asset")
	// ErrUnknownTrack is returned when a music cue names an unregistered track.
	ErrUnknownTrack = errors.New("inkling: unknown track")
)

// ErrGlyphSize is returned when a glyph image does not match the glyph size.
var ErrGlyphSize = errors.New("inkling: glyph size mismatch")
