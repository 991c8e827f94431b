package inkling

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

const validScript = `{
  "title": "test",
  "start": "intro",
  "symbols": ["fire", "water"],
  "sheets": {"walker": {"image": "walker.png", "cols": 2, "rows": 1, "mirror": true}},
  "tracks": {"theme": "theme.ogg"},
  "stories": {
    "intro": [
      {"music": {"track": "theme"}},
      {"animation": {"duration": 3, "stage": {"sprites": [{"sheet": "walker", "x": 10, "y": 20}]}}},
      {"design": {"symbol": "fire"}},
      {"message": {"symbols": ["fire", "\n", "water"], "x": 16, "y": 24}},
      {"choice": {"options": [
        {"symbols": ["fire"], "target": "left"},
        {"symbols": ["water"], "target": "right"}
      ]}}
    ],
    "left": [{"message": {"symbols": ["fire"]}}],
    "right": [{"design": {"symbol": "water"}}]
  }
}`

func TestParseScriptValid(t *testing.T) {
	s, err := ParseScript([]byte(validScript))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if s.Start != "intro" || s.Title != "test" {
		t.Errorf("header = %q/%q", s.Start, s.Title)
	}
	if got := s.StoryIDs(); !slices.Equal(got, []string{"intro", "left", "right"}) {
		t.Errorf("StoryIDs = %v", got)
	}
	intro := s.Stories["intro"]
	if len(intro) != 5 || intro[0].Music == nil || intro[4].Choice == nil {
		t.Fatalf("intro steps decoded wrong: %+v", intro)
	}
	if intro[1].Animation.Duration != 3 || intro[1].Animation.Stage.Sprites[0].X != 10 {
		t.Error("animation step decoded wrong")
	}
	if !s.Sheets["walker"].Mirror {
		t.Error("sheet mirror flag lost")
	}
}

func TestParseScriptRejectsUnknownField(t *testing.T) {
	doc := strings.Replace(validScript, `"title": "test",`, `"title": "test", "colour": 3,`, 1)
	if _, err := ParseScript([]byte(doc)); !errors.Is(err, ErrInvalidScript) {
		t.Errorf("err = %v, want ErrInvalidScript", err)
	}
}

func TestParseScriptRejectsTrailingData(t *testing.T) {
	if _, err := ParseScript([]byte(validScript + `{}`)); !errors.Is(err, ErrInvalidScript) {
		t.Errorf("err = %v, want ErrInvalidScript", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{"unknown start", `"start": "intro"`, `"start": "nowhere"`, "start: unknown story"},
		{"duplicate symbol", `["fire", "water"]`, `["fire", "fire"]`, "declared twice"},
		{"line break symbol", `["fire", "water"]`, `["fire", "water", "\n"]`, "invalid symbol name"},
		{"zero duration", `"duration": 3`, `"duration": 0`, "must be positive"},
		{"undeclared design", `{"symbol": "fire"}`, `{"symbol": "earth"}`, "undeclared symbol \"earth\""},
		{"undeclared message", `["fire", "\n", "water"]`, `["fire", "smoke"]`, "undeclared symbol \"smoke\""},
		{"empty message", `"symbols": ["fire", "\n", "water"]`, `"symbols": []`, "no symbols"},
		{"bad target", `"target": "left"`, `"target": "up"`, "unknown target story"},
		{"unknown track", `{"track": "theme"}`, `{"track": "jazz"}`, "unknown track"},
		{"unknown sheet", `{"sheet": "walker"`, `{"sheet": "runner"`, "unknown sheet"},
		{"bad grid", `"cols": 2`, `"cols": 0`, "must be positive"},
		{"two kinds", `{"design": {"symbol": "water"}}`, `{"design": {"symbol": "water"}, "music": {"track": "theme"}}`, "exactly one step kind"},
		{"no kind", `"right": [{"design": {"symbol": "water"}}]`, `"right": [{}]`, "exactly one step kind"},
		{"empty story", `"right": [{"design": {"symbol": "water"}}]`, `"right": []`, "no steps"},
		{"message off screen", `"x": 16, "y": 24`, `"x": 250, "y": 24`, "outside the screen"},
		{"message above screen", `"x": 16, "y": 24`, `"x": 16, "y": -4`, "outside the screen"},
		{"atlas without pages", `"tracks":`, `"atlas": {"data": "atlas.json"}, "tracks":`, "atlas: no pages"},
		{"atlas without data", `"tracks":`, `"atlas": {"pages": ["atlas.png"]}, "tracks":`, "atlas: no data file"},
		{"ends with music", `"left": [{"message": {"symbols": ["fire"]}}]`, `"left": [{"message": {"symbols": ["fire"]}}, {"music": {"track": "theme"}}]`, "cannot end with a music cue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(validScript, tt.from, tt.to, 1)
			if doc == validScript {
				t.Fatalf("fixture replacement %q did not apply", tt.from)
			}
			_, err := ParseScript([]byte(doc))
			if !errors.Is(err, ErrInvalidScript) {
				t.Fatalf("err = %v, want ErrInvalidScript", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	doc := strings.Replace(validScript, `"duration": 3`, `"duration": -1`, 1)
	doc = strings.Replace(doc, `"target": "left"`, `"target": "up"`, 1)
	_, err := ParseScript([]byte(doc))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "duration") || !strings.Contains(err.Error(), "target") {
		t.Errorf("err = %v, want both problems reported", err)
	}
}
