package inkling

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func toneJukebox(t *testing.T) *Jukebox {
	t.Helper()
	j := NewJukebox(8000, 0.5)
	if err := j.AddTone("theme", 10*time.Millisecond, 440, 0, 660); err != nil {
		t.Fatalf("AddTone: %v", err)
	}
	if err := j.AddTone("calm", 10*time.Millisecond, 220); err != nil {
		t.Fatalf("AddTone: %v", err)
	}
	return j
}

func TestSilentRecordsCues(t *testing.T) {
	var s Silent
	_ = s.Loop("a")
	_ = s.Loop("b")
	if !slices.Equal(s.Cues, []string{"a", "b"}) {
		t.Errorf("Cues = %v", s.Cues)
	}
}

func TestJukeboxAddTone(t *testing.T) {
	j := toneJukebox(t)
	if !j.Has("theme") || !j.Has("calm") || j.Has("jazz") {
		t.Error("Has mismatch")
	}
	// three 10 ms notes at 8 kHz
	if got := j.tracks["theme"].Len(); got != 240 {
		t.Errorf("theme length = %d samples, want 240", got)
	}
	if err := j.AddTone("empty", time.Millisecond); err == nil {
		t.Error("a tone with no notes should fail")
	}
}

func TestJukeboxLoop(t *testing.T) {
	j := toneJukebox(t)
	if j.Playing() != "" {
		t.Fatalf("Playing = %q before any cue", j.Playing())
	}
	if err := j.Loop("theme"); err != nil {
		t.Fatal(err)
	}
	if j.Playing() != "theme" {
		t.Errorf("Playing = %q, want theme", j.Playing())
	}
	first := j.current

	if err := j.Loop("theme"); err != nil {
		t.Fatal(err)
	}
	if j.current != first {
		t.Error("cueing the playing track should not restart it")
	}

	if err := j.Loop("calm"); err != nil {
		t.Fatal(err)
	}
	if !first.Paused {
		t.Error("the previous track should stop")
	}
	if j.Playing() != "calm" || j.mixer.Len() != 1 {
		t.Errorf("Playing = %q with %d streams, want calm alone", j.Playing(), j.mixer.Len())
	}
}

func TestJukeboxLoopUnknown(t *testing.T) {
	j := toneJukebox(t)
	if err := j.Loop("jazz"); !errors.Is(err, ErrUnknownTrack) {
		t.Errorf("err = %v, want ErrUnknownTrack", err)
	}
}

func TestJukeboxClose(t *testing.T) {
	j := toneJukebox(t)
	_ = j.Loop("theme")
	j.Close()
	if j.Playing() != "" || j.mixer.Len() != 0 {
		t.Error("Close should stop playback")
	}
}

func TestJukeboxVolume(t *testing.T) {
	j := NewJukebox(8000, 0)
	if !j.volume.Silent {
		t.Error("zero volume should mute")
	}
	j.SetVolume(1)
	if j.volume.Silent || j.volume.Volume != 0 {
		t.Errorf("full volume = %+v, want unmuted at 0", j.volume)
	}
	j.SetVolume(0.5)
	if j.volume.Volume != -1 {
		t.Errorf("half volume = %v, want -1", j.volume.Volume)
	}
}

func TestJukeboxLoadTracksMissing(t *testing.T) {
	j := toneJukebox(t)
	err := j.LoadTracks(map[string]string{"rain": "rain.ogg"}, MemAssets{})
	if !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("err = %v, want ErrUnknownAsset", err)
	}
}

func TestJukeboxLoadTracksSkipsRegistered(t *testing.T) {
	j := toneJukebox(t)
	err := j.LoadTracks(map[string]string{"theme": "theme.ogg"}, MemAssets{})
	if err != nil {
		t.Errorf("registered track should not be reloaded: %v", err)
	}
}
