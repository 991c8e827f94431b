package inkling

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
)

// Music is the looping-playback collaborator behind music cues.
type Music interface {
	Loop(track string) error
}

// Silent is a Music that plays nothing. It remembers the requested tracks.
type Silent struct {
	Cues []string
}

// Loop records the cue.
func (s *Silent) Loop(track string) error {
	s.Cues = append(s.Cues, track)
	return nil
}

// Jukebox loops one buffered track at a time through the speaker. Tracks are
// decoded fully before the game loop starts.
type Jukebox struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	format  beep.Format
	tracks  map[string]*beep.Buffer
	mixer   *beep.Mixer
	volume  *effects.Volume
	current *beep.Ctrl
	playing string
	started bool
}

// NewJukebox creates a jukebox mixing at sampleRate. Volume is linear in
// [0, 1]; 0 mutes.
func NewJukebox(sampleRate int, volume float64) *Jukebox {
	rate := beep.SampleRate(sampleRate)
	j := &Jukebox{
		rate:   rate,
		format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		tracks: make(map[string]*beep.Buffer),
		mixer:  &beep.Mixer{},
	}
	j.volume = &effects.Volume{Streamer: j.mixer, Base: 2}
	j.SetVolume(volume)
	return j
}

// Start opens the speaker and begins mixing.
func (j *Jukebox) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.started {
		return nil
	}
	if err := speaker.Init(j.rate, j.rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("inkling: speaker init: %w", err)
	}
	speaker.Play(j.volume)
	j.started = true
	return nil
}

// SetVolume sets the linear output volume.
func (j *Jukebox) SetVolume(v float64) {
	j.lock()
	defer j.unlock()
	if v <= 0 {
		j.volume.Silent = true
		return
	}
	j.volume.Silent = false
	j.volume.Volume = math.Log2(min(v, 1))
}

// LoadTrack decodes an Ogg Vorbis stream into memory under id, resampling it
// to the jukebox rate. rc is closed.
func (j *Jukebox) LoadTrack(id string, rc io.ReadCloser) error {
	stream, format, err := vorbis.Decode(rc)
	if err != nil {
		rc.Close()
		return fmt.Errorf("inkling: decode track %s: %w", id, err)
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if format.SampleRate != j.rate {
		s = beep.Resample(4, format.SampleRate, j.rate, stream)
	}
	buf := beep.NewBuffer(j.format)
	buf.Append(s)
	if buf.Len() == 0 {
		return fmt.Errorf("inkling: track %s is empty", id)
	}
	j.tracks[id] = buf
	return nil
}

// AddTone registers a generated track that plays the given frequencies in
// sequence, each for noteLen, for runs without audio files.
func (j *Jukebox) AddTone(id string, noteLen time.Duration, freqs ...float64) error {
	if len(freqs) == 0 {
		return fmt.Errorf("inkling: tone %s has no notes", id)
	}
	n := j.rate.N(noteLen)
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		if f <= 0 {
			notes = append(notes, beep.Silence(n))
			continue
		}
		tone, err := generators.SineTone(j.rate, f)
		if err != nil {
			return fmt.Errorf("inkling: tone %s: %w", id, err)
		}
		notes = append(notes, &effects.Volume{Streamer: beep.Take(n, tone), Base: 2, Volume: -3})
	}
	buf := beep.NewBuffer(j.format)
	buf.Append(beep.Seq(notes...))
	j.tracks[id] = buf
	return nil
}

// LoadTracks decodes every track of a storybook through loader.
func (j *Jukebox) LoadTracks(tracks map[string]string, loader AssetLoader) error {
	for id, name := range tracks {
		if _, ok := j.tracks[id]; ok {
			continue
		}
		rc, err := loader.Open(name)
		if err != nil {
			return fmt.Errorf("track %s: %w", id, err)
		}
		if err := j.LoadTrack(id, rc); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether track is registered.
func (j *Jukebox) Has(track string) bool {
	_, ok := j.tracks[track]
	return ok
}

// Loop replaces the playing track with track, looping forever. Cueing the
// track that is already playing keeps it running without a restart.
func (j *Jukebox) Loop(track string) error {
	buf, ok := j.tracks[track]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTrack, track)
	}
	j.lock()
	defer j.unlock()
	if j.playing == track && j.current != nil {
		return nil
	}
	if j.current != nil {
		j.current.Paused = true
	}
	j.mixer.Clear()
	j.current = &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
	j.mixer.Add(j.current)
	j.playing = track
	logger.Debugf("music: looping %q", track)
	return nil
}

// Playing returns the id of the looping track, or "".
func (j *Jukebox) Playing() string {
	j.lock()
	defer j.unlock()
	return j.playing
}

// Close stops playback. The speaker stays open for the process lifetime.
func (j *Jukebox) Close() {
	j.lock()
	defer j.unlock()
	if j.current != nil {
		j.current.Paused = true
	}
	j.mixer.Clear()
	j.current = nil
	j.playing = ""
}

// lock takes the speaker lock once the speaker runs, so the audio goroutine
// never sees a half-swapped mixer.
func (j *Jukebox) lock() {
	j.mu.Lock()
	if j.started {
		speaker.Lock()
	}
}

func (j *Jukebox) unlock() {
	if j.started {
		speaker.Unlock()
	}
	j.mu.Unlock()
}
