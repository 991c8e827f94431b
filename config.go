package inkling

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/ini.v1"
)

// Config holds the runtime settings. Zero values are not meaningful; start
// from DefaultConfig.
type Config struct {
	// [display]
	Title      string
	WindowZoom int
	Fullscreen bool

	// [canvas]
	Smooth      bool
	ConfirmKeys []ebiten.Key

	// [debug]
	Debug         bool
	LogLevel      Level
	ScreenshotDir string

	// [audio]
	SampleRate int
	Volume     float64
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Title:         "inkling",
		WindowZoom:    ScreenZoom,
		ConfirmKeys:   []ebiten.Key{ebiten.KeyEnter, ebiten.KeySpace},
		LogLevel:      LevelInfo,
		ScreenshotDir: "screenshots",
		SampleRate:    44100,
		Volume:        0.8,
	}
}

var iniOptions = ini.LoadOptions{
	InsensitiveSections:     true,
	InsensitiveKeys:         true,
	SkipUnrecognizableLines: true,
}

// LoadConfig reads an INI file over the defaults. Keys that are absent keep
// their default value.
func LoadConfig(path string) (Config, error) {
	f, err := ini.LoadSources(iniOptions, path)
	if err != nil {
		return Config{}, fmt.Errorf("inkling: load config %s: %w", path, err)
	}
	return configFromINI(f)
}

// ParseConfig reads INI data over the defaults.
func ParseConfig(data []byte) (Config, error) {
	f, err := ini.LoadSources(iniOptions, data)
	if err != nil {
		return Config{}, fmt.Errorf("inkling: parse config: %w", err)
	}
	return configFromINI(f)
}

func configFromINI(f *ini.File) (Config, error) {
	cfg := DefaultConfig()

	display := f.Section("display")
	cfg.Title = display.Key("title").MustString(cfg.Title)
	cfg.WindowZoom = display.Key("zoom").MustInt(cfg.WindowZoom)
	cfg.Fullscreen = display.Key("fullscreen").MustBool(cfg.Fullscreen)

	canvas := f.Section("canvas")
	cfg.Smooth = canvas.Key("smooth").MustBool(cfg.Smooth)
	if raw := canvas.Key("confirm").String(); raw != "" {
		keys, err := parseKeys(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.ConfirmKeys = keys
	}

	debug := f.Section("debug")
	cfg.Debug = debug.Key("enabled").MustBool(cfg.Debug)
	if raw := debug.Key("log_level").String(); raw != "" {
		cfg.LogLevel = LevelFromString(raw)
	}
	cfg.ScreenshotDir = debug.Key("screenshots").MustString(cfg.ScreenshotDir)

	audio := f.Section("audio")
	cfg.SampleRate = audio.Key("sample_rate").MustInt(cfg.SampleRate)
	cfg.Volume = audio.Key("volume").MustFloat64(cfg.Volume)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	switch {
	case c.WindowZoom < 1:
		return fmt.Errorf("inkling: config: zoom %d must be at least 1", c.WindowZoom)
	case len(c.ConfirmKeys) == 0:
		return fmt.Errorf("inkling: config: no confirm keys")
	case c.SampleRate <= 0:
		return fmt.Errorf("inkling: config: sample rate %d must be positive", c.SampleRate)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("inkling: config: volume %.2f outside [0, 1]", c.Volume)
	}
	return nil
}

// parseKeys parses a comma-separated list of ebiten key names such as
// "Enter, Space".
func parseKeys(raw string) ([]ebiten.Key, error) {
	var keys []ebiten.Key
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		k, ok := keyByName(name)
		if !ok {
			return nil, fmt.Errorf("inkling: config: unknown key %q", name)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func keyByName(name string) (ebiten.Key, bool) {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}
	return 0, false
}
