package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// options mirrors the command line. Defaults are filled in code, then the
// optional config file overlays them, then flag parsing runs — so the file
// never wins over a flag the user actually passed.
type options struct {
	Debug       bool    `short:"D" long:"debug" description:"Enable debug output (logged to ~/.mir-log)"`
	Drops       int     `short:"n" long:"drops" description:"Initial number of active drops (default 10)"`
	RGB         bool    `long:"rgb" description:"Enable RGB fade coloring"`
	Color       int     `short:"c" long:"color" description:"Terminal color code 0-15 (default 10)"`
	MinTrail    int     `long:"min-trail" description:"Minimum trail length (default 8)"`
	MaxTrail    int     `long:"max-trail" description:"Maximum trail length (default 25)"`
	GlitchProb  float64 `long:"glitch-prob" description:"Glitch probability (default 0.003)"`
	FlickerProb float64 `long:"flicker-prob" description:"Flicker probability (default 0.01)"`
	StuckProb   float64 `long:"stuck-prob" description:"Stuck character probability (default 0.02)"`
	StuckCap    int     `long:"stuck-cap" description:"Max stuck characters kept on screen, 0 = unbounded (default 50)"`
	DropProb    float64 `long:"drop-prob" description:"New drop probability (default 0.15)"`
	FPS         int     `long:"fps" description:"Logical frames per second, scales fall speed (default 12)"`
	Palette     string  `long:"palette" description:"Character palette: katakana, alphanumeric, symbols, greek or classic (default classic)"`
	NoStuck     bool    `long:"no-stuck" description:"Disable stuck characters"`
	NoGlitch    bool    `long:"no-glitch" description:"Disable glitch effects"`
	NoFlicker   bool    `long:"no-flicker" description:"Disable flickering effects"`
}

func defaultOptions() options {
	return options{
		Drops:       10,
		Color:       defaultColorCode,
		MinTrail:    8,
		MaxTrail:    25,
		GlitchProb:  0.003,
		FlickerProb: 0.01,
		StuckProb:   0.02,
		StuckCap:    50,
		DropProb:    0.15,
		FPS:         12,
		Palette:     "classic",
	}
}

// fileOptions is the YAML config file shape. Pointer fields so an absent key
// leaves the built-in default alone.
type fileOptions struct {
	Drops       *int     `yaml:"drops"`
	RGB         *bool    `yaml:"rgb"`
	Color       *int     `yaml:"color"`
	MinTrail    *int     `yaml:"min_trail"`
	MaxTrail    *int     `yaml:"max_trail"`
	GlitchProb  *float64 `yaml:"glitch_prob"`
	FlickerProb *float64 `yaml:"flicker_prob"`
	StuckProb   *float64 `yaml:"stuck_prob"`
	StuckCap    *int     `yaml:"stuck_cap"`
	DropProb    *float64 `yaml:"drop_prob"`
	FPS         *int     `yaml:"fps"`
	Palette     *string  `yaml:"palette"`
}

func (f *fileOptions) apply(opts *options) {
	if f.Drops != nil {
		opts.Drops = *f.Drops
	}
	if f.RGB != nil {
		opts.RGB = *f.RGB
	}
	if f.Color != nil {
		opts.Color = *f.Color
	}
	if f.MinTrail != nil {
		opts.MinTrail = *f.MinTrail
	}
	if f.MaxTrail != nil {
		opts.MaxTrail = *f.MaxTrail
	}
	if f.GlitchProb != nil {
		opts.GlitchProb = *f.GlitchProb
	}
	if f.FlickerProb != nil {
		opts.FlickerProb = *f.FlickerProb
	}
	if f.StuckProb != nil {
		opts.StuckProb = *f.StuckProb
	}
	if f.StuckCap != nil {
		opts.StuckCap = *f.StuckCap
	}
	if f.DropProb != nil {
		opts.DropProb = *f.DropProb
	}
	if f.FPS != nil {
		opts.FPS = *f.FPS
	}
	if f.Palette != nil {
		opts.Palette = *f.Palette
	}
}

// defaultConfigPath is $MIR_CONFIG when set, otherwise the user config dir.
func defaultConfigPath() string {
	if p := os.Getenv("MIR_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mir", "config.yaml")
}

// loadFileOptions overlays the YAML file at path onto opts. A missing file is
// fine; an unreadable or malformed one is an error the caller treats as
// fatal, since it happens before any screen mutation.
func loadFileOptions(path string, opts *options) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var f fileOptions
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	f.apply(opts)
	return nil
}
