// Package config loads runtime settings for termsprite binaries from an ini file
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// ViewportPolicy controls how often a binary samples the terminal size
type ViewportPolicy string

const (
	ViewportAlways    ViewportPolicy = "always"     // before every render
	ViewportEveryTick ViewportPolicy = "every_tick" // once per tick
	ViewportNone      ViewportPolicy = "none"       // once at startup
)

// Backend selects the terminal output adapter
type Backend string

const (
	BackendAuto  Backend = "auto"
	BackendANSI  Backend = "ansi"
	BackendTcell Backend = "tcell"
)

type EngineConfig struct {
	FPS            int            `ini:"fps"`
	UpdateViewport ViewportPolicy `ini:"update_viewport"`
	VirtualGuard   bool           `ini:"virtual_guard"`
}

type RenderConfig struct {
	Color Backend `ini:"color"`
	Plain bool    `ini:"plain"`
}

type AudioConfig struct {
	Enabled bool    `ini:"enabled"`
	Volume  float64 `ini:"volume"`
}

type LogConfig struct {
	Debug bool `ini:"debug"`
}

// Config is the full settings tree, one struct per ini section
type Config struct {
	Engine EngineConfig `ini:"engine"`
	Render RenderConfig `ini:"render"`
	Audio  AudioConfig  `ini:"audio"`
	Log    LogConfig    `ini:"log"`
}

var ErrInvalid = errors.New("invalid config")

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			FPS:            30,
			UpdateViewport: ViewportEveryTick,
			VirtualGuard:   true,
		},
		Render: RenderConfig{Color: BackendAuto},
		Audio:  AudioConfig{Enabled: true, Volume: 0.5},
	}
}

// Load reads path over the defaults. A missing file yields the defaults;
// keys absent from the file keep their default value
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load %s: %w", path, err)
	}
	if err := file.MapTo(cfg); err != nil {
		return cfg, fmt.Errorf("map %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to path in ini form
func Save(path string, cfg *Config) error {
	file := ini.Empty()
	if err := ini.ReflectFrom(file, cfg); err != nil {
		return fmt.Errorf("reflect config: %w", err)
	}
	return file.SaveTo(path)
}

// Validate rejects out-of-range values
func (c *Config) Validate() error {
	if c.Engine.FPS <= 0 || c.Engine.FPS > 240 {
		return fmt.Errorf("%w: engine.fps %d not in 1..240", ErrInvalid, c.Engine.FPS)
	}
	switch c.Engine.UpdateViewport {
	case ViewportAlways, ViewportEveryTick, ViewportNone:
	default:
		return fmt.Errorf("%w: engine.update_viewport %q", ErrInvalid, c.Engine.UpdateViewport)
	}
	switch c.Render.Color {
	case BackendAuto, BackendANSI, BackendTcell:
	default:
		return fmt.Errorf("%w: render.color %q", ErrInvalid, c.Render.Color)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %g not in 0..1", ErrInvalid, c.Audio.Volume)
	}
	return nil
}
