package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim     SimConfig     `toml:"sim"`
	Render  RenderConfig  `toml:"render"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
	Data    DataConfig    `toml:"data"`
	Scripts ScriptsConfig `toml:"scripts"`
	Profile ProfileConfig `toml:"profile"`
}

type SimConfig struct {
	Width    float64       `toml:"width"`
	Height   float64       `toml:"height"`
	CellSize float64       `toml:"cell_size"` // collision grid cell side, world units
	TickRate time.Duration `toml:"tick_rate"`
	MaxTicks uint64        `toml:"max_ticks"` // 0 = run until interrupted
	Seed     int64         `toml:"seed"`      // 0 = seed from clock
}

type RenderConfig struct {
	Enabled bool `toml:"enabled"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr; set when rendering to the terminal
}

type DataConfig struct {
	Scenario string `toml:"scenario"`
}

type ScriptsConfig struct {
	Dir string `toml:"dir"`
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu", "mem"
	Path string `toml:"path"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Sim.Width <= 0 || c.Sim.Height <= 0 {
		return errors.New("sim.width and sim.height must be positive")
	}
	if c.Sim.CellSize <= 0 {
		return errors.New("sim.cell_size must be positive")
	}
	if c.Sim.TickRate <= 0 {
		return errors.New("sim.tick_rate must be positive")
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("profile.mode %q: want cpu, mem or empty", c.Profile.Mode)
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Sim: SimConfig{
			Width:    800,
			Height:   600,
			CellSize: 50,
			TickRate: 16 * time.Millisecond,
		},
		Render: RenderConfig{
			Enabled: true,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "blastsim.log",
		},
		Data: DataConfig{
			Scenario: "data/yaml/scenario.yaml",
		},
		Scripts: ScriptsConfig{
			Dir: "scripts",
		},
		Profile: ProfileConfig{
			Path: ".",
		},
	}
}
