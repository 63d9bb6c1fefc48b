package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/physics"
	"github.com/san-kum/pendulum/internal/playback"
)

const (
	DefaultLength   = 1.0
	DefaultFPS      = 200
	DefaultDt       = 0.005
	DefaultDuration = 10.0
)

type Config struct {
	Length          float64 `yaml:"length"`
	AngleDegrees    float64 `yaml:"angle_degrees"`
	AngularVelocity float64 `yaml:"angular_velocity"`
	Gravity         float64 `yaml:"gravity"`
	LegacyPi        bool    `yaml:"legacy_pi"`
	StartPlaying    bool    `yaml:"start_playing"`
	PauseOnBlur     bool    `yaml:"pause_on_blur"`
	FPS             int     `yaml:"fps"`
	Dt              float64 `yaml:"dt"`
	Duration        float64 `yaml:"duration"`
}

func DefaultConfig() *Config {
	return &Config{
		Length:      DefaultLength,
		Gravity:     physics.Gravity,
		PauseOnBlur: true,
		FPS:         DefaultFPS,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes a YAML file over cfg, leaving keys the file omits as they
// were, and validates the result.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !(c.Length > 0) || math.IsInf(c.Length, 0) {
		return fmt.Errorf("length %v: %w", c.Length, dynamo.ErrParameterBounds)
	}
	if math.IsNaN(c.Gravity) || math.IsInf(c.Gravity, 0) {
		return fmt.Errorf("gravity %v: %w", c.Gravity, dynamo.ErrParameterBounds)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps %d: %w", c.FPS, dynamo.ErrParameterBounds)
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("dt %v: %w", c.Dt, dynamo.ErrParameterBounds)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("duration %v: %w", c.Duration, dynamo.ErrParameterBounds)
	}
	return nil
}

// NewPendulum builds the pendulum described by c.
func (c *Config) NewPendulum() (*physics.Pendulum, error) {
	p := physics.NewPendulum()
	p.Gravity = c.Gravity
	if c.LegacyPi {
		p.Pi = physics.LegacyPi
	}
	if err := p.SetLength(c.Length); err != nil {
		return nil, err
	}
	p.SetDegrees(c.AngleDegrees)
	p.SetVelocity(c.AngularVelocity)
	return p, nil
}

func (c *Config) InitialState() playback.State {
	if c.StartPlaying {
		return playback.Playing
	}
	return playback.Paused
}
