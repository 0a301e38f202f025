// Package config provides YAML-based configuration loading and validation
// for the flappy simulation.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config contains all tunables of the simulation. All distances are in
// logical field units, velocities in units per tick.
type Config struct {
	Field     FieldConfig    `yaml:"field"`
	Body      BodyConfig     `yaml:"body"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Timing    TimingConfig   `yaml:"timing"`
}

// FieldConfig defines the play area.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BodyConfig defines the bird's start position and square hitbox.
type BodyConfig struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	Size   float64 `yaml:"size"`
}

// PhysicsConfig defines integration parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // Added to velocity each tick
	JumpVelocity float64 `yaml:"jump_velocity"` // Negative = up
	ScrollSpeed  float64 `yaml:"scroll_speed"`  // Obstacle movement per tick
}

// ObstacleConfig defines pipe geometry.
type ObstacleConfig struct {
	Width  float64 `yaml:"width"`
	Gap    float64 `yaml:"gap"`
	Margin float64 `yaml:"margin"` // Minimum solid pipe above and below the gap
}

// TimingConfig defines the tick cadence used by drivers.
type TimingConfig struct {
	TickRate int `yaml:"tick_rate"` // Ticks per second
}

// GapTopRange returns the inclusive range of valid gap offsets.
func (c Config) GapTopRange() (lo, hi float64) {
	return c.Obstacles.Margin, c.Field.Height - c.Obstacles.Gap - c.Obstacles.Margin
}

// Validate checks that the configuration describes a playable field.
// Returned errors wrap ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	for _, f := range c.floats() {
		check(!math.IsInf(f.value, 0) && !math.IsNaN(f.value), "%s must be finite, got %g", f.name, f.value)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	check(c.Field.Width > 0, "field.width must be positive, got %g", c.Field.Width)
	check(c.Field.Height > 0, "field.height must be positive, got %g", c.Field.Height)
	check(c.Body.Size > 0, "body.size must be positive, got %g", c.Body.Size)
	check(c.Body.Size < c.Field.Height, "body.size %g must be smaller than field.height %g", c.Body.Size, c.Field.Height)
	check(c.Body.StartX >= 0 && c.Body.StartX+c.Body.Size <= c.Field.Width,
		"body.start_x %g places the body outside the field", c.Body.StartX)
	check(c.Body.StartY >= 0 && c.Body.StartY <= c.Field.Height-c.Body.Size,
		"body.start_y %g places the body outside the field", c.Body.StartY)
	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %g", c.Physics.Gravity)
	check(c.Physics.JumpVelocity < 0, "physics.jump_velocity must be negative, got %g", c.Physics.JumpVelocity)
	check(c.Physics.ScrollSpeed > 0, "physics.scroll_speed must be positive, got %g", c.Physics.ScrollSpeed)
	check(c.Obstacles.Width > 0, "obstacles.width must be positive, got %g", c.Obstacles.Width)
	check(c.Obstacles.Gap > 0, "obstacles.gap must be positive, got %g", c.Obstacles.Gap)
	check(c.Obstacles.Margin >= 0, "obstacles.margin must not be negative, got %g", c.Obstacles.Margin)
	if lo, hi := c.GapTopRange(); lo > hi {
		errs = append(errs, fmt.Errorf("obstacles.gap %g with margin %g leaves no spawn range in field height %g",
			c.Obstacles.Gap, c.Obstacles.Margin, c.Field.Height))
	}
	check(c.Timing.TickRate > 0, "timing.tick_rate must be positive, got %d", c.Timing.TickRate)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// namedFloat is a float setting with its YAML path.
type namedFloat struct {
	name  string
	value float64
}

// floats lists every float setting in document order.
func (c Config) floats() []namedFloat {
	return []namedFloat{
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"body.start_x", c.Body.StartX},
		{"body.start_y", c.Body.StartY},
		{"body.size", c.Body.Size},
		{"physics.gravity", c.Physics.Gravity},
		{"physics.jump_velocity", c.Physics.JumpVelocity},
		{"physics.scroll_speed", c.Physics.ScrollSpeed},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.gap", c.Obstacles.Gap},
		{"obstacles.margin", c.Obstacles.Margin},
	}
}

// Fingerprint returns a stable hash of the simulation-relevant settings.
// Two configs with the same fingerprint replay identically.
func (c Config) Fingerprint() (uint64, error) {
	sim := c
	sim.Timing = TimingConfig{} // cadence does not affect outcomes
	data, err := yaml.Marshal(sim)
	if err != nil {
		return 0, fmt.Errorf("config: cannot encode for fingerprint: %w", err)
	}
	return xxhash.Sum64(data), nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// Parse decodes and validates a YAML document. Fields missing from the
// document keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: cannot parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
