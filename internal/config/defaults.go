package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultYAML []byte

// Default returns the built-in configuration. The embedded YAML mirrors
// these values; Default is the fallback when the embed cannot be parsed.
func Default() Config {
	return Config{
		Field: FieldConfig{
			Width:  400,
			Height: 600,
		},
		Body: BodyConfig{
			StartX: 50,
			StartY: 300,
			Size:   30,
		},
		Physics: PhysicsConfig{
			Gravity:      0.5,
			JumpVelocity: -10,
			ScrollSpeed:  3,
		},
		Obstacles: ObstacleConfig{
			Width:  50,
			Gap:    150,
			Margin: 50,
		},
		Timing: TimingConfig{
			TickRate: 50, // 20ms per tick
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
