package core

// RuntimeConfig contains platform parameters passed to a session at start.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for obstacle heights; 0 means pick one at start
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
// 50 ticks per second matches a 20ms tick period.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 50,
		Seed:     0,
	}
}
