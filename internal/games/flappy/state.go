package flappy

import "slices"

// Phase is the lifecycle position of a State.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhaseOver    Phase = "over"
)

// Body is the player-controlled falling entity. X never changes after Reset.
type Body struct {
	X        float64
	Y        float64 // Top of the hitbox
	Velocity float64 // Positive = down
}

// Obstacle is a pipe pair with a passable gap spanning [GapTop, GapTop+gap).
type Obstacle struct {
	X      float64 // Left edge
	GapTop float64
}

// State is the complete simulation state. It is a value: transitions return
// a new State and never mutate the one they were given.
type State struct {
	Body      Body
	Obstacles []Obstacle // Oldest (leftmost) first, at most MaxObstacles
	Score     int
	Started   bool
	Over      bool
	Tick      uint64 // Steps applied since Reset
}

// Phase derives the lifecycle phase from the flags.
func (s State) Phase() Phase {
	switch {
	case !s.Started:
		return PhaseIdle
	case s.Over:
		return PhaseOver
	default:
		return PhaseRunning
	}
}

// Running reports whether Step and Jump have any effect.
func (s State) Running() bool {
	return s.Phase() == PhaseRunning
}

// Clone returns a deep copy that shares no memory with s.
func (s State) Clone() State {
	s.Obstacles = slices.Clone(s.Obstacles)
	return s
}
