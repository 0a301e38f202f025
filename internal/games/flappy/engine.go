// Package flappy implements a Flappy Bird-style simulation.
// The player controls a bird that must navigate through gaps in vertical pipes.
//
// The Engine holds only configuration and the random source for pipe
// heights. All game data lives in State values, which the engine's
// transition functions take and return without mutating.
package flappy

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Engine applies the game rules to State values.
type Engine struct {
	cfg config.Config
	src Source
}

// NewEngine validates cfg and returns an engine drawing pipe heights from src.
func NewEngine(cfg config.Config, src Source) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	if src == nil {
		return nil, errors.New("flappy: nil random source")
	}
	return &Engine{cfg: cfg, src: src}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Reset returns a fresh running state: body at the start position at rest,
// one new pipe at the right edge, score zero.
func (e *Engine) Reset() State {
	return State{
		Body: Body{
			X: e.cfg.Body.StartX,
			Y: e.cfg.Body.StartY,
		},
		Obstacles: []Obstacle{e.Generate()},
		Started:   true,
	}
}

// Jump sets the body's velocity to the jump velocity. Position is untouched
// and nothing is checked until the next Step. No-op unless running.
func (e *Engine) Jump(s State) State {
	if !s.Running() {
		return s
	}
	next := s.Clone()
	next.Body.Velocity = e.cfg.Physics.JumpVelocity
	return next
}

// Step advances the simulation by one tick. No-op unless running.
//
// Order within a tick:
//  1. Integrate: position moves by the pre-tick velocity, then gravity is
//     added to velocity. Leaving the field ends the game with the body and
//     pipes left at their pre-tick values.
//  2. Pipes scroll, the leftmost expires (scoring a point) once fully past
//     the left edge, and a new pipe spawns when there is room.
//  3. The moved body is tested against the moved pipes. A hit ends the game
//     and discards this tick's pipe changes; the point scored in step 2, if
//     any, is kept.
func (e *Engine) Step(s State) State {
	if !s.Running() {
		return s
	}

	next := s.Clone()
	next.Tick++

	newY := s.Body.Y + s.Body.Velocity
	newVelocity := s.Body.Velocity + e.cfg.Physics.Gravity
	if !e.InBounds(newY) {
		next.Over = true
		return next
	}
	next.Body.Y = newY
	next.Body.Velocity = newVelocity

	obstacles, expired := e.advanceObstacles(s.Obstacles)
	next.Score += expired

	if e.Collides(next.Body, obstacles) {
		next.Over = true
		return next
	}

	next.Obstacles = obstacles
	return next
}
