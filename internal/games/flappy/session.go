package flappy

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Session owns the single authoritative State of one player and is its only
// mutator. It is not safe for concurrent use; drivers call it from one
// goroutine (the Bubble Tea event loop).
type Session struct {
	cfg    config.Config
	engine *Engine
	state  State
	seed   int64
	jumps  []uint64
}

// NewSession validates cfg and returns an idle session.
// Tick and Jump do nothing until Start is called.
func NewSession(cfg config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	return &Session{cfg: cfg}, nil
}

// Start begins a new game, discarding any previous one. The seed fully
// determines pipe heights.
func (s *Session) Start(seed int64) State {
	s.engine = &Engine{cfg: s.cfg, src: rand.New(rand.NewSource(seed))}
	s.seed = seed
	s.jumps = s.jumps[:0]
	s.state = s.engine.Reset()
	return s.state
}

// Tick advances the game by one step.
func (s *Session) Tick() State {
	if s.engine == nil {
		return s.state
	}
	s.state = s.engine.Step(s.state)
	return s.state
}

// Jump applies the jump impulse and journals the tick it happened on.
func (s *Session) Jump() State {
	if s.engine == nil || !s.state.Running() {
		return s.state
	}
	if n := len(s.jumps); n == 0 || s.jumps[n-1] != s.state.Tick {
		s.jumps = append(s.jumps, s.state.Tick)
	}
	s.state = s.engine.Jump(s.state)
	return s.state
}

// Snapshot returns a copy of the current state for rendering.
func (s *Session) Snapshot() State {
	return s.state.Clone()
}

// Config returns the session configuration.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Journal returns everything needed to reproduce the current game.
func (s *Session) Journal() Journal {
	return Journal{
		Seed:  s.seed,
		Jumps: slices.Clone(s.jumps),
		Ticks: s.state.Tick,
		Score: s.state.Score,
		Over:  s.state.Over,
	}
}
