package flappy

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// ErrReplayDiverged is returned when re-running a journal does not reproduce
// the recorded outcome.
var ErrReplayDiverged = errors.New("flappy: replay diverged")

// Journal is the input log of one game. Jumps holds, in ascending order, the
// value of State.Tick at the moment each jump was applied.
type Journal struct {
	Seed  int64
	Jumps []uint64
	Ticks uint64
	Score int
	Over  bool
}

// Replay runs a fresh game with the given seed, applying jumps at their
// recorded ticks, until the game ends or maxTicks steps have been taken.
func Replay(cfg config.Config, seed int64, jumps []uint64, maxTicks uint64) (State, error) {
	for i := 1; i < len(jumps); i++ {
		if jumps[i] <= jumps[i-1] {
			return State{}, fmt.Errorf("flappy: jump ticks not ascending at index %d", i)
		}
	}

	s, err := NewSession(cfg)
	if err != nil {
		return State{}, err
	}
	state := s.Start(seed)

	next := 0
	for state.Running() && state.Tick < maxTicks {
		if next < len(jumps) && jumps[next] == state.Tick {
			state = s.Jump()
			next++
		}
		state = s.Tick()
	}
	return state, nil
}

// Verify replays j and checks that it ends with the recorded tick count,
// score and game-over flag.
func Verify(cfg config.Config, j Journal) (State, error) {
	state, err := Replay(cfg, j.Seed, j.Jumps, j.Ticks)
	if err != nil {
		return State{}, err
	}
	if state.Tick != j.Ticks || state.Score != j.Score || state.Over != j.Over {
		return state, fmt.Errorf("%w: got tick=%d score=%d over=%t, recorded tick=%d score=%d over=%t",
			ErrReplayDiverged, state.Tick, state.Score, state.Over, j.Ticks, j.Score, j.Over)
	}
	return state, nil
}
