package flappy

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func TestReplayReproducesSession(t *testing.T) {
	for _, seed := range []int64{1, 77, 2024} {
		s := newTestSession(t)
		s.Start(seed)
		final := play(s, 1500)

		j := s.Journal()
		got, err := Verify(config.Default(), j)
		if err != nil {
			t.Fatalf("seed %d: Verify() failed: %v", seed, err)
		}
		if got.Score != final.Score || got.Tick != final.Tick {
			t.Errorf("seed %d: replay ended at tick=%d score=%d, session at tick=%d score=%d",
				seed, got.Tick, got.Score, final.Tick, final.Score)
		}
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	s := newTestSession(t)
	s.Start(11)
	play(s, 1500)

	j := s.Journal()
	j.Score += 5

	_, err := Verify(config.Default(), j)
	if !errors.Is(err, ErrReplayDiverged) {
		t.Errorf("Verify() should report divergence, got %v", err)
	}
}

func TestVerifyDetectsConfigChange(t *testing.T) {
	s := newTestSession(t)
	s.Start(11)
	play(s, 1500)

	cfg := config.Default()
	cfg.Physics.Gravity = 0.9

	if _, err := Verify(cfg, s.Journal()); !errors.Is(err, ErrReplayDiverged) {
		t.Errorf("replay under different physics should diverge, got %v", err)
	}
}

func TestReplayRejectsUnorderedJumps(t *testing.T) {
	if _, err := Replay(config.Default(), 1, []uint64{5, 3}, 100); err == nil {
		t.Error("Replay() should reject descending jump ticks")
	}
}

func TestReplayStopsAtMaxTicks(t *testing.T) {
	st, err := Replay(config.Default(), 1, []uint64{0, 10, 20}, 15)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if st.Tick != 15 {
		t.Errorf("Tick = %d, expected 15", st.Tick)
	}
}
