package flappy

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(config.Default())
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

// play drives a session with the autopilot until it ends or maxTicks pass.
func play(s *Session, maxTicks uint64) State {
	state := s.Snapshot()
	for state.Running() && state.Tick < maxTicks {
		if autopilot(state) {
			state = s.Jump()
		}
		state = s.Tick()
	}
	return state
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Physics.Gravity = 0

	if _, err := NewSession(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("NewSession() should fail with ErrInvalid, got %v", err)
	}
}

func TestSessionIdleUntilStart(t *testing.T) {
	s := newTestSession(t)

	if st := s.Tick(); st.Phase() != PhaseIdle {
		t.Errorf("Tick before Start: phase = %s, expected idle", st.Phase())
	}
	if st := s.Jump(); st.Phase() != PhaseIdle {
		t.Errorf("Jump before Start: phase = %s, expected idle", st.Phase())
	}
	if j := s.Journal(); len(j.Jumps) != 0 {
		t.Errorf("idle jumps should not be journaled, got %v", j.Jumps)
	}

	st := s.Start(1)
	if st.Phase() != PhaseRunning {
		t.Errorf("after Start: phase = %s, expected running", st.Phase())
	}
}

func TestSessionDeterminism(t *testing.T) {
	a := newTestSession(t)
	b := newTestSession(t)
	a.Start(12345)
	b.Start(12345)

	sa := play(a, 2000)
	sb := play(b, 2000)

	if !reflect.DeepEqual(sa, sb) {
		t.Errorf("same seed and inputs diverged:\n a %+v\n b %+v", sa, sb)
	}
	if !reflect.DeepEqual(a.Journal(), b.Journal()) {
		t.Error("journals differ for identical runs")
	}
}

func TestSessionRestart(t *testing.T) {
	s := newTestSession(t)
	s.Start(42)
	play(s, 200)

	st := s.Start(42)
	if st.Score != 0 || st.Over || st.Tick != 0 {
		t.Errorf("Start should re-initialise, got %+v", st)
	}
	if j := s.Journal(); len(j.Jumps) != 0 || j.Seed != 42 {
		t.Errorf("Start should clear the journal, got %+v", j)
	}
}

func TestSessionJournalsJumpTicks(t *testing.T) {
	s := newTestSession(t)
	s.Start(3)

	s.Jump()
	s.Jump() // same tick, journaled once
	s.Tick()
	s.Tick()
	s.Jump()

	j := s.Journal()
	if !reflect.DeepEqual(j.Jumps, []uint64{0, 2}) {
		t.Errorf("Jumps = %v, expected [0 2]", j.Jumps)
	}
	if j.Ticks != 2 {
		t.Errorf("Ticks = %d, expected 2", j.Ticks)
	}
}

func TestSessionSnapshotIsCopy(t *testing.T) {
	s := newTestSession(t)
	s.Start(9)

	snap := s.Snapshot()
	snap.Obstacles[0].X = -1000
	snap.Score = 99

	if again := s.Snapshot(); again.Obstacles[0].X == -1000 || again.Score == 99 {
		t.Error("mutating a snapshot must not affect the session")
	}
}

func TestSessionNoOpAfterOver(t *testing.T) {
	s := newTestSession(t)
	s.Start(5)

	// Never flap: the bird falls to the floor
	var st State
	for i := 0; i < 1000 && !st.Over; i++ {
		st = s.Tick()
	}
	if !st.Over {
		t.Fatal("bird should hit the floor without input")
	}

	frozen := s.Snapshot()
	s.Jump()
	s.Tick()
	if !reflect.DeepEqual(s.Snapshot(), frozen) {
		t.Error("state changed after game over")
	}
	if j := s.Journal(); len(j.Jumps) != 0 {
		t.Errorf("jump after game over should not be journaled, got %v", j.Jumps)
	}
}
