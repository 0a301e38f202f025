package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	session, err := flappy.NewSession(config.Default())
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	rt := core.DefaultConfig()
	rt.Seed = 7
	return NewModel(session, nil, rt, log.New(io.Discard))
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelIdleDoesNotTick(t *testing.T) {
	m := newTestModel(t)

	if cmd := m.Init(); cmd != nil {
		t.Error("Init should not arm a timer")
	}
	if m.Armed() {
		t.Error("idle model should not be armed")
	}

	m, cmd := update(t, m, TickMsg{Gen: 0})
	if cmd != nil {
		t.Error("tick while idle should not re-arm")
	}
	if m.session.Snapshot().Started {
		t.Error("tick while idle should not start the game")
	}
}

func TestModelStartArmsTimer(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, keyMsg("enter"))
	if cmd == nil {
		t.Fatal("start should arm the timer")
	}
	if !m.Armed() || m.gen != 1 {
		t.Errorf("armed=%t gen=%d, expected armed gen 1", m.Armed(), m.gen)
	}
	if !m.session.Snapshot().Running() {
		t.Error("session should be running after start")
	}
}

func TestModelTickAdvancesAndRearms(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyMsg("enter"))

	m, cmd := update(t, m, TickMsg{Gen: m.gen})
	if cmd == nil {
		t.Error("tick while running should re-arm")
	}
	if got := m.session.Snapshot().Tick; got != 1 {
		t.Errorf("Tick = %d, expected 1", got)
	}
}

func TestModelDropsStaleTick(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyMsg("enter"))
	stale := m.gen

	// Restarting bumps the generation
	m, _ = update(t, m, keyMsg("r"))
	if m.gen != stale+1 {
		t.Fatalf("gen = %d, expected %d", m.gen, stale+1)
	}

	m, cmd := update(t, m, TickMsg{Gen: stale})
	if cmd != nil {
		t.Error("stale tick should not re-arm")
	}
	if got := m.session.Snapshot().Tick; got != 0 {
		t.Errorf("stale tick should not step, Tick = %d", got)
	}
}

func TestModelGameOverDisarms(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyMsg("enter"))

	var cmd tea.Cmd
	for i := 0; i < 10000 && m.session.Snapshot().Running(); i++ {
		m, cmd = update(t, m, TickMsg{Gen: m.gen})
	}

	if !m.session.Snapshot().Over {
		t.Fatal("free fall should end the game")
	}
	if m.Armed() {
		t.Error("timer should be disarmed after game over")
	}
	if cmd != nil {
		t.Error("game over without a store should return no command")
	}

	// Further ticks from the same generation are ignored
	before := m.session.Snapshot().Tick
	m, cmd = update(t, m, TickMsg{Gen: m.gen})
	if cmd != nil || m.session.Snapshot().Tick != before {
		t.Error("tick after game over should be ignored")
	}
}

func TestModelJump(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyMsg("enter"))

	m, _ = update(t, m, keyMsg("space"))
	if v := m.session.Snapshot().Body.Velocity; v != -10 {
		t.Errorf("Velocity after jump = %v, expected -10", v)
	}
	if j := m.session.Journal(); len(j.Jumps) != 1 || j.Jumps[0] != 0 {
		t.Errorf("journal = %v, expected one jump at tick 0", j.Jumps)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResizeKeepsState(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, TickMsg{Gen: m.gen})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 100x39", m.screen.Width(), m.screen.Height())
	}
	if s := m.session.Snapshot(); !s.Running() || s.Tick != 1 {
		t.Errorf("resize should not reset play, got phase=%s tick=%d", s.Phase(), s.Tick)
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, keyMsg("?"))
	if !m.help.ShowAll {
		t.Error("? should expand help")
	}
	if !strings.Contains(m.View(), "FLAPPY") {
		t.Error("idle view should show the start prompt")
	}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		key  string
		want core.Action
	}{
		{"space", core.ActionJump},
		{"w", core.ActionJump},
		{"enter", core.ActionStart},
		{"r", core.ActionStart},
		{"q", core.ActionQuit},
		{"ctrl+c", core.ActionQuit},
		{"x", core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := keys.Action(keyMsg(tt.key)); got != tt.want {
				t.Errorf("Action(%q) = %s, expected %s", tt.key, got, tt.want)
			}
		})
	}
}
