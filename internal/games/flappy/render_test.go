package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func screenContains(s *core.Screen, r rune) bool {
	return strings.ContainsRune(s.String(), r)
}

func TestRenderIdle(t *testing.T) {
	screen := core.NewScreen(80, 24)
	Render(config.Default(), State{}, screen)

	if !strings.Contains(screen.String(), "FLAPPY") {
		t.Error("idle screen should show the start prompt")
	}
	if screenContains(screen, BirdChar) {
		t.Error("bird should not be drawn before the game starts")
	}
}

func TestRenderRunning(t *testing.T) {
	cfg := config.Default()
	screen := core.NewScreen(80, 24)
	s := runningState(300, Obstacle{X: 200, GapTop: 225})

	Render(cfg, s, screen)

	if !screenContains(screen, BirdChar) {
		t.Error("bird should be drawn")
	}
	if screen.GetCell(0, 23).Rune != GroundChar {
		t.Errorf("ground should be drawn at bottom, got %q", screen.GetCell(0, 23).Rune)
	}
	// Pipe at x=200..250 maps to columns 40..49; row 1 is field y=0
	if screen.GetCell(45, 1).Rune != PipeChar {
		t.Errorf("top pipe should start at the first field row, got %q", screen.GetCell(45, 1).Rune)
	}
	if screen.GetCell(45, 22).Rune != PipeChar {
		t.Errorf("bottom pipe should reach the last field row, got %q", screen.GetCell(45, 22).Rune)
	}
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD should show score, row 0 = %q", screen.Row(0))
	}
	if strings.Contains(screen.String(), "GAME OVER") {
		t.Error("running game should not show game over")
	}
}

func TestRenderOver(t *testing.T) {
	screen := core.NewScreen(80, 24)
	s := runningState(300)
	s.Over = true
	s.Score = 7

	Render(config.Default(), s, screen)

	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Score: 7") {
		t.Errorf("game over banner missing:\n%s", out)
	}
}

func TestRenderTooSmall(t *testing.T) {
	screen := core.NewScreen(10, 5)
	Render(config.Default(), runningState(300), screen)

	if screenContains(screen, GroundChar) {
		t.Error("nothing but the size warning should be drawn on a tiny screen")
	}
}

func TestViewportCells(t *testing.T) {
	vp := NewViewport(config.Default(), 80, 24)

	if vp.Cols != 80 || vp.Rows != 22 || vp.Top != 1 {
		t.Fatalf("viewport = %+v, expected 80x22 starting at row 1", vp)
	}

	// Off-field rects clip to nothing
	x0, _, x1, _ := vp.Cells(core.NewRect(400, 0, 50, 100))
	if x1 > x0 {
		t.Errorf("rect right of the field should clip to empty, got columns [%d, %d)", x0, x1)
	}

	// Tiny rects still cover a cell
	x0, y0, x1, y1 := vp.Cells(core.NewRect(100, 100, 0.1, 0.1))
	if x1-x0 != 1 || y1-y0 != 1 {
		t.Errorf("tiny rect should cover one cell, got [%d,%d)x[%d,%d)", x0, x1, y0, y1)
	}
}
