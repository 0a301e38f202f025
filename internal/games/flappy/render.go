package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BirdChar      = '●'
	BirdBeakChar  = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// Smallest screen the field can be drawn on.
const (
	MinScreenW = 20
	MinScreenH = 8
)

// Viewport maps logical field coordinates to screen cells. Row 0 holds the
// HUD and the last row the ground, the field is stretched over the rest.
type Viewport struct {
	Cols, Rows int
	Top        int // Screen row of field y=0
	sx, sy     float64
}

// NewViewport fits the configured field into a screen of the given size.
func NewViewport(cfg config.Config, screenW, screenH int) Viewport {
	cols := max(screenW, 1)
	rows := max(screenH-2, 1)
	return Viewport{
		Cols: cols,
		Rows: rows,
		Top:  1,
		sx:   float64(cols) / cfg.Field.Width,
		sy:   float64(rows) / cfg.Field.Height,
	}
}

// Cells returns the half-open screen cell range covered by r, clipped to the
// field. Non-empty rects always cover at least one cell.
func (v Viewport) Cells(r core.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X * v.sx))
	x1 = int(math.Ceil(r.Right() * v.sx))
	y0 = int(math.Floor(r.Y * v.sy))
	y1 = int(math.Ceil(r.Bottom() * v.sy))
	if !r.Empty() {
		x1 = max(x1, x0+1)
		y1 = max(y1, y0+1)
	}

	x0 = core.Clamp(x0, 0, v.Cols)
	x1 = core.Clamp(x1, 0, v.Cols)
	y0 = core.Clamp(y0, 0, v.Rows) + v.Top
	y1 = core.Clamp(y1, 0, v.Rows) + v.Top
	return x0, y0, x1, y1
}

// Render draws a state into dst. It only reads s.
func Render(cfg config.Config, s State, dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorAlert)
		return
	}

	vp := NewViewport(cfg, dst.Width(), dst.Height())
	geom := &Engine{cfg: cfg} // geometry helpers only, never stepped

	for _, o := range s.Obstacles {
		drawPipe(dst, vp, geom, o)
	}

	if s.Started {
		drawBird(dst, vp, geom.BodyRect(s.Body))
	}

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar, core.ColorGround)

	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", s.Score), core.ColorHUD)

	switch s.Phase() {
	case PhaseIdle:
		drawCenteredMessage(dst, "FLAPPY", "Enter to start  |  Space/Up to flap", core.ColorHUD)
	case PhaseOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Enter/R to restart", s.Score), core.ColorAlert)
	}
}

// drawPipe renders both solid halves of an obstacle with caps facing the gap.
func drawPipe(dst *core.Screen, vp Viewport, geom *Engine, o Obstacle) {
	x0, y0, x1, y1 := vp.Cells(geom.TopRect(o))
	dst.FillRect(x0, y0, x1, y1, PipeChar, core.ColorPipe)
	if y1 > y0 {
		dst.DrawHLine(x0, y1-1, x1-x0, PipeCapTop, core.ColorPipeCap)
	}

	x0, y0, x1, y1 = vp.Cells(geom.BottomRect(o))
	dst.FillRect(x0, y0, x1, y1, PipeChar, core.ColorPipe)
	if y1 > y0 {
		dst.DrawHLine(x0, y0, x1-x0, PipeCapBottom, core.ColorPipeCap)
	}
}

func drawBird(dst *core.Screen, vp Viewport, hitbox core.Rect) {
	x0, y0, x1, y1 := vp.Cells(hitbox)
	dst.FillRect(x0, y0, x1, y1, BirdChar, core.ColorBird)
	dst.SetColor(x1-1, y0, BirdBeakChar, core.ColorBird)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxX+boxW, boxY+boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, c)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, c)
	dst.DrawTextColor(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorMuted)
}
