package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// MaxObstacles is the number of pipes that may be live at once.
const MaxObstacles = 2

// Source supplies uniformly distributed values in [0, 1).
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Generate creates a new obstacle at the right edge of the field with a gap
// offset drawn uniformly from the configured range.
func (e *Engine) Generate() Obstacle {
	lo, hi := e.cfg.GapTopRange()
	return Obstacle{
		X:      e.cfg.Field.Width,
		GapTop: lo + e.src.Float64()*(hi-lo),
	}
}

// advanceObstacles scrolls, expires and spawns pipes for one tick.
// It returns the new queue and how many pipes expired (0 or 1).
func (e *Engine) advanceObstacles(prev []Obstacle) ([]Obstacle, int) {
	next := make([]Obstacle, len(prev), MaxObstacles+1)
	for i, o := range prev {
		o.X -= e.cfg.Physics.ScrollSpeed
		next[i] = o
	}

	// Only the leftmost pipe can leave the field in a tick
	expired := 0
	if len(next) > 0 && next[0].X+e.cfg.Obstacles.Width < 0 {
		next = next[1:]
		expired = 1
	}

	if len(next) == 0 || (len(next) < MaxObstacles && next[len(next)-1].X < e.cfg.Field.Width/2) {
		next = append(next, e.Generate())
	}

	return next, expired
}

// TopRect returns the solid region above the gap.
func (e *Engine) TopRect(o Obstacle) core.Rect {
	return core.NewRect(o.X, 0, e.cfg.Obstacles.Width, o.GapTop)
}

// BottomRect returns the solid region from the bottom of the gap to the floor.
func (e *Engine) BottomRect(o Obstacle) core.Rect {
	bottomY := o.GapTop + e.cfg.Obstacles.Gap
	return core.NewRect(o.X, bottomY, e.cfg.Obstacles.Width, e.cfg.Field.Height-bottomY)
}
