package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// BodyRect returns the body's hitbox.
func (e *Engine) BodyRect(b Body) core.Rect {
	return core.NewRect(b.X, b.Y, e.cfg.Body.Size, e.cfg.Body.Size)
}

// InBounds reports whether a body top at y keeps the hitbox inside the field.
func (e *Engine) InBounds(y float64) bool {
	return y >= 0 && y <= e.cfg.Field.Height-e.cfg.Body.Size
}

// Collides tests the body against both solid halves of every obstacle.
func (e *Engine) Collides(b Body, obstacles []Obstacle) bool {
	hitbox := e.BodyRect(b)
	for _, o := range obstacles {
		if hitbox.Intersects(e.TopRect(o)) || hitbox.Intersects(e.BottomRect(o)) {
			return true
		}
	}
	return false
}
