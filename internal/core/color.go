package core

// Color is a semantic foreground color for a screen cell.
// The platform layer maps each value to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBird
	ColorPipe
	ColorPipeCap
	ColorGround
	ColorHUD
	ColorAlert // Game-over banner
	ColorMuted
)
