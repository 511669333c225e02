package viz

import "github.com/charmbracelet/harmonica"

// Camera eases the bottom of the viewport towards a target altitude so a
// long drop scrolls smoothly instead of jumping frame to frame.
type Camera struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func NewCamera(fps int) *Camera {
	return &Camera{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

// Follow advances the spring one frame towards target.
func (c *Camera) Follow(target float64) float64 {
	c.pos, c.vel = c.spring.Update(c.pos, c.vel, target)
	if c.pos < 0 {
		c.pos, c.vel = 0, 0
	}
	return c.pos
}

// Snap jumps to target with no motion.
func (c *Camera) Snap(target float64) {
	c.pos, c.vel = target, 0
}

func (c *Camera) Position() float64 { return c.pos }
