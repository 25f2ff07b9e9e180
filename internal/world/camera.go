package world

import (
	"math"

	"github.com/tatianab/event-engine/internal/models"
)

const (
	// DefaultCameraSpeed is in tiles per tick.
	DefaultCameraSpeed = 0.25
	// DefaultTurnSpeed is in degrees per tick.
	DefaultTurnSpeed = 6.0
)

// Camera eases toward its target at a fixed speed, one Update per tick.
type Camera struct {
	world *World

	pos, target        models.Vec3
	angle, targetAngle float64
	follow             bool

	Speed     float64
	TurnSpeed float64
}

// NewCamera returns a camera following the player in w.
func NewCamera(w *World) *Camera {
	c := &Camera{world: w, Speed: DefaultCameraSpeed, TurnSpeed: DefaultTurnSpeed}
	c.Reset()
	return c
}

// Reset snaps back to the default view over the player and resumes
// following it.
func (c *Camera) Reset() {
	c.follow = true
	c.angle, c.targetAngle = 0, 0
	if p, ok := c.world.Position(PlayerID); ok {
		c.pos, c.target = p, p
	}
}

// Set jumps to pos immediately.
func (c *Camera) Set(pos models.Vec3) {
	c.follow = false
	c.pos, c.target = pos, pos
}

func (c *Camera) MoveTo(pos models.Vec3) {
	c.follow = false
	c.target = pos
}

// Rotate turns the view by degrees relative to the current target angle.
func (c *Camera) Rotate(degrees float64) {
	c.targetAngle += degrees
}

func (c *Camera) AtTarget() bool {
	return c.pos == c.target && c.angle == c.targetAngle
}

// Update moves the camera one tick closer to its target.
func (c *Camera) Update() {
	if c.follow {
		if p, ok := c.world.Position(PlayerID); ok {
			c.pos, c.target = p, p
		}
	} else {
		c.pos = approach(c.pos, c.target, c.Speed)
	}

	diff := c.targetAngle - c.angle
	if math.Abs(diff) <= c.TurnSpeed {
		c.angle = c.targetAngle
	} else {
		c.angle += math.Copysign(c.TurnSpeed, diff)
	}
}

func (c *Camera) Position() models.Vec3 { return c.pos }
func (c *Camera) Angle() float64        { return c.angle }

// snapDistance absorbs float error left over from repeated easing steps.
const snapDistance = 1e-9

// approach moves from toward to by at most step, snapping when within reach.
func approach(from, to models.Vec3, step float64) models.Vec3 {
	dx, dy, dz := to.X-from.X, to.Y-from.Y, to.Z-from.Z
	dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if dist <= step+snapDistance {
		return to
	}
	s := step / dist
	return models.Vec3{X: from.X + dx*s, Y: from.Y + dy*s, Z: from.Z + dz*s}
}
