package satellite

import (
	"math"

	"github.com/vovakirdan/orbital-drift/internal/config"
	"github.com/vovakirdan/orbital-drift/internal/core"
)

// CameraMode selects how the viewport moves.
type CameraMode int

const (
	CameraScroll CameraMode = iota // Constant upward scroll
	CameraFollow                   // Follows the satellite upward
)

// String returns the mode name.
func (m CameraMode) String() string {
	if m == CameraFollow {
		return "follow"
	}
	return "scroll"
}

// Camera tracks the vertical center of the viewport. X is fixed at the
// start column because debris only pushes the satellite sideways.
type Camera struct {
	mode CameraMode
	cfg  config.CameraConfig

	x, y     float64
	speed    float64 // Current scroll speed
	velocity float64 // Follow smoothing state
	paused   bool
}

// NewCamera creates a camera centered on start.
func NewCamera(mode CameraMode, cfg config.CameraConfig, start core.Vec2) *Camera {
	c := &Camera{mode: mode, cfg: cfg}
	c.Reset(start)
	return c
}

// Reset recenters the camera and restores the base scroll speed.
func (c *Camera) Reset(start core.Vec2) {
	c.x = start.X
	c.y = start.Y
	c.speed = c.cfg.ScrollSpeed
	c.velocity = 0
	c.paused = false
	if c.mode == CameraFollow {
		c.y = math.Max(start.Y+c.cfg.FollowOffset, c.cfg.MinY)
	}
}

// Update moves the camera by dt seconds toward target.
func (c *Camera) Update(dt float64, target core.Vec2) {
	if c.paused || dt <= 0 {
		return
	}
	switch c.mode {
	case CameraScroll:
		c.y += c.speed * dt
		if c.cfg.Accelerate && c.speed < c.cfg.MaxScrollSpeed {
			c.speed = math.Min(c.speed+c.cfg.AccelerationRate*dt, c.cfg.MaxScrollSpeed)
		}
	case CameraFollow:
		goal := target.Y + c.cfg.FollowOffset
		if c.cfg.OneWay && goal < c.y {
			goal = c.y
		}
		c.y, c.velocity = smoothDamp(c.y, goal, c.velocity, c.cfg.SmoothTime, dt)
		if c.y < c.cfg.MinY {
			c.y = c.cfg.MinY
			c.velocity = 0
		}
	}
}

// Pause stops the camera until Resume.
func (c *Camera) Pause() { c.paused = true }

// Resume restarts a paused camera.
func (c *Camera) Resume() { c.paused = false }

// Paused reports whether the camera is stopped.
func (c *Camera) Paused() bool { return c.paused }

// Position returns the viewport center. It lets the camera drive the score.
func (c *Camera) Position() core.Vec2 { return core.V(c.x, c.y) }

// Speed returns the current scroll speed.
func (c *Camera) Speed() float64 { return c.speed }

// Mode returns the camera mode.
func (c *Camera) Mode() CameraMode { return c.mode }

// Viewport returns the world-space area visible through cols x rows cells.
func (c *Camera) Viewport(cols, rows int) core.Bounds {
	h := c.cfg.ViewHeight
	cell := h / float64(max(rows, 1))
	w := float64(max(cols, 1)) * cell / c.cfg.CellAspect
	return core.NewBounds(c.x-w/2, c.y-h/2, w, h)
}

// smoothDamp eases current toward target with a critically damped spring
// that settles in roughly smoothTime seconds.
func smoothDamp(current, target, velocity, smoothTime, dt float64) (float64, float64) {
	if smoothTime <= 0 {
		return target, 0
	}
	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	change := current - target
	temp := (velocity + omega*change) * dt
	velocity = (velocity - omega*temp) * decay
	out := target + (change+temp)*decay

	// Never overshoot.
	if (target-current > 0) == (out > target) {
		out = target
		velocity = 0
	}
	return out, velocity
}
