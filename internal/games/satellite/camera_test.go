package satellite

import (
	"math"
	"testing"

	"github.com/vovakirdan/orbital-drift/internal/config"
	"github.com/vovakirdan/orbital-drift/internal/core"
)

func testCameraConfig() config.CameraConfig {
	return config.DefaultSatelliteConfig().Camera
}

func TestCameraScrollAcceleratesToMax(t *testing.T) {
	cfg := testCameraConfig()
	cfg.ScrollSpeed = 1
	cfg.MaxScrollSpeed = 2
	cfg.AccelerationRate = 0.5
	c := NewCamera(CameraScroll, cfg, core.V(0, 0))

	c.Update(1, core.Vec2{})
	if c.Position().Y != 1 {
		t.Errorf("After 1s at speed 1, y = %v", c.Position().Y)
	}
	if c.Speed() != 1.5 {
		t.Errorf("Speed = %v, expected 1.5", c.Speed())
	}

	for i := 0; i < 10; i++ {
		c.Update(1, core.Vec2{})
	}
	if c.Speed() != 2 {
		t.Errorf("Speed should cap at 2, got %v", c.Speed())
	}
}

func TestCameraScrollWithoutAcceleration(t *testing.T) {
	cfg := testCameraConfig()
	cfg.Accelerate = false
	c := NewCamera(CameraScroll, cfg, core.V(0, 5))

	c.Update(2, core.V(0, 100))
	if want := 5 + 2*cfg.ScrollSpeed; c.Position().Y != want {
		t.Errorf("y = %v, expected %v", c.Position().Y, want)
	}
	if c.Speed() != cfg.ScrollSpeed {
		t.Error("Speed should not change without acceleration")
	}
}

func TestCameraPauseResume(t *testing.T) {
	c := NewCamera(CameraScroll, testCameraConfig(), core.Vec2{})

	c.Pause()
	c.Update(1, core.Vec2{})
	if c.Position().Y != 0 {
		t.Error("Paused camera should not move")
	}

	c.Resume()
	c.Update(1, core.Vec2{})
	if c.Position().Y == 0 {
		t.Error("Resumed camera should move")
	}

	c.Reset(core.V(0, 3))
	if c.Position().Y != 3 || c.Speed() != testCameraConfig().ScrollSpeed || c.Paused() {
		t.Errorf("Reset should restore the start state, got y=%v speed=%v", c.Position().Y, c.Speed())
	}
}

func TestCameraFollowConverges(t *testing.T) {
	cfg := testCameraConfig()
	c := NewCamera(CameraFollow, cfg, core.Vec2{})
	if c.Position().Y != cfg.FollowOffset {
		t.Fatalf("Follow camera should start at the offset, got %v", c.Position().Y)
	}

	target := core.V(0, 10)
	for i := 0; i < 600; i++ {
		c.Update(1.0/60, target)
	}
	if want := 10 + cfg.FollowOffset; math.Abs(c.Position().Y-want) > 1e-3 {
		t.Errorf("y = %v, expected to settle at %v", c.Position().Y, want)
	}
}

func TestCameraFollowOneWay(t *testing.T) {
	cfg := testCameraConfig()
	cfg.OneWay = true
	c := NewCamera(CameraFollow, cfg, core.V(0, 10))
	start := c.Position().Y

	for i := 0; i < 120; i++ {
		c.Update(1.0/60, core.V(0, 0))
	}
	if c.Position().Y != start {
		t.Errorf("One-way camera moved down: %v -> %v", start, c.Position().Y)
	}

	cfg.OneWay = false
	c = NewCamera(CameraFollow, cfg, core.V(0, 10))
	for i := 0; i < 120; i++ {
		c.Update(1.0/60, core.V(0, 0))
	}
	if c.Position().Y >= start {
		t.Error("Two-way camera should follow the satellite down")
	}
}

func TestCameraFollowMinY(t *testing.T) {
	cfg := testCameraConfig()
	cfg.OneWay = false
	cfg.MinY = 2
	cfg.FollowOffset = 0
	c := NewCamera(CameraFollow, cfg, core.V(0, -5))

	if c.Position().Y != 2 {
		t.Errorf("Start below MinY should clamp, got %v", c.Position().Y)
	}
	for i := 0; i < 60; i++ {
		c.Update(1.0/60, core.V(0, -50))
	}
	if c.Position().Y != 2 {
		t.Errorf("Camera should not go below MinY, got %v", c.Position().Y)
	}
}

func TestCameraViewport(t *testing.T) {
	cfg := testCameraConfig()
	cfg.ViewHeight = 12
	cfg.CellAspect = 2
	c := NewCamera(CameraScroll, cfg, core.V(1, 4))

	view := c.Viewport(80, 20)
	if view.Height() != 12 {
		t.Errorf("Height = %v, expected 12", view.Height())
	}
	// 20 rows of 0.6 units, cells half as wide as tall.
	if math.Abs(view.Width()-24) > 1e-9 {
		t.Errorf("Width = %v, expected 24", view.Width())
	}
	if c := view.Center(); math.Abs(c.X-1) > 1e-9 || math.Abs(c.Y-4) > 1e-9 {
		t.Errorf("Center = %v, expected (1, 4)", c)
	}
}

func TestSmoothDamp(t *testing.T) {
	if got, v := smoothDamp(0, 5, 3, 0, 0.1); got != 5 || v != 0 {
		t.Errorf("Zero smooth time should snap, got %v (v=%v)", got, v)
	}

	cur, vel := 0.0, 0.0
	for i := 0; i < 1000; i++ {
		cur, vel = smoothDamp(cur, 1, vel, 0.3, 1.0/60)
		if cur > 1 {
			t.Fatalf("smoothDamp overshot: %v", cur)
		}
	}
	if math.Abs(cur-1) > 1e-6 {
		t.Errorf("smoothDamp should settle on the target, got %v", cur)
	}
}
