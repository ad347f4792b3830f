package sim

import (
	"math"

	"github.com/vovakirdan/orbital-drift/internal/core"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func nearVec(a, b core.Vec2) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

type staticView core.Bounds

func (v staticView) Viewport() core.Bounds { return core.Bounds(v) }

type fakeClock struct{ t float64 }

func (c *fakeClock) Now() float64 { return c.t }

func testView() staticView {
	return staticView(core.NewBounds(-10, -6, 20, 12))
}

// placeDebris builds a live debris at rest for collision tests.
func placeDebris(id uint64, variant DebrisVariant, pos core.Vec2) *Debris {
	return &Debris{id: id, variant: variant, position: pos, alive: true}
}
