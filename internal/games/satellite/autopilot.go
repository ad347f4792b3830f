package satellite

import (
	"math"

	"github.com/vovakirdan/orbital-drift/internal/core"
)

// Autopilot flies the satellite for headless runs. It steers toward a point
// just above the viewport center and away from debris it expects to come
// close. Its output depends only on the game state, so seeded runs repeat.
type Autopilot struct {
	Lookahead float64 // Seconds of debris motion to anticipate
	Clearance float64 // Extra distance kept from debris, world units
	Tolerance float64 // Heading error in degrees accepted before firing
	Deadband  float64 // Velocity error ignored, world units per second
}

// NewAutopilot returns an autopilot with stock tuning.
func NewAutopilot() *Autopilot {
	return &Autopilot{
		Lookahead: 1.0,
		Clearance: 1.5,
		Tolerance: 20,
		Deadband:  0.4,
	}
}

// Next returns the input for the next tick of g.
func (a *Autopilot) Next(g *Game) core.InputFrame {
	in := core.NewInputFrame()
	w := g.World()
	if w == nil || g.State().GameOver || w.Health().IsDead() {
		return in
	}
	sat := w.Satellite()
	pos := sat.Position()
	view := w.Viewport()

	// Aim above center so the scroll does not drag us off the bottom.
	steer := view.Center().Add(core.V(0, view.Height()*0.15)).Sub(pos)
	for _, d := range w.Spawner().Active() {
		future := d.Position().Add(d.Velocity().Scale(a.Lookahead))
		away := pos.Sub(future)
		danger := d.Radius() + sat.Radius() + a.Clearance
		if dist := away.Len(); dist > 0 && dist < danger {
			steer = steer.Add(away.Normalize().Scale((danger - dist) * 4))
		}
	}

	desired := steer.ClampLen(sat.Config().MaxSpeed)
	correction := desired.Sub(sat.Velocity())
	if correction.Len() < a.Deadband {
		// Nothing to fix: just stop spinning.
		switch {
		case sat.AngularVelocity() > 5:
			in.Set(core.ActionRotateRight)
		case sat.AngularVelocity() < -5:
			in.Set(core.ActionRotateLeft)
		}
		return in
	}

	heading := math.Atan2(-correction.X, correction.Y) * 180 / math.Pi
	diff := signedDegrees(heading - sat.Angle())
	predicted := diff - sat.AngularVelocity()*0.5
	switch {
	case predicted > 5:
		in.Set(core.ActionRotateLeft)
	case predicted < -5:
		in.Set(core.ActionRotateRight)
	}

	if math.Abs(diff) < a.Tolerance && sat.CanThrust(w.Now()) {
		in.Set(core.ActionThrust)
	}
	return in
}

// signedDegrees maps an angle into (-180, 180].
func signedDegrees(deg float64) float64 {
	deg = core.WrapDegrees(deg)
	if deg > 180 {
		deg -= 360
	}
	return deg
}
