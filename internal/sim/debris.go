package sim

import (
	"math"

	"github.com/vovakirdan/orbital-drift/internal/core"
)

// DebrisVariant is a debris template. The spawn director picks one per spawn.
type DebrisVariant struct {
	Name             string
	MoveSpeed        float64
	SpeedVariance    float64
	RotationSpeed    float64 // degrees per second
	RotationVariance float64
	Damage           int
	DestroyOnHit     bool
	KnockbackForce   float64 // 0 disables knockback
	Lifetime         float64 // seconds, 0 = infinite
	DestroyOffScreen bool
	OffScreenMargin  float64 // in viewport units, 1.0 = one viewport
	Radius           float64
}

// DefaultDebrisVariant is used when no variants are configured.
func DefaultDebrisVariant() DebrisVariant {
	return DebrisVariant{
		Name:             "debris",
		MoveSpeed:        2.0,
		SpeedVariance:    1.0,
		RotationSpeed:    50.0,
		RotationVariance: 30.0,
		Damage:           1,
		DestroyOnHit:     true,
		KnockbackForce:   2.0,
		DestroyOffScreen: true,
		OffScreenMargin:  2.0,
		Radius:           0.5,
	}
}

// Validate reports the first invalid tunable.
func (v DebrisVariant) Validate() error {
	switch {
	case v.MoveSpeed < 0:
		return invalid("debris %q move speed must be >= 0, got %v", v.Name, v.MoveSpeed)
	case v.SpeedVariance < 0:
		return invalid("debris %q speed variance must be >= 0, got %v", v.Name, v.SpeedVariance)
	case v.RotationVariance < 0:
		return invalid("debris %q rotation variance must be >= 0, got %v", v.Name, v.RotationVariance)
	case v.Damage < 0:
		return invalid("debris %q damage must be >= 0, got %d", v.Name, v.Damage)
	case v.KnockbackForce < 0:
		return invalid("debris %q knockback must be >= 0, got %v", v.Name, v.KnockbackForce)
	case v.Lifetime < 0:
		return invalid("debris %q lifetime must be >= 0, got %v", v.Name, v.Lifetime)
	case v.OffScreenMargin < 0:
		return invalid("debris %q off-screen margin must be >= 0, got %v", v.Name, v.OffScreenMargin)
	case v.Radius < 0:
		return invalid("debris %q radius must be >= 0, got %v", v.Name, v.Radius)
	}
	return nil
}

// Debris is one moving hazard. Instances are owned by a SpawnDirector.
type Debris struct {
	id      uint64
	variant DebrisVariant

	position        core.Vec2
	velocity        core.Vec2
	angle           float64
	angularVelocity float64
	age             float64
	alive           bool
}

// newDebris launches a debris from position along direction. Speed and spin
// are drawn from rng in a fixed order: speed, spin magnitude, spin sign.
func newDebris(id uint64, variant DebrisVariant, position, direction core.Vec2, rng *RandomSource) *Debris {
	speed := variant.MoveSpeed + rng.Range(-variant.SpeedVariance, variant.SpeedVariance)
	speed = math.Max(0, speed)

	spin := variant.RotationSpeed + rng.Range(-variant.RotationVariance, variant.RotationVariance)
	spin *= rng.Sign()

	return &Debris{
		id:              id,
		variant:         variant,
		position:        position,
		velocity:        direction.Normalize().Scale(speed),
		angularVelocity: spin,
		alive:           true,
	}
}

// Update advances the debris by dt and destroys it when its lifetime runs out
// or it drifts past the off-screen margin of view.
func (d *Debris) Update(dt float64, view core.Bounds) {
	if !d.alive || dt <= 0 {
		return
	}

	d.position = d.position.Add(d.velocity.Scale(dt))
	d.angle = core.WrapDegrees(d.angle + d.angularVelocity*dt)
	d.age += dt

	if d.variant.Lifetime > 0 && d.age >= d.variant.Lifetime {
		d.Destroy()
		return
	}
	if d.variant.DestroyOffScreen && d.offScreen(view) {
		d.Destroy()
	}
}

func (d *Debris) offScreen(view core.Bounds) bool {
	if view.Width() <= 0 || view.Height() <= 0 {
		return false
	}
	p := view.Normalize(d.position)
	m := d.variant.OffScreenMargin
	return p.X < -m || p.X > 1+m || p.Y < -m || p.Y > 1+m
}

// Destroy marks the debris dead. The owning director drops it on its next prune.
func (d *Debris) Destroy() {
	d.alive = false
}

// ID returns the per-director spawn number.
func (d *Debris) ID() uint64 { return d.id }

// Variant returns the template the debris was built from.
func (d *Debris) Variant() DebrisVariant { return d.variant }

// Name returns the variant name.
func (d *Debris) Name() string { return d.variant.Name }

// Position returns the current position.
func (d *Debris) Position() core.Vec2 { return d.position }

// Velocity returns the current velocity.
func (d *Debris) Velocity() core.Vec2 { return d.velocity }

// Angle returns the orientation in degrees.
func (d *Debris) Angle() float64 { return d.angle }

// AngularVelocity returns the spin rate in degrees per second.
func (d *Debris) AngularVelocity() float64 { return d.angularVelocity }

// Age returns seconds since spawn.
func (d *Debris) Age() float64 { return d.age }

// Damage returns the HP this debris removes on contact.
func (d *Debris) Damage() int { return d.variant.Damage }

// Radius returns the collision radius.
func (d *Debris) Radius() float64 { return d.variant.Radius }

// Alive reports whether the debris is still in play.
func (d *Debris) Alive() bool { return d.alive }
