package sim

import (
	"math"

	"github.com/vovakirdan/orbital-drift/internal/core"
)

// RotationIntent is the abstract attitude input for one tick.
type RotationIntent int

// Positive rotation is counter-clockwise (the orientation angle grows).
const (
	RotateRight RotationIntent = -1
	RotateNone  RotationIntent = 0
	RotateLeft  RotationIntent = 1
)

// SatelliteConfig holds the satellite's tunables.
type SatelliteConfig struct {
	ThrustPower        float64 // Velocity added by one chemical thruster burst
	MaxSpeed           float64 // Speed cap, world units per second
	ThrustCooldown     float64 // Seconds between bursts
	RotationTorque     float64 // Angular acceleration, degrees per second squared
	BatteryConsumption float64 // Battery drained per second of attitude control
	MaxBattery         float64
	InitialBattery     float64 // Battery at start; 0 means full
	Radius             float64 // Collision radius
}

// DefaultSatelliteConfig returns the stock tuning.
func DefaultSatelliteConfig() SatelliteConfig {
	return SatelliteConfig{
		ThrustPower:        1.0,
		MaxSpeed:           3.0,
		ThrustCooldown:     0.5,
		RotationTorque:     90.0,
		BatteryConsumption: 10.0,
		MaxBattery:         100.0,
		Radius:             0.4,
	}
}

// Validate reports the first invalid tunable.
func (c SatelliteConfig) Validate() error {
	switch {
	case c.ThrustPower < 0:
		return invalid("satellite thrust power must be >= 0, got %v", c.ThrustPower)
	case c.MaxSpeed <= 0:
		return invalid("satellite max speed must be > 0, got %v", c.MaxSpeed)
	case c.ThrustCooldown < 0:
		return invalid("satellite thrust cooldown must be >= 0, got %v", c.ThrustCooldown)
	case c.RotationTorque < 0:
		return invalid("satellite rotation torque must be >= 0, got %v", c.RotationTorque)
	case c.BatteryConsumption < 0:
		return invalid("satellite battery consumption must be >= 0, got %v", c.BatteryConsumption)
	case c.MaxBattery <= 0:
		return invalid("satellite max battery must be > 0, got %v", c.MaxBattery)
	case c.InitialBattery < 0 || c.InitialBattery > c.MaxBattery:
		return invalid("satellite initial battery must be within [0, %v], got %v", c.MaxBattery, c.InitialBattery)
	case c.Radius < 0:
		return invalid("satellite radius must be >= 0, got %v", c.Radius)
	}
	return nil
}

// Satellite is the player's kinematic state and control response.
// Space is frictionless: velocity and spin persist until changed.
type Satellite struct {
	cfg SatelliteConfig

	position        core.Vec2
	velocity        core.Vec2
	angle           float64 // degrees, [0, 360)
	angularVelocity float64 // degrees per second
	battery         float64
	controlEnabled  bool
	lastThrustTime  float64

	thrustObservers observers[func(direction core.Vec2)]
}

// NewSatellite creates a satellite at rest at start.
func NewSatellite(cfg SatelliteConfig, start core.Vec2) (*Satellite, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Satellite{cfg: cfg}
	s.Reset(start)
	return s, nil
}

// Reset restores the satellite to its initial state at start.
func (s *Satellite) Reset(start core.Vec2) {
	s.position = start
	s.velocity = core.Vec2{}
	s.angle = 0
	s.angularVelocity = 0
	s.battery = s.cfg.MaxBattery
	if s.cfg.InitialBattery > 0 {
		s.battery = s.cfg.InitialBattery
	}
	s.controlEnabled = true
	// Thrust is available immediately at t=0.
	s.lastThrustTime = -s.cfg.ThrustCooldown
}

// ApplyRotationInput fires the electric attitude thrusters for dt seconds.
// Without battery the input is ignored and the current spin is kept.
func (s *Satellite) ApplyRotationInput(direction RotationIntent, dt float64) {
	if !s.controlEnabled || direction == RotateNone || dt <= 0 {
		return
	}
	if s.battery <= 0 {
		return
	}
	dir := float64(direction)
	if dir > 1 {
		dir = 1
	} else if dir < -1 {
		dir = -1
	}

	s.angularVelocity += dir * s.cfg.RotationTorque * dt
	s.battery = math.Max(0, s.battery-s.cfg.BatteryConsumption*dt)
}

// ApplyThrustInput fires the chemical thruster along the forward axis if the
// cooldown has elapsed. Returns whether it fired.
func (s *Satellite) ApplyThrustInput(now float64) bool {
	if !s.controlEnabled || !s.CanThrust(now) {
		return false
	}

	dir := s.Forward()
	s.velocity = s.velocity.Add(dir.Scale(s.cfg.ThrustPower)).ClampLen(s.cfg.MaxSpeed)
	s.lastThrustTime = now

	s.thrustObservers.each(func(fn func(core.Vec2)) { fn(dir) })
	return true
}

// Integrate advances position and orientation by dt.
func (s *Satellite) Integrate(dt float64) {
	if dt <= 0 {
		return
	}
	s.velocity = s.velocity.ClampLen(s.cfg.MaxSpeed)
	s.position = s.position.Add(s.velocity.Scale(dt))
	s.angle = core.WrapDegrees(s.angle + s.angularVelocity*dt)
}

// Forward returns the unit vector the main thruster pushes along.
// At angle 0 the satellite faces +Y.
func (s *Satellite) Forward() core.Vec2 {
	rad := s.angle * math.Pi / 180
	return core.Vec2{X: -math.Sin(rad), Y: math.Cos(rad)}
}

// Teleport moves the satellite and stops all motion. Bypasses cooldown and battery.
func (s *Satellite) Teleport(position core.Vec2) {
	s.position = position
	s.velocity = core.Vec2{}
	s.angularVelocity = 0
}

// SetVelocity overrides the velocity, re-applying the speed cap.
func (s *Satellite) SetVelocity(v core.Vec2) {
	s.velocity = v.ClampLen(s.cfg.MaxSpeed)
}

// SetAngularVelocity overrides the spin rate.
func (s *Satellite) SetAngularVelocity(w float64) {
	s.angularVelocity = w
}

// ChargeBattery adds charge, capped at the maximum. The battery never
// regenerates on its own.
func (s *Satellite) ChargeBattery(amount float64) {
	if amount <= 0 {
		return
	}
	s.battery = math.Min(s.battery+amount, s.cfg.MaxBattery)
}

// CanThrust reports whether the cooldown has elapsed at now.
func (s *Satellite) CanThrust(now float64) bool {
	return now >= s.lastThrustTime+s.cfg.ThrustCooldown
}

// ThrustCooldownRemaining returns the seconds left until the next burst.
func (s *Satellite) ThrustCooldownRemaining(now float64) float64 {
	return math.Max(0, s.lastThrustTime+s.cfg.ThrustCooldown-now)
}

// OnThrust subscribes to thruster bursts. The callback receives the thrust
// direction. Returns an unsubscribe function.
func (s *Satellite) OnThrust(fn func(direction core.Vec2)) func() {
	return s.thrustObservers.add(fn)
}

func (s *Satellite) clearObservers() { s.thrustObservers.clear() }

// SetControlEnabled toggles whether input is accepted.
func (s *Satellite) SetControlEnabled(enabled bool) {
	s.controlEnabled = enabled
}

// ControlEnabled reports whether input is accepted.
func (s *Satellite) ControlEnabled() bool { return s.controlEnabled }

// Position returns the current position.
func (s *Satellite) Position() core.Vec2 { return s.position }

// Velocity returns the current velocity.
func (s *Satellite) Velocity() core.Vec2 { return s.velocity }

// Angle returns the orientation in degrees, [0, 360).
func (s *Satellite) Angle() float64 { return s.angle }

// AngularVelocity returns the spin rate in degrees per second.
func (s *Satellite) AngularVelocity() float64 { return s.angularVelocity }

// Battery returns the remaining charge.
func (s *Satellite) Battery() float64 { return s.battery }

// BatteryRatio returns the charge as a fraction of capacity.
func (s *Satellite) BatteryRatio() float64 { return s.battery / s.cfg.MaxBattery }

// Radius returns the collision radius.
func (s *Satellite) Radius() float64 { return s.cfg.Radius }

// Config returns the tuning the satellite was built with.
func (s *Satellite) Config() SatelliteConfig { return s.cfg }
