package sim

import (
	"errors"

	"github.com/vovakirdan/orbital-drift/internal/core"
)

// Input is the abstract control intent consumed by one Tick.
type Input struct {
	Rotation RotationIntent
	Thrust   bool
}

// ReferencePoint is anything whose height drives the score.
type ReferencePoint interface {
	Position() core.Vec2
}

// Config assembles every component's tuning for a World.
type Config struct {
	Seed     int64
	Start    core.Vec2
	Viewport core.Bounds

	Satellite SatelliteConfig
	Health    HealthConfig
	Spawn     SpawnConfig

	ScoreMultiplier float64
	ScoreRatchet    bool
	GameOverDelay   float64
}

// DefaultConfig returns the stock tuning with a viewport centered on the start.
func DefaultConfig() Config {
	return Config{
		Seed:            1,
		Viewport:        core.NewBounds(-10, -6, 20, 12),
		Satellite:       DefaultSatelliteConfig(),
		Health:          DefaultHealthConfig(),
		Spawn:           DefaultSpawnConfig(),
		ScoreMultiplier: 10,
		GameOverDelay:   DefaultGameOverDelay,
	}
}

// Validate checks every component's tuning.
func (c Config) Validate() error {
	if c.Viewport.Width() <= 0 || c.Viewport.Height() <= 0 {
		return invalid("viewport must have a positive size, got %vx%v", c.Viewport.Width(), c.Viewport.Height())
	}
	if c.ScoreMultiplier < 0 {
		return invalid("score multiplier must be >= 0, got %v", c.ScoreMultiplier)
	}
	if c.GameOverDelay < 0 {
		return invalid("game over delay must be >= 0, got %v", c.GameOverDelay)
	}
	return errors.Join(c.Satellite.Validate(), c.Health.Validate(), c.Spawn.Validate())
}

// World hosts one session of the simulation and advances its components in
// a fixed order. It is not safe for concurrent use.
type World struct {
	cfg      Config
	now      float64
	ticks    uint64
	viewport core.Bounds
	closed   bool

	rng        *RandomSource
	scheduler  *EventScheduler
	satellite  *Satellite
	health     *HealthState
	spawner    *SpawnDirector
	collisions *CollisionResolver
	score      *ScoreAccumulator
	gameOver   *GameOverSequencer

	reference ReferencePoint
	lastHits  []Collision
	unsubs    []func()
}

// New builds a World from cfg, rejecting invalid tuning.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		cfg:      cfg,
		viewport: cfg.Viewport,
		rng:      NewRandomSource(cfg.Seed),
	}
	w.scheduler = NewEventScheduler(w)

	var err error
	if w.satellite, err = NewSatellite(cfg.Satellite, cfg.Start); err != nil {
		return nil, err
	}
	if w.health, err = NewHealthState(cfg.Health); err != nil {
		return nil, err
	}
	if w.spawner, err = NewSpawnDirector(cfg.Spawn, w.rng, w); err != nil {
		return nil, err
	}
	if w.score, err = NewScoreAccumulator(cfg.ScoreMultiplier, cfg.ScoreRatchet); err != nil {
		return nil, err
	}
	if w.gameOver, err = NewGameOverSequencer(w.health, w.scheduler, cfg.GameOverDelay); err != nil {
		return nil, err
	}
	w.collisions = NewCollisionResolver(w.satellite, w.health)

	// A dead satellite no longer responds to input.
	w.unsubs = append(w.unsubs, w.health.OnDeath(func() {
		w.satellite.SetControlEnabled(false)
	}))

	w.reference = w.satellite
	w.score.Start(w.reference.Position().Y)
	return w, nil
}

// Tick advances the simulation by dt seconds.
func (w *World) Tick(dt float64, in Input) {
	if w.closed || dt <= 0 {
		return
	}
	w.now += dt
	w.ticks++

	if in.Rotation != RotateNone {
		w.satellite.ApplyRotationInput(in.Rotation, dt)
	}
	if in.Thrust {
		w.satellite.ApplyThrustInput(w.now)
	}
	w.satellite.Integrate(dt)

	w.spawner.Tick(dt)
	w.lastHits = w.collisions.Resolve(w.spawner.Active())
	w.spawner.Prune()

	w.health.Tick(dt)
	w.score.Update(w.reference.Position().Y)
	w.scheduler.Tick(w.now)
}

// Now returns the simulation time in seconds.
func (w *World) Now() float64 { return w.now }

// Ticks returns the number of ticks advanced since the last reset.
func (w *World) Ticks() uint64 { return w.ticks }

// Viewport returns the current world-space viewport.
func (w *World) Viewport() core.Bounds { return w.viewport }

// SetViewport replaces the viewport used for spawning and off-screen checks.
func (w *World) SetViewport(b core.Bounds) { w.viewport = b }

// ReportExit records that the satellite left the viewport. It is fatal.
func (w *World) ReportExit() bool {
	if w.closed {
		return false
	}
	return w.health.Kill()
}

// TrackReference selects the point whose height drives the score. The
// baseline is not recaptured. Nil restores the satellite.
func (w *World) TrackReference(ref ReferencePoint) {
	if ref == nil {
		ref = w.satellite
	}
	w.reference = ref
}

// Reset starts a new session with seed, clearing every component.
// Pending scheduled events are dropped. A shut down World stays closed.
func (w *World) Reset(seed int64) {
	if w.closed {
		return
	}
	w.cfg.Seed = seed
	w.rng.Reseed(seed)
	w.now = 0
	w.ticks = 0
	w.lastHits = nil

	w.scheduler.Clear()
	w.spawner.Reset()
	w.satellite.Reset(w.cfg.Start)
	w.health.Reset()
	w.gameOver.Rearm()
	w.score.Start(w.reference.Position().Y)
}

// Shutdown detaches every subscriber and drops pending work. A closed
// World ignores Tick.
func (w *World) Shutdown() {
	if w.closed {
		return
	}
	w.closed = true
	for _, unsub := range w.unsubs {
		unsub()
	}
	w.unsubs = nil
	w.gameOver.Detach()
	w.scheduler.Clear()
	w.spawner.ClearAll()

	w.health.clearObservers()
	w.satellite.clearObservers()
	w.spawner.clearObservers()
	w.collisions.clearObservers()
	w.gameOver.clearObservers()
}

// Snapshot is a read-only view of the session for presentation.
type Snapshot struct {
	Time            float64
	Tick            uint64
	Position        core.Vec2
	Velocity        core.Vec2
	Angle           float64
	AngularVelocity float64
	Battery         float64
	BatteryRatio    float64
	ThrustCooldown  float64
	HP              int
	MaxHP           int
	Phase           Phase
	Invincibility   float64
	Score           int
	Distance        float64
	Debris          int
	SpawnInterval   float64
	GameOver        bool
}

// State returns a snapshot of the session.
func (w *World) State() Snapshot {
	return Snapshot{
		Time:            w.now,
		Tick:            w.ticks,
		Position:        w.satellite.Position(),
		Velocity:        w.satellite.Velocity(),
		Angle:           w.satellite.Angle(),
		AngularVelocity: w.satellite.AngularVelocity(),
		Battery:         w.satellite.Battery(),
		BatteryRatio:    w.satellite.BatteryRatio(),
		ThrustCooldown:  w.satellite.ThrustCooldownRemaining(w.now),
		HP:              w.health.HP(),
		MaxHP:           w.health.MaxHP(),
		Phase:           w.health.Phase(),
		Invincibility:   w.health.InvincibilityRemaining(),
		Score:           w.score.Score(),
		Distance:        w.score.Distance(),
		Debris:          w.spawner.Count(),
		SpawnInterval:   w.spawner.CurrentInterval(),
		GameOver:        w.gameOver.Declared(),
	}
}

// LastCollisions returns the contacts resolved by the most recent Tick.
func (w *World) LastCollisions() []Collision { return w.lastHits }

// Config returns the configuration the World was built with.
func (w *World) Config() Config { return w.cfg }

// Seed returns the seed of the current session.
func (w *World) Seed() int64 { return w.rng.Seed() }

// Component accessors.
func (w *World) Satellite() *Satellite          { return w.satellite }
func (w *World) Health() *HealthState           { return w.health }
func (w *World) Spawner() *SpawnDirector        { return w.spawner }
func (w *World) Collisions() *CollisionResolver { return w.collisions }
func (w *World) Score() *ScoreAccumulator       { return w.score }
func (w *World) GameOver() *GameOverSequencer   { return w.gameOver }
func (w *World) Scheduler() *EventScheduler     { return w.scheduler }
func (w *World) Random() *RandomSource          { return w.rng }
