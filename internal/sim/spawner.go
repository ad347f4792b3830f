package sim

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/orbital-drift/internal/core"
)

// minSpawnDelay is the floor for the randomized countdown between spawns.
const minSpawnDelay = 0.01

// SpawnMode selects which viewport edges debris may enter from.
type SpawnMode int

const (
	SpawnAll SpawnMode = iota
	SpawnTop
	SpawnSides
	SpawnTopAndSides
)

var spawnModeNames = map[SpawnMode]string{
	SpawnAll:         "all",
	SpawnTop:         "top",
	SpawnSides:       "sides",
	SpawnTopAndSides: "top_and_sides",
}

// String returns the config name of the mode.
func (m SpawnMode) String() string {
	if name, ok := spawnModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseSpawnMode parses a config name such as "top_and_sides".
func ParseSpawnMode(s string) (SpawnMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if key == "" {
		return SpawnAll, nil
	}
	for mode, name := range spawnModeNames {
		if name == key {
			return mode, nil
		}
	}
	return SpawnAll, fmt.Errorf("%w: unknown spawn mode %q", ErrInvalidConfig, s)
}

// Edge is a viewport side.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeLeft
	EdgeRight
	EdgeBottom
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Edges returns the edges eligible under the mode, in selection order.
func (m SpawnMode) Edges() []Edge {
	switch m {
	case SpawnTop:
		return []Edge{EdgeTop}
	case SpawnSides:
		return []Edge{EdgeLeft, EdgeRight}
	case SpawnTopAndSides:
		return []Edge{EdgeTop, EdgeLeft, EdgeRight}
	default:
		return []Edge{EdgeTop, EdgeLeft, EdgeRight, EdgeBottom}
	}
}

// SpawnConfig holds the spawn director's tunables.
type SpawnConfig struct {
	Interval         float64 // Base seconds between spawns
	IntervalVariance float64 // Uniform jitter applied to every countdown
	MaxDebris        int     // Population cap
	Offset           float64 // Distance outside the viewport edge to spawn at
	Mode             SpawnMode
	LateralSpread    float64 // Max sideways component of the launch direction

	ScaleDifficulty bool
	MinInterval     float64 // Floor the interval decays toward
	ScaleRate       float64 // Interval reduction per second of play

	Variants []DebrisVariant
}

// DefaultSpawnConfig returns the stock tuning.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		Interval:         2.0,
		IntervalVariance: 1.0,
		MaxDebris:        20,
		Offset:           1.0,
		Mode:             SpawnAll,
		LateralSpread:    0.3,
		ScaleDifficulty:  true,
		MinInterval:      0.5,
		ScaleRate:        0.01,
	}
}

// Validate reports the first invalid tunable.
func (c SpawnConfig) Validate() error {
	switch {
	case c.Interval <= 0:
		return invalid("spawn interval must be > 0, got %v", c.Interval)
	case c.IntervalVariance < 0:
		return invalid("spawn interval variance must be >= 0, got %v", c.IntervalVariance)
	case c.MaxDebris < 0:
		return invalid("spawn max debris must be >= 0, got %d", c.MaxDebris)
	case c.Offset < 0:
		return invalid("spawn offset must be >= 0, got %v", c.Offset)
	case c.LateralSpread < 0:
		return invalid("spawn lateral spread must be >= 0, got %v", c.LateralSpread)
	case c.Mode < SpawnAll || c.Mode > SpawnTopAndSides:
		return invalid("spawn mode %d is not defined", c.Mode)
	}
	if c.ScaleDifficulty {
		switch {
		case c.MinInterval <= 0:
			return invalid("spawn min interval must be > 0, got %v", c.MinInterval)
		case c.MinInterval > c.Interval:
			return invalid("spawn min interval %v exceeds base interval %v", c.MinInterval, c.Interval)
		case c.ScaleRate < 0:
			return invalid("spawn scale rate must be >= 0, got %v", c.ScaleRate)
		}
	}
	for _, v := range c.Variants {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ViewportSource supplies the current world-space viewport.
type ViewportSource interface {
	Viewport() core.Bounds
}

// SpawnDirector owns the active debris population. It decides when and where
// new debris enter and scales the spawn rate with elapsed time.
type SpawnDirector struct {
	cfg  SpawnConfig
	rng  *RandomSource
	view ViewportSource

	enabled   bool
	elapsed   float64
	interval  float64
	countdown float64
	nextID    uint64
	active    []*Debris

	spawnObservers observers[func(*Debris)]
}

// NewSpawnDirector creates a director. The first spawn happens one base
// interval after start.
func NewSpawnDirector(cfg SpawnConfig, rng *RandomSource, view ViewportSource) (*SpawnDirector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, invalid("spawn director needs a random source")
	}
	if view == nil {
		return nil, invalid("spawn director needs a viewport source")
	}
	d := &SpawnDirector{cfg: cfg, rng: rng, view: view, enabled: true}
	d.ResetDifficulty()
	d.countdown = d.interval
	return d, nil
}

// Tick advances every debris, prunes the dead, and runs the spawn timer.
func (d *SpawnDirector) Tick(dt float64) {
	if dt <= 0 {
		return
	}

	view := d.view.Viewport()
	for _, deb := range d.active {
		deb.Update(dt, view)
	}
	d.Prune()

	if !d.enabled {
		return
	}

	d.elapsed += dt
	if d.cfg.ScaleDifficulty {
		d.interval = math.Max(d.cfg.MinInterval, d.cfg.Interval-d.elapsed*d.cfg.ScaleRate)
	}

	d.countdown -= dt
	if d.countdown > 0 {
		return
	}

	d.Prune()
	if len(d.active) < d.cfg.MaxDebris {
		d.spawn(view)
	}
	jitter := d.rng.Range(-d.cfg.IntervalVariance, d.cfg.IntervalVariance)
	d.countdown = math.Max(minSpawnDelay, d.interval+jitter)
}

// SpawnNow spawns one debris immediately if the cap allows. Returns nil when full.
func (d *SpawnDirector) SpawnNow() *Debris {
	d.Prune()
	if len(d.active) >= d.cfg.MaxDebris {
		return nil
	}
	return d.spawn(d.view.Viewport())
}

func (d *SpawnDirector) spawn(view core.Bounds) *Debris {
	edges := d.cfg.Mode.Edges()
	edge := edges[d.rng.Intn(len(edges))]
	pos, dir := d.placement(edge, view)

	variant := DefaultDebrisVariant()
	if n := len(d.cfg.Variants); n > 0 {
		variant = d.cfg.Variants[d.rng.Intn(n)]
	}

	d.nextID++
	deb := newDebris(d.nextID, variant, pos, dir, d.rng)
	d.active = append(d.active, deb)

	d.spawnObservers.each(func(fn func(*Debris)) { fn(deb) })
	return deb
}

// placement picks a point along edge, pushed outward by the offset, and an
// inward launch direction with a random lateral component.
func (d *SpawnDirector) placement(edge Edge, view core.Bounds) (core.Vec2, core.Vec2) {
	off := d.cfg.Offset
	spread := d.cfg.LateralSpread

	var pos, dir core.Vec2
	switch edge {
	case EdgeTop:
		pos = core.V(d.rng.Range(view.MinX, view.MaxX), view.MaxY+off)
		dir = core.V(d.rng.Range(-spread, spread), -1)
	case EdgeLeft:
		pos = core.V(view.MinX-off, d.rng.Range(view.MinY, view.MaxY))
		dir = core.V(1, d.rng.Range(-spread, spread))
	case EdgeRight:
		pos = core.V(view.MaxX+off, d.rng.Range(view.MinY, view.MaxY))
		dir = core.V(-1, d.rng.Range(-spread, spread))
	default:
		pos = core.V(d.rng.Range(view.MinX, view.MaxX), view.MinY-off)
		dir = core.V(d.rng.Range(-spread, spread), 1)
	}
	return pos, dir.Normalize()
}

// Prune drops destroyed debris from the active set, keeping spawn order.
func (d *SpawnDirector) Prune() {
	kept := d.active[:0]
	for _, deb := range d.active {
		if deb.Alive() {
			kept = append(kept, deb)
		}
	}
	for i := len(kept); i < len(d.active); i++ {
		d.active[i] = nil
	}
	d.active = kept
}

// ClearAll destroys every active debris.
func (d *SpawnDirector) ClearAll() {
	for _, deb := range d.active {
		deb.Destroy()
	}
	d.Prune()
}

// SetEnabled pauses or resumes spawning without clearing the field.
// Existing debris keep moving while spawning is paused.
func (d *SpawnDirector) SetEnabled(enabled bool) {
	d.enabled = enabled
}

// Enabled reports whether spawning is running.
func (d *SpawnDirector) Enabled() bool { return d.enabled }

// ResetDifficulty zeroes elapsed time and restores the base interval.
func (d *SpawnDirector) ResetDifficulty() {
	d.elapsed = 0
	d.interval = d.cfg.Interval
}

// Reset clears the field, restores difficulty and restarts the spawn timer.
func (d *SpawnDirector) Reset() {
	d.ClearAll()
	d.ResetDifficulty()
	d.countdown = d.interval
	d.nextID = 0
	d.enabled = true
}

// Active returns the live debris in spawn order. The slice is a copy.
func (d *SpawnDirector) Active() []*Debris {
	out := make([]*Debris, 0, len(d.active))
	for _, deb := range d.active {
		if deb.Alive() {
			out = append(out, deb)
		}
	}
	return out
}

// Count returns the number of live debris.
func (d *SpawnDirector) Count() int {
	n := 0
	for _, deb := range d.active {
		if deb.Alive() {
			n++
		}
	}
	return n
}

// CurrentInterval returns the un-jittered spawn interval.
func (d *SpawnDirector) CurrentInterval() float64 { return d.interval }

// Elapsed returns seconds of enabled play used for difficulty scaling.
func (d *SpawnDirector) Elapsed() float64 { return d.elapsed }

// Countdown returns seconds until the next spawn attempt.
func (d *SpawnDirector) Countdown() float64 { return d.countdown }

// Config returns the tuning the director was built with.
func (d *SpawnDirector) Config() SpawnConfig { return d.cfg }

// OnSpawn subscribes to new debris. Returns an unsubscribe function.
func (d *SpawnDirector) OnSpawn(fn func(*Debris)) func() {
	return d.spawnObservers.add(fn)
}

func (d *SpawnDirector) clearObservers() { d.spawnObservers.clear() }
