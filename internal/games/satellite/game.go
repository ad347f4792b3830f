// Package satellite adapts the orbital drift simulation to the game
// platform: it owns the camera, turns key presses into control intents,
// detects the satellite leaving the screen and draws the scene.
package satellite

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/orbital-drift/internal/config"
	"github.com/vovakirdan/orbital-drift/internal/core"
	"github.com/vovakirdan/orbital-drift/internal/registry"
	"github.com/vovakirdan/orbital-drift/internal/sim"
)

// Layout constants.
const (
	hudRows    = 1
	minScreenW = 30
	minScreenH = 10
)

// Run end causes reported to storage.
const (
	CauseCollision = "collision"
	CauseExit      = "exit"
	CauseAbandoned = "abandoned"
)

// Cues receives gameplay moments worth a sound.
type Cues interface {
	Thrust()
	Hit()
	Death()
	GameOver()
}

type silentCues struct{}

func (silentCues) Thrust()   {}
func (silentCues) Hit()      {}
func (silentCues) Death()    {}
func (silentCues) GameOver() {}

var (
	// configPath stores the custom config path set via CLI
	configPath string

	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset

	logger = log.New(io.Discard)

	cues Cues = silentCues{}
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// DifficultyPreset returns the preset applied on the next Reset.
func DifficultyPreset() config.DifficultyPreset {
	return difficultyPreset
}

// SetLogger routes game logs to l. Nil discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetCues installs the sound cue sink. Nil silences the game.
func SetCues(c Cues) {
	if c == nil {
		c = silentCues{}
	}
	cues = c
}

// Game implements registry.Game on top of a sim.World.
type Game struct {
	mode     CameraMode
	runtime  core.RuntimeConfig
	custom   *config.SatelliteConfig
	preset   *config.DifficultyPreset // Overrides the package preset when set
	settings Settings

	world  *sim.World
	camera *Camera
	rng    *rand.Rand // Restart seeds
	dt     float64

	rotation  sim.RotationIntent
	rotateFor float64 // Seconds the held rotation stays active

	paused   bool
	gameOver bool
	tooSmall bool

	hits     int
	thrusts  int
	cause    string
	frozen   bool
	score    int
	distance float64

	unsubs []func()
}

// New creates the scrolling game: the camera climbs on its own and the
// satellite has to keep up.
func New() *Game {
	return &Game{mode: CameraScroll}
}

// NewFree creates the free flight game: the camera follows the satellite.
func NewFree() *Game {
	return &Game{mode: CameraFollow}
}

func init() {
	registry.Register("drift", func() registry.Game {
		return New()
	})
	registry.Register("drift_free", func() registry.Game {
		return NewFree()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == CameraFollow {
		return "drift_free"
	}
	return "drift"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == CameraFollow {
		return "Orbital Drift: Free Flight"
	}
	return "Orbital Drift"
}

// UseConfig pins the game config instead of loading it on every Reset.
// The difficulty preset still applies.
func (g *Game) UseConfig(cfg config.SatelliteConfig) {
	g.custom = &cfg
}

// SetDifficulty pins the preset for this game instance, so concurrent
// sessions can play different difficulties.
func (g *Game) SetDifficulty(name string) error {
	p, err := config.ParsePreset(name)
	if err != nil {
		return err
	}
	g.preset = &p
	return nil
}

// Difficulty returns the preset applied on the next Reset.
// Empty means the config file is used as is.
func (g *Game) Difficulty() config.DifficultyPreset {
	if g.preset != nil {
		return *g.preset
	}
	return difficultyPreset
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.detach()
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.dt = runtime.TickSeconds()

	g.paused = false
	g.gameOver = false
	g.tooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
	g.rotation = sim.RotateNone
	g.rotateFor = 0
	g.hits = 0
	g.thrusts = 0
	g.cause = ""
	g.frozen = false
	g.score = 0
	g.distance = 0

	g.settings = g.loadSettings(runtime.Seed)
	g.camera = NewCamera(g.mode, g.settings.Camera, g.settings.Sim.Start)
	g.settings.Sim.Viewport = g.viewport()

	world, err := sim.New(g.settings.Sim)
	if err != nil {
		logger.Error("cannot build world, using stock tuning", "err", err)
		fallback := sim.DefaultConfig()
		fallback.Seed = runtime.Seed
		fallback.Viewport = g.settings.Sim.Viewport
		world, _ = sim.New(fallback)
	}
	g.world = world

	if g.settings.Track == config.TrackCamera {
		world.TrackReference(g.camera)
		world.Score().Start(g.camera.Position().Y)
	}

	g.unsubs = append(g.unsubs,
		world.Satellite().OnThrust(func(core.Vec2) {
			g.thrusts++
			cues.Thrust()
		}),
		world.Collisions().OnCollision(g.onCollision),
		world.Health().OnDeath(g.onDeath),
		world.GameOver().OnGameOver(g.onGameOver),
	)

	logger.Debug("run started", "game", g.ID(), "seed", runtime.Seed, "difficulty", g.Difficulty())
}

func (g *Game) loadSettings(seed int64) Settings {
	var cfg config.SatelliteConfig
	if g.custom != nil {
		cfg = *g.custom
	} else {
		loaded, source, err := config.LoadSatellite(configPath)
		if err != nil {
			logger.Warn("cannot load config, using defaults", "err", err)
			loaded, source = config.DefaultSatelliteConfig(), config.SourceBuiltin
		}
		logger.Debug("config loaded", "source", source)
		cfg = loaded
	}

	preset := g.Difficulty()
	if preset != "" {
		config.ApplySatellitePreset(&cfg, preset)
	}

	settings, err := NewSettings(cfg, seed)
	if err != nil {
		logger.Warn("invalid config, using defaults", "err", err)
		cfg = config.DefaultSatelliteConfig()
		if preset != "" {
			config.ApplySatellitePreset(&cfg, preset)
		}
		settings, _ = NewSettings(cfg, seed)
	}
	return settings
}

func (g *Game) detach() {
	for _, unsub := range g.unsubs {
		unsub()
	}
	g.unsubs = nil
	if g.world != nil {
		g.world.Shutdown()
	}
}

func (g *Game) playArea() (cols, rows int) {
	return g.runtime.ScreenW, g.runtime.ScreenH - hudRows
}

func (g *Game) viewport() core.Bounds {
	cols, rows := g.playArea()
	return g.camera.Viewport(cols, rows)
}

func (g *Game) onCollision(c sim.Collision) {
	if !c.Accepted {
		return
	}
	g.hits++
	if c.Fatal {
		g.cause = CauseCollision
	}
	cues.Hit()
	logger.Debug("hit", "debris", c.Variant, "damage", c.Damage, "fatal", c.Fatal)
}

// onDeath freezes the score and stops the camera.
func (g *Game) onDeath() {
	g.score = g.world.Score().Score()
	g.distance = g.world.Score().Distance()
	g.frozen = true
	g.camera.Pause()
	cues.Death()
}

func (g *Game) onGameOver() {
	g.gameOver = true
	g.rotation = sim.RotateNone
	cues.GameOver()
	logger.Info("game over", "game", g.ID(), "score", g.score, "cause", g.cause, "time", g.world.Now())
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	// Handle restart
	if in.Has(core.ActionRestart) && g.gameOver {
		runtime := g.runtime
		runtime.Seed = g.rng.Int63()
		g.Reset(runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.paused || g.gameOver || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	input := g.readInput(in)
	g.camera.Update(g.dt, g.world.Satellite().Position())
	g.world.SetViewport(g.viewport())
	g.world.Tick(g.dt, input)
	g.checkExit()

	return core.StepResult{State: g.State()}
}

// readInput turns this frame's key presses into a control intent. Terminals
// report presses but not releases, so a rotation press stays active for
// the configured hold window.
func (g *Game) readInput(in core.InputFrame) sim.Input {
	left, right := in.Has(core.ActionRotateLeft), in.Has(core.ActionRotateRight)
	switch {
	case left && !right:
		g.rotation = sim.RotateLeft
		g.rotateFor = g.settings.RotateHold
	case right && !left:
		g.rotation = sim.RotateRight
		g.rotateFor = g.settings.RotateHold
	}

	input := sim.Input{Rotation: g.rotation, Thrust: in.Has(core.ActionThrust)}

	if g.rotation != sim.RotateNone {
		g.rotateFor -= g.dt
		if g.rotateFor <= 0 {
			g.rotation = sim.RotateNone
		}
	}
	return input
}

// checkExit kills the satellite once its center leaves the viewport.
func (g *Game) checkExit() {
	if g.world.Health().IsDead() {
		return
	}
	p := g.world.Viewport().Normalize(g.world.Satellite().Position())
	if p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1 {
		return
	}
	if g.world.ReportExit() {
		g.cause = CauseExit
		logger.Debug("satellite left the viewport", "x", p.X, "y", p.Y)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.currentScore(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func (g *Game) currentScore() int {
	if g.frozen || g.world == nil {
		return g.score
	}
	return g.world.Score().Score()
}

func (g *Game) currentDistance() float64 {
	if g.frozen || g.world == nil {
		return g.distance
	}
	return g.world.Score().Distance()
}

// Report summarizes the run so far.
func (g *Game) Report() core.RunReport {
	cause := g.cause
	if cause == "" {
		cause = CauseAbandoned
	}
	r := core.RunReport{
		Score:    g.currentScore(),
		Distance: g.currentDistance(),
		Seed:     g.runtime.Seed,
		Hits:     g.hits,
		Thrusts:  g.thrusts,
		Cause:    cause,
	}
	if g.world != nil {
		r.Duration = g.world.Now()
		r.Ticks = int(g.world.Ticks())
	}
	return r
}

// World exposes the simulation for autopilots and tests.
func (g *Game) World() *sim.World { return g.world }

// Mode reports which camera this variant flies with.
func (g *Game) Mode() CameraMode { return g.mode }

// Camera returns the active camera.
func (g *Game) Camera() *Camera { return g.camera }

// Settings returns the tuning in effect for the current run.
func (g *Game) Settings() Settings { return g.settings }
