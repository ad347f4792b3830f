package sim

// DefaultGameOverDelay is the pause between death and the game-over declaration.
const DefaultGameOverDelay = 0.5

// GameOverSequencer turns a death into a delayed game-over notification.
// The declaration only notifies; it never touches satellite or debris state.
type GameOverSequencer struct {
	scheduler *EventScheduler
	delay     float64

	declared bool
	unsub    func()

	gameOverObservers observers[func()]
}

// NewGameOverSequencer subscribes to health's death notification.
func NewGameOverSequencer(health *HealthState, scheduler *EventScheduler, delay float64) (*GameOverSequencer, error) {
	if delay < 0 {
		return nil, invalid("game over delay must be >= 0, got %v", delay)
	}
	if health == nil || scheduler == nil {
		return nil, invalid("game over sequencer needs health and scheduler")
	}
	g := &GameOverSequencer{scheduler: scheduler, delay: delay}
	g.unsub = health.OnDeath(g.onDeath)
	return g, nil
}

func (g *GameOverSequencer) onDeath() {
	g.scheduler.Schedule(EventGameOver, g.delay, g.declare)
}

func (g *GameOverSequencer) declare() {
	if g.declared {
		return
	}
	g.declared = true
	g.gameOverObservers.each(func(fn func()) { fn() })
}

// OnGameOver subscribes to the declaration. Returns an unsubscribe function.
func (g *GameOverSequencer) OnGameOver(fn func()) func() {
	return g.gameOverObservers.add(fn)
}

// Declared reports whether game over has been declared for this life.
func (g *GameOverSequencer) Declared() bool { return g.declared }

// Delay returns the death-to-declaration delay.
func (g *GameOverSequencer) Delay() float64 { return g.delay }

// Rearm clears the declaration for a new life.
func (g *GameOverSequencer) Rearm() { g.declared = false }

// Detach stops listening for deaths.
func (g *GameOverSequencer) Detach() {
	if g.unsub != nil {
		g.unsub()
		g.unsub = nil
	}
}

func (g *GameOverSequencer) clearObservers() { g.gameOverObservers.clear() }
