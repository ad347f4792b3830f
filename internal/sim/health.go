package sim

// Phase is the HealthState's state-machine phase.
type Phase int

const (
	PhaseVulnerable Phase = iota
	PhaseInvincible
	PhaseDead
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseVulnerable:
		return "vulnerable"
	case PhaseInvincible:
		return "invincible"
	case PhaseDead:
		return "dead"
	default:
		return "unknown"
	}
}

// HealthConfig holds hit points and invincibility timings.
type HealthConfig struct {
	MaxHP                 int
	InvincibilityDuration float64 // Grace after each accepted hit, seconds
	StartInvincibility    float64 // Grace at the start of every life, seconds
}

// DefaultHealthConfig returns the stock tuning.
func DefaultHealthConfig() HealthConfig {
	return HealthConfig{
		MaxHP:                 3,
		InvincibilityDuration: 1.5,
		StartInvincibility:    5.0,
	}
}

// Validate reports the first invalid tunable.
func (c HealthConfig) Validate() error {
	switch {
	case c.MaxHP <= 0:
		return invalid("health max hp must be > 0, got %d", c.MaxHP)
	case c.InvincibilityDuration < 0:
		return invalid("health invincibility duration must be >= 0, got %v", c.InvincibilityDuration)
	case c.StartInvincibility < 0:
		return invalid("health start invincibility must be >= 0, got %v", c.StartInvincibility)
	}
	return nil
}

// HealthState owns hit points and the Vulnerable/Invincible/Dead machine.
// Dead is terminal until Reset.
type HealthState struct {
	cfg HealthConfig

	hp        int
	phase     Phase
	remaining float64

	changedObservers observers[func(current, max int)]
	damagedObservers observers[func()]
	deathObservers   observers[func()]
}

// NewHealthState creates a health record at full HP in its start phase.
// Construction emits no notifications.
func NewHealthState(cfg HealthConfig) (*HealthState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := &HealthState{cfg: cfg}
	h.restore()
	return h, nil
}

func (h *HealthState) restore() {
	h.hp = h.cfg.MaxHP
	h.enterInvincible(h.cfg.StartInvincibility)
}

func (h *HealthState) enterInvincible(duration float64) {
	if duration > 0 {
		h.phase = PhaseInvincible
		h.remaining = duration
		return
	}
	h.phase = PhaseVulnerable
	h.remaining = 0
}

// TakeDamage applies amount if the state is vulnerable. Returns whether the
// damage was accepted. Negative amounts count as zero.
func (h *HealthState) TakeDamage(amount int) bool {
	if h.phase != PhaseVulnerable || h.hp == 0 {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	h.hp -= amount
	if h.hp < 0 {
		h.hp = 0
	}

	if h.hp == 0 {
		h.phase = PhaseDead
		h.remaining = 0
	} else {
		h.enterInvincible(h.cfg.InvincibilityDuration)
	}

	h.emitChanged()
	h.damagedObservers.each(func(fn func()) { fn() })
	if h.phase == PhaseDead {
		h.deathObservers.each(func(fn func()) { fn() })
	}
	return true
}

// Kill drops HP to zero regardless of invincibility. Returns false if already dead.
func (h *HealthState) Kill() bool {
	if h.phase == PhaseDead {
		return false
	}
	h.hp = 0
	h.phase = PhaseDead
	h.remaining = 0

	h.emitChanged()
	h.damagedObservers.each(func(fn func()) { fn() })
	h.deathObservers.each(func(fn func()) { fn() })
	return true
}

// Heal restores up to amount HP. Returns whether HP changed.
func (h *HealthState) Heal(amount int) bool {
	if h.phase == PhaseDead || amount <= 0 {
		return false
	}
	next := min(h.cfg.MaxHP, h.hp+amount)
	if next == h.hp {
		return false
	}
	h.hp = next
	h.emitChanged()
	return true
}

// FullHeal restores HP to the maximum.
func (h *HealthState) FullHeal() bool {
	return h.Heal(h.cfg.MaxHP)
}

// Tick counts down the invincibility window.
func (h *HealthState) Tick(dt float64) {
	if h.phase != PhaseInvincible || dt <= 0 {
		return
	}
	h.remaining -= dt
	if h.remaining <= 0 {
		h.phase = PhaseVulnerable
		h.remaining = 0
	}
}

// Reset starts a new life with full HP.
func (h *HealthState) Reset() {
	h.restore()
	h.emitChanged()
}

func (h *HealthState) emitChanged() {
	cur, limit := h.hp, h.cfg.MaxHP
	h.changedObservers.each(func(fn func(int, int)) { fn(cur, limit) })
}

// OnHealthChanged subscribes to HP changes. Returns an unsubscribe function.
func (h *HealthState) OnHealthChanged(fn func(current, max int)) func() {
	return h.changedObservers.add(fn)
}

// OnDamaged subscribes to accepted damage. Returns an unsubscribe function.
func (h *HealthState) OnDamaged(fn func()) func() {
	return h.damagedObservers.add(fn)
}

// OnDeath subscribes to death. Fires once per life. Returns an unsubscribe function.
func (h *HealthState) OnDeath(fn func()) func() {
	return h.deathObservers.add(fn)
}

func (h *HealthState) clearObservers() {
	h.changedObservers.clear()
	h.damagedObservers.clear()
	h.deathObservers.clear()
}

// HP returns the current hit points.
func (h *HealthState) HP() int { return h.hp }

// MaxHP returns the hit point capacity.
func (h *HealthState) MaxHP() int { return h.cfg.MaxHP }

// Phase returns the current phase.
func (h *HealthState) Phase() Phase { return h.phase }

// IsDead reports whether the life has ended.
func (h *HealthState) IsDead() bool { return h.phase == PhaseDead }

// IsInvincible reports whether damage is currently rejected by the grace window.
func (h *HealthState) IsInvincible() bool { return h.phase == PhaseInvincible }

// InvincibilityRemaining returns the seconds left in the grace window.
func (h *HealthState) InvincibilityRemaining() float64 { return h.remaining }

// Config returns the tuning the state was built with.
func (h *HealthState) Config() HealthConfig { return h.cfg }
