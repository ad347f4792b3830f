package satellite

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/orbital-drift/internal/config"
	"github.com/vovakirdan/orbital-drift/internal/core"
	"github.com/vovakirdan/orbital-drift/internal/sim"
)

// Appearance is how a debris variant is drawn.
type Appearance struct {
	Glyph rune
	Color core.Color
}

var defaultAppearance = Appearance{Glyph: '*', Color: core.ColorGray}

var colorNames = map[string]core.Color{
	"default":       core.ColorDefault,
	"red":           core.ColorRed,
	"green":         core.ColorGreen,
	"yellow":        core.ColorYellow,
	"blue":          core.ColorBlue,
	"magenta":       core.ColorMagenta,
	"cyan":          core.ColorCyan,
	"white":         core.ColorWhite,
	"bright_red":    core.ColorBrightRed,
	"bright_green":  core.ColorBrightGreen,
	"bright_yellow": core.ColorBrightYellow,
	"bright_cyan":   core.ColorBrightCyan,
	"bright_white":  core.ColorBrightWhite,
	"orange":        core.ColorOrange,
	"gray":          core.ColorGray,
	"grey":          core.ColorGray,
	"dim":           core.ColorDim,
}

// ParseColor maps a config color name to a palette color.
func ParseColor(name string) (core.Color, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if key == "" {
		return core.ColorDefault, nil
	}
	c, ok := colorNames[key]
	if !ok {
		return core.ColorDefault, fmt.Errorf("satellite: unknown color %q", name)
	}
	return c, nil
}

// Settings is a loaded config split into what the simulation needs and what
// only the presentation needs.
type Settings struct {
	Sim        sim.Config
	Camera     config.CameraConfig
	Track      string
	RotateHold float64
	Looks      map[string]Appearance
}

// NewSettings converts a game config into simulation tuning.
func NewSettings(cfg config.SatelliteConfig, seed int64) (Settings, error) {
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	mode, err := sim.ParseSpawnMode(cfg.Spawn.Mode)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		Camera:     cfg.Camera,
		Track:      cfg.Score.Track,
		RotateHold: cfg.Controls.RotateHold,
		Looks:      map[string]Appearance{},
	}
	if s.Track == "" {
		s.Track = config.TrackCamera
	}

	s.Sim = sim.DefaultConfig()
	s.Sim.Seed = seed
	s.Sim.Satellite = sim.SatelliteConfig{
		ThrustPower:        cfg.Satellite.ThrustPower,
		MaxSpeed:           cfg.Satellite.MaxSpeed,
		ThrustCooldown:     cfg.Satellite.ThrustCooldown,
		RotationTorque:     cfg.Satellite.RotationTorque,
		BatteryConsumption: cfg.Satellite.BatteryConsumption,
		MaxBattery:         cfg.Satellite.MaxBattery,
		InitialBattery:     cfg.Satellite.InitialBattery,
		Radius:             cfg.Satellite.Radius,
	}
	s.Sim.Health = sim.HealthConfig{
		MaxHP:                 cfg.Health.MaxHP,
		InvincibilityDuration: cfg.Health.Invincibility,
		StartInvincibility:    cfg.Health.StartInvincibility,
	}
	s.Sim.Spawn = sim.SpawnConfig{
		Interval:         cfg.Spawn.Interval,
		IntervalVariance: cfg.Spawn.IntervalVariance,
		MaxDebris:        cfg.Spawn.MaxDebris,
		Offset:           cfg.Spawn.Offset,
		Mode:             mode,
		LateralSpread:    cfg.Spawn.LateralSpread,
		ScaleDifficulty:  cfg.Spawn.Difficulty.Enabled,
		MinInterval:      cfg.Spawn.Difficulty.MinInterval,
		ScaleRate:        cfg.Spawn.Difficulty.ScaleRate,
	}
	s.Sim.ScoreMultiplier = cfg.Score.Multiplier
	s.Sim.ScoreRatchet = cfg.Score.Ratchet
	s.Sim.GameOverDelay = cfg.GameOver.Delay

	for i, v := range cfg.Debris.Variants {
		look := defaultAppearance
		if r := []rune(v.Glyph); len(r) > 0 {
			look.Glyph = r[0]
		}
		if v.Color != "" {
			c, err := ParseColor(v.Color)
			if err != nil {
				return Settings{}, fmt.Errorf("satellite: debris.variants[%d]: %w", i, err)
			}
			look.Color = c
		}
		s.Looks[v.Name] = look

		s.Sim.Spawn.Variants = append(s.Sim.Spawn.Variants, sim.DebrisVariant{
			Name:             v.Name,
			MoveSpeed:        v.MoveSpeed,
			SpeedVariance:    v.SpeedVariance,
			RotationSpeed:    v.RotationSpeed,
			RotationVariance: v.RotationVariance,
			Damage:           v.Damage,
			DestroyOnHit:     v.DestroyOnHit,
			KnockbackForce:   v.Knockback,
			Lifetime:         v.Lifetime,
			DestroyOffScreen: v.DestroyOffScreen,
			OffScreenMargin:  v.OffScreenMargin,
			Radius:           v.Radius,
		})
	}

	if err := s.Sim.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Look returns the appearance for a debris variant name.
func (s Settings) Look(name string) Appearance {
	if look, ok := s.Looks[name]; ok {
		return look
	}
	return defaultAppearance
}
