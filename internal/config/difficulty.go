package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every preset in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset parses a preset name. Empty selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DifficultyNormal, nil
	}
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplySatellitePreset modifies the config based on a difficulty preset.
func ApplySatellitePreset(cfg *SatelliteConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Spawn.Difficulty.Enabled = false
		return
	}
	cfg.Spawn.Difficulty.Enabled = true

	switch preset {
	case DifficultyEasy:
		cfg.Health.MaxHP = 5
		cfg.Spawn.Interval = 2.5
		cfg.Spawn.MaxDebris = 12
		cfg.Spawn.Difficulty.ScaleRate = 0.005
		cfg.Spawn.Difficulty.MinInterval = 0.8
	case DifficultyHard:
		cfg.Health.MaxHP = 2
		cfg.Health.StartInvincibility = 3
		cfg.Spawn.Interval = 1.5
		cfg.Spawn.MaxDebris = 30
		cfg.Spawn.Difficulty.ScaleRate = 0.02
		cfg.Spawn.Difficulty.MinInterval = 0.35
	}
}
