package satellite

import (
	"errors"
	"testing"

	"github.com/vovakirdan/orbital-drift/internal/config"
	"github.com/vovakirdan/orbital-drift/internal/core"
	"github.com/vovakirdan/orbital-drift/internal/sim"
)

func TestNewSettingsDefaults(t *testing.T) {
	s, err := NewSettings(config.DefaultSatelliteConfig(), 99)
	if err != nil {
		t.Fatalf("NewSettings() failed: %v", err)
	}

	if s.Sim.Seed != 99 {
		t.Errorf("Seed = %d, expected 99", s.Sim.Seed)
	}
	if s.Sim.Spawn.Mode != sim.SpawnAll {
		t.Errorf("Spawn mode = %v, expected all", s.Sim.Spawn.Mode)
	}
	if len(s.Sim.Spawn.Variants) != 3 {
		t.Fatalf("Expected 3 variants, got %d", len(s.Sim.Spawn.Variants))
	}
	if kb := s.Sim.Spawn.Variants[1].KnockbackForce; kb != 3 {
		t.Errorf("panel knockback = %v, expected 3", kb)
	}
	if look := s.Look("panel"); look.Glyph != '#' || look.Color != core.ColorCyan {
		t.Errorf("panel look = %+v", look)
	}
	if look := s.Look("missing"); look != defaultAppearance {
		t.Errorf("Unknown variants should use the default look, got %+v", look)
	}
	if s.Track != config.TrackCamera {
		t.Errorf("Track = %q, expected camera", s.Track)
	}
	if s.Sim.Health.InvincibilityDuration != 1.5 {
		t.Errorf("Invincibility = %v, expected 1.5", s.Sim.Health.InvincibilityDuration)
	}
}

func TestNewSettingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.SatelliteConfig)
		invalid bool // wraps sim.ErrInvalidConfig
	}{
		{"unknown spawn mode", func(c *config.SatelliteConfig) { c.Spawn.Mode = "diagonal" }, false},
		{"unknown color", func(c *config.SatelliteConfig) { c.Debris.Variants[0].Color = "plaid" }, false},
		{"zero max hp", func(c *config.SatelliteConfig) { c.Health.MaxHP = 0 }, true},
		{"negative cooldown", func(c *config.SatelliteConfig) { c.Satellite.ThrustCooldown = -1 }, true},
		{"negative debris speed", func(c *config.SatelliteConfig) { c.Debris.Variants[2].MoveSpeed = -1 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultSatelliteConfig()
			tc.mutate(&cfg)

			_, err := NewSettings(cfg, 1)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.invalid && !errors.Is(err, sim.ErrInvalidConfig) {
				t.Errorf("error %v should wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestNewSettingsWithoutVariants(t *testing.T) {
	cfg := config.DefaultSatelliteConfig()
	cfg.Debris.Variants = nil

	s, err := NewSettings(cfg, 1)
	if err != nil {
		t.Fatalf("NewSettings() failed: %v", err)
	}
	if len(s.Sim.Spawn.Variants) != 0 {
		t.Error("No configured variants should leave the default to the spawner")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in       string
		expected core.Color
		ok       bool
	}{
		{"", core.ColorDefault, true},
		{"orange", core.ColorOrange, true},
		{"Bright-Cyan", core.ColorBrightCyan, true},
		{" grey ", core.ColorGray, true},
		{"ultraviolet", core.ColorDefault, false},
	}

	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseColor(%q) error = %v", tc.in, err)
		}
		if got != tc.expected {
			t.Errorf("ParseColor(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestSignedDegrees(t *testing.T) {
	tests := []struct{ in, expected float64 }{
		{0, 0},
		{190, -170},
		{-190, 170},
		{180, 180},
		{540, 180},
	}

	for _, tc := range tests {
		if got := signedDegrees(tc.in); got != tc.expected {
			t.Errorf("signedDegrees(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}
