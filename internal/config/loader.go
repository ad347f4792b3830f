package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source names reported by LoadSatellite when no file was read.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// LoadSatellite loads the satellite game configuration and reports where it
// came from. Files are decoded over the defaults, so partial files are fine.
// Search order: customPath -> ~/.drift/configs/satellite.yaml -> ./configs/satellite.yaml -> embedded default
func LoadSatellite(customPath string) (SatelliteConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SatelliteConfig{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decodeSatellite(data)
		if err != nil {
			return SatelliteConfig{}, "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return SatelliteConfig{}, "", fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then the local configs directory
	candidates := []string{userConfigPath("satellite.yaml"), filepath.Join("configs", "satellite.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decodeSatellite(data); err == nil && cfg.Validate() == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decodeSatellite(defaultSatelliteYAML)
	if err != nil {
		return DefaultSatelliteConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

func decodeSatellite(data []byte) (SatelliteConfig, error) {
	cfg := DefaultSatelliteConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SatelliteConfig{}, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg SatelliteConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".drift", "configs", filename)
}

// Validate checks the string-valued settings. Numeric ranges are checked
// when the simulation is built.
func (c SatelliteConfig) Validate() error {
	switch c.Spawn.Mode {
	case "", "all", "top", "sides", "top_and_sides":
	default:
		return fmt.Errorf("config: spawn.mode %q is not one of all, top, sides, top_and_sides", c.Spawn.Mode)
	}
	switch c.Score.Track {
	case "", TrackCamera, TrackSatellite:
	default:
		return fmt.Errorf("config: score.track %q is not one of camera, satellite", c.Score.Track)
	}
	if c.Camera.ViewHeight <= 0 {
		return fmt.Errorf("config: camera.view_height must be > 0, got %v", c.Camera.ViewHeight)
	}
	if c.Camera.CellAspect <= 0 {
		return fmt.Errorf("config: camera.cell_aspect must be > 0, got %v", c.Camera.CellAspect)
	}
	for i, v := range c.Debris.Variants {
		if len([]rune(v.Glyph)) > 1 {
			return fmt.Errorf("config: debris.variants[%d].glyph %q must be a single character", i, v.Glyph)
		}
	}
	return nil
}

// Score tracking targets.
const (
	TrackCamera    = "camera"
	TrackSatellite = "satellite"
)
