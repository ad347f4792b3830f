// Package config provides YAML-based game configuration loading and
// difficulty presets for the satellite game.
package config

// SatelliteConfig contains all configuration for the satellite game.
type SatelliteConfig struct {
	Satellite SatellitePhysics `yaml:"satellite"`
	Health    HealthConfig     `yaml:"health"`
	Spawn     SpawnConfig      `yaml:"spawn"`
	Debris    DebrisConfig     `yaml:"debris"`
	Score     ScoreConfig      `yaml:"score"`
	Camera    CameraConfig     `yaml:"camera"`
	Controls  ControlsConfig   `yaml:"controls"`
	GameOver  GameOverConfig   `yaml:"game_over"`
}

// SatellitePhysics defines the satellite's motion and power parameters.
type SatellitePhysics struct {
	ThrustPower        float64 `yaml:"thrust_power"`
	MaxSpeed           float64 `yaml:"max_speed"`
	ThrustCooldown     float64 `yaml:"thrust_cooldown"`     // Seconds between bursts
	RotationTorque     float64 `yaml:"rotation_torque"`     // Degrees per second squared
	BatteryConsumption float64 `yaml:"battery_consumption"` // Per second of attitude control
	MaxBattery         float64 `yaml:"max_battery"`
	InitialBattery     float64 `yaml:"initial_battery"` // 0 = full
	Radius             float64 `yaml:"radius"`
}

// HealthConfig defines hit points and invincibility windows.
type HealthConfig struct {
	MaxHP              int     `yaml:"max_hp"`
	Invincibility      float64 `yaml:"invincibility"`       // Seconds after each hit
	StartInvincibility float64 `yaml:"start_invincibility"` // Seconds at the start of a run
}

// SpawnConfig defines debris spawn timing and placement.
type SpawnConfig struct {
	Interval         float64          `yaml:"interval"`
	IntervalVariance float64          `yaml:"interval_variance"`
	MaxDebris        int              `yaml:"max_debris"`
	Offset           float64          `yaml:"offset"` // World units beyond the viewport edge
	Mode             string           `yaml:"mode"`   // "all", "top", "sides" or "top_and_sides"
	LateralSpread    float64          `yaml:"lateral_spread"`
	Difficulty       DifficultyConfig `yaml:"difficulty"`
}

// DifficultyConfig defines how the spawn interval shrinks over time.
type DifficultyConfig struct {
	Enabled     bool    `yaml:"enabled"`
	MinInterval float64 `yaml:"min_interval"`
	ScaleRate   float64 `yaml:"scale_rate"` // Seconds of interval removed per second of play
}

// DebrisConfig lists the debris variants picked at random on each spawn.
type DebrisConfig struct {
	Variants []DebrisVariant `yaml:"variants"`
}

// DebrisVariant defines one kind of debris.
type DebrisVariant struct {
	Name             string  `yaml:"name"`
	Glyph            string  `yaml:"glyph"`
	Color            string  `yaml:"color"`
	MoveSpeed        float64 `yaml:"move_speed"`
	SpeedVariance    float64 `yaml:"speed_variance"`
	RotationSpeed    float64 `yaml:"rotation_speed"`
	RotationVariance float64 `yaml:"rotation_variance"`
	Damage           int     `yaml:"damage"`
	DestroyOnHit     bool    `yaml:"destroy_on_hit"`
	Knockback        float64 `yaml:"knockback"`
	Lifetime         float64 `yaml:"lifetime"` // 0 = until off screen
	DestroyOffScreen bool    `yaml:"destroy_offscreen"`
	OffScreenMargin  float64 `yaml:"offscreen_margin"` // In viewports
	Radius           float64 `yaml:"radius"`
}

// ScoreConfig defines how distance converts to points.
type ScoreConfig struct {
	Multiplier float64 `yaml:"multiplier"`
	Ratchet    bool    `yaml:"ratchet"` // Keep the best height instead of the current one
	Track      string  `yaml:"track"`   // "camera" or "satellite"
}

// CameraConfig defines how the viewport moves through the world. Scroll
// settings apply to the scrolling game, follow settings to free flight.
type CameraConfig struct {
	ViewHeight float64 `yaml:"view_height"` // World units visible vertically
	CellAspect float64 `yaml:"cell_aspect"` // Terminal cell height / width

	ScrollSpeed      float64 `yaml:"scroll_speed"`
	Accelerate       bool    `yaml:"accelerate"`
	MaxScrollSpeed   float64 `yaml:"max_scroll_speed"`
	AccelerationRate float64 `yaml:"acceleration_rate"`

	FollowOffset float64 `yaml:"follow_offset"`
	SmoothTime   float64 `yaml:"smooth_time"`
	OneWay       bool    `yaml:"one_way"`
	MinY         float64 `yaml:"min_y"`
}

// ControlsConfig defines input handling.
type ControlsConfig struct {
	RotateHold float64 `yaml:"rotate_hold"` // Seconds a rotate key press stays active
}

// GameOverConfig defines the end-of-run sequence.
type GameOverConfig struct {
	Delay float64 `yaml:"delay"`
}
