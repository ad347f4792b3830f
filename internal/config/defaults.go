package config

import (
	_ "embed"
)

//go:embed defaults/satellite.yaml
var defaultSatelliteYAML []byte

// DefaultSatelliteConfig returns the default satellite game configuration.
func DefaultSatelliteConfig() SatelliteConfig {
	return SatelliteConfig{
		Satellite: SatellitePhysics{
			ThrustPower:        1.0,
			MaxSpeed:           3.0,
			ThrustCooldown:     0.5,
			RotationTorque:     90.0,
			BatteryConsumption: 10.0,
			MaxBattery:         100.0,
			Radius:             0.4,
		},
		Health: HealthConfig{
			MaxHP:              3,
			Invincibility:      1.5,
			StartInvincibility: 5.0,
		},
		Spawn: SpawnConfig{
			Interval:         2.0,
			IntervalVariance: 1.0,
			MaxDebris:        20,
			Offset:           1.0,
			Mode:             "all",
			LateralSpread:    0.3,
			Difficulty: DifficultyConfig{
				Enabled:     true,
				MinInterval: 0.5,
				ScaleRate:   0.01,
			},
		},
		Debris: DebrisConfig{
			Variants: []DebrisVariant{
				{
					Name:             "fragment",
					Glyph:            "*",
					Color:            "gray",
					MoveSpeed:        2.0,
					SpeedVariance:    1.0,
					RotationSpeed:    50.0,
					RotationVariance: 30.0,
					Damage:           1,
					DestroyOnHit:     true,
					Knockback:        2.0,
					DestroyOffScreen: true,
					OffScreenMargin:  2.0,
					Radius:           0.5,
				},
				{
					Name:             "panel",
					Glyph:            "#",
					Color:            "cyan",
					MoveSpeed:        1.5,
					SpeedVariance:    0.5,
					RotationSpeed:    30.0,
					RotationVariance: 20.0,
					Damage:           1,
					DestroyOnHit:     true,
					Knockback:        3.0,
					DestroyOffScreen: true,
					OffScreenMargin:  2.0,
					Radius:           0.7,
				},
				{
					Name:             "bolt",
					Glyph:            "o",
					Color:            "orange",
					MoveSpeed:        3.5,
					SpeedVariance:    1.0,
					RotationSpeed:    120.0,
					RotationVariance: 60.0,
					Damage:           1,
					DestroyOnHit:     true,
					Knockback:        1.0,
					Lifetime:         20.0,
					DestroyOffScreen: true,
					OffScreenMargin:  2.0,
					Radius:           0.3,
				},
			},
		},
		Score: ScoreConfig{
			Multiplier: 10,
			Track:      "camera",
		},
		Camera: CameraConfig{
			ViewHeight:       12,
			CellAspect:       2.0,
			ScrollSpeed:      1.0,
			Accelerate:       true,
			MaxScrollSpeed:   3.0,
			AccelerationRate: 0.05,
			FollowOffset:     3.0,
			SmoothTime:       0.3,
			OneWay:           true,
			MinY:             0,
		},
		Controls: ControlsConfig{
			RotateHold: 0.15,
		},
		GameOver: GameOverConfig{
			Delay: 0.5,
		},
	}
}
