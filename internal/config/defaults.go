package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flap.yaml
var defaultFlapYAML []byte

// DefaultFlapConfig returns the built-in tuning. It mirrors defaults/flap.yaml
// and is used when the embedded file cannot be decoded.
func DefaultFlapConfig() FlapConfig {
	return FlapConfig{
		Field: FieldConfig{
			Width:        400,
			Height:       800,
			TopMargin:    0,
			BottomMargin: 100,
		},
		Physics: PhysicsConfig{
			Gravity:   1000,
			JumpForce: -500,
		},
		Body: BodyConfig{
			XFraction:     0.25,
			StartFraction: 1.0 / 3.0,
			Width:         64,
			Height:        48,
			RefOffsetX:    32,
			RefOffsetY:    24,
			MaxTilt:       0.5,
			TiltVelocity:  500,
		},
		Obstacles: ObstacleConfig{
			Width:          104,
			Height:         640,
			Baseline:       320,
			ScrollDuration: 3000 * time.Millisecond,
			EndX:           -150,
			RespawnX:       -100,
			OffsetMin:      -200,
			OffsetMax:      200,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultFlapYAML
}
