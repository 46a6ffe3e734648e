package config

import (
	_ "embed"

	"github.com/vovakirdan/artillery/internal/games/artillery/engine"
)

//go:embed defaults/artillery.yaml
var defaultArtilleryYAML []byte

// DefaultArtilleryConfig returns the default artillery configuration.
func DefaultArtilleryConfig() ArtilleryConfig {
	return ArtilleryConfig{
		Match: MatchSection{
			CannonSize: engine.DefaultCannonSize,
			BallSize:   engine.DefaultBallSize,
		},
		Field: FieldSection{
			XLower: engine.DefaultXLower,
			XUpper: engine.DefaultXUpper,
			Height: 155,
		},
		Physics: PhysicsSection{
			TimeStep: engine.DefaultTimeStep,
		},
		Wind: WindSection{
			Max: engine.DefaultMaxWind,
		},
		Players: []PlayerSection{
			{Color: "blue", X: -90},
			{Color: "red", X: 90},
		},
		Aim: AimSection{
			Angle:        engine.DefaultAim.Angle,
			Velocity:     engine.DefaultAim.Velocity,
			AngleStep:    1,
			VelocityStep: 1,
		},
		Gameplay: GameplaySection{
			WinScore: 0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultArtilleryYAML
}
