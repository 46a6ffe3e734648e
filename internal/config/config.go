// Package config provides YAML-based configuration loading and difficulty
// presets for the artillery duel.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/artillery/internal/games/artillery/engine"
)

// ArtilleryConfig contains all configuration for the artillery duel.
type ArtilleryConfig struct {
	Match    MatchSection    `yaml:"match"`
	Field    FieldSection    `yaml:"field"`
	Physics  PhysicsSection  `yaml:"physics"`
	Wind     WindSection     `yaml:"wind"`
	Players  []PlayerSection `yaml:"players"`
	Aim      AimSection      `yaml:"aim"`
	Gameplay GameplaySection `yaml:"gameplay"`
}

// MatchSection defines sizes shared by both cannons.
type MatchSection struct {
	CannonSize float64 `yaml:"cannon_size"`
	BallSize   float64 `yaml:"ball_size"` // radius
}

// FieldSection defines the horizontal extent of play.
type FieldSection struct {
	XLower float64 `yaml:"x_lower"`
	XUpper float64 `yaml:"x_upper"`
	Height float64 `yaml:"height"` // world units shown above the ground
}

// PhysicsSection defines the flight integration step.
type PhysicsSection struct {
	TimeStep float64 `yaml:"time_step"` // seconds per flight step
}

// WindSection defines the wind drawn at the start of every round.
type WindSection struct {
	Max float64 `yaml:"max"`
}

// PlayerSection places one cannon.
type PlayerSection struct {
	Color string  `yaml:"color"`
	X     float64 `yaml:"x"`
}

// AimSection defines the initial aim and how far one key press moves it.
type AimSection struct {
	Angle        float64 `yaml:"angle"`
	Velocity     float64 `yaml:"velocity"`
	AngleStep    float64 `yaml:"angle_step"`
	VelocityStep float64 `yaml:"velocity_step"`
}

// GameplaySection defines session rules outside the core engine.
type GameplaySection struct {
	WinScore int `yaml:"win_score"` // 0 = play until quit
}

// MatchConfig converts the file layout into the engine's match configuration.
func (c ArtilleryConfig) MatchConfig() engine.MatchConfig {
	mc := engine.MatchConfig{
		CannonSize: c.Match.CannonSize,
		BallSize:   c.Match.BallSize,
		Field:      engine.Field{XLower: c.Field.XLower, XUpper: c.Field.XUpper},
		MaxWind:    c.Wind.Max,
		InitialAim: engine.Aim{Angle: c.Aim.Angle, Velocity: c.Aim.Velocity},
	}
	for i := 0; i < len(c.Players) && i < 2; i++ {
		mc.Players[i] = engine.PlayerSpec{Color: c.Players[i].Color, X: c.Players[i].X}
	}
	return mc
}

// Validate reports the first configuration problem found.
func (c ArtilleryConfig) Validate() error {
	if len(c.Players) != 2 {
		return fmt.Errorf("config: expected exactly 2 players, got %d", len(c.Players))
	}
	for i, p := range c.Players {
		if p.Color == "" {
			return fmt.Errorf("config: player %d has no color", i+1)
		}
	}
	if c.Physics.TimeStep <= 0 {
		return fmt.Errorf("config: time_step must be positive, got %g", c.Physics.TimeStep)
	}
	if c.Field.Height <= 0 {
		return fmt.Errorf("config: field height must be positive, got %g", c.Field.Height)
	}
	if c.Aim.AngleStep <= 0 || c.Aim.VelocityStep <= 0 {
		return errors.New("config: aim steps must be positive")
	}
	if c.Gameplay.WinScore < 0 {
		return fmt.Errorf("config: win_score must not be negative, got %d", c.Gameplay.WinScore)
	}
	if err := c.MatchConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. The empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}
