package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/artillery/internal/games/artillery/engine"
)

// ConfigFile is the file name looked up in the user and local config directories.
const ConfigFile = "artillery.yaml"

// LoadArtillery loads the artillery configuration.
// Search order: customPath -> ~/.artillery/configs/artillery.yaml -> ./configs/artillery.yaml -> embedded default
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadArtillery(customPath string) (ArtilleryConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ArtilleryConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return ArtilleryConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultArtilleryYAML)
	if err != nil {
		return DefaultArtilleryConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the hardcoded defaults and validates the result.
func parse(data []byte) (ArtilleryConfig, error) {
	cfg := DefaultArtilleryConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".artillery", "configs", filename)
}

// ApplyArtilleryPreset modifies the config based on a difficulty preset.
// Wind never exceeds engine.DefaultMaxWind; harder presets shrink the
// cannons and the ball instead.
func ApplyArtilleryPreset(cfg *ArtilleryConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Wind.Max = 4
		cfg.Match.CannonSize = 14
	case DifficultyHard:
		cfg.Wind.Max = engine.DefaultMaxWind
		cfg.Match.CannonSize = 6
		cfg.Match.BallSize = 2
	case DifficultyFixed:
		// Fixed keeps the aim and field but removes the wind entirely.
		cfg.Wind.Max = 0
	}
}
