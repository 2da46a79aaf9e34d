package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const tanksFile = "tanks.yaml"

// LoadTanks loads and validates the tank arena configuration.
// Search order: customPath -> ~/.tanks/configs/tanks.yaml -> ./configs/tanks.yaml -> embedded default.
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names.
func LoadTanks(customPath string) (TanksConfig, error) {
	cfg, err := loadTanksRaw(customPath)
	if err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadTanksRaw(customPath string) (TanksConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTanksConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := ParseTanks(data)
		if err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(tanksFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseTanks(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", tanksFile)); err == nil {
		if cfg, err := ParseTanks(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseTanks(defaultTanksYAML)
	if err != nil {
		return DefaultTanksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseTanks decodes a YAML document over the default configuration.
func ParseTanks(data []byte) (TanksConfig, error) {
	cfg := DefaultTanksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultTanksConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tanks", "configs", filename)
}

// ApplyTanksPreset modifies the config based on a difficulty preset.
func ApplyTanksPreset(cfg *TanksConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust lives based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Players.Lives = 5
	case DifficultyHard:
		cfg.Players.Lives = 2
	}
}
