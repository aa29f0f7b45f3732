package config

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "tui-flap"

// configFile is the config location relative to XDG/local config roots.
const configFile = "flap.yaml"

// Load loads the simulation configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/tui-flap/flap.yaml -> ./configs/flap.yaml -> embedded default.
// Only a custom path that cannot be read or parsed is an error; broken
// implicit files are skipped.
func Load(customPath string) (FlapConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	if userCfgPath, err := xdg.SearchConfigFile(AppName + "/" + configFile); err == nil {
		if cfg, err := loadFile(userCfgPath); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	if cfg, err := loadFile("configs/" + configFile); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}

	cfg := DefaultFlapConfig()
	if err := yaml.Unmarshal(defaultFlapYAML, &cfg); err != nil {
		return DefaultFlapConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadFile reads a YAML file on top of the defaults.
func loadFile(path string) (FlapConfig, error) {
	cfg := DefaultFlapConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
