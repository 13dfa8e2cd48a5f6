// Package config loads the optional YAML configuration file. Flags override
// config values, config values override defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries the paths the tool needs injected: where session
// transcripts live and where generated artifacts go.
type Config struct {
	SessionsRoot string `yaml:"sessions_root"`
	OutputDir    string `yaml:"output_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		SessionsRoot: filepath.Join(home, ".codex", "sessions"),
		OutputDir:    filepath.Join(home, ".codex-context", "artifacts"),
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".codex-context", "config.yaml")
}

// Load reads the config file at path, filling unset fields from defaults.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if fileCfg.SessionsRoot != "" {
		cfg.SessionsRoot = fileCfg.SessionsRoot
	}
	if fileCfg.OutputDir != "" {
		cfg.OutputDir = fileCfg.OutputDir
	}
	return cfg, nil
}
