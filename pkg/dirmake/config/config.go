// Package config loads optional invocation defaults from a YAML file.
// Flags given on the command line always win over file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the dirmake configuration file.
type Config struct {
	// Parents enables ancestor creation by default.
	Parents bool `yaml:"parents"`
	// Verbose enables per-directory creation reporting by default.
	Verbose bool `yaml:"verbose"`
	// Mode is a symbolic mode expression applied when -m is not given.
	// It is validated with the same parser as the flag.
	Mode string `yaml:"mode,omitempty"`
	// LogLevel sets the default log level (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
	}
}

// DefaultPath returns the default config file location, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "dirmake", "config.yaml")
}

// Load reads the configuration from path. An empty path selects the
// default location, where a missing file simply yields the defaults; an
// explicitly given path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
