// Package config provides file-based configuration for xbgdump.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings a capture run starts from. Command-line flags
// override anything set here.
type Config struct {
	// Output is the default output path; "-" means stdout.
	Output string `yaml:"output"`

	// Format is the output container ("png" or "ppm"). Empty infers from
	// the output filename.
	Format string `yaml:"format"`

	// Mask hides regions outside every monitor on multi-head desktops.
	Mask bool `yaml:"mask"`

	// IgnoreLayoutErrors writes the unmasked image when the monitor
	// layout cannot be resolved, instead of failing.
	IgnoreLayoutErrors bool `yaml:"ignore_layout_errors"`

	// Property is the root-window property naming the background pixmap.
	Property string `yaml:"property"`

	// MaxWidth downscales output to at most this many pixels wide
	// (0 = original size).
	MaxWidth int `yaml:"max_width"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output:   "bg.png",
		Mask:     true,
		Property: "_XROOTPMAP_ID",
		LogLevel: "info",
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "xbgdump", "config.yaml"), nil
}

// Load reads the config from the standard location. A missing file is not
// an error; defaults are returned.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the config from an explicit path, applying defaults
// for unset fields.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Format {
	case "", "png", "ppm":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.MaxWidth < 0 {
		return fmt.Errorf("max_width must not be negative")
	}
	if c.Property == "" {
		return fmt.Errorf("property must not be empty")
	}
	return nil
}
