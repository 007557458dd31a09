package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir returns ~/.config/credfetch, or "" when there is no home directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "credfetch")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the YAML file at path over the defaults. An empty path means
// DefaultPath. Missing or unreadable files yield the defaults.
func Load(path string) Config {
	cfg := DefaultConfig()
	if dir := Dir(); dir != "" {
		cfg.CookieFile = filepath.Join(dir, "cookies.json")
	}

	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	// Decode into a copy so a half-applied invalid file cannot leak.
	parsed := cfg
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg
	}
	return parsed
}
