package config

import (
	"time"

	"github.com/sadopc/credfetch/internal/transport"
)

// Config holds the CLI configuration.
type Config struct {
	BaseURL    string               `yaml:"base_url"`
	CookieFile string               `yaml:"cookie_file"`
	Timeout    time.Duration        `yaml:"timeout"`
	Proxy      string               `yaml:"proxy"`
	NoProxy    string               `yaml:"no_proxy"`
	TLS        *transport.TLSConfig `yaml:"tls,omitempty"`
	Log        LogConfig            `yaml:"log"`
}

// LogConfig selects the zap preset and level.
type LogConfig struct {
	Mode  string `yaml:"mode"`  // development or production
	Level string `yaml:"level"` // debug, info, warn, error; empty keeps the preset's
}

// DefaultConfig returns the default configuration. CookieFile is filled
// in by Load because it depends on the home directory.
func DefaultConfig() Config {
	return Config{
		Timeout: 0,
		Log: LogConfig{
			Mode: "development",
		},
	}
}

// Transport returns the transport settings carried by c.
func (c Config) Transport() transport.Config {
	return transport.Config{
		ProxyURL: c.Proxy,
		NoProxy:  c.NoProxy,
		TLS:      c.TLS,
	}
}
