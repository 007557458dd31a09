package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sadopc/credfetch/internal/config"
)

// New builds a zap logger from the log section of the config.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	zc, err := newConfig(cfg)
	if err != nil {
		return nil, err
	}
	return zc.Build()
}

func newConfig(cfg config.LogConfig) (zap.Config, error) {
	var zc zap.Config
	if strings.ToLower(cfg.Mode) == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return zap.Config{}, fmt.Errorf("parsing log level: %w", err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	// A failed fetch is one line, in either mode.
	zc.DisableStacktrace = true

	// Diagnostics go to stderr so command output on stdout stays clean.
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc, nil
}
