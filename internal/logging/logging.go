// Package logging builds the zap logger used across rctx. The terminal UI
// owns stdout and stderr, so logs only go to a file when one is configured.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Path   string // log file; empty disables logging
}

// New returns a logger for cfg. An empty Path yields a no-op logger.
func New(cfg Config) (*zap.Logger, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return zap.NewNop(), nil
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var config zap.Config
	if cfg.Format == "console" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{cfg.Path}
	config.ErrorOutputPaths = []string{cfg.Path}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger for %s: %w", cfg.Path, err)
	}
	return logger.Named("rctx"), nil
}

// ParseLevel accepts zap level names; an empty string means info.
func ParseLevel(name string) (zapcore.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}
