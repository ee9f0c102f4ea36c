// Package config loads user preferences for rctx from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kk-code-lab/rctx/internal/logging"
)

// Config holds user preferences. CLI flags override file values.
type Config struct {
	// ShowHidden lists dotfiles and hidden-attribute entries on startup.
	ShowHidden bool `yaml:"show_hidden"`

	// ShowIgnored lists paths matched by .gitignore rules on startup.
	ShowIgnored bool `yaml:"show_ignored"`

	// TreeDepth limits tree output. 0 prints only the root line; a
	// negative value means no limit.
	TreeDepth int `yaml:"tree_depth"`

	// MessageTimeout is how long status messages stay on screen.
	MessageTimeout time.Duration `yaml:"message_timeout"`

	// LogLevel sets the logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogFile receives logs; empty disables logging.
	LogFile string `yaml:"log_file"`
}

// DefaultTreeDepth is the tree depth used when neither the config file nor
// a flag sets one.
const DefaultTreeDepth = 10

// DefaultConfig returns the built-in preferences.
func DefaultConfig() *Config {
	return &Config{
		ShowHidden:     false,
		ShowIgnored:    false,
		TreeDepth:      DefaultTreeDepth,
		MessageTimeout: 3 * time.Second,
		LogLevel:       "info",
		LogFile:        "",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/rctx/config.yaml, falling back to
// ~/.config/rctx/config.yaml. It is empty when neither can be resolved.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rctx", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "rctx", "config.yaml")
}

// LoadConfig reads path over the defaults. A missing file is not an error;
// a malformed one is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointer fields tell an explicit false or 0 apart from an absent key.
	var raw struct {
		ShowHidden     *bool   `yaml:"show_hidden"`
		ShowIgnored    *bool   `yaml:"show_ignored"`
		TreeDepth      *int    `yaml:"tree_depth"`
		MessageTimeout *string `yaml:"message_timeout"`
		LogLevel       *string `yaml:"log_level"`
		LogFile        *string `yaml:"log_file"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if raw.ShowHidden != nil {
		cfg.ShowHidden = *raw.ShowHidden
	}
	if raw.ShowIgnored != nil {
		cfg.ShowIgnored = *raw.ShowIgnored
	}
	if raw.TreeDepth != nil {
		cfg.TreeDepth = *raw.TreeDepth
	}
	if raw.MessageTimeout != nil && *raw.MessageTimeout != "" {
		timeout, err := time.ParseDuration(*raw.MessageTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid message_timeout %q: %w", *raw.MessageTimeout, err)
		}
		cfg.MessageTimeout = timeout
	}
	if raw.LogLevel != nil && *raw.LogLevel != "" {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.LogFile != nil {
		cfg.LogFile = expandHome(*raw.LogFile)
	}
	return cfg, nil
}

// MergeWithFlags applies CLI flags. Nil values leave the file setting alone.
func (c *Config) MergeWithFlags(showHidden, showIgnored *bool, treeDepth *int, logLevel, logFile *string) {
	if showHidden != nil {
		c.ShowHidden = *showHidden
	}
	if showIgnored != nil {
		c.ShowIgnored = *showIgnored
	}
	if treeDepth != nil {
		c.TreeDepth = *treeDepth
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logFile != nil {
		c.LogFile = *logFile
	}
}

// Validate rejects values the program cannot honour.
func (c *Config) Validate() error {
	if c.MessageTimeout <= 0 {
		return fmt.Errorf("message_timeout must be > 0, got %v", c.MessageTimeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Logging returns the logger settings derived from c.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: "json", Path: c.LogFile}
}

func expandHome(path string) string {
	if len(path) < 2 || path[0] != '~' || (path[1] != '/' && path[1] != '\\') {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, path[2:])
}
