// Package config loads the receiver's presentation settings. None of these
// affect the delivery protocol; they only shape how entries are shown and
// how much history is kept.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/0443n/herald/internal/notification"
	"github.com/0443n/herald/internal/xdgpath"
	"github.com/BurntSushi/toml"
)

// Config is the receiver configuration from ~/.config/herald/config.toml.
type Config struct {
	// ShowBody includes the notification body in the presentation.
	ShowBody bool `toml:"show_body"`
	// TimeoutOverride, if set, replaces every notification's display
	// timeout (milliseconds; 0 = persistent).
	TimeoutOverride *int `toml:"timeout_override"`
	// UrgencyFilter, if non-empty, limits presentation to these urgency
	// levels. Filtered entries are still marked delivered.
	UrgencyFilter []string `toml:"urgency_filter"`
	// MaxHistory bounds the history subdirectory size.
	MaxHistory int `toml:"max_history"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		ShowBody:   true,
		MaxHistory: 100,
	}
}

// Load reads the config file at path, merging it over the defaults. A
// missing file yields the defaults; an unreadable or invalid file yields
// the defaults with a warning, so a bad config never keeps notifications
// from being delivered.
func Load(path string) Config {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		slog.Warn("Failed to read config, using defaults", "path", path, "err", err)
		return Default()
	}
	if cfg.MaxHistory < 0 {
		slog.Warn("Ignoring negative max_history", "value", cfg.MaxHistory)
		cfg.MaxHistory = Default().MaxHistory
	}
	return cfg
}

// DefaultPath returns the standard config file location for this user.
func DefaultPath() (string, error) {
	path, err := xdgpath.ConfigPath("config.toml")
	if err != nil {
		return "", fmt.Errorf("locate config: %w", err)
	}
	return path, nil
}

// Presentable reports whether the urgency filter admits this urgency.
func (c Config) Presentable(u notification.Urgency) bool {
	if len(c.UrgencyFilter) == 0 {
		return true
	}
	for _, allowed := range c.UrgencyFilter {
		if notification.Urgency(allowed) == u {
			return true
		}
	}
	return false
}
