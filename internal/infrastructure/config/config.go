// Package config loads and watches the daemon configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the daemon configuration, loaded from
// $XDG_CONFIG_HOME/duotone/config.toml plus DUOTONE_* env overrides.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Schemas SchemaConfig  `mapstructure:"schemas"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig tunes the sync engine.
type EngineConfig struct {
	// DebounceMs is the quiet period for wallpaper-key notifications.
	DebounceMs int `mapstructure:"debounce_ms"`

	// Bidirectional mirrors live private-store edits into the live
	// stores immediately.
	Bidirectional bool `mapstructure:"bidirectional"`
}

// SchemaConfig names the GSettings schemas the engine binds to.
type SchemaConfig struct {
	Background string `mapstructure:"background"`
	Interface  string `mapstructure:"interface"`
	UserTheme  string `mapstructure:"user_theme"`
	Private    string `mapstructure:"private"`
}

// GetConfigDir returns the duotone config directory, creating nothing.
func GetConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "duotone"), nil
}

func validateConfig(cfg *Config) error {
	switch cfg.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logging.format %q", cfg.Logging.Format)
	}
	if cfg.Engine.DebounceMs < 0 {
		return fmt.Errorf("engine.debounce_ms must not be negative, got %d", cfg.Engine.DebounceMs)
	}
	if cfg.Schemas.Background == "" || cfg.Schemas.Interface == "" || cfg.Schemas.Private == "" {
		return fmt.Errorf("schemas.background, schemas.interface and schemas.private must not be empty")
	}
	return nil
}
