// Package config provides Viper-based configuration loading for the bridges
// game and its tools.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/phanxgames/bridges"
)

// GameConfig holds stroke tuning and the level to open first.
type GameConfig struct {
	// MinMoveDistance is the jitter threshold in map units.
	MinMoveDistance float64 `mapstructure:"min_move_distance"`
	// ResetDelay is how long a violated or incomplete stroke stays visible.
	ResetDelay time.Duration `mapstructure:"reset_delay"`
	// MessageTimeout is how long warnings and hints stay on screen.
	MessageTimeout time.Duration `mapstructure:"message_timeout"`
	// StartLevel is the ID of the level opened on launch.
	StartLevel string `mapstructure:"start_level"`
}

// EngineConfig converts the game section into engine tuning for the level
// at index level.
//
// Postcondition: Returns a Config accepted by bridges.NewGame.
func (g GameConfig) EngineConfig(level int) bridges.Config {
	return bridges.Config{
		Level:           level,
		MinMoveDistance: g.MinMoveDistance,
		ResetDelay:      g.ResetDelay,
		MessageTimeout:  g.MessageTimeout,
	}
}

// WindowConfig holds the desktop window settings.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// StorageConfig holds progress persistence settings.
type StorageConfig struct {
	// ProgressPath is the SQLite file for completed levels. Empty keeps
	// progress in memory.
	ProgressPath string `mapstructure:"progress_path"`
}

// LevelsConfig selects where level files come from.
type LevelsConfig struct {
	// Dir is a directory of level YAML files. Empty uses the built-in levels.
	Dir string `mapstructure:"dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Window  WindowConfig  `mapstructure:"window"`
	Logging LoggingConfig `mapstructure:"logging"`
	Storage StorageConfig `mapstructure:"storage"`
	Levels  LevelsConfig  `mapstructure:"levels"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateWindow(c.Window); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.MinMoveDistance <= 0 || math.IsNaN(g.MinMoveDistance) || math.IsInf(g.MinMoveDistance, 0) {
		errs = append(errs, fmt.Sprintf("game.min_move_distance must be a positive number, got %v", g.MinMoveDistance))
	}
	if g.ResetDelay <= 0 {
		errs = append(errs, fmt.Sprintf("game.reset_delay must be positive, got %s", g.ResetDelay))
	}
	if g.MessageTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("game.message_timeout must be positive, got %s", g.MessageTimeout))
	}
	if strings.TrimSpace(g.StartLevel) == "" {
		errs = append(errs, "game.start_level must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateWindow(w WindowConfig) error {
	var errs []string
	if w.Width < 1 {
		errs = append(errs, fmt.Sprintf("window.width must be >= 1, got %d", w.Width))
	}
	if w.Height < 1 {
		errs = append(errs, fmt.Sprintf("window.height must be >= 1, got %d", w.Height))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path uses the
// defaults plus environment overrides.
//
// Precondition: path is empty or names a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with BRIDGES_ prefix
	v.SetEnvPrefix("BRIDGES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.min_move_distance", bridges.DefaultMinMoveDistance)
	v.SetDefault("game.reset_delay", bridges.DefaultResetDelay.String())
	v.SetDefault("game.message_timeout", bridges.DefaultMessageTimeout.String())
	v.SetDefault("game.start_level", "konigsberg")

	v.SetDefault("window.title", "Seven Bridges")
	v.SetDefault("window.width", 960)
	v.SetDefault("window.height", 640)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("storage.progress_path", "")

	v.SetDefault("levels.dir", "")
}
