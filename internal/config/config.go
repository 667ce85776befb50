// Package config provides Viper-based configuration loading for the fight simulator.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// FightConfig holds the timings of every fight.
type FightConfig struct {
	// TurnDuration is the time limit of one turn.
	TurnDuration time.Duration `mapstructure:"turn_duration"`
	// MoveStepDuration is the pending time of a move, per cell walked.
	MoveStepDuration time.Duration `mapstructure:"move_step_duration"`
	// AttackDuration is the pending time of a close combat attack.
	AttackDuration time.Duration `mapstructure:"attack_duration"`
}

// AIConfig holds the monster AI settings.
type AIConfig struct {
	// Enabled turns the monster AI on.
	Enabled bool `mapstructure:"enabled"`
	// Workers bounds the concurrent candidate evaluations of one decision.
	Workers int `mapstructure:"workers"`
	// ThinkDelay is the pause before each AI decision.
	ThinkDelay time.Duration `mapstructure:"think_delay"`
}

// ArenaConfig selects the map topology fights are played on.
type ArenaConfig struct {
	// MapsDir is the directory holding the YAML map files.
	MapsDir string `mapstructure:"maps_dir"`
	// Map is the id of the map to fight on.
	Map string `mapstructure:"map"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Fight   FightConfig   `mapstructure:"fight"`
	AI      AIConfig      `mapstructure:"ai"`
	Arena   ArenaConfig   `mapstructure:"arena"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateFight(c.Fight); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateAI(c.AI); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateArena(c.Arena); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
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

func validateFight(f FightConfig) error {
	var errs []string
	if f.TurnDuration <= 0 {
		errs = append(errs, fmt.Sprintf("fight.turn_duration must be positive, got %s", f.TurnDuration))
	}
	if f.MoveStepDuration < 0 {
		errs = append(errs, "fight.move_step_duration must not be negative")
	}
	if f.AttackDuration < 0 {
		errs = append(errs, "fight.attack_duration must not be negative")
	}
	if f.TurnDuration > 0 && f.AttackDuration >= f.TurnDuration {
		errs = append(errs, "fight.attack_duration must be shorter than fight.turn_duration")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateAI(a AIConfig) error {
	var errs []string
	if a.Workers < 1 {
		errs = append(errs, fmt.Sprintf("ai.workers must be >= 1, got %d", a.Workers))
	}
	if a.ThinkDelay < 0 {
		errs = append(errs, "ai.think_delay must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateArena(a ArenaConfig) error {
	var errs []string
	if a.MapsDir == "" {
		errs = append(errs, "arena.maps_dir must not be empty")
	}
	if a.Map == "" {
		errs = append(errs, "arena.map must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with TACTICS_ prefix
	v.SetEnvPrefix("TACTICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
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

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("fight.turn_duration", "30s")
	v.SetDefault("fight.move_step_duration", "300ms")
	v.SetDefault("fight.attack_duration", "500ms")

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.workers", 4)
	v.SetDefault("ai.think_delay", "200ms")

	v.SetDefault("arena.maps_dir", "content/maps")
	v.SetDefault("arena.map", "arena")
}
