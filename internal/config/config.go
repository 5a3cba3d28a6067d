// Package config provides Viper-based configuration loading for the duel simulator.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ContentConfig locates the static rules content loaded once at start.
type ContentConfig struct {
	// Dir is the root of the YAML content tree (traits, upgrades, characters, levels).
	Dir string `mapstructure:"dir"`
	// ScriptDir holds Lua AI hook scripts; empty disables scripting.
	ScriptDir string `mapstructure:"script_dir"`
	// InstructionLimit caps Lua opcodes per hook call; 0 uses the scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// MatchConfig holds the defaults for a new match.
type MatchConfig struct {
	// Mode is "campaign" or "endless".
	Mode string `mapstructure:"mode"`
	// Character is the player character ID.
	Character string `mapstructure:"character"`
	// Seed seeds the deterministic random source; 0 selects crypto randomness.
	Seed uint64 `mapstructure:"seed"`
	// UpgradeOffers is the number of upgrades offered after a boss kill.
	UpgradeOffers int `mapstructure:"upgrade_offers"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Content ContentConfig `mapstructure:"content"`
	Match   MatchConfig   `mapstructure:"match"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
	matchModes = []string{"campaign", "endless"}
)

// violations accumulates every failed check so one Validate call reports them all.
type violations []string

func (v *violations) require(ok bool, format string, args ...any) {
	if !ok {
		*v = append(*v, fmt.Sprintf(format, args...))
	}
}

func (v *violations) oneOf(key, got string, allowed []string) {
	v.require(slices.Contains(allowed, got), "%s must be one of [%s], got %q", key, strings.Join(allowed, ", "), got)
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var v violations

	v.oneOf("logging.level", c.Logging.Level, logLevels)
	v.oneOf("logging.format", c.Logging.Format, logFormats)

	v.require(c.Content.Dir != "", "content.dir must not be empty")
	v.require(c.Content.InstructionLimit >= 0, "content.instruction_limit must be >= 0, got %d", c.Content.InstructionLimit)

	v.oneOf("match.mode", c.Match.Mode, matchModes)
	v.require(c.Match.Character != "", "match.character must not be empty")
	v.require(c.Match.UpgradeOffers >= 1, "match.upgrade_offers must be >= 1, got %d", c.Match.UpgradeOffers)

	if len(v) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(v, "; "))
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

	// Environment variable overrides with DUEL_ prefix
	v.SetEnvPrefix("DUEL")
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

// Defaults returns a Viper instance holding only the built-in defaults.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("content.dir", "content")
	v.SetDefault("content.script_dir", "content/scripts/ai")
	v.SetDefault("content.instruction_limit", 0)

	v.SetDefault("match.mode", "endless")
	v.SetDefault("match.character", "PROTOTYPE")
	v.SetDefault("match.seed", 0)
	v.SetDefault("match.upgrade_offers", 3)
}
