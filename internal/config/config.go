// Package config loads table and UI settings from an HCL file, a .env file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
)

// Environment variables that override the file settings
const (
	EnvBankroll = "BLACKJACK_BANKROLL"
	EnvMinBet   = "BLACKJACK_MIN_BET"
	EnvSeed     = "BLACKJACK_SEED"
	EnvLogLevel = "BLACKJACK_LOG_LEVEL"
)

// Config represents the complete configuration
type Config struct {
	Table TableSettings
	UI    UISettings
}

// TableSettings contains the house rules for a session
type TableSettings struct {
	StartingBankroll   int   `hcl:"starting_bankroll,optional"`
	MinimumBet         int   `hcl:"minimum_bet,optional"`
	DecisionTimeout    int   `hcl:"decision_timeout,optional"` // seconds, 0 disables
	MaxIllegalAttempts int   `hcl:"max_illegal_attempts,optional"`
	Seed               int64 `hcl:"seed,optional"` // 0 picks a time based seed
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	Theme    string `hcl:"theme,optional"`
}

// fileConfig mirrors the HCL layout; both blocks are optional
type fileConfig struct {
	Table *TableSettings `hcl:"table,block"`
	UI    *UISettings    `hcl:"ui,block"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Table: TableSettings{
			StartingBankroll:   1000,
			MinimumBet:         10,
			DecisionTimeout:    0,
			MaxIllegalAttempts: 5,
			Seed:               0,
		},
		UI: UISettings{
			LogLevel: "info",
			LogFile:  "blackjack.log",
			Theme:    "default",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults; settings left out of the file keep their default values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	var config Config
	if fc.Table != nil {
		config.Table = *fc.Table
	}
	if fc.UI != nil {
		config.UI = *fc.UI
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()

	if config.Table.StartingBankroll == 0 {
		config.Table.StartingBankroll = defaults.Table.StartingBankroll
	}
	if config.Table.MinimumBet == 0 {
		config.Table.MinimumBet = defaults.Table.MinimumBet
	}
	if config.Table.MaxIllegalAttempts == 0 {
		config.Table.MaxIllegalAttempts = defaults.Table.MaxIllegalAttempts
	}

	if config.UI.LogLevel == "" {
		config.UI.LogLevel = defaults.UI.LogLevel
	}
	if config.UI.LogFile == "" {
		config.UI.LogFile = defaults.UI.LogFile
	}
	if config.UI.Theme == "" {
		config.UI.Theme = defaults.UI.Theme
	}

	return &config, nil
}

// ApplyEnv loads the given .env files (".env" when none are given) and
// applies BLACKJACK_* overrides. Missing .env files are ignored and variables
// already set in the environment win over the file.
func (c *Config) ApplyEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	if err := envInt(EnvBankroll, &c.Table.StartingBankroll); err != nil {
		return err
	}
	if err := envInt(EnvMinBet, &c.Table.MinimumBet); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		c.Table.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.UI.LogLevel = v
	}

	return nil
}

func envInt(name string, dst *int) error {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = n
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.StartingBankroll <= 0 {
		return fmt.Errorf("starting bankroll must be positive")
	}

	if c.Table.MinimumBet <= 0 {
		return fmt.Errorf("minimum bet must be positive")
	}

	if c.Table.DecisionTimeout < 0 {
		return fmt.Errorf("decision timeout cannot be negative")
	}

	if c.Table.MaxIllegalAttempts <= 0 {
		return fmt.Errorf("max illegal attempts must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	// Validate theme
	validThemes := map[string]bool{
		"default": true,
		"plain":   true,
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}

	return nil
}

// DecisionTimeout returns the decision timeout as a duration
func (c *Config) DecisionTimeout() time.Duration {
	return time.Duration(c.Table.DecisionTimeout) * time.Second
}
