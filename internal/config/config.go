// Package config provides configuration management for the trading tracker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/DragosCt10/trading-tracker-sub003/internal/analytics"
	apperrors "github.com/DragosCt10/trading-tracker-sub003/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Account   AccountConfig   `mapstructure:"account"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

// AccountConfig identifies the active account and its fallback balance.
// The stored account balance, when present, takes precedence.
type AccountConfig struct {
	ID      string  `mapstructure:"id"`
	Balance float64 `mapstructure:"balance"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// AnalyticsConfig parameterizes the aggregation engine: the default
// category label, the trading-day domain and the time-of-day interval
// table live here instead of being buried in package constants.
type AnalyticsConfig struct {
	DefaultLabel     string           `mapstructure:"default_label"`
	TradingDays      []string         `mapstructure:"trading_days"`
	FallbackInterval string           `mapstructure:"fallback_interval"`
	Intervals        []IntervalConfig `mapstructure:"intervals"`
}

// IntervalConfig is one time-of-day bucket, [start, end) in "15:04" form.
type IntervalConfig struct {
	Label string `mapstructure:"label"`
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trading-tracker"
	}
	return filepath.Join(home, ".config", "trading-tracker")
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default config directory is used. A missing config file is
// not an error; defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	defaults := analytics.DefaultConfig()

	v.SetDefault("account.id", "default")
	v.SetDefault("account.balance", 10000.0)
	v.SetDefault("database.path", filepath.Join(configDir, "tracker.db"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("analytics.default_label", defaults.DefaultLabel)
	v.SetDefault("analytics.fallback_interval", defaults.FallbackInterval)

	days := make([]string, len(defaults.TradingDays))
	for i, d := range defaults.TradingDays {
		days[i] = d.String()
	}
	v.SetDefault("analytics.trading_days", days)

	intervals := make([]map[string]interface{}, len(defaults.Intervals))
	for i, iv := range defaults.Intervals {
		intervals[i] = map[string]interface{}{
			"label": iv.Label,
			"start": iv.Start,
			"end":   iv.End,
		}
	}
	v.SetDefault("analytics.intervals", intervals)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRACKER_ACCOUNT_ID"); v != "" {
		cfg.Account.ID = v
	}
	if v := os.Getenv("TRACKER_ACCOUNT_BALANCE"); v != "" {
		if balance, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Account.Balance = balance
		}
	}
	if v := os.Getenv("TRACKER_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("TRACKER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Account.Balance < 0 {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "account balance must be non-negative")
	}
	if c.Account.ID == "" {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "account id must not be empty")
	}
	if _, err := parseWeekdays(c.Analytics.TradingDays); err != nil {
		return err
	}
	for _, iv := range c.Analytics.Intervals {
		if _, err := time.Parse("15:04", iv.Start); err != nil {
			return apperrors.Wrapf(apperrors.ErrConfigInvalid, "interval %q: invalid start %q", iv.Label, iv.Start)
		}
		if _, err := time.Parse("15:04", iv.End); err != nil {
			return apperrors.Wrapf(apperrors.ErrConfigInvalid, "interval %q: invalid end %q", iv.Label, iv.End)
		}
	}
	return nil
}

// EngineConfig translates the analytics section into the engine's
// configuration tables.
func (c *Config) EngineConfig() (analytics.Config, error) {
	days, err := parseWeekdays(c.Analytics.TradingDays)
	if err != nil {
		return analytics.Config{}, err
	}

	intervals := make([]analytics.TimeInterval, len(c.Analytics.Intervals))
	for i, iv := range c.Analytics.Intervals {
		intervals[i] = analytics.TimeInterval{Label: iv.Label, Start: iv.Start, End: iv.End}
	}

	return analytics.Config{
		DefaultLabel:     c.Analytics.DefaultLabel,
		TradingDays:      days,
		Intervals:        intervals,
		FallbackInterval: c.Analytics.FallbackInterval,
	}, nil
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	lookup := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := lookup[strings.ToLower(name)]
		if !ok {
			return nil, apperrors.Wrapf(apperrors.ErrConfigInvalid, "invalid trading day %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}
