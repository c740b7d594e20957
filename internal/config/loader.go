// Package config provides configuration management for the Courtline application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix("COURTLINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	applyModelDefaults(cfg)

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields, tolerating a missing config file (environment variables only).
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")
	v.SetEnvPrefix("COURTLINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "courtline")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("api.base_url", "https://api.collegebasketballdata.com")
	v.SetDefault("api.rate_limit", 5.0)
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.max_retries", 4)
	v.SetDefault("api.cache_enabled", true)
	v.SetDefault("api.stats_ttl_hours", 12)
	v.SetDefault("api.games_ttl_hours", 6)
	v.SetDefault("selector.max_odds", -125)
	v.SetDefault("selector.top_n", 5)
	v.SetDefault("selector.min_confidence", 0.35)
	v.SetDefault("schedule.predictions_cron", "0 14 * * *")
	v.SetDefault("schedule.results_cron", "0 */2 * * *")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If the file doesn't exist, continue with defaults and environment variables.

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	applyModelDefaults(cfg)

	return cfg, nil
}

// applyModelDefaults fills zero-valued model and market-blend fields with the
// built-in defaults so a config file only needs to override what it changes.
func applyModelDefaults(cfg *Config) {
	def := DefaultModelConfig()
	m := &cfg.Model

	if m.HomeCourtAdvantage == 0 {
		m.HomeCourtAdvantage = def.HomeCourtAdvantage
	}
	if m.LeagueAverageRating == 0 {
		m.LeagueAverageRating = def.LeagueAverageRating
	}
	if m.LeagueAverageTotal == 0 {
		m.LeagueAverageTotal = def.LeagueAverageTotal
	}
	if m.RecentGamesLimit == 0 {
		m.RecentGamesLimit = def.RecentGamesLimit
	}
	if m.HomePaceWeight == 0 {
		m.HomePaceWeight = def.HomePaceWeight
	}
	if m.MinPace == 0 {
		m.MinPace = def.MinPace
	}
	if m.MaxPace == 0 {
		m.MaxPace = def.MaxPace
	}
	if m.DefaultPace == 0 {
		m.DefaultPace = def.DefaultPace
	}
	if m.MinRating == 0 {
		m.MinRating = def.MinRating
	}
	if m.MaxRating == 0 {
		m.MaxRating = def.MaxRating
	}
	if m.DefaultRating == 0 {
		m.DefaultRating = def.DefaultRating
	}
	if m.MarketBlend.MaxRecentGames == 0 {
		m.MarketBlend = def.MarketBlend
	}
	if len(m.ConferenceTiers) == 0 {
		m.ConferenceTiers = def.ConferenceTiers
	}
}
