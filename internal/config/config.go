// Package config provides configuration management for the Courtline application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	API      APIConfig      `mapstructure:"api" validate:"required"`
	Model    ModelConfig    `mapstructure:"model" validate:"required"`
	Selector SelectorConfig `mapstructure:"selector" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password" validate:"required"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// APIConfig represents the college basketball data API configuration
type APIConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"required,url"`
	Key            string  `mapstructure:"key" validate:"required"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	CacheEnabled   bool    `mapstructure:"cache_enabled"`
	StatsTTLHours  int     `mapstructure:"stats_ttl_hours" validate:"required,gt=0"`
	GamesTTLHours  int     `mapstructure:"games_ttl_hours" validate:"required,gt=0"`
}

// MarketBlendConfig holds the tunable thresholds for the market-trust
// blending step of spread prediction. The thresholds were tuned empirically;
// they are configuration, not fixed constants.
type MarketBlendConfig struct {
	MaxRecentGames    int     `mapstructure:"max_recent_games" validate:"required,gt=0"`
	MinGap            float64 `mapstructure:"min_gap" validate:"required,gt=0"`
	ModerateMagnitude float64 `mapstructure:"moderate_magnitude" validate:"required,gt=0"`
	BigMagnitude      float64 `mapstructure:"big_magnitude" validate:"required,gt=0"`
	ExtremeMagnitude  float64 `mapstructure:"extreme_magnitude" validate:"required,gt=0"`
	DefaultBase       float64 `mapstructure:"default_base" validate:"gte=0,lte=1"`
	DefaultSpan       float64 `mapstructure:"default_span" validate:"gte=0,lte=1"`
	ModerateBase      float64 `mapstructure:"moderate_base" validate:"gte=0,lte=1"`
	ModerateSpan      float64 `mapstructure:"moderate_span" validate:"gte=0,lte=1"`
	BigBase           float64 `mapstructure:"big_base" validate:"gte=0,lte=1"`
	BigSpan           float64 `mapstructure:"big_span" validate:"gte=0,lte=1"`
	ExtremeBase       float64 `mapstructure:"extreme_base" validate:"gte=0,lte=1"`
	ExtremeSpan       float64 `mapstructure:"extreme_span" validate:"gte=0,lte=1"`
}

// ModelConfig represents prediction engine configuration. All values the
// engine treats as tunable live here so alternate configurations can be
// tested without touching prediction logic.
type ModelConfig struct {
	HomeCourtAdvantage  float64 `mapstructure:"home_court_advantage" validate:"gte=0"`
	LeagueAverageRating float64 `mapstructure:"league_average_rating" validate:"required,gt=0"`
	LeagueAverageTotal  float64 `mapstructure:"league_average_total" validate:"required,gt=0"`
	RecentGamesLimit    int     `mapstructure:"recent_games_limit" validate:"required,gt=0"`
	HomePaceWeight      float64 `mapstructure:"home_pace_weight" validate:"gt=0,lt=1"`

	MinPace       float64 `mapstructure:"min_pace" validate:"required,gt=0"`
	MaxPace       float64 `mapstructure:"max_pace" validate:"required,gt=0"`
	DefaultPace   float64 `mapstructure:"default_pace" validate:"required,gt=0"`
	MinRating     float64 `mapstructure:"min_rating" validate:"required,gt=0"`
	MaxRating     float64 `mapstructure:"max_rating" validate:"required,gt=0"`
	DefaultRating float64 `mapstructure:"default_rating" validate:"required,gt=0"`

	MarketBlend MarketBlendConfig `mapstructure:"market_blend" validate:"required"`

	// ConferenceTiers ranks conferences 1 (power) through 6 (low-major);
	// conferences absent from the map are tier 7 (unknown).
	ConferenceTiers map[string]int `mapstructure:"conference_tiers" validate:"dive,min=1,max=6"`
}

// SelectorConfig represents best-bet selection configuration
type SelectorConfig struct {
	MaxOdds       int     `mapstructure:"max_odds" validate:"required"`
	TopN          int     `mapstructure:"top_n" validate:"required,gt=0"`
	MinConfidence float64 `mapstructure:"min_confidence" validate:"gte=0,lte=1"`
}

// ScheduleConfig represents the daemon's cron schedules
type ScheduleConfig struct {
	PredictionsCron string `mapstructure:"predictions_cron" validate:"required"`
	ResultsCron     string `mapstructure:"results_cron" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN builds a connection string from the database configuration
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// DefaultModelConfig returns the model configuration the engine ships with.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		HomeCourtAdvantage:  3.5,
		LeagueAverageRating: 100.0,
		LeagueAverageTotal:  142.0,
		RecentGamesLimit:    10,
		HomePaceWeight:      0.55,
		MinPace:             55.0,
		MaxPace:             85.0,
		DefaultPace:         70.0,
		MinRating:           60.0,
		MaxRating:           180.0,
		DefaultRating:       100.0,
		MarketBlend: MarketBlendConfig{
			MaxRecentGames:    15,
			MinGap:            5,
			ModerateMagnitude: 15,
			BigMagnitude:      20,
			ExtremeMagnitude:  25,
			DefaultBase:       0.40,
			DefaultSpan:       0.10,
			ModerateBase:      0.50,
			ModerateSpan:      0.15,
			BigBase:           0.60,
			BigSpan:           0.20,
			ExtremeBase:       0.70,
			ExtremeSpan:       0.20,
		},
		ConferenceTiers: DefaultConferenceTiers(),
	}
}

// DefaultSelectorConfig returns the best-bet selector defaults: -125 odds
// ceiling, top five picks, 35% confidence floor.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		MaxOdds:       -125,
		TopN:          5,
		MinConfidence: 0.35,
	}
}

// DefaultConferenceTiers returns the built-in conference tier table. Tier 1
// holds the elite power conferences; unlisted conferences resolve to tier 7.
func DefaultConferenceTiers() map[string]int {
	return map[string]int{
		"Big Ten": 1,
		"SEC":     1,
		"Big 12":  1,
		"ACC":     1,

		"Big East": 2,
		"Pac-12":   2,

		"Mountain West":     3,
		"Atlantic 10":       3,
		"West Coast":        3,
		"American Athletic": 3,

		"Missouri Valley": 4,
		"Conference USA":  4,
		"Sun Belt":        4,
		"Mid-American":    4,
		"MAC":             4,

		"Horizon":      5,
		"WAC":          5,
		"Big West":     5,
		"Big Sky":      5,
		"Summit":       5,
		"Southern":     5,
		"Colonial":     5,
		"America East": 5,

		"Southland":    6,
		"Ohio Valley":  6,
		"MAAC":         6,
		"Northeast":    6,
		"Patriot":      6,
		"Atlantic Sun": 6,
		"Big South":    6,
		"SWAC":         6,
		"MEAC":         6,
	}
}
