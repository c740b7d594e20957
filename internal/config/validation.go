// Package config provides configuration management for the Courtline application.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField applies validations that span multiple fields
func validateCrossField(cfg *Config) error {
	m := cfg.Model

	if m.MinPace >= m.MaxPace {
		return fmt.Errorf("model: min_pace (%.1f) must be below max_pace (%.1f)", m.MinPace, m.MaxPace)
	}
	if m.DefaultPace < m.MinPace || m.DefaultPace > m.MaxPace {
		return fmt.Errorf("model: default_pace (%.1f) must fall within [%.1f, %.1f]", m.DefaultPace, m.MinPace, m.MaxPace)
	}
	if m.MinRating >= m.MaxRating {
		return fmt.Errorf("model: min_rating (%.1f) must be below max_rating (%.1f)", m.MinRating, m.MaxRating)
	}
	if m.DefaultRating < m.MinRating || m.DefaultRating > m.MaxRating {
		return fmt.Errorf("model: default_rating (%.1f) must fall within [%.1f, %.1f]", m.DefaultRating, m.MinRating, m.MaxRating)
	}

	mb := m.MarketBlend
	if !(mb.MinGap < mb.ModerateMagnitude && mb.ModerateMagnitude < mb.BigMagnitude && mb.BigMagnitude < mb.ExtremeMagnitude) {
		return fmt.Errorf("model: market_blend magnitudes must be strictly increasing")
	}

	// Selector odds ceiling of 0 would be ambiguous between "accept all" and
	// a misconfigured default; positive ceilings accept every price anyway.
	if cfg.Selector.MaxOdds == 0 {
		return fmt.Errorf("selector: max_odds must be non-zero (e.g. -125)")
	}

	return nil
}

// formatValidationErrors converts validator errors into a readable message
func formatValidationErrors(errs validator.ValidationErrors) error {
	var sb strings.Builder
	sb.WriteString("configuration validation failed:")
	for _, e := range errs {
		sb.WriteString(fmt.Sprintf("\n  - field '%s' failed '%s' validation", e.Namespace(), e.Tag()))
	}
	return fmt.Errorf("%s", sb.String())
}
