package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/footy-edge/internal/models"
)

// CustomValidator wraps the validator with custom validation rules.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a validator with the custom rules registered.
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("market", validateMarket)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration.
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using the registered rules and
// cross-field checks.
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validateMarket(fl validator.FieldLevel) bool {
	return models.Outcome(fl.Field().String()).Valid()
}

func validateCrossField(cfg *Config) error {
	for _, s := range cfg.Strategies {
		if s.StakeAmount > 0 && s.StakePercent > 0 {
			return fmt.Errorf("strategy %q: stake_amount and stake_percent are mutually exclusive", s.Name)
		}
		if s.StakeAmount == 0 && s.StakePercent == 0 {
			return fmt.Errorf("strategy %q: one of stake_amount or stake_percent is required", s.Name)
		}
		if s.MinOdds > 0 && s.MaxOdds > 0 && s.MinOdds > s.MaxOdds {
			return fmt.Errorf("strategy %q: min_odds must not exceed max_odds", s.Name)
		}
	}

	if cfg.Sources.FootballData.Enabled && cfg.Sources.FootballData.APIKey == "" {
		return fmt.Errorf("sources.football_data: api_key is required when the source is enabled")
	}
	if cfg.Sources.OddsHistory.Enabled && cfg.Sources.OddsHistory.APIKey == "" {
		return fmt.Errorf("sources.odds_history: api_key is required when the source is enabled")
	}

	if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production environment requires SSL mode 'require' or 'verify-full'")
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, fmt.Sprintf("%s failed on '%s'", err.Namespace(), err.Tag()))
	}
	return fmt.Errorf("configuration validation failed: %s", strings.Join(messages, "; "))
}
