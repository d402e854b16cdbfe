// Package config provides configuration management for the footy-edge
// betting analysis engine.
package config

import (
	"fmt"

	"github.com/yourusername/footy-edge/internal/models"
)

// Config represents the complete application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Sources    SourcesConfig    `mapstructure:"sources" validate:"required"`
	Discovery  DiscoveryConfig  `mapstructure:"discovery"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Strategies []StrategyConfig `mapstructure:"strategies" validate:"dive"`
}

// AppConfig represents application-level configuration.
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration.
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// SourcesConfig represents the external dataset providers.
type SourcesConfig struct {
	FootballData ProviderConfig    `mapstructure:"football_data" validate:"required"`
	OddsHistory  ProviderConfig    `mapstructure:"odds_history" validate:"required"`
	Seasons      []string          `mapstructure:"seasons" validate:"required,min=1"`
	TeamAliases  map[string]string `mapstructure:"team_aliases"`
	RefreshCron  string            `mapstructure:"refresh_cron"`
}

// ProviderConfig represents one external data provider.
type ProviderConfig struct {
	BaseURL       string  `mapstructure:"base_url" validate:"required,url"`
	APIKey        string  `mapstructure:"api_key"`
	CompetitionID string  `mapstructure:"competition_id"`
	RateLimit     float64 `mapstructure:"rate_limit" validate:"gte=0"`
	Enabled       bool    `mapstructure:"enabled"`
}

// DiscoveryConfig tunes pattern discovery runs.
type DiscoveryConfig struct {
	MinProfitability float64  `mapstructure:"min_profitability"`
	WatchTeams       []string `mapstructure:"watch_teams"`
}

// MetricsConfig represents the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}

// StrategyConfig declares one named betting strategy in configuration.
// Exactly one of stake_amount and stake_percent must be set.
type StrategyConfig struct {
	Name         string  `mapstructure:"name" validate:"required"`
	Market       string  `mapstructure:"market" validate:"required,market"`
	Season       string  `mapstructure:"season"`
	Team         string  `mapstructure:"team"`
	HomeTeam     string  `mapstructure:"home_team"`
	AwayTeam     string  `mapstructure:"away_team"`
	StakeAmount  float64 `mapstructure:"stake_amount" validate:"gte=0"`
	StakePercent float64 `mapstructure:"stake_percent" validate:"gte=0,lte=100"`
	MinOdds      float64 `mapstructure:"min_odds" validate:"gte=0"`
	MaxOdds      float64 `mapstructure:"max_odds" validate:"gte=0"`
	Movement     string  `mapstructure:"movement" validate:"omitempty,oneof=UP DOWN ANY"`
}

// ToDefinition converts the declared strategy into an engine
// StrategyDefinition, enforcing the stake-rule exclusivity.
func (s StrategyConfig) ToDefinition() (models.StrategyDefinition, error) {
	var stake models.StakeRule
	switch {
	case s.StakeAmount > 0 && s.StakePercent > 0:
		return models.StrategyDefinition{}, fmt.Errorf("%w: strategy %q sets both stake_amount and stake_percent",
			models.ErrInvalidStrategy, s.Name)
	case s.StakeAmount > 0:
		stake = models.FixedStake(s.StakeAmount)
	case s.StakePercent > 0:
		stake = models.PercentStake(s.StakePercent)
	default:
		return models.StrategyDefinition{}, fmt.Errorf("%w: strategy %q sets neither stake_amount nor stake_percent",
			models.ErrInvalidStrategy, s.Name)
	}

	def := models.StrategyDefinition{
		Name:   s.Name,
		Market: models.Outcome(s.Market),
		Filter: models.MatchFilter{
			Season:   s.Season,
			Team:     s.Team,
			HomeTeam: s.HomeTeam,
			AwayTeam: s.AwayTeam,
		},
		Stake:    stake,
		MinOdds:  s.MinOdds,
		MaxOdds:  s.MaxOdds,
		Movement: models.OddsMovement(s.Movement),
	}
	if err := def.Validate(); err != nil {
		return models.StrategyDefinition{}, err
	}
	return def, nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// FindStrategy returns the declared strategy with the given name.
func (c *Config) FindStrategy(name string) (StrategyConfig, bool) {
	for _, s := range c.Strategies {
		if s.Name == name {
			return s, true
		}
	}
	return StrategyConfig{}, false
}
