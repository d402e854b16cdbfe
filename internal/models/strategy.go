package models

import (
	"fmt"

	"github.com/google/uuid"
)

// StrategyDefinition is a named betting rule: back one market selection
// on every match passing the filter, subject to optional odds bounds
// and a required line-movement direction.
type StrategyDefinition struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name" validate:"required,min=1,max=255"`
	Market   Outcome      `json:"market" validate:"required"`
	Filter   MatchFilter  `json:"filter"`
	Stake    StakeRule    `json:"-"`
	MinOdds  float64      `json:"min_odds,omitempty"`
	MaxOdds  float64      `json:"max_odds,omitempty"`
	Movement OddsMovement `json:"movement,omitempty"`
}

// Validate checks the strategy before simulation. It fails with
// ErrInvalidStrategy for a missing or malformed stake rule, an unknown
// market or movement, or min odds above max odds, and with
// ErrInvalidFilter for a malformed filter.
func (s StrategyDefinition) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidStrategy)
	}
	if !s.Market.Valid() {
		return fmt.Errorf("%w: unknown market %q", ErrInvalidStrategy, s.Market)
	}
	if s.Stake == nil {
		return fmt.Errorf("%w: a stake rule is required", ErrInvalidStrategy)
	}
	if err := s.Stake.Validate(); err != nil {
		return err
	}
	if s.MinOdds < 0 || s.MaxOdds < 0 {
		return fmt.Errorf("%w: odds bounds cannot be negative", ErrInvalidStrategy)
	}
	if s.MinOdds > 0 && s.MaxOdds > 0 && s.MinOdds > s.MaxOdds {
		return fmt.Errorf("%w: min odds %.2f exceeds max odds %.2f", ErrInvalidStrategy, s.MinOdds, s.MaxOdds)
	}
	if !s.Movement.Valid() {
		return fmt.Errorf("%w: unknown odds movement %q", ErrInvalidStrategy, s.Movement)
	}
	return s.Filter.Validate()
}
