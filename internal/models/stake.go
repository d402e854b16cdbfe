package models

import "fmt"

// StakeRule determines the amount wagered on a single bet. Exactly one
// rule is attached to a strategy; the two implementations are
// FixedStake and PercentStake.
type StakeRule interface {
	// Amount returns the stake for a bet given the bankroll available
	// before the bet is placed.
	Amount(bankroll float64) float64

	// Label returns a short description for reports and logs.
	Label() string

	// Validate checks the rule's parameters.
	Validate() error
}

// FixedStake wagers a constant amount on every bet.
type FixedStake float64

// Amount returns the fixed stake regardless of bankroll.
func (s FixedStake) Amount(bankroll float64) float64 {
	_ = bankroll
	return float64(s)
}

// Label returns a short description of the rule.
func (s FixedStake) Label() string {
	return fmt.Sprintf("fixed %.2f", float64(s))
}

// Validate checks that the stake amount is positive.
func (s FixedStake) Validate() error {
	if s <= 0 {
		return fmt.Errorf("%w: fixed stake must be positive, got %.2f", ErrInvalidStrategy, float64(s))
	}
	return nil
}

// PercentStake wagers a percentage of the pre-bet bankroll on every bet.
type PercentStake float64

// Amount returns the percentage of the given bankroll.
func (s PercentStake) Amount(bankroll float64) float64 {
	return bankroll * float64(s) / 100.0
}

// Label returns a short description of the rule.
func (s PercentStake) Label() string {
	return fmt.Sprintf("%.1f%% of bankroll", float64(s))
}

// Validate checks that the percentage is in (0, 100].
func (s PercentStake) Validate() error {
	if s <= 0 || s > 100 {
		return fmt.Errorf("%w: stake percentage must be in (0, 100], got %.2f", ErrInvalidStrategy, float64(s))
	}
	return nil
}
