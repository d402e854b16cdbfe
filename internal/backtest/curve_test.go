package backtest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/footy-edge/internal/models"
)

func TestCurveToCSV(t *testing.T) {
	curve := []models.PnLPoint{
		{CumulativePnL: 100, Bankroll: 1100},
		{CumulativePnL: -50, Bankroll: 950},
	}
	csv := CurveToCSV(curve)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "bet,cumulative_pnl,bankroll", lines[0])
	assert.Equal(t, "1,100.00,1100.00", lines[1])
	assert.Equal(t, "2,-50.00,950.00", lines[2])
}

func TestCurveToCSVEmpty(t *testing.T) {
	assert.Equal(t, "bet,cumulative_pnl,bankroll\n", CurveToCSV(nil))
}

func TestMaxDrawdown(t *testing.T) {
	t.Run("flat curve has no drawdown", func(t *testing.T) {
		curve := []models.PnLPoint{{Bankroll: 1000}, {Bankroll: 1000}}
		assert.Zero(t, MaxDrawdown(curve))
	})

	t.Run("largest peak to trough drop", func(t *testing.T) {
		curve := []models.PnLPoint{
			{Bankroll: 1100},
			{Bankroll: 1200},
			{Bankroll: 900}, // 25% off the 1200 peak
			{Bankroll: 1300},
			{Bankroll: 1170}, // 10% off the 1300 peak
		}
		assert.InDelta(t, 0.25, MaxDrawdown(curve), 1e-9)
	})

	t.Run("initial bankroll is the starting peak", func(t *testing.T) {
		curve := []models.PnLPoint{{Bankroll: 800}}
		assert.InDelta(t, 0.20, MaxDrawdown(curve), 1e-9)
	})
}

func TestRunMonteCarlo(t *testing.T) {
	repo := buildCorpus(t, []fixtureSpec{
		{homeGoals: 1, awayGoals: 0, openingHome: 2.0},
		{homeGoals: 0, awayGoals: 1, openingHome: 2.0},
		{homeGoals: 2, awayGoals: 0, openingHome: 2.0},
	})
	engine, err := NewEngine(repo, nil)
	require.NoError(t, err)
	result, err := engine.Simulate(flatHomeStrategy(100))
	require.NoError(t, err)

	t.Run("seeded runs are reproducible", func(t *testing.T) {
		cfg := MonteCarloConfig{Iterations: 500, Seed: 42}
		first := RunMonteCarlo(result, cfg)
		second := RunMonteCarlo(result, cfg)
		assert.Equal(t, first, second)
	})

	t.Run("probabilities stay in range", func(t *testing.T) {
		mc := RunMonteCarlo(result, MonteCarloConfig{Iterations: 200, Seed: 7})
		assert.GreaterOrEqual(t, mc.ProbabilityOfProfit, 0.0)
		assert.LessOrEqual(t, mc.ProbabilityOfProfit, 1.0)
		assert.GreaterOrEqual(t, mc.ProbabilityOfRuin, 0.0)
		assert.LessOrEqual(t, mc.ProbabilityOfRuin, 1.0)
	})

	t.Run("empty simulation yields a zero result", func(t *testing.T) {
		empty := &models.SimulationResult{}
		mc := RunMonteCarlo(empty, MonteCarloConfig{Iterations: 100, Seed: 1})
		assert.Equal(t, 100, mc.Iterations)
		assert.Zero(t, mc.MeanReturn)
	})

	t.Run("iteration default applies", func(t *testing.T) {
		mc := RunMonteCarlo(result, MonteCarloConfig{Seed: 1})
		assert.Equal(t, 1000, mc.Iterations)
	})
}
