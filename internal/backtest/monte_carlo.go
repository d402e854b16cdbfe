package backtest

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/yourusername/footy-edge/internal/models"
)

// MonteCarloConfig configures bootstrap resampling of a simulation.
type MonteCarloConfig struct {
	Iterations int
	Seed       int64
}

// MonteCarloResult summarizes the resampled bankroll distribution.
type MonteCarloResult struct {
	Iterations          int     `json:"iterations"`
	MeanReturn          float64 `json:"mean_return"`
	StdReturn           float64 `json:"std_return"`
	VaR95               float64 `json:"var_95"`
	ProbabilityOfProfit float64 `json:"probability_of_profit"`
	ProbabilityOfRuin   float64 `json:"probability_of_ruin"`
}

// RunMonteCarlo reshuffles the realized bet P&Ls of a simulation to
// estimate how sensitive the final bankroll is to bet ordering. With
// fixed stakes the order is irrelevant, but percentage staking
// compounds, so unlucky early runs can drain the bankroll. Sampling is
// with replacement over the realized per-bet returns.
func RunMonteCarlo(result *models.SimulationResult, cfg MonteCarloConfig) MonteCarloResult {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if len(result.Bets) == 0 {
		return MonteCarloResult{Iterations: cfg.Iterations}
	}

	// Per-bet return on stake; reapplying these to a fresh bankroll
	// preserves each bet's edge while varying the path.
	returns := make([]float64, len(result.Bets))
	for i, bet := range result.Bets {
		if bet.Stake > 0 {
			returns[i] = bet.ProfitLoss / bet.Stake
		}
	}

	rng := rand.New(rand.NewSource(seed))
	finals := make([]float64, cfg.Iterations)
	ruined := 0

	for i := 0; i < cfg.Iterations; i++ {
		bankroll := InitialBankroll
		for range returns {
			r := returns[rng.Intn(len(returns))]
			stake := result.TotalStaked / float64(len(result.Bets))
			bankroll += stake * r
			if bankroll <= 0 {
				bankroll = 0
				ruined++
				break
			}
		}
		finals[i] = bankroll
	}

	mean, std := meanStd(finals)
	return MonteCarloResult{
		Iterations:          cfg.Iterations,
		MeanReturn:          (mean - InitialBankroll) / InitialBankroll,
		StdReturn:           std / InitialBankroll,
		VaR95:               (percentile(finals, 0.05) - InitialBankroll) / InitialBankroll,
		ProbabilityOfProfit: probabilityAbove(finals, InitialBankroll),
		ProbabilityOfRuin:   float64(ruined) / float64(cfg.Iterations),
	}
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func percentile(values []float64, level float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	index := int(math.Floor(level * float64(len(sorted))))
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

func probabilityAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}
