// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/footy-edge/internal/backtest"
	"github.com/yourusername/footy-edge/internal/config"
	"github.com/yourusername/footy-edge/internal/database"
	"github.com/yourusername/footy-edge/internal/logger"
	"github.com/yourusername/footy-edge/internal/models"
	"github.com/yourusername/footy-edge/internal/repository"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

var (
	configFile   string
	strategyName string
	outputPath   string
	curvePath    string
	monteCarlo   int
	mcSeed       int64

	log *logrus.Logger
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay betting strategies against the historical match corpus",
	Long:  `Loads the persisted match corpus and simulates a configured strategy over it, reporting profitability metrics and the cumulative P&L curve.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd.Context(), configFile)
		if err != nil {
			return err
		}
		log = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBacktest(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&strategyName, "strategy", "s", "", "Name of a strategy declared in configuration")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result JSON to this path instead of stdout")
	rootCmd.Flags().StringVar(&curvePath, "curve", "", "Write the cumulative P&L curve as CSV to this path")
	rootCmd.Flags().IntVar(&monteCarlo, "monte-carlo", 0, "Run a bootstrap resampling with this many iterations")
	rootCmd.Flags().Int64Var(&mcSeed, "seed", 0, "Random seed for the bootstrap (0 uses current time)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runBacktest(ctx context.Context) error {
	strategy, err := resolveStrategy()
	if err != nil {
		return err
	}

	repo, closeDB, err := hydrateRepository(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	engine, err := backtest.NewEngine(repo, log)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"strategy": strategy.Name,
		"market":   strategy.Market,
		"corpus":   repo.Len(),
	}).Info("Starting backtest")

	result, err := engine.Simulate(strategy)
	if err != nil {
		return err
	}

	if monteCarlo > 0 {
		mc := backtest.RunMonteCarlo(result, backtest.MonteCarloConfig{
			Iterations: monteCarlo,
			Seed:       mcSeed,
		})
		log.WithFields(logrus.Fields{
			"iterations":  mc.Iterations,
			"mean_return": mc.MeanReturn,
			"var_95":      mc.VaR95,
			"p_profit":    mc.ProbabilityOfProfit,
			"p_ruin":      mc.ProbabilityOfRuin,
		}).Info("Monte Carlo bootstrap complete")
	}

	if curvePath != "" {
		if err := os.WriteFile(curvePath, []byte(backtest.CurveToCSV(result.Curve)), 0o644); err != nil {
			return fmt.Errorf("failed to write curve: %w", err)
		}
	}

	payload := result.ToJSON()
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(payload), 0o644); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		log.WithField("path", outputPath).Info("Results written")
		return nil
	}
	fmt.Println(payload)
	return nil
}

func resolveStrategy() (models.StrategyDefinition, error) {
	if strategyName == "" {
		if len(cfg.Strategies) == 0 {
			return models.StrategyDefinition{}, fmt.Errorf("no strategies declared in configuration")
		}
		return cfg.Strategies[0].ToDefinition()
	}
	sc, ok := cfg.FindStrategy(strategyName)
	if !ok {
		return models.StrategyDefinition{}, fmt.Errorf("strategy %q not declared in configuration", strategyName)
	}
	return sc.ToDefinition()
}

func hydrateRepository(ctx context.Context) (*repository.MatchRepository, func(), error) {
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store, err := database.NewMatchStore(db, log)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	records, err := store.LoadAll(ctx)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to load match corpus: %w", err)
	}
	repo, err := repository.NewMatchRepository(records)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, db.Close, nil
}
