// Package main provides the entry point for the pattern discovery CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/footy-edge/internal/analysis"
	"github.com/yourusername/footy-edge/internal/config"
	"github.com/yourusername/footy-edge/internal/database"
	"github.com/yourusername/footy-edge/internal/logger"
	"github.com/yourusername/footy-edge/internal/models"
	"github.com/yourusername/footy-edge/internal/patterns"
	"github.com/yourusername/footy-edge/internal/repository"
)

var (
	configFile string
	season     string
	team       string
	minProfit  float64
	outputPath string

	log *logrus.Logger
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan the match corpus for recurring profitable betting patterns",
	Long:  `Runs the pattern detectors over the persisted match corpus and reports findings ranked by flat-stake profitability, each with a suggested strategy ready for backtesting.`,
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
		return runDiscovery(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&season, "season", "", "Restrict discovery to one season")
	rootCmd.Flags().StringVar(&team, "team", "", "Restrict discovery to matches involving one team")
	rootCmd.Flags().Float64Var(&minProfit, "min-profitability", 0, "Drop findings below this flat-stake ROI (overrides configuration)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write findings JSON to this path instead of stdout")
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

func runDiscovery(ctx context.Context) error {
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	store, err := database.NewMatchStore(db, log)
	if err != nil {
		return err
	}
	records, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load match corpus: %w", err)
	}
	repo, err := repository.NewMatchRepository(records)
	if err != nil {
		return err
	}

	agg, err := analysis.NewAggregator(repo, log)
	if err != nil {
		return err
	}
	engine, err := patterns.NewEngine(repo, agg, log)
	if err != nil {
		return err
	}

	req := patterns.DiscoveryRequest{
		Filter:     models.MatchFilter{Season: season, Team: team},
		WatchTeams: cfg.Discovery.WatchTeams,
	}

	log.WithFields(logrus.Fields{
		"corpus": repo.Len(),
		"season": season,
		"team":   team,
	}).Info("Starting pattern discovery")

	findings, err := engine.Discover(req)
	if err != nil {
		return err
	}

	threshold := minProfit
	if threshold == 0 {
		threshold = cfg.Discovery.MinProfitability
	}
	if threshold != 0 {
		kept := findings[:0]
		for _, f := range findings {
			if f.Profitability >= threshold {
				kept = append(kept, f)
			}
		}
		findings = kept
	}

	log.WithField("findings", len(findings)).Info("Pattern discovery complete")

	payload, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return err
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write findings: %w", err)
		}
		log.WithField("path", outputPath).Info("Findings written")
		return nil
	}
	fmt.Println(string(payload))
	return nil
}
