// Package main provides the entry point for the data ingestion service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/footy-edge/internal/analysis"
	"github.com/yourusername/footy-edge/internal/config"
	"github.com/yourusername/footy-edge/internal/database"
	"github.com/yourusername/footy-edge/internal/datasource"
	"github.com/yourusername/footy-edge/internal/health"
	"github.com/yourusername/footy-edge/internal/logger"
	"github.com/yourusername/footy-edge/internal/metrics"
	"github.com/yourusername/footy-edge/internal/scheduler"
	"github.com/yourusername/footy-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

const defaultRefreshCron = "0 4 * * *"

var (
	configFile string
	daemon     bool
	seasons    []string

	log *logrus.Logger
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "data-ingestion",
	Short: "Ingest historical fixtures and odds into the match corpus",
	Long:  `Fetches finished fixtures and historical odds from the configured providers, normalizes them into match records and persists them. In daemon mode it refreshes the corpus on a cron schedule and serves health and metrics endpoints.`,
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
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().BoolVarP(&daemon, "daemon", "d", false, "Run as a daemon with scheduled refreshes")
	rootCmd.Flags().StringSliceVar(&seasons, "seasons", nil, "Seasons to ingest (overrides configuration)")
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

func run(ctx context.Context) error {
	metrics.InitRegistry()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	store, err := database.NewMatchStore(db, log)
	if err != nil {
		return err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	svc, err := buildIngestionService(store)
	if err != nil {
		return err
	}

	targetSeasons := seasons
	if len(targetSeasons) == 0 {
		targetSeasons = cfg.Sources.Seasons
	}

	if !daemon {
		log.WithField("seasons", targetSeasons).Info("Starting one-shot ingestion")
		return svc.IngestSeasons(ctx, targetSeasons)
	}
	return runDaemon(ctx, db, svc, targetSeasons)
}

func buildIngestionService(store *database.MatchStore) (*service.IngestionService, error) {
	fixtures := datasource.NewFootballDataClient(
		providerClient(cfg.Sources.FootballData),
		cfg.Sources.FootballData.BaseURL,
		cfg.Sources.FootballData.APIKey,
		cfg.Sources.FootballData.CompetitionID,
		cfg.Sources.FootballData.Enabled,
		log,
	)
	odds := datasource.NewOddsClient(
		providerClient(cfg.Sources.OddsHistory),
		cfg.Sources.OddsHistory.BaseURL,
		cfg.Sources.OddsHistory.APIKey,
		cfg.Sources.OddsHistory.Enabled,
		log,
	)
	normalizer := datasource.NewNormalizer(cfg.Sources.TeamAliases, log)
	return service.NewIngestionService(fixtures, odds, normalizer, store, log)
}

func providerClient(pc config.ProviderConfig) *datasource.ProviderClient {
	clientCfg := datasource.DefaultHTTPClientConfig()
	if pc.RateLimit > 0 {
		clientCfg.RateLimit = pc.RateLimit
	}
	return datasource.NewProviderClient(clientCfg, log)
}

func runDaemon(ctx context.Context, db *database.DB, svc *service.IngestionService, targetSeasons []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	repo, err := svc.HydrateRepository(ctx)
	if err != nil {
		return fmt.Errorf("failed to hydrate repository: %w", err)
	}
	agg, err := analysis.NewAggregator(repo, log)
	if err != nil {
		return err
	}

	healthPort := ""
	if cfg.Metrics.Port > 0 {
		healthPort = fmt.Sprintf("%d", cfg.Metrics.Port)
	}
	healthServer := health.NewServer(health.Config{
		ServiceName: "data-ingestion",
		Version:     Version,
		Port:        healthPort,
		Logger:      log,
		DB:          db,
		Corpus:      repo,
	})
	if err := healthServer.Start(ctx); err != nil {
		return err
	}

	refreshCron := cfg.Sources.RefreshCron
	if refreshCron == "" {
		refreshCron = defaultRefreshCron
	}
	sched := scheduler.NewScheduler(svc, log)
	if err := sched.ScheduleSeasonRefresh(refreshCron, targetSeasons, repo, agg); err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	healthServer.SetReady(true)

	log.WithFields(logrus.Fields{
		"cron":     refreshCron,
		"seasons":  targetSeasons,
		"next_run": sched.NextRun(),
	}).Info("Ingestion daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		log.WithField("signal", sig.String()).Info("Shutting down")
	case <-ctx.Done():
	}

	healthServer.SetReady(false)
	if err := sched.Stop(); err != nil {
		log.WithError(err).Warn("Scheduler stop failed")
	}
	return nil
}
