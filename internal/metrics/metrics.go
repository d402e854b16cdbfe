// Package metrics provides the centralized Prometheus registry for the
// betting analysis engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	SimulationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "footy_edge",
		Name:      "simulations_total",
		Help:      "Total number of strategy simulations run",
	})
	BetsSimulatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "footy_edge",
		Name:      "bets_simulated_total",
		Help:      "Total number of bets settled across all simulations",
	})
	BetsSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "footy_edge",
		Name:      "bets_skipped_total",
		Help:      "Total number of matches skipped by strategy conditions",
	})
	DiscoveryRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "footy_edge",
		Name:      "discovery_runs_total",
		Help:      "Total number of pattern discovery runs",
	})
	PatternFindingsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "footy_edge",
		Name:      "pattern_findings_total",
		Help:      "Total number of pattern findings emitted per detector",
	}, []string{"detector"})
	IngestionFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "footy_edge",
		Name:      "ingestion_fetches_total",
		Help:      "Total number of dataset fetches per source and status",
	}, []string{"source", "status"})
	IngestionRecordsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "footy_edge",
		Name:      "ingestion_records_total",
		Help:      "Total number of match records ingested",
	})
	ReportCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "footy_edge",
		Name:      "report_cache_hits_total",
		Help:      "Total number of aggregator report cache hits",
	})
)

// Gauge metrics
var (
	RepositoryMatches = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "footy_edge",
		Name:      "repository_matches",
		Help:      "Number of match records in the current corpus snapshot",
	})
)

// Histogram metrics
var (
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "footy_edge",
		Name:      "simulation_duration_seconds",
		Help:      "Duration of strategy simulations in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	DiscoveryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "footy_edge",
		Name:      "discovery_duration_seconds",
		Help:      "Duration of pattern discovery runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(SimulationsTotal)
		registry.MustRegister(BetsSimulatedTotal)
		registry.MustRegister(BetsSkippedTotal)
		registry.MustRegister(DiscoveryRunsTotal)
		registry.MustRegister(PatternFindingsTotal)
		registry.MustRegister(IngestionFetchesTotal)
		registry.MustRegister(IngestionRecordsTotal)
		registry.MustRegister(ReportCacheHitsTotal)

		registry.MustRegister(RepositoryMatches)

		registry.MustRegister(SimulationDuration)
		registry.MustRegister(DiscoveryDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// NewTimer returns a timer that observes its duration on the given
// histogram when stopped.
func NewTimer(histogram prometheus.Histogram) *prometheus.Timer {
	return prometheus.NewTimer(histogram)
}
