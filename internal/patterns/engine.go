package patterns

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/footy-edge/internal/analysis"
	"github.com/yourusername/footy-edge/internal/metrics"
	"github.com/yourusername/footy-edge/internal/models"
	"github.com/yourusername/footy-edge/internal/repository"
)

// DiscoveryRequest scopes one pattern discovery run.
type DiscoveryRequest struct {
	// Filter narrows the corpus before any detector runs.
	Filter models.MatchFilter

	// TargetMetric selects the ranking statistic. Defaults to ROI.
	TargetMetric Metric

	// WatchTeams overrides the team detector's watch list. When empty
	// the most active teams in the corpus are watched.
	WatchTeams []string
}

// Engine runs the fixed detector battery and ranks the merged findings
// by profitability, descending. Callers filter externally by a minimum
// profitability threshold if desired.
type Engine struct {
	repo   *repository.MatchRepository
	agg    *analysis.Aggregator
	logger *logrus.Logger
}

// NewEngine creates a discovery engine over a repository and its
// aggregator.
func NewEngine(repo *repository.MatchRepository, agg *analysis.Aggregator, logger *logrus.Logger) (*Engine, error) {
	if repo == nil {
		return nil, fmt.Errorf("match repository is required")
	}
	if agg == nil {
		return nil, fmt.Errorf("aggregator is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{repo: repo, agg: agg, logger: logger}, nil
}

// Discover runs every detector over the filtered corpus. Detectors
// whose samples fall below the minimum size stay silent; an empty
// finding list is a valid outcome.
func (e *Engine) Discover(req DiscoveryRequest) ([]models.PatternFinding, error) {
	if req.TargetMetric == "" {
		req.TargetMetric = MetricROI
	}
	if req.TargetMetric != MetricROI {
		return nil, fmt.Errorf("unsupported target metric %q", req.TargetMetric)
	}

	timer := metrics.NewTimer(metrics.DiscoveryDuration)
	defer timer.ObserveDuration()

	matches, err := e.repo.GetMatches(req.Filter)
	if err != nil {
		return nil, err
	}
	c := &corpus{matches: matches, filter: req.Filter}

	detectors := []Detector{
		venueDetector{},
		driftDetector{},
		teamDetector{agg: e.agg, watch: req.WatchTeams},
		seasonalDetector{},
		totalsDetector{},
	}

	findings := make([]models.PatternFinding, 0)
	for _, detector := range detectors {
		found := detector.Detect(c)
		metrics.PatternFindingsTotal.WithLabelValues(detector.Name()).Add(float64(len(found)))
		e.logger.WithFields(logrus.Fields{
			"detector": detector.Name(),
			"findings": len(found),
			"corpus":   c.size(),
		}).Debug("Detector finished")
		findings = append(findings, found...)
	}

	sortByProfitability(findings)
	metrics.DiscoveryRunsTotal.Inc()

	e.logger.WithFields(logrus.Fields{
		"corpus":   c.size(),
		"findings": len(findings),
	}).Info("Pattern discovery complete")

	return findings, nil
}
