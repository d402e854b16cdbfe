package datasource

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/footy-edge/internal/models"
)

// marketLabels maps provider market labels to the engine's outcome
// keys. Providers are inconsistent about separators and case.
var marketLabels = map[string]models.Outcome{
	"home":      models.OutcomeHome,
	"1":         models.OutcomeHome,
	"draw":      models.OutcomeDraw,
	"x":         models.OutcomeDraw,
	"away":      models.OutcomeAway,
	"2":         models.OutcomeAway,
	"over_2_5":  models.OutcomeOver25,
	"over_2.5":  models.OutcomeOver25,
	"under_2_5": models.OutcomeUnder25,
	"under_2.5": models.OutcomeUnder25,
}

// Normalizer converts provider fixtures and odds payloads into
// validated match records. Team aliases reconcile naming differences
// between the fixtures provider and the odds provider.
type Normalizer struct {
	teamAliases map[string]string
	logger      *logrus.Logger
}

// NewNormalizer creates a normalizer with the given alias mapping.
// Alias keys are matched case-insensitively; configuration loaders
// tend to fold key case.
func NewNormalizer(teamAliases map[string]string, logger *logrus.Logger) *Normalizer {
	aliases := make(map[string]string, len(teamAliases))
	for name, canonical := range teamAliases {
		aliases[strings.ToLower(name)] = canonical
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Normalizer{teamAliases: aliases, logger: logger}
}

// NormalizeTeamName maps a provider team name to its canonical form.
func (n *Normalizer) NormalizeTeamName(name string) string {
	if canonical, ok := n.teamAliases[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// NormalizeOdds parses a decimal odds string. It returns nil for
// missing or malformed prices and for prices at or below 1.0, which
// no bookmaker quotes.
func (n *Normalizer) NormalizeOdds(oddsStr string) *decimal.Decimal {
	trimmed := strings.TrimSpace(oddsStr)
	if trimmed == "" {
		return nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return nil
	}
	if d.LessThanOrEqual(decimal.NewFromInt(1)) {
		return nil
	}
	return &d
}

// Normalize builds a validated MatchRecord from a fixture and its
// odds. A nil odds payload produces a record without prices, which the
// simulator will skip for any market it cannot price.
func (n *Normalizer) Normalize(fixture FixtureData, odds *OddsData) (*models.MatchRecord, error) {
	record := &models.MatchRecord{
		ID:         uuid.New(),
		Date:       fixture.Date,
		Season:     fixture.Season,
		HomeTeam:   n.NormalizeTeamName(fixture.HomeTeam),
		AwayTeam:   n.NormalizeTeamName(fixture.AwayTeam),
		HomeGoals:  fixture.HomeGoals,
		AwayGoals:  fixture.AwayGoals,
		TotalGoals: fixture.HomeGoals + fixture.AwayGoals,
		Result:     models.ResultFromGoals(fixture.HomeGoals, fixture.AwayGoals),
	}

	if odds != nil {
		record.OpeningOdds = n.normalizeLine(odds.Opening, fixture)
		record.ClosingOdds = n.normalizeLine(odds.Closing, fixture)
	}

	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("normalize fixture %s: %w", fixture.SourceID, err)
	}
	return record, nil
}

func (n *Normalizer) normalizeLine(quotes map[string]string, fixture FixtureData) models.OddsLine {
	line := models.OddsLine{}
	for label, priceStr := range quotes {
		outcome, ok := marketLabels[strings.ToLower(strings.TrimSpace(label))]
		if !ok {
			continue
		}
		price := n.NormalizeOdds(priceStr)
		if price == nil {
			n.logger.WithFields(logrus.Fields{
				"fixture": fixture.SourceID,
				"market":  label,
				"price":   priceStr,
			}).Debug("Dropping unusable price quote")
			continue
		}
		value, _ := price.Float64()
		line[outcome] = value
	}
	if len(line) == 0 {
		return nil
	}
	return line
}
