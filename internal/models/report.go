package models

// VenueRecord is a win-draw-loss record with goal splits, from the
// perspective of one team at one venue.
type VenueRecord struct {
	Played       int `json:"played"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
}

// TeamReport summarizes one team's historical record and the flat-stake
// ROI of backing it in different roles.
type TeamReport struct {
	Team         string      `json:"team"`
	MatchCount   int         `json:"match_count"`
	Home         VenueRecord `json:"home"`
	Away         VenueRecord `json:"away"`
	FavoriteROI  float64     `json:"favorite_roi"`
	UnderdogROI  float64     `json:"underdog_roi"`
	HomeROI      float64     `json:"home_roi"`
	AwayROI      float64     `json:"away_roi"`
}

// MarketReport summarizes one market selection across a filtered corpus
// with a flat stake applied to every match.
type MarketReport struct {
	Market     Outcome `json:"market"`
	MatchCount int     `json:"match_count"`
	Hits       int     `json:"hits"`
	HitRate    float64 `json:"hit_rate"`
	MeanOdds   float64 `json:"mean_odds"`
	MinOdds    float64 `json:"min_odds"`
	MaxOdds    float64 `json:"max_odds"`
	ROI        float64 `json:"roi"`
}
