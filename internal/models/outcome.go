package models

// Outcome identifies a priced market selection on a fixture.
type Outcome string

const (
	OutcomeHome    Outcome = "HOME"
	OutcomeDraw    Outcome = "DRAW"
	OutcomeAway    Outcome = "AWAY"
	OutcomeOver25  Outcome = "OVER_2_5"
	OutcomeUnder25 Outcome = "UNDER_2_5"
)

// AllOutcomes lists every supported market selection.
var AllOutcomes = []Outcome{OutcomeHome, OutcomeDraw, OutcomeAway, OutcomeOver25, OutcomeUnder25}

// Valid reports whether the outcome is a member of the supported set.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeHome, OutcomeDraw, OutcomeAway, OutcomeOver25, OutcomeUnder25:
		return true
	default:
		return false
	}
}

// Moneyline reports whether the outcome settles on the match result
// rather than the goal total.
func (o Outcome) Moneyline() bool {
	switch o {
	case OutcomeHome, OutcomeDraw, OutcomeAway:
		return true
	default:
		return false
	}
}

// Hits reports whether the outcome won on the given match.
func (o Outcome) Hits(m *MatchRecord) bool {
	switch o {
	case OutcomeHome:
		return m.Result == ResultHomeWin
	case OutcomeDraw:
		return m.Result == ResultDraw
	case OutcomeAway:
		return m.Result == ResultAwayWin
	case OutcomeOver25:
		return float64(m.TotalGoals) > 2.5
	case OutcomeUnder25:
		return float64(m.TotalGoals) < 2.5
	default:
		return false
	}
}

// Result represents the full-time result of a match.
type Result string

const (
	ResultHomeWin Result = "HOME_WIN"
	ResultDraw    Result = "DRAW"
	ResultAwayWin Result = "AWAY_WIN"
)

// Valid reports whether the result is a member of the supported set.
func (r Result) Valid() bool {
	switch r {
	case ResultHomeWin, ResultDraw, ResultAwayWin:
		return true
	default:
		return false
	}
}

// OddsMovement constrains the direction odds must have moved between
// the opening and closing line for a bet to qualify.
type OddsMovement string

const (
	MovementUp   OddsMovement = "UP"
	MovementDown OddsMovement = "DOWN"
	MovementAny  OddsMovement = "ANY"
)

// Valid reports whether the movement is a member of the supported set.
// The empty value is treated as ANY.
func (m OddsMovement) Valid() bool {
	switch m {
	case MovementUp, MovementDown, MovementAny, "":
		return true
	default:
		return false
	}
}
