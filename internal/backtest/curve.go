package backtest

import (
	"bytes"
	"strconv"

	"github.com/yourusername/footy-edge/internal/models"
)

// CurveToCSV exports a P&L curve as CSV, one row per settled bet.
func CurveToCSV(curve []models.PnLPoint) string {
	var buf bytes.Buffer
	buf.WriteString("bet,cumulative_pnl,bankroll\n")
	for i, point := range curve {
		buf.WriteString(strconv.Itoa(i + 1))
		buf.WriteString(",")
		buf.WriteString(strconv.FormatFloat(point.CumulativePnL, 'f', 2, 64))
		buf.WriteString(",")
		buf.WriteString(strconv.FormatFloat(point.Bankroll, 'f', 2, 64))
		buf.WriteString("\n")
	}
	return buf.String()
}

// MaxDrawdown returns the largest peak-to-trough bankroll drop on the
// curve, as a fraction of the peak.
func MaxDrawdown(curve []models.PnLPoint) float64 {
	maxDD := 0.0
	peak := InitialBankroll
	for _, point := range curve {
		if point.Bankroll > peak {
			peak = point.Bankroll
		}
		if peak == 0 {
			continue
		}
		drawdown := (peak - point.Bankroll) / peak
		if drawdown > maxDD {
			maxDD = drawdown
		}
	}
	return maxDD
}
