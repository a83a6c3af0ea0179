package analytics

import (
	"math"

	"deriverse-trade-lab/internal/domain"
)

// Sub-score weights of the composite risk score.
const (
	weightLeverage    = 0.20
	weightSizing      = 0.15
	weightWinRate     = 0.25
	weightDrawdown    = 0.25
	weightConsistency = 0.15
)

// Risk label display colors.
const (
	colorExcellent = "#22c55e"
	colorGood      = "#84cc16"
	colorModerate  = "#f59e0b"
	colorHigh      = "#f97316"
	colorDangerous = "#ef4444"
)

// ComputeRiskScore combines the summary and trade-level dispersion measures
// into a weighted composite score with five sub-scores, each clamped to
// [0, 100]. With no closed trades every sub-score defaults to 50
// (Moderate).
func ComputeRiskScore(trades []*domain.Trade, summary domain.AnalyticsSummary) domain.RiskScore {
	closed := closedTrades(trades)
	if len(closed) == 0 {
		return domain.RiskScore{
			Overall:          50,
			LeverageScore:    50,
			PositionSizing:   50,
			WinRateScore:     50,
			DrawdownScore:    50,
			ConsistencyScore: 50,
			Label:            domain.RiskModerate,
			Color:            colorModerate,
		}
	}

	// Leverage: 100 at 1x average, 0 at 10x and beyond.
	var levSum float64
	for _, t := range closed {
		levSum += float64(t.Leverage)
	}
	avgLeverage := levSum / float64(len(closed))
	leverageScore := clampScore((10 - avgLeverage) / 9 * 100)

	// Position sizing: low coefficient of variation of size*entryPrice
	// scores higher.
	sizes := make([]float64, len(closed))
	for i, t := range closed {
		sizes[i] = t.Size * t.EntryPrice
	}
	mean, stddev := populationStats(sizes)
	cv := 0.0
	if mean > 0 {
		cv = stddev / mean
	}
	sizingScore := clampScore((1 - cv) * 100)

	winRateScore := math.Min(100, summary.WinRate*1.2)
	drawdownScore := clampScore(100 - summary.MaxDrawdownPercent*2)

	// Consistency: dispersion of the daily pnl series relative to its mean.
	// A zero mean defaults the CV to its worst-case value.
	daily := ComputeDailyPnl(closed)
	pnls := make([]float64, len(daily))
	for i, d := range daily {
		pnls[i] = d.Pnl
	}
	dailyMean, dailyStddev := populationStats(pnls)
	dailyCV := 5.0
	if math.Abs(dailyMean) > 0 {
		dailyCV = dailyStddev / math.Abs(dailyMean)
	}
	consistencyScore := clampScore((1 - math.Min(dailyCV/5, 1)) * 100)

	overall := int(math.Round(
		leverageScore*weightLeverage +
			sizingScore*weightSizing +
			winRateScore*weightWinRate +
			drawdownScore*weightDrawdown +
			consistencyScore*weightConsistency))

	label, color := riskLabel(overall)

	return domain.RiskScore{
		Overall:          overall,
		LeverageScore:    int(math.Round(leverageScore)),
		PositionSizing:   int(math.Round(sizingScore)),
		WinRateScore:     int(math.Round(winRateScore)),
		DrawdownScore:    int(math.Round(drawdownScore)),
		ConsistencyScore: int(math.Round(consistencyScore)),
		Label:            label,
		Color:            color,
	}
}

// riskLabel maps the overall score onto the fixed label/color thresholds.
func riskLabel(overall int) (domain.RiskLabel, string) {
	switch {
	case overall >= 80:
		return domain.RiskExcellent, colorExcellent
	case overall >= 65:
		return domain.RiskGood, colorGood
	case overall >= 45:
		return domain.RiskModerate, colorModerate
	case overall >= 25:
		return domain.RiskHigh, colorHigh
	default:
		return domain.RiskDangerous, colorDangerous
	}
}

// clampScore clamps to [0, 100].
func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// populationStats returns mean and population standard deviation
// (n denominator). Both sub-score CVs use population dispersion.
func populationStats(values []float64) (mean, stddev float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	var sumSq float64
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return mean, math.Sqrt(sumSq / float64(n))
}
