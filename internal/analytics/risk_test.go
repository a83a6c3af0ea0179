package analytics

import (
	"math"
	"testing"

	"deriverse-trade-lab/internal/domain"
)

func TestComputeRiskScore_NoClosedTrades(t *testing.T) {
	score := ComputeRiskScore(nil, domain.AnalyticsSummary{})

	if score.Overall != 50 || score.Label != domain.RiskModerate {
		t.Errorf("degenerate case must be 50/Moderate, got %d/%s",
			score.Overall, score.Label)
	}
	for name, sub := range map[string]int{
		"leverage":    score.LeverageScore,
		"sizing":      score.PositionSizing,
		"winRate":     score.WinRateScore,
		"drawdown":    score.DrawdownScore,
		"consistency": score.ConsistencyScore,
	} {
		if sub != 50 {
			t.Errorf("sub-score %s: got %d, want 50", name, sub)
		}
	}
}

func TestComputeRiskScore_SubScoresClamped(t *testing.T) {
	// 20x leverage pushes the raw leverage score below 0; a huge drawdown
	// percent pushes the drawdown score below 0. Both must clamp.
	trades := tradesFromPnls(10, 10, 10)
	for _, tr := range trades {
		tr.Leverage = 20
	}
	summary := ComputeSummary(trades)
	summary.MaxDrawdownPercent = 90

	score := ComputeRiskScore(trades, summary)

	if score.LeverageScore != 0 {
		t.Errorf("leverage score must clamp to 0, got %d", score.LeverageScore)
	}
	if score.DrawdownScore != 0 {
		t.Errorf("drawdown score must clamp to 0, got %d", score.DrawdownScore)
	}
	for _, sub := range []int{
		score.LeverageScore, score.PositionSizing, score.WinRateScore,
		score.DrawdownScore, score.ConsistencyScore,
	} {
		if sub < 0 || sub > 100 {
			t.Errorf("sub-score out of [0,100]: %d", sub)
		}
	}
}

func TestComputeRiskScore_WinRateCap(t *testing.T) {
	trades := tradesFromPnls(10, 10, 10)
	summary := ComputeSummary(trades) // winRate 100

	score := ComputeRiskScore(trades, summary)

	// 100 * 1.2 caps at 100.
	if score.WinRateScore != 100 {
		t.Errorf("win rate score must cap at 100, got %d", score.WinRateScore)
	}
}

func TestComputeRiskScore_WeightedOverall(t *testing.T) {
	// Identical 1x trades, equal sizes, identical daily pnl: leverage 100,
	// sizing 100 (cv 0), consistency 100 (cv 0), winRate 100 (capped),
	// drawdown 100 (no drawdown). Overall = 100.
	trades := tradesFromPnls(10, 10, 10)
	summary := ComputeSummary(trades)

	score := ComputeRiskScore(trades, summary)

	if score.Overall != 100 {
		t.Errorf("expected overall 100, got %d", score.Overall)
	}
	if score.Label != domain.RiskExcellent {
		t.Errorf("expected Excellent, got %s", score.Label)
	}
}

func TestComputeRiskScore_OverallMatchesWeights(t *testing.T) {
	trades := tradesFromPnls(100, -50, 25, -10, 40)
	for i, tr := range trades {
		tr.Leverage = 2 + i
		tr.Size = float64(1 + i)
	}
	summary := ComputeSummary(trades)

	score := ComputeRiskScore(trades, summary)

	want := int(math.Round(
		float64(score.LeverageScore)*0.20 +
			float64(score.PositionSizing)*0.15 +
			float64(score.WinRateScore)*0.25 +
			float64(score.DrawdownScore)*0.25 +
			float64(score.ConsistencyScore)*0.15))

	// Sub-scores are rounded for display after the overall is computed, so
	// recombining them can drift by at most a point.
	if diff := score.Overall - want; diff < -1 || diff > 1 {
		t.Errorf("overall %d not within 1 of weighted sum %d", score.Overall, want)
	}
}

func TestRiskLabelThresholds(t *testing.T) {
	cases := []struct {
		overall int
		want    domain.RiskLabel
	}{
		{100, domain.RiskExcellent},
		{80, domain.RiskExcellent},
		{79, domain.RiskGood},
		{65, domain.RiskGood},
		{64, domain.RiskModerate},
		{45, domain.RiskModerate},
		{44, domain.RiskHigh},
		{25, domain.RiskHigh},
		{24, domain.RiskDangerous},
		{0, domain.RiskDangerous},
	}
	for _, c := range cases {
		got, _ := riskLabel(c.overall)
		if got != c.want {
			t.Errorf("riskLabel(%d) = %s, want %s", c.overall, got, c.want)
		}
	}
}
