package analytics

import (
	"math"
	"sort"

	"deriverse-trade-lab/internal/domain"
)

// Display colors for the fee composition chart.
const (
	colorTakerFees    = "#ef4444"
	colorMakerRebates = "#22c55e"
	colorFundingCosts = "#f59e0b"
)

// FeeBreakdown sums fee records into the three fixed composition slices.
// Taker fees and funding costs are reported as magnitudes; maker rebates
// are summed as stored (positive).
func FeeBreakdown(records []*domain.FeeRecord) []domain.FeeBreakdownSlice {
	var taker, rebates, funding float64
	for _, r := range records {
		switch r.Type {
		case domain.FeeTaker:
			taker += math.Abs(r.Amount)
		case domain.FeeMakerRebate:
			rebates += r.Amount
		case domain.FeeFunding:
			funding += math.Abs(r.Amount)
		}
	}

	return []domain.FeeBreakdownSlice{
		{Name: "Taker Fees", Value: taker, Color: colorTakerFees},
		{Name: "Maker Rebates", Value: rebates, Color: colorMakerRebates},
		{Name: "Funding Costs", Value: funding, Color: colorFundingCosts},
	}
}

// CumulativeFees buckets fee records by UTC day and returns the running
// signed total in ascending date order. Sparse: days without records are
// not synthesized.
func CumulativeFees(records []*domain.FeeRecord) []domain.CumulativeFeePoint {
	daily := make(map[string]float64)
	for _, r := range records {
		daily[dayKey(r.Timestamp)] += r.Amount
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)

	result := make([]domain.CumulativeFeePoint, 0, len(days))
	var cumulative float64
	for _, day := range days {
		cumulative += daily[day]
		result = append(result, domain.CumulativeFeePoint{
			Date:       day,
			Cumulative: cumulative,
		})
	}
	return result
}
