package analytics

import (
	"sort"

	"deriverse-trade-lab/internal/domain"
)

// ComputeDailyPnl buckets closed trades by the UTC calendar day of their
// exit time. Trades without an exit time are skipped. The series is sorted
// ascending by date with a running cumulative pnl; days without trades are
// not synthesized.
func ComputeDailyPnl(trades []*domain.Trade) []domain.DailyPnl {
	type bucket struct {
		pnl    float64
		count  int
		volume float64
		fees   float64
	}

	buckets := make(map[string]*bucket)
	for _, t := range closedTrades(trades) {
		if t.ExitTime == nil {
			continue
		}
		day := dayKey(*t.ExitTime)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.pnl += t.Pnl
		b.count++
		b.volume += t.Notional()
		b.fees += t.Fees
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	result := make([]domain.DailyPnl, 0, len(days))
	var cumulative float64
	for _, day := range days {
		b := buckets[day]
		cumulative += b.pnl
		result = append(result, domain.DailyPnl{
			Date:          day,
			Pnl:           b.pnl,
			CumulativePnl: cumulative,
			TradeCount:    b.count,
			Volume:        b.volume,
			Fees:          b.fees,
		})
	}
	return result
}

// ComputeDrawdown derives the per-day drawdown series from a daily pnl
// series, applying the same peak-tracking walk as the summary drawdown.
// Drawdown is never negative and is 0 at the first data point.
func ComputeDrawdown(daily []domain.DailyPnl) []domain.DrawdownPoint {
	result := make([]domain.DrawdownPoint, 0, len(daily))
	var peak float64
	for _, d := range daily {
		if d.CumulativePnl > peak {
			peak = d.CumulativePnl
		}
		drawdown := peak - d.CumulativePnl
		pct := 0.0
		if peak > 0 {
			pct = drawdown / peak * 100
		}
		result = append(result, domain.DrawdownPoint{
			Date:            d.Date,
			Drawdown:        drawdown,
			DrawdownPercent: pct,
		})
	}
	return result
}
