package analytics

import (
	"sort"
	"time"

	"deriverse-trade-lab/internal/domain"
)

// ComputeSymbolPerformance aggregates closed trades per symbol, sorted
// descending by total pnl. PnlTrend is the cumulative pnl after each trade
// in entry-time order.
func ComputeSymbolPerformance(trades []*domain.Trade) []domain.SymbolPerformance {
	bySymbol := make(map[string][]*domain.Trade)
	for _, t := range closedTrades(trades) {
		bySymbol[t.Symbol] = append(bySymbol[t.Symbol], t)
	}

	result := make([]domain.SymbolPerformance, 0, len(bySymbol))
	for symbol, symTrades := range bySymbol {
		sorted := sortByEntryTime(symTrades)

		var pnl, sizeSum, cumulative float64
		var wins int
		best := sorted[0].Pnl
		worst := sorted[0].Pnl
		trend := make([]float64, 0, len(sorted))

		for _, t := range sorted {
			pnl += t.Pnl
			sizeSum += t.Size * t.EntryPrice
			if t.IsWin() {
				wins++
			}
			if t.Pnl > best {
				best = t.Pnl
			}
			if t.Pnl < worst {
				worst = t.Pnl
			}
			cumulative += t.Pnl
			trend = append(trend, cumulative)
		}

		result = append(result, domain.SymbolPerformance{
			Symbol:       symbol,
			Pnl:          pnl,
			TradeCount:   len(sorted),
			WinRate:      float64(wins) / float64(len(sorted)) * 100,
			AvgTradeSize: sizeSum / float64(len(sorted)),
			BestTrade:    best,
			WorstTrade:   worst,
			PnlTrend:     trend,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Pnl != result[j].Pnl {
			return result[i].Pnl > result[j].Pnl
		}
		return result[i].Symbol < result[j].Symbol
	})
	return result
}

// ComputeMonthlyReturns buckets closed trades by the UTC calendar month of
// their exit time, sorted ascending by month. Best/worst day are the
// extreme single-day pnl sums within each month.
func ComputeMonthlyReturns(trades []*domain.Trade) []domain.MonthlyReturn {
	type bucket struct {
		pnl   float64
		count int
		wins  int
		days  map[string]float64
	}

	buckets := make(map[string]*bucket)
	for _, t := range closedTrades(trades) {
		if t.ExitTime == nil {
			continue
		}
		month := monthKey(*t.ExitTime)
		b, ok := buckets[month]
		if !ok {
			b = &bucket{days: make(map[string]float64)}
			buckets[month] = b
		}
		b.pnl += t.Pnl
		b.count++
		if t.IsWin() {
			b.wins++
		}
		b.days[dayKey(*t.ExitTime)] += t.Pnl
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	result := make([]domain.MonthlyReturn, 0, len(months))
	for _, month := range months {
		b := buckets[month]

		first := true
		var bestDay, worstDay float64
		for _, dayPnl := range b.days {
			if first {
				bestDay, worstDay = dayPnl, dayPnl
				first = false
				continue
			}
			if dayPnl > bestDay {
				bestDay = dayPnl
			}
			if dayPnl < worstDay {
				worstDay = dayPnl
			}
		}

		result = append(result, domain.MonthlyReturn{
			Month:      month,
			Label:      monthLabel(month),
			Pnl:        b.pnl,
			TradeCount: b.count,
			WinRate:    float64(b.wins) / float64(b.count) * 100,
			BestDay:    bestDay,
			WorstDay:   worstDay,
		})
	}
	return result
}

// monthLabel renders "2025-01" as "Jan 2025". Malformed keys are returned
// unchanged.
func monthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("Jan 2006")
}
