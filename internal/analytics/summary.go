package analytics

import (
	"math"
	"time"

	"deriverse-trade-lab/internal/domain"
)

// tradingDaysPerYear annualizes daily-return ratios.
const tradingDaysPerYear = 252

// dayKey returns the UTC calendar day as YYYY-MM-DD.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// monthKey returns the UTC calendar month as YYYY-MM.
func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// exitOrEntry returns the exit time when present, entry time otherwise.
func exitOrEntry(t *domain.Trade) time.Time {
	if t.ExitTime != nil {
		return *t.ExitTime
	}
	return t.EntryTime
}

// ComputeSummary calculates the full analytics snapshot for a trade set.
// Only closed trades contribute to realized statistics; open trades
// contribute their Pnl field to UnrealizedPnl only. A win is pnl > 0; zero
// pnl counts as a loss. An empty input yields a zeroed summary, never an
// error.
func ComputeSummary(trades []*domain.Trade) domain.AnalyticsSummary {
	closed := closedTrades(trades)
	sorted := sortByEntryTime(closed)

	var s domain.AnalyticsSummary

	var grossWins, grossLosses float64
	var winCount, lossCount int
	var largestWin, largestLoss float64
	for _, t := range sorted {
		s.TotalPnl += t.Pnl
		s.TotalVolume += t.Notional()
		s.TotalFees += t.Fees
		s.TotalMakerRebate += t.MakerRebate

		if t.IsWin() {
			winCount++
			grossWins += t.Pnl
			if t.Pnl > largestWin {
				largestWin = t.Pnl
			}
		} else {
			lossCount++
			grossLosses += -t.Pnl
			if t.Pnl < largestLoss {
				largestLoss = t.Pnl
			}
		}

		switch t.Side {
		case domain.SideLong:
			s.LongCount++
			s.LongPnl += t.Pnl
		case domain.SideShort:
			s.ShortCount++
			s.ShortPnl += t.Pnl
		}
	}

	for _, t := range trades {
		if t.Status == domain.StatusOpen {
			s.UnrealizedPnl += t.Pnl
		}
	}

	s.NetFees = s.TotalFees - s.TotalMakerRebate
	s.TotalTrades = len(sorted)
	s.WinCount = winCount
	s.LossCount = lossCount
	s.LargestWin = largestWin
	s.LargestLoss = largestLoss

	if len(sorted) > 0 {
		s.WinRate = float64(winCount) / float64(len(sorted)) * 100
	}
	if winCount > 0 {
		s.AvgWin = grossWins / float64(winCount)
	}
	if lossCount > 0 {
		s.AvgLoss = -grossLosses / float64(lossCount)
	}

	s.AvgTradeDuration = computeAvgDuration(sorted)
	s.MaxDrawdown, s.MaxDrawdownPercent = computeDrawdownStats(sorted)
	s.CurrentStreak, s.BestStreak, s.WorstStreak = computeStreaks(sorted)
	s.ProfitFactor = computeProfitFactor(grossWins, grossLosses)

	if n := len(sorted); n > 0 {
		winRate := float64(winCount) / float64(n)
		lossRate := float64(lossCount) / float64(n)
		avgWinMag := grossWins / math.Max(float64(winCount), 1)
		avgLossMag := grossLosses / math.Max(float64(lossCount), 1)
		s.Expectancy = winRate*avgWinMag - lossRate*avgLossMag
	}

	s.SharpeRatio, s.SortinoRatio = computeRatios(sorted)

	return s
}

// computeAvgDuration returns the mean open-to-close duration in minutes
// across trades that have an exit time. Each duration is truncated to whole
// minutes before averaging, matching the reference implementation.
func computeAvgDuration(sorted []*domain.Trade) float64 {
	var sum float64
	var n int
	for _, t := range sorted {
		if t.ExitTime == nil {
			continue
		}
		sum += math.Trunc(t.ExitTime.Sub(t.EntryTime).Minutes())
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// computeDrawdownStats walks cumulative pnl in chronological order tracking
// the running peak. The percent figure is relative to the peak, 0 when the
// peak never goes positive.
func computeDrawdownStats(sorted []*domain.Trade) (maxDrawdown, maxDrawdownPct float64) {
	var cumulative, peak float64
	for _, t := range sorted {
		cumulative += t.Pnl
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}
	if peak > 0 {
		maxDrawdownPct = maxDrawdown / peak * 100
	}
	return maxDrawdown, maxDrawdownPct
}

// computeStreaks tracks runs of consecutive same-sign outcomes. The counter
// is signed (positive = wins) and resets to +-1 on a sign flip.
func computeStreaks(sorted []*domain.Trade) (current, best, worst int) {
	streak := 0
	for _, t := range sorted {
		if t.IsWin() {
			if streak > 0 {
				streak++
			} else {
				streak = 1
			}
		} else {
			if streak < 0 {
				streak--
			} else {
				streak = -1
			}
		}
		if streak > best {
			best = streak
		}
		if streak < worst {
			worst = streak
		}
	}
	return streak, best, worst
}

// computeProfitFactor is grossWins / grossLosses, +Inf when there are wins
// but no losses, 0 when both are zero.
func computeProfitFactor(grossWins, grossLosses float64) float64 {
	if grossLosses > 0 {
		return grossWins / grossLosses
	}
	if grossWins > 0 {
		return math.Inf(1)
	}
	return 0
}

// computeRatios derives annualized Sharpe and Sortino ratios from daily
// return buckets (pnl summed per UTC day of exit time, entry time for
// trades without one).
//
// Sharpe divides by the sample standard deviation (n-1); Sortino's downside
// deviation divides the sum of squared negative returns by n. The asymmetry
// is carried over from the reference implementation on purpose.
func computeRatios(sorted []*domain.Trade) (sharpe, sortino float64) {
	if len(sorted) < 2 {
		return 0, 0
	}

	daily := make(map[string]float64)
	for _, t := range sorted {
		daily[dayKey(exitOrEntry(t))] += t.Pnl
	}

	n := len(daily)
	if n < 2 {
		return 0, 0
	}

	var sum float64
	for _, r := range daily {
		sum += r
	}
	mean := sum / float64(n)

	var sumSq, downSq float64
	for _, r := range daily {
		diff := r - mean
		sumSq += diff * diff
		if r < 0 {
			downSq += r * r
		}
	}

	stddev := math.Sqrt(sumSq / float64(n-1))
	if stddev > 0 {
		sharpe = mean / stddev * math.Sqrt(tradingDaysPerYear)
	}

	downsideDev := math.Sqrt(downSq / float64(n))
	if downsideDev > 0 {
		sortino = mean / downsideDev * math.Sqrt(tradingDaysPerYear)
	}

	return sharpe, sortino
}
