package analytics

import (
	"fmt"
	"sort"
	"time"

	"deriverse-trade-lab/internal/domain"
)

// Pattern detection thresholds.
const (
	minStreakLength     = 3
	outsizedMultiple    = 2.5
	revengeWindowMin    = 10
	overtradingPerDay   = 10
	trendWindow         = 20
	trendMinTrades      = 2 * trendWindow
	trendShiftThreshold = 0.15
)

// DetectPatterns scans the chronologically sorted closed trades for
// behavioral patterns: win/loss streaks, outsized positions, revenge
// trades, overtrading days, and win-rate trend shifts. Each rule is
// evaluated independently over the same sorted sequence. Fewer than 3
// closed trades yields no patterns. now stamps trend patterns so repeated
// calls with the same inputs stay identical.
//
// Results are sorted descending by detection time.
func DetectPatterns(trades []*domain.Trade, now time.Time) []domain.TradePattern {
	sorted := sortByEntryTime(closedTrades(trades))
	if len(sorted) < minStreakLength {
		return nil
	}

	var patterns []domain.TradePattern
	patterns = append(patterns, detectStreaks(sorted)...)
	patterns = append(patterns, detectOutsizedPositions(sorted)...)
	patterns = append(patterns, detectRevengeTrades(sorted)...)
	patterns = append(patterns, detectOvertrading(sorted)...)
	patterns = append(patterns, detectPerformanceTrend(sorted, now)...)

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].DetectedAt.After(patterns[j].DetectedAt)
	})
	return patterns
}

// detectStreaks emits a pattern whenever a run of >= 3 same-sign outcomes
// ends, plus the trailing run if it qualifies.
func detectStreaks(sorted []*domain.Trade) []domain.TradePattern {
	var patterns []domain.TradePattern

	streak := 0
	var streakIDs []string

	emit := func(at time.Time, current bool) {
		suffix := "detected"
		if current {
			suffix = "(current)"
		}
		if streak >= minStreakLength {
			patterns = append(patterns, domain.TradePattern{
				Type:       domain.PatternWinningStreak,
				Severity:   domain.SeveritySuccess,
				Message:    fmt.Sprintf("%d-trade winning streak %s", streak, suffix),
				TradeIDs:   append([]string(nil), streakIDs...),
				DetectedAt: at,
			})
		}
		if streak <= -minStreakLength {
			patterns = append(patterns, domain.TradePattern{
				Type:       domain.PatternLosingStreak,
				Severity:   domain.SeverityDanger,
				Message:    fmt.Sprintf("%d-trade losing streak %s", -streak, suffix),
				TradeIDs:   append([]string(nil), streakIDs...),
				DetectedAt: at,
			})
		}
	}

	for i, t := range sorted {
		win := t.IsWin()
		if i == 0 || win == sorted[i-1].IsWin() {
			if win {
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
			streakIDs = append(streakIDs, t.ID)
			continue
		}

		// Sign flipped: close out the previous run.
		emit(sorted[i-1].EntryTime, false)
		if win {
			streak = 1
		} else {
			streak = -1
		}
		streakIDs = []string{t.ID}
	}

	emit(sorted[len(sorted)-1].EntryTime, true)
	return patterns
}

// detectOutsizedPositions flags trades whose notional exceeds 2.5x the mean
// notional across all closed trades, one pattern per trade.
func detectOutsizedPositions(sorted []*domain.Trade) []domain.TradePattern {
	var sum float64
	for _, t := range sorted {
		sum += t.Notional()
	}
	mean := sum / float64(len(sorted))

	var patterns []domain.TradePattern
	for _, t := range sorted {
		notional := t.Notional()
		if notional > mean*outsizedMultiple {
			patterns = append(patterns, domain.TradePattern{
				Type:     domain.PatternOutsizedPosition,
				Severity: domain.SeverityWarning,
				Message: fmt.Sprintf("Outsized position on %s: %s (avg: %s)",
					t.Symbol, FormatUsd(notional), FormatUsd(mean)),
				TradeIDs:   []string{t.ID},
				DetectedAt: t.EntryTime,
			})
		}
	}
	return patterns
}

// detectRevengeTrades flags a losing trade re-entered on the same symbol
// within 10 minutes of the previous losing trade's exit (entry when the
// exit is missing).
func detectRevengeTrades(sorted []*domain.Trade) []domain.TradePattern {
	var patterns []domain.TradePattern
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Pnl >= 0 || cur.Pnl >= 0 || prev.Symbol != cur.Symbol {
			continue
		}
		gap := int(cur.EntryTime.Sub(exitOrEntry(prev)).Minutes())
		if gap < 0 || gap > revengeWindowMin {
			continue
		}
		patterns = append(patterns, domain.TradePattern{
			Type:     domain.PatternRevengeTrade,
			Severity: domain.SeverityDanger,
			Message: fmt.Sprintf("Possible revenge trade on %s: re-entered %dm after a loss",
				cur.Symbol, gap),
			TradeIDs:   []string{prev.ID, cur.ID},
			DetectedAt: cur.EntryTime,
		})
	}
	return patterns
}

// detectOvertrading flags any UTC calendar day with more than 10 entries.
func detectOvertrading(sorted []*domain.Trade) []domain.TradePattern {
	type dayGroup struct {
		ids []string
	}
	days := make(map[string]*dayGroup)
	var order []string
	for _, t := range sorted {
		day := dayKey(t.EntryTime)
		g, ok := days[day]
		if !ok {
			g = &dayGroup{}
			days[day] = g
			order = append(order, day)
		}
		g.ids = append(g.ids, t.ID)
	}

	var patterns []domain.TradePattern
	for _, day := range order {
		g := days[day]
		if len(g.ids) <= overtradingPerDay {
			continue
		}
		at, _ := time.Parse("2006-01-02", day)
		patterns = append(patterns, domain.TradePattern{
			Type:     domain.PatternOvertrading,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf("%d trades on %s - possible overtrading",
				len(g.ids), day),
			TradeIDs:   append([]string(nil), g.ids...),
			DetectedAt: at,
		})
	}
	return patterns
}

// detectPerformanceTrend compares the win rate of the last 20 trades
// against the prior 20; a shift of more than 0.15 in either direction
// emits a trend pattern. Requires at least 40 closed trades.
func detectPerformanceTrend(sorted []*domain.Trade, now time.Time) []domain.TradePattern {
	if len(sorted) < trendMinTrades {
		return nil
	}

	recent := sorted[len(sorted)-trendWindow:]
	previous := sorted[len(sorted)-trendMinTrades : len(sorted)-trendWindow]

	winFrac := func(trades []*domain.Trade) float64 {
		wins := 0
		for _, t := range trades {
			if t.IsWin() {
				wins++
			}
		}
		return float64(wins) / float64(len(trades))
	}
	recentWR := winFrac(recent)
	prevWR := winFrac(previous)

	ids := make([]string, len(recent))
	for i, t := range recent {
		ids[i] = t.ID
	}

	var patterns []domain.TradePattern
	if recentWR > prevWR+trendShiftThreshold {
		patterns = append(patterns, domain.TradePattern{
			Type:     domain.PatternImproving,
			Severity: domain.SeveritySuccess,
			Message: fmt.Sprintf("Win rate improving: %.0f%% (last %d) vs %.0f%% (prior %d)",
				recentWR*100, trendWindow, prevWR*100, trendWindow),
			TradeIDs:   ids,
			DetectedAt: now,
		})
	}
	if recentWR < prevWR-trendShiftThreshold {
		patterns = append(patterns, domain.TradePattern{
			Type:     domain.PatternDeclining,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf("Win rate declining: %.0f%% (last %d) vs %.0f%% (prior %d)",
				recentWR*100, trendWindow, prevWR*100, trendWindow),
			TradeIDs:   ids,
			DetectedAt: now,
		})
	}
	return patterns
}
