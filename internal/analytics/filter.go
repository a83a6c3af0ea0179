// Package analytics computes derived performance statistics from
// materialized trade, fee, and funding records. Every function is pure:
// no I/O, no shared state, identical output for identical input. Inputs
// are never mutated; order-dependent computations sort a copy.
package analytics

import (
	"sort"

	"deriverse-trade-lab/internal/domain"
)

// FilterTrades returns the subsequence of trades matching the filter,
// preserving input order. Nil criteria match all trades; the date range is
// inclusive on entry time.
func FilterTrades(trades []*domain.Trade, f domain.TradeFilter) []*domain.Trade {
	var result []*domain.Trade
	for _, t := range trades {
		if f.Symbol != nil && t.Symbol != *f.Symbol {
			continue
		}
		if f.Side != nil && t.Side != *f.Side {
			continue
		}
		if f.MarketType != nil && t.MarketType != *f.MarketType {
			continue
		}
		if f.From != nil && t.EntryTime.Before(*f.From) {
			continue
		}
		if f.To != nil && t.EntryTime.After(*f.To) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// UniqueSymbols returns the sorted distinct symbols across all trades.
func UniqueSymbols(trades []*domain.Trade) []string {
	seen := make(map[string]struct{})
	for _, t := range trades {
		seen[t.Symbol] = struct{}{}
	}

	symbols := make([]string, 0, len(seen))
	for s := range seen {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// closedTrades filters to status == closed, preserving input order.
func closedTrades(trades []*domain.Trade) []*domain.Trade {
	var closed []*domain.Trade
	for _, t := range trades {
		if t.IsClosed() {
			closed = append(closed, t)
		}
	}
	return closed
}

// sortByEntryTime returns a copy sorted by entry time ASC, trade ID ASC.
// The ID tiebreak keeps order-dependent metrics (drawdown, streaks,
// patterns) deterministic when entry times collide.
func sortByEntryTime(trades []*domain.Trade) []*domain.Trade {
	sorted := make([]*domain.Trade, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].EntryTime.Equal(sorted[j].EntryTime) {
			return sorted[i].EntryTime.Before(sorted[j].EntryTime)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
