package analytics

import (
	"fmt"
	"time"

	"deriverse-trade-lab/internal/domain"
)

// testBase is a fixed Monday 10:00 UTC anchor for deterministic buckets.
var testBase = time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)

// closedTrade builds a minimal closed trade. Entry time advances by
// daysOffset days from testBase; exit is one hour after entry.
func closedTrade(id string, pnl float64, daysOffset int) *domain.Trade {
	entry := testBase.AddDate(0, 0, daysOffset)
	exit := entry.Add(time.Hour)
	price := 100.0
	return &domain.Trade{
		ID:         id,
		Symbol:     "SOL-PERP",
		MarketType: domain.MarketPerp,
		Side:       domain.SideLong,
		OrderType:  domain.OrderMarket,
		Status:     domain.StatusClosed,
		EntryPrice: price,
		ExitPrice:  &price,
		Size:       1,
		Leverage:   1,
		EntryTime:  entry,
		ExitTime:   &exit,
		Pnl:        pnl,
	}
}

// tradesFromPnls builds one closed trade per pnl value, one per day, in
// chronological order.
func tradesFromPnls(pnls ...float64) []*domain.Trade {
	trades := make([]*domain.Trade, len(pnls))
	for i, pnl := range pnls {
		trades[i] = closedTrade(fmt.Sprintf("t%d", i+1), pnl, i)
	}
	return trades
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	diff := a - b
	return diff < eps && diff > -eps
}
