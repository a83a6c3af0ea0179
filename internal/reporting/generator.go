package reporting

import (
	"context"
	"time"

	"deriverse-trade-lab/internal/analytics"
	"deriverse-trade-lab/internal/storage"
)

// Generator produces reports from stored trades.
type Generator struct {
	tradeStore storage.TradeStore
	now        func() time.Time // injectable clock for deterministic output
}

// NewGenerator creates a report generator.
func NewGenerator(tradeStore storage.TradeStore) *Generator {
	return &Generator{
		tradeStore: tradeStore,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate loads all trades and assembles the report sections.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	trades, err := g.tradeStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := g.now()
	summary := analytics.ComputeSummary(trades)

	report := &Report{
		GeneratedAt:    now,
		Summary:        summary,
		Symbols:        analytics.ComputeSymbolPerformance(trades),
		MonthlyReturns: analytics.ComputeMonthlyReturns(trades),
		Risk:           analytics.ComputeRiskScore(trades, summary),
		Patterns:       analytics.DetectPatterns(trades, now),
	}

	if len(trades) > 0 {
		// GetAll returns entry-time ascending order.
		report.FirstEntry = trades[0].EntryTime
		report.LastEntry = trades[len(trades)-1].EntryTime
	}

	return report, nil
}
