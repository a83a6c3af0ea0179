// Package reporting renders a trader's performance report from stored
// trades: a markdown document for reading and a CSV of per-symbol rows for
// spreadsheets.
package reporting

import (
	"time"

	"deriverse-trade-lab/internal/domain"
)

// Report is the assembled performance report.
type Report struct {
	GeneratedAt time.Time

	// Range covered by the underlying trades, zero when no trades exist.
	FirstEntry time.Time
	LastEntry  time.Time

	Summary        domain.AnalyticsSummary
	Symbols        []domain.SymbolPerformance
	MonthlyReturns []domain.MonthlyReturn
	Risk           domain.RiskScore
	Patterns       []domain.TradePattern
}
