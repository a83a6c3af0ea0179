package reporting

import (
	"fmt"
	"strings"

	"deriverse-trade-lab/internal/domain"
)

// RenderCSV renders per-symbol performance rows as a CSV string.
func RenderCSV(symbols []domain.SymbolPerformance) string {
	var sb strings.Builder

	sb.WriteString("symbol,trade_count,pnl,win_rate,avg_trade_size,best_trade,worst_trade\n")

	for _, s := range symbols {
		sb.WriteString(fmt.Sprintf("%s,%d,%.6f,%.6f,%.6f,%.6f,%.6f\n",
			s.Symbol,
			s.TradeCount,
			s.Pnl,
			s.WinRate,
			s.AvgTradeSize,
			s.BestTrade,
			s.WorstTrade,
		))
	}

	return sb.String()
}
