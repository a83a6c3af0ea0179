package reporting

import (
	"fmt"
	"strings"
	"time"

	"deriverse-trade-lab/internal/analytics"
)

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	sb.WriteString("# Trading Performance Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	if !r.FirstEntry.IsZero() {
		sb.WriteString(fmt.Sprintf("Trades from %s to %s\n\n",
			r.FirstEntry.Format("2006-01-02"), r.LastEntry.Format("2006-01-02")))
	}

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	s := r.Summary
	sb.WriteString(fmt.Sprintf("| Total PnL | %s |\n", analytics.FormatUsd(s.TotalPnl)))
	sb.WriteString(fmt.Sprintf("| Closed Trades | %d |\n", s.TotalTrades))
	sb.WriteString(fmt.Sprintf("| Win Rate | %.2f%% (%dW / %dL) |\n", s.WinRate, s.WinCount, s.LossCount))
	sb.WriteString(fmt.Sprintf("| Total Volume | %s |\n", analytics.FormatUsd(s.TotalVolume)))
	sb.WriteString(fmt.Sprintf("| Net Fees | %s |\n", analytics.FormatUsd(s.NetFees)))
	sb.WriteString(fmt.Sprintf("| Largest Win / Loss | %s / %s |\n",
		analytics.FormatUsd(s.LargestWin), analytics.FormatUsd(s.LargestLoss)))
	sb.WriteString(fmt.Sprintf("| Avg Win / Loss | %s / %s |\n",
		analytics.FormatUsd(s.AvgWin), analytics.FormatUsd(s.AvgLoss)))
	sb.WriteString(fmt.Sprintf("| Max Drawdown | %s (%.2f%%) |\n",
		analytics.FormatUsd(s.MaxDrawdown), s.MaxDrawdownPercent))
	sb.WriteString(fmt.Sprintf("| Profit Factor | %.2f |\n", s.ProfitFactor))
	sb.WriteString(fmt.Sprintf("| Expectancy | %s |\n", analytics.FormatUsd(s.Expectancy)))
	sb.WriteString(fmt.Sprintf("| Best / Worst Streak | %d / %d |\n", s.BestStreak, s.WorstStreak))
	sb.WriteString(fmt.Sprintf("| Sharpe / Sortino | %.2f / %.2f |\n", s.SharpeRatio, s.SortinoRatio))
	sb.WriteString(fmt.Sprintf("| Avg Trade Duration | %s |\n", analytics.FormatDuration(s.AvgTradeDuration)))
	sb.WriteString("\n")

	// Per-symbol performance
	sb.WriteString("## Symbol Performance\n\n")
	if len(r.Symbols) > 0 {
		sb.WriteString("| Symbol | Trades | PnL | Win Rate | Avg Size | Best | Worst |\n")
		sb.WriteString("|--------|--------|-----|----------|----------|------|-------|\n")
		for _, sym := range r.Symbols {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s | %.2f%% | %s | %s | %s |\n",
				sym.Symbol, sym.TradeCount,
				analytics.FormatUsd(sym.Pnl), sym.WinRate,
				analytics.FormatUsd(sym.AvgTradeSize),
				analytics.FormatUsd(sym.BestTrade), analytics.FormatUsd(sym.WorstTrade)))
		}
	} else {
		sb.WriteString("No closed trades.\n")
	}
	sb.WriteString("\n")

	// Monthly returns
	sb.WriteString("## Monthly Returns\n\n")
	if len(r.MonthlyReturns) > 0 {
		sb.WriteString("| Month | Trades | PnL | Win Rate | Best Day | Worst Day |\n")
		sb.WriteString("|-------|--------|-----|----------|----------|-----------|\n")
		for _, m := range r.MonthlyReturns {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s | %.2f%% | %s | %s |\n",
				m.Label, m.TradeCount,
				analytics.FormatUsd(m.Pnl), m.WinRate,
				analytics.FormatUsd(m.BestDay), analytics.FormatUsd(m.WorstDay)))
		}
	} else {
		sb.WriteString("No monthly data.\n")
	}
	sb.WriteString("\n")

	// Risk score
	sb.WriteString("## Risk Score\n\n")
	sb.WriteString(fmt.Sprintf("**%d / 100 - %s**\n\n", r.Risk.Overall, r.Risk.Label))
	sb.WriteString("| Component | Score |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Leverage | %d |\n", r.Risk.LeverageScore))
	sb.WriteString(fmt.Sprintf("| Position Sizing | %d |\n", r.Risk.PositionSizing))
	sb.WriteString(fmt.Sprintf("| Win Rate | %d |\n", r.Risk.WinRateScore))
	sb.WriteString(fmt.Sprintf("| Drawdown | %d |\n", r.Risk.DrawdownScore))
	sb.WriteString(fmt.Sprintf("| Consistency | %d |\n", r.Risk.ConsistencyScore))
	sb.WriteString("\n")

	// Detected patterns
	sb.WriteString("## Detected Patterns\n\n")
	if len(r.Patterns) > 0 {
		for _, p := range r.Patterns {
			sb.WriteString(fmt.Sprintf("- [%s] %s (%s)\n", p.Severity, p.Message,
				p.DetectedAt.Format("2006-01-02")))
		}
	} else {
		sb.WriteString("No behavioral patterns detected.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
