package domain

import "time"

// TradeFilter restricts a trade set. Any nil criterion matches all trades.
// The date range is inclusive and applies to entry time.
type TradeFilter struct {
	Symbol     *string
	Side       *OrderSide
	MarketType *MarketType
	From       *time.Time
	To         *time.Time
}

// AnalyticsSummary is a single snapshot over a (filtered) trade set.
// Every field is a pure function of the input trades.
type AnalyticsSummary struct {
	TotalPnl         float64
	UnrealizedPnl    float64
	TotalVolume      float64
	TotalFees        float64
	TotalMakerRebate float64
	NetFees          float64

	WinRate     float64 // percent
	TotalTrades int     // closed trades only
	WinCount    int
	LossCount   int

	AvgTradeDuration float64 // minutes

	LongCount  int
	ShortCount int
	LongPnl    float64
	ShortPnl   float64

	LargestWin  float64
	LargestLoss float64
	AvgWin      float64
	AvgLoss     float64 // negative or zero

	MaxDrawdown        float64
	MaxDrawdownPercent float64
	ProfitFactor       float64 // +Inf when grossLosses == 0 and grossWins > 0
	Expectancy         float64

	// Streaks are signed: positive = consecutive wins, negative = losses.
	CurrentStreak int
	BestStreak    int
	WorstStreak   int

	SharpeRatio  float64
	SortinoRatio float64
}

// DailyPnl is one calendar-day bucket of realized pnl. The series is sparse:
// days without closed trades are not synthesized.
type DailyPnl struct {
	Date          string // YYYY-MM-DD, UTC day of exit time
	Pnl           float64
	CumulativePnl float64 // prefix sum in ascending date order
	TradeCount    int
	Volume        float64
	Fees          float64
}

// DrawdownPoint is the per-day drawdown derived from the daily series.
type DrawdownPoint struct {
	Date            string
	Drawdown        float64
	DrawdownPercent float64
}

// Session is one of the three UTC time-of-day trading windows.
type Session string

const (
	SessionAsian    Session = "Asian"    // UTC 00-07
	SessionEuropean Session = "European" // UTC 08-15
	SessionUS       Session = "US"       // UTC 16-23
)

// SessionPerformance aggregates closed trades entered during one session.
type SessionPerformance struct {
	Session    Session
	Pnl        float64
	TradeCount int
	WinRate    float64
	AvgPnl     float64
}

// HourlyPerformance aggregates closed trades by UTC entry hour.
type HourlyPerformance struct {
	Hour       int
	Pnl        float64
	TradeCount int
	WinRate    float64
}

// OrderTypePerformance aggregates closed trades by order type.
type OrderTypePerformance struct {
	OrderType  OrderType
	Pnl        float64
	TradeCount int
	WinRate    float64
	AvgPnl     float64
}

// SymbolPerformance aggregates closed trades per symbol. PnlTrend holds the
// cumulative pnl after each trade in entry-time order, for sparklines.
type SymbolPerformance struct {
	Symbol       string
	Pnl          float64
	TradeCount   int
	WinRate      float64
	AvgTradeSize float64 // mean size * entry price
	BestTrade    float64
	WorstTrade   float64
	PnlTrend     []float64
}

// MonthlyReturn aggregates closed trades by calendar month of exit time.
type MonthlyReturn struct {
	Month      string // YYYY-MM
	Label      string // "Jan 2025"
	Pnl        float64
	TradeCount int
	WinRate    float64
	BestDay    float64
	WorstDay   float64
}

// RiskLabel is the discrete risk classification derived from the overall
// score.
type RiskLabel string

const (
	RiskExcellent RiskLabel = "Excellent"
	RiskGood      RiskLabel = "Good"
	RiskModerate  RiskLabel = "Moderate"
	RiskHigh      RiskLabel = "High Risk"
	RiskDangerous RiskLabel = "Dangerous"
)

// RiskScore is the weighted composite risk score with its sub-scores, all
// in [0, 100].
type RiskScore struct {
	Overall            int
	LeverageScore      int
	PositionSizing     int
	WinRateScore       int
	DrawdownScore      int
	ConsistencyScore   int
	Label              RiskLabel
	Color              string
}

// PatternType enumerates detectable behavioral patterns.
type PatternType string

const (
	PatternWinningStreak    PatternType = "winning_streak"
	PatternLosingStreak     PatternType = "losing_streak"
	PatternOutsizedPosition PatternType = "outsized_position"
	PatternRevengeTrade     PatternType = "revenge_trade"
	PatternOvertrading      PatternType = "overtrading"
	PatternImproving        PatternType = "improving_performance"
	PatternDeclining        PatternType = "declining_performance"
)

// PatternSeverity grades a detected pattern for display.
type PatternSeverity string

const (
	SeverityInfo    PatternSeverity = "info"
	SeverityWarning PatternSeverity = "warning"
	SeverityDanger  PatternSeverity = "danger"
	SeveritySuccess PatternSeverity = "success"
)

// TradePattern is one detected behavioral event.
type TradePattern struct {
	Type       PatternType
	Severity   PatternSeverity
	Message    string
	TradeIDs   []string
	DetectedAt time.Time
}

// FeeBreakdownSlice is one slice of the fee composition chart.
type FeeBreakdownSlice struct {
	Name  string
	Value float64
	Color string
}

// CumulativeFeePoint is one day of the running fee total.
type CumulativeFeePoint struct {
	Date       string
	Cumulative float64
}

// SummarySnapshot is an AnalyticsSummary captured for one wallet at one
// point in time, persisted append-only for history charting.
type SummarySnapshot struct {
	Wallet     string
	ComputedAt time.Time
	Summary    AnalyticsSummary
}
