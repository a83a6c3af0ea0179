package domain

import "time"

// MarketType distinguishes spot fills from perpetual fills.
type MarketType string

// OrderSide is the direction of a position.
type OrderSide string

// OrderType is the order kind that produced the fill.
type OrderType string

// TradeStatus marks whether a position has been closed.
type TradeStatus string

const (
	MarketSpot MarketType = "spot"
	MarketPerp MarketType = "perp"

	SideLong  OrderSide = "long"
	SideShort OrderSide = "short"

	OrderLimit  OrderType = "limit"
	OrderMarket OrderType = "market"
	OrderIOC    OrderType = "ioc"

	StatusOpen   TradeStatus = "open"
	StatusClosed TradeStatus = "closed"
)

// Trade is one closed or still-open position event. Records are created by
// ingestion (on-chain decode or synthetic generator) and are immutable
// afterwards; the analytics layer only reads them.
//
// Invariant: status == closed implies ExitPrice != nil and ExitTime != nil.
// Open trades carry Pnl == 0 and PnlPercent == 0 unless the caller populates
// live mark-to-market values externally.
type Trade struct {
	ID         string
	Symbol     string
	MarketType MarketType
	Side       OrderSide
	OrderType  OrderType
	Status     TradeStatus

	EntryPrice float64
	ExitPrice  *float64 // nil while open
	Size       float64  // base asset units
	Leverage   int      // 1 for spot

	EntryTime time.Time
	ExitTime  *time.Time // nil while open

	Pnl             float64 // realized, quote currency
	PnlPercent      float64 // pnl / notional * 100
	Fees            float64
	MakerRebate     float64
	FundingPaid     float64
	FundingReceived float64

	TxSignature     string
	ExitTxSignature *string
}

// Notional is the economic exposure of the position:
// size * entry price * leverage.
func (t *Trade) Notional() float64 {
	return t.Size * t.EntryPrice * float64(t.Leverage)
}

// IsClosed reports whether the trade has been closed.
func (t *Trade) IsClosed() bool {
	return t.Status == StatusClosed
}

// IsWin reports whether the trade counts as a win. Zero pnl counts as a
// loss; this boundary affects win rate, streaks, and pattern detection
// simultaneously and must not change.
func (t *Trade) IsWin() bool {
	return t.Pnl > 0
}
