package domain

import "time"

// FeeType classifies one fee ledger entry.
type FeeType string

const (
	FeeTaker       FeeType = "taker"
	FeeMakerRebate FeeType = "maker_rebate"
	FeeFunding     FeeType = "funding"
)

// FeeRecord is one fee, rebate, or funding-cost event. Taker fees and
// funding costs are stored with negative amounts, maker rebates positive;
// consumers take absolute values where a magnitude is needed.
type FeeRecord struct {
	ID          string
	Timestamp   time.Time
	Symbol      string
	Type        FeeType
	Amount      float64
	TxSignature string
}

// FundingPayment is one perpetual funding settlement.
// Amount is signed: positive = received, negative = paid.
type FundingPayment struct {
	ID           string
	Symbol       string
	Timestamp    time.Time
	Amount       float64
	Rate         float64
	PositionSize float64
}
