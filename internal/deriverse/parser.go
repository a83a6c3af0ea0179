package deriverse

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"deriverse-trade-lab/internal/domain"
)

// ProgramID is the canonical Deriverse program address.
const ProgramID = "DRVSpZ2YUYYKgZP8XtLhAGtT1zYSCKzeHfb4DgRnrgqD"

// programDataPrefix marks log lines carrying base64 event payloads.
const programDataPrefix = "Program data: "

// instrumentNames maps known Deriverse instrument IDs to spot pair names.
var instrumentNames = map[uint32]string{
	0: "SOL/USDC",
	1: "BTC/USDC",
	2: "ETH/USDC",
	3: "BONK/USDC",
	4: "JTO/USDC",
	5: "TRUMP/USDC",
}

// ResolveSymbol maps an instrument ID to a display symbol. Perp symbols
// replace the quote suffix: SOL/USDC becomes SOL-PERP.
func ResolveSymbol(instrID uint32, perp bool) string {
	base, ok := instrumentNames[instrID]
	if !ok {
		base = fmt.Sprintf("INSTR-%d", instrID)
	}
	if perp {
		return strings.Replace(base, "/USDC", "-PERP", 1)
	}
	return base
}

// ParsedTransaction holds the records decoded from one transaction.
type ParsedTransaction struct {
	Trades          []*domain.Trade
	FeeRecords      []*domain.FeeRecord
	FundingPayments []*domain.FundingPayment
}

// InvokesProgram reports whether the transaction log shows a Deriverse
// program invocation. Cheap pre-filter before decoding payloads.
func InvokesProgram(logs []string) bool {
	for _, l := range logs {
		if strings.Contains(l, ProgramID) && strings.Contains(l, "invoke") {
			return true
		}
	}
	return false
}

// ParseTransaction decodes all Deriverse events from one transaction's log
// messages and maps them onto trade, fee, and funding records.
//
// Fee reports and fills arrive as separate log lines of the same
// transaction. Events are processed in log order and each fill consumes the
// most recent unconsumed fee report; a fill with no pending fee report gets
// zero fees. The pairing never crosses a transaction boundary.
func ParseTransaction(signature string, blockTime time.Time, logs []string) ParsedTransaction {
	var out ParsedTransaction

	sigPrefix := signature
	if len(sigPrefix) > 16 {
		sigPrefix = sigPrefix[:16]
	}

	var pendingFees *FeesEvent

	for idx, line := range logs {
		if !strings.HasPrefix(line, programDataPrefix) {
			continue
		}
		payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(line, programDataPrefix))
		if err != nil {
			continue
		}
		event, err := Decode(payload)
		if err != nil {
			// Non-trade reports and truncated payloads are skipped.
			continue
		}

		switch e := event.(type) {
		case SpotFillEvent:
			fees, rebate := consumeFees(&pendingFees)
			out.Trades = append(out.Trades, fillTrade(
				fmt.Sprintf("%s-sf-%d", sigPrefix, e.OrderID),
				domain.MarketSpot, ResolveSymbol(0, false),
				e.Side, e.Qty, e.Price, e.Crncy,
				fees, rebate, blockTime, signature,
			))

		case PerpFillEvent:
			fees, rebate := consumeFees(&pendingFees)
			out.Trades = append(out.Trades, fillTrade(
				fmt.Sprintf("%s-pf-%d", sigPrefix, e.OrderID),
				domain.MarketPerp, ResolveSymbol(0, true),
				e.Side, e.Perps, e.Price, e.Crncy,
				fees, rebate, blockTime, signature,
			))

		case FeesEvent:
			pendingFees = &e

			feeType := domain.FeeTaker
			if e.Fees <= 0 {
				feeType = domain.FeeMakerRebate
			}
			scope := "SPOT"
			kind := "sfee"
			if e.Perp {
				scope = "PERP"
				kind = "pfee"
			}
			out.FeeRecords = append(out.FeeRecords, &domain.FeeRecord{
				ID:          fmt.Sprintf("%s-%s-%d", sigPrefix, kind, idx),
				Timestamp:   blockTime,
				Symbol:      scope,
				Type:        feeType,
				Amount:      toFloat(e.Fees),
				TxSignature: signature,
			})

		case FundingEvent:
			out.FundingPayments = append(out.FundingPayments, &domain.FundingPayment{
				ID:        fmt.Sprintf("%s-fund-%d", sigPrefix, e.InstrID),
				Symbol:    ResolveSymbol(e.InstrID, true),
				Timestamp: time.Unix(e.Time, 0).UTC(),
				Amount:    toFloat(e.Funding),
			})
		}
	}

	return out
}

// consumeFees takes the pending fee report, if any, and clears it.
func consumeFees(pending **FeesEvent) (fees, rebate float64) {
	if *pending == nil {
		return 0, 0
	}
	e := *pending
	*pending = nil

	fees = toFloat(e.Fees)
	if fees < 0 {
		fees = -fees
	}
	return fees, toFloat(e.RefPayment)
}

// fillTrade maps one fill event onto a closed trade record. Fill reports
// describe a completed round trip: entry and exit collapse onto the block
// time and fill price, with Crncy carrying the realized pnl.
func fillTrade(id string, market domain.MarketType, symbol string, side byte,
	qty, price, crncy int64, fees, rebate float64, blockTime time.Time, signature string) *domain.Trade {

	size := toFloat(qty)
	if size < 0 {
		size = -size
	}
	px := toFloat(price)
	pnl := toFloat(crncy)

	var pnlPercent float64
	if notional := px * size; notional > 0 {
		pnlPercent = pnl / notional * 100
	}

	orderSide := domain.SideLong
	if side != 0 {
		orderSide = domain.SideShort
	}

	exitTime := blockTime
	exitSig := signature

	return &domain.Trade{
		ID:              id,
		Symbol:          symbol,
		MarketType:      market,
		Side:            orderSide,
		OrderType:       domain.OrderMarket,
		Status:          domain.StatusClosed,
		EntryPrice:      px,
		ExitPrice:       &px,
		Size:            size,
		Leverage:        1,
		EntryTime:       blockTime,
		ExitTime:        &exitTime,
		Pnl:             pnl,
		PnlPercent:      pnlPercent,
		Fees:            fees,
		MakerRebate:     rebate,
		TxSignature:     signature,
		ExitTxSignature: &exitSig,
	}
}
