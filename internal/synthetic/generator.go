package synthetic

import (
	"fmt"
	"sort"
	"time"

	"deriverse-trade-lab/internal/domain"
)

// symbolSpec is one tradable instrument with its reference price.
type symbolSpec struct {
	name      string
	market    domain.MarketType
	basePrice float64
}

var symbolTable = []symbolSpec{
	{"SOL/USDC", domain.MarketSpot, 178},
	{"SOL-PERP", domain.MarketPerp, 178},
	{"WETH/USDC", domain.MarketSpot, 3200},
	{"WETH-PERP", domain.MarketPerp, 3200},
	{"WBTC/USDC", domain.MarketSpot, 97000},
	{"WBTC-PERP", domain.MarketPerp, 97000},
	{"TRUMP/USDC", domain.MarketSpot, 18},
}

var orderTypes = []domain.OrderType{
	domain.OrderLimit,
	domain.OrderMarket,
	domain.OrderIOC,
}

// base58Alphabet is the character set for synthetic transaction signatures.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

func randomID(s *Source) string {
	return fmt.Sprintf("%014x", int64(s.Float()*float64(0xffffffffffffff)))
}

func randomTxSig(s *Source) string {
	sig := make([]byte, 88)
	for i := range sig {
		sig[i] = base58Alphabet[int(s.Float()*float64(len(base58Alphabet)))]
	}
	return string(sig)
}

// GenerateTrades produces count trades with entries spread over the 90 days
// before now. Roughly 57% of closed trades win; perps run leverage 2-10;
// notional sizes fall in $50-$2050. A trade whose exit would land after now
// stays open with zero realized pnl. Trades are returned newest-first.
func GenerateTrades(count int, seed int64, now time.Time) []*domain.Trade {
	s := NewSource(seed)
	trades := make([]*domain.Trade, 0, count)

	nowMs := now.UnixMilli()
	windowStart := nowMs - 90*24*60*60*1000

	for i := 0; i < count; i++ {
		spec := symbolTable[int(s.Float()*float64(len(symbolTable)))]
		side := domain.SideShort
		if s.Float() > 0.48 {
			side = domain.SideLong
		}
		orderType := orderTypes[int(s.Float()*float64(len(orderTypes)))]
		isPerp := spec.market == domain.MarketPerp
		leverage := 1
		if isPerp {
			leverage = int(s.Float()*9) + 2
		}

		priceVariation := (s.Float() - 0.5) * 0.15
		entryPrice := spec.basePrice * (1 + priceVariation)

		pnlDirection := -1.0
		if s.Float() > 0.43 {
			pnlDirection = 1.0
		}
		pnlMagnitude := s.Float() * 0.08
		exitMult := 1 + pnlDirection*pnlMagnitude
		if side == domain.SideShort {
			exitMult = 1 - pnlDirection*pnlMagnitude
		}
		exitPrice := entryPrice * exitMult

		sizeUSD := 50 + s.Float()*2000
		size := sizeUSD / entryPrice

		entryMs := windowStart + int64(s.Float()*float64(nowMs-windowStart))
		durationMs := 15*60*1000 + int64(s.Float()*float64(7*24*60*60*1000))
		entryTime := time.UnixMilli(entryMs).UTC()
		exitTime := time.UnixMilli(entryMs + durationMs).UTC()

		rawPnl := (exitPrice - entryPrice) * size * float64(leverage)
		if side == domain.SideShort {
			rawPnl = (entryPrice - exitPrice) * size * float64(leverage)
		}

		fees := sizeUSD * float64(leverage) * 0.0005
		makerRebate := 0.0
		if orderType == domain.OrderLimit {
			makerRebate = fees * 0.125
		}
		fundingPaid := 0.0
		fundingReceived := 0.0
		if isPerp {
			fundingPaid = sizeUSD * float64(leverage) * 0.0001 * (s.Float() * 3)
			fundingReceived = sizeUSD * float64(leverage) * 0.00005 * (s.Float() * 2)
		}

		pnl := rawPnl - fees + makerRebate - fundingPaid + fundingReceived
		pnlPercent := pnl / sizeUSD * 100

		closed := exitTime.Before(now)

		trade := &domain.Trade{
			ID:              randomID(s),
			Symbol:          spec.name,
			MarketType:      spec.market,
			Side:            side,
			OrderType:       orderType,
			Status:          domain.StatusOpen,
			EntryPrice:      entryPrice,
			Size:            size,
			Leverage:        leverage,
			EntryTime:       entryTime,
			Fees:            fees,
			MakerRebate:     makerRebate,
			FundingPaid:     fundingPaid,
			FundingReceived: fundingReceived,
			TxSignature:     randomTxSig(s),
		}
		if closed {
			exitSig := randomTxSig(s)
			trade.Status = domain.StatusClosed
			trade.ExitPrice = &exitPrice
			trade.ExitTime = &exitTime
			trade.Pnl = pnl
			trade.PnlPercent = pnlPercent
			trade.ExitTxSignature = &exitSig
		}
		trades = append(trades, trade)
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].EntryTime.After(trades[j].EntryTime)
	})
	return trades
}

// GenerateFundingPayments produces count funding settlements on the perp
// symbols over the 30 days before now, newest-first.
func GenerateFundingPayments(count int, seed int64, now time.Time) []*domain.FundingPayment {
	s := NewSource(seed)
	perpSymbols := []string{"SOL-PERP", "WETH-PERP", "WBTC-PERP"}

	payments := make([]*domain.FundingPayment, 0, count)
	for i := 0; i < count; i++ {
		symbol := perpSymbols[int(s.Float()*float64(len(perpSymbols)))]
		rate := (s.Float() - 0.5) * 0.001
		positionSize := 500 + s.Float()*5000
		ts := now.Add(-time.Duration(s.Float() * 30 * 24 * float64(time.Hour))).UTC()

		payments = append(payments, &domain.FundingPayment{
			ID:           randomID(s),
			Symbol:       symbol,
			Timestamp:    ts,
			Amount:       rate * positionSize,
			Rate:         rate,
			PositionSize: positionSize,
		})
	}

	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Timestamp.After(payments[j].Timestamp)
	})
	return payments
}

// GenerateFeeRecords derives the fee ledger from a trade set: one taker
// entry per fee paid (negative amount), one rebate entry per maker rebate,
// and one net funding entry per perp trade that paid funding. Newest-first.
func GenerateFeeRecords(trades []*domain.Trade) []*domain.FeeRecord {
	var records []*domain.FeeRecord

	for _, t := range trades {
		if t.Fees > 0 {
			records = append(records, &domain.FeeRecord{
				ID:          "fee-" + t.ID,
				Timestamp:   t.EntryTime,
				Symbol:      t.Symbol,
				Type:        domain.FeeTaker,
				Amount:      -t.Fees,
				TxSignature: t.TxSignature,
			})
		}
		if t.MakerRebate > 0 {
			records = append(records, &domain.FeeRecord{
				ID:          "rebate-" + t.ID,
				Timestamp:   t.EntryTime,
				Symbol:      t.Symbol,
				Type:        domain.FeeMakerRebate,
				Amount:      t.MakerRebate,
				TxSignature: t.TxSignature,
			})
		}
		if t.FundingPaid > 0 {
			records = append(records, &domain.FeeRecord{
				ID:          "funding-" + t.ID,
				Timestamp:   t.EntryTime,
				Symbol:      t.Symbol,
				Type:        domain.FeeFunding,
				Amount:      -(t.FundingPaid - t.FundingReceived),
				TxSignature: t.TxSignature,
			})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records
}
