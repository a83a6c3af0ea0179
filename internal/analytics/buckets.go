package analytics

import (
	"deriverse-trade-lab/internal/domain"
)

// sessionOf maps a UTC hour to its trading session.
func sessionOf(hour int) domain.Session {
	switch {
	case hour < 8:
		return domain.SessionAsian
	case hour < 16:
		return domain.SessionEuropean
	default:
		return domain.SessionUS
	}
}

// sessionOrder fixes the output cardinality and ordering.
var sessionOrder = []domain.Session{
	domain.SessionAsian,
	domain.SessionEuropean,
	domain.SessionUS,
}

// orderTypeOrder fixes the output cardinality and ordering.
var orderTypeOrder = []domain.OrderType{
	domain.OrderLimit,
	domain.OrderMarket,
	domain.OrderIOC,
}

type winBucket struct {
	pnl   float64
	count int
	wins  int
}

func (b winBucket) winRate() float64 {
	if b.count == 0 {
		return 0
	}
	return float64(b.wins) / float64(b.count) * 100
}

func (b winBucket) avgPnl() float64 {
	if b.count == 0 {
		return 0
	}
	return b.pnl / float64(b.count)
}

// ComputeSessionPerformance aggregates closed trades by the UTC session of
// their entry time. Always returns exactly 3 entries, zeroed when empty.
func ComputeSessionPerformance(trades []*domain.Trade) []domain.SessionPerformance {
	buckets := make(map[domain.Session]*winBucket, len(sessionOrder))
	for _, s := range sessionOrder {
		buckets[s] = &winBucket{}
	}

	for _, t := range closedTrades(trades) {
		b := buckets[sessionOf(t.EntryTime.UTC().Hour())]
		b.pnl += t.Pnl
		b.count++
		if t.IsWin() {
			b.wins++
		}
	}

	result := make([]domain.SessionPerformance, 0, len(sessionOrder))
	for _, s := range sessionOrder {
		b := buckets[s]
		result = append(result, domain.SessionPerformance{
			Session:    s,
			Pnl:        b.pnl,
			TradeCount: b.count,
			WinRate:    b.winRate(),
			AvgPnl:     b.avgPnl(),
		})
	}
	return result
}

// ComputeHourlyPerformance aggregates closed trades by the UTC hour of their
// entry time. Always returns exactly 24 entries, zeroed when empty.
func ComputeHourlyPerformance(trades []*domain.Trade) []domain.HourlyPerformance {
	var buckets [24]winBucket

	for _, t := range closedTrades(trades) {
		h := t.EntryTime.UTC().Hour()
		buckets[h].pnl += t.Pnl
		buckets[h].count++
		if t.IsWin() {
			buckets[h].wins++
		}
	}

	result := make([]domain.HourlyPerformance, 24)
	for h := 0; h < 24; h++ {
		result[h] = domain.HourlyPerformance{
			Hour:       h,
			Pnl:        buckets[h].pnl,
			TradeCount: buckets[h].count,
			WinRate:    buckets[h].winRate(),
		}
	}
	return result
}

// ComputeOrderTypePerformance aggregates closed trades by order type.
// Always returns exactly 3 entries (limit, market, ioc), zeroed when empty.
func ComputeOrderTypePerformance(trades []*domain.Trade) []domain.OrderTypePerformance {
	buckets := make(map[domain.OrderType]*winBucket, len(orderTypeOrder))
	for _, ot := range orderTypeOrder {
		buckets[ot] = &winBucket{}
	}

	for _, t := range closedTrades(trades) {
		b, ok := buckets[t.OrderType]
		if !ok {
			continue
		}
		b.pnl += t.Pnl
		b.count++
		if t.IsWin() {
			b.wins++
		}
	}

	result := make([]domain.OrderTypePerformance, 0, len(orderTypeOrder))
	for _, ot := range orderTypeOrder {
		b := buckets[ot]
		result = append(result, domain.OrderTypePerformance{
			OrderType:  ot,
			Pnl:        b.pnl,
			TradeCount: b.count,
			WinRate:    b.winRate(),
			AvgPnl:     b.avgPnl(),
		})
	}
	return result
}
