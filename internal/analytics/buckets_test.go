package analytics

import (
	"testing"
	"time"

	"deriverse-trade-lab/internal/domain"
)

func TestComputeSessionPerformance_FixedCardinality(t *testing.T) {
	sessions := ComputeSessionPerformance(nil)

	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions on empty input, got %d", len(sessions))
	}
	for _, s := range sessions {
		if s.Pnl != 0 || s.TradeCount != 0 || s.WinRate != 0 {
			t.Errorf("session %s must be zeroed: %+v", s.Session, s)
		}
	}
}

func TestComputeSessionPerformance_HourBoundaries(t *testing.T) {
	at := func(id string, hour int, pnl float64) *domain.Trade {
		tr := closedTrade(id, pnl, 0)
		tr.EntryTime = time.Date(2025, 1, 6, hour, 30, 0, 0, time.UTC)
		return tr
	}

	trades := []*domain.Trade{
		at("asian-lo", 0, 10),
		at("asian-hi", 7, 10),
		at("euro-lo", 8, -5),
		at("euro-hi", 15, -5),
		at("us-lo", 16, 20),
		at("us-hi", 23, 20),
	}

	sessions := ComputeSessionPerformance(trades)

	if sessions[0].Session != domain.SessionAsian || sessions[0].TradeCount != 2 {
		t.Errorf("Asian bucket wrong: %+v", sessions[0])
	}
	if sessions[1].Session != domain.SessionEuropean || sessions[1].TradeCount != 2 {
		t.Errorf("European bucket wrong: %+v", sessions[1])
	}
	if sessions[2].Session != domain.SessionUS || sessions[2].TradeCount != 2 {
		t.Errorf("US bucket wrong: %+v", sessions[2])
	}
	if sessions[1].WinRate != 0 || sessions[2].WinRate != 100 {
		t.Errorf("win rates wrong: euro=%f us=%f", sessions[1].WinRate, sessions[2].WinRate)
	}
	if !almostEqual(sessions[2].AvgPnl, 20) {
		t.Errorf("US avgPnl wrong: %f", sessions[2].AvgPnl)
	}
}

func TestComputeHourlyPerformance_FixedCardinality(t *testing.T) {
	hourly := ComputeHourlyPerformance(nil)

	if len(hourly) != 24 {
		t.Fatalf("expected 24 hours on empty input, got %d", len(hourly))
	}
	for h, b := range hourly {
		if b.Hour != h {
			t.Errorf("slot %d holds hour %d", h, b.Hour)
		}
	}
}

func TestComputeHourlyPerformance_Buckets(t *testing.T) {
	t1 := closedTrade("t1", 50, 0)
	t1.EntryTime = time.Date(2025, 1, 6, 13, 0, 0, 0, time.UTC)
	t2 := closedTrade("t2", -20, 0)
	t2.EntryTime = time.Date(2025, 1, 7, 13, 45, 0, 0, time.UTC)

	hourly := ComputeHourlyPerformance([]*domain.Trade{t1, t2})

	h := hourly[13]
	if h.TradeCount != 2 || !almostEqual(h.Pnl, 30) || h.WinRate != 50 {
		t.Errorf("hour 13 bucket wrong: %+v", h)
	}
}

func TestComputeOrderTypePerformance_FixedCardinality(t *testing.T) {
	types := ComputeOrderTypePerformance(nil)

	if len(types) != 3 {
		t.Fatalf("expected 3 order types on empty input, got %d", len(types))
	}
	want := []domain.OrderType{domain.OrderLimit, domain.OrderMarket, domain.OrderIOC}
	for i, ot := range want {
		if types[i].OrderType != ot {
			t.Errorf("slot %d: got %s, want %s", i, types[i].OrderType, ot)
		}
	}
}

func TestComputeOrderTypePerformance_Buckets(t *testing.T) {
	limit := closedTrade("t1", 80, 0)
	limit.OrderType = domain.OrderLimit
	ioc := closedTrade("t2", -10, 1)
	ioc.OrderType = domain.OrderIOC

	types := ComputeOrderTypePerformance([]*domain.Trade{limit, ioc})

	if types[0].TradeCount != 1 || types[0].Pnl != 80 || types[0].WinRate != 100 {
		t.Errorf("limit bucket wrong: %+v", types[0])
	}
	if types[1].TradeCount != 0 {
		t.Errorf("market bucket must be empty: %+v", types[1])
	}
	if types[2].TradeCount != 1 || types[2].WinRate != 0 {
		t.Errorf("ioc bucket wrong: %+v", types[2])
	}
}
