package analytics

import (
	"testing"

	"deriverse-trade-lab/internal/domain"
)

func TestComputeDailyPnl_PrefixSums(t *testing.T) {
	trades := tradesFromPnls(100, -50, 25)

	daily := ComputeDailyPnl(trades)

	if len(daily) != 3 {
		t.Fatalf("expected 3 days, got %d", len(daily))
	}

	var running float64
	for i, d := range daily {
		running += d.Pnl
		if !almostEqual(d.CumulativePnl, running) {
			t.Errorf("day %d cumulative mismatch: got %f, want %f",
				i, d.CumulativePnl, running)
		}
		if i > 0 && daily[i-1].Date >= d.Date {
			t.Errorf("dates not ascending: %s then %s", daily[i-1].Date, d.Date)
		}
	}

	// Round trip: sum of per-day pnl equals the final cumulative.
	if !almostEqual(daily[len(daily)-1].CumulativePnl, 75) {
		t.Errorf("final cumulative mismatch: got %f, want 75",
			daily[len(daily)-1].CumulativePnl)
	}
}

func TestComputeDailyPnl_GroupsSameDay(t *testing.T) {
	t1 := closedTrade("t1", 100, 0)
	t2 := closedTrade("t2", -40, 0) // same exit day
	t3 := closedTrade("t3", 10, 2)  // sparse: day offset 1 has no trades

	daily := ComputeDailyPnl([]*domain.Trade{t1, t2, t3})

	if len(daily) != 2 {
		t.Fatalf("expected 2 sparse days, got %d", len(daily))
	}
	if !almostEqual(daily[0].Pnl, 60) || daily[0].TradeCount != 2 {
		t.Errorf("day 0: got pnl=%f count=%d, want 60/2", daily[0].Pnl, daily[0].TradeCount)
	}
}

func TestComputeDailyPnl_SkipsOpenAndMissingExit(t *testing.T) {
	open := &domain.Trade{
		ID:        "open1",
		Status:    domain.StatusOpen,
		EntryTime: testBase,
	}

	daily := ComputeDailyPnl([]*domain.Trade{open})

	if len(daily) != 0 {
		t.Errorf("open trades must not produce days, got %d", len(daily))
	}
}

func TestComputeDrawdown_Series(t *testing.T) {
	trades := tradesFromPnls(50, -200, 30)

	daily := ComputeDailyPnl(trades)
	dd := ComputeDrawdown(daily)

	if len(dd) != 3 {
		t.Fatalf("expected 3 points, got %d", len(dd))
	}
	if dd[0].Drawdown != 0 {
		t.Errorf("drawdown must be 0 at the first point, got %f", dd[0].Drawdown)
	}
	for i, p := range dd {
		if p.Drawdown < 0 {
			t.Errorf("point %d: drawdown negative: %f", i, p.Drawdown)
		}
	}

	// The daily series' worst drawdown matches the summary's.
	s := ComputeSummary(trades)
	worst := 0.0
	for _, p := range dd {
		if p.Drawdown > worst {
			worst = p.Drawdown
		}
	}
	if !almostEqual(worst, s.MaxDrawdown) {
		t.Errorf("series max %f != summary maxDrawdown %f", worst, s.MaxDrawdown)
	}
}

func TestComputeDrawdown_Empty(t *testing.T) {
	if dd := ComputeDrawdown(nil); len(dd) != 0 {
		t.Errorf("expected empty series, got %d points", len(dd))
	}
}
