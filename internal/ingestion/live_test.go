package ingestion

import (
	"context"
	"testing"
	"time"

	"deriverse-trade-lab/internal/deriverse"
	"deriverse-trade-lab/internal/solana"
)

func TestLiveRunner_IngestsNotifications(t *testing.T) {
	logs := make(chan solana.LogNotification, 3)
	stores := testStores()
	now := time.Date(2025, 4, 10, 14, 30, 0, 0, time.UTC)

	runner := NewLiveRunner(LiveOptions{
		Logs:   logs,
		Stores: stores,
		Logger: quietLogger(),
		Now:    func() time.Time { return now },
	})

	logs <- solana.LogNotification{
		Signature: "liveFill000000000",
		Slot:      200,
		Logs: []string{
			"Program " + deriverse.ProgramID + " invoke [1]",
			perpFillLog(9, 1_000_000_000, 100_000_000_000, 5_000_000_000),
		},
	}
	// Failed transaction: skipped.
	logs <- solana.LogNotification{
		Signature: "liveFailed0000000",
		Logs:      []string{"Program " + deriverse.ProgramID + " invoke [1]"},
		Err:       map[string]interface{}{"InstructionError": nil},
	}
	// Unrelated program: skipped.
	logs <- solana.LogNotification{
		Signature: "liveOther00000000",
		Logs:      []string{"Program 11111111111111111111111111111111 invoke [1]"},
	}
	close(logs)

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	trades, err := stores.Trades.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	if trades[0].Pnl != 5 {
		t.Errorf("pnl wrong: %f", trades[0].Pnl)
	}
	if !trades[0].EntryTime.Equal(now) {
		t.Errorf("live trade must be stamped with the runner clock, got %v", trades[0].EntryTime)
	}
}

func TestLiveRunner_StopsOnCancel(t *testing.T) {
	logs := make(chan solana.LogNotification)
	runner := NewLiveRunner(LiveOptions{
		Logs:   logs,
		Stores: testStores(),
		Logger: quietLogger(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runner.Run(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLiveRunner_DuplicateDelivery(t *testing.T) {
	// Reconnects can replay a notification; the second copy must be dropped.
	logs := make(chan solana.LogNotification, 2)
	stores := testStores()

	runner := NewLiveRunner(LiveOptions{
		Logs:   logs,
		Stores: stores,
		Logger: quietLogger(),
	})

	notif := solana.LogNotification{
		Signature: "liveDup0000000000",
		Logs: []string{
			"Program " + deriverse.ProgramID + " invoke [1]",
			perpFillLog(3, 1_000_000_000, 100_000_000_000, 0),
		},
	}
	logs <- notif
	logs <- notif
	close(logs)

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	trades, err := stores.Trades.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(trades) != 1 {
		t.Errorf("duplicate notification must not double-store, got %d trades", len(trades))
	}
}
