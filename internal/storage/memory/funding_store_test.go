package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

func makeFunding(id, symbol string, minuteOffset int) *domain.FundingPayment {
	return &domain.FundingPayment{
		ID:           id,
		Symbol:       symbol,
		Timestamp:    storeBase.Add(time.Duration(minuteOffset) * time.Minute),
		Amount:       -0.5,
		Rate:         0.0001,
		PositionSize: 10,
	}
}

func TestFundingPaymentStore_InsertAndGetAll(t *testing.T) {
	store := NewFundingPaymentStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.FundingPayment{
		makeFunding("p2", "SOL-PERP", 10),
		makeFunding("p1", "SOL-PERP", 0),
	}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != "p1" {
		t.Errorf("Expected p1 first, got %v", all)
	}
}

func TestFundingPaymentStore_GetBySymbol(t *testing.T) {
	store := NewFundingPaymentStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.FundingPayment{
		makeFunding("p1", "SOL-PERP", 0),
		makeFunding("p2", "ETH-PERP", 10),
		makeFunding("p3", "SOL-PERP", 20),
	}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, err := store.GetBySymbol(ctx, "SOL-PERP")
	if err != nil {
		t.Fatalf("GetBySymbol failed: %v", err)
	}
	if len(result) != 2 || result[0].ID != "p1" || result[1].ID != "p3" {
		t.Errorf("Expected [p1 p3], got %v", result)
	}
}

func TestFundingPaymentStore_DuplicateKey(t *testing.T) {
	store := NewFundingPaymentStore()
	ctx := context.Background()

	if err := store.Insert(ctx, makeFunding("p1", "SOL-PERP", 0)); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	if err := store.Insert(ctx, makeFunding("p1", "SOL-PERP", 5)); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}
