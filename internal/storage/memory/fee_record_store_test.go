package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

func makeFeeRecord(id string, minuteOffset int) *domain.FeeRecord {
	return &domain.FeeRecord{
		ID:        id,
		Timestamp: storeBase.Add(time.Duration(minuteOffset) * time.Minute),
		Symbol:    "SOL-PERP",
		Type:      domain.FeeTaker,
		Amount:    -1.25,
	}
}

func TestFeeRecordStore_InsertAndGetAll(t *testing.T) {
	store := NewFeeRecordStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.FeeRecord{
		makeFeeRecord("f2", 10),
		makeFeeRecord("f1", 0),
	}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != "f1" || all[1].ID != "f2" {
		t.Errorf("Expected [f1 f2] ordered by timestamp, got %v", all)
	}
}

func TestFeeRecordStore_DuplicateKey(t *testing.T) {
	store := NewFeeRecordStore()
	ctx := context.Background()

	if err := store.Insert(ctx, makeFeeRecord("f1", 0)); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	if err := store.Insert(ctx, makeFeeRecord("f1", 5)); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestFeeRecordStore_GetByTimeRangeInclusive(t *testing.T) {
	store := NewFeeRecordStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.FeeRecord{
		makeFeeRecord("f1", 0),
		makeFeeRecord("f2", 10),
		makeFeeRecord("f3", 20),
	}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, err := store.GetByTimeRange(ctx, storeBase, storeBase.Add(10*time.Minute))
	if err != nil {
		t.Fatalf("GetByTimeRange failed: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("Expected 2 records in inclusive range, got %d", len(result))
	}
}

func TestFeeRecordStore_InvalidInput(t *testing.T) {
	store := NewFeeRecordStore()
	ctx := context.Background()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}
}
