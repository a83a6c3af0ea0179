package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

func TestAnnotationStore_PutAndGet(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	a := &domain.JournalAnnotation{
		TradeID:   "t1",
		Notes:     "entered too early",
		Tags:      []string{"fomo"},
		Rating:    2,
		UpdatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	if err := store.Put(ctx, a); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.GetByTradeID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetByTradeID failed: %v", err)
	}
	if got.Notes != "entered too early" || got.Rating != 2 {
		t.Errorf("Annotation mismatch: %+v", got)
	}
}

func TestAnnotationStore_PutOverwrites(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	if err := store.Put(ctx, &domain.JournalAnnotation{TradeID: "t1", Notes: "v1"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, &domain.JournalAnnotation{TradeID: "t1", Notes: "v2"}); err != nil {
		t.Fatalf("Second put failed: %v", err)
	}

	got, _ := store.GetByTradeID(ctx, "t1")
	if got.Notes != "v2" {
		t.Errorf("Expected overwrite to v2, got %q", got.Notes)
	}

	all, _ := store.GetAll(ctx)
	if len(all) != 1 {
		t.Errorf("Expected 1 annotation after overwrite, got %d", len(all))
	}
}

func TestAnnotationStore_NotFound(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	_, err := store.GetByTradeID(ctx, "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAnnotationStore_GetAllOrderedByTradeID(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	for _, id := range []string{"t3", "t1", "t2"} {
		if err := store.Put(ctx, &domain.JournalAnnotation{TradeID: id}); err != nil {
			t.Fatalf("Put %s failed: %v", id, err)
		}
	}

	all, _ := store.GetAll(ctx)
	for i, want := range []string{"t1", "t2", "t3"} {
		if all[i].TradeID != want {
			t.Errorf("Position %d: got %s, want %s", i, all[i].TradeID, want)
		}
	}
}

func TestAnnotationStore_TagsDoNotAlias(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	tags := []string{"revenge"}
	if err := store.Put(ctx, &domain.JournalAnnotation{TradeID: "t1", Tags: tags}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	tags[0] = "mutated"

	got, _ := store.GetByTradeID(ctx, "t1")
	if got.Tags[0] != "revenge" {
		t.Errorf("Caller slice aliased into store: %v", got.Tags)
	}

	got.Tags[0] = "mutated-read"
	again, _ := store.GetByTradeID(ctx, "t1")
	if again.Tags[0] != "revenge" {
		t.Errorf("Read result aliased into store: %v", again.Tags)
	}
}

func TestAnnotationStore_InvalidInput(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	if err := store.Put(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}
	if err := store.Put(ctx, &domain.JournalAnnotation{TradeID: ""}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty trade id, got %v", err)
	}
}
