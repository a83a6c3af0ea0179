package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

func TestAnnotationStore_PutGetRoundtrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewAnnotationStore(pool)

	a := &domain.JournalAnnotation{
		TradeID:       "ann-t1",
		Notes:         "chased the breakout",
		Tags:          []string{"fomo", "late-entry"},
		Rating:        2,
		ScreenshotURL: "https://example.com/shot.png",
		UpdatedAt:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(ctx, a))

	got, err := store.GetByTradeID(ctx, "ann-t1")
	require.NoError(t, err)
	assert.Equal(t, a.Notes, got.Notes)
	assert.Equal(t, a.Tags, got.Tags)
	assert.Equal(t, a.Rating, got.Rating)
	assert.Equal(t, a.ScreenshotURL, got.ScreenshotURL)
	assert.True(t, got.UpdatedAt.Equal(a.UpdatedAt))
}

func TestAnnotationStore_PutUpserts(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewAnnotationStore(pool)

	first := &domain.JournalAnnotation{
		TradeID:   "ann-t2",
		Notes:     "v1",
		Tags:      []string{},
		UpdatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(ctx, first))

	second := &domain.JournalAnnotation{
		TradeID:   "ann-t2",
		Notes:     "v2",
		Tags:      []string{"revised"},
		Rating:    4,
		UpdatedAt: time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(ctx, second))

	got, err := store.GetByTradeID(ctx, "ann-t2")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Notes)
	assert.Equal(t, []string{"revised"}, got.Tags)
	assert.Equal(t, 4, got.Rating)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAnnotationStore_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewAnnotationStore(pool)

	_, err := store.GetByTradeID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAnnotationStore_GetAllOrdered(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewAnnotationStore(pool)

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Put(ctx, &domain.JournalAnnotation{
			TradeID: id, Tags: []string{}, UpdatedAt: now,
		}))
	}

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].TradeID)
	assert.Equal(t, "b", all[1].TradeID)
	assert.Equal(t, "c", all[2].TradeID)
}
