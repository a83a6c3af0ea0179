package postgres

import (
	"context"
	"fmt"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

// AnnotationStore implements storage.AnnotationStore using PostgreSQL.
// Annotations are the one mutable table: Put is an upsert.
type AnnotationStore struct {
	pool *Pool
}

// NewAnnotationStore creates a new AnnotationStore.
func NewAnnotationStore(pool *Pool) *AnnotationStore {
	return &AnnotationStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AnnotationStore = (*AnnotationStore)(nil)

// GetByTradeID retrieves the annotation for a trade. Returns ErrNotFound if not exists.
func (s *AnnotationStore) GetByTradeID(ctx context.Context, tradeID string) (*domain.JournalAnnotation, error) {
	query := `
		SELECT trade_id, notes, tags, rating, screenshot_url, updated_at
		FROM journal_annotations
		WHERE trade_id = $1
	`

	var a domain.JournalAnnotation
	err := s.pool.QueryRow(ctx, query, tradeID).Scan(
		&a.TradeID, &a.Notes, &a.Tags, &a.Rating, &a.ScreenshotURL, &a.UpdatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get annotation by trade id: %w", err)
	}
	return &a, nil
}

// Put creates or replaces the annotation for a trade.
func (s *AnnotationStore) Put(ctx context.Context, a *domain.JournalAnnotation) error {
	if a == nil || a.TradeID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO journal_annotations (trade_id, notes, tags, rating, screenshot_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (trade_id) DO UPDATE SET
			notes = EXCLUDED.notes,
			tags = EXCLUDED.tags,
			rating = EXCLUDED.rating,
			screenshot_url = EXCLUDED.screenshot_url,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.pool.Exec(ctx, query,
		a.TradeID, a.Notes, a.Tags, a.Rating, a.ScreenshotURL, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put annotation: %w", err)
	}
	return nil
}

// GetAll retrieves all annotations, ordered by trade id ASC.
func (s *AnnotationStore) GetAll(ctx context.Context) ([]*domain.JournalAnnotation, error) {
	query := `
		SELECT trade_id, notes, tags, rating, screenshot_url, updated_at
		FROM journal_annotations
		ORDER BY trade_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all annotations: %w", err)
	}
	defer rows.Close()

	var annotations []*domain.JournalAnnotation
	for rows.Next() {
		var a domain.JournalAnnotation
		if err := rows.Scan(&a.TradeID, &a.Notes, &a.Tags, &a.Rating, &a.ScreenshotURL, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan annotation row: %w", err)
		}
		annotations = append(annotations, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate annotation rows: %w", err)
	}

	return annotations, nil
}
