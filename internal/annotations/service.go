// Package annotations manages user-authored journal notes attached to
// trades. It sits beside the analytics engine, never inside it: annotations
// are presentation state and affect no computed metric.
package annotations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

// Service applies journal edits on top of an AnnotationStore.
type Service struct {
	store storage.AnnotationStore
	now   func() time.Time
}

// NewService creates an annotation service.
func NewService(store storage.AnnotationStore) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock, used by tests to pin UpdatedAt.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Get returns the annotation for a trade. storage.ErrNotFound when the trade
// has no annotation yet.
func (s *Service) Get(ctx context.Context, tradeID string) (*domain.JournalAnnotation, error) {
	return s.store.GetByTradeID(ctx, tradeID)
}

// GetAll returns every annotation, ordered by trade id.
func (s *Service) GetAll(ctx context.Context) ([]*domain.JournalAnnotation, error) {
	return s.store.GetAll(ctx)
}

// Upsert merges a patch into the trade's annotation and stores the result.
// Nil patch fields leave the current value unchanged; a non-nil empty value
// clears it. A patch against a missing annotation starts from a zero one.
func (s *Service) Upsert(ctx context.Context, tradeID string, patch domain.AnnotationPatch) (*domain.JournalAnnotation, error) {
	if tradeID == "" {
		return nil, fmt.Errorf("%w: empty trade id", storage.ErrInvalidInput)
	}
	if patch.Rating != nil && (*patch.Rating < 0 || *patch.Rating > 5) {
		return nil, fmt.Errorf("%w: rating %d outside 0-5", storage.ErrInvalidInput, *patch.Rating)
	}

	current, err := s.store.GetByTradeID(ctx, tradeID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		current = &domain.JournalAnnotation{TradeID: tradeID}
	}

	if patch.Notes != nil {
		current.Notes = *patch.Notes
	}
	if patch.Tags != nil {
		current.Tags = append([]string(nil), patch.Tags...)
	}
	if patch.Rating != nil {
		current.Rating = *patch.Rating
	}
	if patch.ScreenshotURL != nil {
		current.ScreenshotURL = *patch.ScreenshotURL
	}
	current.UpdatedAt = s.now()

	if err := s.store.Put(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
