package memory

import (
	"context"
	"sort"
	"sync"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

// AnnotationStore is an in-memory implementation of storage.AnnotationStore.
type AnnotationStore struct {
	mu   sync.RWMutex
	data map[string]*domain.JournalAnnotation // keyed by trade id
}

// NewAnnotationStore creates a new in-memory annotation store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		data: make(map[string]*domain.JournalAnnotation),
	}
}

// GetByTradeID retrieves the annotation for a trade. Returns ErrNotFound if not exists.
func (s *AnnotationStore) GetByTradeID(_ context.Context, tradeID string) (*domain.JournalAnnotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.data[tradeID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	return copyAnnotation(a), nil
}

// Put creates or replaces the annotation for a trade.
func (s *AnnotationStore) Put(_ context.Context, a *domain.JournalAnnotation) error {
	if a == nil || a.TradeID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[a.TradeID] = copyAnnotation(a)
	return nil
}

// GetAll retrieves all annotations, ordered by trade id ASC.
func (s *AnnotationStore) GetAll(_ context.Context) ([]*domain.JournalAnnotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.JournalAnnotation, 0, len(s.data))
	for _, a := range s.data {
		result = append(result, copyAnnotation(a))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TradeID < result[j].TradeID
	})

	return result, nil
}

// copyAnnotation deep-copies: Tags is a slice and must not alias the stored one.
func copyAnnotation(a *domain.JournalAnnotation) *domain.JournalAnnotation {
	copy := *a
	if a.Tags != nil {
		copy.Tags = append([]string(nil), a.Tags...)
	}
	return &copy
}

var _ storage.AnnotationStore = (*AnnotationStore)(nil)
