package memory

import (
	"context"
	"sort"
	"sync"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

// FundingPaymentStore is an in-memory implementation of storage.FundingPaymentStore.
type FundingPaymentStore struct {
	mu   sync.RWMutex
	data map[string]*domain.FundingPayment // keyed by payment id
}

// NewFundingPaymentStore creates a new in-memory funding payment store.
func NewFundingPaymentStore() *FundingPaymentStore {
	return &FundingPaymentStore{
		data: make(map[string]*domain.FundingPayment),
	}
}

// Insert adds a new funding payment. Returns ErrDuplicateKey if id exists.
func (s *FundingPaymentStore) Insert(_ context.Context, p *domain.FundingPayment) error {
	if p == nil || p.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[p.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *p
	s.data[p.ID] = &copy
	return nil
}

// InsertBulk adds multiple payments atomically. Fails entire batch on any duplicate.
func (s *FundingPaymentStore) InsertBulk(_ context.Context, payments []*domain.FundingPayment) error {
	if len(payments) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(payments))
	for _, p := range payments {
		if p == nil || p.ID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[p.ID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[p.ID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[p.ID] = struct{}{}
	}

	for _, p := range payments {
		copy := *p
		s.data[p.ID] = &copy
	}

	return nil
}

// GetAll retrieves all funding payments, ordered by timestamp ASC (id ASC on ties).
func (s *FundingPaymentStore) GetAll(_ context.Context) ([]*domain.FundingPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.FundingPayment, 0, len(s.data))
	for _, p := range s.data {
		copy := *p
		result = append(result, &copy)
	}

	sortFundingPayments(result)
	return result, nil
}

// GetBySymbol retrieves all payments for a symbol, ordered by timestamp ASC.
func (s *FundingPaymentStore) GetBySymbol(_ context.Context, symbol string) ([]*domain.FundingPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.FundingPayment
	for _, p := range s.data {
		if p.Symbol == symbol {
			copy := *p
			result = append(result, &copy)
		}
	}

	sortFundingPayments(result)
	return result, nil
}

func sortFundingPayments(payments []*domain.FundingPayment) {
	sort.Slice(payments, func(i, j int) bool {
		if payments[i].Timestamp.Equal(payments[j].Timestamp) {
			return payments[i].ID < payments[j].ID
		}
		return payments[i].Timestamp.Before(payments[j].Timestamp)
	})
}

var _ storage.FundingPaymentStore = (*FundingPaymentStore)(nil)
