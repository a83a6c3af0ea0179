package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

// FeeRecordStore is an in-memory implementation of storage.FeeRecordStore.
type FeeRecordStore struct {
	mu   sync.RWMutex
	data map[string]*domain.FeeRecord // keyed by record id
}

// NewFeeRecordStore creates a new in-memory fee record store.
func NewFeeRecordStore() *FeeRecordStore {
	return &FeeRecordStore{
		data: make(map[string]*domain.FeeRecord),
	}
}

// Insert adds a new fee record. Returns ErrDuplicateKey if id exists.
func (s *FeeRecordStore) Insert(_ context.Context, r *domain.FeeRecord) error {
	if r == nil || r.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *r
	s.data[r.ID] = &copy
	return nil
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *FeeRecordStore) InsertBulk(_ context.Context, records []*domain.FeeRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r == nil || r.ID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[r.ID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[r.ID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[r.ID] = struct{}{}
	}

	for _, r := range records {
		copy := *r
		s.data[r.ID] = &copy
	}

	return nil
}

// GetAll retrieves all fee records, ordered by timestamp ASC (id ASC on ties).
func (s *FeeRecordStore) GetAll(_ context.Context) ([]*domain.FeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.FeeRecord, 0, len(s.data))
	for _, r := range s.data {
		copy := *r
		result = append(result, &copy)
	}

	sortFeeRecords(result)
	return result, nil
}

// GetByTimeRange retrieves records within [start, end] (inclusive).
func (s *FeeRecordStore) GetByTimeRange(_ context.Context, start, end time.Time) ([]*domain.FeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.FeeRecord
	for _, r := range s.data {
		if !r.Timestamp.Before(start) && !r.Timestamp.After(end) {
			copy := *r
			result = append(result, &copy)
		}
	}

	sortFeeRecords(result)
	return result, nil
}

func sortFeeRecords(records []*domain.FeeRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].ID < records[j].ID
		}
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
}

var _ storage.FeeRecordStore = (*FeeRecordStore)(nil)
