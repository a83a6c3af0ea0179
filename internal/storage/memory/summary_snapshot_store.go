package memory

import (
	"context"
	"sort"
	"sync"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

// SummarySnapshotStore is an in-memory implementation of storage.SummarySnapshotStore.
type SummarySnapshotStore struct {
	mu   sync.RWMutex
	data []*domain.SummarySnapshot
}

// NewSummarySnapshotStore creates a new in-memory summary snapshot store.
func NewSummarySnapshotStore() *SummarySnapshotStore {
	return &SummarySnapshotStore{}
}

// Insert adds a snapshot. Snapshots are never updated.
func (s *SummarySnapshotStore) Insert(_ context.Context, snap *domain.SummarySnapshot) error {
	if snap == nil || snap.Wallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *snap
	s.data = append(s.data, &copy)
	return nil
}

// GetByWallet retrieves all snapshots for a wallet, ordered by computed_at ASC.
func (s *SummarySnapshotStore) GetByWallet(_ context.Context, wallet string) ([]*domain.SummarySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.SummarySnapshot
	for _, snap := range s.data {
		if snap.Wallet == wallet {
			copy := *snap
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ComputedAt.Before(result[j].ComputedAt)
	})

	return result, nil
}

var _ storage.SummarySnapshotStore = (*SummarySnapshotStore)(nil)
