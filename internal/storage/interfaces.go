package storage

import (
	"context"
	"time"

	"deriverse-trade-lab/internal/domain"
)

// TradeStore provides access to trades storage.
type TradeStore interface {
	// Insert adds a new trade. Returns ErrDuplicateKey if trade id exists.
	Insert(ctx context.Context, t *domain.Trade) error

	// InsertBulk adds multiple trades atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, trades []*domain.Trade) error

	// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, tradeID string) (*domain.Trade, error)

	// GetAll retrieves all trades, ordered by entry time ASC (id ASC on ties).
	GetAll(ctx context.Context) ([]*domain.Trade, error)

	// GetBySymbol retrieves all trades for a symbol, ordered by entry time ASC.
	GetBySymbol(ctx context.Context, symbol string) ([]*domain.Trade, error)

	// GetByTimeRange retrieves trades entered within [start, end] (inclusive).
	GetByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.Trade, error)
}

// FeeRecordStore provides access to fee_records storage.
type FeeRecordStore interface {
	// Insert adds a new fee record. Returns ErrDuplicateKey if id exists.
	Insert(ctx context.Context, r *domain.FeeRecord) error

	// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, records []*domain.FeeRecord) error

	// GetAll retrieves all fee records, ordered by timestamp ASC (id ASC on ties).
	GetAll(ctx context.Context) ([]*domain.FeeRecord, error)

	// GetByTimeRange retrieves records within [start, end] (inclusive).
	GetByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.FeeRecord, error)
}

// FundingPaymentStore provides access to funding_payments storage.
type FundingPaymentStore interface {
	// Insert adds a new funding payment. Returns ErrDuplicateKey if id exists.
	Insert(ctx context.Context, p *domain.FundingPayment) error

	// InsertBulk adds multiple payments atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, payments []*domain.FundingPayment) error

	// GetAll retrieves all funding payments, ordered by timestamp ASC (id ASC on ties).
	GetAll(ctx context.Context) ([]*domain.FundingPayment, error)

	// GetBySymbol retrieves all payments for a symbol, ordered by timestamp ASC.
	GetBySymbol(ctx context.Context, symbol string) ([]*domain.FundingPayment, error)
}

// AnnotationStore provides access to journal_annotations storage.
// Unlike the trade stores, annotations are mutable: Put overwrites.
type AnnotationStore interface {
	// GetByTradeID retrieves the annotation for a trade. Returns ErrNotFound if not exists.
	GetByTradeID(ctx context.Context, tradeID string) (*domain.JournalAnnotation, error)

	// Put creates or replaces the annotation for a trade.
	Put(ctx context.Context, a *domain.JournalAnnotation) error

	// GetAll retrieves all annotations, ordered by trade id ASC.
	GetAll(ctx context.Context) ([]*domain.JournalAnnotation, error)
}

// SummarySnapshotStore provides access to summary_snapshots storage.
type SummarySnapshotStore interface {
	// Insert adds a snapshot. Snapshots are never updated.
	Insert(ctx context.Context, s *domain.SummarySnapshot) error

	// GetByWallet retrieves all snapshots for a wallet, ordered by computed_at ASC.
	GetByWallet(ctx context.Context, wallet string) ([]*domain.SummarySnapshot, error)
}
