package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

// FundingPaymentStore implements storage.FundingPaymentStore using PostgreSQL.
type FundingPaymentStore struct {
	pool *Pool
}

// NewFundingPaymentStore creates a new FundingPaymentStore.
func NewFundingPaymentStore(pool *Pool) *FundingPaymentStore {
	return &FundingPaymentStore{pool: pool}
}

// Compile-time interface check.
var _ storage.FundingPaymentStore = (*FundingPaymentStore)(nil)

const insertFundingQuery = `
	INSERT INTO funding_payments (payment_id, symbol, ts, amount, rate, position_size)
	VALUES ($1, $2, $3, $4, $5, $6)
`

// Insert adds a new funding payment. Returns ErrDuplicateKey if payment_id exists.
func (s *FundingPaymentStore) Insert(ctx context.Context, p *domain.FundingPayment) error {
	if p == nil || p.ID == "" {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, insertFundingQuery,
		p.ID, p.Symbol, p.Timestamp, p.Amount, p.Rate, p.PositionSize)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert funding payment: %w", err)
	}
	return nil
}

// InsertBulk adds multiple payments atomically. Fails entire batch on any duplicate.
func (s *FundingPaymentStore) InsertBulk(ctx context.Context, payments []*domain.FundingPayment) error {
	if len(payments) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range payments {
		if p == nil || p.ID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, insertFundingQuery,
			p.ID, p.Symbol, p.Timestamp, p.Amount, p.Rate, p.PositionSize)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert funding payment in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetAll retrieves all funding payments, ordered by timestamp ASC (payment_id ASC on ties).
func (s *FundingPaymentStore) GetAll(ctx context.Context) ([]*domain.FundingPayment, error) {
	query := `
		SELECT payment_id, symbol, ts, amount, rate, position_size
		FROM funding_payments
		ORDER BY ts ASC, payment_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all funding payments: %w", err)
	}
	defer rows.Close()

	return scanFundingPayments(rows)
}

// GetBySymbol retrieves all payments for a symbol, ordered by timestamp ASC.
func (s *FundingPaymentStore) GetBySymbol(ctx context.Context, symbol string) ([]*domain.FundingPayment, error) {
	query := `
		SELECT payment_id, symbol, ts, amount, rate, position_size
		FROM funding_payments
		WHERE symbol = $1
		ORDER BY ts ASC, payment_id ASC
	`

	rows, err := s.pool.Query(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("get funding payments by symbol: %w", err)
	}
	defer rows.Close()

	return scanFundingPayments(rows)
}

func scanFundingPayments(rows pgx.Rows) ([]*domain.FundingPayment, error) {
	var payments []*domain.FundingPayment

	for rows.Next() {
		var p domain.FundingPayment
		if err := rows.Scan(&p.ID, &p.Symbol, &p.Timestamp, &p.Amount, &p.Rate, &p.PositionSize); err != nil {
			return nil, fmt.Errorf("scan funding payment row: %w", err)
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate funding payment rows: %w", err)
	}

	return payments, nil
}
