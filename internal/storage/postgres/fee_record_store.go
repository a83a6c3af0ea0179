package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

// FeeRecordStore implements storage.FeeRecordStore using PostgreSQL.
type FeeRecordStore struct {
	pool *Pool
}

// NewFeeRecordStore creates a new FeeRecordStore.
func NewFeeRecordStore(pool *Pool) *FeeRecordStore {
	return &FeeRecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.FeeRecordStore = (*FeeRecordStore)(nil)

const insertFeeRecordQuery = `
	INSERT INTO fee_records (record_id, ts, symbol, fee_type, amount, tx_signature)
	VALUES ($1, $2, $3, $4, $5, $6)
`

// Insert adds a new fee record. Returns ErrDuplicateKey if record_id exists.
func (s *FeeRecordStore) Insert(ctx context.Context, r *domain.FeeRecord) error {
	if r == nil || r.ID == "" {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, insertFeeRecordQuery,
		r.ID, r.Timestamp, r.Symbol, r.Type, r.Amount, r.TxSignature)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert fee record: %w", err)
	}
	return nil
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *FeeRecordStore) InsertBulk(ctx context.Context, records []*domain.FeeRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range records {
		if r == nil || r.ID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, insertFeeRecordQuery,
			r.ID, r.Timestamp, r.Symbol, r.Type, r.Amount, r.TxSignature)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert fee record in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetAll retrieves all fee records, ordered by timestamp ASC (record_id ASC on ties).
func (s *FeeRecordStore) GetAll(ctx context.Context) ([]*domain.FeeRecord, error) {
	query := `
		SELECT record_id, ts, symbol, fee_type, amount, tx_signature
		FROM fee_records
		ORDER BY ts ASC, record_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all fee records: %w", err)
	}
	defer rows.Close()

	return scanFeeRecords(rows)
}

// GetByTimeRange retrieves records within [start, end] (inclusive).
func (s *FeeRecordStore) GetByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.FeeRecord, error) {
	query := `
		SELECT record_id, ts, symbol, fee_type, amount, tx_signature
		FROM fee_records
		WHERE ts >= $1 AND ts <= $2
		ORDER BY ts ASC, record_id ASC
	`

	rows, err := s.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("get fee records by time range: %w", err)
	}
	defer rows.Close()

	return scanFeeRecords(rows)
}

func scanFeeRecords(rows pgx.Rows) ([]*domain.FeeRecord, error) {
	var records []*domain.FeeRecord

	for rows.Next() {
		var r domain.FeeRecord
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Symbol, &r.Type, &r.Amount, &r.TxSignature); err != nil {
			return nil, fmt.Errorf("scan fee record row: %w", err)
		}
		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fee record rows: %w", err)
	}

	return records, nil
}
