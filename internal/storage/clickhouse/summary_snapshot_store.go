package clickhouse

import (
	"context"
	"fmt"
	"time"

	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

// SummarySnapshotStore implements storage.SummarySnapshotStore using ClickHouse.
// Snapshots are flattened into columns so the history can be charted with
// plain aggregating queries.
type SummarySnapshotStore struct {
	conn *Conn
}

// NewSummarySnapshotStore creates a new SummarySnapshotStore.
func NewSummarySnapshotStore(conn *Conn) *SummarySnapshotStore {
	return &SummarySnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.SummarySnapshotStore = (*SummarySnapshotStore)(nil)

const snapshotColumns = `
	wallet, computed_at,
	total_pnl, unrealized_pnl, total_volume, total_fees, total_maker_rebate, net_fees,
	win_rate, total_trades, win_count, loss_count,
	avg_trade_duration,
	long_count, short_count, long_pnl, short_pnl,
	largest_win, largest_loss, avg_win, avg_loss,
	max_drawdown, max_drawdown_percent, profit_factor, expectancy,
	current_streak, best_streak, worst_streak,
	sharpe_ratio, sortino_ratio
`

// Insert adds a snapshot. Snapshots are never updated.
func (s *SummarySnapshotStore) Insert(ctx context.Context, snap *domain.SummarySnapshot) error {
	if snap == nil || snap.Wallet == "" {
		return storage.ErrInvalidInput
	}

	query := `INSERT INTO summary_snapshots (` + snapshotColumns + `) VALUES (
		?, ?,
		?, ?, ?, ?, ?, ?,
		?, ?, ?, ?,
		?,
		?, ?, ?, ?,
		?, ?, ?, ?,
		?, ?, ?, ?,
		?, ?, ?,
		?, ?
	)`

	m := snap.Summary
	err := s.conn.Exec(ctx, query,
		snap.Wallet, snap.ComputedAt,
		m.TotalPnl, m.UnrealizedPnl, m.TotalVolume, m.TotalFees, m.TotalMakerRebate, m.NetFees,
		m.WinRate, int64(m.TotalTrades), int64(m.WinCount), int64(m.LossCount),
		m.AvgTradeDuration,
		int64(m.LongCount), int64(m.ShortCount), m.LongPnl, m.ShortPnl,
		m.LargestWin, m.LargestLoss, m.AvgWin, m.AvgLoss,
		m.MaxDrawdown, m.MaxDrawdownPercent, m.ProfitFactor, m.Expectancy,
		int64(m.CurrentStreak), int64(m.BestStreak), int64(m.WorstStreak),
		m.SharpeRatio, m.SortinoRatio,
	)
	if err != nil {
		return fmt.Errorf("insert summary snapshot: %w", err)
	}
	return nil
}

// GetByWallet retrieves all snapshots for a wallet, ordered by computed_at ASC.
func (s *SummarySnapshotStore) GetByWallet(ctx context.Context, wallet string) ([]*domain.SummarySnapshot, error) {
	query := `SELECT ` + snapshotColumns + `
		FROM summary_snapshots
		WHERE wallet = ?
		ORDER BY computed_at ASC`

	rows, err := s.conn.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("query snapshots by wallet: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.SummarySnapshot
	for rows.Next() {
		var (
			snap       domain.SummarySnapshot
			computedAt time.Time
			totalTrades, winCount, lossCount       int64
			longCount, shortCount                  int64
			currentStreak, bestStreak, worstStreak int64
		)
		m := &snap.Summary

		err := rows.Scan(
			&snap.Wallet, &computedAt,
			&m.TotalPnl, &m.UnrealizedPnl, &m.TotalVolume, &m.TotalFees, &m.TotalMakerRebate, &m.NetFees,
			&m.WinRate, &totalTrades, &winCount, &lossCount,
			&m.AvgTradeDuration,
			&longCount, &shortCount, &m.LongPnl, &m.ShortPnl,
			&m.LargestWin, &m.LargestLoss, &m.AvgWin, &m.AvgLoss,
			&m.MaxDrawdown, &m.MaxDrawdownPercent, &m.ProfitFactor, &m.Expectancy,
			&currentStreak, &bestStreak, &worstStreak,
			&m.SharpeRatio, &m.SortinoRatio,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}

		snap.ComputedAt = computedAt
		m.TotalTrades = int(totalTrades)
		m.WinCount = int(winCount)
		m.LossCount = int(lossCount)
		m.LongCount = int(longCount)
		m.ShortCount = int(shortCount)
		m.CurrentStreak = int(currentStreak)
		m.BestStreak = int(bestStreak)
		m.WorstStreak = int(worstStreak)

		snapshots = append(snapshots, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}

	return snapshots, nil
}
