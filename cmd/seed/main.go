// Package main seeds the database with a deterministic synthetic trading
// history, for demos and local development without a funded wallet.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"deriverse-trade-lab/internal/analytics"
	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
	chstore "deriverse-trade-lab/internal/storage/clickhouse"
	"deriverse-trade-lab/internal/storage/migrations"
	pgstore "deriverse-trade-lab/internal/storage/postgres"
	"deriverse-trade-lab/internal/synthetic"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (optional; records a summary snapshot)")
	wallet := flag.String("wallet", "demo-wallet", "Wallet label for the snapshot history")
	count := flag.Int("count", 500, "Number of synthetic trades")
	fundingCount := flag.Int("funding-count", 120, "Number of synthetic funding payments")
	seed := flag.Int64("seed", 42, "PRNG seed; same seed produces the same dataset")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.Lshortfile)

	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required")
	}

	ctx := context.Background()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	now := time.Now().UTC()
	trades := synthetic.GenerateTrades(*count, *seed, now)
	feeRecords := synthetic.GenerateFeeRecords(trades)
	fundingPayments := synthetic.GenerateFundingPayments(*fundingCount, *seed, now)

	start := time.Now()

	if err := pgstore.NewTradeStore(pool).InsertBulk(ctx, trades); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			logger.Fatal("Trades already seeded with this seed; use a different --seed or an empty database")
		}
		logger.Fatalf("Failed to insert trades: %v", err)
	}
	if err := pgstore.NewFeeRecordStore(pool).InsertBulk(ctx, feeRecords); err != nil {
		logger.Fatalf("Failed to insert fee records: %v", err)
	}
	if err := pgstore.NewFundingPaymentStore(pool).InsertBulk(ctx, fundingPayments); err != nil {
		logger.Fatalf("Failed to insert funding payments: %v", err)
	}

	logger.Printf("Seeded %d trades, %d fee records, %d funding payments in %v (seed %d)",
		len(trades), len(feeRecords), len(fundingPayments), time.Since(start), *seed)

	if *clickhouseDSN != "" {
		if err := recordSnapshot(ctx, logger, *clickhouseDSN, *wallet, trades); err != nil {
			logger.Fatalf("Failed to record summary snapshot: %v", err)
		}
	}
}

// recordSnapshot appends the seeded dataset's summary to the ClickHouse
// snapshot history.
func recordSnapshot(ctx context.Context, logger *log.Logger, clickhouseDSN, wallet string, trades []*domain.Trade) error {
	conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		return fmt.Errorf("connect to clickhouse: %w", err)
	}
	defer conn.Close()

	snapshot := &domain.SummarySnapshot{
		Wallet:     wallet,
		ComputedAt: time.Now().UTC(),
		Summary:    analytics.ComputeSummary(trades),
	}
	if err := chstore.NewSummarySnapshotStore(conn).Insert(ctx, snapshot); err != nil {
		return err
	}

	logger.Printf("Recorded summary snapshot for %s (%d closed trades, pnl %s)",
		wallet, snapshot.Summary.TotalTrades, analytics.FormatUsd(snapshot.Summary.TotalPnl))
	return nil
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
