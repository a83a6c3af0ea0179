// Package main ingests a wallet's Deriverse trading history: one-shot
// RPC backfill or a continuous live tail of program logs over WebSocket.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"deriverse-trade-lab/internal/analytics"
	"deriverse-trade-lab/internal/deriverse"
	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/ingestion"
	"deriverse-trade-lab/internal/solana"
	chstore "deriverse-trade-lab/internal/storage/clickhouse"
	"deriverse-trade-lab/internal/storage/memory"
	"deriverse-trade-lab/internal/storage/migrations"
	pgstore "deriverse-trade-lab/internal/storage/postgres"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	mode := flag.String("mode", "backfill", "Ingestion mode: backfill or live")
	rpcEndpoint := flag.String("rpc-endpoint", os.Getenv("SOLANA_RPC_ENDPOINT"), "Solana RPC HTTP endpoint")
	wsEndpoint := flag.String("ws-endpoint", os.Getenv("SOLANA_WS_ENDPOINT"), "Solana WebSocket endpoint")
	wallet := flag.String("wallet", os.Getenv("WALLET_ADDRESS"), "Trader wallet address to ingest")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (optional; records a summary snapshot after backfill)")
	pageLimit := flag.Int("page-limit", 100, "Signatures per getSignaturesForAddress page")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[ingest] ", log.LstdFlags|log.Lshortfile)

	if *wallet == "" {
		logger.Fatal("--wallet is required")
	}
	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())

	// Handle shutdown signals with graceful timeout
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel to signal main goroutine completion
	done := make(chan error, 1)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	// Create stores
	stores, cleanup, err := createStores(ctx, *postgresDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	// Run based on mode
	switch *mode {
	case "backfill":
		err = runBackfill(ctx, logger, *rpcEndpoint, *clickhouseDSN, *wallet, *pageLimit, stores)
	case "live":
		err = runLive(ctx, logger, *wsEndpoint, stores)
	default:
		logger.Fatalf("Unknown mode: %s", *mode)
	}

	// Signal completion to shutdown handler
	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates the record stores, applying migrations in postgres
// mode.
func createStores(ctx context.Context, postgresDSN string, useMemory bool) (ingestion.Stores, func(), error) {
	if useMemory {
		stores := ingestion.Stores{
			Trades:  memory.NewTradeStore(),
			Fees:    memory.NewFeeRecordStore(),
			Funding: memory.NewFundingPaymentStore(),
		}
		return stores, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return ingestion.Stores{}, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return ingestion.Stores{}, nil, fmt.Errorf("run migrations: %w", err)
	}

	stores := ingestion.Stores{
		Trades:  pgstore.NewTradeStore(pool),
		Fees:    pgstore.NewFeeRecordStore(pool),
		Funding: pgstore.NewFundingPaymentStore(pool),
	}
	return stores, func() { pool.Close() }, nil
}

// runBackfill walks the wallet's full signature history once.
func runBackfill(ctx context.Context, logger *log.Logger, rpcEndpoint, clickhouseDSN, wallet string, pageLimit int, stores ingestion.Stores) error {
	if rpcEndpoint == "" {
		return fmt.Errorf("--rpc-endpoint is required for backfill mode")
	}

	rpc := solana.NewHTTPClient(rpcEndpoint)

	backfiller, err := ingestion.NewBackfiller(ingestion.BackfillOptions{
		RPC:       rpc,
		Stores:    stores,
		Wallet:    wallet,
		PageLimit: pageLimit,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	logger.Printf("Backfilling history for wallet %s", wallet)
	result, err := backfiller.Run(ctx)
	if err != nil {
		return err
	}

	logger.Printf("Backfill complete in %v: %d signatures, %d transactions, %d trades, %d fees, %d funding, %d duplicates skipped, %d errors",
		result.Duration, result.SignaturesSeen, result.TransactionsRead,
		result.TradesIngested, result.FeesIngested, result.FundingIngested,
		result.DuplicatesSkipped, result.Errors)

	if clickhouseDSN != "" {
		if err := recordSnapshot(ctx, logger, clickhouseDSN, wallet, stores); err != nil {
			return fmt.Errorf("record summary snapshot: %w", err)
		}
	}
	return nil
}

// runLive tails Deriverse program logs and ingests fills as they confirm.
func runLive(ctx context.Context, logger *log.Logger, wsEndpoint string, stores ingestion.Stores) error {
	if wsEndpoint == "" {
		return fmt.Errorf("--ws-endpoint is required for live mode")
	}

	stream, err := solana.NewLogStream(ctx, wsEndpoint, solana.LogsFilter{
		Mentions: []string{deriverse.ProgramID},
	}, nil)
	if err != nil {
		return fmt.Errorf("subscribe to program logs: %w", err)
	}
	defer stream.Close()

	runner := ingestion.NewLiveRunner(ingestion.LiveOptions{
		Logs:   stream.Logs(),
		Stores: stores,
		Logger: logger,
	})

	logger.Println("Starting live ingestion...")
	return runner.Run(ctx)
}

// recordSnapshot computes the current summary over all stored trades and
// appends it to the ClickHouse snapshot history.
func recordSnapshot(ctx context.Context, logger *log.Logger, clickhouseDSN, wallet string, stores ingestion.Stores) error {
	conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		return fmt.Errorf("connect to clickhouse: %w", err)
	}
	defer conn.Close()

	trades, err := stores.Trades.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}

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
