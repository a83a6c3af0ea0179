// Package main serves the dashboard HTTP API: read-only analytics endpoints
// computed on demand from stored trade history, plus journal annotation
// reads and writes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"deriverse-trade-lab/internal/annotations"
	"deriverse-trade-lab/internal/storage"
	"deriverse-trade-lab/internal/storage/memory"
	"deriverse-trade-lab/internal/storage/migrations"
	pgstore "deriverse-trade-lab/internal/storage/postgres"
	"deriverse-trade-lab/internal/synthetic"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("ADDR", ":8080"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	demo := flag.Bool("demo", false, "Seed in-memory stores with a synthetic dataset (implies --use-memory)")
	demoCount := flag.Int("demo-count", 500, "Number of synthetic trades in demo mode")
	demoSeed := flag.Int64("demo-seed", 42, "PRNG seed for demo mode")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if *demo {
		*useMemory = true
	}
	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())

	// Create stores
	stores, cleanup, err := createStores(ctx, *postgresDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	if *demo {
		if err := seedDemoData(ctx, stores, *demoCount, *demoSeed); err != nil {
			logger.Fatalf("Failed to seed demo data: %v", err)
		}
		logger.Printf("Seeded %d synthetic trades (seed %d)", *demoCount, *demoSeed)
	}

	api := &apiServer{
		stores:      stores,
		annotations: annotations.NewService(stores.annotationStore),
		logger:      logger,
	}

	mux := http.NewServeMux()
	api.routes(mux)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Channel to signal completion
	done := make(chan error, 1)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
		cancel()

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	logger.Printf("Listening on %s", *addr)
	err = srv.ListenAndServe()
	done <- err
	cancel()

	if err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// appStores holds the storage implementations the API reads from.
type appStores struct {
	tradeStore      storage.TradeStore
	feeStore        storage.FeeRecordStore
	fundingStore    storage.FundingPaymentStore
	annotationStore storage.AnnotationStore
}

// createStores creates all required stores, applying migrations in
// postgres mode.
func createStores(ctx context.Context, postgresDSN string, useMemory bool) (*appStores, func(), error) {
	if useMemory {
		stores := &appStores{
			tradeStore:      memory.NewTradeStore(),
			feeStore:        memory.NewFeeRecordStore(),
			fundingStore:    memory.NewFundingPaymentStore(),
			annotationStore: memory.NewAnnotationStore(),
		}
		return stores, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	stores := &appStores{
		tradeStore:      pgstore.NewTradeStore(pool),
		feeStore:        pgstore.NewFeeRecordStore(pool),
		fundingStore:    pgstore.NewFundingPaymentStore(pool),
		annotationStore: pgstore.NewAnnotationStore(pool),
	}

	return stores, func() { pool.Close() }, nil
}

// seedDemoData fills the stores with a deterministic synthetic dataset so
// the dashboard has something to show without a wallet history.
func seedDemoData(ctx context.Context, stores *appStores, count int, seed int64) error {
	now := time.Now().UTC()

	trades := synthetic.GenerateTrades(count, seed, now)
	if err := stores.tradeStore.InsertBulk(ctx, trades); err != nil {
		return fmt.Errorf("seed trades: %w", err)
	}
	if err := stores.feeStore.InsertBulk(ctx, synthetic.GenerateFeeRecords(trades)); err != nil {
		return fmt.Errorf("seed fee records: %w", err)
	}
	if err := stores.fundingStore.InsertBulk(ctx, synthetic.GenerateFundingPayments(count/4, seed, now)); err != nil {
		return fmt.Errorf("seed funding payments: %w", err)
	}
	return nil
}

// envOr returns the env value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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
