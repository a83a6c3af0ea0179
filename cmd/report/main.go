// Package main renders the trading performance report (markdown + CSV)
// from stored trade history or from a deterministic demo dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"deriverse-trade-lab/internal/reporting"
	"deriverse-trade-lab/internal/storage"
	"deriverse-trade-lab/internal/storage/memory"
	"deriverse-trade-lab/internal/storage/migrations"
	pgstore "deriverse-trade-lab/internal/storage/postgres"
	"deriverse-trade-lab/internal/synthetic"
)

func main() {
	// Parse flags
	outputDir := flag.String("output-dir", "output", "Output directory for generated files")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	useDemo := flag.Bool("use-demo", false, "Use a synthetic in-memory dataset instead of the database")
	demoCount := flag.Int("demo-count", 500, "Number of synthetic trades in demo mode")
	demoSeed := flag.Int64("demo-seed", 42, "PRNG seed for demo mode")
	flag.Parse()

	ctx := context.Background()

	// Validate flags
	if !*useDemo && *postgresDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: --postgres-dsn is required when not using demo data")
		fmt.Fprintln(os.Stderr, "Use --use-demo to render from a synthetic dataset instead")
		os.Exit(1)
	}

	// Create the trade store based on mode
	var (
		tradeStore storage.TradeStore
		gen        *reporting.Generator
	)

	if *useDemo {
		// Fixed clock keeps demo output byte-identical across runs.
		fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		store := memory.NewTradeStore()
		trades := synthetic.GenerateTrades(*demoCount, *demoSeed, fixedTime)
		if err := store.InsertBulk(ctx, trades); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading demo trades: %v\n", err)
			os.Exit(1)
		}
		tradeStore = store
		gen = reporting.NewGenerator(tradeStore).WithClock(func() time.Time { return fixedTime })
	} else {
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "Error running migrations: %v\n", err)
			os.Exit(1)
		}

		tradeStore = pgstore.NewTradeStore(pool)
		gen = reporting.NewGenerator(tradeStore)
	}

	report, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}

	// Ensure output directory exists
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	mdPath := filepath.Join(*outputDir, "REPORT.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", mdPath, err)
		os.Exit(1)
	}

	csvPath := filepath.Join(*outputDir, "SYMBOL_PERFORMANCE.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(report.Symbols)), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", csvPath, err)
		os.Exit(1)
	}

	fmt.Println("Report generated successfully:")
	fmt.Printf("  - %s\n", mdPath)
	fmt.Printf("  - %s\n", csvPath)
}
