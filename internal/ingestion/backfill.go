package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"deriverse-trade-lab/internal/deriverse"
	"deriverse-trade-lab/internal/solana"
	"deriverse-trade-lab/internal/storage"
)

// Stores groups the record stores the runners write to.
type Stores struct {
	Trades  storage.TradeStore
	Fees    storage.FeeRecordStore
	Funding storage.FundingPaymentStore
}

// Backfiller walks a wallet's signature history over RPC and ingests every
// Deriverse transaction it finds.
type Backfiller struct {
	rpc       solana.RPCClient
	stores    Stores
	wallet    string
	pageLimit int
	logger    *log.Logger
}

// BackfillOptions configures a Backfiller.
type BackfillOptions struct {
	RPC    solana.RPCClient
	Stores Stores
	Wallet string
	// PageLimit is the signatures-per-page for getSignaturesForAddress.
	// Defaults to 100.
	PageLimit int
	Logger    *log.Logger
}

// NewBackfiller creates a backfiller for one wallet. The wallet address is
// validated here so a bad address fails before any RPC traffic.
func NewBackfiller(opts BackfillOptions) (*Backfiller, error) {
	if err := ValidateWallet(opts.Wallet); err != nil {
		return nil, err
	}

	pageLimit := opts.PageLimit
	if pageLimit == 0 {
		pageLimit = 100
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Backfiller{
		rpc:       opts.RPC,
		stores:    opts.Stores,
		wallet:    opts.Wallet,
		pageLimit: pageLimit,
		logger:    logger,
	}, nil
}

// BackfillResult contains statistics from one backfill run.
type BackfillResult struct {
	SignaturesSeen    int
	TransactionsRead  int
	TradesIngested    int
	FeesIngested      int
	FundingIngested   int
	DuplicatesSkipped int
	Errors            int
	Duration          time.Duration
}

// Run walks the wallet's signatures newest-first until the history is
// exhausted, ingesting every Deriverse transaction. Re-running over the same
// history is idempotent: the append-only stores reject duplicates and the
// runner counts them instead of failing.
func (b *Backfiller) Run(ctx context.Context) (*BackfillResult, error) {
	start := time.Now()
	result := &BackfillResult{}

	b.logger.Printf("Starting backfill for wallet %s", b.wallet)

	before := ""
	for {
		opts := &solana.SignaturesOpts{Limit: b.pageLimit, Before: before}
		sigs, err := b.rpc.GetSignaturesForAddress(ctx, b.wallet, opts)
		if err != nil {
			return result, fmt.Errorf("get signatures: %w", err)
		}
		if len(sigs) == 0 {
			break
		}

		result.SignaturesSeen += len(sigs)
		for _, sig := range sigs {
			if err := b.ingestSignature(ctx, sig, result); err != nil {
				if ctx.Err() != nil {
					return result, ctx.Err()
				}
				result.Errors++
				b.logger.Printf("Error ingesting %s: %v", sig.Signature, err)
			}
		}

		before = sigs[len(sigs)-1].Signature
		if len(sigs) < b.pageLimit {
			break
		}
	}

	result.Duration = time.Since(start)
	b.logger.Printf("Backfill complete: %d sigs, %d txs, %d trades, %d fees, %d funding, %d dupes, %d errors in %v",
		result.SignaturesSeen, result.TransactionsRead, result.TradesIngested,
		result.FeesIngested, result.FundingIngested, result.DuplicatesSkipped,
		result.Errors, result.Duration)

	return result, nil
}

// ingestSignature fetches one transaction and stores its decoded records.
func (b *Backfiller) ingestSignature(ctx context.Context, sig solana.SignatureInfo, result *BackfillResult) error {
	// Failed transactions emit no trade reports worth fetching.
	if sig.Err != nil {
		return nil
	}

	tx, err := b.rpc.GetTransaction(ctx, sig.Signature)
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}
	if tx == nil || tx.Meta == nil || tx.Meta.Err != nil {
		return nil
	}
	result.TransactionsRead++

	if !deriverse.InvokesProgram(tx.Meta.LogMessages) {
		return nil
	}

	blockTime := time.Unix(tx.BlockTime, 0).UTC()
	parsed := deriverse.ParseTransaction(tx.Signature, blockTime, tx.Meta.LogMessages)

	storeRecords(ctx, b.stores, parsed, result, b.logger)
	return nil
}

// storeRecords writes one transaction's records, tolerating duplicates.
// Storage failures that are not duplicates are logged and counted into
// result.Errors.
func storeRecords(ctx context.Context, stores Stores, parsed deriverse.ParsedTransaction, result *BackfillResult, logger *log.Logger) {
	var dupes, errs int
	if len(parsed.Trades) > 0 {
		s, d, e := storeBatch(logger, "trades", len(parsed.Trades),
			func() error { return stores.Trades.InsertBulk(ctx, parsed.Trades) },
			func(i int) error { return stores.Trades.Insert(ctx, parsed.Trades[i]) },
		)
		result.TradesIngested += s
		dupes += d
		errs += e
	}
	if len(parsed.FeeRecords) > 0 {
		s, d, e := storeBatch(logger, "fee records", len(parsed.FeeRecords),
			func() error { return stores.Fees.InsertBulk(ctx, parsed.FeeRecords) },
			func(i int) error { return stores.Fees.Insert(ctx, parsed.FeeRecords[i]) },
		)
		result.FeesIngested += s
		dupes += d
		errs += e
	}
	if len(parsed.FundingPayments) > 0 {
		s, d, e := storeBatch(logger, "funding payments", len(parsed.FundingPayments),
			func() error { return stores.Funding.InsertBulk(ctx, parsed.FundingPayments) },
			func(i int) error { return stores.Funding.Insert(ctx, parsed.FundingPayments[i]) },
		)
		result.FundingIngested += s
		dupes += d
		errs += e
	}
	result.DuplicatesSkipped += dupes
	result.Errors += errs
}

// storeBatch inserts a batch, falling back to per-record inserts when the
// bulk write hits a duplicate so the rest of the batch still lands. Any
// other failure is logged and returned as an error count so a mid-run
// outage is visible in the result.
func storeBatch(logger *log.Logger, what string, n int, bulk func() error, one func(int) error) (stored, dupes, errs int) {
	err := bulk()
	if err == nil {
		return n, 0, 0
	}
	if !errors.Is(err, storage.ErrDuplicateKey) {
		logger.Printf("Failed to store %s batch: %v", what, err)
		return 0, 0, n
	}

	for i := 0; i < n; i++ {
		switch err := one(i); {
		case err == nil:
			stored++
		case errors.Is(err, storage.ErrDuplicateKey):
			dupes++
		default:
			logger.Printf("Failed to store %s record: %v", what, err)
			errs++
		}
	}
	return stored, dupes, errs
}
