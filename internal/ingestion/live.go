package ingestion

import (
	"context"
	"log"
	"time"

	"deriverse-trade-lab/internal/deriverse"
	"deriverse-trade-lab/internal/solana"
)

// LiveRunner drains a logsSubscribe stream and ingests each notification's
// logs through the same decode path as backfill.
type LiveRunner struct {
	logs   <-chan solana.LogNotification
	stores Stores
	logger *log.Logger

	// now stamps trades whose notification carries no block time.
	now func() time.Time
}

// LiveOptions configures a LiveRunner.
type LiveOptions struct {
	// Logs is the notification channel, typically solana.LogStream.Logs().
	Logs   <-chan solana.LogNotification
	Stores Stores
	Logger *log.Logger
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// NewLiveRunner creates a runner over an already-subscribed log stream.
func NewLiveRunner(opts LiveOptions) *LiveRunner {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &LiveRunner{
		logs:   opts.Logs,
		stores: opts.Stores,
		logger: logger,
		now:    now,
	}
}

// Run consumes notifications until the stream closes or the context is
// cancelled. Log notifications carry no block time, so records are stamped
// with the arrival clock; confirmed commitment keeps the skew to seconds.
func (r *LiveRunner) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case notif, ok := <-r.logs:
			if !ok {
				return nil
			}
			r.handle(ctx, notif)
		}
	}
}

func (r *LiveRunner) handle(ctx context.Context, notif solana.LogNotification) {
	if notif.Err != nil {
		return
	}
	if !deriverse.InvokesProgram(notif.Logs) {
		return
	}

	parsed := deriverse.ParseTransaction(notif.Signature, r.now().UTC(), notif.Logs)
	if len(parsed.Trades) == 0 && len(parsed.FeeRecords) == 0 && len(parsed.FundingPayments) == 0 {
		return
	}

	var result BackfillResult
	storeRecords(ctx, r.stores, parsed, &result, r.logger)
	r.logger.Printf("Live tx %s: %d trades, %d fees, %d funding, %d dupes, %d errors",
		notif.Signature, result.TradesIngested, result.FeesIngested,
		result.FundingIngested, result.DuplicatesSkipped, result.Errors)
}
