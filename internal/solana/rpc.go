// Package solana provides the Solana JSON-RPC and WebSocket clients used to
// pull Deriverse transaction logs: signature pagination and transaction
// fetches over HTTP for backfill, and a logs subscription for live fills.
package solana

import "context"

// RPCClient defines the Solana RPC HTTP surface the ingestion pipeline uses.
type RPCClient interface {
	// GetTransaction retrieves a confirmed transaction by signature.
	// Returns nil, nil when the transaction is unknown to the node.
	GetTransaction(ctx context.Context, signature string) (*Transaction, error)

	// GetSignaturesForAddress retrieves signatures involving an address,
	// newest first, with cursor pagination.
	GetSignaturesForAddress(ctx context.Context, address string, opts *SignaturesOpts) ([]SignatureInfo, error)

	// GetSlot retrieves the current confirmed slot.
	GetSlot(ctx context.Context) (int64, error)
}
