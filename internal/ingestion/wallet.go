// Package ingestion pulls Deriverse trade history into the stores: a
// backfill runner that walks a wallet's transaction signatures over RPC, and
// a live runner that drains a WebSocket log stream. Both feed the same
// decode path; analytics only ever sees the materialized records.
package ingestion

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// ErrInvalidWallet reports a wallet address that cannot be a Solana ed25519
// public key.
var ErrInvalidWallet = errors.New("invalid wallet address")

// ValidateWallet checks that address is a well-formed Solana wallet: base58,
// 32 bytes, and on the ed25519 curve. Program-derived addresses are off the
// curve and rejected; they hold no wallet history.
func ValidateWallet(address string) error {
	if address == "" {
		return fmt.Errorf("%w: empty", ErrInvalidWallet)
	}

	decoded, err := base58.Decode(address)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWallet, err)
	}
	if len(decoded) != 32 {
		return fmt.Errorf("%w: decoded to %d bytes, want 32", ErrInvalidWallet, len(decoded))
	}
	if _, err := new(edwards25519.Point).SetBytes(decoded); err != nil {
		return fmt.Errorf("%w: not on the ed25519 curve", ErrInvalidWallet)
	}
	return nil
}
