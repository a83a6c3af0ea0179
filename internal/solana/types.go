package solana

// Transaction is a confirmed Solana transaction with its log messages.
type Transaction struct {
	Slot      int64
	Signature string
	BlockTime int64 // unix seconds
	Meta      *TransactionMeta
}

// TransactionMeta carries execution metadata. Err is non-nil for failed
// transactions, which emit no trade events worth decoding.
type TransactionMeta struct {
	Err         interface{}
	LogMessages []string
}

// SignatureInfo is one entry from getSignaturesForAddress.
type SignatureInfo struct {
	Signature string
	Slot      int64
	BlockTime *int64
	Err       interface{}
}

// SignaturesOpts paginates getSignaturesForAddress. The node walks
// backwards in time: Before sets the cursor, Until bounds the walk.
type SignaturesOpts struct {
	Before string
	Until  string
	Limit  int
}
