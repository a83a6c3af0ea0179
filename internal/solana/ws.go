package solana

// LogsFilter selects which transaction logs a stream receives.
type LogsFilter struct {
	// Mentions filters to transactions that mention any of these addresses.
	// Empty means all transactions.
	Mentions []string
}

// LogNotification is one logsNotification message: the transaction's
// signature, slot, and raw log lines.
type LogNotification struct {
	Signature string
	Slot      int64
	Logs      []string
	Err       interface{}
}
