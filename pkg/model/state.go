package model

import "time"

// ConnectivityState is a point-in-time snapshot for UI indicators. It is
// recomputed from the connectivity signal and the store's queue size and is
// never a source of truth for queue contents.
type ConnectivityState struct {
	IsOnline     bool       `json:"isOnline"`
	PendingCount int        `json:"pendingCount"`
	IsSyncing    bool       `json:"isSyncing"`
	LastSyncedAt *time.Time `json:"lastSyncedAt"`
}

// OfflineStats summarizes the offline store for diagnostics screens.
type OfflineStats struct {
	ProductCount            int            `json:"productCount"`
	PendingTransactionCount int            `json:"pendingTransactionCount"`
	CacheAge                *time.Duration `json:"cacheAge"`
}

// SaleResult is the outcome of a finalized sale. Exactly one field is set:
// Confirmed holds the canonical ledger record when the direct call succeeded,
// Queued holds a synthesized local record when the sale was persisted for
// later sync. Callers must not treat a queued record as settled.
type SaleResult struct {
	Confirmed *Transaction
	Queued    *Transaction
}

// IsQueued reports whether the sale landed in the offline queue.
func (r SaleResult) IsQueued() bool { return r.Queued != nil }

// Transaction returns whichever record the result carries.
func (r SaleResult) Transaction() *Transaction {
	if r.Confirmed != nil {
		return r.Confirmed
	}
	return r.Queued
}
