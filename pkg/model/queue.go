package model

import "time"

// SyncStatus is the per-record sync state of a queued transaction.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSyncing SyncStatus = "syncing"
	SyncFailed  SyncStatus = "failed"
)

// QueuedTransaction is a locally persisted, not-yet-confirmed sale awaiting
// transmission to the remote ledger. The payload is immutable once enqueued;
// only the sync engine mutates status and retry count, and a record is
// deleted exactly once, after the ledger confirms acceptance.
type QueuedTransaction struct {
	ID         string                   `json:"id"`
	Payload    CreateTransactionRequest `json:"payload"`
	CreatedAt  time.Time                `json:"createdAt"`
	Status     SyncStatus               `json:"status"`
	RetryCount int                      `json:"retryCount"`
}

// Metadata is a key/value pair with a write timestamp, used for cache
// bookkeeping such as products_cached_at.
type Metadata struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MetaProductsCachedAt records when the product cache was last replaced.
const MetaProductsCachedAt = "products_cached_at"
