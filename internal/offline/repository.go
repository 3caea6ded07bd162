package offline

import (
	"context"
	"time"

	"github.com/faizlzm/cashier-offline/pkg/model"
)

// Repository is the sole owner of persisted client-side state: the cached
// product catalog, the queue of unsynced transactions, and cache metadata.
// Every other component reaches this state only through it.
type Repository interface {
	// CacheProducts replaces the entire cached catalog in one store
	// transaction and stamps products_cached_at. Only unfiltered fetches
	// may be cached; callers enforce that.
	CacheProducts(ctx context.Context, products []model.Product) error

	// CachedProducts reads every cached product and applies the filters
	// in-memory. A never-populated store yields an empty slice, not an error.
	CachedProducts(ctx context.Context, filters *model.ProductFilters) ([]model.Product, error)

	// IsCacheValid reports whether the catalog cache is younger than maxAge.
	// A missing timestamp means invalid.
	IsCacheValid(ctx context.Context, maxAge time.Duration) (bool, error)

	// QueueTransaction persists the frozen payload with status pending and
	// retryCount 0 and returns a synthesized local transaction so the sale
	// flow can complete optimistically. The record id doubles as the
	// payload's client reference for server-side deduplication.
	QueueTransaction(ctx context.Context, req *model.CreateTransactionRequest) (*model.Transaction, error)

	ListQueued(ctx context.Context) ([]model.QueuedTransaction, error)
	CountQueued(ctx context.Context) (int, error)

	// UpdateStatus is an idempotent partial update; it is a no-op when the
	// record was already removed by a completed sync.
	UpdateStatus(ctx context.Context, id string, status model.SyncStatus, incrementRetry bool) error

	// Remove deletes a queued record by id; a no-op when already absent.
	Remove(ctx context.Context, id string) error

	// ClearSynced removes queued records whose status is not pending.
	ClearSynced(ctx context.Context) error

	// ClearAll wipes products, queue, and metadata. Callers must hold the
	// sync engine's lock so it never races a drain.
	ClearAll(ctx context.Context) error

	Stats(ctx context.Context) (*model.OfflineStats, error)

	SetMetadata(ctx context.Context, key, value string) error
	GetMetadata(ctx context.Context, key string) (*model.Metadata, error)

	Close() error
}
