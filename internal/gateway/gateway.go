package gateway

import (
	"context"

	"github.com/faizlzm/cashier-offline/pkg/model"
)

// Gateway is the thin wrapper over the remote ledger's HTTP API. It is
// treated as an external collaborator: create-transaction must be safely
// re-sendable (the payload's clientReference exists for server-side
// deduplication), and its failures are classified for the callers into
// network-class (retryable) and application-level (terminal).
type Gateway interface {
	// CreateTransaction submits a frozen sale payload and returns the
	// canonical ledger record. It never queues; offline fallback is the
	// queue manager's job.
	CreateTransaction(ctx context.Context, req *model.CreateTransactionRequest) (*model.Transaction, error)

	// ListTransactions reads a page of settled transactions.
	ListTransactions(ctx context.Context, filters *model.TransactionFilters) (*model.TransactionPage, error)

	// ListProducts fetches the catalog. An empty filter set is the full,
	// unfiltered fetch that alone may refresh the offline cache.
	ListProducts(ctx context.Context, filters *model.ProductFilters) ([]model.Product, error)
}

// TokenProvider supplies the bearer token for authenticated calls.
// Authentication itself (login, refresh) lives outside this core.
type TokenProvider interface {
	AccessToken() string
}

// TokenFunc adapts a func to TokenProvider.
type TokenFunc func() string

func (f TokenFunc) AccessToken() string { return f() }
