package sale

import (
	"context"

	"github.com/faizlzm/cashier-offline/pkg/model"
)

// UseCase decides, at the moment a sale is finalized, between direct remote
// submission and the offline queue, and guarantees the caller a usable
// transaction result either way. Every attempted payment either reaches the
// server or lands in the queue; an application-level rejection is surfaced
// and never queued.
type UseCase interface {
	CreateSale(ctx context.Context, req *model.CreateTransactionRequest) (*model.SaleResult, error)
}
