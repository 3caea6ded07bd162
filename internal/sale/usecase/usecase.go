package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faizlzm/cashier-offline/internal/gateway"
	"github.com/faizlzm/cashier-offline/internal/offline"
	"github.com/faizlzm/cashier-offline/internal/sale"
	"github.com/faizlzm/cashier-offline/pkg/logger"
	"github.com/faizlzm/cashier-offline/pkg/model"
)

// OnlineChecker reports current connectivity; satisfied by the monitor.
type OnlineChecker interface {
	IsOnline() bool
}

type saleUseCase struct {
	repo   offline.Repository
	gw     gateway.Gateway
	online OnlineChecker
	logger logger.ZapLogger
}

func NewSaleUseCase(repo offline.Repository, gw gateway.Gateway, online OnlineChecker, log logger.ZapLogger) sale.UseCase {
	return &saleUseCase{
		repo:   repo,
		gw:     gw,
		online: online,
		logger: log,
	}
}

func (uc *saleUseCase) CreateSale(ctx context.Context, req *model.CreateTransactionRequest) (*model.SaleResult, error) {
	// The client reference is fixed before the first network attempt, so a
	// retry after an unknown outcome presents the same idempotency handle.
	if req.ClientReference == "" {
		req.ClientReference = uuid.New().String()
	}

	if !uc.online.IsOnline() {
		return uc.queue(ctx, req, "offline")
	}

	txn, err := uc.gw.CreateTransaction(ctx, req)
	if err == nil {
		return &model.SaleResult{Confirmed: txn}, nil
	}

	if gateway.IsNetworkError(err) {
		uc.logger.Warn("direct submission failed, queueing sale",
			zap.String("clientReference", req.ClientReference),
			zap.Error(err))
		return uc.queue(ctx, req, "network failure")
	}

	// The server received and rejected the request: queueing it would retry
	// a rejection forever.
	return nil, fmt.Errorf("create transaction: %w", err)
}

func (uc *saleUseCase) queue(ctx context.Context, req *model.CreateTransactionRequest, reason string) (*model.SaleResult, error) {
	local, err := uc.repo.QueueTransaction(ctx, req)
	if err != nil {
		// Storage fault while offline means the sale cannot be recorded
		// anywhere. Surfaced, never swallowed.
		return nil, fmt.Errorf("queue transaction: %w", err)
	}
	uc.logger.Info("sale queued for sync",
		zap.String("id", local.ID),
		zap.String("code", local.TransactionCode),
		zap.String("reason", reason))
	return &model.SaleResult{Queued: local}, nil
}
