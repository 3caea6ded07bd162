package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/faizlzm/cashier-offline/internal/catalog"
	"github.com/faizlzm/cashier-offline/internal/gateway"
	"github.com/faizlzm/cashier-offline/internal/offline"
	"github.com/faizlzm/cashier-offline/pkg/logger"
	"github.com/faizlzm/cashier-offline/pkg/model"
)

// OnlineChecker reports current connectivity; satisfied by the monitor.
type OnlineChecker interface {
	IsOnline() bool
}

type catalogUseCase struct {
	repo        offline.Repository
	gw          gateway.Gateway
	online      OnlineChecker
	cacheMaxAge time.Duration
	logger      logger.ZapLogger
}

func NewCatalogUseCase(repo offline.Repository, gw gateway.Gateway, online OnlineChecker, cacheMaxAge time.Duration, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:        repo,
		gw:          gw,
		online:      online,
		cacheMaxAge: cacheMaxAge,
		logger:      log,
	}
}

func (uc *catalogUseCase) Products(ctx context.Context, filters *model.ProductFilters) ([]model.Product, error) {
	if !uc.online.IsOnline() {
		return uc.repo.CachedProducts(ctx, filters)
	}

	products, err := uc.gw.ListProducts(ctx, filters)
	if err != nil {
		// Reads are non-financial: any fetch failure falls back to cache.
		uc.logger.Warn("product fetch failed, serving cache", zap.Error(err))
		return uc.repo.CachedProducts(ctx, filters)
	}

	// Only the full, unfiltered list may replace the cache: a filtered
	// result would shadow products outside the filter.
	if filters.Empty() {
		if err := uc.repo.CacheProducts(ctx, products); err != nil {
			uc.logger.Error("product cache replace failed", zap.Error(err))
		}
	}

	return products, nil
}

func (uc *catalogUseCase) ShouldRefresh(ctx context.Context) (bool, error) {
	valid, err := uc.repo.IsCacheValid(ctx, uc.cacheMaxAge)
	if err != nil {
		return false, err
	}
	return !valid, nil
}
