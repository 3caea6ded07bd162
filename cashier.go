// Package cashier is the offline-first core of the cashier POS client: it
// keeps sales flowing when connectivity drops by queueing them in an embedded
// store and reconciling with the remote ledger once the network returns.
//
// The package is a library; UI code constructs one Client at process start
// and feeds it the environment's connectivity signal via SetOnline.
package cashier

import (
	"context"
	"fmt"

	"github.com/faizlzm/cashier-offline/config"
	"github.com/faizlzm/cashier-offline/internal/catalog"
	catalogUC "github.com/faizlzm/cashier-offline/internal/catalog/usecase"
	"github.com/faizlzm/cashier-offline/internal/connectivity"
	"github.com/faizlzm/cashier-offline/internal/gateway"
	"github.com/faizlzm/cashier-offline/internal/offline"
	offlineRepo "github.com/faizlzm/cashier-offline/internal/offline/repository"
	"github.com/faizlzm/cashier-offline/internal/sale"
	saleUC "github.com/faizlzm/cashier-offline/internal/sale/usecase"
	"github.com/faizlzm/cashier-offline/internal/syncer"
	"github.com/faizlzm/cashier-offline/pkg/logger"
	"github.com/faizlzm/cashier-offline/pkg/model"
	"go.uber.org/zap"
)

// TokenProvider supplies the bearer token attached to remote calls. Login
// and refresh are the embedding application's concern.
type TokenProvider interface {
	AccessToken() string
}

// TokenFunc adapts a func to TokenProvider.
type TokenFunc func() string

func (f TokenFunc) AccessToken() string { return f() }

// Client owns every component of the offline core: the durable store, the
// connectivity monitor, the sync engine, and the remote gateway. Construct
// it once and inject it; there is no module-level state.
type Client struct {
	cfg     *config.Config
	log     logger.ZapLogger
	repo    offline.Repository
	gw      gateway.Gateway
	monitor *connectivity.Monitor
	engine  *syncer.Engine
	sales   sale.UseCase
	catalog catalog.UseCase
}

// New wires the core from config. The client starts online; push the real
// signal with SetOnline as soon as the environment reports it.
func New(cfg *config.Config, tokens TokenProvider, log logger.ZapLogger) (*Client, error) {
	if cfg == nil {
		cfg = config.LoadEnv()
	}
	if log == nil {
		log = logger.NewZapLogger(&logger.ZapLoggerConfig{
			Encoding:          cfg.Logger.Encoding,
			Level:             cfg.Logger.Level,
			DisableCaller:     cfg.Logger.DisableCaller,
			DisableStacktrace: cfg.Logger.DisableStacktrace,
		})
	}

	repo, err := offlineRepo.NewSQLiteRepository(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open offline store: %w", err)
	}
	log.Info("offline store ready", zap.String("path", cfg.Storage.Path))

	gw := gateway.NewHTTPClient(cfg.API.BaseURL, cfg.API.Timeout, tokens, log)
	monitor := connectivity.NewMonitor(true, log)
	engine := syncer.NewEngine(repo, gw, monitor, log)

	// Coming back online triggers exactly one background drain.
	monitor.SetTrigger(func() {
		if err := engine.Drain(context.Background()); err != nil {
			log.Error("automatic sync failed", zap.Error(err))
		}
	})

	return &Client{
		cfg:     cfg,
		log:     log,
		repo:    repo,
		gw:      gw,
		monitor: monitor,
		engine:  engine,
		sales:   saleUC.NewSaleUseCase(repo, gw, monitor, log),
		catalog: catalogUC.NewCatalogUseCase(repo, gw, monitor, cfg.Cache.ProductMaxAge, log),
	}, nil
}

// CreateSale finalizes a sale: direct submission when online, otherwise (or
// on a network-class failure) the offline queue. The result says which.
func (c *Client) CreateSale(ctx context.Context, req *model.CreateTransactionRequest) (*model.SaleResult, error) {
	return c.sales.CreateSale(ctx, req)
}

// Products reads the catalog, remote-first with cached fallback.
func (c *Client) Products(ctx context.Context, filters *model.ProductFilters) ([]model.Product, error) {
	return c.catalog.Products(ctx, filters)
}

// ShouldRefreshProducts reports whether the cached catalog has gone stale.
func (c *Client) ShouldRefreshProducts(ctx context.Context) (bool, error) {
	return c.catalog.ShouldRefresh(ctx)
}

// Transactions lists settled transactions from the remote ledger.
func (c *Client) Transactions(ctx context.Context, filters *model.TransactionFilters) (*model.TransactionPage, error) {
	return c.gw.ListTransactions(ctx, filters)
}

// Sync manually triggers one drain of the offline queue. A no-op while
// offline or while another drain is in flight.
func (c *Client) Sync(ctx context.Context) error {
	return c.engine.Drain(ctx)
}

// Status snapshots connectivity and queue state for UI indicators.
func (c *Client) Status(ctx context.Context) (*model.ConnectivityState, error) {
	return c.engine.State(ctx)
}

// SetOnline feeds the environment's connectivity signal into the core.
func (c *Client) SetOnline(online bool) { c.monitor.SetOnline(online) }

// IsOnline returns the current connectivity state.
func (c *Client) IsOnline() bool { return c.monitor.IsOnline() }

// OnConnectivityChange registers a listener fired once per transition.
func (c *Client) OnConnectivityChange(fn func(online bool)) { c.monitor.OnChange(fn) }

// Stats summarizes the offline store for diagnostics.
func (c *Client) Stats(ctx context.Context) (*model.OfflineStats, error) {
	return c.repo.Stats(ctx)
}

// ClearSynced removes queue records that are no longer pending.
func (c *Client) ClearSynced(ctx context.Context) error {
	return c.repo.ClearSynced(ctx)
}

// Reset wipes all offline data (logout flows). It blocks until any
// in-flight drain finishes; a drain can never observe a half-cleared store.
func (c *Client) Reset(ctx context.Context) error {
	return c.engine.ClearAll(ctx)
}

// Close releases the store. Call after any in-flight work is done.
func (c *Client) Close() error {
	_ = c.log.Sync()
	return c.repo.Close()
}

// IsNetworkError reports whether err is a network-class failure (retryable,
// queue-worthy) rather than an application-level rejection.
func IsNetworkError(err error) bool {
	return gateway.IsNetworkError(err)
}
