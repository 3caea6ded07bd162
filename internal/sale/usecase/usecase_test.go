package usecase

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizlzm/cashier-offline/internal/offline"
	"github.com/faizlzm/cashier-offline/internal/offline/repository"
	"github.com/faizlzm/cashier-offline/pkg/logger"
	"github.com/faizlzm/cashier-offline/pkg/model"
)

type fakeOnline struct{ online bool }

func (f *fakeOnline) IsOnline() bool { return f.online }

// fakeGateway scripts the ledger's create-transaction behavior.
type fakeGateway struct {
	createErr error
	calls     int
	lastReq   *model.CreateTransactionRequest
}

func (f *fakeGateway) CreateTransaction(_ context.Context, req *model.CreateTransactionRequest) (*model.Transaction, error) {
	f.calls++
	f.lastReq = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &model.Transaction{
		ID:              "srv-1",
		TransactionCode: "TRX-20260901-0001",
		Status:          model.StatusPaid,
		Total:           req.Total,
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       time.Now(),
	}, nil
}

func (f *fakeGateway) ListTransactions(context.Context, *model.TransactionFilters) (*model.TransactionPage, error) {
	return &model.TransactionPage{}, nil
}

func (f *fakeGateway) ListProducts(context.Context, *model.ProductFilters) ([]model.Product, error) {
	return nil, nil
}

func netFailure() error {
	return &url.Error{Op: "Post", URL: "http://ledger/transactions", Err: errors.New("connection refused")}
}

func newTestRepo(t *testing.T) offline.Repository {
	t.Helper()
	repo, err := repository.NewSQLiteRepository(filepath.Join(t.TempDir(), "sale_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleRequest() *model.CreateTransactionRequest {
	return &model.CreateTransactionRequest{
		Items:         []model.CreateTransactionItem{{ProductID: "p1", ProductName: "Iced Tea", Quantity: 2, Price: 8000, Category: model.CategoryDrink}},
		Subtotal:      16000,
		Tax:           1760,
		Total:         17760,
		PaymentMethod: model.PaymentCash,
	}
}

func TestOfflineSaleQueuesImmediately(t *testing.T) {
	repo := newTestRepo(t)
	gw := &fakeGateway{}
	uc := NewSaleUseCase(repo, gw, &fakeOnline{online: false}, logger.NewNop())

	result, err := uc.CreateSale(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.True(t, result.IsQueued())
	assert.Nil(t, result.Confirmed)
	assert.Equal(t, model.StatusPending, result.Queued.Status)
	assert.Contains(t, result.Queued.TransactionCode, "-LOCAL-")
	assert.Zero(t, gw.calls, "offline sale must not touch the network")

	queued, err := repo.ListQueued(context.Background())
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, 0, queued[0].RetryCount)
}

func TestOnlineSaleConfirmsDirectly(t *testing.T) {
	repo := newTestRepo(t)
	gw := &fakeGateway{}
	uc := NewSaleUseCase(repo, gw, &fakeOnline{online: true}, logger.NewNop())

	result, err := uc.CreateSale(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.False(t, result.IsQueued())
	assert.Equal(t, "srv-1", result.Confirmed.ID)

	count, err := repo.CountQueued(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "confirmed sale must not also be queued")
}

func TestNetworkFailureFallsBackToQueue(t *testing.T) {
	repo := newTestRepo(t)
	gw := &fakeGateway{createErr: netFailure()}
	uc := NewSaleUseCase(repo, gw, &fakeOnline{online: true}, logger.NewNop())

	result, err := uc.CreateSale(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.True(t, result.IsQueued())
	assert.Equal(t, 1, gw.calls)

	// No-loss: the sale exists in exactly one place.
	queued, err := repo.ListQueued(context.Background())
	require.NoError(t, err)
	require.Len(t, queued, 1)
	// The queued payload carries the reference the failed attempt used, so
	// the eventual re-send is deduplicable server-side.
	assert.Equal(t, gw.lastReq.ClientReference, queued[0].Payload.ClientReference)
}

func TestApplicationRejectionIsNeverQueued(t *testing.T) {
	repo := newTestRepo(t)
	gw := &fakeGateway{createErr: &model.APIError{StatusCode: 422, Message: "total mismatch"}}
	uc := NewSaleUseCase(repo, gw, &fakeOnline{online: true}, logger.NewNop())

	result, err := uc.CreateSale(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Nil(t, result)

	var apiErr *model.APIError
	assert.ErrorAs(t, err, &apiErr)

	count, err := repo.CountQueued(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "a rejected sale must not become an infinite retry")
}

func TestClientReferenceAssignedOnce(t *testing.T) {
	repo := newTestRepo(t)
	gw := &fakeGateway{}
	uc := NewSaleUseCase(repo, gw, &fakeOnline{online: true}, logger.NewNop())

	req := sampleRequest()
	_, err := uc.CreateSale(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, req.ClientReference)

	req2 := sampleRequest()
	req2.ClientReference = "ref-stable"
	_, err = uc.CreateSale(context.Background(), req2)
	require.NoError(t, err)
	assert.Equal(t, "ref-stable", gw.lastReq.ClientReference)
}
