package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/faizlzm/cashier-offline/pkg/logger"
	"github.com/faizlzm/cashier-offline/pkg/model"
)

// apiEnvelope is the response wrapper used by every ledger endpoint.
type apiEnvelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
}

// HTTPClient implements Gateway against the ledger's JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	logger  logger.ZapLogger
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenProvider, log logger.ZapLogger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  log,
	}
}

func (c *HTTPClient) CreateTransaction(ctx context.Context, req *model.CreateTransactionRequest) (*model.Transaction, error) {
	var txn model.Transaction
	if _, err := c.do(ctx, http.MethodPost, "/transactions", nil, req, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (c *HTTPClient) ListTransactions(ctx context.Context, filters *model.TransactionFilters) (*model.TransactionPage, error) {
	params := url.Values{}
	if filters != nil {
		if filters.Page > 0 {
			params.Set("page", strconv.Itoa(filters.Page))
		}
		if filters.Limit > 0 {
			params.Set("limit", strconv.Itoa(filters.Limit))
		}
		if filters.Status != "" {
			params.Set("status", string(filters.Status))
		}
		if filters.PaymentMethod != "" {
			params.Set("paymentMethod", string(filters.PaymentMethod))
		}
		if filters.StartDate != "" {
			params.Set("startDate", filters.StartDate)
		}
		if filters.EndDate != "" {
			params.Set("endDate", filters.EndDate)
		}
	}

	var txns []model.Transaction
	env, err := c.do(ctx, http.MethodGet, "/transactions", params, nil, &txns)
	if err != nil {
		return nil, err
	}
	return &model.TransactionPage{Data: txns, Pagination: env.Pagination}, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, filters *model.ProductFilters) ([]model.Product, error) {
	params := url.Values{}
	if filters != nil {
		if filters.Category != "" {
			params.Set("category", string(filters.Category))
		}
		if filters.Search != "" {
			params.Set("search", filters.Search)
		}
		if filters.IsActive != nil {
			params.Set("active", strconv.FormatBool(*filters.IsActive))
		}
	}

	var products []model.Product
	if _, err := c.do(ctx, http.MethodGet, "/products", params, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// do performs one request/response cycle. Any error before a response is
// network-class; a received non-2xx response becomes a *model.APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) (*apiEnvelope, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed before response", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	var env apiEnvelope
	if len(raw) > 0 {
		// A malformed body on a non-2xx status still classifies below.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &model.APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return &env, nil
}
