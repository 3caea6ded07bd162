package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/faizlzm/cashier-offline/pkg/model"
)

func init() {
	// modernc's driver registers as "sqlite"; teach sqlx its bindvar style.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	price       REAL NOT NULL,
	category    TEXT NOT NULL,
	image_url   TEXT,
	stock       INTEGER NOT NULL DEFAULT 0,
	min_stock   INTEGER NOT NULL DEFAULT 0,
	is_active   INTEGER NOT NULL DEFAULT 1,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS queued_transactions (
	id           TEXT PRIMARY KEY,
	payload      TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	status       TEXT NOT NULL CHECK (status IN ('pending','syncing','failed')),
	retry_count  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS metadata (
	key         TEXT PRIMARY KEY,
	value       TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
`

// SQLiteRepository implements offline.Repository on an embedded sqlite file.
type SQLiteRepository struct {
	DB *sqlx.DB
}

// NewSQLiteRepository opens (or creates) the store at path and ensures the
// schema is current.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure store: %w", err)
		}
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	return &SQLiteRepository{DB: db}, nil
}

func migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	var ver int
	err := db.Get(&ver, `SELECT version FROM schema_meta LIMIT 1`)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec(`INSERT INTO schema_meta (version) VALUES (?)`, schemaVersion)
		return err
	case err != nil:
		return err
	case ver < schemaVersion:
		_, err = db.Exec(`UPDATE schema_meta SET version = ?`, schemaVersion)
		return err
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	return r.DB.Close()
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

type productRow struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	Price     float64 `db:"price"`
	Category  string  `db:"category"`
	ImageURL  *string `db:"image_url"`
	Stock     int     `db:"stock"`
	MinStock  int     `db:"min_stock"`
	IsActive  bool    `db:"is_active"`
	CreatedAt string  `db:"created_at"`
	UpdatedAt string  `db:"updated_at"`
}

func (r *SQLiteRepository) CacheProducts(ctx context.Context, products []model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear product cache: %w", err)
	}

	const insert = `
		INSERT INTO products (id, name, price, category, image_url, stock, min_stock, is_active, created_at, updated_at)
		VALUES (:id, :name, :price, :category, :image_url, :stock, :min_stock, :is_active, :created_at, :updated_at)
	`
	for _, p := range products {
		row := productRow{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Category:  string(p.Category),
			ImageURL:  p.ImageURL,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
			IsActive:  p.IsActive,
			CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339Nano),
			UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339Nano),
		}
		if _, err := tx.NamedExecContext(ctx, insert, row); err != nil {
			return fmt.Errorf("cache product %s: %w", p.ID, err)
		}
	}

	now := time.Now()
	if err := upsertMetadata(ctx, tx, model.MetaProductsCachedAt, strconv.FormatInt(now.UnixMilli(), 10), now); err != nil {
		return fmt.Errorf("stamp product cache: %w", err)
	}

	return tx.Commit()
}

func (r *SQLiteRepository) CachedProducts(ctx context.Context, filters *model.ProductFilters) ([]model.Product, error) {
	var rows []productRow
	if err := r.DB.SelectContext(ctx, &rows, `SELECT * FROM products`); err != nil {
		return nil, fmt.Errorf("read product cache: %w", err)
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		p := model.Product{
			ID:        row.ID,
			Name:      row.Name,
			Price:     row.Price,
			Category:  model.Category(row.Category),
			ImageURL:  row.ImageURL,
			Stock:     row.Stock,
			MinStock:  row.MinStock,
			IsActive:  row.IsActive,
			CreatedAt: parseTime(row.CreatedAt),
			UpdatedAt: parseTime(row.UpdatedAt),
		}
		if matches(&p, filters) {
			products = append(products, p)
		}
	}
	return products, nil
}

func matches(p *model.Product, f *model.ProductFilters) bool {
	if f == nil {
		return true
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.IsActive != nil && p.IsActive != *f.IsActive {
		return false
	}
	return true
}

func (r *SQLiteRepository) IsCacheValid(ctx context.Context, maxAge time.Duration) (bool, error) {
	meta, err := r.GetMetadata(ctx, model.MetaProductsCachedAt)
	if err != nil {
		return false, err
	}
	if meta == nil {
		return false, nil
	}
	millis, err := strconv.ParseInt(meta.Value, 10, 64)
	if err != nil {
		return false, nil
	}
	cachedAt := time.UnixMilli(millis)
	return time.Since(cachedAt) < maxAge, nil
}

// ---------------------------------------------------------------------------
// Transaction queue
// ---------------------------------------------------------------------------

type queuedRow struct {
	ID         string `db:"id"`
	Payload    string `db:"payload"`
	CreatedAt  string `db:"created_at"`
	Status     string `db:"status"`
	RetryCount int    `db:"retry_count"`
}

func (r *SQLiteRepository) QueueTransaction(ctx context.Context, req *model.CreateTransactionRequest) (*model.Transaction, error) {
	// Freeze a copy carrying the queue id as the client reference so every
	// re-send of this sale presents the same idempotency handle.
	payload := *req
	if payload.ClientReference == "" {
		payload.ClientReference = uuid.New().String()
	}
	id := payload.ClientReference

	raw, err := json.Marshal(&payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	now := time.Now()
	row := queuedRow{
		ID:         id,
		Payload:    string(raw),
		CreatedAt:  now.UTC().Format(time.RFC3339Nano),
		Status:     string(model.SyncPending),
		RetryCount: 0,
	}
	const insert = `
		INSERT INTO queued_transactions (id, payload, created_at, status, retry_count)
		VALUES (:id, :payload, :created_at, :status, :retry_count)
	`
	if _, err := r.DB.NamedExecContext(ctx, insert, row); err != nil {
		return nil, fmt.Errorf("queue transaction: %w", err)
	}

	return synthesize(id, &payload, now), nil
}

// synthesize builds the local stand-in record returned to the UI while the
// sale waits in the queue.
func synthesize(id string, req *model.CreateTransactionRequest, now time.Time) *model.Transaction {
	items := make([]model.TransactionItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.TransactionItem{
			ID:          fmt.Sprintf("local-item-%d", i),
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Category:    item.Category,
		}
	}
	return &model.Transaction{
		ID:              id,
		TransactionCode: localTransactionCode(now),
		UserID:          "local",
		Subtotal:        req.Subtotal,
		Tax:             req.Tax,
		Discount:        req.Discount,
		Total:           req.Total,
		Status:          model.StatusPending,
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       now,
		Items:           items,
	}
}

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// localTransactionCode derives a date-based code with a LOCAL marker so
// operators can tell not-yet-synced sales apart from server-issued ones.
func localTransactionCode(now time.Time) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return fmt.Sprintf("TRX-%s-LOCAL-%s", now.Format("20060102"), string(buf))
}

func (r *SQLiteRepository) ListQueued(ctx context.Context) ([]model.QueuedTransaction, error) {
	var rows []queuedRow
	if err := r.DB.SelectContext(ctx, &rows, `SELECT * FROM queued_transactions ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}

	queued := make([]model.QueuedTransaction, 0, len(rows))
	for _, row := range rows {
		var payload model.CreateTransactionRequest
		if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
			return nil, fmt.Errorf("decode queued payload %s: %w", row.ID, err)
		}
		queued = append(queued, model.QueuedTransaction{
			ID:         row.ID,
			Payload:    payload,
			CreatedAt:  parseTime(row.CreatedAt),
			Status:     model.SyncStatus(row.Status),
			RetryCount: row.RetryCount,
		})
	}
	return queued, nil
}

func (r *SQLiteRepository) CountQueued(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM queued_transactions`); err != nil {
		return 0, fmt.Errorf("count queue: %w", err)
	}
	return count, nil
}

func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id string, status model.SyncStatus, incrementRetry bool) error {
	bump := 0
	if incrementRetry {
		bump = 1
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE queued_transactions SET status = ?, retry_count = retry_count + ? WHERE id = ?`,
		string(status), bump, id)
	if err != nil {
		return fmt.Errorf("update queued %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM queued_transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove queued %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) ClearSynced(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM queued_transactions WHERE status != ?`, string(model.SyncPending))
	if err != nil {
		return fmt.Errorf("clear synced: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ClearAll(ctx context.Context) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"products", "queued_transactions", "metadata"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) Stats(ctx context.Context) (*model.OfflineStats, error) {
	stats := &model.OfflineStats{}
	if err := r.DB.GetContext(ctx, &stats.ProductCount, `SELECT count(*) FROM products`); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	var err error
	if stats.PendingTransactionCount, err = r.CountQueued(ctx); err != nil {
		return nil, err
	}

	meta, err := r.GetMetadata(ctx, model.MetaProductsCachedAt)
	if err != nil {
		return nil, err
	}
	if meta != nil {
		if millis, perr := strconv.ParseInt(meta.Value, 10, 64); perr == nil {
			age := time.Since(time.UnixMilli(millis))
			stats.CacheAge = &age
		}
	}
	return stats, nil
}

// ---------------------------------------------------------------------------
// Metadata
// ---------------------------------------------------------------------------

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func upsertMetadata(ctx context.Context, e execer, key, value string, now time.Time) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, now.UTC().Format(time.RFC3339Nano))
	return err
}

func (r *SQLiteRepository) SetMetadata(ctx context.Context, key, value string) error {
	if err := upsertMetadata(ctx, r.DB, key, value, time.Now()); err != nil {
		return fmt.Errorf("set metadata %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) GetMetadata(ctx context.Context, key string) (*model.Metadata, error) {
	var row struct {
		Key       string `db:"key"`
		Value     string `db:"value"`
		UpdatedAt string `db:"updated_at"`
	}
	err := r.DB.GetContext(ctx, &row, `SELECT * FROM metadata WHERE key = ? LIMIT 1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get metadata %s: %w", key, err)
	}
	return &model.Metadata{Key: row.Key, Value: row.Value, UpdatedAt: parseTime(row.UpdatedAt)}, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
