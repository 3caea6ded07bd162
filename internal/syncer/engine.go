package syncer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/faizlzm/cashier-offline/internal/gateway"
	"github.com/faizlzm/cashier-offline/internal/offline"
	"github.com/faizlzm/cashier-offline/pkg/logger"
	"github.com/faizlzm/cashier-offline/pkg/model"
)

// OnlineChecker reports current connectivity; satisfied by the monitor.
type OnlineChecker interface {
	IsOnline() bool
}

// Engine drains the offline queue against the remote ledger, one record at a
// time, with process-wide mutual exclusion. It is the only component allowed
// to mutate or delete queued records.
type Engine struct {
	// drainMu serializes drains and ClearAll. Held for a whole drain so a
	// store reset can never race an in-flight submission.
	drainMu sync.Mutex

	repo    offline.Repository
	gw      gateway.Gateway
	online  OnlineChecker
	logger  logger.ZapLogger

	stateMu      sync.RWMutex
	syncing      bool
	lastSyncedAt *time.Time
}

func NewEngine(repo offline.Repository, gw gateway.Gateway, online OnlineChecker, log logger.ZapLogger) *Engine {
	return &Engine{repo: repo, gw: gw, online: online, logger: log}
}

// Drain attempts to submit every currently queued record, sequentially.
// It is a no-op (not an error) when offline or when a drain is already in
// flight; the second caller gets nothing to do because the first pass owns
// the snapshot. One record's failure never aborts the rest.
func (e *Engine) Drain(ctx context.Context) error {
	if !e.online.IsOnline() {
		return nil
	}
	if !e.drainMu.TryLock() {
		return nil
	}
	defer e.drainMu.Unlock()

	e.setSyncing(true)
	defer func() {
		now := time.Now()
		e.stateMu.Lock()
		e.syncing = false
		e.lastSyncedAt = &now
		e.stateMu.Unlock()
	}()

	// Snapshot includes syncing records: an interrupted drain proves neither
	// success nor failure, so they stay eligible. Safe only because every
	// payload carries its client reference for server-side dedup.
	queued, err := e.repo.ListQueued(ctx)
	if err != nil {
		e.logger.Error("sync: cannot read queue", zap.Error(err))
		return err
	}
	if len(queued) == 0 {
		return nil
	}

	e.logger.Info("sync: draining queue", zap.Int("count", len(queued)))

	synced := 0
	for _, record := range queued {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("sync: drain cancelled", zap.Int("synced", synced), zap.Int("total", len(queued)))
			return err
		}

		if err := e.repo.UpdateStatus(ctx, record.ID, model.SyncSyncing, false); err != nil {
			e.logger.Error("sync: cannot mark syncing", zap.String("id", record.ID), zap.Error(err))
			continue
		}

		// Direct call: a failure here must mark the record failed, never
		// re-queue it, or one sale would duplicate itself.
		if _, err := e.gw.CreateTransaction(ctx, &record.Payload); err != nil {
			e.logger.Warn("sync: record failed",
				zap.String("id", record.ID),
				zap.Int("retryCount", record.RetryCount+1),
				zap.Error(err))
			if uerr := e.repo.UpdateStatus(ctx, record.ID, model.SyncFailed, true); uerr != nil {
				e.logger.Error("sync: cannot mark failed", zap.String("id", record.ID), zap.Error(uerr))
			}
			continue
		}

		// Deleted exactly once, only after confirmed acceptance.
		if err := e.repo.Remove(ctx, record.ID); err != nil {
			e.logger.Error("sync: cannot remove synced record", zap.String("id", record.ID), zap.Error(err))
			continue
		}
		synced++
	}

	e.logger.Info("sync: drain complete", zap.Int("synced", synced), zap.Int("total", len(queued)))
	return nil
}

// State snapshots connectivity and queue bookkeeping for UI indicators.
// PendingCount is read live from the store; the snapshot is never a source
// of truth for queue contents.
func (e *Engine) State(ctx context.Context) (*model.ConnectivityState, error) {
	count, err := e.repo.CountQueued(ctx)
	if err != nil {
		return nil, err
	}

	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return &model.ConnectivityState{
		IsOnline:     e.online.IsOnline(),
		PendingCount: count,
		IsSyncing:    e.syncing,
		LastSyncedAt: e.lastSyncedAt,
	}, nil
}

// ClearAll wipes the store. Taking the drain lock (blocking, not Try) makes
// the documented "never reset during a drain" obligation a guarantee.
func (e *Engine) ClearAll(ctx context.Context) error {
	e.drainMu.Lock()
	defer e.drainMu.Unlock()
	return e.repo.ClearAll(ctx)
}

func (e *Engine) setSyncing(v bool) {
	e.stateMu.Lock()
	e.syncing = v
	e.stateMu.Unlock()
}
