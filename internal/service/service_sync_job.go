package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/internal/store"
	"github.com/MKhiriev/go-local-sync/models"
)

type syncJob struct {
	syncService SyncService
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a syncJob that calls syncService.SyncAll on a ticker.
// The job is idle until Start is called.
func NewSyncJob(syncService SyncService, log *logger.Logger) SyncJob {
	return &syncJob{
		syncService: syncService,
		logger:      log.GetChildLogger("sync-job"),
	}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that runs SyncAll every interval. If
// interval is zero or negative it defaults to 5 minutes. The goroutine exits
// when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, auth models.AuthInfo, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx, auth)
			}
		}
	}()
}

func (j *syncJob) runOnce(ctx context.Context, auth models.AuthInfo) {
	_, err := j.syncService.SyncAll(ctx, auth)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrStoreBusy):
		// An application write holds the lock; this tick is skipped and the
		// next one retries.
		j.logger.Debug().Msg("writer busy, skipping sync tick")
	case errors.Is(err, store.ErrInterrupted):
		j.logger.Info().Msg("sync round interrupted")
	default:
		j.logger.Err(err).Msg("sync round failed")
	}
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is
// not running (no-op in that case).
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
