package client

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/internal/service"
	"github.com/MKhiriev/go-local-sync/internal/store"
	"github.com/MKhiriev/go-local-sync/models"
)

// App is the syncer process: one eager sync round on startup, the periodic
// job afterwards, and interrupt-aware shutdown.
type App struct {
	services *service.Services
	auth     models.AuthInfo
	interval time.Duration
	logger   *logger.Logger
}

func NewApp(services *service.Services, auth models.AuthInfo, interval time.Duration, log *logger.Logger) *App {
	return &App{
		services: services,
		auth:     auth,
		interval: interval,
		logger:   log.GetChildLogger("app"),
	}
}

// Run implements [Client]. It blocks until SIGINT or SIGTERM, then asks the
// in-flight round to stop at its next safe point and waits for the job
// goroutine to drain before returning.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Eager first round so a freshly started process converges immediately
	// instead of waiting out the first tick. Failures are not fatal: the
	// periodic job retries.
	report, err := a.services.SyncService.SyncAll(ctx, a.auth)
	switch {
	case err == nil:
		a.logger.Info().
			Int("inserted", report.Inserted).
			Int("updated", report.Updated).
			Int("merged", report.Merged).
			Int("deleted", report.Deleted).
			Msg("initial sync round complete")
	case errors.Is(err, store.ErrStoreBusy):
		a.logger.Debug().Msg("writer busy, initial round skipped")
	default:
		a.logger.Err(err).Msg("initial sync round failed")
	}

	a.services.SyncJob.Start(ctx, a.auth, a.interval)
	defer a.services.SyncJob.Stop()

	<-ctx.Done()

	a.logger.Info().Msg("shutting down, interrupting in-flight round")
	a.services.SyncService.Interrupt()

	return nil
}
