package service

import (
	"github.com/MKhiriev/go-local-sync/internal/adapter"
	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/internal/store"
	"github.com/MKhiriev/go-local-sync/models"
)

// Services groups the engine's public surface: the sync orchestrator, the
// periodic job, and the application-facing record CRUD.
type Services struct {
	SyncService    SyncService
	SyncJob        SyncJob
	RecordsService RecordsService
}

func NewServices(storages *store.Storages, transport adapter.Transport, collections []models.Collection, log *logger.Logger) (*Services, error) {
	engines, err := NewEngines(storages, log)
	if err != nil {
		return nil, err
	}

	syncSvc := NewSyncService(storages, engines, transport, collections, log)

	return &Services{
		SyncService:    syncSvc,
		SyncJob:        NewSyncJob(syncSvc, log),
		RecordsService: NewRecordsService(storages, log),
	}, nil
}

// NewEngines builds the closed set of per-collection reconciliation engines.
func NewEngines(storages *store.Storages, log *logger.Logger) (map[models.Collection]Engine, error) {
	interrupt := storages.Interrupt()
	engines := make(map[models.Collection]Engine, len(models.AllCollections()))

	for _, collection := range models.AllCollections() {
		records, err := storages.Records(collection)
		if err != nil {
			return nil, err
		}

		switch collection {
		case models.CollectionHistory:
			engines[collection] = newRecordEngine(records, historyMerger{}, models.TombstoneWins, interrupt, log)
		case models.CollectionMeta:
			engines[collection] = newRecordEngine(records, metaMerger{}, models.TombstoneWins, interrupt, log)
		case models.CollectionBookmarks:
			engines[collection] = newBookmarkEngine(records, interrupt, log)
		}
	}

	return engines, nil
}
