package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-local-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// Engine is the per-collection reconciliation contract consumed by the sync
// orchestrator. The set of implementations is closed: one per collection,
// built by [NewEngines].
type Engine interface {
	// CollectionName is the stable identifier used in the bookkeeping table
	// and the remote protocol.
	CollectionName() string

	// ApplyIncoming reconciles the staged remote records against the local
	// and mirror tables and applies the outcome record by record, each in
	// its own transaction. Structural violations skip the offending record
	// and are reported, not returned as errors.
	ApplyIncoming(ctx context.Context, staged []models.StagedRecord, meta models.CollectionMetadata) (models.ReconcileReport, error)

	// FetchOutgoing serializes every local record with pending changes,
	// snapshotting each change counter for the later SetUploaded call.
	FetchOutgoing(ctx context.Context, meta models.CollectionMetadata) ([]models.OutgoingRecord, error)

	// SetUploaded commits the accepted part of an upload: counters drop by
	// their snapshots and mirrors refresh to the uploaded content. Records
	// the server rejected stay scheduled.
	SetUploaded(ctx context.Context, result models.UploadResult, sent []models.OutgoingRecord) error
}

// SyncService drives full sync rounds across the configured collections.
type SyncService interface {
	// SyncAll runs one sequenced round over every configured collection.
	// Returns [store.ErrStoreBusy] without doing anything when another
	// round or application write holds the writer lock.
	SyncAll(ctx context.Context, auth models.AuthInfo) (models.ReconcileReport, error)

	// SyncCollection runs one round for a single collection.
	SyncCollection(ctx context.Context, collection models.Collection, auth models.AuthInfo) (models.ReconcileReport, error)

	// Interrupt requests that an in-flight round stop at the next safe
	// point. Safe to call from any goroutine.
	Interrupt()
}

// RecordsService is the application-facing CRUD surface over the local
// tables. Writes contend with sync rounds for the single writer lock.
type RecordsService interface {
	Create(ctx context.Context, collection models.Collection, payload []byte) (string, error)
	Save(ctx context.Context, collection models.Collection, guid string, payload []byte) error
	Delete(ctx context.Context, collection models.Collection, guid string) error
	Get(ctx context.Context, collection models.Collection, guid string) (models.LocalRecord, error)
	List(ctx context.Context, collection models.Collection) ([]models.LocalRecord, error)
}

// SyncJob runs SyncAll on a ticker until stopped.
type SyncJob interface {
	Start(ctx context.Context, auth models.AuthInfo, interval time.Duration)
	Stop()
}
