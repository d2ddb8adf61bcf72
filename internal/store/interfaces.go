package store

import (
	"context"

	"github.com/MKhiriev/go-local-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Records is the per-collection data-access surface over one (local, mirror,
// staging) table triple.
type Records interface {
	Collection() models.Collection

	GetLocal(ctx context.Context, guid string) (models.LocalRecord, error)
	GetAllLocal(ctx context.Context) ([]models.LocalRecord, error)
	GetAllMirror(ctx context.Context) ([]models.MirrorRecord, error)
	GetAllStaged(ctx context.Context) ([]models.StagedRecord, error)

	Save(ctx context.Context, guid string, payload []byte, modified int64) error
	Delete(ctx context.Context, guid string, modified int64) error

	StageIncoming(ctx context.Context, incoming []models.IncomingRecord) error
	ClearStaging(ctx context.Context) error
	ApplyChange(ctx context.Context, change RecordChange) error

	ListChanged(ctx context.Context) ([]models.LocalRecord, error)
	SetUploaded(ctx context.Context, serverTimestamp int64, accepted []models.OutgoingRecord) error

	ResetSyncState(ctx context.Context) error
}

// SyncMeta is the per-collection bookkeeping surface: identity token and
// high-water timestamp.
type SyncMeta interface {
	Get(ctx context.Context, collection models.Collection) (models.CollectionMetadata, error)
	Put(ctx context.Context, meta models.CollectionMetadata) error
	Reset(ctx context.Context, collection models.Collection) error
}
