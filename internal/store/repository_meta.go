package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/models"
)

// SyncMetaRepository persists the per-collection bookkeeping row: the
// server-side identity token and the high-water fetch timestamp.
type SyncMetaRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewSyncMetaRepository(db *DB) *SyncMetaRepository {
	return &SyncMetaRepository{
		db:     db,
		logger: db.logger.GetChildLogger("store/meta"),
	}
}

// Get returns the bookkeeping row for collection. A collection that has
// never synced yields a zero-valued row rather than an error, so callers
// branch on [models.CollectionMetadata.FirstSync] instead of errors.Is.
func (r *SyncMetaRepository) Get(ctx context.Context, collection models.Collection) (models.CollectionMetadata, error) {
	row := r.db.QueryRowContext(ctx, getCollectionMeta, collection)

	var meta models.CollectionMetadata
	err := row.Scan(&meta.Collection, &meta.CollectionID, &meta.LastSync)
	if err == sql.ErrNoRows {
		return models.CollectionMetadata{Collection: collection}, nil
	}
	if err != nil {
		r.logger.Err(err).Str("func", "Get").Str("collection", string(collection)).Msg("error scanning collection metadata")
		return models.CollectionMetadata{}, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classifier.Sentinel(err))
	}

	return meta, nil
}

// Put writes the bookkeeping row, replacing any existing one.
func (r *SyncMetaRepository) Put(ctx context.Context, meta models.CollectionMetadata) error {
	_, err := r.db.ExecContext(ctx, upsertCollectionMeta, meta.Collection, meta.CollectionID, meta.LastSync)
	if err != nil {
		r.logger.Err(err).Str("func", "Put").Str("collection", string(meta.Collection)).Msg("error upserting collection metadata")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
	}

	return nil
}

// Reset deletes the bookkeeping row, returning the collection to its
// never-synced state. Used during a full local reset after an identity
// token mismatch.
func (r *SyncMetaRepository) Reset(ctx context.Context, collection models.Collection) error {
	if _, err := r.db.ExecContext(ctx, deleteCollectionMeta, collection); err != nil {
		r.logger.Err(err).Str("func", "Reset").Str("collection", string(collection)).Msg("error deleting collection metadata")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
	}

	return nil
}
