// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-local-sync/internal/config"
	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/models"
)

// Storages groups every repository over the shared SQLite file into a single
// value the service layer is wired with: one records repository per
// collection plus the sync bookkeeping table.
type Storages struct {
	// History, Bookmarks and Meta are the per-collection table triples.
	History   Records
	Bookmarks Records
	Meta      Records

	// SyncMeta holds the per-collection identity token and high-water
	// timestamp rows.
	SyncMeta SyncMeta

	db *DB
}

// NewStorages initialises the storage layer: opens (and if necessary
// creates) the SQLite file named in cfg.DB.DSN, runs pending migrations, and
// wires a repository per collection.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStoragesFromDB(db)
}

func newStoragesFromDB(db *DB) (*Storages, error) {
	s := &Storages{
		SyncMeta: NewSyncMetaRepository(db),
		db:       db,
	}

	for _, collection := range models.AllCollections() {
		repo, err := NewRecordsRepository(db, collection)
		if err != nil {
			return nil, err
		}

		switch collection {
		case models.CollectionHistory:
			s.History = repo
		case models.CollectionBookmarks:
			s.Bookmarks = repo
		case models.CollectionMeta:
			s.Meta = repo
		}
	}

	return s, nil
}

// Records returns the repository for collection. The collection set is
// closed, so an unknown value is a programming error.
func (s *Storages) Records(collection models.Collection) (Records, error) {
	switch collection {
	case models.CollectionHistory:
		return s.History, nil
	case models.CollectionBookmarks:
		return s.Bookmarks, nil
	case models.CollectionMeta:
		return s.Meta, nil
	}
	return nil, fmt.Errorf("unknown collection %q", collection)
}

// Interrupt exposes the shared interrupt handle of the underlying database.
func (s *Storages) Interrupt() *InterruptHandle {
	return s.db.Interrupt()
}

// AcquireWriter claims the exclusive writer lock; see [DB.AcquireWriter].
func (s *Storages) AcquireWriter() (release func(), err error) {
	return s.db.AcquireWriter()
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}
