// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-local-sync/internal/adapter"
	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/internal/store"
	"github.com/MKhiriev/go-local-sync/models"
)

// syncStage names the phases of one sync round, for logging and for keeping
// the sequencing honest: network work happens strictly between staging and
// committing, never interleaved with local-table mutation.
type syncStage int

const (
	stageIdle syncStage = iota
	stageStaging
	stageReconciling
	stagePlanning
	stageUploading
	stageCommitting
)

func (s syncStage) String() string {
	switch s {
	case stageStaging:
		return "staging"
	case stageReconciling:
		return "reconciling"
	case stagePlanning:
		return "planning-outgoing"
	case stageUploading:
		return "uploading"
	case stageCommitting:
		return "committing"
	}
	return "idle"
}

type syncService struct {
	storages    *store.Storages
	engines     map[models.Collection]Engine
	transport   adapter.Transport
	collections []models.Collection
	logger      *logger.Logger
}

// NewSyncService wires the orchestrator over the given storages, engines and
// transport. collections fixes the order rounds run in; collections of one
// account are sequenced, never parallelized, because they share the single
// writer connection and a backed-off remote should stop the whole account.
func NewSyncService(storages *store.Storages, engines map[models.Collection]Engine, transport adapter.Transport, collections []models.Collection, log *logger.Logger) SyncService {
	return &syncService{
		storages:    storages,
		engines:     engines,
		transport:   transport,
		collections: collections,
		logger:      log.GetChildLogger("sync"),
	}
}

func (s *syncService) Interrupt() {
	s.storages.Interrupt().Interrupt()
}

// SyncAll runs one round per configured collection, in order, under the
// exclusive writer lock. The first failing collection stops the account's
// round; collections already committed keep their progress.
func (s *syncService) SyncAll(ctx context.Context, auth models.AuthInfo) (models.ReconcileReport, error) {
	var report models.ReconcileReport

	release, err := s.storages.AcquireWriter()
	if err != nil {
		return report, err
	}
	defer release()

	s.storages.Interrupt().Clear()

	for _, collection := range s.collections {
		delta, err := s.syncCollection(ctx, collection, auth)
		report.Add(delta)
		if err != nil {
			return report, fmt.Errorf("sync %s: %w", collection, err)
		}
	}

	return report, nil
}

// SyncCollection runs one round for a single collection under the writer
// lock.
func (s *syncService) SyncCollection(ctx context.Context, collection models.Collection, auth models.AuthInfo) (models.ReconcileReport, error) {
	release, err := s.storages.AcquireWriter()
	if err != nil {
		return models.ReconcileReport{}, err
	}
	defer release()

	s.storages.Interrupt().Clear()

	return s.syncCollection(ctx, collection, auth)
}

// syncCollection drives the round's state machine for one collection:
// staging, reconciling, planning, uploading, committing. On any stage
// failure the already-applied per-record progress is kept, the high-water
// timestamp is not advanced, and the next round retries from the same point.
func (s *syncService) syncCollection(ctx context.Context, collection models.Collection, auth models.AuthInfo) (models.ReconcileReport, error) {
	var report models.ReconcileReport

	engine, ok := s.engines[collection]
	if !ok {
		return report, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	records, err := s.storages.Records(collection)
	if err != nil {
		return report, err
	}

	log := s.logger.GetChildLogger("sync/" + string(collection))
	ctx = log.WithContext(ctx)

	meta, err := s.storages.SyncMeta.Get(ctx, collection)
	if err != nil {
		return report, fmt.Errorf("load sync metadata: %w", err)
	}

	log.Debug().Str("stage", stageStaging.String()).Int64("since", meta.LastSync).Msg("fetching remote changes")
	fetch, err := s.transport.FetchSince(ctx, auth, engine.CollectionName(), meta.LastSync)
	if err != nil {
		return report, fmt.Errorf("fetch since %d: %w", meta.LastSync, err)
	}

	// An identity token mismatch means another device wiped or replaced the
	// collection: everything derived from the old incarnation is discarded
	// and the fetch restarts from zero.
	if !meta.FirstSync() && fetch.CollectionID != meta.CollectionID {
		log.Warn().
			Str("had", meta.CollectionID).
			Str("got", fetch.CollectionID).
			Msg("collection identity changed; resetting local sync state")

		if err = s.resetCollection(ctx, collection, records); err != nil {
			return report, err
		}
		meta = models.CollectionMetadata{Collection: collection}

		if fetch, err = s.transport.FetchSince(ctx, auth, engine.CollectionName(), 0); err != nil {
			return report, fmt.Errorf("refetch after reset: %w", err)
		}
	}

	if err = records.ClearStaging(ctx); err != nil {
		return report, err
	}
	if err = records.StageIncoming(ctx, fetch.Records); err != nil {
		return report, fmt.Errorf("stage incoming: %w", err)
	}
	staged, err := records.GetAllStaged(ctx)
	if err != nil {
		return report, err
	}

	log.Debug().Str("stage", stageReconciling.String()).Int("staged", len(staged)).Msg("reconciling")
	report, err = engine.ApplyIncoming(ctx, staged, meta)
	if err != nil {
		return report, fmt.Errorf("apply incoming: %w", err)
	}

	log.Debug().Str("stage", stagePlanning.String()).Msg("planning outgoing batch")
	outgoing, err := engine.FetchOutgoing(ctx, meta)
	if err != nil {
		return report, fmt.Errorf("fetch outgoing: %w", err)
	}

	serverTimestamp := fetch.ServerTimestamp
	if len(outgoing) > 0 {
		log.Debug().Str("stage", stageUploading.String()).Int("records", len(outgoing)).Msg("uploading")
		result, err := s.transport.Upload(ctx, auth, engine.CollectionName(), serverTimestamp, outgoing)
		if err != nil {
			return report, fmt.Errorf("upload %d records: %w", len(outgoing), err)
		}

		if err = engine.SetUploaded(ctx, result, outgoing); err != nil {
			return report, fmt.Errorf("commit upload result: %w", err)
		}
		if result.ServerTimestamp > serverTimestamp {
			serverTimestamp = result.ServerTimestamp
		}
	}

	log.Debug().Str("stage", stageCommitting.String()).Int64("server_timestamp", serverTimestamp).Msg("committing round")
	if err = records.ClearStaging(ctx); err != nil {
		return report, err
	}
	err = s.storages.SyncMeta.Put(ctx, models.CollectionMetadata{
		Collection:   collection,
		CollectionID: fetch.CollectionID,
		LastSync:     serverTimestamp,
	})
	if err != nil {
		return report, fmt.Errorf("persist sync metadata: %w", err)
	}

	log.Info().
		Int("inserted", report.Inserted).
		Int("updated", report.Updated).
		Int("merged", report.Merged).
		Int("deleted", report.Deleted).
		Int("duplicated", report.Duplicated).
		Int("skipped", report.Skipped).
		Msg("sync round committed")

	return report, nil
}

// resetCollection returns the collection to its never-synced state: mirror
// and staging dropped, bookkeeping row deleted, every local record marked
// changed. Local data is never discarded.
func (s *syncService) resetCollection(ctx context.Context, collection models.Collection, records store.Records) error {
	if err := records.ResetSyncState(ctx); err != nil {
		return fmt.Errorf("reset sync state: %w", err)
	}
	if err := s.storages.SyncMeta.Reset(ctx, collection); err != nil {
		return fmt.Errorf("reset sync metadata: %w", err)
	}
	return nil
}
