// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-local-sync/internal/adapter"
	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/internal/mock"
	"github.com/MKhiriev/go-local-sync/internal/store"
	"github.com/MKhiriev/go-local-sync/models"
)

var testAuth = models.AuthInfo{Token: "test-token"}

func newTestSyncService(t *testing.T, storages *store.Storages, transport adapter.Transport, collections ...models.Collection) SyncService {
	t.Helper()

	engines, err := NewEngines(storages, logger.Nop())
	require.NoError(t, err)

	if len(collections) == 0 {
		collections = models.AllCollections()
	}
	return NewSyncService(storages, engines, transport, collections, logger.Nop())
}

func TestSyncService_FirstRound(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)

	ctrl := gomock.NewController(t)
	transport := mock.NewMockTransport(ctrl)

	// One dirty local record to upload, one remote record to pull down.
	require.NoError(t, storages.History.Save(ctx, "localAAAAAAA",
		mustJSON(t, models.HistoryRecord{GUID: "localAAAAAAA", URL: "https://local.example"}), 100))

	remote := mustJSON(t, models.HistoryRecord{GUID: "remoteAAAAAA", URL: "https://remote.example"})
	transport.EXPECT().
		FetchSince(gomock.Any(), testAuth, "history", int64(0)).
		Return(models.FetchResponse{
			Records:         []models.IncomingRecord{{GUID: "remoteAAAAAA", Payload: remote, ServerModified: 900}},
			ServerTimestamp: 1000,
			CollectionID:    "ident-1",
		}, nil)
	transport.EXPECT().
		Upload(gomock.Any(), testAuth, "history", int64(1000), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, _ models.AuthInfo, _ string, _ int64, records []models.OutgoingRecord) (models.UploadResult, error) {
			assert.Equal(t, "localAAAAAAA", records[0].GUID)
			return models.UploadResult{Accepted: []string{"localAAAAAAA"}, ServerTimestamp: 1100}, nil
		})

	svc := newTestSyncService(t, storages, transport, models.CollectionHistory)

	report, err := svc.SyncCollection(ctx, models.CollectionHistory, testAuth)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)

	// The pulled record landed locally, in sync.
	rec, err := storages.History.GetLocal(ctx, "remoteAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.ChangeCounter)

	// The uploaded record converged.
	rec, err = storages.History.GetLocal(ctx, "localAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.ChangeCounter)

	// The round committed: identity adopted and high-water mark advanced to
	// the post-upload server clock.
	meta, err := storages.SyncMeta.Get(ctx, models.CollectionHistory)
	require.NoError(t, err)
	assert.Equal(t, "ident-1", meta.CollectionID)
	assert.Equal(t, int64(1100), meta.LastSync)

	// Staging is empty between rounds.
	staged, err := storages.History.GetAllStaged(ctx)
	require.NoError(t, err)
	assert.Empty(t, staged)
}

func TestSyncService_NothingToUploadSkipsUpload(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)

	ctrl := gomock.NewController(t)
	transport := mock.NewMockTransport(ctrl)
	transport.EXPECT().
		FetchSince(gomock.Any(), testAuth, "history", int64(0)).
		Return(models.FetchResponse{ServerTimestamp: 1000, CollectionID: "ident-1"}, nil)

	svc := newTestSyncService(t, storages, transport, models.CollectionHistory)

	_, err := svc.SyncCollection(ctx, models.CollectionHistory, testAuth)
	require.NoError(t, err)

	meta, err := storages.SyncMeta.Get(ctx, models.CollectionHistory)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), meta.LastSync)
}

func TestSyncService_IdentityChangeResets(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)

	// A previously committed round under the old identity.
	require.NoError(t, storages.SyncMeta.Put(ctx, models.CollectionMetadata{
		Collection:   models.CollectionHistory,
		CollectionID: "ident-old",
		LastSync:     5000,
	}))

	// A synced local record whose mirror row must not survive the reset.
	payload := mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "u"})
	require.NoError(t, storages.History.ApplyChange(ctx, store.RecordChange{
		GUID:      "recordAAAAAA",
		PutLocal:  &models.LocalRecord{GUID: "recordAAAAAA", Payload: payload},
		PutMirror: &models.MirrorRecord{GUID: "recordAAAAAA", Payload: payload, ServerModified: 4000},
	}))

	ctrl := gomock.NewController(t)
	transport := mock.NewMockTransport(ctrl)

	// First fetch reveals the new identity; the service resets and refetches
	// the full collection from zero.
	transport.EXPECT().
		FetchSince(gomock.Any(), testAuth, "history", int64(5000)).
		Return(models.FetchResponse{ServerTimestamp: 9000, CollectionID: "ident-new"}, nil)
	transport.EXPECT().
		FetchSince(gomock.Any(), testAuth, "history", int64(0)).
		Return(models.FetchResponse{ServerTimestamp: 9000, CollectionID: "ident-new"}, nil)
	transport.EXPECT().
		Upload(gomock.Any(), testAuth, "history", int64(9000), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, _ models.AuthInfo, _ string, _ int64, records []models.OutgoingRecord) (models.UploadResult, error) {
			// The reset marked the surviving local record changed, so it is
			// re-uploaded to the new incarnation.
			assert.Equal(t, "recordAAAAAA", records[0].GUID)
			return models.UploadResult{Accepted: []string{"recordAAAAAA"}, ServerTimestamp: 9100}, nil
		})

	svc := newTestSyncService(t, storages, transport, models.CollectionHistory)

	_, err := svc.SyncCollection(ctx, models.CollectionHistory, testAuth)
	require.NoError(t, err)

	// Local data survived the reset.
	_, err = storages.History.GetLocal(ctx, "recordAAAAAA")
	require.NoError(t, err)

	meta, err := storages.SyncMeta.Get(ctx, models.CollectionHistory)
	require.NoError(t, err)
	assert.Equal(t, "ident-new", meta.CollectionID)
	assert.Equal(t, int64(9100), meta.LastSync)
}

func TestSyncService_UploadFailureKeepsHighWaterMark(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)

	require.NoError(t, storages.History.Save(ctx, "localAAAAAAA",
		mustJSON(t, models.HistoryRecord{GUID: "localAAAAAAA", URL: "u"}), 100))

	ctrl := gomock.NewController(t)
	transport := mock.NewMockTransport(ctrl)
	transport.EXPECT().
		FetchSince(gomock.Any(), testAuth, "history", int64(0)).
		Return(models.FetchResponse{ServerTimestamp: 1000, CollectionID: "ident-1"}, nil)
	transport.EXPECT().
		Upload(gomock.Any(), testAuth, "history", int64(1000), gomock.Any()).
		Return(models.UploadResult{}, adapter.ErrRemoteConflict)

	svc := newTestSyncService(t, storages, transport, models.CollectionHistory)

	_, err := svc.SyncCollection(ctx, models.CollectionHistory, testAuth)
	assert.ErrorIs(t, err, adapter.ErrRemoteConflict)

	// No commit: the next round starts from the same point.
	meta, err := storages.SyncMeta.Get(ctx, models.CollectionHistory)
	require.NoError(t, err)
	assert.True(t, meta.FirstSync())

	// The record stays scheduled.
	rec, err := storages.History.GetLocal(ctx, "localAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ChangeCounter)
}

func TestSyncService_SyncAllStopsOnFirstFailure(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)

	ctrl := gomock.NewController(t)
	transport := mock.NewMockTransport(ctrl)

	// history succeeds, meta fails, bookmarks must never be attempted.
	transport.EXPECT().
		FetchSince(gomock.Any(), testAuth, "history", int64(0)).
		Return(models.FetchResponse{ServerTimestamp: 1000, CollectionID: "ident-1"}, nil)
	transport.EXPECT().
		FetchSince(gomock.Any(), testAuth, "meta", int64(0)).
		Return(models.FetchResponse{}, adapter.ErrUnauthorized)

	svc := newTestSyncService(t, storages, transport,
		models.CollectionHistory, models.CollectionMeta, models.CollectionBookmarks)

	_, err := svc.SyncAll(ctx, testAuth)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)

	// The committed collection keeps its progress.
	meta, err := storages.SyncMeta.Get(ctx, models.CollectionHistory)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), meta.LastSync)
}

func TestSyncService_UnknownCollection(t *testing.T) {
	storages := newTestStorages(t)
	ctrl := gomock.NewController(t)
	svc := newTestSyncService(t, storages, mock.NewMockTransport(ctrl))

	_, err := svc.SyncCollection(context.Background(), models.Collection("passwords"), testAuth)
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestSyncService_WriterLockIsExclusive(t *testing.T) {
	storages := newTestStorages(t)
	ctrl := gomock.NewController(t)
	svc := newTestSyncService(t, storages, mock.NewMockTransport(ctrl))

	release, err := storages.AcquireWriter()
	require.NoError(t, err)
	defer release()

	_, err = svc.SyncAll(context.Background(), testAuth)
	assert.ErrorIs(t, err, store.ErrStoreBusy)
}

func TestSyncService_StaleStagingIsDiscarded(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)

	// Leftover staging rows from an interrupted previous round must not leak
	// into this round's batch.
	stale := mustJSON(t, models.HistoryRecord{GUID: "staleAAAAAAA", URL: "https://stale.example"})
	require.NoError(t, storages.History.StageIncoming(ctx, []models.IncomingRecord{
		{GUID: "staleAAAAAAA", Payload: stale, ServerModified: 400},
	}))

	ctrl := gomock.NewController(t)
	transport := mock.NewMockTransport(ctrl)
	transport.EXPECT().
		FetchSince(gomock.Any(), testAuth, "history", int64(0)).
		Return(models.FetchResponse{ServerTimestamp: 1000, CollectionID: "ident-1"}, nil)

	svc := newTestSyncService(t, storages, transport, models.CollectionHistory)

	report, err := svc.SyncCollection(ctx, models.CollectionHistory, testAuth)
	require.NoError(t, err)
	assert.Zero(t, report.Inserted)

	_, err = storages.History.GetLocal(ctx, "staleAAAAAAA")
	assert.ErrorIs(t, err, store.ErrRecordNotFound, "stale staged record must not be applied")
}

func TestSyncService_InterruptSurfacesAndKeepsProgress(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)

	ctrl := gomock.NewController(t)
	transport := mock.NewMockTransport(ctrl)

	remote := mustJSON(t, models.HistoryRecord{GUID: "remoteAAAAAA", URL: "u"})
	transport.EXPECT().
		FetchSince(gomock.Any(), testAuth, "history", int64(0)).
		DoAndReturn(func(context.Context, models.AuthInfo, string, int64) (models.FetchResponse, error) {
			// Interrupt lands mid-round, after the service cleared the flag.
			storages.Interrupt().Interrupt()
			return models.FetchResponse{
				Records:         []models.IncomingRecord{{GUID: "remoteAAAAAA", Payload: remote, ServerModified: 900}},
				ServerTimestamp: 1000,
				CollectionID:    "ident-1",
			}, nil
		})

	svc := newTestSyncService(t, storages, transport, models.CollectionHistory)

	_, err := svc.SyncCollection(ctx, models.CollectionHistory, testAuth)
	assert.ErrorIs(t, err, store.ErrInterrupted)

	// No commit happened.
	meta, err := storages.SyncMeta.Get(ctx, models.CollectionHistory)
	require.NoError(t, err)
	assert.True(t, meta.FirstSync())
}

func TestSyncService_EngineErrorWrapsCollection(t *testing.T) {
	storages := newTestStorages(t)

	ctrl := gomock.NewController(t)
	transport := mock.NewMockTransport(ctrl)
	transport.EXPECT().
		FetchSince(gomock.Any(), testAuth, "history", int64(0)).
		Return(models.FetchResponse{}, errors.New("connection refused"))

	svc := newTestSyncService(t, storages, transport, models.CollectionHistory)

	_, err := svc.SyncAll(context.Background(), testAuth)
	require.Error(t, err)
	assert.ErrorContains(t, err, "sync history")
	assert.ErrorContains(t, err, "connection refused")
}
