package service

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-local-sync/internal/config"
	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/internal/mock"
	"github.com/MKhiriev/go-local-sync/internal/store"
	"github.com/MKhiriev/go-local-sync/models"
)

func newTestStorages(t *testing.T) *store.Storages {
	t.Helper()

	cfg := config.Storage{DB: config.DB{
		DSN:         filepath.Join(t.TempDir(), "sync.db"),
		BusyTimeout: time.Second,
	}}

	storages, err := store.NewStorages(cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	return storages
}

func newHistoryEngine(t *testing.T, storages *store.Storages) *recordEngine {
	t.Helper()
	return newRecordEngine(storages.History, historyMerger{}, models.TombstoneWins, storages.Interrupt(), logger.Nop())
}

// localState reads back the full (local, mirror) state keyed by GUID, for
// idempotence comparisons.
func localState(t *testing.T, records store.Records) (map[string]models.LocalRecord, map[string]models.MirrorRecord) {
	t.Helper()
	ctx := context.Background()

	local, err := records.GetAllLocal(ctx)
	require.NoError(t, err)
	mirror, err := records.GetAllMirror(ctx)
	require.NoError(t, err)

	localByGUID := make(map[string]models.LocalRecord, len(local))
	for _, rec := range local {
		localByGUID[rec.GUID] = rec
	}
	mirrorByGUID := make(map[string]models.MirrorRecord, len(mirror))
	for _, rec := range mirror {
		mirrorByGUID[rec.GUID] = rec
	}
	return localByGUID, mirrorByGUID
}

func TestRecordEngine_RemoteInsert(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	engine := newHistoryEngine(t, storages)

	payload := mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "https://example.com"})
	staged := []models.StagedRecord{{GUID: "recordAAAAAA", Payload: payload, ServerModified: 1000}}

	report, err := engine.ApplyIncoming(ctx, staged, models.CollectionMetadata{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)

	rec, err := storages.History.GetLocal(ctx, "recordAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.ChangeCounter, "remote inserts arrive in sync")
	assert.JSONEq(t, string(payload), string(rec.Payload))

	_, mirror := localState(t, storages.History)
	require.Contains(t, mirror, "recordAAAAAA")
	assert.Equal(t, int64(1000), mirror["recordAAAAAA"].ServerModified)
}

func TestRecordEngine_Idempotence(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	engine := newHistoryEngine(t, storages)

	// A mixed batch: insert, edit of an existing record, tombstone.
	require.NoError(t, storages.History.Save(ctx, "editedAAAAAA",
		mustJSON(t, models.HistoryRecord{GUID: "editedAAAAAA", URL: "https://old.example"}), 100))
	require.NoError(t, storages.History.Save(ctx, "deletedAAAAA",
		mustJSON(t, models.HistoryRecord{GUID: "deletedAAAAA", URL: "https://gone.example"}), 100))

	staged := []models.StagedRecord{
		{GUID: "insertAAAAAA", Payload: mustJSON(t, models.HistoryRecord{GUID: "insertAAAAAA", URL: "https://new.example"}), ServerModified: 1000},
		{GUID: "editedAAAAAA", Payload: mustJSON(t, models.HistoryRecord{GUID: "editedAAAAAA", URL: "https://old.example", Title: "titled", TitleModified: 900}), ServerModified: 1000},
		{GUID: "deletedAAAAA", Tombstone: true, ServerModified: 1000},
	}

	_, err := engine.ApplyIncoming(ctx, staged, models.CollectionMetadata{})
	require.NoError(t, err)
	localOnce, mirrorOnce := localState(t, storages.History)

	_, err = engine.ApplyIncoming(ctx, staged, models.CollectionMetadata{})
	require.NoError(t, err)
	localTwice, mirrorTwice := localState(t, storages.History)

	// LocalModified moves with the wall clock; everything else must be
	// byte-for-byte identical.
	for guid, rec := range localTwice {
		rec.LocalModified = localOnce[guid].LocalModified
		localTwice[guid] = rec
	}
	assert.Equal(t, localOnce, localTwice)
	assert.Equal(t, mirrorOnce, mirrorTwice)
}

func TestRecordEngine_TombstoneWins(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	engine := newHistoryEngine(t, storages)

	// Locally edited record; history policy honors the remote deletion.
	require.NoError(t, storages.History.Save(ctx, "recordAAAAAA",
		mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "u", Title: "local edit"}), 100))

	report, err := engine.ApplyIncoming(ctx, []models.StagedRecord{
		{GUID: "recordAAAAAA", Tombstone: true, ServerModified: 1000},
	}, models.CollectionMetadata{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Deleted)

	_, err = storages.History.GetLocal(ctx, "recordAAAAAA")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestRecordEngine_TombstoneLoses(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	engine := newRecordEngine(storages.History, historyMerger{}, models.TombstoneLoses, storages.Interrupt(), logger.Nop())

	payload := mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "u", Title: "local edit"})
	require.NoError(t, storages.History.Save(ctx, "recordAAAAAA", payload, 100))

	report, err := engine.ApplyIncoming(ctx, []models.StagedRecord{
		{GUID: "recordAAAAAA", Tombstone: true, ServerModified: 1000},
	}, models.CollectionMetadata{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	rec, err := storages.History.GetLocal(ctx, "recordAAAAAA")
	require.NoError(t, err, "locally edited record must be resurrected")
	assert.False(t, rec.Deleted)
	assert.Positive(t, rec.ChangeCounter, "resurrected record must re-upload")
	assert.JSONEq(t, string(payload), string(rec.Payload))
}

func TestRecordEngine_TombstoneLoses_AgreedDeletionIsNotResurrected(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	engine := newRecordEngine(storages.History, historyMerger{}, models.TombstoneLoses, storages.Interrupt(), logger.Nop())

	// Synced record, then deleted locally: a pending tombstone, not an edit.
	payload := mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "u"})
	require.NoError(t, storages.History.ApplyChange(ctx, store.RecordChange{
		GUID:      "recordAAAAAA",
		PutLocal:  &models.LocalRecord{GUID: "recordAAAAAA", Payload: payload},
		PutMirror: &models.MirrorRecord{GUID: "recordAAAAAA", Payload: payload, ServerModified: 500},
	}))
	require.NoError(t, storages.History.Delete(ctx, "recordAAAAAA", 200))

	report, err := engine.ApplyIncoming(ctx, []models.StagedRecord{
		{GUID: "recordAAAAAA", Tombstone: true, ServerModified: 1000},
	}, models.CollectionMetadata{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Deleted)

	// Both sides agreed; the resurrect policy never gets a say.
	_, err = storages.History.GetLocal(ctx, "recordAAAAAA")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	_, mirror := localState(t, storages.History)
	assert.Empty(t, mirror)
}

func TestRecordEngine_ThreeWayMerge_NoDataLoss(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	engine := newHistoryEngine(t, storages)

	base := mustJSON(t, models.HistoryRecord{
		GUID: "recordAAAAAA", URL: "u", Title: "Base", TitleModified: 100,
		Visits: []models.Visit{{Date: 1000, Type: models.VisitLink}},
	})
	// Seed a synced record: local == mirror.
	require.NoError(t, storages.History.ApplyChange(ctx, store.RecordChange{
		GUID:      "recordAAAAAA",
		PutLocal:  &models.LocalRecord{GUID: "recordAAAAAA", Payload: base, LocalModified: 100},
		PutMirror: &models.MirrorRecord{GUID: "recordAAAAAA", Payload: base, ServerModified: 500},
	}))

	// Local retitles; remote adds a visit.
	localEdit := mustJSON(t, models.HistoryRecord{
		GUID: "recordAAAAAA", URL: "u", Title: "Local title", TitleModified: 200,
		Visits: []models.Visit{{Date: 1000, Type: models.VisitLink}},
	})
	require.NoError(t, storages.History.Save(ctx, "recordAAAAAA", localEdit, 200))

	incoming := mustJSON(t, models.HistoryRecord{
		GUID: "recordAAAAAA", URL: "u", Title: "Base", TitleModified: 100,
		Visits: []models.Visit{{Date: 1000, Type: models.VisitLink}, {Date: 2000, Type: models.VisitTyped}},
	})

	report, err := engine.ApplyIncoming(ctx, []models.StagedRecord{
		{GUID: "recordAAAAAA", Payload: incoming, ServerModified: 900},
	}, models.CollectionMetadata{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Merged)

	rec, err := storages.History.GetLocal(ctx, "recordAAAAAA")
	require.NoError(t, err)

	var merged models.HistoryRecord
	require.NoError(t, json.Unmarshal(rec.Payload, &merged))
	assert.Equal(t, "Local title", merged.Title)
	assert.Len(t, merged.Visits, 2)
	assert.Positive(t, rec.ChangeCounter, "merged result must upload")

	_, mirror := localState(t, storages.History)
	assert.True(t, mirror["recordAAAAAA"].Overridden, "mirror no longer reflects the server's target state")
	assert.JSONEq(t, string(incoming), string(mirror["recordAAAAAA"].Payload))
}

func TestRecordEngine_ForkOnURLConflict(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	engine := newHistoryEngine(t, storages)

	base := mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "https://old.example"})
	require.NoError(t, storages.History.ApplyChange(ctx, store.RecordChange{
		GUID:      "recordAAAAAA",
		PutLocal:  &models.LocalRecord{GUID: "recordAAAAAA", Payload: base},
		PutMirror: &models.MirrorRecord{GUID: "recordAAAAAA", Payload: base, ServerModified: 500},
	}))

	localEdit := mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "https://local.example"})
	require.NoError(t, storages.History.Save(ctx, "recordAAAAAA", localEdit, 200))

	incoming := mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "https://remote.example"})
	report, err := engine.ApplyIncoming(ctx, []models.StagedRecord{
		{GUID: "recordAAAAAA", Payload: incoming, ServerModified: 900},
	}, models.CollectionMetadata{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Duplicated)

	// The original GUID adopts the incoming version.
	rec, err := storages.History.GetLocal(ctx, "recordAAAAAA")
	require.NoError(t, err)
	assert.JSONEq(t, string(incoming), string(rec.Payload))
	assert.Equal(t, int64(0), rec.ChangeCounter)

	// The local version survives under a fresh GUID, scheduled for upload.
	local, _ := localState(t, storages.History)
	require.Len(t, local, 2)
	for guid, fork := range local {
		if guid == "recordAAAAAA" {
			continue
		}
		assert.Equal(t, int64(1), fork.ChangeCounter)

		var doc models.HistoryRecord
		require.NoError(t, json.Unmarshal(fork.Payload, &doc))
		assert.Equal(t, guid, doc.GUID, "embedded id must be re-stamped")
		assert.Equal(t, "https://local.example", doc.URL, "local data must not be lost")
	}
}

func TestRecordEngine_OutgoingRoundTrip(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	engine := newHistoryEngine(t, storages)

	payload := mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "u"})
	require.NoError(t, storages.History.Save(ctx, "recordAAAAAA", payload, 100))

	outgoing, err := engine.FetchOutgoing(ctx, models.CollectionMetadata{})
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, "recordAAAAAA", outgoing[0].GUID)
	assert.Equal(t, int64(1), outgoing[0].CounterSnapshot)
	assert.Equal(t, models.DefaultSortIndex, outgoing[0].SortIndex)
	assert.False(t, outgoing[0].Tombstone)

	err = engine.SetUploaded(ctx, models.UploadResult{
		Accepted:        []string{"recordAAAAAA"},
		ServerTimestamp: 5000,
	}, outgoing)
	require.NoError(t, err)

	rec, err := storages.History.GetLocal(ctx, "recordAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.ChangeCounter)

	_, mirror := localState(t, storages.History)
	require.Contains(t, mirror, "recordAAAAAA")
	assert.JSONEq(t, string(rec.Payload), string(mirror["recordAAAAAA"].Payload), "mirror must match local after accept")
	assert.Equal(t, int64(5000), mirror["recordAAAAAA"].ServerModified)
}

func TestRecordEngine_OutgoingTombstoneSortIndex(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	engine := newHistoryEngine(t, storages)

	require.NoError(t, storages.History.Save(ctx, "recordAAAAAA",
		mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "u"}), 100))
	require.NoError(t, storages.History.Delete(ctx, "recordAAAAAA", 200))

	outgoing, err := engine.FetchOutgoing(ctx, models.CollectionMetadata{})
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.True(t, outgoing[0].Tombstone)
	assert.Nil(t, outgoing[0].Payload)
	assert.Equal(t, models.TombstoneSortIndex, outgoing[0].SortIndex)
}

func TestRecordEngine_SetUploaded_RejectedStaysScheduled(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	engine := newHistoryEngine(t, storages)

	require.NoError(t, storages.History.Save(ctx, "acceptedAAAA",
		mustJSON(t, models.HistoryRecord{GUID: "acceptedAAAA", URL: "a"}), 100))
	require.NoError(t, storages.History.Save(ctx, "rejectedAAAA",
		mustJSON(t, models.HistoryRecord{GUID: "rejectedAAAA", URL: "r"}), 100))

	outgoing, err := engine.FetchOutgoing(ctx, models.CollectionMetadata{})
	require.NoError(t, err)
	require.Len(t, outgoing, 2)

	err = engine.SetUploaded(ctx, models.UploadResult{
		Accepted:        []string{"acceptedAAAA"},
		Failed:          map[string]string{"rejectedAAAA": "over quota"},
		ServerTimestamp: 5000,
	}, outgoing)
	require.NoError(t, err)

	accepted, err := storages.History.GetLocal(ctx, "acceptedAAAA")
	require.NoError(t, err)
	assert.Equal(t, int64(0), accepted.ChangeCounter)

	rejected, err := storages.History.GetLocal(ctx, "rejectedAAAA")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rejected.ChangeCounter, "rejected record stays scheduled")
}

func TestRecordEngine_Interrupted(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	engine := newHistoryEngine(t, storages)

	storages.Interrupt().Interrupt()
	defer storages.Interrupt().Clear()

	_, err := engine.ApplyIncoming(ctx, []models.StagedRecord{
		{GUID: "recordAAAAAA", Payload: mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "u"})},
	}, models.CollectionMetadata{})
	assert.ErrorIs(t, err, store.ErrInterrupted)
}

func TestRecordEngine_SnapshotLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	records := mock.NewMockRecords(ctrl)
	records.EXPECT().Collection().Return(models.CollectionHistory)
	records.EXPECT().GetAllLocal(gomock.Any()).Return(nil, errors.New("disk on fire"))

	engine := newRecordEngine(records, historyMerger{}, models.TombstoneWins, store.NewInterruptHandle(), logger.Nop())

	_, err := engine.ApplyIncoming(context.Background(), nil, models.CollectionMetadata{})
	assert.ErrorContains(t, err, "disk on fire")
}

func TestRecordEngine_SkipsMalformedPayload(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	engine := newHistoryEngine(t, storages)

	goodBase := mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "u"})
	require.NoError(t, storages.History.ApplyChange(ctx, store.RecordChange{
		GUID:      "recordAAAAAA",
		PutLocal:  &models.LocalRecord{GUID: "recordAAAAAA", Payload: []byte("{broken"), ChangeCounter: 1},
		PutMirror: &models.MirrorRecord{GUID: "recordAAAAAA", Payload: goodBase, ServerModified: 500},
	}))

	healthy := mustJSON(t, models.HistoryRecord{GUID: "recordBBBBBB", URL: "h"})
	report, err := engine.ApplyIncoming(ctx, []models.StagedRecord{
		{GUID: "recordAAAAAA", Payload: mustJSON(t, models.HistoryRecord{GUID: "recordAAAAAA", URL: "u", Title: "x"}), ServerModified: 900},
		{GUID: "recordBBBBBB", Payload: healthy, ServerModified: 900},
	}, models.CollectionMetadata{})
	require.NoError(t, err, "a malformed record must not abort the batch")

	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, []string{"recordAAAAAA"}, report.SkippedGUIDs)
	assert.Equal(t, 1, report.Inserted, "the rest of the batch still reconciles")
}
