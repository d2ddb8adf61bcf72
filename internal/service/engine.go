// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/internal/store"
	"github.com/MKhiriev/go-local-sync/internal/utils"
	"github.com/MKhiriev/go-local-sync/models"
)

// recordEngine reconciles one flat collection (history, meta). Every triple
// is classified, planned, and applied in its own transaction, so an
// interrupted round keeps all completed records and loses none.
type recordEngine struct {
	records   store.Records
	merger    payloadMerger
	policy    models.TombstonePolicy
	guids     *utils.GUIDGenerator
	interrupt *store.InterruptHandle
	logger    *logger.Logger
}

func newRecordEngine(records store.Records, merger payloadMerger, policy models.TombstonePolicy, interrupt *store.InterruptHandle, log *logger.Logger) *recordEngine {
	return &recordEngine{
		records:   records,
		merger:    merger,
		policy:    policy,
		guids:     utils.NewGUIDGenerator(),
		interrupt: interrupt,
		logger:    log.GetChildLogger("engine/" + string(records.Collection())),
	}
}

func (e *recordEngine) CollectionName() string {
	return string(e.records.Collection())
}

func (e *recordEngine) ApplyIncoming(ctx context.Context, staged []models.StagedRecord, meta models.CollectionMetadata) (models.ReconcileReport, error) {
	var report models.ReconcileReport

	local, err := e.records.GetAllLocal(ctx)
	if err != nil {
		return report, fmt.Errorf("load local snapshot: %w", err)
	}
	mirror, err := e.records.GetAllMirror(ctx)
	if err != nil {
		return report, fmt.Errorf("load mirror snapshot: %w", err)
	}

	for _, triple := range collate(local, mirror, staged) {
		if err = e.interrupt.ErrIfInterrupted(); err != nil {
			return report, store.ErrInterrupted
		}

		delta, err := e.applyTriple(ctx, triple)
		if err != nil {
			return report, fmt.Errorf("apply record %s: %w", triple.GUID, err)
		}
		report.Add(delta)
	}

	return report, nil
}

// applyTriple plans and applies the outcome for one collated record.
// Malformed payloads skip the record and report it; everything else either
// applies or fails the round.
func (e *recordEngine) applyTriple(ctx context.Context, t models.RecordTriple) (models.ReconcileReport, error) {
	var delta models.ReconcileReport
	now := utils.NowMillis()

	switch classify(t) {
	case caseNoop, caseLocalOnly:
		// Nothing incoming to apply; local changes wait for the planner.

	case caseRemoteTombstoneNoop:
		if t.Mirror == nil {
			break
		}
		// The mirror row is all that is left; drop it with the tombstone.
		if err := e.records.ApplyChange(ctx, store.RecordChange{GUID: t.GUID, DeleteMirrorRow: true}); err != nil {
			return delta, err
		}

	case caseRemoteInsert:
		if err := e.records.ApplyChange(ctx, adoptIncoming(t.GUID, t.Incoming, now)); err != nil {
			return delta, err
		}
		delta.Inserted++

	case caseRemoteEdit:
		if err := e.records.ApplyChange(ctx, adoptIncoming(t.GUID, t.Incoming, now)); err != nil {
			return delta, err
		}
		delta.Updated++

	case caseRemoteDelete:
		if err := e.records.ApplyChange(ctx, store.RecordChange{GUID: t.GUID, DeleteLocalRow: true, DeleteMirrorRow: true}); err != nil {
			return delta, err
		}
		delta.Deleted++

	case caseTombstoneVsEdit:
		return e.applyTombstoneVsEdit(ctx, t, now)

	case caseThreeWayMerge, caseTwoWayMerge:
		return e.applyMerge(ctx, t, now)
	}

	return delta, nil
}

func (e *recordEngine) applyTombstoneVsEdit(ctx context.Context, t models.RecordTriple, now int64) (models.ReconcileReport, error) {
	var delta models.ReconcileReport

	if e.policy == models.TombstoneWins {
		if err := e.records.ApplyChange(ctx, store.RecordChange{GUID: t.GUID, DeleteLocalRow: true, DeleteMirrorRow: true}); err != nil {
			return delta, err
		}
		delta.Deleted++
		return delta, nil
	}

	// Resurrect: the local copy survives with its edits, scheduled for
	// upload. The mirror row goes away because the shared ancestor no
	// longer exists on the server.
	revived := *t.Local
	revived.Deleted = false
	revived.LocalModified = now
	if revived.ChangeCounter < 1 {
		revived.ChangeCounter = 1
	}

	err := e.records.ApplyChange(ctx, store.RecordChange{
		GUID:            t.GUID,
		PutLocal:        &revived,
		DeleteMirrorRow: true,
	})
	if err != nil {
		return delta, err
	}
	delta.Updated++
	return delta, nil
}

func (e *recordEngine) applyMerge(ctx context.Context, t models.RecordTriple, now int64) (models.ReconcileReport, error) {
	var delta models.ReconcileReport

	var base []byte
	if t.Mirror != nil {
		base = t.Mirror.Payload
	}

	merged, err := e.merger.merge(t.Local.Payload, base, t.Incoming.Payload)
	switch {
	case errors.Is(err, errUnmergeable):
		return e.applyFork(ctx, t, now)

	case errors.Is(err, ErrInvalidPayload):
		e.logger.Warn().Str("guid", t.GUID).Err(err).Msg("skipping record with malformed payload")
		delta.Skipped++
		delta.SkippedGUIDs = append(delta.SkippedGUIDs, t.GUID)
		return delta, nil

	case err != nil:
		return delta, err
	}

	change := store.RecordChange{GUID: t.GUID}
	switch {
	case utils.PayloadsEqual(merged, t.Incoming.Payload):
		// The merge resolved to the incoming side; the record is in sync.
		change = adoptIncoming(t.GUID, t.Incoming, now)

	case utils.PayloadsEqual(merged, t.Local.Payload):
		// Local wins; the mirror no longer reflects what the server should
		// hold, so it is flagged overridden until the upload refreshes it.
		change.PutMirror = &models.MirrorRecord{
			GUID:           t.GUID,
			Payload:        t.Incoming.Payload,
			ServerModified: t.Incoming.ServerModified,
			Overridden:     true,
		}

	default:
		change.PutLocal = &models.LocalRecord{
			GUID:          t.GUID,
			Payload:       merged,
			ChangeCounter: t.Local.ChangeCounter + 1,
			LocalModified: now,
		}
		change.PutMirror = &models.MirrorRecord{
			GUID:           t.GUID,
			Payload:        t.Incoming.Payload,
			ServerModified: t.Incoming.ServerModified,
			Overridden:     true,
		}
	}

	if err = e.records.ApplyChange(ctx, change); err != nil {
		return delta, err
	}
	delta.Merged++
	return delta, nil
}

// applyFork handles an unmergeable field conflict: the local version is
// duplicated under a fresh GUID (counter 1, so it uploads next round) and
// the original GUID adopts the incoming version. The duplicate is written
// first so an interrupt between the two transactions can at worst leave an
// extra copy, never lose data.
func (e *recordEngine) applyFork(ctx context.Context, t models.RecordTriple, now int64) (models.ReconcileReport, error) {
	var delta models.ReconcileReport

	forkGUID := e.guids.Generate()
	forkPayload, err := rewritePayloadGUID(t.Local.Payload, forkGUID)
	if err != nil {
		e.logger.Warn().Str("guid", t.GUID).Err(err).Msg("skipping unmergeable record with malformed payload")
		delta.Skipped++
		delta.SkippedGUIDs = append(delta.SkippedGUIDs, t.GUID)
		return delta, nil
	}

	err = e.records.ApplyChange(ctx, store.RecordChange{
		GUID: forkGUID,
		PutLocal: &models.LocalRecord{
			GUID:          forkGUID,
			Payload:       forkPayload,
			ChangeCounter: 1,
			LocalModified: now,
		},
	})
	if err != nil {
		return delta, err
	}

	if err = e.records.ApplyChange(ctx, adoptIncoming(t.GUID, t.Incoming, now)); err != nil {
		return delta, err
	}

	e.logger.Info().Str("guid", t.GUID).Str("fork", forkGUID).Msg("forked unmergeable record")
	delta.Duplicated++
	return delta, nil
}

// FetchOutgoing serializes every dirty local row, snapshotting its counter.
func (e *recordEngine) FetchOutgoing(ctx context.Context, meta models.CollectionMetadata) ([]models.OutgoingRecord, error) {
	changed, err := e.records.ListChanged(ctx)
	if err != nil {
		return nil, fmt.Errorf("list changed records: %w", err)
	}

	outgoing := make([]models.OutgoingRecord, 0, len(changed))
	for _, rec := range changed {
		out := models.OutgoingRecord{
			GUID:            rec.GUID,
			SortIndex:       models.DefaultSortIndex,
			CounterSnapshot: rec.ChangeCounter,
		}
		if rec.Deleted {
			out.Tombstone = true
			out.SortIndex = models.TombstoneSortIndex
		} else {
			out.Payload = rec.Payload
		}
		outgoing = append(outgoing, out)
	}

	return outgoing, nil
}

// SetUploaded commits the accepted subset of an upload batch. Rejected
// records keep their counters and stay scheduled for the next round.
func (e *recordEngine) SetUploaded(ctx context.Context, result models.UploadResult, sent []models.OutgoingRecord) error {
	acceptedSet := make(map[string]struct{}, len(result.Accepted))
	for _, guid := range result.Accepted {
		acceptedSet[guid] = struct{}{}
	}

	accepted := make([]models.OutgoingRecord, 0, len(result.Accepted))
	for _, rec := range sent {
		if _, ok := acceptedSet[rec.GUID]; ok {
			accepted = append(accepted, rec)
			continue
		}
		if reason, failed := result.Failed[rec.GUID]; failed {
			e.logger.Warn().Str("guid", rec.GUID).Str("reason", reason).Msg("server rejected uploaded record")
		}
	}

	return e.records.SetUploaded(ctx, result.ServerTimestamp, accepted)
}

// adoptIncoming is the "remote wins" outcome: the local row takes the
// incoming content with a zero counter and the mirror becomes the new
// shared ancestor.
func adoptIncoming(guid string, in *models.StagedRecord, now int64) store.RecordChange {
	return store.RecordChange{
		GUID: guid,
		PutLocal: &models.LocalRecord{
			GUID:          guid,
			Payload:       in.Payload,
			ChangeCounter: 0,
			LocalModified: now,
		},
		PutMirror: &models.MirrorRecord{
			GUID:           guid,
			Payload:        in.Payload,
			ServerModified: in.ServerModified,
		},
	}
}

// rewritePayloadGUID re-stamps the embedded record id inside a payload
// document, used when forking a record under a new GUID.
func rewritePayloadGUID(payload []byte, guid string) ([]byte, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	id, err := json.Marshal(guid)
	if err != nil {
		return nil, err
	}
	doc["id"] = id

	return json.Marshal(doc)
}
