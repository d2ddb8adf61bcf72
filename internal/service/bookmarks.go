// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/internal/store"
	"github.com/MKhiriev/go-local-sync/internal/utils"
	"github.com/MKhiriev/go-local-sync/models"
)

// bookmarkEngine layers the tree rules on top of the flat record engine:
// incoming records are screened against structural invariants first, folder
// deletions cascade to whole subtrees, and after the record-by-record pass
// every folder's sibling positions are renumbered dense.
type bookmarkEngine struct {
	*recordEngine
}

func newBookmarkEngine(records store.Records, interrupt *store.InterruptHandle, log *logger.Logger) *bookmarkEngine {
	return &bookmarkEngine{
		recordEngine: newRecordEngine(records, bookmarkMerger{}, models.TombstoneLoses, interrupt, log),
	}
}

func (e *bookmarkEngine) ApplyIncoming(ctx context.Context, staged []models.StagedRecord, meta models.CollectionMetadata) (models.ReconcileReport, error) {
	var report models.ReconcileReport

	local, err := e.records.GetAllLocal(ctx)
	if err != nil {
		return report, fmt.Errorf("load local snapshot: %w", err)
	}
	mirror, err := e.records.GetAllMirror(ctx)
	if err != nil {
		return report, fmt.Errorf("load mirror snapshot: %w", err)
	}

	tree, err := buildTreeView(local, mirror)
	if err != nil {
		return report, err
	}

	screened, deleted := e.screen(staged, tree, &report)

	// Cascaded subtree deletions are applied directly, outside the flat
	// pass, because a deleted ancestor removes every descendant no matter
	// what the descendant's own change counter or tombstone policy says.
	for _, guid := range deleted {
		if err = e.interrupt.ErrIfInterrupted(); err != nil {
			return report, store.ErrInterrupted
		}
		if err = e.records.ApplyChange(ctx, store.RecordChange{GUID: guid, DeleteLocalRow: true, DeleteMirrorRow: true}); err != nil {
			return report, fmt.Errorf("cascade delete %s: %w", guid, err)
		}
		report.Deleted++
	}

	flat, err := e.recordEngine.ApplyIncoming(ctx, screened, meta)
	if err != nil {
		return report, err
	}
	report.Add(flat)

	if err = e.fixupPositions(ctx, screened); err != nil {
		return report, err
	}

	return report, nil
}

// treeView is the in-memory snapshot the screening pass validates against.
type treeView struct {
	nodes   map[string]models.BookmarkNode
	changed map[string]bool

	// locallyDeleted marks rows with a pending local tombstone. They count
	// as changed everywhere else, but an incoming tombstone for one is
	// agreement on deletion, not a conflict to resurrect.
	locallyDeleted map[string]bool
}

func buildTreeView(local []models.LocalRecord, mirror []models.MirrorRecord) (*treeView, error) {
	mirrorByGUID := make(map[string]models.MirrorRecord, len(mirror))
	for _, m := range mirror {
		mirrorByGUID[m.GUID] = m
	}

	view := &treeView{
		nodes:          make(map[string]models.BookmarkNode, len(local)),
		changed:        make(map[string]bool, len(local)),
		locallyDeleted: make(map[string]bool),
	}

	for _, rec := range local {
		node, err := decodeNode(rec.Payload)
		if err != nil {
			return nil, fmt.Errorf("local record %s: %w", rec.GUID, err)
		}
		view.nodes[rec.GUID] = node
		if rec.Deleted {
			view.locallyDeleted[rec.GUID] = true
		}

		changed := rec.ChangeCounter > 0 || rec.Deleted
		if m, ok := mirrorByGUID[rec.GUID]; ok && !changed {
			changed = !utils.PayloadsEqual(rec.Payload, m.Payload)
		}
		view.changed[rec.GUID] = changed
	}

	if _, ok := view.nodes[models.RootGUID]; !ok {
		return nil, fmt.Errorf("%w: bookmark root is missing", store.ErrCorruptState)
	}

	return view, nil
}

// screen validates the staged batch against the tree invariants. It returns
// the records safe to hand to the flat pass plus the full cascade-closed set
// of GUIDs to delete directly. Violations skip the record and are reported.
func (e *bookmarkEngine) screen(staged []models.StagedRecord, tree *treeView, report *models.ReconcileReport) ([]models.StagedRecord, []string) {
	// Deterministic processing order: server timestamp, then GUID.
	sort.Slice(staged, func(i, j int) bool {
		if staged[i].ServerModified != staged[j].ServerModified {
			return staged[i].ServerModified < staged[j].ServerModified
		}
		return staged[i].GUID < staged[j].GUID
	})

	incoming := make(map[string]*models.BookmarkNode, len(staged))
	tombstoned := make(map[string]bool, len(staged))
	skip := func(guid, reason string) {
		e.logger.Warn().Err(fmt.Errorf("%w: %s", ErrStructuralViolation, reason)).
			Str("guid", guid).Msg("skipping incoming bookmark record")
		report.Skipped++
		report.SkippedGUIDs = append(report.SkippedGUIDs, guid)
	}

	var screened []models.StagedRecord

	for _, rec := range staged {
		if rec.Tombstone {
			if models.IsRoot(rec.GUID) {
				skip(rec.GUID, "tombstone for reserved root")
				continue
			}
			tombstoned[rec.GUID] = true
			screened = append(screened, rec)
			continue
		}

		node, err := decodeNode(rec.Payload)
		if err != nil {
			skip(rec.GUID, "malformed payload")
			continue
		}
		if !node.Kind.Valid() {
			skip(rec.GUID, "unknown node kind")
			continue
		}

		if models.IsRoot(rec.GUID) {
			current := tree.nodes[rec.GUID]
			if node.ParentGUID != current.ParentGUID || node.Title != current.Title || node.Kind != current.Kind {
				skip(rec.GUID, "reserved roots cannot be retitled or reparented")
				continue
			}
			screened = append(screened, rec)
			continue
		}

		incoming[rec.GUID] = &node
		screened = append(screened, rec)
	}

	// Which tombstoned records actually die? A locally edited record is
	// resurrected by policy, so it anchors its subtree. A pending local
	// tombstone agrees with the remote one, so the record dies outright.
	deleted := make(map[string]bool, len(tombstoned))
	for guid := range tombstoned {
		if _, existsLocally := tree.nodes[guid]; !existsLocally {
			// No local row; the flat pass handles any mirror leftover.
			continue
		}
		if tree.changed[guid] && !tree.locallyDeleted[guid] {
			// Resurrected by policy; the subtree survives with it.
			continue
		}
		deleted[guid] = true
	}

	// Cascade: any local node under a deleted ancestor dies too,
	// transitively, edits notwithstanding.
	for {
		grew := false
		for guid, node := range tree.nodes {
			if deleted[guid] || models.IsRoot(guid) {
				continue
			}
			if deleted[node.ParentGUID] {
				deleted[guid] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	// Parent validation for incoming inserts and moves, against the tree as
	// it will look after this batch.
	parentIsFolder := func(guid string) bool {
		if deleted[guid] {
			return false
		}
		if node, ok := incoming[guid]; ok {
			return node.Kind == models.KindFolder
		}
		node, ok := tree.nodes[guid]
		return ok && node.Kind == models.KindFolder
	}
	parentOf := func(guid string) (string, bool) {
		if node, ok := incoming[guid]; ok {
			return node.ParentGUID, true
		}
		node, ok := tree.nodes[guid]
		return node.ParentGUID, ok
	}

	kept := screened[:0]
	for _, rec := range screened {
		node, isNode := incoming[rec.GUID]
		if !isNode {
			kept = append(kept, rec)
			continue
		}

		if !parentIsFolder(node.ParentGUID) {
			skip(rec.GUID, "parent is unknown, deleted, or not a folder")
			delete(incoming, rec.GUID)
			continue
		}

		// Reparenting a folder under its own descendant would cycle.
		if node.Kind == models.KindFolder && wouldCycle(rec.GUID, node.ParentGUID, parentOf, len(tree.nodes)+len(incoming)) {
			skip(rec.GUID, "move would create a cycle")
			delete(incoming, rec.GUID)
			continue
		}

		kept = append(kept, rec)
	}

	// Remove staged tombstones for cascade-deleted records: those rows are
	// deleted directly, and the policy layer must not resurrect them.
	final := kept[:0]
	for _, rec := range kept {
		if rec.Tombstone && deleted[rec.GUID] {
			continue
		}
		final = append(final, rec)
	}

	// The direct-delete list covers every casualty that still has a local
	// row, cascade victims included.
	var toDelete []string
	for guid := range deleted {
		if _, ok := tree.nodes[guid]; ok {
			toDelete = append(toDelete, guid)
		}
	}
	sort.Strings(toDelete)

	return final, toDelete
}

// wouldCycle walks the prospective parent chain of guid looking for guid
// itself. depth bounds the walk against malformed chains.
func wouldCycle(guid, parent string, parentOf func(string) (string, bool), depth int) bool {
	for i := 0; i < depth && parent != ""; i++ {
		if parent == guid {
			return true
		}
		next, ok := parentOf(parent)
		if !ok {
			return false
		}
		parent = next
	}
	return false
}

// fixupPositions renumbers every folder's children to dense 0..n-1. Records
// moved by this batch win position ties over records that merely kept their
// old slot, which is what makes an incoming "move y to 0" land ahead of the
// previous occupant. Rows whose stored position changes are marked changed
// so the normalized order uploads.
func (e *bookmarkEngine) fixupPositions(ctx context.Context, applied []models.StagedRecord) error {
	movedInRound := make(map[string]bool, len(applied))
	for _, rec := range applied {
		if !rec.Tombstone {
			movedInRound[rec.GUID] = true
		}
	}

	local, err := e.records.GetAllLocal(ctx)
	if err != nil {
		return fmt.Errorf("reload local snapshot: %w", err)
	}

	type entry struct {
		rec  models.LocalRecord
		node models.BookmarkNode
	}

	children := make(map[string][]entry)
	for _, rec := range local {
		if rec.Deleted {
			continue
		}
		node, err := decodeNode(rec.Payload)
		if err != nil {
			return fmt.Errorf("local record %s: %w", rec.GUID, err)
		}
		if node.ParentGUID == "" {
			continue
		}
		children[node.ParentGUID] = append(children[node.ParentGUID], entry{rec: rec, node: node})
	}

	parents := make([]string, 0, len(children))
	for parent := range children {
		parents = append(parents, parent)
	}
	sort.Strings(parents)

	now := utils.NowMillis()
	for _, parent := range parents {
		if err = e.interrupt.ErrIfInterrupted(); err != nil {
			return store.ErrInterrupted
		}

		siblings := children[parent]
		sort.SliceStable(siblings, func(i, j int) bool {
			if siblings[i].node.Position != siblings[j].node.Position {
				return siblings[i].node.Position < siblings[j].node.Position
			}
			if movedInRound[siblings[i].rec.GUID] != movedInRound[siblings[j].rec.GUID] {
				return movedInRound[siblings[i].rec.GUID]
			}
			return siblings[i].rec.GUID < siblings[j].rec.GUID
		})

		for idx, sibling := range siblings {
			if sibling.node.Position == idx {
				continue
			}

			sibling.node.Position = idx
			payload, err := json.Marshal(sibling.node)
			if err != nil {
				return fmt.Errorf("encode node %s: %w", sibling.rec.GUID, err)
			}

			err = e.records.ApplyChange(ctx, store.RecordChange{
				GUID: sibling.rec.GUID,
				PutLocal: &models.LocalRecord{
					GUID:          sibling.rec.GUID,
					Payload:       payload,
					ChangeCounter: sibling.rec.ChangeCounter + 1,
					LocalModified: now,
				},
			})
			if err != nil {
				return fmt.Errorf("renumber %s: %w", sibling.rec.GUID, err)
			}
		}
	}

	return nil
}

func decodeNode(payload []byte) (models.BookmarkNode, error) {
	var node models.BookmarkNode
	if err := json.Unmarshal(payload, &node); err != nil {
		return models.BookmarkNode{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return node, nil
}
