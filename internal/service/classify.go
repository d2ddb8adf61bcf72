// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-local-sync/internal/utils"
	"github.com/MKhiriev/go-local-sync/models"
)

// recordCase is the reconciliation decision for one collated triple, derived
// from the presence and equality of its three sides.
type recordCase int

const (
	// caseNoop: nothing incoming and nothing local (mirror-only orphan), or
	// incoming content identical to the mirror with no local edits.
	caseNoop recordCase = iota

	// caseLocalOnly: local changes with nothing new incoming; the record is
	// left for the outgoing planner.
	caseLocalOnly

	// caseRemoteInsert: incoming record with no local copy.
	caseRemoteInsert

	// caseRemoteEdit: incoming change with no competing local edit; the
	// incoming content overwrites the local row. Also chosen when a remote
	// edit races a pending local tombstone: the update proves another
	// device still wants the record, so it is revived with remote content.
	caseRemoteEdit

	// caseThreeWayMerge: both sides changed and the mirror provides the
	// shared ancestor.
	caseThreeWayMerge

	// caseTwoWayMerge: both sides exist but the ancestor is gone (e.g.
	// after a collection reset); fields merge against a zero base.
	caseTwoWayMerge

	// caseRemoteTombstoneNoop: remote deletion of a record this device
	// never had.
	caseRemoteTombstoneNoop

	// caseRemoteDelete: remote deletion of a locally unchanged record, or
	// of one the local side tombstoned itself — agreement, not a conflict.
	caseRemoteDelete

	// caseTombstoneVsEdit: remote deletion of a locally edited record; the
	// collection's tombstone policy decides.
	caseTombstoneVsEdit
)

// classify derives the reconciliation case for one triple.
func classify(t models.RecordTriple) recordCase {
	in := t.Incoming

	if in == nil {
		if t.Local == nil {
			return caseNoop
		}
		return caseLocalOnly
	}

	localChanged := t.Local != nil && (t.Local.ChangeCounter > 0 || t.Local.Deleted ||
		(t.Mirror != nil && !utils.PayloadsEqual(t.Local.Payload, t.Mirror.Payload)))

	if in.Tombstone {
		switch {
		case t.Local == nil:
			return caseRemoteTombstoneNoop
		case t.Local.Deleted:
			// Both sides deleted the record independently. A pending local
			// tombstone is not an edit, so the tombstone policy never gets a
			// say: both rows just go away.
			return caseRemoteDelete
		case localChanged:
			return caseTombstoneVsEdit
		default:
			return caseRemoteDelete
		}
	}

	switch {
	case t.Local == nil:
		return caseRemoteInsert

	case t.Local.Deleted:
		return caseRemoteEdit

	case t.Mirror == nil:
		if utils.PayloadsEqual(t.Local.Payload, in.Payload) {
			// Both sides already agree; adopt the incoming copy as the new
			// shared ancestor.
			return caseRemoteEdit
		}
		return caseTwoWayMerge

	case utils.PayloadsEqual(in.Payload, t.Mirror.Payload):
		// Remotely unchanged (a timestamp-only echo).
		if localChanged {
			return caseLocalOnly
		}
		return caseNoop

	case localChanged:
		return caseThreeWayMerge

	default:
		return caseRemoteEdit
	}
}
