// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LocalRecord is the application's authoritative copy of one record.
// Payload holds the collection-specific JSON document; the store never
// interprets it.
type LocalRecord struct {
	GUID string

	Payload []byte

	// ChangeCounter is incremented on every local mutation and decremented
	// by the exact snapshot value after a successful upload, so edits made
	// concurrently with an upload survive. Zero means "in sync".
	ChangeCounter int64

	// Deleted marks a pending local tombstone. The row stays in the local
	// table until the deletion has been uploaded.
	Deleted bool

	// LocalModified is the wall-clock time of the last local mutation,
	// milliseconds since the epoch. Used by last-writer-wins field merges.
	LocalModified int64
}

// MirrorRecord is the last known-good copy of what the remote service holds
// for one GUID. It has no change counter; it is always overwritten wholesale.
type MirrorRecord struct {
	GUID string

	Payload []byte

	// ServerModified is the server timestamp of the mirrored version.
	ServerModified int64

	// Overridden is set when a merge decided the local copy wins, meaning
	// the mirror no longer reflects what the server should end up holding.
	Overridden bool
}

// StagedRecord is one incoming remote record parked in the staging table for
// the duration of a sync round.
type StagedRecord struct {
	GUID string

	// Payload is nil when Tombstone is set.
	Payload []byte

	Tombstone bool

	ServerModified int64
}

// RecordTriple is the collated three-way view of one GUID across the local,
// mirror, and staging tables. Any of the three sides may be nil.
type RecordTriple struct {
	GUID     string
	Local    *LocalRecord
	Mirror   *MirrorRecord
	Incoming *StagedRecord
}

// IncomingRecord is a remote record as returned by the transport, before it
// is written to the staging table.
type IncomingRecord struct {
	GUID           string `json:"id"`
	Payload        []byte `json:"payload,omitempty"`
	Tombstone      bool   `json:"deleted,omitempty"`
	ServerModified int64  `json:"modified"`
}

// OutgoingRecord is one local record serialized for upload.
type OutgoingRecord struct {
	GUID      string `json:"id"`
	Payload   []byte `json:"payload,omitempty"`
	Tombstone bool   `json:"deleted,omitempty"`

	// SortIndex orders records server-side. Tombstones carry a large value
	// so other clients process deletions first.
	SortIndex int `json:"sortindex"`

	// counterSnapshot is the change counter value captured when the record
	// was planned for upload. Not serialized; consumed by SetUploaded.
	CounterSnapshot int64 `json:"-"`
}

// TombstoneSortIndex is the sort index assigned to outgoing tombstones.
const TombstoneSortIndex = 5_000_000

// DefaultSortIndex is the sort index assigned to ordinary outgoing records.
const DefaultSortIndex = 1

// FetchResponse is the transport's answer to a "fetch since timestamp" call.
type FetchResponse struct {
	Records []IncomingRecord

	// ServerTimestamp is the server clock at response time; it becomes the
	// new high-water mark once the round commits.
	ServerTimestamp int64

	// CollectionID is the identity token of the collection's current
	// incarnation on the server.
	CollectionID string
}

// UploadResult reports the per-record outcome of one batch upload.
type UploadResult struct {
	// Accepted lists GUIDs durably stored by the server.
	Accepted []string

	// Failed maps rejected GUIDs to the server's reason string.
	Failed map[string]string

	// ServerTimestamp is the server clock after the batch was committed.
	ServerTimestamp int64
}

// ReconcileReport summarizes what one apply_incoming pass did.
type ReconcileReport struct {
	Inserted int
	Updated  int
	Merged   int
	Deleted  int

	// Duplicated counts records forked under a new GUID because a field
	// conflict could not be resolved by policy.
	Duplicated int

	// Skipped counts incoming records rejected for structural reasons; the
	// offending GUIDs are listed in SkippedGUIDs.
	Skipped      int
	SkippedGUIDs []string
}

// Add accumulates another report into r.
func (r *ReconcileReport) Add(other ReconcileReport) {
	r.Inserted += other.Inserted
	r.Updated += other.Updated
	r.Merged += other.Merged
	r.Deleted += other.Deleted
	r.Duplicated += other.Duplicated
	r.Skipped += other.Skipped
	r.SkippedGUIDs = append(r.SkippedGUIDs, other.SkippedGUIDs...)
}
