// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// Collection identifies one synchronized record set. The set of collections
// is closed: every engine component switches exhaustively over these values,
// so adding a collection is a compile-visible change.
type Collection string

const (
	// CollectionHistory holds flat visit records keyed by page GUID.
	CollectionHistory Collection = "history"

	// CollectionBookmarks holds the hierarchical bookmark tree.
	CollectionBookmarks Collection = "bookmarks"

	// CollectionMeta holds small key-value metadata records.
	CollectionMeta Collection = "meta"
)

// AllCollections lists every known collection in the order the orchestrator
// syncs them. Bookmarks go last so that history-derived pages referenced by
// fresh bookmarks are already reconciled.
func AllCollections() []Collection {
	return []Collection{CollectionHistory, CollectionMeta, CollectionBookmarks}
}

// ParseCollection converts a wire/config string into a Collection.
// Returns an error for anything outside the closed set.
func ParseCollection(s string) (Collection, error) {
	switch Collection(s) {
	case CollectionHistory, CollectionBookmarks, CollectionMeta:
		return Collection(s), nil
	}
	return "", fmt.Errorf("unknown collection %q", s)
}

// TombstonePolicy decides what happens when a remote tombstone arrives for a
// record that also carries unsynced local edits.
type TombstonePolicy int

const (
	// TombstoneWins honors the remote deletion even if the local copy was
	// edited after the last sync. Used by history and meta.
	TombstoneWins TombstonePolicy = iota

	// TombstoneLoses resurrects the locally-edited record: the local copy is
	// kept, its change counter is bumped so it re-uploads, and the mirror row
	// is dropped. Used by bookmarks, where losing a folder can orphan an
	// entire subtree the user still sees.
	TombstoneLoses
)

// CollectionMetadata is the persisted per-collection sync bookkeeping row.
type CollectionMetadata struct {
	// Collection is the row key (the stable collection name).
	Collection Collection

	// CollectionID is the server-side identity token of the collection's
	// current incarnation. It changes when another device wipes or resets
	// the collection; a mismatch forces a full local reset.
	CollectionID string

	// LastSync is the high-water server timestamp in milliseconds: every
	// remote change at or below it has already been fetched and applied.
	LastSync int64
}

// FirstSync reports whether the collection has never completed a round.
func (m CollectionMetadata) FirstSync() bool {
	return m.CollectionID == "" && m.LastSync == 0
}
