// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	"github.com/MKhiriev/go-local-sync/models"
)

// tableSet names the (local, mirror, staging) table triple of one
// collection. Table names come from the closed collection set and are
// interpolated into query templates at repository construction time; they
// never carry user input.
type tableSet struct {
	local   string
	mirror  string
	staging string
}

func tablesFor(c models.Collection) (tableSet, error) {
	switch c {
	case models.CollectionHistory:
		return tableSet{"history_local", "history_mirror", "history_staging"}, nil
	case models.CollectionBookmarks:
		return tableSet{"bookmarks_local", "bookmarks_mirror", "bookmarks_staging"}, nil
	case models.CollectionMeta:
		return tableSet{"meta_local", "meta_mirror", "meta_staging"}, nil
	}
	return tableSet{}, fmt.Errorf("unknown collection %q", c)
}

// recordQueries holds the per-collection SQL, rendered once from the
// templates below.
type recordQueries struct {
	getLocal           string
	getAllLocal        string
	upsertLocal        string
	saveLocal          string
	markLocalDeleted   string
	deleteLocal        string
	deleteLocalIfClean string
	decrementCounter   string

	getAllMirror string
	upsertMirror string
	deleteMirror string

	insertStaged string
	getAllStaged string
	clearStaging string

	clearMirror    string
	markAllChanged string
}

func queriesFor(t tableSet) recordQueries {
	return recordQueries{
		getLocal: fmt.Sprintf(`
			SELECT guid, payload, change_counter, is_deleted, local_modified
			FROM %s
			WHERE guid = ?;`, t.local),

		getAllLocal: fmt.Sprintf(`
			SELECT guid, payload, change_counter, is_deleted, local_modified
			FROM %s;`, t.local),

		upsertLocal: fmt.Sprintf(`
			INSERT INTO %s (guid, payload, change_counter, is_deleted, local_modified)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(guid) DO UPDATE SET
				payload        = excluded.payload,
				change_counter = excluded.change_counter,
				is_deleted     = excluded.is_deleted,
				local_modified = excluded.local_modified;`, t.local),

		saveLocal: fmt.Sprintf(`
			INSERT INTO %s (guid, payload, change_counter, is_deleted, local_modified)
			VALUES (?, ?, 1, 0, ?)
			ON CONFLICT(guid) DO UPDATE SET
				payload        = excluded.payload,
				change_counter = %s.change_counter + 1,
				is_deleted     = 0,
				local_modified = excluded.local_modified;`, t.local, t.local),

		markLocalDeleted: fmt.Sprintf(`
			UPDATE %s SET
				is_deleted     = 1,
				change_counter = change_counter + 1,
				local_modified = ?
			WHERE guid = ?;`, t.local),

		deleteLocal: fmt.Sprintf(`
			DELETE FROM %s WHERE guid = ?;`, t.local),

		// Drops an uploaded tombstone, but only if no edit raced the upload.
		deleteLocalIfClean: fmt.Sprintf(`
			DELETE FROM %s
			WHERE guid = ? AND is_deleted = 1 AND change_counter <= 0;`, t.local),

		decrementCounter: fmt.Sprintf(`
			UPDATE %s SET
				change_counter = MAX(0, change_counter - ?)
			WHERE guid = ?;`, t.local),

		getAllMirror: fmt.Sprintf(`
			SELECT guid, payload, server_modified, is_overridden
			FROM %s;`, t.mirror),

		upsertMirror: fmt.Sprintf(`
			INSERT INTO %s (guid, payload, server_modified, is_overridden)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(guid) DO UPDATE SET
				payload         = excluded.payload,
				server_modified = excluded.server_modified,
				is_overridden   = excluded.is_overridden;`, t.mirror),

		deleteMirror: fmt.Sprintf(`
			DELETE FROM %s WHERE guid = ?;`, t.mirror),

		insertStaged: fmt.Sprintf(`
			INSERT OR REPLACE INTO %s (guid, payload, is_tombstone, server_modified)
			VALUES (?, ?, ?, ?);`, t.staging),

		getAllStaged: fmt.Sprintf(`
			SELECT guid, payload, is_tombstone, server_modified
			FROM %s;`, t.staging),

		clearStaging: fmt.Sprintf(`
			DELETE FROM %s;`, t.staging),

		clearMirror: fmt.Sprintf(`
			DELETE FROM %s;`, t.mirror),

		// Records already marked changed keep their counter; synced rows
		// become "never synced" so the next round re-reconciles everything.
		markAllChanged: fmt.Sprintf(`
			UPDATE %s SET
				change_counter = CASE WHEN change_counter > 0 THEN change_counter ELSE 1 END;`, t.local),
	}
}

const (
	getCollectionMeta = `
		SELECT collection, collection_id, last_sync
		FROM collection_meta
		WHERE collection = ?;`

	upsertCollectionMeta = `
		INSERT INTO collection_meta (collection, collection_id, last_sync)
		VALUES (?, ?, ?)
		ON CONFLICT(collection) DO UPDATE SET
			collection_id = excluded.collection_id,
			last_sync     = excluded.last_sync;`

	deleteCollectionMeta = `
		DELETE FROM collection_meta WHERE collection = ?;`
)
