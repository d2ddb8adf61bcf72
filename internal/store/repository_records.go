package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/models"
)

// RecordChange is one record's worth of reconciliation outcome, applied to
// the local and mirror tables atomically. Nil pointers mean "leave that side
// alone"; the explicit delete flags remove the row instead.
//
// Each change is applied in its own transaction so an interrupted round
// leaves every already-applied record fully consistent and every pending
// record untouched.
type RecordChange struct {
	GUID string

	PutLocal       *models.LocalRecord
	DeleteLocalRow bool

	PutMirror       *models.MirrorRecord
	DeleteMirrorRow bool
}

// RecordsRepository gives one collection's table triple (local, mirror,
// staging) its data-access methods. The payload column is opaque JSON; all
// interpretation happens in the service layer.
type RecordsRepository struct {
	db         *DB
	collection models.Collection
	queries    recordQueries
	builder    sq.StatementBuilderType
	logger     *logger.Logger
}

func NewRecordsRepository(db *DB, collection models.Collection) (*RecordsRepository, error) {
	tables, err := tablesFor(collection)
	if err != nil {
		return nil, err
	}

	return &RecordsRepository{
		db:         db,
		collection: collection,
		queries:    queriesFor(tables),
		builder:    sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:     db.logger.GetChildLogger("store/" + string(collection)),
	}, nil
}

func (r *RecordsRepository) Collection() models.Collection {
	return r.collection
}

// GetLocal returns the local row for guid, including pending tombstones.
// Returns [ErrRecordNotFound] when no row exists.
func (r *RecordsRepository) GetLocal(ctx context.Context, guid string) (models.LocalRecord, error) {
	row := r.db.QueryRowContext(ctx, r.queries.getLocal, guid)

	var rec models.LocalRecord
	err := row.Scan(&rec.GUID, &rec.Payload, &rec.ChangeCounter, &rec.Deleted, &rec.LocalModified)
	if err == sql.ErrNoRows {
		return models.LocalRecord{}, ErrRecordNotFound
	}
	if err != nil {
		r.logger.Err(err).Str("func", "GetLocal").Str("guid", guid).Msg("error scanning local record")
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classifier.Sentinel(err))
	}

	return rec, nil
}

// GetAllLocal returns every local row. The collator joins this with the
// mirror and staging snapshots in memory; the tables are client-scale, so a
// full scan per round is the simple and correct choice.
func (r *RecordsRepository) GetAllLocal(ctx context.Context) ([]models.LocalRecord, error) {
	rows, err := r.db.QueryContext(ctx, r.queries.getAllLocal)
	if err != nil {
		r.logger.Err(err).Str("func", "GetAllLocal").Msg("error querying local records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classifier.Sentinel(err))
	}
	defer rows.Close()

	var records []models.LocalRecord
	for rows.Next() {
		var rec models.LocalRecord
		if err = rows.Scan(&rec.GUID, &rec.Payload, &rec.ChangeCounter, &rec.Deleted, &rec.LocalModified); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, r.db.classifier.Sentinel(err))
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *RecordsRepository) GetAllMirror(ctx context.Context) ([]models.MirrorRecord, error) {
	rows, err := r.db.QueryContext(ctx, r.queries.getAllMirror)
	if err != nil {
		r.logger.Err(err).Str("func", "GetAllMirror").Msg("error querying mirror records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classifier.Sentinel(err))
	}
	defer rows.Close()

	var records []models.MirrorRecord
	for rows.Next() {
		var rec models.MirrorRecord
		if err = rows.Scan(&rec.GUID, &rec.Payload, &rec.ServerModified, &rec.Overridden); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, r.db.classifier.Sentinel(err))
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *RecordsRepository) GetAllStaged(ctx context.Context) ([]models.StagedRecord, error) {
	rows, err := r.db.QueryContext(ctx, r.queries.getAllStaged)
	if err != nil {
		r.logger.Err(err).Str("func", "GetAllStaged").Msg("error querying staged records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classifier.Sentinel(err))
	}
	defer rows.Close()

	var records []models.StagedRecord
	for rows.Next() {
		var rec models.StagedRecord
		if err = rows.Scan(&rec.GUID, &rec.Payload, &rec.Tombstone, &rec.ServerModified); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, r.db.classifier.Sentinel(err))
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Save writes an application-initiated create or update: the payload is
// replaced wholesale, the change counter is bumped by one (starting at one
// for a new row), and a pending tombstone is revived.
func (r *RecordsRepository) Save(ctx context.Context, guid string, payload []byte, modified int64) error {
	_, err := r.db.ExecContext(ctx, r.queries.saveLocal, guid, payload, modified)
	if err != nil {
		r.logger.Err(err).Str("func", "Save").Str("guid", guid).Msg("error saving local record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
	}

	return nil
}

// Delete marks the record as a pending tombstone and bumps its counter. The
// row stays in the table until the deletion is uploaded. Returns
// [ErrRecordNotFound] if no such record exists.
func (r *RecordsRepository) Delete(ctx context.Context, guid string, modified int64) error {
	res, err := r.db.ExecContext(ctx, r.queries.markLocalDeleted, modified, guid)
	if err != nil {
		r.logger.Err(err).Str("func", "Delete").Str("guid", guid).Msg("error deleting local record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// StageIncoming parks a fetched batch in the staging table, replacing any
// earlier staged version of the same guid. Runs in one transaction: either
// the whole batch is staged or none of it is.
func (r *RecordsRepository) StageIncoming(ctx context.Context, incoming []models.IncomingRecord) error {
	if len(incoming) == 0 {
		return nil
	}

	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, r.queries.insertStaged)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, r.db.classifier.Sentinel(err))
		}
		defer stmt.Close()

		for _, rec := range incoming {
			if _, err = stmt.ExecContext(ctx, rec.GUID, rec.Payload, rec.Tombstone, rec.ServerModified); err != nil {
				r.logger.Err(err).Str("func", "StageIncoming").Str("guid", rec.GUID).Msg("error staging incoming record")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
			}
		}

		return nil
	})
}

// ClearStaging empties the staging table after a round commits (or before a
// fresh fetch repopulates it).
func (r *RecordsRepository) ClearStaging(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.queries.clearStaging); err != nil {
		r.logger.Err(err).Str("func", "ClearStaging").Msg("error clearing staging table")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
	}

	return nil
}

// ApplyChange writes one reconciliation outcome to the local and mirror
// tables in a single transaction.
func (r *RecordsRepository) ApplyChange(ctx context.Context, change RecordChange) error {
	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		switch {
		case change.PutLocal != nil:
			rec := change.PutLocal
			_, err := tx.ExecContext(ctx, r.queries.upsertLocal,
				rec.GUID, rec.Payload, rec.ChangeCounter, rec.Deleted, rec.LocalModified)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
			}
		case change.DeleteLocalRow:
			if _, err := tx.ExecContext(ctx, r.queries.deleteLocal, change.GUID); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
			}
		}

		switch {
		case change.PutMirror != nil:
			rec := change.PutMirror
			_, err := tx.ExecContext(ctx, r.queries.upsertMirror,
				rec.GUID, rec.Payload, rec.ServerModified, rec.Overridden)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
			}
		case change.DeleteMirrorRow:
			if _, err := tx.ExecContext(ctx, r.queries.deleteMirror, change.GUID); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
			}
		}

		return nil
	})
}

// ListChanged returns the local rows with pending outgoing work: a positive
// change counter or a pending tombstone.
func (r *RecordsRepository) ListChanged(ctx context.Context) ([]models.LocalRecord, error) {
	tables, _ := tablesFor(r.collection)
	query, args, err := r.builder.
		Select("guid", "payload", "change_counter", "is_deleted", "local_modified").
		From(tables.local).
		Where(sq.Or{
			sq.Gt{"change_counter": 0},
			sq.Eq{"is_deleted": 1},
		}).
		OrderBy("guid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "ListChanged").Msg("error querying changed records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classifier.Sentinel(err))
	}
	defer rows.Close()

	var records []models.LocalRecord
	for rows.Next() {
		var rec models.LocalRecord
		if err = rows.Scan(&rec.GUID, &rec.Payload, &rec.ChangeCounter, &rec.Deleted, &rec.LocalModified); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, r.db.classifier.Sentinel(err))
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// SetUploaded commits the accepted half of an upload: every accepted
// record's counter drops by the snapshot taken at planning time (never below
// zero, so a concurrent edit keeps the record dirty), mirrors refresh to the
// uploaded payload, and clean uploaded tombstones vanish from both tables.
//
// Runs in one transaction. Records the server rejected are untouched and
// stay scheduled for the next round.
func (r *RecordsRepository) SetUploaded(ctx context.Context, serverTimestamp int64, accepted []models.OutgoingRecord) error {
	if len(accepted) == 0 {
		return nil
	}

	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		for _, rec := range accepted {
			if _, err := tx.ExecContext(ctx, r.queries.decrementCounter, rec.CounterSnapshot, rec.GUID); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
			}

			if rec.Tombstone {
				if _, err := tx.ExecContext(ctx, r.queries.deleteLocalIfClean, rec.GUID); err != nil {
					return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
				}
				if _, err := tx.ExecContext(ctx, r.queries.deleteMirror, rec.GUID); err != nil {
					return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
				}
				continue
			}

			_, err := tx.ExecContext(ctx, r.queries.upsertMirror, rec.GUID, rec.Payload, serverTimestamp, false)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
			}
		}

		return nil
	})
}

// ResetSyncState discards everything derived from the remote collection's
// previous incarnation: the mirror, the staging table, and the idea that any
// local record has ever been uploaded. Local data survives untouched and is
// marked changed so the next round re-reconciles all of it against the new
// incarnation.
func (r *RecordsRepository) ResetSyncState(ctx context.Context) error {
	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		for _, query := range []string{r.queries.clearMirror, r.queries.clearStaging, r.queries.markAllChanged} {
			if _, err := tx.ExecContext(ctx, query); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifier.Sentinel(err))
			}
		}

		return nil
	})
}
