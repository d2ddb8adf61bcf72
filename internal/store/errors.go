package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a query or update targets a record
	// (identified by guid) that does not exist in the table.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrInterrupted is returned when a caller-requested interrupt was
	// observed at a safe point. The store is never left partially written:
	// each unit of work runs inside its own transaction, so an interrupted
	// operation is always safe to retry.
	ErrInterrupted = errors.New("operation interrupted")

	// ErrStoreBusy is returned when the single writer connection is already
	// held by another round or application write. The caller should retry
	// the whole operation later rather than waiting inline.
	ErrStoreBusy = errors.New("store writer is busy")

	// ErrCorruptState is returned when persisted state violates an
	// invariant the engine cannot repair (e.g. a missing bookmark root).
	// It aborts the round and surfaces to the embedding application.
	ErrCorruptState = errors.New("persisted store state is corrupt")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan record row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan record rows")
)
