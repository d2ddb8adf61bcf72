package store

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result type returned by
// [SQLiteErrorClassifier.Classify]. It indicates how a failed database
// operation should be surfaced to the engine.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be
	// retried. This is the default classification for unrecognised errors,
	// constraint violations, and malformed statements.
	NonRetryable ErrorClassification = iota

	// Busy indicates writer-connection contention: another connection holds
	// the lock and the whole round should be retried later. Surfaced as
	// [ErrStoreBusy].
	Busy

	// Interrupted indicates the statement was aborted by an interrupt
	// request. Surfaced as [ErrInterrupted].
	Interrupted

	// Corrupt indicates the database file itself is damaged. Surfaced as
	// [ErrCorruptState] and never retried.
	Corrupt
)

// SQLiteErrorClassifier maps go-sqlite3 driver errors onto the engine's
// error kinds.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify inspects err for a sqlite3.Error and maps its primary result code.
// nil and non-driver errors classify as [NonRetryable].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return NonRetryable
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Busy
	case sqlite3.ErrInterrupt:
		return Interrupted
	case sqlite3.ErrCorrupt, sqlite3.ErrNotADB:
		return Corrupt
	}

	return NonRetryable
}

// Sentinel returns the engine sentinel corresponding to the classification
// of err, or err unchanged when no sentinel applies. Repository methods wrap
// their driver errors through this so callers can match with [errors.Is].
func (c *SQLiteErrorClassifier) Sentinel(err error) error {
	switch c.Classify(err) {
	case Busy:
		return ErrStoreBusy
	case Interrupted:
		return ErrInterrupted
	case Corrupt:
		return ErrCorruptState
	}
	return err
}
