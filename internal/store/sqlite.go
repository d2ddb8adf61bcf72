package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-local-sync/internal/config"
	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/migrations"
)

// DB wraps the embedded SQLite connection together with the pieces every
// repository needs: the writer lock, the interrupt handle, and the driver
// error classifier.
//
// SQLite allows many concurrent readers but only one writer; the writer
// mutex makes that rule explicit at the Go level so that at most one sync
// round or application-initiated write proceeds at a time, without relying
// on driver-level busy errors.
type DB struct {
	*sql.DB

	writerMu   sync.Mutex
	interrupt  *InterruptHandle
	classifier *SQLiteErrorClassifier
	logger     *logger.Logger
}

func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// db will be in file
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", buildDSN(cfg))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	db := &DB{
		DB:         conn,
		interrupt:  NewInterruptHandle(),
		classifier: NewSQLiteErrorClassifier(),
		logger:     log,
	}

	return db, nil
}

// buildDSN appends the connection pragmas every store uses: WAL journaling
// so readers never block on the writer, a bounded busy timeout, and enforced
// foreign keys.
func buildDSN(cfg config.DB) string {
	params := url.Values{}
	params.Set("_journal_mode", "WAL")
	params.Set("_busy_timeout", fmt.Sprintf("%d", cfg.BusyTimeout.Milliseconds()))
	params.Set("_foreign_keys", "1")

	return fmt.Sprintf("file:%s?%s", cfg.DSN, params.Encode())
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Interrupt returns the store's shared interrupt handle. Callers on other
// goroutines use it to request cooperative cancellation of in-flight work.
func (db *DB) Interrupt() *InterruptHandle {
	return db.interrupt
}

// AcquireWriter claims the exclusive writer lock without blocking. Returns
// the release func on success or [ErrStoreBusy] when another round or
// application write already holds it — per the engine contract the caller
// retries the whole operation later instead of queueing.
func (db *DB) AcquireWriter() (release func(), err error) {
	if !db.writerMu.TryLock() {
		return nil, ErrStoreBusy
	}
	return db.writerMu.Unlock, nil
}

// InTx runs fn inside a single transaction, committing on nil and rolling
// back on error. The interrupt handle is checked before the transaction
// begins so an interrupted round stops between units of work, never inside
// one.
func (db *DB) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if err := db.interrupt.ErrIfInterrupted(); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, db.classifier.Sentinel(err))
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, db.classifier.Sentinel(err))
	}

	return nil
}
