// Package store owns the on-device SQLite database: it opens the file once,
// brings the schema up to date, and hands the live handle to repositories.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/starly/internal/common"
	"github.com/dmitrijs2005/starly/internal/logging"

	_ "modernc.org/sqlite"
)

// Store is the explicitly constructed database owner. Create it at startup
// with New, call Initialize before handing the handle out, and Close it at
// shutdown.
type Store struct {
	dsn    string
	logger logging.Logger

	mu sync.Mutex
	db *sql.DB
}

// New returns an unopened Store for the given database path (or ":memory:").
func New(dsn string, logger logging.Logger) *Store {
	return &Store{dsn: dsn, logger: logger}
}

// Initialize opens or creates the database and migrates the schema. It is
// idempotent: later calls return the same handle without re-running any
// statement. Failures are returned as *common.StoreInitError.
func (s *Store) Initialize(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open("sqlite", dataSource(s.dsn))
	if err != nil {
		return nil, &common.StoreInitError{Path: s.dsn, Err: err}
	}
	// a single connection keeps ":memory:" databases alive and lets the
	// engine serialize every statement
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &common.StoreInitError{Path: s.dsn, Err: fmt.Errorf("ping: %w", err)}
	}

	if err := RunMigrations(ctx, db, s.logger); err != nil {
		_ = db.Close()
		return nil, &common.StoreInitError{Path: s.dsn, Err: err}
	}

	s.logger.Info(ctx, "store ready", "path", s.dsn)
	s.db = db
	return db, nil
}

// DB returns the live handle or nil before Initialize.
func (s *Store) DB() *sql.DB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db
}

// Close releases the handle. Closing an unopened store is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func dataSource(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
