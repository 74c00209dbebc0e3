package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/starly/internal/common"
	"github.com/dmitrijs2005/starly/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func columnNames(t *testing.T, db *sql.DB, table string) map[string]struct{} {
	t.Helper()
	cols, err := tableColumns(context.Background(), db, table)
	require.NoError(t, err)
	return cols
}

func TestInitialize_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	s := New(filepath.Join(t.TempDir(), "films.db"), logging.Discard())
	t.Cleanup(func() { _ = s.Close() })

	db, err := s.Initialize(ctx)
	require.NoError(t, err)

	assert.True(t, tableExists(t, db, "Account"))
	assert.True(t, tableExists(t, db, "FilmEntry"))
	assert.True(t, tableExists(t, db, "goose_db_version"))

	cols := columnNames(t, db, "FilmEntry")
	for _, c := range []string{"id", "accountId", "externalId", "title", "rating", "comment", "viewedAt", "poster", "year", "toWatch"} {
		assert.Contains(t, cols, c)
	}
}

func TestInitialize_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New(":memory:", logging.Discard())
	t.Cleanup(func() { _ = s.Close() })

	db1, err := s.Initialize(ctx)
	require.NoError(t, err)

	_, err = db1.ExecContext(ctx, `INSERT INTO Account(name, login, password) VALUES ('A', 'a', 'x')`)
	require.NoError(t, err)

	db2, err := s.Initialize(ctx)
	require.NoError(t, err)
	assert.Same(t, db1, db2)
	assert.Same(t, db1, s.DB())

	var n int
	require.NoError(t, db2.QueryRowContext(ctx, `SELECT COUNT(*) FROM Account`).Scan(&n))
	assert.Equal(t, 1, n, "second Initialize must not reset data")
}

func TestInitialize_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "films.db")

	s := New(path, logging.Discard())
	db, err := s.Initialize(ctx)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO Account(name, login, password) VALUES ('A', 'a', 'x')`)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2 := New(path, logging.Discard())
	t.Cleanup(func() { _ = s2.Close() })
	db, err = s2.Initialize(ctx)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Account`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestInitialize_FailsWithStoreInitError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "films.db")
	s := New(path, logging.Discard())

	_, err := s.Initialize(context.Background())
	require.Error(t, err)

	var initErr *common.StoreInitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, path, initErr.Path)
	assert.Nil(t, s.DB())
}

func TestInitialize_AddsMissingColumnsToLegacyTable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "legacy.db")

	legacy, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = legacy.Exec(`
CREATE TABLE Account (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  login TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL
);
CREATE TABLE FilmEntry (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  accountId INTEGER NOT NULL,
  externalId TEXT NOT NULL,
  title TEXT NOT NULL,
  rating INTEGER
);
INSERT INTO Account(name, login, password) VALUES ('Old', 'old', 'x');
INSERT INTO FilmEntry(accountId, externalId, title, rating) VALUES (1, 'tt001', 'X', 7);
`)
	require.NoError(t, err)
	require.NoError(t, legacy.Close())

	s := New(path, logging.Discard())
	t.Cleanup(func() { _ = s.Close() })
	db, err := s.Initialize(ctx)
	require.NoError(t, err)

	cols := columnNames(t, db, "FilmEntry")
	for _, c := range filmColumns {
		assert.Contains(t, cols, c.name)
	}

	var (
		rating  int
		toWatch int
		comment sql.NullString
	)
	err = db.QueryRowContext(ctx, `SELECT rating, toWatch, comment FROM FilmEntry WHERE externalId='tt001'`).
		Scan(&rating, &toWatch, &comment)
	require.NoError(t, err)
	assert.Equal(t, 7, rating, "existing data must survive")
	assert.Equal(t, 0, toWatch)
	assert.False(t, comment.Valid)

	_, err = db.ExecContext(ctx, `INSERT INTO FilmEntry(accountId, externalId, title) VALUES (1, 'tt001', 'X')`)
	require.Error(t, err, "unique (accountId, externalId) must be enforced after migration")
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(ctx, db, logging.Discard()))
	require.NoError(t, RunMigrations(ctx, db, logging.Discard()))

	assert.True(t, tableExists(t, db, "FilmEntry"))
}

func TestClose_Unopened(t *testing.T) {
	s := New(":memory:", logging.Discard())
	assert.NoError(t, s.Close())
}

func TestDataSource(t *testing.T) {
	assert.Equal(t, "films.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dataSource("films.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dataSource("file:x?mode=memory"))
}
