package dbx

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestIsUniqueViolation_FromDriver(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE u (login TEXT UNIQUE NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO u(login) VALUES ('bob')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO u(login) VALUES ('bob')`)
	require.Error(t, err)
	require.True(t, IsUniqueViolation(err))

	_, err = db.Exec(`INSERT INTO u(login) VALUES (NULL)`)
	require.Error(t, err)
	require.False(t, IsUniqueViolation(err), "NOT NULL failure is not a unique violation")
}

func TestIsUniqueViolation_Plain(t *testing.T) {
	require.False(t, IsUniqueViolation(nil))
	require.False(t, IsUniqueViolation(errors.New("disk I/O error")))
	require.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: Account.login")))
}
