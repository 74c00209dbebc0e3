package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/starly/internal/dbx"
	"github.com/dmitrijs2005/starly/internal/logging"
	"github.com/dmitrijs2005/starly/internal/store/migrations"
	"github.com/pressly/goose/v3"
)

// column is a FilmEntry column introduced after the first release.
type column struct {
	name string
	decl string
}

// filmColumns lists the additive columns checked on every start. Only
// nullable or defaulted columns belong here.
var filmColumns = []column{
	{name: "comment", decl: "TEXT"},
	{name: "viewedAt", decl: "TEXT"},
	{name: "poster", decl: "TEXT"},
	{name: "year", decl: "TEXT"},
	{name: "toWatch", decl: "INTEGER NOT NULL DEFAULT 0"},
}

// goose keeps its FS, dialect and logger in package globals.
var gooseMu sync.Mutex

// RunMigrations applies the embedded goose migrations and then adds any
// FilmEntry column missing from databases created by earlier releases.
func RunMigrations(ctx context.Context, db *sql.DB, logger logging.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(&gooseLogger{ctx: ctx, l: logger})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return ensureFilmColumns(ctx, db, logger)
}

func ensureFilmColumns(ctx context.Context, db *sql.DB, logger logging.Logger) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		existing, err := tableColumns(ctx, tx, "FilmEntry")
		if err != nil {
			return err
		}

		for _, c := range filmColumns {
			if _, ok := existing[c.name]; ok {
				continue
			}
			stmt := fmt.Sprintf("ALTER TABLE FilmEntry ADD COLUMN %s %s", c.name, c.decl)
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("add column %s: %w", c.name, err)
			}
			logger.Info(ctx, "added column", "table", "FilmEntry", "column", c.name)
		}

		_, err = tx.ExecContext(ctx,
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_filmentry_account_external ON FilmEntry(accountId, externalId)`)
		if err != nil {
			return fmt.Errorf("ensure unique index: %w", err)
		}
		return nil
	})
}

func tableColumns(ctx context.Context, db dbx.DBTX, table string) (map[string]struct{}, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]struct{})
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		cols[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cols, nil
}

// gooseLogger routes goose output through the application logger.
type gooseLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.l.Debug(g.ctx, fmt.Sprintf(format, v...), "component", "goose")
}

func (g *gooseLogger) Fatalf(format string, v ...any) {
	panic(fmt.Sprintf("goose: "+format, v...))
}
