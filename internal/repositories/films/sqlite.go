package films

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/starly/internal/common"
	"github.com/dmitrijs2005/starly/internal/dbx"
	"github.com/dmitrijs2005/starly/internal/models"
	"github.com/jonboulle/clockwork"
)

const entryColumns = `id, accountId, externalId, title, rating, comment, viewedAt, poster, year, toWatch`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db    dbx.DBTX
	clock clockwork.Clock
}

// NewSQLiteRepository returns a repository bound to db. clock stamps viewedAt.
func NewSQLiteRepository(db dbx.DBTX, clock clockwork.Clock) *SQLiteRepository {
	return &SQLiteRepository{db: db, clock: clock}
}

// Save normalizes in, decides the viewedAt stamp from the current row and
// upserts on (accountId, externalId).
//
// viewedAt is cleared for to-watch entries and for a ToWatch -> Unrated
// toggle. Every other save stamps it with the current time.
func (r *SQLiteRepository) Save(ctx context.Context, accountID int64, in models.FilmInput) (models.SaveResult, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrValidation, err)
	}

	exists, wasToWatch, err := r.lookupState(ctx, accountID, in.ExternalID)
	if err != nil {
		return 0, common.NewRepositoryError("look up film entry", err)
	}

	var viewedAt sql.NullString
	if !in.ToWatch && !(in.Rating == nil && exists && wasToWatch) {
		viewedAt = sql.NullString{String: r.clock.Now().UTC().Format(models.ViewedAtLayout), Valid: true}
	}

	query := `INSERT INTO FilmEntry (accountId, externalId, title, rating, comment, viewedAt, poster, year, toWatch)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(accountId, externalId) DO UPDATE SET title = excluded.title,
				rating = excluded.rating,
				comment = excluded.comment,
				viewedAt = excluded.viewedAt,
				poster = excluded.poster,
				year = excluded.year,
				toWatch = excluded.toWatch
	`
	_, err = r.db.ExecContext(ctx, query,
		accountID, in.ExternalID, in.Title, nullRating(in.Rating), in.Comment, viewedAt, in.Poster, in.Year, in.ToWatch)
	if err != nil {
		return 0, common.NewRepositoryError("upsert film entry", err)
	}

	if exists {
		return models.SaveUpdated, nil
	}
	return models.SaveInserted, nil
}

func (r *SQLiteRepository) lookupState(ctx context.Context, accountID int64, externalID string) (exists, toWatch bool, err error) {
	query := `SELECT COALESCE(toWatch, 0) FROM FilmEntry WHERE accountId = ? AND externalId = ?`

	var flag int
	err = r.db.QueryRowContext(ctx, query, accountID, externalID).Scan(&flag)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return true, flag != 0, nil
}

// GetWatched lists entries whose toWatch is 0 or NULL. Entries without a
// viewedAt sort after the dated ones.
func (r *SQLiteRepository) GetWatched(ctx context.Context, accountID int64) ([]models.FilmEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM FilmEntry
		WHERE accountId = ? AND (toWatch = 0 OR toWatch IS NULL)
		ORDER BY viewedAt DESC, id DESC`

	list, err := r.list(ctx, query, accountID)
	if err != nil {
		return nil, common.NewRepositoryError("select watched films", err)
	}
	return list, nil
}

// GetWatchlist lists entries with toWatch set, ordered like GetWatched.
func (r *SQLiteRepository) GetWatchlist(ctx context.Context, accountID int64) ([]models.FilmEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM FilmEntry
		WHERE accountId = ? AND toWatch = 1
		ORDER BY viewedAt DESC, id DESC`

	list, err := r.list(ctx, query, accountID)
	if err != nil {
		return nil, common.NewRepositoryError("select watchlist", err)
	}
	return list, nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.FilmEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.FilmEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByID removes the row with id. Zero affected rows is fine.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM FilmEntry WHERE id = ?`, id); err != nil {
		return common.NewRepositoryError("delete film entry", err)
	}
	return nil
}

// GetStats only counts entries that are watched and rated. The average is
// rounded to two decimals and is 0 for an empty set.
func (r *SQLiteRepository) GetStats(ctx context.Context, accountID int64) (models.Stats, error) {
	query := `SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM FilmEntry
		WHERE accountId = ? AND rating IS NOT NULL AND (toWatch = 0 OR toWatch IS NULL)`

	var (
		count int
		avg   float64
	)
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&count, &avg); err != nil {
		return models.Stats{}, common.NewRepositoryError("compute film stats", err)
	}

	return models.Stats{TotalFilms: count, Average: math.Round(avg*100) / 100}, nil
}

func (r *SQLiteRepository) GetByExternalID(ctx context.Context, accountID int64, externalID string) (*models.FilmEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM FilmEntry WHERE accountId = ? AND externalId = ?`
	return r.one(ctx, "get film entry", query, accountID, externalID)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, accountID, id int64) (*models.FilmEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM FilmEntry WHERE accountId = ? AND id = ?`
	return r.one(ctx, "get film entry", query, accountID, id)
}

func (r *SQLiteRepository) one(ctx context.Context, op, query string, args ...any) (*models.FilmEntry, error) {
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.NewRepositoryError(op, err)
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.FilmEntry, error) {
	var (
		e        models.FilmEntry
		rating   sql.NullInt64
		comment  sql.NullString
		viewedAt sql.NullString
		poster   sql.NullString
		year     sql.NullString
		toWatch  sql.NullInt64
	)
	if err := s.Scan(&e.ID, &e.AccountID, &e.ExternalID, &e.Title,
		&rating, &comment, &viewedAt, &poster, &year, &toWatch); err != nil {
		return nil, err
	}

	if rating.Valid {
		e.Rating = models.Rating(int(rating.Int64))
	}
	if comment.Valid {
		c := comment.String
		e.Comment = &c
	}
	if viewedAt.Valid && viewedAt.String != "" {
		ts, err := time.Parse(models.ViewedAtLayout, viewedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse viewedAt %q: %w", viewedAt.String, err)
		}
		e.ViewedAt = &ts
	}
	e.Poster = poster.String
	e.Year = year.String
	e.ToWatch = toWatch.Valid && toWatch.Int64 != 0
	return &e, nil
}

func nullRating(r *int) sql.NullInt64 {
	if r == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*r), Valid: true}
}
