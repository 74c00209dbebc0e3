package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/starly/internal/common"
	"github.com/dmitrijs2005/starly/internal/logging"
	"github.com/dmitrijs2005/starly/internal/models"
	"github.com/dmitrijs2005/starly/internal/repositories/films"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	films   []models.Film
	details map[string]models.FilmDetails
	err     error

	lastQuery string
}

func (f *fakeCatalog) SearchByTitle(_ context.Context, title string) ([]models.Film, error) {
	f.lastQuery = title
	return f.films, f.err
}

func (f *fakeCatalog) GetDetails(_ context.Context, id string) (*models.FilmDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.details[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &d, nil
}

func setupFilmsDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE FilmEntry (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  accountId INTEGER NOT NULL,
  externalId TEXT NOT NULL,
  title TEXT NOT NULL,
  rating INTEGER,
  comment TEXT,
  viewedAt TEXT,
  poster TEXT,
  year TEXT,
  toWatch INTEGER NOT NULL DEFAULT 0,
  UNIQUE (accountId, externalId)
);
`)
	require.NoError(t, err)
	return db
}

func newFilmService(t *testing.T) (*FilmService, *fakeCatalog, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	cat := &fakeCatalog{details: map[string]models.FilmDetails{
		"tt1": {ExternalID: "tt1", Title: "One", Year: "2001", Plot: "p"},
	}}
	repo := films.NewSQLiteRepository(setupFilmsDB(t), clock)
	return NewFilmService(cat, repo, logging.Discard()), cat, clock
}

func TestFilmService_SearchAndDetails(t *testing.T) {
	s, cat, _ := newFilmService(t)
	ctx := context.Background()
	cat.films = []models.Film{{ExternalID: "tt1", Title: "One"}}

	got, err := s.Search(ctx, "one")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "one", cat.lastQuery)

	d, err := s.Details(ctx, "tt1")
	require.NoError(t, err)
	assert.Equal(t, "p", d.Plot)

	_, err = s.Details(ctx, "tt404")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFilmService_SaveReturnsStoredEntry(t *testing.T) {
	s, _, _ := newFilmService(t)
	ctx := context.Background()

	e, res, err := s.Save(ctx, 1, models.FilmInput{ExternalID: "tt1", Title: "One", Rating: models.Rating(7)})
	require.NoError(t, err)
	assert.Equal(t, models.SaveInserted, res)
	assert.NotZero(t, e.ID)
	assert.Equal(t, models.StateRated, e.State())

	e2, res, err := s.Save(ctx, 1, models.FilmInput{ExternalID: "tt1", Title: "One", ToWatch: true})
	require.NoError(t, err)
	assert.Equal(t, models.SaveUpdated, res)
	assert.Equal(t, e.ID, e2.ID)
	assert.Equal(t, models.StateToWatch, e2.State())
}

func TestFilmService_EntryMissingIsNil(t *testing.T) {
	s, _, _ := newFilmService(t)

	e, err := s.Entry(context.Background(), 1, "nope")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestFilmService_WatchedAppliesOptions(t *testing.T) {
	s, _, clock := newFilmService(t)
	ctx := context.Background()

	for i, title := range []string{"Alpha", "Beta", "Gamma"} {
		_, _, err := s.Save(ctx, 1, models.FilmInput{ExternalID: title, Title: title, Rating: models.Rating(i + 1)})
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}

	list, err := s.Watched(ctx, 1, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gamma", "Beta", "Alpha"}, ids(list))

	list, err = s.Watched(ctx, 1, ListOptions{Query: "et"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta"}, ids(list))

	stats, err := s.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{TotalFilms: 3, Average: 2}, stats)
}

func TestFilmService_DeleteScopedToAccount(t *testing.T) {
	s, _, _ := newFilmService(t)
	ctx := context.Background()

	e, _, err := s.Save(ctx, 1, models.FilmInput{ExternalID: "tt1", Title: "One", ToWatch: true})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, 2, e.ID), "other account: no-op")
	list, err := s.Watchlist(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, 1, e.ID))
	list, err = s.Watchlist(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.Delete(ctx, 1, 12345))
}
