package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/starly/internal/common"
	"github.com/dmitrijs2005/starly/internal/logging"
	"github.com/dmitrijs2005/starly/internal/models"
	"github.com/dmitrijs2005/starly/internal/repositories/films"
)

// Catalog is the remote movie metadata service.
type Catalog interface {
	SearchByTitle(ctx context.Context, title string) ([]models.Film, error)
	GetDetails(ctx context.Context, externalID string) (*models.FilmDetails, error)
}

// FilmService combines the catalog with the per-account film journal.
// Every journal call takes the account id explicitly.
type FilmService struct {
	catalog Catalog
	repo    films.Repository
	logger  logging.Logger
}

// NewFilmService constructs a FilmService.
func NewFilmService(catalog Catalog, repo films.Repository, logger logging.Logger) *FilmService {
	return &FilmService{catalog: catalog, repo: repo, logger: logger}
}

func (s *FilmService) Search(ctx context.Context, title string) ([]models.Film, error) {
	return s.catalog.SearchByTitle(ctx, title)
}

func (s *FilmService) Details(ctx context.Context, externalID string) (*models.FilmDetails, error) {
	return s.catalog.GetDetails(ctx, externalID)
}

// Entry returns the account's entry for a film, or nil when there is none.
func (s *FilmService) Entry(ctx context.Context, accountID int64, externalID string) (*models.FilmEntry, error) {
	e, err := s.repo.GetByExternalID(ctx, accountID, externalID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return e, err
}

// Save persists in and returns the stored entry.
func (s *FilmService) Save(ctx context.Context, accountID int64, in models.FilmInput) (*models.FilmEntry, models.SaveResult, error) {
	res, err := s.repo.Save(ctx, accountID, in)
	if err != nil {
		s.logger.Error(ctx, "film save failed", "external_id", in.ExternalID, "error", err)
		return nil, 0, err
	}

	e, err := s.repo.GetByExternalID(ctx, accountID, in.ExternalID)
	if err != nil {
		return nil, 0, fmt.Errorf("reload saved film: %w", err)
	}

	s.logger.Debug(ctx, "film saved", "external_id", in.ExternalID, "result", res.String(), "state", e.State().String())
	return e, res, nil
}

// Watched lists watched entries, filtered and sorted per opts.
func (s *FilmService) Watched(ctx context.Context, accountID int64, opts ListOptions) ([]models.FilmEntry, error) {
	list, err := s.repo.GetWatched(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return opts.Apply(list), nil
}

func (s *FilmService) Watchlist(ctx context.Context, accountID int64) ([]models.FilmEntry, error) {
	return s.repo.GetWatchlist(ctx, accountID)
}

func (s *FilmService) Stats(ctx context.Context, accountID int64) (models.Stats, error) {
	return s.repo.GetStats(ctx, accountID)
}

// Delete removes the account's entry id. Ids that do not exist, or belong
// to another account, leave every row untouched and are not an error.
func (s *FilmService) Delete(ctx context.Context, accountID, id int64) error {
	if _, err := s.repo.GetByID(ctx, accountID, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "film entry deleted", "entry_id", id)
	return nil
}
