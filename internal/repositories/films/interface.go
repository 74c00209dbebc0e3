package films

import (
	"context"

	"github.com/dmitrijs2005/starly/internal/models"
)

// Repository describes reads and writes of FilmEntry rows. Every call is
// scoped by an explicit account id except DeleteByID, which addresses the
// row by its own id.
type Repository interface {
	// Save inserts or updates the entry for (accountID, in.ExternalID) and
	// reports which branch ran.
	Save(ctx context.Context, accountID int64, in models.FilmInput) (models.SaveResult, error)

	// GetWatched returns entries not on the watchlist, newest viewedAt first.
	GetWatched(ctx context.Context, accountID int64) ([]models.FilmEntry, error)

	// GetWatchlist returns entries marked to watch.
	GetWatchlist(ctx context.Context, accountID int64) ([]models.FilmEntry, error)

	// DeleteByID removes an entry. Missing ids are not an error.
	DeleteByID(ctx context.Context, id int64) error

	// GetStats counts rated watched entries and averages their ratings.
	GetStats(ctx context.Context, accountID int64) (models.Stats, error)

	// GetByExternalID returns common.ErrNotFound when the account has no
	// entry for externalID.
	GetByExternalID(ctx context.Context, accountID int64, externalID string) (*models.FilmEntry, error)

	// GetByID returns common.ErrNotFound when no entry with id belongs to
	// the account.
	GetByID(ctx context.Context, accountID, id int64) (*models.FilmEntry, error)
}
