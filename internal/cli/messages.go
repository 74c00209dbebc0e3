package cli

import (
	"errors"

	"github.com/dmitrijs2005/starly/internal/common"
	"github.com/dmitrijs2005/starly/internal/models"
	"github.com/dmitrijs2005/starly/internal/omdb"
	"github.com/dmitrijs2005/starly/internal/session"
)

var errNoFilm = errors.New("no film is open, use show <imdb id> first")

// userMessage maps errors to the notice shown at the prompt.
func userMessage(err error) string {
	var apiErr *omdb.APIError
	switch {
	case isUsage(err):
		return err.Error()
	case errors.Is(err, common.ErrAlreadyExists):
		return "login taken"
	case errors.Is(err, common.ErrUnauthorized):
		return "not signed in or wrong login/password"
	case errors.Is(err, omdb.ErrTooManyResults):
		return "too many results, refine the search"
	case errors.Is(err, omdb.ErrUnavailable):
		return "movie catalog unavailable, try again later"
	case errors.As(err, &apiErr):
		return "movie catalog: " + apiErr.Message
	case errors.Is(err, common.ErrNotFound):
		return "not found"
	case errors.Is(err, models.ErrInvalidRating):
		return models.ErrInvalidRating.Error()
	case errors.Is(err, session.ErrOnWatchlist), errors.Is(err, errNoFilm):
		return err.Error()
	case errors.Is(err, common.ErrValidation):
		return err.Error()
	default:
		return "operation failed: " + err.Error()
	}
}
