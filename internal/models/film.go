// Package models defines the account and film types shared by the store,
// repositories, services, and the CLI.
package models

import (
	"errors"
	"fmt"
	"time"
)

// MaxRating is the top of the rating scale. Ratings run from 0 to MaxRating.
const MaxRating = 10

// ViewedAtLayout is the ISO-8601 form used to persist FilmEntry.ViewedAt.
// It is fixed-width UTC so that string order equals time order.
const ViewedAtLayout = "2006-01-02T15:04:05.000Z"

var ErrInvalidRating = fmt.Errorf("rating must be between 0 and %d", MaxRating)

// ErrMissingExternalID is returned when a save carries no catalog id.
var ErrMissingExternalID = errors.New("external id is required")

// WatchState is the position of a film in the rating/watchlist state machine.
type WatchState int

const (
	StateUnrated WatchState = iota
	StateRated
	StateToWatch
)

func (s WatchState) String() string {
	switch s {
	case StateRated:
		return "rated"
	case StateToWatch:
		return "to watch"
	default:
		return "unrated"
	}
}

// FilmEntry is one account's record for one catalog film.
type FilmEntry struct {
	ID         int64
	AccountID  int64
	ExternalID string
	Title      string

	// Rating is nil when the film has not been rated.
	Rating  *int
	Comment *string

	// ViewedAt is refreshed on every save of a watched film.
	ViewedAt *time.Time

	Poster  string
	Year    string
	ToWatch bool
}

// State derives the watch state of the entry.
func (e FilmEntry) State() WatchState {
	switch {
	case e.ToWatch:
		return StateToWatch
	case e.Rating != nil:
		return StateRated
	default:
		return StateUnrated
	}
}

// CommentText returns the comment or "" when unset.
func (e FilmEntry) CommentText() string {
	if e.Comment == nil {
		return ""
	}
	return *e.Comment
}

// Input converts the stored entry back into save data.
func (e FilmEntry) Input() FilmInput {
	return FilmInput{
		ExternalID: e.ExternalID,
		Title:      e.Title,
		Rating:     e.Rating,
		Comment:    e.CommentText(),
		Poster:     e.Poster,
		Year:       e.Year,
		ToWatch:    e.ToWatch,
	}
}

// FilmInput carries the data of a single save request.
type FilmInput struct {
	ExternalID string
	Title      string
	Rating     *int
	Comment    string
	Poster     string
	Year       string
	ToWatch    bool
}

// Normalize applies the to-watch rule: a film queued for viewing carries no
// rating and no comment.
func (in FilmInput) Normalize() FilmInput {
	if in.ToWatch {
		in.Rating = nil
		in.Comment = ""
	}
	return in
}

// Validate checks the fields a save depends on.
func (in FilmInput) Validate() error {
	if in.ExternalID == "" {
		return ErrMissingExternalID
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > MaxRating) {
		return ErrInvalidRating
	}
	return nil
}

// SaveResult tells whether a save created a new entry or updated one.
type SaveResult int

const (
	SaveInserted SaveResult = iota + 1
	SaveUpdated
)

func (r SaveResult) String() string {
	switch r {
	case SaveInserted:
		return "inserted"
	case SaveUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Stats aggregates the rated, watched films of an account.
type Stats struct {
	TotalFilms int
	Average    float64
}

// Rating is a helper for building *int ratings.
func Rating(v int) *int { return &v }
