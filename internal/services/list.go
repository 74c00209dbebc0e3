package services

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/starly/internal/models"
	"github.com/dmitrijs2005/starly/internal/textx"
)

// SortField selects the ordering of a watched list.
type SortField string

const (
	SortViewed SortField = "viewed"
	SortRating SortField = "rating"
	SortTitle  SortField = "title"
	SortYear   SortField = "year"
)

// ParseSortField accepts the names above; "" means SortViewed.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return SortViewed, nil
	case SortViewed, SortRating, SortTitle, SortYear:
		return f, nil
	default:
		return "", fmt.Errorf("unknown sort field %q", s)
	}
}

// ListOptions filter and order a watched list. The zero value keeps the
// store order: most recently viewed first.
type ListOptions struct {
	Query     string
	SortBy    SortField
	Ascending bool
}

// Apply returns the entries of list matching Query, ordered per SortBy.
// Ties keep their incoming order. list is not modified.
func (o ListOptions) Apply(list []models.FilmEntry) []models.FilmEntry {
	out := make([]models.FilmEntry, 0, len(list))
	for _, e := range list {
		if textx.Contains(e.Title, o.Query) {
			out = append(out, e)
		}
	}

	cmp := o.compare()
	if cmp == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b models.FilmEntry) int {
		if o.Ascending {
			return cmp(a, b)
		}
		return cmp(b, a)
	})
	return out
}

func (o ListOptions) compare() func(a, b models.FilmEntry) int {
	switch o.SortBy {
	case SortRating:
		return func(a, b models.FilmEntry) int { return ratingKey(a) - ratingKey(b) }
	case SortTitle:
		return func(a, b models.FilmEntry) int { return strings.Compare(textx.Fold(a.Title), textx.Fold(b.Title)) }
	case SortYear:
		return func(a, b models.FilmEntry) int { return strings.Compare(a.Year, b.Year) }
	default:
		if !o.Ascending {
			return nil
		}
		return func(a, b models.FilmEntry) int { return viewedKey(a).Compare(viewedKey(b)) }
	}
}

// unrated films sort below a zero score
func ratingKey(e models.FilmEntry) int {
	if e.Rating == nil {
		return -1
	}
	return *e.Rating
}

func viewedKey(e models.FilmEntry) time.Time {
	if e.ViewedAt == nil {
		return time.Time{}
	}
	return *e.ViewedAt
}
