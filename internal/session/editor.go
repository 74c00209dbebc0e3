package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/starly/internal/debounce"
	"github.com/dmitrijs2005/starly/internal/logging"
	"github.com/dmitrijs2005/starly/internal/models"
	"github.com/jonboulle/clockwork"
)

var (
	// ErrOnWatchlist is returned for comment edits on a to-watch film.
	ErrOnWatchlist = errors.New("film is on the watchlist, rate it before commenting")

	// ErrEditorClosed is returned by every call after Close.
	ErrEditorClosed = errors.New("film editor is closed")
)

// FilmEditor is the live view over one film for the signed-in account.
//
// State changes are persisted immediately. Comment edits are persisted
// after the comment delay with the latest text; Close flushes a pending one.
// A FilmEditor is safe for concurrent use.
type FilmEditor struct {
	journal   Journal
	accountID int64
	film      models.Film
	saver     *debounce.Debouncer
	logger    logging.Logger

	mu      sync.Mutex
	entry   *models.FilmEntry
	rating  *int
	comment string
	toWatch bool
	dirty   bool
	closed  bool
	saveErr error
}

func newFilmEditor(j Journal, accountID int64, film models.Film, entry *models.FilmEntry,
	clock clockwork.Clock, delay time.Duration, logger logging.Logger) *FilmEditor {
	e := &FilmEditor{
		journal:   j,
		accountID: accountID,
		film:      film,
		saver:     debounce.New(clock, delay),
		logger:    logger,
	}
	e.adoptLocked(entry)
	return e
}

// Film returns the catalog film being edited.
func (e *FilmEditor) Film() models.Film {
	return e.film
}

// Entry returns a copy of the stored entry, or nil when nothing is stored.
func (e *FilmEditor) Entry() *models.FilmEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.entry == nil {
		return nil
	}
	c := *e.entry
	return &c
}

// State is the watch state shown to the user, including unsaved comment text.
func (e *FilmEditor) State() models.WatchState {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.toWatch:
		return models.StateToWatch
	case e.rating != nil:
		return models.StateRated
	default:
		return models.StateUnrated
	}
}

func (e *FilmEditor) Rating() *int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rating == nil {
		return nil
	}
	return models.Rating(*e.rating)
}

func (e *FilmEditor) Comment() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.comment
}

// CommentPending reports whether a comment edit is waiting to be saved.
func (e *FilmEditor) CommentPending() bool {
	return e.saver.Pending()
}

// Rate gives the film score. On a to-watch film a score of 0 changes
// nothing; any other score takes it off the watchlist.
func (e *FilmEditor) Rate(ctx context.Context, score int) (models.SaveResult, error) {
	if score < 0 || score > models.MaxRating {
		return 0, models.ErrInvalidRating
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0, ErrEditorClosed
	}
	if e.toWatch && score == 0 {
		return 0, nil
	}

	e.saver.Cancel()
	in := e.inputLocked()
	in.Rating = models.Rating(score)
	in.ToWatch = false
	return e.persistLocked(ctx, in)
}

// ToggleToWatch moves Unrated or Rated to ToWatch, dropping rating and
// comment, and ToWatch back to Unrated.
func (e *FilmEditor) ToggleToWatch(ctx context.Context) (models.SaveResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0, ErrEditorClosed
	}

	e.saver.Cancel()
	in := e.inputLocked()
	if e.toWatch {
		in.ToWatch = false
		in.Rating = nil
	} else {
		in.ToWatch = true
	}
	return e.persistLocked(ctx, in)
}

// EditComment replaces the comment text and restarts the save countdown.
func (e *FilmEditor) EditComment(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEditorClosed
	}
	if e.toWatch {
		return ErrOnWatchlist
	}

	e.comment = text
	e.dirty = true
	e.saver.Schedule(e.saveComment)
	return nil
}

// saveComment runs on the debounce timer or on Flush. It persists the
// latest text unless a later save or delete already settled it.
func (e *FilmEditor) saveComment() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.dirty || e.toWatch {
		return
	}

	ctx := context.Background()
	if _, err := e.persistLocked(ctx, e.inputLocked()); err != nil {
		e.saveErr = err
		e.logger.Error(ctx, "comment save failed", "error", err)
		return
	}
	e.logger.Debug(ctx, "comment saved")
}

// SaveErr returns and clears the error of the last background comment save.
func (e *FilmEditor) SaveErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := e.saveErr
	e.saveErr = nil
	return err
}

// Delete drops any pending comment save and removes the stored entry. The
// editor stays open on an unrated, unsaved film.
func (e *FilmEditor) Delete(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEditorClosed
	}

	e.saver.Cancel()
	if e.entry != nil {
		if err := e.journal.Delete(ctx, e.accountID, e.entry.ID); err != nil {
			return err
		}
		e.logger.Info(ctx, "film removed", "entry_id", e.entry.ID)
	}
	e.adoptLocked(nil)
	return nil
}

// Close flushes a pending comment save and closes the editor. It returns the
// flush error, if any. Closing twice is a no-op.
func (e *FilmEditor) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	e.saver.Flush()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	err := e.saveErr
	e.saveErr = nil
	if err != nil {
		return fmt.Errorf("save comment: %w", err)
	}
	return nil
}

func (e *FilmEditor) persistLocked(ctx context.Context, in models.FilmInput) (models.SaveResult, error) {
	entry, res, err := e.journal.Save(ctx, e.accountID, in)
	if err != nil {
		return 0, err
	}
	e.adoptLocked(entry)
	return res, nil
}

func (e *FilmEditor) adoptLocked(entry *models.FilmEntry) {
	e.entry = entry
	e.dirty = false
	if entry == nil {
		e.rating = nil
		e.comment = ""
		e.toWatch = false
		return
	}
	e.rating = entry.Rating
	e.comment = entry.CommentText()
	e.toWatch = entry.ToWatch
}

func (e *FilmEditor) inputLocked() models.FilmInput {
	return models.FilmInput{
		ExternalID: e.film.ExternalID,
		Title:      e.film.Title,
		Rating:     e.rating,
		Comment:    e.comment,
		Poster:     e.film.Poster,
		Year:       e.film.Year,
		ToWatch:    e.toWatch,
	}
}
