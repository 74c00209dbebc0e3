package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/starly/internal/common"
	"github.com/dmitrijs2005/starly/internal/logging"
	"github.com/dmitrijs2005/starly/internal/models"
	"github.com/dmitrijs2005/starly/internal/services"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Authenticator registers and signs in accounts.
type Authenticator interface {
	Register(ctx context.Context, name, login string, password []byte) (*models.Account, error)
	Login(ctx context.Context, login string, password []byte) (*models.Account, error)
}

// Journal is the film side of the application services.
type Journal interface {
	Search(ctx context.Context, title string) ([]models.Film, error)
	Details(ctx context.Context, externalID string) (*models.FilmDetails, error)
	Entry(ctx context.Context, accountID int64, externalID string) (*models.FilmEntry, error)
	Save(ctx context.Context, accountID int64, in models.FilmInput) (*models.FilmEntry, models.SaveResult, error)
	Watched(ctx context.Context, accountID int64, opts services.ListOptions) ([]models.FilmEntry, error)
	Watchlist(ctx context.Context, accountID int64) ([]models.FilmEntry, error)
	Stats(ctx context.Context, accountID int64) (models.Stats, error)
	Delete(ctx context.Context, accountID, id int64) error
}

// Binder holds the signed-in account. Only one account is signed in and
// only one FilmEditor is open at a time.
type Binder struct {
	auth         Authenticator
	journal      Journal
	clock        clockwork.Clock
	commentDelay time.Duration
	logger       logging.Logger

	mu        sync.Mutex
	account   *models.Account
	sessionID string
	log       logging.Logger
	editor    *FilmEditor
}

// NewBinder returns a Binder with nobody signed in. commentDelay is the
// quiet period before an edited comment is saved.
func NewBinder(auth Authenticator, journal Journal, clock clockwork.Clock, commentDelay time.Duration, logger logging.Logger) *Binder {
	return &Binder{
		auth:         auth,
		journal:      journal,
		clock:        clock,
		commentDelay: commentDelay,
		logger:       logger,
		log:          logger,
	}
}

// Register creates an account without signing it in.
func (b *Binder) Register(ctx context.Context, name, login string, password []byte) (*models.Account, error) {
	return b.auth.Register(ctx, name, login, password)
}

// Login signs in login, replacing any previous session.
func (b *Binder) Login(ctx context.Context, login string, password []byte) (*models.Account, error) {
	a, err := b.auth.Login(ctx, login, password)
	if err != nil {
		b.logger.Warn(ctx, "login failed", "login", login, "error", err)
		return nil, err
	}

	if err := b.Logout(ctx); err != nil {
		b.logger.Warn(ctx, "previous session closed with error", "error", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.account = a
	b.sessionID = uuid.NewString()
	b.log = b.logger.With("session_id", b.sessionID, "account_id", a.ID)
	b.log.Info(ctx, "signed in", "login", a.Login)
	return a, nil
}

// Logout closes the open editor, flushing its pending comment, and forgets
// the account. Logging out with nobody signed in is a no-op.
func (b *Binder) Logout(ctx context.Context) error {
	b.mu.Lock()
	editor := b.editor
	b.editor = nil
	wasIn := b.account != nil
	b.account = nil
	log := b.log
	b.log = b.logger
	b.sessionID = ""
	b.mu.Unlock()

	var err error
	if editor != nil {
		err = editor.Close(ctx)
	}
	if wasIn {
		log.Info(ctx, "signed out")
	}
	return err
}

// Current returns the signed-in account or nil.
func (b *Binder) Current() *models.Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.account == nil {
		return nil
	}
	a := *b.account
	return &a
}

// SessionID identifies the current sign-in; "" when nobody is signed in.
func (b *Binder) SessionID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessionID
}

func (b *Binder) accountID() (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.account == nil {
		return 0, common.ErrUnauthorized
	}
	return b.account.ID, nil
}

func (b *Binder) Search(ctx context.Context, title string) ([]models.Film, error) {
	if _, err := b.accountID(); err != nil {
		return nil, err
	}
	return b.journal.Search(ctx, title)
}

func (b *Binder) Details(ctx context.Context, externalID string) (*models.FilmDetails, error) {
	if _, err := b.accountID(); err != nil {
		return nil, err
	}
	return b.journal.Details(ctx, externalID)
}

// Open makes film the current film, closing the previously open editor
// first. The editor starts from the stored entry when there is one.
func (b *Binder) Open(ctx context.Context, film models.Film) (*FilmEditor, error) {
	id, err := b.accountID()
	if err != nil {
		return nil, err
	}

	if prev := b.swapEditor(nil); prev != nil {
		if err := prev.Close(ctx); err != nil {
			b.logger.Warn(ctx, "closing previous film", "external_id", prev.Film().ExternalID, "error", err)
		}
	}

	entry, err := b.journal.Entry(ctx, id, film.ExternalID)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	log := b.log
	b.mu.Unlock()

	ed := newFilmEditor(b.journal, id, film, entry, b.clock, b.commentDelay, log.With("external_id", film.ExternalID))
	b.swapEditor(ed)
	return ed, nil
}

// Editor returns the open editor or nil.
func (b *Binder) Editor() *FilmEditor {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.editor
}

// CloseEditor closes the open editor, if any.
func (b *Binder) CloseEditor(ctx context.Context) error {
	if ed := b.swapEditor(nil); ed != nil {
		return ed.Close(ctx)
	}
	return nil
}

func (b *Binder) swapEditor(next *FilmEditor) *FilmEditor {
	b.mu.Lock()
	defer b.mu.Unlock()
	prev := b.editor
	b.editor = next
	return prev
}

func (b *Binder) Watched(ctx context.Context, opts services.ListOptions) ([]models.FilmEntry, error) {
	id, err := b.accountID()
	if err != nil {
		return nil, err
	}
	return b.journal.Watched(ctx, id, opts)
}

func (b *Binder) Watchlist(ctx context.Context) ([]models.FilmEntry, error) {
	id, err := b.accountID()
	if err != nil {
		return nil, err
	}
	return b.journal.Watchlist(ctx, id)
}

func (b *Binder) Stats(ctx context.Context) (models.Stats, error) {
	id, err := b.accountID()
	if err != nil {
		return models.Stats{}, err
	}
	return b.journal.Stats(ctx, id)
}

// Delete removes one of the account's entries by id. When that entry is
// open in the editor, the editor is reset as well.
func (b *Binder) Delete(ctx context.Context, entryID int64) error {
	id, err := b.accountID()
	if err != nil {
		return err
	}

	if ed := b.Editor(); ed != nil {
		if e := ed.Entry(); e != nil && e.ID == entryID {
			return ed.Delete(ctx)
		}
	}
	return b.journal.Delete(ctx, id, entryID)
}
