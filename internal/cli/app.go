package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/starly/internal/config"
	"github.com/dmitrijs2005/starly/internal/filex"
	"github.com/dmitrijs2005/starly/internal/logging"
	"github.com/dmitrijs2005/starly/internal/models"
	"github.com/dmitrijs2005/starly/internal/omdb"
	"github.com/dmitrijs2005/starly/internal/repositories/accounts"
	"github.com/dmitrijs2005/starly/internal/repositories/films"
	"github.com/dmitrijs2005/starly/internal/services"
	"github.com/dmitrijs2005/starly/internal/session"
	"github.com/dmitrijs2005/starly/internal/store"
	"github.com/jonboulle/clockwork"
)

// App is the interactive shell bound to one session.
type App struct {
	binder *session.Binder
	reader *bufio.Reader
	out    io.Writer
	logger logging.Logger

	lastSearch []models.Film
}

// NewApp returns a shell reading commands from in and writing to out.
func NewApp(binder *session.Binder, in io.Reader, out io.Writer, logger logging.Logger) *App {
	return &App{binder: binder, reader: bufio.NewReader(in), out: out, logger: logger}
}

// Bootstrap opens the store, builds the services and returns a ready App.
// The returned store must be closed by the caller after Run.
func Bootstrap(ctx context.Context, cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, *store.Store, error) {
	if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, nil, err
	}

	st := store.New(cfg.DatabasePath, logger)
	db, err := st.Initialize(ctx)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := omdb.NewClient(omdb.Options{
		BaseURL:  cfg.OMDbBaseURL,
		APIKey:   cfg.OMDbAPIKey,
		Timeout:  cfg.RequestTimeout,
		CacheTTL: cfg.DetailsCacheTTL,
	}, logger.With("component", "omdb"))
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	if cfg.OMDbAPIKey == "" {
		logger.Warn(ctx, "no OMDb API key configured, catalog requests will be rejected")
	}

	clock := clockwork.NewRealClock()
	auth := services.NewAuthService(accounts.NewSQLiteRepository(db), logger)
	journal := services.NewFilmService(catalog, films.NewSQLiteRepository(db, clock), logger)
	binder := session.NewBinder(auth, journal, clock, cfg.CommentSaveDelay, logger)

	return NewApp(binder, in, out, logger), st, nil
}

// Run starts the REPL and blocks until the user quits or input ends. The
// session is closed on the way out so a pending comment is saved.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.binder.Logout(ctx); err != nil {
			a.logger.Error(ctx, "closing session", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to starly (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.binder.Current() != nil
}

func (a *App) hasOpenFilm() bool {
	return a.binder.Editor() != nil
}

func (a *App) status() string {
	acc := a.binder.Current()
	if acc == nil {
		return ""
	}
	s := fmt.Sprintf(" (%s)", acc.Login)
	if ed := a.binder.Editor(); ed != nil {
		s += fmt.Sprintf(" [%s]", ed.Film().Title)
	}
	return s
}

// notices reports background comment saves that failed.
func (a *App) notices() []string {
	ed := a.binder.Editor()
	if ed == nil {
		return nil
	}
	if err := ed.SaveErr(); err != nil {
		return []string{"Comment not saved: " + userMessage(err)}
	}
	return nil
}
