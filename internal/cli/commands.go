package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/starly/internal/common"
	"github.com/dmitrijs2005/starly/internal/models"
	"github.com/dmitrijs2005/starly/internal/services"
	"github.com/dmitrijs2005/starly/internal/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for a display name, login and password and creates the
// account. It does not sign in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	login, err := getSimpleText(a.reader, "Choose a login", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.binder.Register(ctx, name, login, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created, you can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter login", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.binder.Login(ctx, login, password)
	if err != nil {
		return err
	}
	a.lastSearch = nil
	fmt.Fprintf(a.out, "Welcome, %s!\n", acc.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrUnauthorized
	}
	err := a.binder.Logout(ctx)
	a.lastSearch = nil
	fmt.Fprintln(a.out, "Signed out.")
	return err
}

func (a *App) Search(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		return usageError{usage: "search <title>"}
	}

	found, err := a.binder.Search(ctx, title)
	if err != nil {
		return err
	}
	a.lastSearch = found

	if len(found) == 0 {
		fmt.Fprintln(a.out, "No movies found.")
		return nil
	}
	for i, f := range found {
		fmt.Fprintf(a.out, "#%d  %-10s %s (%s)\n", i+1, f.ExternalID, f.Title, f.Year)
	}
	return nil
}

// Show opens a film by IMDb id or by its #n position in the last search.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError{usage: "show <imdb id | #n>"}
	}
	id, err := a.resolveFilmID(args[0])
	if err != nil {
		return err
	}

	d, err := a.binder.Details(ctx, id)
	if err != nil {
		return err
	}
	ed, err := a.binder.Open(ctx, d.Film())
	if err != nil {
		return err
	}

	printDetails(a.out, d)
	printEditor(a.out, ed)
	return nil
}

func (a *App) resolveFilmID(arg string) (string, error) {
	if !strings.HasPrefix(arg, "#") {
		return arg, nil
	}
	n, err := strconv.Atoi(arg[1:])
	if err != nil || n < 1 || n > len(a.lastSearch) {
		return "", usageError{usage: fmt.Sprintf("show #n with n between 1 and %d", len(a.lastSearch))}
	}
	return a.lastSearch[n-1].ExternalID, nil
}

func (a *App) editor() (*session.FilmEditor, error) {
	if !a.isLoggedIn() {
		return nil, common.ErrUnauthorized
	}
	ed := a.binder.Editor()
	if ed == nil {
		return nil, errNoFilm
	}
	return ed, nil
}

func (a *App) Rate(ctx context.Context, args []string) error {
	ed, err := a.editor()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError{usage: fmt.Sprintf("rate <0-%d>", models.MaxRating)}
	}
	score, err := strconv.Atoi(args[0])
	if err != nil {
		return usageError{usage: fmt.Sprintf("rate <0-%d>", models.MaxRating)}
	}

	res, err := ed.Rate(ctx, score)
	if err != nil {
		return err
	}
	if res == 0 {
		fmt.Fprintln(a.out, "The film is on your watchlist; give it a score above 0 to mark it watched.")
		return nil
	}
	fmt.Fprintf(a.out, "Rated %d/%d (%s).\n", score, models.MaxRating, res)
	return nil
}

func (a *App) Comment(ctx context.Context) error {
	ed, err := a.editor()
	if err != nil {
		return err
	}
	if ed.State() == models.StateToWatch {
		return session.ErrOnWatchlist
	}

	text, err := GetMultiline(a.reader, "Enter your comment", a.out)
	if err != nil {
		return err
	}
	if err := ed.EditComment(text); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Comment will be saved shortly.")
	return nil
}

func (a *App) ToWatch(ctx context.Context) error {
	ed, err := a.editor()
	if err != nil {
		return err
	}
	if _, err := ed.ToggleToWatch(ctx); err != nil {
		return err
	}
	if ed.State() == models.StateToWatch {
		fmt.Fprintln(a.out, "Added to your watchlist.")
	} else {
		fmt.Fprintln(a.out, "Removed from your watchlist.")
	}
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	ed, err := a.editor()
	if err != nil {
		return err
	}
	if err := ed.Delete(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed from your films.")
	return nil
}

func (a *App) Back(ctx context.Context) error {
	if _, err := a.editor(); err != nil {
		return err
	}
	return a.binder.CloseEditor(ctx)
}

// Watched lists watched films. Flags: -sort viewed|rating|title|year, -asc.
// Remaining words filter titles.
func (a *App) Watched(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watched", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	sortBy := fs.String("sort", string(services.SortViewed), "viewed, rating, title or year")
	asc := fs.Bool("asc", false, "ascending order")
	if err := fs.Parse(args); err != nil {
		return usageError{usage: "watched [-sort viewed|rating|title|year] [-asc] [query]"}
	}
	field, err := services.ParseSortField(*sortBy)
	if err != nil {
		return usageError{usage: "watched [-sort viewed|rating|title|year] [-asc] [query]"}
	}

	list, err := a.binder.Watched(ctx, services.ListOptions{
		Query:     strings.Join(fs.Args(), " "),
		SortBy:    field,
		Ascending: *asc,
	})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No watched films yet.")
		return nil
	}
	printEntries(a.out, list)
	return nil
}

func (a *App) Watchlist(ctx context.Context) error {
	list, err := a.binder.Watchlist(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "Your watchlist is empty.")
		return nil
	}
	printEntries(a.out, list)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	st, err := a.binder.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Films rated: %d, average rating: %.2f\n", st.TotalFilms, st.Average)
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError{usage: "remove <entry id>"}
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return usageError{usage: "remove <entry id>"}
	}
	if err := a.binder.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed.")
	return nil
}
