package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	hasOpenFilm() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Rate(ctx context.Context, args []string) error
	Comment(ctx context.Context) error
	ToWatch(ctx context.Context) error
	Delete(ctx context.Context) error
	Back(ctx context.Context) error
	Watched(ctx context.Context, args []string) error
	Watchlist(ctx context.Context) error
	Stats(ctx context.Context) error
	Remove(ctx context.Context, args []string) error
	notices() []string
}

const (
	helpAnonymous = "Available commands: register, login, exit"
	helpSignedIn  = "Available commands: search, show, watched, watchlist, stats, remove, logout, exit"
	helpFilm      = "Film commands: rate, comment, towatch, delete, back"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// Handler errors are reported to w and the loop carries on. The loop exits
// on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "starly%s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpSignedIn)
				if a.hasOpenFilm() {
					fmt.Fprintln(w, helpFilm)
				}
			} else {
				fmt.Fprintln(w, helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "search":
			cmdErr = a.Search(ctx, args)
		case "show", "open":
			cmdErr = a.Show(ctx, args)
		case "rate":
			cmdErr = a.Rate(ctx, args)
		case "comment":
			cmdErr = a.Comment(ctx)
		case "towatch":
			cmdErr = a.ToWatch(ctx)
		case "delete":
			cmdErr = a.Delete(ctx)
		case "back":
			cmdErr = a.Back(ctx)
		case "watched", "w":
			cmdErr = a.Watched(ctx, args)
		case "watchlist", "wl":
			cmdErr = a.Watchlist(ctx)
		case "stats":
			cmdErr = a.Stats(ctx)
		case "remove":
			cmdErr = a.Remove(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", userMessage(cmdErr))
		}
		for _, n := range a.notices() {
			fmt.Fprintln(w, n)
		}
	}
}

// usageError carries a usage line for a malformed command.
type usageError struct {
	usage string
}

func (e usageError) Error() string { return "usage: " + e.usage }

func isUsage(err error) bool {
	var u usageError
	return errors.As(err, &u)
}
