package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/starly/internal/models"
	"github.com/dmitrijs2005/starly/internal/session"
)

func printDetails(w io.Writer, d *models.FilmDetails) {
	fmt.Fprintf(w, "%s (%s)  %s\n", d.Title, d.Year, d.ExternalID)
	for _, kv := range [][2]string{
		{"Director", d.Director},
		{"Genre", d.Genre},
		{"Runtime", d.Runtime},
		{"Poster", d.Poster},
	} {
		if kv[1] != "" {
			fmt.Fprintf(w, "  %-9s %s\n", kv[0]+":", kv[1])
		}
	}
	if d.Plot != "" {
		fmt.Fprintf(w, "\n%s\n\n", d.Plot)
	}
}

func printEditor(w io.Writer, ed *session.FilmEditor) {
	switch ed.State() {
	case models.StateToWatch:
		fmt.Fprintln(w, "Status: on your watchlist")
	case models.StateRated:
		fmt.Fprintf(w, "Status: rated %d/%d\n", *ed.Rating(), models.MaxRating)
	default:
		fmt.Fprintln(w, "Status: not rated")
	}
	if c := ed.Comment(); c != "" {
		fmt.Fprintf(w, "Comment: %s\n", c)
	}
}

func printEntries(w io.Writer, list []models.FilmEntry) {
	for _, e := range list {
		fmt.Fprintf(w, "%4d  %-40s %-6s %s\n", e.ID, truncate(e.Title, 40), e.Year, entrySummary(e))
	}
}

func entrySummary(e models.FilmEntry) string {
	var parts []string
	switch e.State() {
	case models.StateRated:
		parts = append(parts, fmt.Sprintf("%d/%d", *e.Rating, models.MaxRating))
	case models.StateUnrated:
		parts = append(parts, "-")
	}
	if e.ViewedAt != nil {
		parts = append(parts, e.ViewedAt.Local().Format("2006-01-02"))
	}
	if c := firstLine(e.CommentText()); c != "" {
		parts = append(parts, fmt.Sprintf("%q", truncate(c, 30)))
	}
	return strings.Join(parts, "  ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
