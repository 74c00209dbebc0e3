package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/starly/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Arguments are
// filtered through flagx.FilterArgs first so -c/-config and unknown flags do
// not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-d", "-k", "-u", "-t", "-w", "-l"})

	fs := flag.NewFlagSet("starly", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database file")
	fs.StringVar(&cfg.OMDbAPIKey, "k", cfg.OMDbAPIKey, "OMDb API key")
	fs.StringVar(&cfg.OMDbBaseURL, "u", cfg.OMDbBaseURL, "OMDb base URL")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "OMDb request timeout (in seconds)")
	delay := fs.Int("w", int(cfg.CommentSaveDelay.Milliseconds()), "comment save delay (in milliseconds)")

	if err := fs.Parse(filtered); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.CommentSaveDelay = time.Duration(*delay) * time.Millisecond
	return nil
}
