// Package flagx picks subsets of command-line arguments so that separate
// flag sets (config file, config overrides) can parse the same os.Args.
package flagx

import (
	"flag"
	"strings"
)

// configFlags name the JSON config file.
var configFlags = []string{"-c", "-config"}

// FilterArgs keeps the flags listed in allowed, in order, with their values.
// A value comes either from "-f=value" or from the next argument when that
// argument does not start with "-". Everything else is dropped.
func FilterArgs(args []string, allowed []string) []string {
	keep := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		keep[name] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		name, _, inline := strings.Cut(args[i], "=")
		if !strings.HasPrefix(name, "-") || !keep[name] {
			continue
		}
		out = append(out, args[i])

		if !inline && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigPath returns the value of -c or -config, the last one winning, or ""
// when neither is given.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("starly-config", flag.ContinueOnError)
	fs.SetOutput(nopWriter{})
	fs.StringVar(&path, "config", "", "JSON config file")
	fs.StringVar(&path, "c", "", "JSON config file (shorthand)")
	_ = fs.Parse(FilterArgs(args, configFlags))

	return path
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
