// Package config loads runtime configuration for the starly CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite database file
//	-k string   OMDb API key
//	-u string   OMDb base URL
//	-t int      OMDb request timeout (seconds)
//	-w int      comment save delay (milliseconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "database_path": "films.db",
//	  "omdb_base_url": "https://www.omdbapi.com/",
//	  "omdb_api_key": "xxxx",
//	  "request_timeout": "10s",
//	  "comment_save_delay": "1s",
//	  "details_cache_ttl": "10m",
//	  "log_level": "info"
//	}
//
// Keys absent from the file keep their previous value.
package config
