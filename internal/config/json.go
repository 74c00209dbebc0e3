package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/starly/internal/flagx"
	"github.com/dmitrijs2005/starly/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so a partial file only overrides
// what it names.
type JsonConfig struct {
	DatabasePath     *string         `json:"database_path"`
	OMDbBaseURL      *string         `json:"omdb_base_url"`
	OMDbAPIKey       *string         `json:"omdb_api_key"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	CommentSaveDelay *timex.Duration `json:"comment_save_delay"`
	DetailsCacheTTL  *timex.Duration `json:"details_cache_ttl"`
	LogLevel         *string         `json:"log_level"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Without either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.OMDbBaseURL != nil {
		cfg.OMDbBaseURL = *jc.OMDbBaseURL
	}
	if jc.OMDbAPIKey != nil {
		cfg.OMDbAPIKey = *jc.OMDbAPIKey
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CommentSaveDelay != nil {
		cfg.CommentSaveDelay = jc.CommentSaveDelay.Duration
	}
	if jc.DetailsCacheTTL != nil {
		cfg.DetailsCacheTTL = jc.DetailsCacheTTL.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
