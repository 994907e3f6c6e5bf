package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/photosync/internal/flagx"
	"github.com/dmitrijs2005/photosync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	BackendURL  string         `json:"backend_url"`
	UserID      string         `json:"user_id"`
	LibraryDir  string         `json:"library_dir"`
	FetchLimit  int            `json:"fetch_limit"`
	StateDir    string         `json:"state_dir"`
	HTTPTimeout timex.Duration `json:"http_timeout"`
}

// parseJson overlays cfg with the file given by -c/-config. Fields missing
// from the file keep their current values.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.BackendURL != "" {
		cfg.BackendURL = jc.BackendURL
	}
	if jc.UserID != "" {
		cfg.UserID = jc.UserID
	}
	if jc.LibraryDir != "" {
		cfg.LibraryDir = jc.LibraryDir
	}
	if jc.FetchLimit != 0 {
		cfg.FetchLimit = jc.FetchLimit
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	return nil
}
