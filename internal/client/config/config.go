package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/dmitrijs2005/photosync/internal/filex"
)

// Config holds runtime settings for the photosync client.
type Config struct {
	BackendURL  string
	UserID      string
	LibraryDir  string
	FetchLimit  int
	StateDir    string
	HTTPTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:8080"
	c.UserID = ""
	c.LibraryDir = "."
	c.FetchLimit = 150
	c.StateDir = "~/.photosync"
	c.HTTPTimeout = 60 * time.Second
}

// LoadConfig applies defaults, then the JSON file named in args (if any),
// then the flags in args. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend url %q: %w", c.BackendURL, common.ErrInvalidInput)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout %s: %w", c.HTTPTimeout, common.ErrInvalidInput)
	}

	if c.LibraryDir, err = filex.ExpandHome(c.LibraryDir); err != nil {
		return err
	}
	if c.StateDir, err = filex.ExpandHome(c.StateDir); err != nil {
		return err
	}
	return nil
}
