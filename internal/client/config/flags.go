package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/photosync/internal/flagx"
)

// parseFlags overlays cfg with the flags it knows about. Unknown flags in
// args are filtered out by flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-b", "-u", "-l", "-n", "-s", "-t"})

	fs := flag.NewFlagSet("photosync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BackendURL, "b", cfg.BackendURL, "backend base URL")
	fs.StringVar(&cfg.UserID, "u", cfg.UserID, "user id")
	fs.StringVar(&cfg.LibraryDir, "l", cfg.LibraryDir, "media library directory")
	fs.IntVar(&cfg.FetchLimit, "n", cfg.FetchLimit, "number of recent items to list")
	fs.StringVar(&cfg.StateDir, "s", cfg.StateDir, "state directory")
	timeout := fs.Int("t", int(cfg.HTTPTimeout.Seconds()), "HTTP timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.HTTPTimeout = time.Duration(*timeout) * time.Second
	return nil
}
