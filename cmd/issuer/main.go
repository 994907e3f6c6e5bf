package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/photosync/internal/flagx"
	"github.com/dmitrijs2005/photosync/internal/issuer"
	"github.com/dmitrijs2005/photosync/internal/issuer/auth"
	"github.com/dmitrijs2005/photosync/internal/issuer/config"
	"github.com/dmitrijs2005/photosync/internal/logging"
)

// mintValidity is how long tokens printed by -mint stay valid.
const mintValidity = 24 * time.Hour

func main() {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		logger.Error(ctx, "config error", "error", err)
		os.Exit(1)
	}

	if user := mintUser(os.Args[1:]); user != "" {
		if cfg.JWTSecret == "" {
			logger.Error(ctx, "cannot mint a token without a JWT secret")
			os.Exit(1)
		}
		tok, err := auth.GenerateToken(user, []byte(cfg.JWTSecret), mintValidity)
		if err != nil {
			logger.Error(ctx, "mint token", "error", err)
			os.Exit(1)
		}
		fmt.Println(tok)
		return
	}

	app, err := issuer.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "init error", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server error", "error", err)
		os.Exit(1)
	}
}

// mintUser returns the user given with -mint, if any.
func mintUser(args []string) string {
	var user string
	fs := flag.NewFlagSet("mint", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&user, "mint", "", "print a bearer token for this user and exit")
	_ = fs.Parse(flagx.FilterArgs(args, []string{"-mint"}))
	return user
}
