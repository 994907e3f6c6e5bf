// Package issuer wires the token issuer: configuration, the S3 presigner,
// the token service and the HTTP server, with graceful shutdown.
package issuer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/photosync/internal/issuer/config"
	"github.com/dmitrijs2005/photosync/internal/issuer/httpapi"
	"github.com/dmitrijs2005/photosync/internal/issuer/presign"
	"github.com/dmitrijs2005/photosync/internal/issuer/services"
	"github.com/dmitrijs2005/photosync/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	p, err := presign.NewS3Presigner(ctx, presign.S3Options{
		Endpoint:  c.S3Endpoint,
		Region:    c.S3Region,
		Bucket:    c.S3Bucket,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("presigner init error: %w", err)
	}

	ts, err := services.NewTokenService(p, c.BlobPrefix, c.TokenTTLMinutes)
	if err != nil {
		return nil, fmt.Errorf("token service init error: %w", err)
	}

	if c.JWTSecret == "" {
		logger.Warn(ctx, "JWT secret is empty, bearer tokens are not checked")
	}

	h := httpapi.NewHandler(ts, logger.With("module", "httpapi"))

	srv := &http.Server{
		Addr:              c.ListenAddr,
		Handler:           httpapi.NewRouter(h, c.JWTSecret, logger.With("module", "http")),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{config: c, logger: logger, server: srv}, nil
}

// Handler exposes the router.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run serves until ctx is canceled or a termination signal arrives, then
// shuts down within the configured timeout.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	stop := app.initSignalHandler(cancelFunc)
	defer stop()

	listen, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.server.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		if err := app.server.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
