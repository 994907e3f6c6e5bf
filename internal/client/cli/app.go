package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/photosync/internal/client/client"
	"github.com/dmitrijs2005/photosync/internal/client/config"
	"github.com/dmitrijs2005/photosync/internal/client/credentials"
	"github.com/dmitrijs2005/photosync/internal/client/library"
	"github.com/dmitrijs2005/photosync/internal/client/models"
	"github.com/dmitrijs2005/photosync/internal/client/repositories/uploads"
	"github.com/dmitrijs2005/photosync/internal/client/services"
	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/dmitrijs2005/photosync/internal/filex"
	"github.com/dmitrijs2005/photosync/internal/logging"
)

// uploadService is the part of services.UploadService the REPL drives.
type uploadService interface {
	LoadLibrary(ctx context.Context) error
	ToggleSelection(id string) bool
	UploadSelected(ctx context.Context, userID string) error
	Assets() []models.AssetRef
	Selected() []models.AssetRef
	IsSelected(id string) bool
	State() models.SessionState
	History(ctx context.Context, limit int) ([]models.UploadRecord, error)
	Subscribe(fn func(models.SessionState)) (cancel func())
}

type credentialStore interface {
	credentials.Store
	Clear() error
}

type App struct {
	config *config.Config
	svc    uploadService
	creds  credentialStore
	log    logging.Logger

	reader *bufio.Reader
	out    io.Writer

	userID string
	closer func()
}

// NewApp opens the state directory and vault and wires the upload pipeline.
// The vault passphrase is read from the terminal.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	reader := bufio.NewReader(os.Stdin)

	stateDir, err := filex.EnsureDir(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	db, err := client.OpenDatabase(ctx, filepath.Join(stateDir, "state.db"))
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	passphrase, err := GetSecret(reader, "Vault passphrase", os.Stdout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	vault, err := credentials.OpenVault(ctx, db, passphrase, log)
	common.WipeByteArray(passphrase)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	svc, err := newUploadService(cfg, db, vault, log)
	if err != nil {
		vault.Close()
		_ = db.Close()
		return nil, err
	}

	a := newApp(cfg, svc, vault, log, reader, os.Stdout)
	a.closer = func() {
		vault.Close()
		_ = db.Close()
	}
	return a, nil
}

func newUploadService(cfg *config.Config, db *sql.DB, creds client.CredentialReader, log logging.Logger) (*services.UploadService, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	tokens, err := client.NewTokenClient(cfg.BackendURL, httpClient, creds)
	if err != nil {
		return nil, err
	}

	return services.NewUploadService(
		library.NewDirProvider(cfg.LibraryDir, log),
		tokens,
		client.NewBlobClient(httpClient),
		uploads.NewSQLiteRepository(db),
		log,
		services.WithLimit(cfg.FetchLimit),
	), nil
}

func newApp(cfg *config.Config, svc uploadService, creds credentialStore, log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	a := &App{
		config: cfg,
		svc:    svc,
		creds:  creds,
		log:    log,
		reader: reader,
		out:    out,
		userID: cfg.UserID,
	}
	svc.Subscribe(a.onStateChange)
	return a
}

// onStateChange prints transient progress. Final outcomes are printed by the
// command that caused them.
func (a *App) onStateChange(st models.SessionState) {
	if st.Status == models.SessionLoading || st.Status == models.SessionUploading {
		if st.Message != "" {
			fmt.Fprintln(a.out, "..", st.Message)
		}
	}
}

// Run starts the REPL on the app reader and blocks until the user exits or
// ctx is canceled.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "photosync (type 'help' for commands)")
	runREPL(ctx, a, a.prompt, a.reader)
}

func (a *App) Close() {
	if a.closer != nil {
		a.closer()
	}
}

func (a *App) prompt() string {
	user := a.userID
	if user == "" {
		user = "no user"
	}
	return fmt.Sprintf("(%s, %d selected)", user, a.svc.State().Selected)
}
