package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/photosync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/dmitrijs2005/photosync/internal/cryptox"
	"github.com/dmitrijs2005/photosync/internal/dbx"
	"github.com/dmitrijs2005/photosync/internal/logging"
)

const (
	saltKey = "vault/salt"

	// Store and Read have no context in their contract; bound them here.
	opTimeout = 5 * time.Second
)

func nonceKey() string {
	return Key() + "/nonce"
}

// VaultStore seals the token with AES-GCM and keeps it in the metadata table.
// The key is derived from a passphrase and a salt generated on first use.
type VaultStore struct {
	db   *sql.DB
	repo metadata.Repository
	key  []byte
	log  logging.Logger
}

// OpenVault loads or creates the vault salt and derives the sealing key from
// passphrase. The passphrase is not kept.
func OpenVault(ctx context.Context, db *sql.DB, passphrase []byte, log logging.Logger) (*VaultStore, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("vault passphrase: %w", common.ErrInvalidInput)
	}

	repo := metadata.NewSQLiteRepository(db)

	salt, err := repo.Get(ctx, saltKey)
	if errors.Is(err, common.ErrNotFound) {
		salt = cryptox.NewSalt()
		if err := repo.Set(ctx, saltKey, salt); err != nil {
			return nil, fmt.Errorf("store vault salt: %w", err)
		}
		log.Info(ctx, "created credential vault")
	} else if err != nil {
		return nil, fmt.Errorf("load vault salt: %w", err)
	}

	return &VaultStore{
		db:   db,
		repo: repo,
		key:  cryptox.DeriveKey(passphrase, salt),
		log:  log,
	}, nil
}

// Save seals token and overwrites ciphertext and nonce together.
func (v *VaultStore) Save(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	ct, nonce, err := cryptox.Seal([]byte(token), v.key)
	if err != nil {
		return fmt.Errorf("seal credential: %w", err)
	}

	return dbx.WithTx(ctx, v.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, Key(), ct); err != nil {
			return err
		}
		return repo.Set(ctx, nonceKey(), nonce)
	})
}

// Read returns ("", false) when nothing is stored or the stored value cannot
// be opened with the current key.
func (v *VaultStore) Read() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	ct, err := v.repo.Get(ctx, Key())
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			v.log.Warn(ctx, "read credential", "error", err)
		}
		return "", false
	}
	nonce, err := v.repo.Get(ctx, nonceKey())
	if err != nil {
		v.log.Warn(ctx, "read credential nonce", "error", err)
		return "", false
	}

	plain, err := cryptox.Open(ct, nonce, v.key)
	if err != nil {
		v.log.Warn(ctx, "stored credential cannot be opened, wrong passphrase?")
		return "", false
	}
	return string(plain), true
}

// Clear removes the stored token. The salt is kept.
func (v *VaultStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return v.repo.Delete(ctx, Key(), nonceKey())
}

// Close wipes the derived key from memory.
func (v *VaultStore) Close() {
	common.WipeByteArray(v.key)
	v.key = nil
}
