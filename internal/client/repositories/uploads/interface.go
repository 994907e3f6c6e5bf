// Package uploads keeps a local ledger of completed blob uploads.
package uploads

import (
	"context"

	"github.com/dmitrijs2005/photosync/internal/client/models"
)

type Repository interface {
	Add(ctx context.Context, rec models.UploadRecord) error
	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]models.UploadRecord, error)
}
