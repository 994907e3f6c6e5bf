package uploads

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/photosync/internal/client/models"
	"github.com/dmitrijs2005/photosync/internal/dbx"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Add inserts rec. An empty ID is replaced by a new UUID and a zero
// UploadedAt by the current time.
func (r *SQLiteRepository) Add(ctx context.Context, rec models.UploadRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.UploadedAt.IsZero() {
		rec.UploadedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO uploads (id, asset_id, filename, blob_name, size, sha256, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.AssetID, rec.Filename, rec.BlobName, rec.Size, rec.SHA256, rec.UploadedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert upload %s: %w", rec.AssetID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]models.UploadRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, asset_id, filename, blob_name, size, sha256, uploaded_at
		FROM uploads
		ORDER BY uploaded_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var out []models.UploadRecord
	for rows.Next() {
		var rec models.UploadRecord
		if err := rows.Scan(&rec.ID, &rec.AssetID, &rec.Filename, &rec.BlobName, &rec.Size, &rec.SHA256, &rec.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}
	return out, nil
}
