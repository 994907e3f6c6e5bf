// Package library lists local media items and loads their bytes.
package library

import (
	"context"

	"github.com/dmitrijs2005/photosync/internal/client/models"
)

// DefaultLimit caps a listing when the caller passes no limit.
const DefaultLimit = 150

// Provider is a local media catalog.
type Provider interface {
	// RequestPermission asks for access to the catalog.
	RequestPermission(ctx context.Context) models.PermissionState
	// FetchLatest lists at most limit items, newest first.
	FetchLatest(ctx context.Context, limit int) ([]models.AssetRef, error)
	// LoadData reads the full content of ref. Failures wrap common.ErrAssetRead.
	LoadData(ctx context.Context, ref models.AssetRef) ([]byte, error)
}
