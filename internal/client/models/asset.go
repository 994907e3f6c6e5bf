// Package models defines the data shared by the upload client, the
// orchestrator and the asset providers.
package models

import (
	"mime"
	"path/filepath"
	"time"
)

// DefaultFilename is used when a provider cannot name an asset.
const DefaultFilename = "image.jpg"

// DefaultContentType is sent when no type can be derived from the filename.
const DefaultContentType = "application/octet-stream"

// AssetRef points at one local media item. Bytes are not loaded until upload.
type AssetRef struct {
	// ID is stable for the lifetime of the item in its provider.
	ID       string
	Filename string
	Size     int64
	ModTime  time.Time
}

// UploadName returns the filename to request a token for.
func (a AssetRef) UploadName() string {
	if a.Filename == "" {
		return DefaultFilename
	}
	return a.Filename
}

// ContentType guesses a MIME type from the upload name extension.
func (a AssetRef) ContentType() string {
	if t := mime.TypeByExtension(filepath.Ext(a.UploadName())); t != "" {
		return t
	}
	return DefaultContentType
}

// PermissionState is the outcome of asking a provider for access.
type PermissionState int

const (
	PermissionDenied PermissionState = iota
	PermissionLimited
	PermissionFull
)

// Granted reports whether the provider may be listed.
func (p PermissionState) Granted() bool {
	return p == PermissionLimited || p == PermissionFull
}

func (p PermissionState) String() string {
	switch p {
	case PermissionFull:
		return "granted-full"
	case PermissionLimited:
		return "granted-limited"
	default:
		return "denied"
	}
}
