package common

import "errors"

var (
	// Session-level conditions. Both are non-fatal and leave the session usable.
	ErrPermissionDenied = errors.New("photo permission denied")
	ErrEmptySelection   = errors.New("no photos selected")

	// Abort-class errors: the first one stops the remaining batch.
	ErrAssetRead = errors.New("asset read error")
	ErrBackend   = errors.New("backend error")
	ErrUpload    = errors.New("upload error")

	// Issuer and storage errors.
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
