package models

import "time"

// UploadTokenRequest is the body of POST /v1/mobile/upload-token.
type UploadTokenRequest struct {
	UserID   string `json:"user_id"`
	Filename string `json:"filename"`
}

// UploadTokenResponse grants a single upload of one file.
type UploadTokenResponse struct {
	BlobName  string    `json:"blob_name"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token is past its expiry at now.
func (t UploadTokenResponse) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}
