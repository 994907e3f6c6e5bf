// Package common contains shared constants, sentinel errors and small helpers
// used by both the photosync client and the token issuer.
package common

// Wire-level names of the upload-token exchange and blob transfer.
const (
	UploadTokenPath = "/v1/mobile/upload-token"

	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	ContentTypeHeader   = "Content-Type"
	ContentTypeJSON     = "application/json"
	ContentTypeBinary   = "application/octet-stream"

	// BlobTypeHeader marks the PUT body as a single block blob.
	BlobTypeHeader = "x-ms-blob-type"
	BlobTypeBlock  = "BlockBlob"
)

// Credential namespace. There is exactly one stored secret.
const (
	CredentialService = "com.azphotosync.mobile"
	CredentialAccount = "auth-token"
)
