// Package client talks to the upload backend and the blob store.
//
// TokenClient performs the first phase of an upload: it posts the user id and
// filename to /v1/mobile/upload-token and decodes the granted blob name,
// upload URL and expiry. BlobClient performs the second phase: a single PUT of
// the whole asset body to that URL.
//
// Failures are reported with sentinel errors from the common package so that
// callers can match them with errors.Is: common.ErrBackend for the token
// exchange and common.ErrUpload for the blob transfer. Neither client retries.
//
// The package also opens the local SQLite database and applies the embedded
// goose migrations (OpenDatabase, RunMigrations).
package client
