// Package metadata stores small named blobs (vault salt, sealed credential)
// in the local SQLite database.
package metadata

import "context"

// Repository is a byte-valued key/value store. Get returns common.ErrNotFound
// for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
