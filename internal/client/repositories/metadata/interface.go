// Package metadata is the client's local key-value table. Values are opaque
// byte strings; callers own the encoding.
package metadata

import (
	"context"
)

// Repository reads and writes the metadata table. SQLiteRepository
// implements it over a *sql.DB or a transaction.
//
// Get returns (nil, nil) for a missing key. Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
