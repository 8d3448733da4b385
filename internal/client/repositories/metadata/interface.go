// Package metadata is a small key/value table in the CLI's local SQLite
// database. The session layer keeps the bearer token in it.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns common.ErrorNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
