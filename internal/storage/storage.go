// Package storage implements the persisted client storage: a small
// key/value table in a local SQLite database holding the bearer token,
// per-identity role selections, and the UI theme.
package storage

import "context"

// Repository is the raw key/value surface. Get returns ("", false, nil)
// when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
