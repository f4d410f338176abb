// Package metadata is a key/value repository over the local "metadata" table.
// The session snapshot and its bookkeeping keys live here.
package metadata

import "context"

type Repository interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Clear removes every key, the session snapshot included.
	Clear(ctx context.Context) error
}
