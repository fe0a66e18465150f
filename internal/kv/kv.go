package kv

import "context"

// Store is a minimal string key-value blob store. Writes to the same key are
// last-write-wins; no transactions or multi-key atomicity.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	Close() error
}
