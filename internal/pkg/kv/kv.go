// Package kv provides the shared-state store used for token revocation and
// OTP records: string keys, string values, per-key expiry. The Redis backend
// relies on native key expiry; the in-memory backend keeps expired entries
// until a sweep runs, mirroring the original process-local maps.
package kv

import (
	"context"
	"time"
)

// Store is a minimal TTL'd key-value store.
type Store interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put stores value under key. ttl <= 0 means no expiry.
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Scan returns all keys with the given prefix.
	Scan(ctx context.Context, prefix string) ([]string, error)
}
