// Package cache stores computed layouts and rendered artifacts.
//
// Layout is cheap for a single family but the web client asks for it on
// every refresh, and rendered artifacts (SVG, Graphviz output) are larger
// still. Entries are keyed by the content hash of the snapshot they were
// computed from, so a change to any person or relationship naturally misses
// and stale entries simply age out.
//
// Three backends implement [Cache]:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the server
//
// [Keyer] builds keys; [ScopedKeyer] prefixes them so several trees can
// share one Redis instance.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
