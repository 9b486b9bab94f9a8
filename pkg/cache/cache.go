// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP API
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// All backends honour per-entry TTLs and are safe for concurrent use.
//
// # Keys
//
// A [Keyer] derives keys from content hashes and the options that affect
// the cached value, so changing a label or a bin count never returns a stale
// figure. [ScopedKeyer] prefixes every key for per-client isolation.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash(layoutJSON), cache.ArtifactKeyOpts{Format: "png", DPI: 100})
package cache

import (
	"context"
	"time"
)

// TTLs for cached values.
const (
	// TTLLayout is how long a computed layout stays cached.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long a rendered artifact stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A missing or expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// NullCache stores nothing; every Get is a miss. It backs --no-cache.
type NullCache struct{}

// NewNullCache returns a cache that never hits.
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
