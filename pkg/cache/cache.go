package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads by key.
//
// Implementations report a miss as (nil, false, nil); an error means the
// backend itself failed. Callers treat cache failures as misses so analysis
// never depends on the cache being reachable.
type Cache interface {
	// Get returns the payload stored under key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default TTLs by entry type.
const (
	// GraphTTL applies to parsed graph files keyed by content hash.
	GraphTTL = 7 * 24 * time.Hour
	// ResultTTL applies to analysis results.
	ResultTTL = 24 * time.Hour
)
