package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. Every lookup misses. Runners fall back to it when
// caching is switched off or the configured backend cannot be opened.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a cache that never hits.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
