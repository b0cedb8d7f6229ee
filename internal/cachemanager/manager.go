// Package cachemanager provides generic TTL caches used to memoize
// rendered Markdown.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a typed key/value cache with per-item TTL.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
	Len() int
}
