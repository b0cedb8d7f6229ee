package render

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/zjrosen/mdpad/internal/cachemanager"
)

// Renderer converts Markdown source to some display form.
type Renderer interface {
	Render(markdown string) (string, error)
}

type cacheKey string

// Cached memoizes a Renderer by content hash. Undo/redo frequently revisit
// the same buffers, and onChange fires on every keystroke.
type Cached struct {
	next  Renderer
	ttl   time.Duration
	cache *cachemanager.InMemoryCacheManager[cacheKey, string]
	rt    *cachemanager.ReadThroughCache[cacheKey, string, string]
}

// maxCleanupInterval caps how long expired renderings wait for the janitor.
// go-cache only drops expired items when the janitor runs.
const maxCleanupInterval = time.Minute

// NewCached wraps next. A non-positive ttl uses cachemanager.DefaultExpiration.
func NewCached(next Renderer, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = cachemanager.DefaultExpiration
	}
	cache := cachemanager.NewInMemoryCacheManager[cacheKey, string]("render", ttl, min(ttl, maxCleanupInterval))
	c := &Cached{next: next, ttl: ttl, cache: cache}
	c.rt = cachemanager.NewReadThroughCache[cacheKey, string, string](cache,
		func(_ context.Context, markdown string) (string, error) {
			return next.Render(markdown)
		}, false)
	return c
}

// Render returns the cached output for markdown, rendering on a miss.
func (c *Cached) Render(markdown string) (string, error) {
	return c.rt.Get(context.Background(), keyFor(markdown), markdown, c.ttl)
}

// Len returns the number of cached renderings.
func (c *Cached) Len() int {
	return c.cache.Len()
}

// Reset drops every cached rendering.
func (c *Cached) Reset() {
	_ = c.cache.Flush(context.Background())
}

func keyFor(markdown string) cacheKey {
	sum := sha256.Sum256([]byte(markdown))
	return cacheKey(hex.EncodeToString(sum[:]))
}
