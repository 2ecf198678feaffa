package normalize

import (
	"context"
	"sync"

	"github.com/postreview/svndiff/internal/domain"
)

// CachedLookup memoizes metadata lookups for the duration of one diff
// run. The rename and absolutize passes frequently probe the same
// paths, and each underlying lookup is a process invocation.
type CachedLookup struct {
	next MetadataLookup

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	meta domain.Metadata
	err  error
}

// NewCachedLookup wraps next with a per-path cache. Misses and errors
// are cached too; a path that had no metadata at the start of a run
// will not gain any during it.
func NewCachedLookup(next MetadataLookup) *CachedLookup {
	return &CachedLookup{
		next:    next,
		entries: make(map[string]cacheEntry),
	}
}

// Lookup implements MetadataLookup.
func (c *CachedLookup) Lookup(ctx context.Context, path string) (domain.Metadata, error) {
	c.mu.Lock()
	entry, ok := c.entries[path]
	c.mu.Unlock()
	if ok {
		return entry.meta, entry.err
	}

	meta, err := c.next.Lookup(ctx, path)

	c.mu.Lock()
	c.entries[path] = cacheEntry{meta: meta, err: err}
	c.mu.Unlock()

	return meta, err
}
