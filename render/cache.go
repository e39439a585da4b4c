// ABOUTME: In-memory render cache keyed by sha256 of the model source plus variant and locale.
// ABOUTME: Entries expire after a TTL and are swept on insert; hits and misses are counted.
package render

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/model"
)

// Job identifies one page render: a model source and the variant and locale to draw.
type Job struct {
	Source  []byte
	Format  model.Format
	Variant diagram.Variant
	Locale  *diagram.Locale
}

// RenderFunc renders a job to page bytes.
type RenderFunc func(ctx context.Context, job Job) ([]byte, error)

type cacheEntry struct {
	data      []byte
	createdAt time.Time
}

// RenderCache wraps a RenderFunc with an in-memory cache. Entries expire after
// the configured TTL. Errors are never cached.
type RenderCache struct {
	renderFn RenderFunc
	ttl      time.Duration
	entries  map[string]*cacheEntry
	mu       sync.RWMutex

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRenderCache creates a RenderCache wrapping renderFn.
func NewRenderCache(renderFn RenderFunc, ttl time.Duration) *RenderCache {
	return &RenderCache{
		renderFn: renderFn,
		ttl:      ttl,
		entries:  make(map[string]*cacheEntry),
	}
}

// Render returns the cached page for job when present and fresh, rendering it otherwise.
func (c *RenderCache) Render(ctx context.Context, job Job) ([]byte, error) {
	key := cacheKey(job)

	c.mu.RLock()
	if entry, ok := c.entries[key]; ok && time.Since(entry.createdAt) < c.ttl {
		data := entry.data
		c.mu.RUnlock()
		c.hits.Add(1)
		return data, nil
	}
	c.mu.RUnlock()

	c.misses.Add(1)
	data, err := c.renderFn(ctx, job)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c.mu.Lock()
	c.sweepLocked(now)
	c.entries[key] = &cacheEntry{data: data, createdAt: now}
	c.mu.Unlock()

	return data, nil
}

// Len returns the number of entries held, including expired ones not yet swept.
func (c *RenderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the hit and miss counts since creation.
func (c *RenderCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// sweepLocked drops expired entries. Callers hold c.mu for writing.
func (c *RenderCache) sweepLocked(now time.Time) {
	for key, entry := range c.entries {
		if now.Sub(entry.createdAt) >= c.ttl {
			delete(c.entries, key)
		}
	}
}

func cacheKey(job Job) string {
	code := ""
	if job.Locale != nil {
		code = job.Locale.Code
	}
	return fmt.Sprintf("%x:%s:%s", sha256.Sum256(job.Source), job.Variant, code)
}
