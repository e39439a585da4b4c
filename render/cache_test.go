// ABOUTME: Tests for the render cache covering TTL-based expiry, cache hits, and concurrent access.
// ABOUTME: Validates RenderCache keys on sha256 of the model source plus variant and locale.
package render

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/2389-research/fishbone/diagram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer is a test double that counts invocations and returns fixed output.
type fakeRenderer struct {
	callCount atomic.Int64
	output    []byte
	err       error
}

func (f *fakeRenderer) render(ctx context.Context, job Job) ([]byte, error) {
	f.callCount.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func job(source string, v diagram.Variant, l *diagram.Locale) Job {
	return Job{Source: []byte(source), Variant: v, Locale: l}
}

func TestRenderCacheReturnsCachedResult(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("<html>test</html>")}
	cache := NewRenderCache(renderer.render, 5*time.Minute)
	ctx := context.Background()

	data1, err := cache.Render(ctx, job(`{"levels":{}}`, diagram.Ultra, diagram.English))
	require.NoError(t, err)
	assert.Equal(t, "<html>test</html>", string(data1))

	data2, err := cache.Render(ctx, job(`{"levels":{}}`, diagram.Ultra, diagram.English))
	require.NoError(t, err)
	assert.Equal(t, "<html>test</html>", string(data2))

	assert.EqualValues(t, 1, renderer.callCount.Load())
	hits, misses := cache.Stats()
	assert.EqualValues(t, 1, hits)
	assert.EqualValues(t, 1, misses)
}

func TestRenderCacheSeparatesVariantsAndLocales(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("output")}
	cache := NewRenderCache(renderer.render, 5*time.Minute)
	ctx := context.Background()

	cache.Render(ctx, job("model", diagram.Ultra, diagram.English))
	cache.Render(ctx, job("model", diagram.Interactive, diagram.English))
	cache.Render(ctx, job("model", diagram.Ultra, diagram.Chinese))
	cache.Render(ctx, job("other model", diagram.Ultra, diagram.English))

	assert.EqualValues(t, 4, renderer.callCount.Load())
	assert.Equal(t, 4, cache.Len())
}

func TestRenderCacheTTLExpiry(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("output")}
	cache := NewRenderCache(renderer.render, 50*time.Millisecond)
	ctx := context.Background()

	cache.Render(ctx, job("model", diagram.Basic, diagram.Chinese))
	require.EqualValues(t, 1, renderer.callCount.Load())

	time.Sleep(100 * time.Millisecond)

	cache.Render(ctx, job("model", diagram.Basic, diagram.Chinese))
	assert.EqualValues(t, 2, renderer.callCount.Load())
}

func TestRenderCacheDoesNotCacheErrors(t *testing.T) {
	renderer := &fakeRenderer{err: fmt.Errorf("render failed")}
	cache := NewRenderCache(renderer.render, 5*time.Minute)
	ctx := context.Background()

	_, err := cache.Render(ctx, job("model", diagram.Static, diagram.English))
	require.Error(t, err)

	renderer.err = nil
	renderer.output = []byte("fixed output")

	data, err := cache.Render(ctx, job("model", diagram.Static, diagram.English))
	require.NoError(t, err)
	assert.Equal(t, "fixed output", string(data))
}

func TestRenderCacheConcurrentAccess(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("concurrent output")}
	cache := NewRenderCache(renderer.render, 5*time.Minute)
	ctx := context.Background()

	// Prime the cache so every goroutine below reads.
	_, err := cache.Render(ctx, job("model", diagram.Ultra, diagram.English))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := cache.Render(ctx, job("model", diagram.Ultra, diagram.English))
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, "concurrent output", string(data))
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, renderer.callCount.Load())
}

func TestRenderCacheKey(t *testing.T) {
	expected := fmt.Sprintf("%x:ultra:en", sha256.Sum256([]byte("model")))
	assert.Equal(t, expected, cacheKey(job("model", diagram.Ultra, diagram.English)))
	assert.Equal(t, fmt.Sprintf("%x:basic:", sha256.Sum256(nil)), cacheKey(Job{Variant: diagram.Basic}))
}

func TestRenderCacheSweepsExpiredOnInsert(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("out")}
	cache := NewRenderCache(renderer.render, 20*time.Millisecond)
	ctx := context.Background()

	for _, src := range []string{"edit-1", "edit-2", "edit-3"} {
		_, err := cache.Render(ctx, job(src, diagram.Ultra, diagram.English))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, cache.Len())

	time.Sleep(30 * time.Millisecond)
	_, err := cache.Render(ctx, job("edit-4", diagram.Ultra, diagram.English))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len(), "expired entries are dropped when a new one is stored")
}
