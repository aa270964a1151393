package searchcache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/findnearpg/findnearpg-sub000/pkg/listing"
)

func TestMemoryCachePutGet(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	page := []listing.Listing{{Id: 1, Title: "Sunrise PG"}}
	cache.Put(ctx, "key", page, time.Minute)

	got, ok := cache.Get(ctx, "key")
	assert.True(t, ok)
	assert.Equal(t, page, got)

	_, ok = cache.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	cache.Put(ctx, "key", []listing.Listing{{Id: 1}}, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := cache.Get(ctx, "key")
	assert.False(t, ok)
}

func TestMemoryCacheConcurrent(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				cache.Put(ctx, "shared", []listing.Listing{{Id: int64(worker)}}, time.Minute)
				cache.Get(ctx, "shared")
			}
		}(worker)
	}
	wg.Wait()

	_, ok := cache.Get(ctx, "shared")
	assert.True(t, ok)
}
