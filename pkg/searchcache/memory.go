package searchcache

import (
	"context"
	"sync"
	"time"

	"github.com/findnearpg/findnearpg-sub000/pkg/listing"
)

type memoryEntry struct {
	page      []listing.Listing
	expiresAt time.Time
}

// MemoryCache is the in-process backend: a mutex-guarded map with a
// background janitor sweeping expired entries.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	done    chan struct{}
}

func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		entries: map[string]memoryEntry{},
		done:    make(chan struct{}),
	}
	go cache.janitor()
	return cache
}

func (cache *MemoryCache) Get(ctx context.Context, key string) ([]listing.Listing, bool) {
	cache.mu.RLock()
	entry, ok := cache.entries[key]
	cache.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.page, true
}

func (cache *MemoryCache) Put(ctx context.Context, key string, page []listing.Listing, ttl time.Duration) {
	cache.mu.Lock()
	cache.entries[key] = memoryEntry{page: page, expiresAt: time.Now().Add(ttl)}
	cache.mu.Unlock()
}

func (cache *MemoryCache) Close() {
	close(cache.done)
}

func (cache *MemoryCache) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-cache.done:
			return
		case now := <-ticker.C:
			cache.mu.Lock()
			for key, entry := range cache.entries {
				if now.After(entry.expiresAt) {
					delete(cache.entries, key)
				}
			}
			cache.mu.Unlock()
		}
	}
}
