package searchcache

import (
	"context"
	"time"

	"github.com/findnearpg/findnearpg-sub000/pkg/listing"
)

// CacheI fronts the search pipeline with a keyed, TTL-bounded page
// cache. Entries are immutable once written; eviction is time-based
// only, there is no invalidation hook on listing mutation.
type CacheI interface {
	Get(ctx context.Context, key string) ([]listing.Listing, bool)
	Put(ctx context.Context, key string, page []listing.Listing, ttl time.Duration)
}
