package searchcache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/findnearpg/findnearpg-sub000/pkg/listing"
)

// RedisCache stores pages as JSON under the same keys as MemoryCache,
// with the TTL delegated to redis expiry. A cache miss and a redis
// failure look the same to the pipeline; the search still runs.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

func (cache *RedisCache) Get(ctx context.Context, key string) ([]listing.Listing, bool) {
	data, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("ERROR|searchcache.Get:%s", err.Error())
		}
		return nil, false
	}
	var page []listing.Listing
	if err := json.Unmarshal(data, &page); err != nil {
		log.Printf("ERROR|searchcache.Get:%s", err.Error())
		return nil, false
	}
	return page, true
}

func (cache *RedisCache) Put(ctx context.Context, key string, page []listing.Listing, ttl time.Duration) {
	data, err := json.Marshal(page)
	if err != nil {
		log.Printf("ERROR|searchcache.Put:%s", err.Error())
		return
	}
	if err := cache.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("ERROR|searchcache.Put:%s", err.Error())
	}
}

func (cache *RedisCache) Close() error {
	return cache.client.Close()
}
