package websearch

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache is a short-TTL Redis cache for web search results. Cache
// failures are logged and treated as misses so a Redis outage never
// breaks a search.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(query string) string {
	return "websearch:" + strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func (c *Cache) Get(ctx context.Context, query string) ([]Result, bool) {
	raw, err := c.client.Get(ctx, cacheKey(query)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("Web search cache read failed")
		}
		return nil, false
	}
	var results []Result
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		log.Warn().Err(err).Msg("Web search cache entry is corrupt")
		return nil, false
	}
	return results, true
}

func (c *Cache) Set(ctx context.Context, query string, results []Result) {
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(query), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("Web search cache write failed")
	}
}
