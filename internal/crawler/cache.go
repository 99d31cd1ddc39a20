package crawler

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const pageTTL = 24 * time.Hour

// PageCache keeps fetched page bodies in Redis keyed by URL, so repeated runs
// over the same link list do not hit the storefront again within the TTL.
// Cache errors degrade to a normal fetch.
type PageCache struct {
	Client *redis.Client
}

func (c *PageCache) Get(url string) (string, bool) {
	ctx := context.Background()

	val, err := c.Client.Get(ctx, cacheKey(url)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *PageCache) Put(url, html string) {
	ctx := context.Background()

	_ = c.Client.Set(ctx, cacheKey(url), html, pageTTL).Err()
}

func cacheKey(url string) string {
	return "page:" + url
}
