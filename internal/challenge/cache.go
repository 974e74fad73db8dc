package challenge

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/AICore_Go/internal/domain"
)

// cachedListing wraps a catalog listing with version metadata for cache invalidation
type cachedListing struct {
	Version    string
	Challenges []domain.Challenge
	CachedAt   time.Time
}

// catalogCache keeps recent catalog listings; any catalog or counter write purges it
type catalogCache struct {
	lru *expirable.LRU[string, *cachedListing]
}

func newCatalogCache(size int, ttl time.Duration) *catalogCache {
	if size <= 0 {
		size = DefaultCatalogCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCatalogCacheTTL
	}
	return &catalogCache{
		lru: expirable.NewLRU[string, *cachedListing](size, nil, ttl),
	}
}

// Get returns a copy of the cached listing for key
func (c *catalogCache) Get(key string) ([]domain.Challenge, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}

	out := make([]domain.Challenge, len(entry.Challenges))
	copy(out, entry.Challenges)
	return out, true
}

// Set stores a copy of challenges under key
func (c *catalogCache) Set(key string, challenges []domain.Challenge) {
	stored := make([]domain.Challenge, len(challenges))
	copy(stored, challenges)
	c.lru.Add(key, &cachedListing{
		Version:    CacheSchemaVersion,
		Challenges: stored,
		CachedAt:   time.Now(),
	})
}

// Invalidate drops every cached listing
func (c *catalogCache) Invalidate() {
	c.lru.Purge()
}
