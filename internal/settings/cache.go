package settings

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/NotionPet_Go/internal/domain"
	"github.com/osse101/NotionPet_Go/internal/metrics"
)

// cachedSchema wraps a property schema with version metadata for cache invalidation
type cachedSchema struct {
	Version    string
	Properties map[string]domain.NotionProperty
	CachedAt   time.Time
}

// propertyCache keeps recently read database schemas per user so the difficulty
// screen does not hit the task database on every request. Entries expire after ttl
// and are dropped whenever the service changes a schema.
type propertyCache struct {
	lru *expirable.LRU[string, *cachedSchema]
}

func newPropertyCache(size int, ttl time.Duration) *propertyCache {
	if size <= 0 {
		size = DefaultPropertyCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultPropertyCacheTTL
	}
	return &propertyCache{
		lru: expirable.NewLRU[string, *cachedSchema](size, nil, ttl),
	}
}

func cacheKey(userID, databaseID string) string {
	return userID + ":" + databaseID
}

// Get returns the cached schema. Callers must not modify the returned map.
func (c *propertyCache) Get(userID, databaseID string) (map[string]domain.NotionProperty, bool) {
	key := cacheKey(userID, databaseID)
	entry, found := c.lru.Get(key)
	if !found {
		metrics.PropertyCacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		metrics.PropertyCacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
		return nil, false
	}
	metrics.PropertyCacheLookups.WithLabelValues(metrics.CacheHit).Inc()
	return entry.Properties, true
}

func (c *propertyCache) Set(userID, databaseID string, props map[string]domain.NotionProperty) {
	c.lru.Add(cacheKey(userID, databaseID), &cachedSchema{
		Version:    CacheSchemaVersion,
		Properties: props,
		CachedAt:   time.Now(),
	})
}

func (c *propertyCache) Invalidate(userID, databaseID string) {
	c.lru.Remove(cacheKey(userID, databaseID))
}

// InvalidateUser drops every schema cached for userID
func (c *propertyCache) InvalidateUser(userID string) {
	prefix := userID + ":"
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.lru.Remove(key)
		}
	}
}

func (c *propertyCache) Len() int {
	return c.lru.Len()
}
