package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

func TestPropertyCache(t *testing.T) {
	c := newPropertyCache(8, time.Minute)
	props := map[string]domain.NotionProperty{"XP": {Name: "XP", Type: domain.PropertyTypeNumber}}

	_, ok := c.Get("u1", "db1")
	assert.False(t, ok)

	c.Set("u1", "db1", props)
	c.Set("u1", "db2", props)
	c.Set("u2", "db1", props)

	got, ok := c.Get("u1", "db1")
	assert.True(t, ok)
	assert.Equal(t, props, got)

	c.Invalidate("u1", "db1")
	_, ok = c.Get("u1", "db1")
	assert.False(t, ok)

	c.InvalidateUser("u1")
	_, ok = c.Get("u1", "db2")
	assert.False(t, ok)
	_, ok = c.Get("u2", "db1")
	assert.True(t, ok, "other users keep their entries")
}

func TestPropertyCache_VersionMismatch(t *testing.T) {
	c := newPropertyCache(8, time.Minute)
	c.lru.Add(cacheKey("u1", "db1"), &cachedSchema{Version: "0", Properties: map[string]domain.NotionProperty{}})

	_, ok := c.Get("u1", "db1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestPropertyCache_Expires(t *testing.T) {
	c := newPropertyCache(8, 20*time.Millisecond)
	c.Set("u1", "db1", map[string]domain.NotionProperty{})

	assert.Eventually(t, func() bool {
		_, ok := c.Get("u1", "db1")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestPropertyCache_Defaults(t *testing.T) {
	c := newPropertyCache(0, 0)
	for i := 0; i < DefaultPropertyCacheSize+10; i++ {
		c.Set("u", string(rune('a'+i%26))+time.Duration(i).String(), nil)
	}
	assert.Equal(t, DefaultPropertyCacheSize, c.Len())
}
