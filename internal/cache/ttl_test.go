package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSetDelete(t *testing.T) {
	c := NewTTLCache[string, int64]()

	_, ok := c.Get("mrr:day:2026-03-01")
	assert.False(t, ok)

	c.Set("mrr:day:2026-03-01", 124, time.Minute)
	value, ok := c.Get("mrr:day:2026-03-01")
	assert.True(t, ok)
	assert.Equal(t, int64(124), value)

	c.Delete("mrr:day:2026-03-01")
	_, ok = c.Get("mrr:day:2026-03-01")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLCacheWithNow[string, int64](func() time.Time { return now })

	c.Set("key", 1, time.Minute)

	now = now.Add(59 * time.Second)
	_, ok := c.Get("key")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = c.Get("key")
	assert.False(t, ok, "entry past its TTL must not be served")
}

func TestZeroTTLDisablesCaching(t *testing.T) {
	c := NewTTLCache[string, int64]()

	c.Set("key", 1, 0)
	_, ok := c.Get("key")
	assert.False(t, ok)
}
