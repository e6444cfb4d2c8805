package cache

import (
	"context"
	"testing"
	"time"
)

// Without a Redis client the cache must act as a permanent miss and
// never panic.
func TestCacheWithoutClient(t *testing.T) {
	c := New(nil)
	ctx := context.Background()

	var out map[string]int
	if c.Get(ctx, "anything", &out) {
		t.Error("Get on nil client reported a hit")
	}
	c.Set(ctx, "anything", map[string]int{"a": 1}, time.Minute)

	var nilCache *Cache
	if nilCache.Get(ctx, "anything", &out) {
		t.Error("Get on nil cache reported a hit")
	}
	nilCache.Set(ctx, "anything", 1, time.Minute)
}
