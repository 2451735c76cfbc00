// internal/search/parser/cache.go
package parser

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"supplier-search/internal/models"
)

// DefaultCacheTTL bounds how long a successful assisted parse is reused.
const DefaultCacheTTL = 5 * time.Minute

// Cache stores assisted-parse results keyed by normalized query text.
// Implementations must be safe for concurrent use; entries are immutable once
// written and overwritten wholesale on refresh.
type Cache interface {
	Get(ctx context.Context, key string) (*models.ParsedQuery, bool)
	Set(ctx context.Context, key string, q *models.ParsedQuery)
}

// NormalizeQuery produces the cache key: trimmed, lower-cased, inner
// whitespace collapsed.
func NormalizeQuery(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

type memoryEntry struct {
	query     *models.ParsedQuery
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache with lazy, check-on-read expiry.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryCache creates a MemoryCache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return NewMemoryCacheWithClock(ttl, time.Now)
}

// NewMemoryCacheWithClock lets tests control time.
func NewMemoryCacheWithClock(ttl time.Duration, now func() time.Time) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &MemoryCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*models.ParsedQuery, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.query, true
}

func (c *MemoryCache) Set(_ context.Context, key string, q *models.ParsedQuery) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{query: q, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Len reports live entry count, expired entries included until read.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// RedisCache backs the parse cache with Redis, leaning on native key expiry.
// Redis errors degrade to cache misses; the parse path must never fail
// because the cache is down.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache creates a RedisCache with the given TTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl, prefix: "search:parse:"}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.ParsedQuery, bool) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		return nil, false
	}
	var q models.ParsedQuery
	if err := json.Unmarshal([]byte(val), &q); err != nil {
		return nil, false
	}
	return &q, true
}

func (c *RedisCache) Set(ctx context.Context, key string, q *models.ParsedQuery) {
	data, err := json.Marshal(q)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.prefix+key, data, c.ttl)
}
