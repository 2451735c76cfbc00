// internal/search/parser/cache_test.go
package parser

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplier-search/internal/models"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Ayurvedic Manufacturers", "ayurvedic manufacturers"},
		{"  ayurvedic   manufacturers  ", "ayurvedic manufacturers"},
		{"AYURVEDIC\tMANUFACTURERS\n", "ayurvedic manufacturers"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeQuery(tt.raw), "raw %q", tt.raw)
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	parsed := &models.ParsedQuery{
		EntityTypes: []models.EntityType{models.EntityManufacturer},
		Keywords:    []string{"ayurvedic"},
		Intent:      models.IntentSearch,
	}

	_, ok := cache.Get(ctx, "ayurvedic manufacturers")
	assert.False(t, ok)

	cache.Set(ctx, "ayurvedic manufacturers", parsed)

	got, ok := cache.Get(ctx, "ayurvedic manufacturers")
	require.True(t, ok)
	assert.Equal(t, parsed, got)
}

func TestMemoryCache_Expiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	cache := NewMemoryCacheWithClock(5*time.Minute, func() time.Time { return clock() })
	ctx := context.Background()

	cache.Set(ctx, "key", &models.ParsedQuery{Keywords: []string{"soap"}})

	// Just inside the TTL.
	now = now.Add(5*time.Minute - time.Second)
	_, ok := cache.Get(ctx, "key")
	assert.True(t, ok)

	// Past the TTL the entry is dropped on read.
	now = now.Add(2 * time.Second)
	_, ok = cache.Get(ctx, "key")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_ZeroTTLDefaults(t *testing.T) {
	cache := NewMemoryCache(0)
	assert.Equal(t, DefaultCacheTTL, cache.ttl)
}

func TestRedisCache_SetGet(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	parsed := &models.ParsedQuery{
		EntityTypes:    []models.EntityType{models.EntityFormulator},
		Locations:      []string{"gujarat"},
		Certifications: []string{"GMP"},
		Keywords:       []string{"herbal"},
		Intent:         models.IntentSearch,
	}

	_, ok := cache.Get(ctx, "herbal formulators")
	assert.False(t, ok)

	cache.Set(ctx, "herbal formulators", parsed)

	got, ok := cache.Get(ctx, "herbal formulators")
	require.True(t, ok)
	assert.Equal(t, parsed, got)

	// TTL expiry via miniredis clock.
	mr.FastForward(2 * time.Minute)
	_, ok = cache.Get(ctx, "herbal formulators")
	assert.False(t, ok)
}

func TestRedisCache_ErrorsDegradeToMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCache(client, time.Minute)

	mock.ExpectGet("search:parse:broken").SetErr(assert.AnError)

	_, ok := cache.Get(context.Background(), "broken")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_CorruptPayloadIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, mr.Set("search:parse:bad", "{not json"))

	cache := NewRedisCache(client, time.Minute)
	_, ok := cache.Get(context.Background(), "bad")
	assert.False(t, ok)
}
