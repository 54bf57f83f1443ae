package translator

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func TestMemoryCacheEnforcesExpiry(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(CacheOptions{TTL: 7 * 24 * time.Hour, Enforce: true, Now: clk.Now})
	require.NoError(t, c.Set(ctx, "你好", "en", "Hello"))

	clk.now = clk.now.Add(6 * 24 * time.Hour)
	v, ok, err := c.Get(ctx, "你好", "en")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Hello", v)

	clk.now = clk.now.Add(24 * time.Hour)
	_, ok, _ = c.Get(ctx, "你好", "en")
	assert.False(t, ok)
}

func TestMemoryCacheWithoutEnforcement(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(CacheOptions{TTL: time.Hour, Now: clk.Now})
	require.NoError(t, c.Set(ctx, "你好", "en", "Hello"))

	clk.now = clk.now.Add(30 * 24 * time.Hour)
	_, ok, _ := c.Get(ctx, "你好", "en")
	assert.True(t, ok)
}

func TestMemoryCacheKeysByTarget(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(CacheOptions{})
	require.NoError(t, c.Set(ctx, "你好", "en", "Hello"))

	_, ok, _ := c.Get(ctx, "你好", "ja")
	assert.False(t, ok)
}

func TestFileCachePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache", "translations.json")
	opts := CacheOptions{TTL: time.Hour, Enforce: true}

	c, err := OpenFileCache(path, opts)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "你好", "en", "Hello"))
	require.NoError(t, c.Set(ctx, "谢谢", "ja", "ありがとう"))
	require.NoError(t, c.Close())

	reopened, err := OpenFileCache(path, opts)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "谢谢", "ja")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ありがとう", v)
	assert.Equal(t, 2, reopened.Len())
}

func TestFileCacheDropsExpiredOnLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "translations.json")
	clk := &clock{now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	opts := CacheOptions{TTL: time.Hour, Enforce: true, Now: clk.Now}

	c, err := OpenFileCache(path, opts)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "你好", "en", "Hello"))
	require.NoError(t, c.Flush())

	clk.now = clk.now.Add(2 * time.Hour)
	reopened, err := OpenFileCache(path, opts)
	require.NoError(t, err)
	assert.Zero(t, reopened.Len())
}

func TestRedisCacheKeys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()
	c := NewRedisCacheWithClient(client, "", time.Hour, nil)

	k1 := c.key("你好", "en")
	assert.Equal(t, k1, c.key("你好", "en"))
	assert.NotEqual(t, k1, c.key("你好", "ja"))
	assert.NotEqual(t, k1, c.key("您好", "en"))
	assert.Contains(t, k1, DefaultRedisPrefix+"en:")
}

func TestRedisCacheUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()
	c := NewRedisCacheWithClient(client, "test:", time.Hour, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, ok, err := c.Get(ctx, "你好", "en")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestOpenCacheUnknownKind(t *testing.T) {
	_, err := OpenCache(context.Background(), "disk", "", "", CacheOptions{}, nil)
	assert.Error(t, err)

	c, err := OpenCache(context.Background(), "memory", "", "", CacheOptions{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)
}
