package translator

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lukman83/showcase/internal/cache"
	"github.com/lukman83/showcase/internal/fileutil"
	"github.com/lukman83/showcase/internal/logging"
)

// Cache stores finished translations keyed by source text and target language.
type Cache interface {
	Get(ctx context.Context, text, target string) (string, bool, error)
	Set(ctx context.Context, text, target, translated string) error
	Close() error
}

func memoryKey(text, target string) string {
	return target + "\x00" + text
}

// MemoryCache keeps translations in process.
type MemoryCache struct {
	entries *cache.TTL[string]
}

// CacheOptions configures the in-process and file caches.
type CacheOptions struct {
	TTL time.Duration
	// Enforce drops entries older than TTL. When false entries live until
	// the process (or cache file) is cleared.
	Enforce bool
	Now     func() time.Time
}

func (o CacheOptions) ttlOptions() []cache.Option {
	var opts []cache.Option
	if o.Now != nil {
		opts = append(opts, cache.WithClock(o.Now))
	}
	if !o.Enforce || o.TTL <= 0 {
		opts = append(opts, cache.WithoutExpiry())
	}
	return opts
}

func NewMemoryCache(opts CacheOptions) *MemoryCache {
	return &MemoryCache{entries: cache.NewTTL[string](opts.TTL, opts.ttlOptions()...)}
}

func (c *MemoryCache) Get(_ context.Context, text, target string) (string, bool, error) {
	v, ok := c.entries.Get(memoryKey(text, target))
	return v, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, text, target, translated string) error {
	c.entries.Set(memoryKey(text, target), translated)
	return nil
}

// Len reports how many translations are held.
func (c *MemoryCache) Len() int { return c.entries.Len() }

func (c *MemoryCache) Close() error { return nil }

// fileEntry is the on-disk form of one cached translation.
type fileEntry struct {
	Text       string    `json:"text"`
	Target     string    `json:"target"`
	Translated string    `json:"translated"`
	StoredAt   time.Time `json:"stored_at"`
}

// FileCache is a MemoryCache persisted to a JSON file. The file is read on
// open and rewritten by Flush and Close.
type FileCache struct {
	*MemoryCache
	mu   sync.Mutex
	path string
}

// OpenFileCache loads the cache file at path; a missing file starts empty.
func OpenFileCache(path string, opts CacheOptions) (*FileCache, error) {
	c := &FileCache{MemoryCache: NewMemoryCache(opts), path: path}

	var stored []fileEntry
	if _, err := fileutil.ReadJSON(path, &stored); err != nil {
		return nil, fmt.Errorf("load translation cache: %w", err)
	}
	entries := make(map[string]cache.Entry[string], len(stored))
	for _, e := range stored {
		entries[memoryKey(e.Text, e.Target)] = cache.Entry[string]{Value: e.Translated, StoredAt: e.StoredAt}
	}
	c.entries.Load(entries)
	return c, nil
}

// Flush writes the unexpired entries to disk.
func (c *FileCache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.entries.Snapshot()
	out := make([]fileEntry, 0, len(snap))
	for key, e := range snap {
		target, text, ok := splitMemoryKey(key)
		if !ok {
			continue
		}
		out = append(out, fileEntry{Text: text, Target: target, Translated: e.Value, StoredAt: e.StoredAt})
	}
	if err := fileutil.WriteJSON(c.path, out, 0o644); err != nil {
		return fmt.Errorf("save translation cache: %w", err)
	}
	return nil
}

func (c *FileCache) Close() error { return c.Flush() }

func splitMemoryKey(key string) (target, text string, ok bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == 0 {
			return key[:i], key[i+1:], true
		}
	}
	return "", "", false
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	// URL is the Redis connection URL, e.g. "redis://localhost:6379/0".
	URL string
	// Prefix namespaces the cache keys.
	Prefix string
	TTL    time.Duration
}

// DefaultRedisPrefix namespaces translation keys in Redis.
const DefaultRedisPrefix = "showcase:translation:"

// RedisCache shares translations between processes through Redis.
// Keys are the prefix, the target language and an xxhash of the text.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg RedisConfig, logger *slog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	c := NewRedisCacheWithClient(client, cfg.Prefix, cfg.TTL, logger)
	c.logger.Info("redis translation cache connected", "prefix", c.prefix, "ttl", c.ttl)
	return c, nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl, logger: logging.OrDiscard(logger)}
}

func (c *RedisCache) key(text, target string) string {
	return c.prefix + target + ":" + strconv.FormatUint(xxhash.Sum64String(text), 16)
}

func (c *RedisCache) Get(ctx context.Context, text, target string) (string, bool, error) {
	v, err := c.client.Get(ctx, c.key(text, target)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get translation from redis: %w", err)
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, text, target, translated string) error {
	if err := c.client.Set(ctx, c.key(text, target), translated, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set translation in redis: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// OpenCache builds the cache backend named by kind: "memory", "file" or "redis".
func OpenCache(ctx context.Context, kind, path, redisURL string, opts CacheOptions, logger *slog.Logger) (Cache, error) {
	switch kind {
	case "memory":
		return NewMemoryCache(opts), nil
	case "file":
		c, err := OpenFileCache(path, opts)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "redis":
		ttl := opts.TTL
		if !opts.Enforce {
			ttl = 0
		}
		return NewRedisCache(ctx, RedisConfig{URL: redisURL, TTL: ttl}, logger)
	default:
		return nil, fmt.Errorf("unknown translation cache %q", kind)
	}
}
