package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Minute, cfg.AdminCacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.PublicCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.SlideInterval)
	assert.Equal(t, time.Second, cfg.SlideCooldown)
	assert.Equal(t, 8, cfg.BatchSize)
	assert.Equal(t, 50*time.Millisecond, cfg.BatchDelay)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 300, cfg.MaxTextLength)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("SHOWCASE_API_URL", "https://shop.example.com/api")
	t.Setenv("SHOWCASE_BATCH_SIZE", "5")
	t.Setenv("SHOWCASE_BATCH_DELAY", "100ms")
	t.Setenv("SHOWCASE_FEATURED_API", "multilingual")
	t.Setenv("SHOWCASE_ENFORCE_CACHE_EXPIRY", "false")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "https://shop.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.Equal(t, 100*time.Millisecond, cfg.BatchDelay)
	assert.Equal(t, "multilingual", cfg.FeaturedAPI)
	assert.False(t, cfg.EnforceCacheExpiry)
	// untouched fields keep their defaults
	assert.Equal(t, 3*time.Minute, cfg.AdminCacheTTL)
}

func TestLoadFromEnvRejectsBadValue(t *testing.T) {
	t.Setenv("SHOWCASE_BATCH_SIZE", "many")

	cfg := DefaultConfig()
	require.Error(t, cfg.LoadFromEnv())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown featured api", func(c *Config) { c.FeaturedAPI = "v3" }},
		{"unknown provider", func(c *Config) { c.TranslateProvider = "deepl" }},
		{"redis without url", func(c *Config) { c.TranslationCache = "redis" }},
		{"zero batch", func(c *Config) { c.BatchSize = 0 }},
		{"zero retries", func(c *Config) { c.MaxRetries = 0 }},
		{"empty base url", func(c *Config) { c.APIBaseURL = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
