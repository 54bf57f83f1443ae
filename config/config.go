package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Backend
	APIBaseURL  string        `env:"SHOWCASE_API_URL"`
	HTTPTimeout time.Duration `env:"SHOWCASE_HTTP_TIMEOUT"`
	StateFile   string        `env:"SHOWCASE_STATE_FILE"` // token and language preferences
	Language    string        `env:"SHOWCASE_LANG"`
	LogLevel    string        `env:"SHOWCASE_LOG_LEVEL"`

	// Client cache
	AdminCacheTTL  time.Duration `env:"SHOWCASE_ADMIN_CACHE_TTL"`
	PublicCacheTTL time.Duration `env:"SHOWCASE_PUBLIC_CACHE_TTL"`

	// Featured products
	FeaturedAPI string `env:"SHOWCASE_FEATURED_API"` // "legacy", "multilingual"

	// Carousel
	SlideInterval time.Duration `env:"SHOWCASE_SLIDE_INTERVAL"`
	SlideCooldown time.Duration `env:"SHOWCASE_SLIDE_COOLDOWN"`

	// Translator
	TranslateProvider string        `env:"SHOWCASE_TRANSLATE_PROVIDER"` // "mymemory", "google", "baidu"
	SourceLanguage    string        `env:"SHOWCASE_SOURCE_LANG"`
	MyMemoryURL       string        `env:"SHOWCASE_MYMEMORY_URL"`
	GoogleAPIKey      string        `env:"GOOGLE_TRANSLATE_API_KEY"`
	GoogleURL         string        `env:"SHOWCASE_GOOGLE_URL"`
	BatchSize         int           `env:"SHOWCASE_BATCH_SIZE"`
	BatchDelay        time.Duration `env:"SHOWCASE_BATCH_DELAY"`
	MaxRetries        int           `env:"SHOWCASE_MAX_RETRIES"`
	RetryBackoff      time.Duration `env:"SHOWCASE_RETRY_BACKOFF"`
	MaxConcurrent     int           `env:"SHOWCASE_MAX_CONCURRENT"`
	MaxTextLength     int           `env:"SHOWCASE_MAX_TEXT_LENGTH"`
	RequestTimeout    time.Duration `env:"SHOWCASE_TRANSLATE_TIMEOUT"`

	// Translation cache
	TranslationCache     string        `env:"SHOWCASE_TRANSLATION_CACHE"` // "memory", "file", "redis"
	TranslationCacheFile string        `env:"SHOWCASE_TRANSLATION_CACHE_FILE"`
	TranslationCacheTTL  time.Duration `env:"SHOWCASE_TRANSLATION_CACHE_TTL"`
	EnforceCacheExpiry   bool          `env:"SHOWCASE_ENFORCE_CACHE_EXPIRY"`
	RedisURL             string        `env:"REDIS_URL"`

	// Rate limiting for translation providers
	RatePerSecond float64 `env:"SHOWCASE_RATE_PER_SECOND"`
	RateBurst     int     `env:"SHOWCASE_RATE_BURST"`
	ProxyURL      string  `env:"SHOWCASE_PROXY"`

	// HTTP server
	HTTPPort string `env:"PORT"`
	APIKey   string `env:"SHOWCASE_MCP_API_KEY"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:           "http://localhost:8000/api",
		HTTPTimeout:          30 * time.Second,
		StateFile:            defaultStatePath("state.json"),
		Language:             "zh",
		LogLevel:             "info",
		AdminCacheTTL:        3 * time.Minute,
		PublicCacheTTL:       5 * time.Minute,
		FeaturedAPI:          "legacy",
		SlideInterval:        5 * time.Second,
		SlideCooldown:        time.Second,
		TranslateProvider:    "mymemory",
		SourceLanguage:       "zh",
		MyMemoryURL:          "https://api.mymemory.translated.net/get",
		GoogleURL:            "https://translation.googleapis.com/language/translate/v2",
		BatchSize:            8,
		BatchDelay:           50 * time.Millisecond,
		MaxRetries:           2,
		RetryBackoff:         time.Second,
		MaxConcurrent:        3,
		MaxTextLength:        300,
		RequestTimeout:       10 * time.Second,
		TranslationCache:     "file",
		TranslationCacheFile: defaultStatePath("translations.json"),
		TranslationCacheTTL:  7 * 24 * time.Hour,
		EnforceCacheExpiry:   true,
		RatePerSecond:        5.0,
		RateBurst:            3,
		HTTPPort:             "8080",
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from environment variables.
// Variables that are unset keep their current value.
func (c *Config) LoadFromEnv() error {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.FeaturedAPI {
	case "legacy", "multilingual":
	default:
		return fmt.Errorf("featured api %q: want legacy or multilingual", c.FeaturedAPI)
	}
	switch c.TranslateProvider {
	case "mymemory", "google", "baidu":
	default:
		return fmt.Errorf("translate provider %q: want mymemory, google or baidu", c.TranslateProvider)
	}
	switch c.TranslationCache {
	case "memory", "file":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("translation cache redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("translation cache %q: want memory, file or redis", c.TranslationCache)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url is empty")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max concurrent must be positive, got %d", c.MaxConcurrent)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries)
	}
	return nil
}

func defaultStatePath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".showcase", name)
	}
	return filepath.Join(dir, "showcase", name)
}
