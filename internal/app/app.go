// Package app wires configuration into the client services shared by the
// CLI and the MCP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/lukman83/showcase/config"
	"github.com/lukman83/showcase/internal/api"
	"github.com/lukman83/showcase/internal/carousel"
	"github.com/lukman83/showcase/internal/catalog"
	"github.com/lukman83/showcase/internal/featured"
	"github.com/lukman83/showcase/internal/httputil"
	"github.com/lukman83/showcase/internal/i18n"
	"github.com/lukman83/showcase/internal/logging"
	"github.com/lukman83/showcase/internal/session"
	"github.com/lukman83/showcase/internal/throttle"
	"github.com/lukman83/showcase/internal/translator"
)

// Options adjusts how New builds the services.
type Options struct {
	// Confirm approves featured removals. Nil approves every removal.
	Confirm featured.ConfirmFunc
	// Store replaces the file-backed session store.
	Store session.Store
}

// App holds the long-lived services.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Store      session.Store
	API        *api.Client
	Catalog    *catalog.Service
	Featured   *featured.Registry
	Showcase   *featured.Showcase
	Messages   *i18n.Bundle
	Languages  *i18n.Matcher
	Providers  *translator.Registry
	Translator *translator.Translator
	Switcher   *translator.Switcher
}

// New validates cfg and builds every service.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger = logging.OrDiscard(logger)

	store := opts.Store
	if store == nil {
		fs, err := session.NewFileStore(cfg.StateFile)
		if err != nil {
			return nil, err
		}
		store = fs
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Messages:  i18n.Default(),
		Languages: i18n.NewMatcher("zh", "en"),
	}

	a.API = api.New(cfg.APIBaseURL, httputil.NewHTTPClient(nil, cfg.HTTPTimeout), store,
		api.WithLogger(logger.With("component", "api")),
		api.WithUnauthorizedHandler(a.sessionExpired),
	)
	a.Catalog = catalog.New(a.API, catalog.Options{
		AdminTTL:  cfg.AdminCacheTTL,
		PublicTTL: cfg.PublicCacheTTL,
		Logger:    logger.With("component", "catalog"),
	})
	a.Featured = featured.NewRegistry(a.API, opts.Confirm, logger.With("component", "featured"))

	variant, err := featured.ParseVariant(cfg.FeaturedAPI)
	if err != nil {
		return nil, err
	}
	a.Showcase = featured.NewShowcase(a.API, variant, cfg.SourceLanguage, logger.With("component", "showcase"))

	if err := a.buildTranslator(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) buildTranslator(ctx context.Context) error {
	cfg := a.Config
	logger := a.Logger.With("component", "translator")

	transport := &throttle.Transport{
		Base:        http.DefaultTransport,
		Proxy:       throttle.ParseProxyList(cfg.ProxyURL),
		RateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		UserAgent:   httputil.UserAgent,
	}
	client := httputil.NewHTTPClient(transport, cfg.RequestTimeout)

	mymemory := translator.NewMyMemory(client, cfg.MyMemoryURL, cfg.RequestTimeout)
	a.Providers = translator.NewRegistry()
	a.Providers.Register(mymemory)
	a.Providers.Register(translator.NewGoogle(client, cfg.GoogleURL, cfg.GoogleAPIKey, mymemory, logger))
	a.Providers.Register(translator.NewBaidu(mymemory))

	provider, err := a.Providers.Get(cfg.TranslateProvider)
	if err != nil {
		return err
	}

	cache, err := translator.OpenCache(ctx, cfg.TranslationCache, cfg.TranslationCacheFile, cfg.RedisURL,
		translator.CacheOptions{TTL: cfg.TranslationCacheTTL, Enforce: cfg.EnforceCacheExpiry}, logger)
	if err != nil {
		return fmt.Errorf("open translation cache: %w", err)
	}

	a.Translator = translator.New(provider, cache, translator.Options{
		SourceLanguage: cfg.SourceLanguage,
		BatchSize:      cfg.BatchSize,
		BatchDelay:     cfg.BatchDelay,
		MaxRetries:     cfg.MaxRetries,
		RetryBackoff:   cfg.RetryBackoff,
		MaxConcurrent:  cfg.MaxConcurrent,
		FetchTimeout:   time.Duration(cfg.MaxRetries+1) * (cfg.RequestTimeout + cfg.RetryBackoff),
		Logger:         logger,
	})
	a.Switcher = translator.NewSwitcher(a.Translator, a.Store, cfg.MaxTextLength, logger)
	return nil
}

// sessionExpired runs when an admin call comes back 401. The API client
// has already dropped the token; cached admin data goes with it.
func (a *App) sessionExpired(endpoint string) {
	a.Logger.Warn("admin session expired", "endpoint", endpoint)
	if a.Catalog != nil {
		a.Catalog.Clear()
	}
}

// Language returns the preferred UI language, matched to a catalog locale.
func (a *App) Language() string {
	if lang := a.Store.Language(); lang != "" {
		return a.Languages.Match(lang)
	}
	return a.Languages.Match(a.Config.Language)
}

// SetLanguage stores the preferred UI language after matching it.
func (a *App) SetLanguage(lang string) (string, error) {
	matched := a.Languages.Match(lang)
	if err := a.Store.SetLanguage(matched); err != nil {
		return "", fmt.Errorf("save language: %w", err)
	}
	return matched, nil
}

// Localizer returns the static catalog for the preferred UI language.
func (a *App) Localizer() i18n.Localizer {
	return a.Messages.For(a.Language())
}

// Login authenticates and drops cached admin data from an earlier session.
func (a *App) Login(ctx context.Context, username, password string) error {
	if _, err := a.API.Login(ctx, username, password); err != nil {
		return err
	}
	a.Catalog.Clear()
	return nil
}

// Logout ends the admin session and clears every client cache.
func (a *App) Logout(ctx context.Context) error {
	err := a.API.Logout(ctx)
	a.Catalog.Clear()
	return err
}

// Carousel builds a hero carousel controller bound to the UI language.
func (a *App) Carousel(r carousel.Renderer, interval, cooldown time.Duration) *carousel.Controller {
	if interval <= 0 {
		interval = a.Config.SlideInterval
	}
	if cooldown <= 0 {
		cooldown = a.Config.SlideCooldown
	}
	return carousel.New(carousel.NewAPILoader(a.API), r, carousel.Options{
		Interval: interval,
		Cooldown: cooldown,
		Language: a.Language,
		Messages: a.Messages,
		Logger:   a.Logger.With("component", "carousel"),
	})
}

// Close flushes the translation cache.
func (a *App) Close() error {
	if a.Translator != nil {
		return a.Translator.Close()
	}
	return nil
}
