// Package translator machine-translates storefront text through a
// pluggable provider with caching, retries and batching.
package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/lukman83/showcase/internal/httputil"
	"github.com/lukman83/showcase/internal/logging"
	"github.com/lukman83/showcase/internal/progress"
	"github.com/lukman83/showcase/internal/throttle"
)

// Options tunes a Translator. Zero values take the defaults noted.
type Options struct {
	SourceLanguage string        // "zh"
	BatchSize      int           // 8
	BatchDelay     time.Duration // 50ms
	MaxRetries     int           // 2
	RetryBackoff   time.Duration // 1s
	MaxConcurrent  int           // 3
	// FetchTimeout bounds one shared provider fetch, retries included.
	FetchTimeout time.Duration // 30s
	Logger       *slog.Logger
	// Sleep replaces the retry wait, for tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Translator translates single texts and batches with one provider.
// It is safe for concurrent use.
type Translator struct {
	provider      Provider
	cache         Cache
	source        string
	batchSize     int
	maxConcurrent int
	delay         *throttle.Delay
	retry         httputil.RetryPolicy
	fetchTimeout  time.Duration
	inflight      singleflight.Group
	logger        *slog.Logger
}

// New creates a Translator. A nil cache uses an unbounded MemoryCache.
func New(provider Provider, c Cache, opts Options) *Translator {
	if opts.SourceLanguage == "" {
		opts.SourceLanguage = "zh"
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 8
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 2
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 3
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	if c == nil {
		c = NewMemoryCache(CacheOptions{})
	}
	return &Translator{
		provider:      provider,
		cache:         c,
		source:        opts.SourceLanguage,
		batchSize:     opts.BatchSize,
		maxConcurrent: opts.MaxConcurrent,
		delay:         throttle.NewDelay(opts.BatchDelay, 0),
		retry: httputil.RetryPolicy{
			Attempts: opts.MaxRetries,
			Backoff:  opts.RetryBackoff,
			Sleep:    opts.Sleep,
		},
		fetchTimeout: opts.FetchTimeout,
		logger:       logging.OrDiscard(opts.Logger),
	}
}

// SourceLanguage is the language the storefront is authored in.
func (t *Translator) SourceLanguage() string { return t.source }

// Provider returns the provider name.
func (t *Translator) Provider() string { return t.provider.Name() }

// Result is the outcome for one text.
type Result struct {
	Text       string
	Translated string
	Cached     bool
	Err        error
}

// Changed reports whether a usable translation differs from the source.
func (r Result) Changed() bool {
	return r.Err == nil && r.Translated != "" && r.Translated != r.Text
}

// Translate returns text in target. Text in the source language, or blank
// text, is returned as is. Results that differ from the source are cached.
// Concurrent calls for the same text and target share one request.
func (t *Translator) Translate(ctx context.Context, text, target string) (string, error) {
	r := t.translate(ctx, text, target)
	return r.Translated, r.Err
}

func (t *Translator) translate(ctx context.Context, text, target string) Result {
	res := Result{Text: text}
	if target == t.source || strings.TrimSpace(text) == "" {
		res.Translated = text
		return res
	}

	if v, ok, err := t.cache.Get(ctx, text, target); err != nil {
		t.logger.Warn("translation cache read failed", "error", err)
	} else if ok {
		res.Translated = v
		res.Cached = true
		return res
	}

	// The shared fetch outlives any single caller; each caller stops
	// waiting when its own context ends.
	ch := t.inflight.DoChan(memoryKey(text, target), func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.fetchTimeout)
		defer cancel()
		return t.fetch(fctx, text, target)
	})
	select {
	case <-ctx.Done():
		res.Err = ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			res.Err = r.Err
			break
		}
		res.Translated = r.Val.(string)
	}
	return res
}

func (t *Translator) fetch(ctx context.Context, text, target string) (string, error) {
	var out string
	err := httputil.Retry(ctx, t.retry, func(attempt int) error {
		v, err := t.provider.Translate(ctx, text, t.source, target)
		if err != nil {
			if errors.Is(err, ErrQuotaExceeded) {
				return httputil.Permanent(err)
			}
			t.logger.Debug("translation attempt failed", "attempt", attempt+1, "target", target, "error", err)
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", target, err)
	}

	if out != text {
		if err := t.cache.Set(ctx, text, target, out); err != nil {
			t.logger.Warn("translation cache write failed", "error", err)
		}
	}
	return out, nil
}

// TranslateBatch translates texts into target. Texts are sent in batches of
// the configured size with at most MaxConcurrent requests in flight; every
// text gets a Result whether or not its neighbours fail. Batches are
// separated by the configured delay and reported through progress.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string, target string) []Result {
	results := make([]Result, len(texts))
	total := (len(texts) + t.batchSize - 1) / t.batchSize

	for b := 0; b < total; b++ {
		start := b * t.batchSize
		end := min(start+t.batchSize, len(texts))

		if err := ctx.Err(); err != nil {
			for i := start; i < len(texts); i++ {
				results[i] = Result{Text: texts[i], Err: err}
			}
			return results
		}

		var g errgroup.Group
		g.SetLimit(t.maxConcurrent)
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = t.translate(ctx, texts[i], target)
				return nil
			})
		}
		_ = g.Wait()

		progress.Report(ctx, fmt.Sprintf("Translated batch %d/%d (%d%%)", b+1, total, (b+1)*100/total))

		if b < total-1 {
			if err := t.delay.Wait(ctx); err != nil {
				for i := end; i < len(texts); i++ {
					results[i] = Result{Text: texts[i], Err: err}
				}
				return results
			}
		}
	}
	return results
}

// Close releases the cache.
func (t *Translator) Close() error {
	return t.cache.Close()
}
