package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/lukman83/showcase/internal/httputil"
	"github.com/lukman83/showcase/internal/logging"
	"github.com/tidwall/gjson"
)

// DefaultGoogleURL is the Cloud Translation v2 endpoint.
const DefaultGoogleURL = "https://translation.googleapis.com/language/translate/v2"

// Google translates with Cloud Translation v2. Without an API key, or when
// a request fails, it hands the text to its fallback provider.
type Google struct {
	client   *http.Client
	url      string
	apiKey   string
	fallback Provider
	logger   *slog.Logger
}

func NewGoogle(client *http.Client, endpoint, apiKey string, fallback Provider, logger *slog.Logger) *Google {
	if endpoint == "" {
		endpoint = DefaultGoogleURL
	}
	return &Google{
		client:   client,
		url:      endpoint,
		apiKey:   apiKey,
		fallback: fallback,
		logger:   logging.OrDiscard(logger),
	}
}

func (g *Google) Name() string { return "google" }

func (g *Google) Translate(ctx context.Context, text, source, target string) (string, error) {
	if g.apiKey == "" {
		g.logger.Debug("google translate has no api key, using fallback", "fallback", g.fallback.Name())
		return g.fallback.Translate(ctx, text, source, target)
	}
	out, err := g.translate(ctx, text, source, target)
	if err != nil {
		g.logger.Warn("google translate failed, using fallback", "error", err)
		return g.fallback.Translate(ctx, text, source, target)
	}
	return out, nil
}

func (g *Google) translate(ctx context.Context, text, source, target string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": source,
		"target": target,
		"format": "text",
	})
	if err != nil {
		return "", err
	}

	endpoint := g.url + "?key=" + url.QueryEscape(g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	httputil.Apply(req, httputil.TranslatorHeaders())

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("google request: %w", err)
	}
	defer resp.Body.Close()

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return "", fmt.Errorf("google read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error.message").String()
		return "", fmt.Errorf("google: HTTP %d %s", resp.StatusCode, msg)
	}

	translated := gjson.GetBytes(body, "data.translations.0.translatedText").String()
	if translated == "" {
		return "", fmt.Errorf("google: %w", ErrEmptyTranslation)
	}
	return translated, nil
}

// Baidu has no native client yet; it delegates to its fallback provider.
type Baidu struct {
	fallback Provider
}

func NewBaidu(fallback Provider) *Baidu { return &Baidu{fallback: fallback} }

func (b *Baidu) Name() string { return "baidu" }

func (b *Baidu) Translate(ctx context.Context, text, source, target string) (string, error) {
	return b.fallback.Translate(ctx, text, source, target)
}
