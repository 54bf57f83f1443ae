package translator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lukman83/showcase/internal/httputil"
	"github.com/tidwall/gjson"
)

// DefaultMyMemoryURL is the public MyMemory endpoint.
const DefaultMyMemoryURL = "https://api.mymemory.translated.net/get"

// myMemoryQuotaNotice is what MyMemory returns as translatedText once the
// free daily allowance is used up.
const myMemoryQuotaNotice = "MYMEMORY WARNING: YOU USED ALL AVAILABLE FREE TRANSLATIONS FOR TODAY."

// MyMemory translates through the free MyMemory GET API.
type MyMemory struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

// NewMyMemory creates the provider. Empty endpoint uses DefaultMyMemoryURL;
// timeout bounds each request.
func NewMyMemory(client *http.Client, endpoint string, timeout time.Duration) *MyMemory {
	if endpoint == "" {
		endpoint = DefaultMyMemoryURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MyMemory{client: client, url: endpoint, timeout: timeout}
}

func (m *MyMemory) Name() string { return "mymemory" }

func (m *MyMemory) Translate(ctx context.Context, text, source, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", source+"|"+target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	httputil.Apply(req, httputil.TranslatorHeaders())

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mymemory request: %w", err)
	}
	defer resp.Body.Close()

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return "", fmt.Errorf("mymemory read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mymemory: HTTP %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("mymemory: response is not JSON")
	}

	res := gjson.ParseBytes(body)
	if status := res.Get("responseStatus").Int(); status != http.StatusOK {
		return "", fmt.Errorf("mymemory: response status %d", status)
	}
	translated := res.Get("responseData.translatedText").String()
	switch translated {
	case "":
		return "", fmt.Errorf("mymemory: %w", ErrEmptyTranslation)
	case myMemoryQuotaNotice:
		return "", fmt.Errorf("mymemory: %w", ErrQuotaExceeded)
	}
	return translated, nil
}
