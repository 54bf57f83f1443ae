package throttle

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// ProxyProvider abstracts a proxy backend.
type ProxyProvider interface {
	Transport() http.RoundTripper
	Name() string
}

// ProxyRotator cycles through multiple proxy providers.
type ProxyRotator struct {
	providers []ProxyProvider
	mu        sync.Mutex
	idx       int
}

// NewProxyRotator creates a rotator from a list of providers.
// Returns nil if no providers are given.
func NewProxyRotator(providers []ProxyProvider) *ProxyRotator {
	if len(providers) == 0 {
		return nil
	}
	return &ProxyRotator{providers: providers}
}

// ParseProxyList builds a rotator from a comma-separated list of proxy URLs.
// Returns nil for an empty list.
func ParseProxyList(raw string) *ProxyRotator {
	var providers []ProxyProvider
	for _, u := range strings.Split(raw, ",") {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		providers = append(providers, &HTTPProxyProvider{RawURL: u, Label: u})
	}
	return NewProxyRotator(providers)
}

// Next returns the next proxy provider in round-robin order.
func (p *ProxyRotator) Next() ProxyProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	provider := p.providers[p.idx%len(p.providers)]
	p.idx++
	return provider
}

// DirectProvider routes traffic directly (no proxy).
type DirectProvider struct {
	transport http.RoundTripper
}

// NewDirectProvider wraps transport; nil means http.DefaultTransport.
func NewDirectProvider(transport http.RoundTripper) *DirectProvider {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &DirectProvider{transport: transport}
}

func (d *DirectProvider) Transport() http.RoundTripper { return d.transport }
func (d *DirectProvider) Name() string                 { return "direct" }

// HTTPProxyProvider wraps a generic HTTP/SOCKS5 proxy URL.
type HTTPProxyProvider struct {
	RawURL    string
	Label     string
	transport http.RoundTripper
	once      sync.Once
	parseErr  error
}

func (h *HTTPProxyProvider) Name() string { return h.Label }

func (h *HTTPProxyProvider) Transport() http.RoundTripper {
	h.once.Do(h.init)
	return h.transport
}

// Err returns any error from parsing the proxy URL.
func (h *HTTPProxyProvider) Err() error {
	h.once.Do(h.init)
	return h.parseErr
}

func (h *HTTPProxyProvider) init() {
	proxyURL, err := url.Parse(h.RawURL)
	if err != nil {
		h.parseErr = err
		h.transport = http.DefaultTransport
		return
	}
	h.transport = &http.Transport{
		Proxy: http.ProxyURL(proxyURL),
	}
}
