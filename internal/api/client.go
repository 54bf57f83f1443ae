package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/lukman83/showcase/internal/httputil"
	"github.com/lukman83/showcase/internal/logging"
	"github.com/lukman83/showcase/internal/session"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the backend used when none is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// Client calls the storefront backend. The bearer token lives in the
// session store; a 401 clears it.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          session.Store
	logger         *slog.Logger
	onUnauthorized func(endpoint string)
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUnauthorizedHandler registers fn to run when an admin endpoint answers
// 401, after the token has been cleared.
func WithUnauthorizedHandler(fn func(endpoint string)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a Client. A nil httpClient uses httputil defaults and a nil
// store keeps the token in memory.
func New(baseURL string, httpClient *http.Client, store session.Store, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(nil, 0)
	}
	if store == nil {
		store = session.NewMemoryStore(session.State{})
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrDiscard(c.logger)
	return c
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// IsAuthenticated reports whether a token is stored.
func (c *Client) IsAuthenticated() bool { return c.store.Token() != "" }

// RequestOptions describes a single backend call.
type RequestOptions struct {
	Method string
	Query  url.Values
	Body   any
	Auth   bool
}

// Request performs a call and decodes a JSON response into out (if non-nil).
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	raw, err := c.do(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindDecode, Message: "unexpected response from server", Err: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, auth bool, out any) error {
	return c.Request(ctx, endpoint, RequestOptions{Method: http.MethodGet, Query: query, Auth: auth}, out)
}

func (c *Client) send(ctx context.Context, method, endpoint string, body any, out any) error {
	return c.Request(ctx, endpoint, RequestOptions{Method: method, Body: body, Auth: true}, out)
}

// do sends the request and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, endpoint string, opts RequestOptions) ([]byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + endpoint
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httputil.Apply(req, httputil.JSONHeaders())
	req.Header.Set("X-Request-ID", uuid.NewString())
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.Auth {
		if token := c.store.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn("backend unreachable", "method", method, "endpoint", endpoint, "error", err)
		return nil, &Error{Kind: KindNetwork, Message: "network error: cannot reach server", Err: err}
	}
	defer resp.Body.Close()

	raw, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, StatusCode: resp.StatusCode, Message: "network error: incomplete response", Err: err}
	}

	c.logger.Debug("backend call", "method", method, "endpoint", endpoint, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, c.unauthorized(endpoint, raw)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseError(resp.StatusCode, raw)
		c.logger.Debug("backend error", "endpoint", endpoint, "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}
	return raw, nil
}

// unauthorized clears the token and, for admin endpoints other than login,
// hands control to the registered handler.
func (c *Client) unauthorized(endpoint string, raw []byte) error {
	if err := c.store.ClearToken(); err != nil {
		c.logger.Warn("clear token failed", "error", err)
	}

	msg := sessionExpiredMessage
	isLogin := strings.HasPrefix(endpoint, loginEndpoint)
	if isLogin {
		msg = "invalid username or password"
		if detail := gjson.GetBytes(raw, "detail"); detail.Type == gjson.String && detail.String() != "" {
			msg = detail.String()
		}
	}
	if isAdminEndpoint(endpoint) && !isLogin && c.onUnauthorized != nil {
		c.onUnauthorized(endpoint)
	}
	return &Error{Kind: KindUnauthorized, StatusCode: http.StatusUnauthorized, Message: msg}
}

func isAdminEndpoint(endpoint string) bool {
	return strings.HasPrefix(endpoint, "/admin/") || endpoint == "/admin"
}
