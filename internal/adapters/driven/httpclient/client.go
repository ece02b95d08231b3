package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
)

// Ensure Client implements the Requester interface.
var _ driven.Requester = (*Client)(nil)

// TokenType is the authorization scheme Paperless-ngx expects.
const TokenType = "Token"

// maxMessageLength bounds the error message taken from a response body.
const maxMessageLength = 200

// Config configures a Client.
type Config struct {
	// Timeout bounds each request. Zero means domain.DefaultTimeout.
	Timeout time.Duration

	// RequestInterval is the minimum spacing between requests.
	RequestInterval time.Duration

	// Transport overrides the base transport (tests).
	Transport http.RoundTripper

	// Logger receives request traces. Tokens are never logged.
	Logger hclog.Logger
}

// Client performs authenticated requests against a Paperless-ngx instance.
type Client struct {
	credentials driven.CredentialsProvider
	config      Config
	rateLimiter *RateLimiter
	log         hclog.Logger

	mu   sync.Mutex
	http *http.Client
	base *url.URL
}

// NewClient creates a client that resolves credentials lazily on the
// first request.
func NewClient(credentials driven.CredentialsProvider, cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Client{
		credentials: credentials,
		config:      cfg,
		rateLimiter: NewRateLimiter(cfg.RequestInterval),
		log:         log,
	}
}

// ensureClient builds the authenticated HTTP client if not already done.
func (c *Client) ensureClient(ctx context.Context) (*http.Client, *url.URL, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.http != nil {
		return c.http, c.base, nil
	}

	creds, err := c.credentials.Credentials(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("get credentials: %w", err)
	}
	if !creds.IsConfigured() {
		return nil, nil, domain.ErrNotConfigured
	}

	base, err := url.Parse(creds.BaseURL())
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, nil, domain.NewValidationError("domain",
			fmt.Errorf("%q is not an http(s) URL", creds.BaseURL()))
	}

	if c.config.Transport != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: c.config.Transport})
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: creds.Token, TokenType: TokenType},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = c.config.Timeout

	c.http = tc
	c.base = base
	return c.http, c.base, nil
}

// Request performs a single request.
func (c *Client) Request(ctx context.Context, spec domain.RequestSpec) (*domain.Response, error) {
	hc, base, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	u, err := resolve(base, spec.URL, spec.Query)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeBody(spec)
	if err != nil {
		return nil, err
	}

	method := spec.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", acceptFor(spec.Mode))
	for key, value := range spec.Headers {
		req.Header.Set(key, value)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, u.Redacted(), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("request",
		"method", method,
		"url", u.Redacted(),
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start))

	if err := c.rateLimiter.CheckRateLimit(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, data),
			URL:        u.Redacted(),
		}
	}

	return &domain.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// RequestPaginated performs spec and follows the link returned by
// opts.Next until it is empty. Pages are returned in fetch order.
func (c *Client) RequestPaginated(
	ctx context.Context,
	spec domain.RequestSpec,
	opts domain.PaginationOptions,
) ([]*domain.Response, error) {
	var pages []*domain.Response
	seen := make(map[string]bool)
	current := spec

	for {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return pages, ctx.Err()
		default:
		}

		resp, err := c.Request(ctx, current)
		if err != nil {
			return nil, err
		}
		pages = append(pages, resp)

		if opts.Next == nil {
			break
		}
		next, err := opts.Next(resp)
		if err != nil {
			return nil, fmt.Errorf("next page: %w", err)
		}
		if next == "" {
			break
		}
		if seen[next] {
			return nil, fmt.Errorf("%w: %s", ErrPaginationLoop, next)
		}
		seen[next] = true

		// The next link carries the full query of the following page.
		current = domain.RequestSpec{
			Method:  spec.Method,
			URL:     next,
			Headers: spec.Headers,
			Mode:    spec.Mode,
		}
	}

	return pages, nil
}

// resolve returns the request URL. Relative URLs are appended to the base
// path; absolute URLs must point at the configured host and inherit its
// scheme. Query values replace any existing values of the same key.
func resolve(base *url.URL, raw string, query url.Values) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse URL %q: %w", raw, err)
	}

	if u.IsAbs() {
		if !strings.EqualFold(u.Host, base.Host) {
			return nil, fmt.Errorf("%w: %s", ErrForeignHost, u.Host)
		}
		// Instances behind a TLS proxy often advertise http links.
		u.Scheme = base.Scheme
	} else {
		u, err = url.Parse(strings.TrimRight(base.String(), "/") + "/" + strings.TrimLeft(raw, "/"))
		if err != nil {
			return nil, fmt.Errorf("parse URL %q: %w", raw, err)
		}
	}

	if len(query) > 0 {
		q := u.Query()
		for key, values := range query {
			q.Del(key)
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}

func encodeBody(spec domain.RequestSpec) (io.Reader, string, error) {
	if spec.Form != nil {
		return encodeMultipart(spec.Form)
	}
	if spec.Body == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(spec.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encode body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

func acceptFor(mode domain.ResponseMode) string {
	if mode == domain.ResponseRaw {
		return "*/*"
	}
	return "application/json"
}

// errorMessage extracts a readable message from an error response body.
// Paperless-ngx reports most errors as {"detail": "..."}; validation
// errors map field names to message lists.
func errorMessage(status int, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return http.StatusText(status)
	}

	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(trimmed, &detail); err == nil && detail.Detail != "" {
		return detail.Detail
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err == nil {
		trimmed = compact.Bytes()
	}

	msg := string(trimmed)
	if len(msg) > maxMessageLength {
		msg = msg[:maxMessageLength] + "..."
	}
	return msg
}
