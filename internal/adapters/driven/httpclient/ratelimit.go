package httpclient

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
const HeaderRetryAfter = "Retry-After"

// RateLimiter spaces outgoing requests and recognises 429 responses.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter creates a limiter allowing one request per interval.
// A zero interval disables pacing.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &RateLimiter{bucket: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next request may be sent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// CheckRateLimit returns a RateLimitError if the response is a 429.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}
	rlErr := &RateLimitError{RetryAt: retryAt(resp.Header.Get(HeaderRetryAfter), time.Now())}
	if resp.Request != nil && resp.Request.URL != nil {
		rlErr.URL = resp.Request.URL.Redacted()
	}
	return rlErr
}

func retryAt(header string, now time.Time) time.Time {
	if header == "" {
		return time.Time{}
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return now.Add(time.Duration(seconds) * time.Second)
	}
	if t, err := http.ParseTime(header); err == nil {
		return t
	}
	return time.Time{}
}
