package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrPaginationLoop indicates a page linked back to an already fetched page.
var ErrPaginationLoop = errors.New("paperless: pagination loop detected")

// ErrForeignHost indicates a pagination link pointing away from the
// configured instance. The token is never sent to such a host.
var ErrForeignHost = errors.New("paperless: link points to a different host")

// RateLimitError represents a 429 response.
type RateLimitError struct {
	RetryAt time.Time
	URL     string
}

func (e *RateLimitError) Error() string {
	if e.RetryAt.IsZero() {
		return fmt.Sprintf("paperless: rate limit exceeded (URL: %s)", e.URL)
	}
	return fmt.Sprintf("paperless: rate limit exceeded, retry at %s (URL: %s)",
		e.RetryAt.Format(time.RFC3339), e.URL)
}

// APIError represents a non-2xx Paperless-ngx API response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paperless: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}
