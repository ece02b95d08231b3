package driven

import (
	"context"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// Requester issues authenticated HTTP requests against Paperless-ngx.
// Implementations resolve relative URLs against the configured domain,
// inject the authentication header and pace consecutive calls.
type Requester interface {
	// Request performs a single call. Non-2xx responses are returned as errors.
	Request(ctx context.Context, spec domain.RequestSpec) (*domain.Response, error)

	// RequestPaginated performs spec and keeps following the URL returned by
	// opts.Next until it returns "". Responses are returned in fetch order.
	RequestPaginated(ctx context.Context, spec domain.RequestSpec, opts domain.PaginationOptions) ([]*domain.Response, error)
}
