package driven

import (
	"context"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// CredentialsProvider resolves the Paperless-ngx connection credentials.
type CredentialsProvider interface {
	// Credentials returns the current credentials.
	// Returns domain.ErrNotConfigured if domain or token is missing.
	Credentials(ctx context.Context) (*domain.Credentials, error)
}
