package auth

import (
	"context"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
)

// Ensure StaticProvider implements the CredentialsProvider interface.
var _ driven.CredentialsProvider = (*StaticProvider)(nil)

// StaticProvider serves fixed credentials.
type StaticProvider struct {
	creds domain.Credentials
}

// NewStaticProvider creates a provider for the given domain and token.
func NewStaticProvider(domainURL, token string) *StaticProvider {
	return &StaticProvider{creds: domain.Credentials{Domain: domainURL, Token: token}}
}

// Credentials returns a copy of the fixed credentials.
func (p *StaticProvider) Credentials(_ context.Context) (*domain.Credentials, error) {
	if !p.creds.IsConfigured() {
		return nil, domain.ErrNotConfigured
	}
	creds := p.creds
	return &creds, nil
}
