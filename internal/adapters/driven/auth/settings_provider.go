package auth

import (
	"context"
	"fmt"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
)

// Ensure SettingsProvider implements the CredentialsProvider interface.
var _ driven.CredentialsProvider = (*SettingsProvider)(nil)

// SettingsSource yields the effective application settings.
type SettingsSource interface {
	Effective() (*domain.Settings, error)
}

// SettingsProvider resolves credentials from application settings.
// Settings are read on every call so configuration changes apply to
// clients created afterwards.
type SettingsProvider struct {
	source SettingsSource
}

// NewSettingsProvider creates a provider backed by source.
func NewSettingsProvider(source SettingsSource) *SettingsProvider {
	return &SettingsProvider{source: source}
}

// Credentials returns the configured domain and token.
func (p *SettingsProvider) Credentials(_ context.Context) (*domain.Credentials, error) {
	settings, err := p.source.Effective()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	creds := settings.Credentials()
	if !creds.IsConfigured() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotConfigured, missing(creds))
	}
	return creds, nil
}

// IsConfigured returns true if both domain and token are available.
func (p *SettingsProvider) IsConfigured() bool {
	_, err := p.Credentials(context.Background())
	return err == nil
}

func missing(creds *domain.Credentials) string {
	switch {
	case creds.BaseURL() == "" && creds.Token == "":
		return "domain and token are not set"
	case creds.BaseURL() == "":
		return "domain is not set"
	default:
		return "token is not set"
	}
}
