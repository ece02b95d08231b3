package driving

import "github.com/custodia-labs/paperless-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Effective returns the stored settings overlaid with environment
	// overrides.
	Effective() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// SetConnection configures the Paperless-ngx domain and API token.
	SetConnection(domainURL, token string) error

	// Validate checks that the current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
