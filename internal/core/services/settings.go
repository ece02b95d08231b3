package services

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/go-units"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDomain          = "api.domain"
	keyToken           = "api.token"
	keyTimeout         = "api.timeout"
	keyRequestInterval = "api.request_interval"
	keyMaxUploadSize   = "upload.max_size"
	keyBinaryPath      = "binary.path"
)

// Environment variables overriding stored settings.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvDomain          = "PAPERLESS_DOMAIN"
	EnvToken           = "PAPERLESS_TOKEN"
	EnvTimeout         = "PAPERLESS_TIMEOUT"
	EnvRequestInterval = "PAPERLESS_REQUEST_INTERVAL"
	EnvMaxUploadSize   = "PAPERLESS_MAX_UPLOAD_SIZE"
	EnvBinaryPath      = "PAPERLESS_BINARY_PATH"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service reading environment
// overrides from the process environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// WithEnv replaces the environment lookup. Useful for testing.
func (s *SettingsService) WithEnv(lookup func(string) (string, bool)) *SettingsService {
	s.lookupEnv = lookup
	return s
}

// Get retrieves the stored settings filled with defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := s.GetDefaults()

	settings := &domain.Settings{
		API: domain.APISettings{
			Domain:          s.configStore.GetString(keyDomain),
			Token:           s.configStore.GetString(keyToken),
			Timeout:         s.getDuration(keyTimeout, defaults.API.Timeout),
			RequestInterval: s.getDuration(keyRequestInterval, defaults.API.RequestInterval),
		},
		Upload: domain.UploadSettings{
			MaxSize: s.getString(keyMaxUploadSize, defaults.Upload.MaxSize),
		},
		Binary: domain.BinarySettings{
			Path: s.getString(keyBinaryPath, defaults.Binary.Path),
		},
	}

	return settings, nil
}

// Effective returns the stored settings overlaid with PAPERLESS_*
// environment variables. Effective settings are never saved.
func (s *SettingsService) Effective() (*domain.Settings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	if v, ok := s.env(EnvDomain); ok {
		settings.API.Domain = v
	}
	if v, ok := s.env(EnvToken); ok {
		settings.API.Token = v
	}
	if v, ok := s.env(EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, domain.NewValidationError(EnvTimeout, err)
		}
		settings.API.Timeout = d
	}
	if v, ok := s.env(EnvRequestInterval); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, domain.NewValidationError(EnvRequestInterval, err)
		}
		settings.API.RequestInterval = d
	}
	if v, ok := s.env(EnvMaxUploadSize); ok {
		settings.Upload.MaxSize = v
	}
	if v, ok := s.env(EnvBinaryPath); ok {
		settings.Binary.Path = v
	}

	return settings, nil
}

func (s *SettingsService) env(key string) (string, bool) {
	if s.lookupEnv == nil {
		return "", false
	}
	v, ok := s.lookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Save persists application settings. An empty token keeps the stored one.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := s.configStore.Set(keyDomain, strings.TrimSpace(settings.API.Domain)); err != nil {
		return fmt.Errorf("save api domain: %w", err)
	}
	if settings.API.Token != "" {
		if err := s.configStore.Set(keyToken, settings.API.Token); err != nil {
			return fmt.Errorf("save api token: %w", err)
		}
	}
	if err := s.configStore.Set(keyTimeout, settings.API.Timeout); err != nil {
		return fmt.Errorf("save api timeout: %w", err)
	}
	if err := s.configStore.Set(keyRequestInterval, settings.API.RequestInterval); err != nil {
		return fmt.Errorf("save api request_interval: %w", err)
	}
	if err := s.configStore.Set(keyMaxUploadSize, settings.Upload.MaxSize); err != nil {
		return fmt.Errorf("save upload max_size: %w", err)
	}
	if err := s.configStore.Set(keyBinaryPath, settings.Binary.Path); err != nil {
		return fmt.Errorf("save binary path: %w", err)
	}

	return nil
}

// SetConnection configures the Paperless-ngx domain and API token.
func (s *SettingsService) SetConnection(domainURL, token string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.API.Domain = strings.TrimRight(strings.TrimSpace(domainURL), "/")
	settings.API.Token = strings.TrimSpace(token)

	if err := validateSettings(settings); err != nil {
		return err
	}
	return s.Save(settings)
}

// Validate checks that the effective settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Effective()
	if err != nil {
		return err
	}
	return validateSettings(settings)
}

// GetDefaults returns default settings. The binary store lives next to
// the configuration file.
func (s *SettingsService) GetDefaults() domain.Settings {
	defaults := domain.DefaultSettings()
	if s.configStore != nil && s.configStore.Path() != "" {
		defaults.Binary.Path = filepath.Join(filepath.Dir(s.configStore.Path()), domain.DefaultBinaryDir)
	}
	return defaults
}

// MaxUploadBytes parses the upload limit of the settings.
func MaxUploadBytes(settings *domain.Settings) (int64, error) {
	if settings.Upload.MaxSize == "" {
		return 0, nil
	}
	n, err := units.FromHumanSize(settings.Upload.MaxSize)
	if err != nil {
		return 0, domain.NewValidationError("upload.max_size", err)
	}
	return n, nil
}

func validateSettings(settings *domain.Settings) error {
	api := settings.API
	err := validation.ValidateStruct(&api,
		validation.Field(&api.Domain, validation.Required, validation.By(httpURL)),
		validation.Field(&api.Token, validation.Required),
		validation.Field(&api.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&api.RequestInterval, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return toValidationError(err)
	}

	if _, err := MaxUploadBytes(settings); err != nil {
		return err
	}
	return nil
}

func httpURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must be an http or https URL")
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host")
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetDuration(key)
}
