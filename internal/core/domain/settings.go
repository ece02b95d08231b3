package domain

import "time"

// Default setting values.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultMaxUploadSize = "100MB"
	DefaultBinaryDir     = "binary"
)

// Settings holds the persisted application configuration.
type Settings struct {
	API    APISettings    `json:"api"`
	Upload UploadSettings `json:"upload"`
	Binary BinarySettings `json:"binary"`
}

// APISettings configures the Paperless-ngx connection.
type APISettings struct {
	// Domain is the instance base URL.
	Domain string `json:"domain"`

	// Token is the API token. Omitted from any serialised form.
	Token string `json:"-"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `json:"timeout"`

	// RequestInterval is the minimum spacing between consecutive requests,
	// including page fetches. Zero disables pacing.
	RequestInterval time.Duration `json:"request_interval"`
}

// UploadSettings configures document uploads.
type UploadSettings struct {
	// MaxSize is a human-readable byte size (e.g., "100MB").
	MaxSize string `json:"max_size"`
}

// BinarySettings configures where downloaded binaries are kept.
type BinarySettings struct {
	// Path is the binary store directory.
	Path string `json:"path"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() Settings {
	return Settings{
		API: APISettings{
			Timeout: DefaultTimeout,
		},
		Upload: UploadSettings{
			MaxSize: DefaultMaxUploadSize,
		},
	}
}

// Credentials returns the connection credentials held by the settings.
func (s *Settings) Credentials() *Credentials {
	return &Credentials{Domain: s.API.Domain, Token: s.API.Token}
}
