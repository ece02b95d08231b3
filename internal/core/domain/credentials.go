package domain

import "strings"

// Credentials identify a Paperless-ngx instance and the API token used
// against it. They are supplied by the host environment and never logged.
type Credentials struct {
	// Domain is the instance base URL (e.g., "https://paperless.example.com").
	Domain string `json:"domain"`

	// Token is the Paperless-ngx API token.
	Token string `json:"-"`
}

// BaseURL returns the domain without trailing slashes.
func (c *Credentials) BaseURL() string {
	return strings.TrimRight(strings.TrimSpace(c.Domain), "/")
}

// IsConfigured returns true if both domain and token are present.
func (c *Credentials) IsConfigured() bool {
	return c != nil && c.BaseURL() != "" && c.Token != ""
}
